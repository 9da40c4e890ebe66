// Package keyval provides the durable key/value storage used for session
// credentials. It is the client-side analogue of browser local storage:
// values survive process restarts and are read on every outbound request.
package keyval

// Keys persisted by the session layer.
const (
	TokenKey        = "token"
	RefreshTokenKey = "refreshToken"
	UserKey         = "user"
)

// Store defines the interface for durable key/value storage.
type Store interface {
	// Get returns the value for key, with ok reporting whether it exists.
	Get(key string) (value string, ok bool)

	// Set writes the value for key, overwriting any previous value.
	Set(key, value string) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
}
