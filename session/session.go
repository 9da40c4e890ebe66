// Package session holds the authenticated identity and its credentials.
// The identity is always derived from the access credential, never stored
// independently of a valid one.
package session

import (
	"encoding/json"
	"time"

	"github.com/studyhub-app/studyhub-go/keyval"
)

// Identity is the authenticated principal, decoded from the access
// credential's claims.
type Identity struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// User is the server-side user snapshot returned by login and persisted to
// durable storage.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// State is the bootstrapped session seeded from durable storage.
type State struct {
	Identity     *Identity
	User         *User
	Token        string
	RefreshToken string
}

// InitOption modifies session bootstrap.
type InitOption func(*initializer)

// WithInitNowTime sets the clock used for the expiry check (for testing).
func WithInitNowTime(nowFunc func() time.Time) InitOption {
	return func(i *initializer) {
		i.nowTime = nowFunc
	}
}

type initializer struct {
	nowTime func() time.Time
}

// Initialize reads the persisted session and derives the starting state.
// An undecodable or expired credential, or a corrupt user snapshot, purges
// every session key and yields an unauthenticated state; that path is
// silent, never a user-visible error. Invoke once from the process entry
// point.
func Initialize(store keyval.Store, options ...InitOption) State {
	init := &initializer{nowTime: time.Now}
	for _, opt := range options {
		opt(init)
	}

	token, ok := store.Get(keyval.TokenKey)
	if !ok || token == "" {
		return State{}
	}

	identity, err := decodeIdentity(token, init.nowTime())
	if err != nil {
		purge(store)
		return State{}
	}

	var user *User
	if raw, ok := store.Get(keyval.UserKey); ok && raw != "" {
		user = &User{}
		if err := json.Unmarshal([]byte(raw), user); err != nil {
			purge(store)
			return State{}
		}
	}

	refreshToken, _ := store.Get(keyval.RefreshTokenKey)

	return State{
		Identity:     identity,
		User:         user,
		Token:        token,
		RefreshToken: refreshToken,
	}
}

func purge(store keyval.Store) {
	_ = store.Delete(keyval.TokenKey)
	_ = store.Delete(keyval.RefreshTokenKey)
	_ = store.Delete(keyval.UserKey)
}
