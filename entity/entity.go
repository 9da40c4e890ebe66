// Package entity holds the shared contracts for domain models: the
// identifier interface every store keys on, and the cross-entity reference
// type for fields the backend returns either as a bare identifier or as an
// embedded snapshot.
package entity

import "encoding/json"

// Entity is anything with a server-assigned unique identifier.
type Entity interface {
	EntityID() string
}

// Ref is a reference to another entity. Depending on the endpoint the
// backend serializes it as a plain identifier string or as an embedded
// document; both decode into the same value. Embedded documents are
// snapshots, not live links.
type Ref struct {
	ID  string
	Doc map[string]any
}

// UnmarshalJSON accepts either a string identifier or an embedded document
// carrying an "_id" field.
func (r *Ref) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*r = Ref{}
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	if err := json.Unmarshal(data, &r.Doc); err != nil {
		return err
	}
	if id, ok := r.Doc["_id"].(string); ok {
		r.ID = id
	}
	return nil
}

// MarshalJSON writes the embedded document when present, else the bare
// identifier.
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.Doc != nil {
		return json.Marshal(r.Doc)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// IsZero reports whether the reference is unset.
func (r Ref) IsZero() bool {
	return r.ID == "" && r.Doc == nil
}
