package session

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

var (
	// ErrCredentialInvalid is returned when the access credential cannot be
	// decoded.
	ErrCredentialInvalid = errors.New("access credential invalid")

	// ErrCredentialExpired is returned when the embedded expiry has passed.
	ErrCredentialExpired = errors.New("access credential expired")
)

// decodeIdentity extracts the identity claims from the access credential
// without verifying the signature. The client holds no key material; the
// credential is trusted because the server issued it over the
// authenticated channel, and the only local check is the embedded expiry.
func decodeIdentity(rawToken string, now time.Time) (*Identity, error) {
	if rawToken == "" {
		return nil, ErrCredentialInvalid
	}

	token, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, errors.Wrap(ErrCredentialInvalid, err.Error())
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, ErrCredentialInvalid
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, ErrCredentialInvalid
	}
	if now.Unix() > int64(exp) {
		return nil, ErrCredentialExpired
	}

	id, _ := claims["id"].(string)
	role, _ := claims["role"].(string)

	return &Identity{ID: id, Role: role}, nil
}
