package tokens

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// Issue signs an HS256 bearer token whose subject is the user id.
// No expiry claim is set: tokens stay valid until the secret rotates.
func Issue(userID uuid.UUID, secret []byte) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject: userID.String(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// Parse validates the signature and returns the embedded user id.
// Any failure collapses into ErrInvalidToken so callers cannot tell a
// forged token from a malformed one.
func Parse(raw string, secret []byte) (uuid.UUID, error) {
	var claims jwt.RegisteredClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid {
		return uuid.Nil, ErrInvalidToken
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}
