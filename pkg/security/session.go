package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"dormhub/room-api/internal/model"
)

var ErrTokenInvalid = errors.New("session token is invalid")

// SessionClaims is what a valid bearer token asserts about the caller.
// Verification state is deliberately not part of the claims. It can change
// after a token was issued, so the auth middleware re-reads it per request
type SessionClaims struct {
	UserID string
	Email  string
}

// Sessions issues and validates the stateless HS256 bearer tokens used on
// protected routes. There is no revocation list
type Sessions struct {
	secret []byte
	ttl    time.Duration
}

func NewSessions(secret string, ttl time.Duration) *Sessions {
	return &Sessions{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (s *Sessions) Issue(u *model.User) (string, error) {
	now := time.Now()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"type":    "auth",
		"iat":     now.Unix(),
		"exp":     now.Add(s.ttl).Unix(),
	})

	return t.SignedString(s.secret)
}

// Verify checks the signature and structure of tokenStr and returns the
// embedded claims. It does not touch the database
func (s *Sessions) Verify(tokenStr string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, ErrTokenInvalid
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, ErrTokenInvalid
	}

	return &SessionClaims{
		UserID: userID,
		Email:  email,
	}, nil
}
