package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dormhub/room-api/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:    "aBcDeFgHiJkLmNoP",
		Email: "alice@example.com",
	}
}

func TestSessionRoundTrip(t *testing.T) {
	s := NewSessions("test-secret", time.Hour)

	token, err := s.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "aBcDeFgHiJkLmNoP", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestSessionRejectsWrongSecret(t *testing.T) {
	s := NewSessions("test-secret", time.Hour)

	token, err := s.Issue(testUser())
	require.NoError(t, err)

	other := NewSessions("another-secret", time.Hour)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSessionRejectsExpiredToken(t *testing.T) {
	s := NewSessions("test-secret", -time.Minute)

	token, err := s.Issue(testUser())
	require.NoError(t, err)

	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSessionRejectsGarbage(t *testing.T) {
	s := NewSessions("test-secret", time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := s.Verify(tok)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", tok)
	}
}
