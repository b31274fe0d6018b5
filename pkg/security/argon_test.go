package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgonRoundTrip(t *testing.T) {
	a := NewArgon()

	encoded, err := a.GenerateFromPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"))

	ok, err := a.VerifyPasswd("correct horse battery staple", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.VerifyPasswd("wrong password", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgonHashesAreSalted(t *testing.T) {
	a := NewArgon()

	h1, err := a.GenerateFromPassword("password123")
	require.NoError(t, err)

	h2, err := a.GenerateFromPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestArgonRejectsMalformedHash(t *testing.T) {
	a := NewArgon()

	_, err := a.VerifyPasswd("whatever", "not-a-phc-string")
	assert.Error(t, err)

	_, err = a.VerifyPasswd("whatever", "$argon2id$v=19$m=65536,t=3,p=2$!!!$???")
	assert.Error(t, err)
}
