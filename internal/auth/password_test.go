package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/testboard-dev/testboard/internal/auth"
)

func TestHashAndVerifyPassword(t *testing.T) {
	digest, err := auth.HashPassword("correct horse battery staple")
	assert.Nil(t, err)
	// the digest never contains the cleartext
	assert.NotContains(t, digest, "correct horse")

	assert.True(t, auth.VerifyPassword("correct horse battery staple", digest))
	assert.False(t, auth.VerifyPassword("wrong password", digest))
	assert.False(t, auth.VerifyPassword("correct horse battery staple", "not-a-digest"))
}
