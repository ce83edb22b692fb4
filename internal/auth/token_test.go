package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/testboard-dev/testboard/internal/auth"
)

func TestIssueAndVerify(t *testing.T) {
	service := auth.NewTokenService("test-secret", time.Hour)
	userID := uuid.New()

	token, expiresAt, err := service.Issue(userID, "qa")
	assert.Nil(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	session, err := service.Verify(token)
	assert.Nil(t, err)
	assert.Equal(t, userID, session.UserID())
	assert.Equal(t, "qa", session.GetRole())
}

func TestVerifyExpiredToken(t *testing.T) {
	service := auth.NewTokenService("test-secret", -time.Minute)

	token, _, err := service.Issue(uuid.New(), "dev")
	assert.Nil(t, err)

	_, err = service.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	service := auth.NewTokenService("test-secret", time.Hour)
	other := auth.NewTokenService("other-secret", time.Hour)

	token, _, err := service.Issue(uuid.New(), "admin")
	assert.Nil(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	service := auth.NewTokenService("test-secret", time.Hour)

	_, err := service.Verify("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
