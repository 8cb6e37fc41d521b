package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sump-exe/Sports-Game-Management/utils"
)

func TestLoginIssuesToken(t *testing.T) {
	hash, err := utils.HashPassword("sekret")
	require.NoError(t, err)

	svc := NewAuthService("admin", hash, "signing-key", testLogger()).(*authService)
	issued := time.Date(2024, time.November, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	token, err := svc.Login(context.Background(), "admin", "sekret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Validate claims as of one hour after issuing, well inside the TTL.
	jwt.TimeFunc = func() time.Time { return issued.Add(time.Hour) }
	t.Cleanup(func() { jwt.TimeFunc = time.Now })

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("signing-key"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, issued.Add(24*time.Hour), claims.ExpiresAt.Time)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	hash, err := utils.HashPassword("sekret")
	require.NoError(t, err)

	svc := NewAuthService("admin", hash, "signing-key", testLogger())

	_, err = svc.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "root", "sekret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
