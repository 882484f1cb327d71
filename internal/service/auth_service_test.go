package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilecart/storefront_api/internal/models"
	"github.com/nilecart/storefront_api/internal/utils"
)

func TestMain(m *testing.M) {
	utils.SetJWTSecret("service-test-secret")
	m.Run()
}

func TestSignupAndLogin(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(users)

	user, token, err := svc.Signup(context.Background(), "Salma Farouk", "salma@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.RoleClient, user.Role)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)

	claims, err := utils.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "client", claims.Role)

	_, _, err = svc.Login(context.Background(), "salma@example.com", "correct horse battery")
	assert.NoError(t, err)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(users)

	_, _, err := svc.Signup(context.Background(), "Salma Farouk", "salma@example.com", "correct horse battery")
	require.NoError(t, err)

	_, _, err = svc.Signup(context.Background(), "Other", "salma@example.com", "another password")
	assert.ErrorIs(t, err, utils.ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(users)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, _, err = svc.Signup(context.Background(), "Salma Farouk", "salma@example.com", "correct horse battery")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "salma@example.com", "wrong password")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestSignupNeverGrantsAdmin(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(users)

	user, _, err := svc.Signup(context.Background(), "Sneaky", "sneaky@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, user.Role)
}
