package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sudharmabg/taskhive/internal/config"
	"github.com/Sudharmabg/taskhive/internal/repository"
)

func newAuthFixture(t *testing.T) (AuthService, *fakeUserRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: 1}
	return NewAuthService(cfg, userRepo), userRepo
}

func seedActiveUser(t *testing.T, userRepo *fakeUserRepo, email, password string) *repository.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &repository.User{
		CompanyID:  "co-1",
		EmployeeID: "EMP001",
		Name:       "Alice",
		Email:      email,
		Password:   string(hash),
		Status:     "ACTIVE",
	}
	require.NoError(t, userRepo.Create(context.Background(), user))
	return user
}

func TestLogin(t *testing.T) {
	svc, userRepo := newAuthFixture(t)
	ctx := context.Background()

	seeded := seedActiveUser(t, userRepo, "alice@acme.test", "secret123")

	user, token, err := svc.Login(ctx, "alice@acme.test", "secret123")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, user.ID)
	assert.NotEmpty(t, token)

	// The issued token resolves back to the same user
	resolved, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, resolved.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, userRepo := newAuthFixture(t)
	ctx := context.Background()

	seedActiveUser(t, userRepo, "alice@acme.test", "secret123")

	_, _, err := svc.Login(ctx, "alice@acme.test", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@acme.test", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginSurfacesStorageErrors(t *testing.T) {
	svc, userRepo := newAuthFixture(t)
	seedActiveUser(t, userRepo, "alice@acme.test", "s3cret")

	// A backend outage must not read as a bad password
	userRepo.findByEmailErr = errors.New("connection refused")
	_, _, err := svc.Login(context.Background(), "alice@acme.test", "s3cret")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, userRepo.findByEmailErr)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	svc, userRepo := newAuthFixture(t)
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	user := &repository.User{
		CompanyID:  "co-1",
		EmployeeID: "EMP002",
		Name:       "Bob",
		Email:      "bob@acme.test",
		Password:   string(hash),
		Status:     "PENDING",
	}
	require.NoError(t, userRepo.Create(ctx, user))

	_, _, err := svc.Login(ctx, "bob@acme.test", "secret123")
	assert.ErrorIs(t, err, ErrAccountNotActive)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.ValidateToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSetupPasswordActivatesAccount(t *testing.T) {
	svc, userRepo := newAuthFixture(t)
	ctx := context.Background()

	token := "setup-token-1"
	expires := time.Now().Add(24 * time.Hour)
	placeholder, _ := bcrypt.GenerateFromPassword([]byte("placeholder"), bcrypt.DefaultCost)
	user := &repository.User{
		CompanyID:            "co-1",
		EmployeeID:           "EMP003",
		Name:                 "Carol",
		Email:                "carol@acme.test",
		Password:             string(placeholder),
		Status:               "PENDING",
		PasswordResetToken:   &token,
		PasswordResetExpires: &expires,
	}
	require.NoError(t, userRepo.Create(ctx, user))

	activated, err := svc.SetupPassword(ctx, token, "newsecret")
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", activated.Status)
	assert.Nil(t, activated.PasswordResetToken)

	// The new credential works and the token is single-use
	_, _, err = svc.Login(ctx, "carol@acme.test", "newsecret")
	require.NoError(t, err)

	_, err = svc.SetupPassword(ctx, token, "another")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSetupPasswordRejectsExpiredToken(t *testing.T) {
	svc, userRepo := newAuthFixture(t)
	ctx := context.Background()

	token := "stale-token"
	expires := time.Now().Add(-time.Hour)
	user := &repository.User{
		CompanyID:            "co-1",
		EmployeeID:           "EMP004",
		Name:                 "Dan",
		Email:                "dan@acme.test",
		Password:             "x",
		Status:               "PENDING",
		PasswordResetToken:   &token,
		PasswordResetExpires: &expires,
	}
	require.NoError(t, userRepo.Create(ctx, user))

	_, err := svc.SetupPassword(ctx, token, "newsecret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
