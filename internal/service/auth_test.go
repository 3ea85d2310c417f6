package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/avidela/product-catalog/internal/models"
	"github.com/avidela/product-catalog/internal/repo"
	"github.com/avidela/product-catalog/internal/tokens"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.User{}, &models.Counter{}))
	return db
}

func newTestAuthService(t *testing.T) *AuthService {
	return &AuthService{
		Repo:      repo.New(newTestDB(t)),
		JWTSecret: []byte("test-jwt-secret"),
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "empty email", email: "", password: "secret"},
		{name: "empty password", email: "ana@example.com", password: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			user, err := svc.Register(ctx, tt.email, tt.password, "")
			require.Error(t, err)
			assert.Nil(t, user)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_Register_DefaultsUsernameToLocalPart(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)

	user, err := svc.Register(context.Background(), "ana@example.com", "secret", "")
	require.NoError(t, err)
	assert.Equal(t, "ana", user.Username)
	assert.Equal(t, "user", user.Role)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "secret", user.PasswordHash)
}

func TestAuthService_Register_Conflict(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ana@example.com", "secret", "ana")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "ana@example.com", "other", "impostor")
	assert.ErrorIs(t, err, repo.ErrUserAlreadyExists)
}

func TestAuthService_Login_Success(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "ana@example.com", "secret", "")
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, "ana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	claims, err := tokens.ClaimsFromToken(token, svc.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.WithinDuration(t, time.Now().Add(tokens.SessionTTL), claims.ExpiresAt.Time, 2*time.Second)
}

func TestAuthService_Login_FailureCausesIndistinguishable(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ana@example.com", "secret", "")
	require.NoError(t, err)

	_, _, errWrongPassword := svc.Login(ctx, "ana@example.com", "nope")
	_, _, errUnknownEmail := svc.Login(ctx, "nobody@example.com", "secret")

	assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownEmail, ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}

func TestAuthService_Login_MissingSecret(t *testing.T) {
	t.Parallel()

	svc := &AuthService{Repo: repo.New(newTestDB(t))}
	ctx := context.Background()

	_, err := svc.Register(ctx, "ana@example.com", "secret", "")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ana@example.com", "secret")
	assert.ErrorIs(t, err, tokens.ErrNoSecret)
}

func TestAuthService_WhoAmI(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "ana@example.com", "secret", "")
	require.NoError(t, err)

	user, err := svc.WhoAmI(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)

	// token identity can outlive the record
	_, err = svc.WhoAmI(ctx, "deleted-user")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
