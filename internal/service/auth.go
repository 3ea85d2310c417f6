package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/avidela/product-catalog/internal/hash"
	"github.com/avidela/product-catalog/internal/logging"
	"github.com/avidela/product-catalog/internal/models"
	"github.com/avidela/product-catalog/internal/repo"
	"github.com/avidela/product-catalog/internal/tokens"
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

// Register creates a user with a bcrypt-hashed password. Username defaults
// to the local part of the email when not supplied.
func (s *AuthService) Register(ctx context.Context, email, password, username string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if email == "" || password == "" {
		return nil, ErrValidation
	}
	if username == "" {
		username = strings.SplitN(email, "@", 2)[0]
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: pwHash,
		Role:         "user",
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExists) {
			return nil, err
		}
		l.Error("register_error", "error", err)
		return nil, err
	}

	return &user, nil
}

// Login verifies the credentials and issues a signed session token. Unknown
// email and wrong password both come back as ErrInvalidCredentials so the
// caller cannot tell which check failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if email == "" || password == "" {
		return "", nil, ErrValidation
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		l.Error("login_error", "error", err)
		return "", nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := tokens.Sign(user.ID, user.Email, user.Role, s.JWTSecret, time.Now())
	if err != nil {
		l.Error("login_error", "reason", "cannot sign token", "error", err)
		return "", nil, err
	}

	return token, user, nil
}

// WhoAmI resolves the record behind an already verified identity. The token
// can outlive the user row, in which case this is a plain not-found.
func (s *AuthService) WhoAmI(ctx context.Context, userID string) (*models.User, error) {
	return s.Repo.GetUserByID(ctx, userID)
}
