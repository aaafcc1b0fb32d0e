package services

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-employee-service/internal/apperr"
	"github.com/sbilibin2017/gw-employee-service/internal/logger"
	"github.com/sbilibin2017/gw-employee-service/internal/models"
)

// Password length bounds accepted at signup. The upper one is the bcrypt input limit in bytes.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// Error variables
var (
	ErrUserAlreadyExists  = fmt.Errorf("user already exists: %w", apperr.ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("invalid username or password: %w", apperr.ErrInvalidCredentials)
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsernameOrEmail(ctx context.Context, username *string, email *string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username, email, passwordHash string) (uuid.UUID, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// JWTGenerator issues signed tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID, username string) (string, error)
}

// AuthService handles signup and login.
type AuthService struct {
	reader UserReader
	writer UserWriter
	hasher PasswordHasher
	jwt    JWTGenerator
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, hasher PasswordHasher, jwt JWTGenerator) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		hasher: hasher,
		jwt:    jwt,
	}
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates a user and returns its id.
// Duplicates are reported before the password length is checked.
// The lookup is advisory: a unique violation from the store is also reported as ErrUserAlreadyExists.
func (svc *AuthService) Signup(ctx context.Context, username, email, password string) (uuid.UUID, error) {
	username = strings.TrimSpace(username)
	email = NormalizeEmail(email)

	user, err := svc.reader.GetByUsernameOrEmail(ctx, &username, &email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return uuid.Nil, err
	}
	if user != nil {
		logger.Log.Infow("user already exists", "username", username)
		return uuid.Nil, ErrUserAlreadyExists
	}

	switch {
	case len(password) < MinPasswordLength:
		return uuid.Nil, apperr.NewValidationError("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	case len(password) > MaxPasswordLength:
		return uuid.Nil, apperr.NewValidationError("password", fmt.Sprintf("must be at most %d bytes", MaxPasswordLength))
	}

	hash, err := svc.hasher.Hash(password)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return uuid.Nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := svc.writer.Save(ctx, username, email, hash)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			logger.Log.Infow("user already exists", "username", username, "source", "constraint")
			return uuid.Nil, ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return uuid.Nil, err
	}

	logger.Log.Infow("user created", "user_id", userID)
	return userID, nil
}

// Login verifies credentials and returns a signed token.
// Email takes precedence over username when both are supplied.
// An unknown user and a wrong password both yield ErrInvalidCredentials.
func (svc *AuthService) Login(ctx context.Context, email, username, password string) (string, error) {
	var (
		byUsername *string
		byEmail    *string
	)
	if email = NormalizeEmail(email); email != "" {
		byEmail = &email
	} else {
		username = strings.TrimSpace(username)
		byUsername = &username
	}

	user, err := svc.reader.GetByUsernameOrEmail(ctx, byUsername, byEmail)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		logger.Log.Infow("login rejected", "reason", "unknown user")
		return "", ErrInvalidCredentials
	}

	if !svc.hasher.Verify(password, user.PasswordHash) {
		logger.Log.Infow("login rejected", "reason", "password mismatch", "user_id", user.UserID)
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.UserID, user.Username)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "user_id", user.UserID, "err", err)
		return "", fmt.Errorf("issue token: %w", err)
	}

	logger.Log.Infow("user logged in", "user_id", user.UserID)
	return token, nil
}
