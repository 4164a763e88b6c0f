package auth

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/dvanenk/bookery/internal/app/models"
)

var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService defines the credential-store business logic.
type AuthService interface {
	// Register creates a new account. Failure modes, in precedence order:
	// models.ErrPasswordMismatch when password != confirm (soft, re-prompt),
	// models.ErrBadRequest when any field is empty after trimming,
	// models.ErrConflict when the username is already taken.
	Register(ctx context.Context, username, password, confirm string) error
	// Verify checks the submitted credentials against the stored verifier.
	// Every lookup failure — unknown username, integrity anomaly — maps to
	// models.ErrUnauthenticated, indistinguishable from a wrong password, so
	// the response never reveals whether a username exists.
	Verify(ctx context.Context, username, password string) error
}

type AuthServiceImpl struct {
	logger *zap.Logger
	repo   AccountRepo
}

func NewAuthService(repo AccountRepo, logger *zap.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{logger: logger, repo: repo}
}

// Register validates inputs, derives the bcrypt verifier and persists the
// account. The mismatch check runs before the emptiness check on purpose: a
// mismatch is a user-facing re-prompt, an empty field is a hard failure.
func (s *AuthServiceImpl) Register(ctx context.Context, username, password, confirm string) error {
	l := s.logger.With(zap.String("method", "Register"), zap.String("username", username))
	l.Debug("Attempting registration")

	if password != confirm {
		return models.ErrPasswordMismatch
	}

	username = strings.TrimSpace(username)
	if username == "" || password == "" || confirm == "" {
		return fmt.Errorf("no username/password specified: %w", models.ErrBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		l.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("could not process password")
	}

	accountID, err := s.repo.Create(ctx, username, string(hash))
	if err != nil {
		l.Warn("Repository registration failed", zap.Error(err))
		return fmt.Errorf("registration failed: %w", err)
	}

	l.Info("Registration successful", zap.String("accountID", accountID.String()))
	return nil
}

// Verify recomputes the verifier check against the stored salted hash.
func (s *AuthServiceImpl) Verify(ctx context.Context, username, password string) error {
	l := s.logger.With(zap.String("method", "Verify"), zap.String("username", username))

	if strings.TrimSpace(username) == "" || password == "" {
		return fmt.Errorf("no username/password specified: %w", models.ErrBadRequest)
	}

	account, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		// Unknown user and data-integrity anomaly get the same generic
		// outcome as a wrong password.
		l.Warn("Account lookup failed during verification", zap.Error(err))
		return fmt.Errorf("invalid credentials: %w", models.ErrUnauthenticated)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		l.Warn("Password comparison failed")
		return fmt.Errorf("invalid credentials: %w", models.ErrUnauthenticated)
	}

	return nil
}
