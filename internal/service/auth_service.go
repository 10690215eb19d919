package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// Rejection explains why a sign-in attempt was turned down. It is an expected
// outcome, not an error.
type Rejection string

const (
	RejectionUnknownIdentifier Rejection = "identifier not registered"
	RejectionIncorrectSecret   Rejection = "incorrect secret"
)

// Notice returns the text shown to the user for the rejection.
func (r Rejection) Notice() string {
	switch r {
	case RejectionUnknownIdentifier:
		return "Username/email not registered"
	case RejectionIncorrectSecret:
		return "Incorrect Password"
	default:
		return "Invalid credentials"
	}
}

// AuthService verifies credentials and manages accounts.
type AuthService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(users repository.UserRepository, bcryptCost int) *AuthService {
	return &AuthService{users: users, bcryptCost: bcryptCost}
}

// Authenticate checks email and password against the stored account.
// Exactly one of the user, the rejection and the error is set.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, Rejection, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, RejectionUnknownIdentifier, nil
		}
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		return nil, "", fmt.Errorf("verify password for %s: %w", user.ID, err)
	}
	if !ok {
		return nil, RejectionIncorrectSecret, nil
	}
	return user, "", nil
}

// Register creates an ordinary account.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, apperrors.NewValidationError("name, email, password required", nil)
	}
	return s.create(ctx, name, email, password, domain.RoleOrdinary)
}

// EnsureAdmin creates an administrator account unless the email is already
// registered. It reports whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, apperrors.NewPersistenceError(err)
	}
	if _, err := s.create(ctx, name, email, password, domain.RoleAdmin); err != nil {
		return false, err
	}
	return true, nil
}

func (s *AuthService) create(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewPersistenceError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperrors.NewValidationError("password too long", map[string]any{"max_bytes": 72})
		}
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
		}
		return nil, apperrors.NewPersistenceError(err)
	}
	return user, nil
}
