package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
)

// ErrSessionSubjectNotFound means the session refers to a user that no longer exists.
var ErrSessionSubjectNotFound = errors.New("session subject not found")

// SessionResolver converts identities to durable session references and back.
// It never caches: every Deserialize reads the current user record.
type SessionResolver struct {
	users repository.UserRepository
}

// NewSessionResolver constructs a resolver backed by users.
func NewSessionResolver(users repository.UserRepository) *SessionResolver {
	return &SessionResolver{users: users}
}

// Serialize returns the reference stored in the session: the user id only.
func (r *SessionResolver) Serialize(user *domain.User) string {
	return user.ID
}

// Deserialize loads the user a session reference points at.
func (r *SessionResolver) Deserialize(ctx context.Context, ref string) (*domain.User, error) {
	if ref == "" {
		return nil, ErrSessionSubjectNotFound
	}
	user, err := r.users.GetByID(ctx, ref)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionSubjectNotFound
		}
		return nil, fmt.Errorf("load session user: %w", err)
	}
	return user, nil
}
