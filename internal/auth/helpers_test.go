package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/flash"
)

// =============================================================================
// Fakes
// =============================================================================

type mockUserRepository struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	lookups int
	err     error
}

func newMockUserRepository(users ...*domain.User) *mockUserRepository {
	repo := &mockUserRepository{users: map[string]*domain.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (m *mockUserRepository) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (m *mockUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepository) setRole(id string, role domain.Role) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[id].Role = role
}

func (m *mockUserRepository) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
}

type recordingNotifier struct {
	notices []flash.Message
}

func (r *recordingNotifier) Push(_ *fiber.Ctx, kind flash.Kind, text string) {
	r.notices = append(r.notices, flash.Message{Kind: kind, Text: text})
}

type countingRecorder struct {
	counts map[string]int
}

func (r *countingRecorder) RecordGuardRejection(guard string) {
	if r.counts == nil {
		r.counts = map[string]int{}
	}
	r.counts[guard]++
}

var errStoreDown = errors.New("store unavailable")

var (
	ordinaryUser = &domain.User{ID: "u-1", Name: "Asha", Email: "asha@hostel.test", Role: domain.RoleOrdinary}
	adminUser    = &domain.User{ID: "u-2", Name: "Warden", Email: "warden@hostel.test", Role: domain.RoleAdmin}
)
