package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// MemoryStore keeps users and complaints in process. It backs the service when
// no Postgres DSN is configured and mirrors the Postgres repositories'
// semantics: pgx.ErrNoRows for missing rows and insertion-ordered listings.
// Stored strings are cloned; callers may pass request-scoped buffers.
type MemoryStore struct {
	mu         sync.RWMutex
	users      map[string]domain.User
	complaints []domain.Complaint
	now        func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]domain.User), now: time.Now}
}

// Users returns a UserRepository view of the store.
func (s *MemoryStore) Users() UserRepository {
	return memoryUsers{s}
}

// Complaints returns a ComplaintRepository view of the store.
func (s *MemoryStore) Complaints() ComplaintRepository {
	return memoryComplaints{s}
}

type memoryUsers struct{ s *MemoryStore }

func (r memoryUsers) Create(_ context.Context, user *domain.User) error {
	if !user.Role.Valid() {
		return fmt.Errorf("%w %q", ErrUnknownRole, user.Role)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	now := r.s.now()
	user.ID = uuid.NewString()
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.users[user.ID] = domain.User{
		ID:           user.ID,
		Name:         strings.Clone(user.Name),
		Email:        strings.Clone(user.Email),
		PasswordHash: strings.Clone(user.PasswordHash),
		Role:         domain.Role(strings.Clone(string(user.Role))),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return nil
}

func (r memoryUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r memoryUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, user := range r.s.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memoryComplaints struct{ s *MemoryStore }

func (r memoryComplaints) Create(_ context.Context, complaint *domain.Complaint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[complaint.OwnerID]; !ok {
		return fmt.Errorf("complaint owner %s does not exist", complaint.OwnerID)
	}
	now := r.s.now()
	complaint.ID = uuid.NewString()
	complaint.CreatedAt, complaint.UpdatedAt = now, now
	r.s.complaints = append(r.s.complaints, domain.Complaint{
		ID:          complaint.ID,
		OwnerID:     strings.Clone(complaint.OwnerID),
		RoomNo:      strings.Clone(complaint.RoomNo),
		MobileNo:    strings.Clone(complaint.MobileNo),
		RollNo:      strings.Clone(complaint.RollNo),
		Title:       strings.Clone(complaint.Title),
		Description: strings.Clone(complaint.Description),
		Status:      domain.ComplaintStatus(strings.Clone(string(complaint.Status))),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	return nil
}

func (r memoryComplaints) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, complaint := range r.s.complaints {
		if complaint.ID == id {
			found := complaint
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r memoryComplaints) UpdateStatus(_ context.Context, id string, status domain.ComplaintStatus) (*domain.Complaint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.complaints {
		if r.s.complaints[i].ID == id {
			r.s.complaints[i].Status = domain.ComplaintStatus(strings.Clone(string(status)))
			r.s.complaints[i].UpdatedAt = r.s.now()
			updated := r.s.complaints[i]
			return &updated, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r memoryComplaints) ListByOwner(_ context.Context, ownerID string) ([]domain.Complaint, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var result []domain.Complaint
	for _, complaint := range r.s.complaints {
		if complaint.OwnerID != ownerID {
			continue
		}
		result = append(result, domain.Complaint{
			ID:          complaint.ID,
			OwnerID:     complaint.OwnerID,
			Title:       complaint.Title,
			Description: complaint.Description,
			Status:      complaint.Status,
			CreatedAt:   complaint.CreatedAt,
		})
	}
	return result, nil
}

func (r memoryComplaints) ListWithOwner(_ context.Context, filter ComplaintFilter) ([]domain.ComplaintWithOwner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var result []domain.ComplaintWithOwner
	for _, complaint := range r.s.complaints {
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, complaint.Status) {
			continue
		}
		if containsStatus(filter.ExcludeStatuses, complaint.Status) {
			continue
		}
		owner := r.s.users[complaint.OwnerID]
		result = append(result, domain.ComplaintWithOwner{
			Complaint: complaint,
			Owner:     domain.ComplaintOwner{Name: owner.Name, Email: owner.Email},
		})
	}
	return result, nil
}

func containsStatus(statuses []domain.ComplaintStatus, status domain.ComplaintStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
