package repository

import (
	"context"
	"fmt"
	"testing"
	"unsafe"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// unsafeString aliases b the way fiber hands out request values.
func unsafeString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

func seedUser(t *testing.T, store *MemoryStore, email string) *domain.User {
	t.Helper()
	user := &domain.User{Name: email, Email: email, Role: domain.RoleOrdinary}
	require.NoError(t, store.Users().Create(context.Background(), user))
	return user
}

func TestMemoryUsers(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	user := seedUser(t, store, "asha@hostel.test")

	byID, err := store.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "asha@hostel.test", byID.Email)

	_, err = store.Users().GetByEmail(ctx, "ASHA@hostel.test")
	assert.ErrorIs(t, err, pgx.ErrNoRows, "email match is exact")

	err = store.Users().Create(ctx, &domain.User{Email: "asha@hostel.test", Role: domain.RoleOrdinary})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	err = store.Users().Create(ctx, &domain.User{Email: "root@hostel.test", Role: "ROOT"})
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestMemoryStoreKeepsItsOwnCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	buf := []byte("asha@hostel.test")
	email := unsafeString(buf)
	user := &domain.User{Name: "Asha", Email: email, Role: domain.RoleOrdinary}
	require.NoError(t, store.Users().Create(ctx, user))

	titleBuf := []byte("Leak")
	complaint := &domain.Complaint{OwnerID: user.ID, RoomNo: "101", Title: unsafeString(titleBuf), Description: "d", Status: domain.ComplaintStatusPending}
	require.NoError(t, store.Complaints().Create(ctx, complaint))

	copy(buf, "xxxx@hostel.test")
	copy(titleBuf, "Fans")

	found, err := store.Users().GetByEmail(ctx, "asha@hostel.test")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	stored, err := store.Complaints().GetByID(ctx, complaint.ID)
	require.NoError(t, err)
	assert.Equal(t, "Leak", stored.Title)
}

func TestMemoryComplaintsOwnerIsolationAndPartition(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	repo := store.Complaints()
	a := seedUser(t, store, "a@hostel.test")
	b := seedUser(t, store, "b@hostel.test")

	statuses := []domain.ComplaintStatus{
		domain.ComplaintStatusPending,
		domain.ComplaintStatusResolved,
		domain.ComplaintStatusInProgress,
		domain.ComplaintStatusResolved,
	}
	for i, status := range statuses {
		owner := a
		if i%2 == 1 {
			owner = b
		}
		c := &domain.Complaint{OwnerID: owner.ID, RoomNo: "1", Title: fmt.Sprintf("t%d", i), Description: "d", Status: domain.ComplaintStatusPending}
		require.NoError(t, repo.Create(ctx, c))
		_, err := repo.UpdateStatus(ctx, c.ID, status)
		require.NoError(t, err)
	}

	own, err := repo.ListByOwner(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, own, 2)
	for _, c := range own {
		assert.Equal(t, a.ID, c.OwnerID)
		assert.Empty(t, c.RoomNo, "owner listing is projected")
	}
	assert.Equal(t, "t0", own[0].Title, "insertion order")

	open, err := repo.ListWithOwner(ctx, ComplaintFilter{ExcludeStatuses: []domain.ComplaintStatus{domain.ComplaintStatusResolved}})
	require.NoError(t, err)
	resolved, err := repo.ListWithOwner(ctx, ComplaintFilter{Statuses: []domain.ComplaintStatus{domain.ComplaintStatusResolved}})
	require.NoError(t, err)
	all, err := repo.ListWithOwner(ctx, ComplaintFilter{})
	require.NoError(t, err)

	assert.Len(t, open, 2)
	assert.Len(t, resolved, 2)
	assert.Len(t, all, len(open)+len(resolved))
	seen := map[string]bool{}
	for _, c := range append(open, resolved...) {
		assert.False(t, seen[c.ID], "open and resolved are disjoint")
		seen[c.ID] = true
	}
	assert.Equal(t, "b@hostel.test", resolved[0].Owner.Email)
}

func TestMemoryComplaintsMissing(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Complaints().GetByID(ctx, "nope")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	_, err = store.Complaints().UpdateStatus(ctx, "nope", domain.ComplaintStatusResolved)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.Error(t, store.Complaints().Create(ctx, &domain.Complaint{OwnerID: "ghost"}))
}
