package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/complaint-service/internal/domain"
)

func TestSerializeCarriesOnlyTheID(t *testing.T) {
	resolver := NewSessionResolver(newMockUserRepository())
	assert.Equal(t, "u-2", resolver.Serialize(adminUser))
}

func TestDeserializeReadsCurrentState(t *testing.T) {
	repo := newMockUserRepository(&domain.User{ID: "u-9", Email: "x@test", Role: domain.RoleOrdinary})
	resolver := NewSessionResolver(repo)
	ctx := context.Background()

	user, err := resolver.Deserialize(ctx, "u-9")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOrdinary, user.Role)

	repo.setRole("u-9", domain.RoleAdmin)

	user, err = resolver.Deserialize(ctx, "u-9")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role, "role changes are visible on the next request")
	assert.Equal(t, 2, repo.lookups)
}

func TestDeserializeDeletedUser(t *testing.T) {
	repo := newMockUserRepository(ordinaryUser)
	resolver := NewSessionResolver(repo)
	repo.remove(ordinaryUser.ID)

	_, err := resolver.Deserialize(context.Background(), ordinaryUser.ID)
	assert.ErrorIs(t, err, ErrSessionSubjectNotFound)
}

func TestDeserializeEmptyReference(t *testing.T) {
	_, err := NewSessionResolver(newMockUserRepository()).Deserialize(context.Background(), "")
	assert.ErrorIs(t, err, ErrSessionSubjectNotFound)
}

func TestDeserializeStoreFailure(t *testing.T) {
	repo := newMockUserRepository(ordinaryUser)
	repo.err = errStoreDown

	_, err := NewSessionResolver(repo).Deserialize(context.Background(), ordinaryUser.ID)
	assert.ErrorIs(t, err, errStoreDown)
	assert.NotErrorIs(t, err, ErrSessionSubjectNotFound)
}
