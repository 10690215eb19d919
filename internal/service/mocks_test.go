package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
)

type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type ComplaintRepoMock struct {
	mock.Mock
}

func (m *ComplaintRepoMock) Create(ctx context.Context, complaint *domain.Complaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}

func (m *ComplaintRepoMock) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Complaint), args.Error(1)
}

func (m *ComplaintRepoMock) UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus) (*domain.Complaint, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Complaint), args.Error(1)
}

func (m *ComplaintRepoMock) ListByOwner(ctx context.Context, ownerID string) ([]domain.Complaint, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Complaint), args.Error(1)
}

func (m *ComplaintRepoMock) ListWithOwner(ctx context.Context, filter repository.ComplaintFilter) ([]domain.ComplaintWithOwner, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ComplaintWithOwner), args.Error(1)
}
