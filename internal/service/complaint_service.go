package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// ComplaintService owns complaint creation, status changes and listings.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	validate   *validator.Validate
}

// NewComplaintService constructs the service.
func NewComplaintService(complaints repository.ComplaintRepository) *ComplaintService {
	return &ComplaintService{complaints: complaints, validate: validator.New()}
}

// SubmitInput describes the fields a user fills in. Owner and status are not
// part of it: the owner is the submitter and every complaint starts Pending.
type SubmitInput struct {
	RoomNo      string `validate:"required"`
	MobileNo    string
	RollNo      string
	Title       string `validate:"required"`
	Description string `validate:"required"`
}

// Submit records a new complaint owned by actor.
func (s *ComplaintService) Submit(ctx context.Context, actor *domain.User, input SubmitInput) (*domain.Complaint, error) {
	if actor == nil || actor.ID == "" {
		return nil, apperrors.NewUnauthorized("authenticated user required")
	}

	input = SubmitInput{
		RoomNo:      strings.TrimSpace(input.RoomNo),
		MobileNo:    strings.TrimSpace(input.MobileNo),
		RollNo:      strings.TrimSpace(input.RollNo),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, submitValidationError(err)
	}

	complaint := &domain.Complaint{
		OwnerID:     actor.ID,
		RoomNo:      input.RoomNo,
		MobileNo:    input.MobileNo,
		RollNo:      input.RollNo,
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.ComplaintStatusPending,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return complaint, nil
}

// ListOwn returns the owner's complaints with title, description and status filled.
func (s *ComplaintService) ListOwn(ctx context.Context, ownerID string) ([]domain.Complaint, error) {
	complaints, err := s.complaints.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return complaints, nil
}

// ListAdminOpen returns every complaint that is not resolved.
func (s *ComplaintService) ListAdminOpen(ctx context.Context) ([]domain.ComplaintWithOwner, error) {
	return s.listWithOwner(ctx, repository.ComplaintFilter{
		ExcludeStatuses: []domain.ComplaintStatus{domain.ComplaintStatusResolved},
	})
}

// ListAdminResolved returns every resolved complaint.
func (s *ComplaintService) ListAdminResolved(ctx context.Context) ([]domain.ComplaintWithOwner, error) {
	return s.listWithOwner(ctx, repository.ComplaintFilter{
		Statuses: []domain.ComplaintStatus{domain.ComplaintStatusResolved},
	})
}

func (s *ComplaintService) listWithOwner(ctx context.Context, filter repository.ComplaintFilter) ([]domain.ComplaintWithOwner, error) {
	complaints, err := s.complaints.ListWithOwner(ctx, filter)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return complaints, nil
}

// UpdateStatus sets a complaint's status. Any status may follow any other,
// Resolved included.
func (s *ComplaintService) UpdateStatus(ctx context.Context, complaintID, newStatus string, actor *domain.User) (*domain.Complaint, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbidden("administrator role required")
	}
	parsed, err := uuid.Parse(complaintID)
	if err != nil {
		return nil, apperrors.NewNotFound("complaint", map[string]any{"id": complaintID})
	}
	complaintID = parsed.String()

	if _, err := s.complaints.GetByID(ctx, complaintID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"id": complaintID})
		}
		return nil, apperrors.NewPersistenceError(err)
	}

	status, ok := domain.ParseComplaintStatus(newStatus)
	if !ok {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{
			"status":  newStatus,
			"allowed": domain.ComplaintStatuses,
		})
	}

	updated, err := s.complaints.UpdateStatus(ctx, complaintID, status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"id": complaintID})
		}
		return nil, apperrors.NewPersistenceError(err)
	}
	return updated, nil
}

var submitFieldNames = map[string]string{
	"RoomNo":      "room number",
	"Title":       "title",
	"Description": "description",
}

func submitValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError("invalid complaint", nil)
	}
	missing := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		name, ok := submitFieldNames[fe.Field()]
		if !ok {
			name = fe.Field()
		}
		missing = append(missing, name)
	}
	return apperrors.NewValidationError(strings.Join(missing, ", ")+" required", map[string]any{"missing": missing})
}
