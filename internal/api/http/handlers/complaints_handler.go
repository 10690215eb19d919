package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/flash"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// Complaint route paths used as redirect targets.
const (
	AddComplaintPath  = "/complaints/add"
	MyComplaintsPath  = "/complaints/my-complaints"
	AllComplaintsPath = "/complaints/all"
)

// ComplaintsHandler serves complaint submission, listings and triage.
type ComplaintsHandler struct {
	service *service.ComplaintService
	notices Notices
	logger  *zap.Logger
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService, notices Notices, logger *zap.Logger) *ComplaintsHandler {
	return &ComplaintsHandler{service: complaintService, notices: notices, logger: logger}
}

// AddForm GET /complaints/add.
func (h *ComplaintsHandler) AddForm(c *fiber.Ctx) error {
	return render(c, h.notices, "add-complaint", fiber.Map{
		"fields": []dto.FormField{
			{Name: "roomNo", Label: "Room No", Required: true},
			{Name: "mobileNo", Label: "Mobile No"},
			{Name: "rollNo", Label: "Roll No"},
			{Name: "title", Label: "Title", Required: true},
			{Name: "description", Label: "Description", Required: true},
		},
	})
}

// Submit POST /complaints/add.
func (h *ComplaintsHandler) Submit(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return redirectWith(c, h.notices, flash.KindError, auth.NoticeLoginFirst, auth.LoginPath)
	}

	var req dto.SubmitComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return redirectWith(c, h.notices, flash.KindError, "Invalid complaint form", AddComplaintPath)
	}

	complaint, err := h.service.Submit(c.UserContext(), identity, service.SubmitInput{
		RoomNo:      req.RoomNo,
		MobileNo:    req.MobileNo,
		RollNo:      req.RollNo,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeValidation) {
			return redirectWith(c, h.notices, flash.KindError, capitalize(apperrors.ToDomainError(err).Message), AddComplaintPath)
		}
		h.logger.Error("submit complaint", zap.Error(err), zap.String("user_id", identity.ID))
		return redirectWith(c, h.notices, flash.KindError, "Failed to submit complaint", homePath)
	}

	h.logger.Info("complaint submitted", zap.String("complaint_id", complaint.ID), zap.String("user_id", identity.ID))
	return redirectWith(c, h.notices, flash.KindSuccess, "Complaint submitted successfully", MyComplaintsPath)
}

// MyComplaints GET /complaints/my-complaints.
func (h *ComplaintsHandler) MyComplaints(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return redirectWith(c, h.notices, flash.KindError, auth.NoticeLoginFirst, auth.LoginPath)
	}

	complaints, err := h.service.ListOwn(c.UserContext(), identity.ID)
	if err != nil {
		return err
	}
	items := make([]dto.OwnComplaint, 0, len(complaints))
	for i := range complaints {
		items = append(items, ownComplaint(&complaints[i]))
	}
	return render(c, h.notices, "my-complaints", fiber.Map{"complaints": items})
}

// AllOpen GET /complaints/all.
func (h *ComplaintsHandler) AllOpen(c *fiber.Ctx) error {
	complaints, err := h.service.ListAdminOpen(c.UserContext())
	if err != nil {
		return err
	}
	return render(c, h.notices, "all-complaints", fiber.Map{
		"complaints": adminComplaints(complaints),
		"statuses":   domain.ComplaintStatuses,
	})
}

// Resolved GET /complaints/resolved.
func (h *ComplaintsHandler) Resolved(c *fiber.Ctx) error {
	complaints, err := h.service.ListAdminResolved(c.UserContext())
	if err != nil {
		return err
	}
	return render(c, h.notices, "resolved-complaints", fiber.Map{
		"complaints": adminComplaints(complaints),
	})
}

// UpdateByPath POST /complaints/update/:id.
func (h *ComplaintsHandler) UpdateByPath(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return redirectWith(c, h.notices, flash.KindError, "Invalid status form", AllComplaintsPath)
	}
	return h.updateStatus(c, c.Params("id"), req.Status, "Complaint status updated")
}

// UpdateByBody POST /complaints/update-status.
func (h *ComplaintsHandler) UpdateByBody(c *fiber.Ctx) error {
	var req dto.UpdateStatusByBodyRequest
	if err := c.BodyParser(&req); err != nil {
		return redirectWith(c, h.notices, flash.KindError, "Invalid status form", AllComplaintsPath)
	}
	return h.updateStatus(c, req.ComplaintID, req.Status, "Complaint status updated successfully")
}

func (h *ComplaintsHandler) updateStatus(c *fiber.Ctx, complaintID, status, successNotice string) error {
	identity, _ := auth.IdentityFromContext(c)

	updated, err := h.service.UpdateStatus(c.UserContext(), complaintID, status, identity)
	if err != nil {
		domainErr := apperrors.ToDomainError(err)
		switch domainErr.Code {
		case apperrors.CodeNotFound:
			return redirectWith(c, h.notices, flash.KindError, "Complaint not found", AllComplaintsPath)
		case apperrors.CodeValidation:
			return redirectWith(c, h.notices, flash.KindError, capitalize(domainErr.Message), AllComplaintsPath)
		case apperrors.CodeForbidden:
			return redirectWith(c, h.notices, flash.KindError, auth.NoticeUnauthorized, auth.RootPath)
		}
		h.logger.Error("update complaint status", zap.Error(err), zap.String("complaint_id", complaintID))
		return redirectWith(c, h.notices, flash.KindError, "Something went wrong", AllComplaintsPath)
	}

	h.logger.Info("complaint status updated",
		zap.String("complaint_id", updated.ID),
		zap.String("status", string(updated.Status)),
		zap.String("admin_id", identity.ID))
	return redirectWith(c, h.notices, flash.KindSuccess, successNotice, AllComplaintsPath)
}

func ownComplaint(complaint *domain.Complaint) dto.OwnComplaint {
	return dto.OwnComplaint{
		ID:          complaint.ID,
		Title:       complaint.Title,
		Description: complaint.Description,
		Status:      complaint.Status,
		CreatedAt:   complaint.CreatedAt,
	}
}

func adminComplaints(complaints []domain.ComplaintWithOwner) []dto.AdminComplaint {
	items := make([]dto.AdminComplaint, 0, len(complaints))
	for _, complaint := range complaints {
		items = append(items, dto.AdminComplaint{
			ID:          complaint.ID,
			RoomNo:      complaint.RoomNo,
			MobileNo:    complaint.MobileNo,
			RollNo:      complaint.RollNo,
			Title:       complaint.Title,
			Description: complaint.Description,
			Status:      complaint.Status,
			User:        dto.ComplaintOwner{Name: complaint.Owner.Name, Email: complaint.Owner.Email},
			CreatedAt:   complaint.CreatedAt,
			UpdatedAt:   complaint.UpdatedAt,
		})
	}
	return items
}
