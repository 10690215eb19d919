package dto

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// SubmitComplaintRequest is the submission form. Any status or owner sent by
// the client is ignored.
type SubmitComplaintRequest struct {
	RoomNo      string `json:"roomNo" form:"roomNo"`
	MobileNo    string `json:"mobileNo" form:"mobileNo"`
	RollNo      string `json:"rollNo" form:"rollNo"`
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
}

// UpdateStatusRequest carries the new status for /update/:id.
type UpdateStatusRequest struct {
	Status string `json:"status" form:"status"`
}

// UpdateStatusByBodyRequest carries both id and status for /update-status.
type UpdateStatusByBodyRequest struct {
	ComplaintID string `json:"complaintId" form:"complaintId"`
	Status      string `json:"status" form:"status"`
}

// OwnComplaint is the owner's limited view of a complaint.
type OwnComplaint struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Status      domain.ComplaintStatus `json:"status"`
	CreatedAt   time.Time              `json:"created_at"`
}

// ComplaintOwner is the joined owner contact shown to administrators.
type ComplaintOwner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AdminComplaint is the administrator's full view of a complaint.
type AdminComplaint struct {
	ID          string                 `json:"id"`
	RoomNo      string                 `json:"roomNo"`
	MobileNo    string                 `json:"mobileNo"`
	RollNo      string                 `json:"rollNo"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Status      domain.ComplaintStatus `json:"status"`
	User        ComplaintOwner         `json:"user"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// FormField describes one input of a rendered form.
type FormField struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}
