package domain

import "time"

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusPending    ComplaintStatus = "Pending"
	ComplaintStatusInProgress ComplaintStatus = "In-Progress"
	ComplaintStatusResolved   ComplaintStatus = "Resolved"
)

// ComplaintStatuses lists every status in lifecycle order.
var ComplaintStatuses = []ComplaintStatus{
	ComplaintStatusPending,
	ComplaintStatusInProgress,
	ComplaintStatusResolved,
}

// ParseComplaintStatus returns the status named by s. Matching is exact.
func ParseComplaintStatus(s string) (ComplaintStatus, bool) {
	for _, status := range ComplaintStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}

// Complaint is a grievance submitted by a user. OwnerID never changes after creation.
type Complaint struct {
	ID          string
	OwnerID     string
	RoomNo      string
	MobileNo    string
	RollNo      string
	Title       string
	Description string
	Status      ComplaintStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ComplaintOwner is the subset of the owning user shown to administrators.
type ComplaintOwner struct {
	Name  string
	Email string
}

// ComplaintWithOwner joins a complaint with its owner's contact details.
type ComplaintWithOwner struct {
	Complaint
	Owner ComplaintOwner
}
