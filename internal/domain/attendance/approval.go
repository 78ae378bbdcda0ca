package attendance

import "time"

// Approval request statuses
const (
	ApprovalPending  = "Pending"
	ApprovalApproved = "Approved"
	ApprovalRejected = "Rejected"
)

// ApprovalRequest is the snapshot of an out-of-range submission awaiting an
// admin decision. Its ID doubles as the deep-link token in approval emails.
type ApprovalRequest struct {
	ID           string
	EmployeeID   string
	AttendanceID *string
	Date         time.Time
	Type         string
	Latitude     float64
	Longitude    float64
	Address      string
	Time         time.Time
	Status       string
	Remarks      *string
	DecidedBy    *string
	DecidedAt    *time.Time
	CreatedAt    time.Time

	// DTO
	EmployeeName *string
}

// IsDecided reports whether the request has already been approved or rejected.
func (r *ApprovalRequest) IsDecided() bool {
	return r.Status != ApprovalPending
}
