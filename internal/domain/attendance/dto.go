package attendance

import (
	"mime/multipart"
	"time"

	"github.com/attendlab/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type SubmitRequest struct {
	EmployeeID string                `json:"-"`
	Type       string                `json:"type"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Type != TypeIn && r.Type != TypeOut {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be 'in' or 'out'",
		})
	}

	if r.FileHeader == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "attendance photo is required",
		})
	} else if !validator.IsValidImageExt(r.FileHeader.Filename) {
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "invalid file type: only jpg, jpeg, png allowed",
		})
	} else if r.FileHeader.Size > 10<<20 { // 10MB
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "attendance photo size must not exceed 10MB",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SubmitResult reports the outcome of a check-in/out submission. Accepted is
// true both for direct commits and for submissions routed to approval.
type SubmitResult struct {
	Accepted        bool       `json:"accepted"`
	PendingApproval bool       `json:"pending_approval"`
	Message         string     `json:"message"`
	Address         string     `json:"address,omitempty"`
	SiteName        string     `json:"site_name,omitempty"`
	DistanceKm      float64    `json:"distance_km,omitempty"`
	PhotoTime       *time.Time `json:"photo_time,omitempty"`
}

type ListRequest struct {
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	EmployeeID string `json:"employee_id"`
}

func (r *ListRequest) Validate() error {
	var errs validator.ValidationErrors

	start, ok := validator.IsValidDate(r.StartDate)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, ok := validator.IsValidDate(r.EndDate)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) == 0 && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// APPROVAL DTOs
// ========================================

// AttendanceResponse is the wire shape of a daily record.
type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`

	InTime      *string  `json:"in_time,omitempty"`
	InLatitude  *float64 `json:"in_latitude,omitempty"`
	InLongitude *float64 `json:"in_longitude,omitempty"`
	InAddress   *string  `json:"in_address,omitempty"`
	InPhotoPath *string  `json:"in_photo_path,omitempty"`
	SiteID      *string  `json:"site_id,omitempty"`
	SiteName    *string  `json:"site_name,omitempty"`

	OutTime      *string  `json:"out_time,omitempty"`
	OutLatitude  *float64 `json:"out_latitude,omitempty"`
	OutLongitude *float64 `json:"out_longitude,omitempty"`
	OutAddress   *string  `json:"out_address,omitempty"`
	OutPhotoPath *string  `json:"out_photo_path,omitempty"`

	Status       string `json:"status"`
	WorkingHours string `json:"working_hours"`

	PendingApproval bool    `json:"pending_approval"`
	PendingType     *string `json:"pending_type,omitempty"`
	PendingTime     *string `json:"pending_time,omitempty"`
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:              a.ID,
		EmployeeID:      a.EmployeeID,
		EmployeeName:    a.EmployeeName,
		Date:            a.Date.Format("2006-01-02"),
		InTime:          timePtrToString(a.InTime),
		InLatitude:      a.InLatitude,
		InLongitude:     a.InLongitude,
		InAddress:       a.InAddress,
		InPhotoPath:     a.InPhotoPath,
		SiteID:          a.SiteID,
		SiteName:        a.SiteName,
		OutTime:         timePtrToString(a.OutTime),
		OutLatitude:     a.OutLatitude,
		OutLongitude:    a.OutLongitude,
		OutAddress:      a.OutAddress,
		OutPhotoPath:    a.OutPhotoPath,
		Status:          a.Status,
		WorkingHours:    a.WorkingHours,
		PendingApproval: a.PendingApproval,
		PendingType:     a.PendingType,
		PendingTime:     timePtrToString(a.PendingTime),
	}
}

func NewAttendanceResponses(records []Attendance) []AttendanceResponse {
	responses := make([]AttendanceResponse, 0, len(records))
	for _, a := range records {
		responses = append(responses, NewAttendanceResponse(a))
	}
	return responses
}

// ApprovalResponse is the wire shape of an approval request.
type ApprovalResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	AttendanceID *string `json:"attendance_id,omitempty"`
	Date         string  `json:"date"`
	Type         string  `json:"type"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Address      string  `json:"address"`
	Time         string  `json:"time"`
	Status       string  `json:"status"`
	Remarks      *string `json:"remarks,omitempty"`
	DecidedBy    *string `json:"decided_by,omitempty"`
	DecidedAt    *string `json:"decided_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func NewApprovalResponse(r ApprovalRequest) ApprovalResponse {
	return ApprovalResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		AttendanceID: r.AttendanceID,
		Date:         r.Date.Format("2006-01-02"),
		Type:         r.Type,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		Address:      r.Address,
		Time:         r.Time.Format("2006-01-02 15:04:05"),
		Status:       r.Status,
		Remarks:      r.Remarks,
		DecidedBy:    r.DecidedBy,
		DecidedAt:    timePtrToString(r.DecidedAt),
		CreatedAt:    r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func NewApprovalResponses(requests []ApprovalRequest) []ApprovalResponse {
	responses := make([]ApprovalResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, NewApprovalResponse(r))
	}
	return responses
}

type DecisionRequest struct {
	ApprovalID string  `json:"-"`
	AdminID    string  `json:"-"`
	Remarks    *string `json:"remarks"`
}

func (r *DecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ApprovalID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}

	if validator.IsEmpty(r.AdminID) {
		errs = append(errs, validator.ValidationError{
			Field:   "admin_id",
			Message: "admin_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
