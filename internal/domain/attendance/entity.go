package attendance

import (
	"fmt"
	"time"
)

// Attendance directions
const (
	TypeIn  = "in"
	TypeOut = "out"
)

// Attendance statuses
const (
	StatusAbsent  = "Absent"
	StatusHalfDay = "Half Day"
	StatusFullDay = "Full Day"
)

// Attendance is the single daily record per employee. IN and OUT slots are
// independent; the Pending* fields form an all-or-nothing side channel that
// mirrors an open ApprovalRequest.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time

	InTime      *time.Time
	InLatitude  *float64
	InLongitude *float64
	InAddress   *string
	InPhotoPath *string
	SiteID      *string

	OutTime      *time.Time
	OutLatitude  *float64
	OutLongitude *float64
	OutAddress   *string
	OutPhotoPath *string

	Status       string
	WorkingHours string

	PendingApproval  bool
	PendingType      *string
	PendingLatitude  *float64
	PendingLongitude *float64
	PendingAddress   *string
	PendingTime      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
	SiteName     *string
}

// IsEmpty reports whether the record carries no real data: both slots empty
// and no pending request. Empty records are placeholders eligible for deletion.
func (a *Attendance) IsEmpty() bool {
	return a.InTime == nil && a.OutTime == nil && !a.PendingApproval
}

// SetPending populates the pending side channel as a unit.
func (a *Attendance) SetPending(attendanceType string, lat, lon float64, address string, t time.Time) {
	a.PendingApproval = true
	a.PendingType = &attendanceType
	a.PendingLatitude = &lat
	a.PendingLongitude = &lon
	a.PendingAddress = &address
	a.PendingTime = &t
}

// ClearPending resets the pending side channel as a unit.
func (a *Attendance) ClearPending() {
	a.PendingApproval = false
	a.PendingType = nil
	a.PendingLatitude = nil
	a.PendingLongitude = nil
	a.PendingAddress = nil
	a.PendingTime = nil
}

// Recompute refreshes the derived status and working hours fields.
func (a *Attendance) Recompute() {
	a.Status = DetermineStatus(a.InTime, a.OutTime)
	a.WorkingHours = CalculateWorkingHours(a.InTime, a.OutTime)
}

// DetermineStatus derives the day status from the IN/OUT timestamps.
// Full Day requires IN within the 07:45-08:15 grace window and OUT at or
// after 18:00. Either endpoint present without both conditions is Half Day.
func DetermineStatus(in, out *time.Time) string {
	if in == nil && out == nil {
		return StatusAbsent
	}

	if in != nil && out != nil {
		inMinutes := in.Hour()*60 + in.Minute()
		outMinutes := out.Hour()*60 + out.Minute()

		graceStart := 7*60 + 45
		graceEnd := 8*60 + 15
		dayEnd := 18 * 60

		if inMinutes >= graceStart && inMinutes <= graceEnd && outMinutes >= dayEnd {
			return StatusFullDay
		}
	}

	return StatusHalfDay
}

// CalculateWorkingHours formats OUT-IN as "H:MM", or "0:00" when either
// endpoint is missing or the interval is not positive.
func CalculateWorkingHours(in, out *time.Time) string {
	if in == nil || out == nil {
		return "0:00"
	}

	d := out.Sub(*in)
	if d <= 0 {
		return "0:00"
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%d:%02d", hours, minutes)
}
