package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// GetOrCreate returns the record for (employeeID, date), creating an empty
	// row if none exists. Relies on the unique (employee_id, date) constraint.
	GetOrCreate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)
	Update(ctx context.Context, att Attendance) error
	Delete(ctx context.Context, id string) error
	ListByDateRange(ctx context.Context, start, end time.Time, employeeID *string) ([]Attendance, error)

	// GetIncompleteBefore returns records dated strictly before date whose
	// derived status has not been finalized. Scoped to one employee when
	// employeeID is non-nil.
	GetIncompleteBefore(ctx context.Context, date time.Time, employeeID *string) ([]Attendance, error)

	// GetEmptyOnDate returns placeholder rows for the given date: no IN, no
	// OUT, no pending flag.
	GetEmptyOnDate(ctx context.Context, date time.Time, employeeID *string) ([]Attendance, error)

	// GetOpenOnDate returns rows for the given date that have an IN slot
	// populated. Used by the stale-record guard.
	GetOpenOnDate(ctx context.Context, date time.Time, employeeID *string) ([]Attendance, error)
}

type ApprovalRepository interface {
	Create(ctx context.Context, req ApprovalRequest) (ApprovalRequest, error)
	GetByID(ctx context.Context, id string) (ApprovalRequest, error)
	Update(ctx context.Context, req ApprovalRequest) error
	ListPending(ctx context.Context) ([]ApprovalRequest, error)
}
