package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	// Submit processes a check-in/out photo through identity verification,
	// evidence extraction, freshness checks and proximity resolution, then
	// commits the day's record or routes the event to approval.
	Submit(ctx context.Context, req SubmitRequest) (SubmitResult, error)

	// Status returns today's record for the employee, if any.
	Status(ctx context.Context, employeeID string) (Attendance, error)

	List(ctx context.Context, req ListRequest) ([]Attendance, error)

	Approve(ctx context.Context, req DecisionRequest) (ApprovalRequest, error)
	Reject(ctx context.Context, req DecisionRequest) (ApprovalRequest, error)
	ListPendingApprovals(ctx context.Context) ([]ApprovalRequest, error)

	// Sweep finalizes stale incomplete records and purges placeholders.
	// A nil employeeID runs the global pass.
	Sweep(ctx context.Context, employeeID *string, today time.Time) error
}
