package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendlab/attendance-backend-go/internal/domain/attendance"
)

// AttendanceJobs wires the daily reconciliation sweep into the scheduler.
type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService) *AttendanceJobs {
	return &AttendanceJobs{attendanceService: attendanceService}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("daily_reconciliation_sweep", 1*time.Hour, j.RunDailySweep)
}

// RunDailySweep finalizes stale incomplete records and purges placeholders
// across all employees.
func (j *AttendanceJobs) RunDailySweep(ctx context.Context) error {
	// Only run at midnight (00:00-00:59)
	if time.Now().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting daily reconciliation sweep")

	if err := j.attendanceService.Sweep(ctx, nil, time.Now()); err != nil {
		return fmt.Errorf("daily reconciliation sweep: %w", err)
	}

	slog.Info("Cron: Daily reconciliation sweep completed")
	return nil
}
