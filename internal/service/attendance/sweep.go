package attendance

import (
	"context"
	"log/slog"
	"time"

	"github.com/attendlab/attendance-backend-go/internal/domain/attendance"
)

// Sweep implements attendance.AttendanceService.
//
// Records dated strictly before today are finalized in place: status and
// working hours are recomputed from whatever slots exist and the row is kept
// as a fact. Today's rows get two repairs instead: a row whose IN timestamp
// belongs to a previous calendar day is a stale leftover and is deleted, and
// a placeholder with no slots and no pending request is deleted. Running the
// sweep twice over the same data is a no-op the second time.
func (s *AttendanceServiceImpl) Sweep(ctx context.Context, employeeID *string, today time.Time) error {
	day := dateOf(today)

	incomplete, err := s.AttendanceRepository.GetIncompleteBefore(ctx, day, employeeID)
	if err != nil {
		return err
	}

	finalized := 0
	for _, att := range incomplete {
		status := attendance.DetermineStatus(att.InTime, att.OutTime)
		workingHours := attendance.CalculateWorkingHours(att.InTime, att.OutTime)
		if att.Status == status && att.WorkingHours == workingHours {
			continue
		}

		att.Status = status
		att.WorkingHours = workingHours
		if err := s.AttendanceRepository.Update(ctx, att); err != nil {
			return err
		}
		finalized++
	}

	open, err := s.AttendanceRepository.GetOpenOnDate(ctx, day, employeeID)
	if err != nil {
		return err
	}

	stale := 0
	for _, att := range open {
		in := *att.InTime
		if in.Year() == day.Year() && in.YearDay() == day.YearDay() {
			continue
		}

		slog.Warn("deleting stale attendance record",
			"attendance_id", att.ID,
			"employee_id", att.EmployeeID,
			"record_date", att.Date.Format("2006-01-02"),
			"in_time", in.Format(time.RFC3339),
		)
		if err := s.AttendanceRepository.Delete(ctx, att.ID); err != nil {
			return err
		}
		stale++
	}

	empty, err := s.AttendanceRepository.GetEmptyOnDate(ctx, day, employeeID)
	if err != nil {
		return err
	}

	purged := 0
	for _, att := range empty {
		if err := s.AttendanceRepository.Delete(ctx, att.ID); err != nil {
			return err
		}
		purged++
	}

	if finalized > 0 || stale > 0 || purged > 0 {
		slog.Info("reconciliation sweep applied repairs",
			"finalized", finalized,
			"stale_deleted", stale,
			"placeholders_deleted", purged,
			"scoped", employeeID != nil,
		)
	}

	return nil
}
