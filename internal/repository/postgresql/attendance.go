package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendlab/attendance-backend-go/internal/domain/attendance"
	"github.com/attendlab/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `
	id, employee_id, date,
	in_time, in_latitude, in_longitude, in_address, in_photo_path, site_id,
	out_time, out_latitude, out_longitude, out_address, out_photo_path,
	status, working_hours,
	pending_approval, pending_type, pending_latitude, pending_longitude, pending_address, pending_time,
	created_at, updated_at
`

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Date,
		&a.InTime, &a.InLatitude, &a.InLongitude, &a.InAddress, &a.InPhotoPath, &a.SiteID,
		&a.OutTime, &a.OutLatitude, &a.OutLongitude, &a.OutAddress, &a.OutPhotoPath,
		&a.Status, &a.WorkingHours,
		&a.PendingApproval, &a.PendingType, &a.PendingLatitude, &a.PendingLongitude, &a.PendingAddress, &a.PendingTime,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// GetOrCreate implements attendance.AttendanceRepository. The no-op upsert
// makes the race between two concurrent first submissions resolve to a
// single row under the (employee_id, date) unique constraint.
func (r *attendanceRepositoryImpl) GetOrCreate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO attendances (id, employee_id, date, status, working_hours, pending_approval, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, 'Absent', '0:00', FALSE, NOW(), NOW())
		ON CONFLICT (employee_id, date) DO UPDATE SET updated_at = attendances.updated_at
		RETURNING %s
	`, attendanceColumns)

	result, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to get or create attendance: %w", err)
	}

	return result, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances
		WHERE employee_id = $1 AND date = $2
	`, attendanceColumns)

	result, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return result, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, a attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances SET
			in_time = $2, in_latitude = $3, in_longitude = $4, in_address = $5, in_photo_path = $6, site_id = $7,
			out_time = $8, out_latitude = $9, out_longitude = $10, out_address = $11, out_photo_path = $12,
			status = $13, working_hours = $14,
			pending_approval = $15, pending_type = $16, pending_latitude = $17, pending_longitude = $18,
			pending_address = $19, pending_time = $20,
			updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		a.ID,
		a.InTime, a.InLatitude, a.InLongitude, a.InAddress, a.InPhotoPath, a.SiteID,
		a.OutTime, a.OutLatitude, a.OutLongitude, a.OutAddress, a.OutPhotoPath,
		a.Status, a.WorkingHours,
		a.PendingApproval, a.PendingType, a.PendingLatitude, a.PendingLongitude,
		a.PendingAddress, a.PendingTime,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ListByDateRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByDateRange(ctx context.Context, start, end time.Time, employeeID *string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances
		WHERE date BETWEEN $1 AND $2
	`, attendanceColumns)
	args := []interface{}{start, end}

	if employeeID != nil {
		query += ` AND employee_id = $3`
		args = append(args, *employeeID)
	}
	query += ` ORDER BY date DESC, employee_id ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// GetIncompleteBefore implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetIncompleteBefore(ctx context.Context, date time.Time, employeeID *string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances
		WHERE date < $1 AND (in_time IS NULL OR out_time IS NULL)
	`, attendanceColumns)
	args := []interface{}{date}

	if employeeID != nil {
		query += ` AND employee_id = $2`
		args = append(args, *employeeID)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get incomplete attendances: %w", err)
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// GetEmptyOnDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetEmptyOnDate(ctx context.Context, date time.Time, employeeID *string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances
		WHERE date = $1 AND in_time IS NULL AND out_time IS NULL AND pending_approval = FALSE
	`, attendanceColumns)
	args := []interface{}{date}

	if employeeID != nil {
		query += ` AND employee_id = $2`
		args = append(args, *employeeID)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get empty attendances: %w", err)
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// GetOpenOnDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetOpenOnDate(ctx context.Context, date time.Time, employeeID *string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances
		WHERE date = $1 AND in_time IS NOT NULL
	`, attendanceColumns)
	args := []interface{}{date}

	if employeeID != nil {
		query += ` AND employee_id = $2`
		args = append(args, *employeeID)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get open attendances: %w", err)
	}
	defer rows.Close()

	return collectAttendances(rows)
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	var results []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		results = append(results, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return results, nil
}
