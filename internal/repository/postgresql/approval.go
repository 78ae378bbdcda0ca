package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendlab/attendance-backend-go/internal/domain/attendance"
	"github.com/attendlab/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type approvalRepositoryImpl struct {
	db *database.DB
}

func NewApprovalRepository(db *database.DB) attendance.ApprovalRepository {
	return &approvalRepositoryImpl{db: db}
}

// Create implements attendance.ApprovalRepository.
func (r *approvalRepositoryImpl) Create(ctx context.Context, req attendance.ApprovalRequest) (attendance.ApprovalRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_approvals
			(id, employee_id, attendance_id, date, type, latitude, longitude, address, time, status, created_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, employee_id, attendance_id, date, type, latitude, longitude, address, time, status, remarks, decided_by, decided_at, created_at
	`

	var result attendance.ApprovalRequest
	err := q.QueryRow(ctx, query,
		req.EmployeeID, req.AttendanceID, req.Date, req.Type,
		req.Latitude, req.Longitude, req.Address, req.Time, req.Status,
	).Scan(
		&result.ID, &result.EmployeeID, &result.AttendanceID, &result.Date, &result.Type,
		&result.Latitude, &result.Longitude, &result.Address, &result.Time, &result.Status,
		&result.Remarks, &result.DecidedBy, &result.DecidedAt, &result.CreatedAt,
	)
	if err != nil {
		return attendance.ApprovalRequest{}, fmt.Errorf("failed to create approval request: %w", err)
	}

	return result, nil
}

// GetByID implements attendance.ApprovalRepository.
func (r *approvalRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.ApprovalRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, attendance_id, date, type, latitude, longitude, address, time, status, remarks, decided_by, decided_at, created_at
		FROM attendance_approvals
		WHERE id = $1
	`

	var result attendance.ApprovalRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID, &result.EmployeeID, &result.AttendanceID, &result.Date, &result.Type,
		&result.Latitude, &result.Longitude, &result.Address, &result.Time, &result.Status,
		&result.Remarks, &result.DecidedBy, &result.DecidedAt, &result.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ApprovalRequest{}, attendance.ErrApprovalNotFound
		}
		return attendance.ApprovalRequest{}, fmt.Errorf("failed to get approval request: %w", err)
	}

	return result, nil
}

// Update implements attendance.ApprovalRepository.
func (r *approvalRepositoryImpl) Update(ctx context.Context, req attendance.ApprovalRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_approvals
		SET attendance_id = $2, status = $3, remarks = $4, decided_by = $5, decided_at = $6
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		req.ID, req.AttendanceID, req.Status, req.Remarks, req.DecidedBy, req.DecidedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update approval request: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrApprovalNotFound
	}

	return nil
}

// ListPending implements attendance.ApprovalRepository.
func (r *approvalRepositoryImpl) ListPending(ctx context.Context) ([]attendance.ApprovalRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.attendance_id, a.date, a.type, a.latitude, a.longitude,
			a.address, a.time, a.status, a.remarks, a.decided_by, a.decided_at, a.created_at,
			e.name
		FROM attendance_approvals a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.status = 'Pending'
		ORDER BY a.created_at ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending approvals: %w", err)
	}
	defer rows.Close()

	var results []attendance.ApprovalRequest
	for rows.Next() {
		var a attendance.ApprovalRequest
		err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.AttendanceID, &a.Date, &a.Type,
			&a.Latitude, &a.Longitude, &a.Address, &a.Time, &a.Status,
			&a.Remarks, &a.DecidedBy, &a.DecidedAt, &a.CreatedAt,
			&a.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval request: %w", err)
		}
		results = append(results, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return results, nil
}
