package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendlab/attendance-backend-go/internal/domain/admin"
	"github.com/attendlab/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const adminColumns = `id, name, email, password_hash, is_active, created_at, updated_at`

type adminRepositoryImpl struct {
	db *database.DB
}

func NewAdminRepository(db *database.DB) admin.AdminRepository {
	return &adminRepositoryImpl{db: db}
}

func scanAdmin(row pgx.Row) (admin.Admin, error) {
	var a admin.Admin
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// GetByID implements admin.AdminRepository.
func (r *adminRepositoryImpl) GetByID(ctx context.Context, id string) (admin.Admin, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM admins WHERE id = $1`, adminColumns)

	result, err := scanAdmin(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return admin.Admin{}, admin.ErrAdminNotFound
		}
		return admin.Admin{}, fmt.Errorf("failed to get admin: %w", err)
	}

	return result, nil
}

// GetByEmail implements admin.AdminRepository.
func (r *adminRepositoryImpl) GetByEmail(ctx context.Context, email string) (admin.Admin, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM admins WHERE email = $1`, adminColumns)

	result, err := scanAdmin(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return admin.Admin{}, admin.ErrAdminNotFound
		}
		return admin.Admin{}, fmt.Errorf("failed to get admin by email: %w", err)
	}

	return result, nil
}

// GetActive implements admin.AdminRepository.
func (r *adminRepositoryImpl) GetActive(ctx context.Context) ([]admin.Admin, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM admins WHERE is_active = TRUE ORDER BY name ASC`, adminColumns)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get active admins: %w", err)
	}
	defer rows.Close()

	var admins []admin.Admin
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan admin: %w", err)
		}
		admins = append(admins, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return admins, nil
}
