package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendlab/attendance-backend-go/internal/domain/master/site"
	"github.com/attendlab/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const siteColumns = `id, branch_id, name, address, latitude, longitude, created_at, updated_at`

type siteRepositoryImpl struct {
	db *database.DB
}

func NewSiteRepository(db *database.DB) site.SiteRepository {
	return &siteRepositoryImpl{db: db}
}

func scanSite(row pgx.Row) (site.Site, error) {
	var s site.Site
	err := row.Scan(
		&s.ID, &s.BranchID, &s.Name, &s.Address,
		&s.Latitude, &s.Longitude, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// GetByID implements site.SiteRepository.
func (r *siteRepositoryImpl) GetByID(ctx context.Context, id string) (site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM sites WHERE id = $1`, siteColumns)

	result, err := scanSite(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return site.Site{}, site.ErrSiteNotFound
		}
		return site.Site{}, fmt.Errorf("failed to get site: %w", err)
	}

	return result, nil
}

// GetByBranchID implements site.SiteRepository. The row order is stable so
// the first-match proximity rule resolves deterministically.
func (r *siteRepositoryImpl) GetByBranchID(ctx context.Context, branchID string) ([]site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM sites WHERE branch_id = $1 ORDER BY created_at ASC, id ASC`, siteColumns)

	rows, err := q.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sites by branch: %w", err)
	}
	defer rows.Close()

	var sites []site.Site
	for rows.Next() {
		s, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return sites, nil
}
