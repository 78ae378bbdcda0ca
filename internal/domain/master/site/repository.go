package site

import "context"

type SiteRepository interface {
	GetByID(ctx context.Context, id string) (Site, error)
	GetByBranchID(ctx context.Context, branchID string) ([]Site, error)
}
