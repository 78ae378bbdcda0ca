package branch

import "context"

type BranchRepository interface {
	GetByID(ctx context.Context, id string) (Branch, error)
	List(ctx context.Context) ([]Branch, error)
}
