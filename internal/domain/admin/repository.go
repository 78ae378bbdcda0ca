package admin

import "context"

type AdminRepository interface {
	GetByID(ctx context.Context, id string) (Admin, error)
	GetByEmail(ctx context.Context, email string) (Admin, error)

	// GetActive returns admins eligible to receive approval notifications.
	GetActive(ctx context.Context) ([]Admin, error)
}
