package auth

import "context"

type AuthService interface {
	LoginEmployee(ctx context.Context, req LoginRequest) (LoginResponse, error)
	LoginAdmin(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
