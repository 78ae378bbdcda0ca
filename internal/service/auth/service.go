package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/attendlab/attendance-backend-go/internal/domain/admin"
	"github.com/attendlab/attendance-backend-go/internal/domain/auth"
	"github.com/attendlab/attendance-backend-go/internal/domain/employee"
	"github.com/attendlab/attendance-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	employee.EmployeeRepository
	admin.AdminRepository
	jwtService jwt.Service
}

func NewAuthService(
	employeeRepo employee.EmployeeRepository,
	adminRepo admin.AdminRepository,
	jwtService jwt.Service,
) auth.AuthService {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepo,
		AdminRepository:    adminRepo,
		jwtService:         jwtService,
	}
}

// LoginEmployee implements auth.AuthService. A wrong email and a wrong
// password both surface as ErrInvalidCredentials.
func (s *AuthServiceImpl) LoginEmployee(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if !emp.IsActive {
		return auth.LoginResponse{}, auth.ErrAccountInactive
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(emp.ID, emp.Email, false)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	slog.Info("employee logged in", "employee_id", emp.ID)

	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Name:        emp.Name,
		IsAdmin:     false,
	}, nil
}

// LoginAdmin implements auth.AuthService.
func (s *AuthServiceImpl) LoginAdmin(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	adm, err := s.AdminRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, admin.ErrAdminNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(adm.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if !adm.IsActive {
		return auth.LoginResponse{}, auth.ErrAccountInactive
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(adm.ID, adm.Email, true)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	slog.Info("admin logged in", "admin_id", adm.ID)

	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Name:        adm.Name,
		IsAdmin:     true,
	}, nil
}
