package auth

import (
	"context"
	"testing"

	"github.com/attendlab/attendance-backend-go/internal/domain/admin"
	"github.com/attendlab/attendance-backend-go/internal/domain/auth"
	"github.com/attendlab/attendance-backend-go/internal/domain/employee"
	"github.com/attendlab/attendance-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubEmployeeRepo struct {
	emp employee.Employee
}

func (s *stubEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	if s.emp.ID == id {
		return s.emp, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (s *stubEmployeeRepo) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	if s.emp.Email == email {
		return s.emp, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (s *stubEmployeeRepo) GetActive(_ context.Context) ([]employee.Employee, error) {
	return []employee.Employee{s.emp}, nil
}

type stubAdminRepo struct {
	adm admin.Admin
}

func (s *stubAdminRepo) GetByID(_ context.Context, id string) (admin.Admin, error) {
	if s.adm.ID == id {
		return s.adm, nil
	}
	return admin.Admin{}, admin.ErrAdminNotFound
}

func (s *stubAdminRepo) GetByEmail(_ context.Context, email string) (admin.Admin, error) {
	if s.adm.Email == email {
		return s.adm, nil
	}
	return admin.Admin{}, admin.ErrAdminNotFound
}

func (s *stubAdminRepo) GetActive(_ context.Context) ([]admin.Admin, error) {
	return []admin.Admin{s.adm}, nil
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newTestAuthService(t *testing.T, emp employee.Employee, adm admin.Admin) auth.AuthService {
	t.Helper()
	return NewAuthService(
		&stubEmployeeRepo{emp: emp},
		&stubAdminRepo{adm: adm},
		jwt.NewJWTService("test-secret", "12h"),
	)
}

func TestLoginEmployee(t *testing.T) {
	emp := employee.Employee{
		ID:           "emp-1",
		Name:         "Asha Verma",
		Email:        "asha@example.com",
		PasswordHash: hashPassword(t, "correct-horse"),
		IsActive:     true,
	}
	svc := newTestAuthService(t, emp, admin.Admin{})

	t.Run("success", func(t *testing.T) {
		resp, err := svc.LoginEmployee(context.Background(), auth.LoginRequest{
			Email:    "asha@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "Asha Verma", resp.Name)
		assert.False(t, resp.IsAdmin)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.LoginEmployee(context.Background(), auth.LoginRequest{
			Email:    "asha@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.LoginEmployee(context.Background(), auth.LoginRequest{
			Email:    "nobody@example.com",
			Password: "correct-horse",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		inactive := emp
		inactive.IsActive = false
		svc := newTestAuthService(t, inactive, admin.Admin{})

		_, err := svc.LoginEmployee(context.Background(), auth.LoginRequest{
			Email:    "asha@example.com",
			Password: "correct-horse",
		})
		assert.ErrorIs(t, err, auth.ErrAccountInactive)
	})

	t.Run("invalid request", func(t *testing.T) {
		_, err := svc.LoginEmployee(context.Background(), auth.LoginRequest{Email: "not-an-email"})
		assert.Error(t, err)
	})
}

func TestLoginAdmin(t *testing.T) {
	adm := admin.Admin{
		ID:           "adm-1",
		Name:         "Ravi Kulkarni",
		Email:        "ravi@example.com",
		PasswordHash: hashPassword(t, "hunter2hunter2"),
		IsActive:     true,
	}
	svc := newTestAuthService(t, employee.Employee{}, adm)

	resp, err := svc.LoginAdmin(context.Background(), auth.LoginRequest{
		Email:    "ravi@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.True(t, resp.IsAdmin)

	_, err = svc.LoginAdmin(context.Background(), auth.LoginRequest{
		Email:    "ravi@example.com",
		Password: "bad",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}
