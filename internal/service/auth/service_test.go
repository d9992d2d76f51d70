package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/brainiax/attendance-backend-go/internal/domain/auth"
	"github.com/brainiax/attendance-backend-go/internal/domain/employee"
	"github.com/brainiax/attendance-backend-go/internal/pkg/jwt"
)

type fakeEmployeeRepo struct {
	employee.EmployeeRepository

	byEmail map[string]employee.Employee
	byID    map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	emp, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	return &emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func newFixture(t *testing.T) (*fakeEmployeeRepo, auth.AuthService) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	jane := employee.Employee{
		ID:           "emp-1",
		Name:         "Jane Doe",
		Email:        "jane@example.com",
		PasswordHash: string(hash),
		Role:         employee.RoleEmployee,
		IsActive:     true,
	}
	repo := &fakeEmployeeRepo{
		byEmail: map[string]employee.Employee{jane.Email: jane},
		byID:    map[string]employee.Employee{jane.ID: jane},
	}
	jwtService := jwt.NewJWTService("test-secret", "1h", "168h")
	return repo, NewAuthService(repo, jwtService)
}

func TestLogin(t *testing.T) {
	t.Run("issues tokens for valid credentials", func(t *testing.T) {
		_, svc := newFixture(t)

		got, err := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "jane@example.com",
			Password: "correct horse",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, got.AccessToken)
		assert.NotEmpty(t, got.RefreshToken)
		assert.NotZero(t, got.ExpiresAt)
		assert.Equal(t, "emp-1", got.User.ID)
		assert.Equal(t, "Jane Doe", got.User.Name)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		_, svc := newFixture(t)

		_, err := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "jane@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("rejects unknown email with the same error", func(t *testing.T) {
		_, svc := newFixture(t)

		_, err := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "nobody@example.com",
			Password: "correct horse",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("rejects deactivated account", func(t *testing.T) {
		repo, svc := newFixture(t)
		jane := repo.byEmail["jane@example.com"]
		jane.IsActive = false
		repo.byEmail[jane.Email] = jane

		_, err := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "jane@example.com",
			Password: "correct horse",
		})
		assert.ErrorIs(t, err, auth.ErrAccountDeactivated)
	})
}

func TestRefresh(t *testing.T) {
	t.Run("rotates tokens for a live refresh token", func(t *testing.T) {
		_, svc := newFixture(t)

		login, err := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "jane@example.com",
			Password: "correct horse",
		})
		require.NoError(t, err)

		got, err := svc.Refresh(context.Background(), auth.RefreshRequest{
			RefreshToken: login.RefreshToken,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, got.AccessToken)
		assert.Equal(t, "emp-1", got.User.ID)
	})

	t.Run("rejects an access token", func(t *testing.T) {
		_, svc := newFixture(t)

		login, err := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "jane@example.com",
			Password: "correct horse",
		})
		require.NoError(t, err)

		_, err = svc.Refresh(context.Background(), auth.RefreshRequest{
			RefreshToken: login.AccessToken,
		})
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, svc := newFixture(t)

		_, err := svc.Refresh(context.Background(), auth.RefreshRequest{
			RefreshToken: "not-a-token",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rejects refresh for a deactivated account", func(t *testing.T) {
		repo, svc := newFixture(t)

		login, err := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "jane@example.com",
			Password: "correct horse",
		})
		require.NoError(t, err)

		jane := repo.byID["emp-1"]
		jane.IsActive = false
		repo.byID["emp-1"] = jane

		_, err = svc.Refresh(context.Background(), auth.RefreshRequest{
			RefreshToken: login.RefreshToken,
		})
		assert.ErrorIs(t, err, auth.ErrAccountDeactivated)
	})
}
