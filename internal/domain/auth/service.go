package auth

import (
	"context"

	"github.com/brainiax/attendance-backend-go/internal/domain/employee"
)

// AuthService authenticates directory accounts and issues tokens.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (LoginResponse, error)

	// Me resolves the authenticated account from the request context claims.
	Me(ctx context.Context) (employee.EmployeeResponse, error)
}
