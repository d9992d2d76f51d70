package employee

import "context"

// EmployeeService defines directory management for administrators.
type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	List(ctx context.Context) ([]EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	Deactivate(ctx context.Context, id string) error
}
