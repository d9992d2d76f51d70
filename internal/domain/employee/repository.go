package employee

import "context"

// EmployeeRepository defines data access for the employee directory. All
// listing methods exclude deactivated employees; GetByID and GetByEmail do
// not, since authentication and corrections need to see inactive accounts.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)

	// GetByID returns ErrEmployeeNotFound when no row matches.
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByEmail returns (nil, nil) when no row matches.
	GetByEmail(ctx context.Context, email string) (*Employee, error)

	// ListActive returns active employees (role employee), name-sorted.
	ListActive(ctx context.Context) ([]Employee, error)

	// ListActiveIDs returns just the IDs of active employees. Consumed by
	// the absence sweeper and the dashboard counts.
	ListActiveIDs(ctx context.Context) ([]string, error)

	// Deactivate soft-deletes: sets is_active = false.
	Deactivate(ctx context.Context, id string) error
}
