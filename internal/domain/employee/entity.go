package employee

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Employee is a directory entry. Employees are never hard-deleted through the
// API; deactivation flips IsActive and the cleanup task later removes their
// attendance rows.
type Employee struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Department   string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
