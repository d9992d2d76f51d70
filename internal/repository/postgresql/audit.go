package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/brainiax/attendance-backend-go/internal/domain/audit"
	"github.com/brainiax/attendance-backend-go/internal/pkg/database"
)

type auditRepository struct {
	db *database.DB
}

// Create implements audit.AuditRepository.
func (r *auditRepository) Create(ctx context.Context, entry audit.Entry) (audit.Entry, error) {
	q := GetQuerier(ctx, r.db)

	entry.ID = uuid.NewString()
	query := `
		INSERT INTO audit_logs (id, action, performed_by, target_user_id, details, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID, entry.Action, entry.PerformedBy, entry.TargetUserID, entry.Details, entry.IPAddress,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return audit.Entry{}, fmt.Errorf("failed to create audit entry: %w", err)
	}

	return entry, nil
}

func NewAuditRepository(db *database.DB) audit.AuditRepository {
	return &auditRepository{db: db}
}
