package audit

import "context"

// AuditRepository persists audit entries. Entries are append-only; there is
// no update or delete path.
type AuditRepository interface {
	Create(ctx context.Context, entry Entry) (Entry, error)
}
