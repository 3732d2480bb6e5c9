package ports

import (
	"context"

	"visadesk/internal/core/domain/model/audit"
)

// AuditRepository is the audit sink. Append writes inside the caller's
// transaction and records the stored id on the entry.
type AuditRepository interface {
	Append(ctx context.Context, entry *audit.Entry) error
}
