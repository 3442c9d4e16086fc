package repositories

import (
	"context"

	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
)

// AuditLogRepository appends administrative action records. Writes are
// fire-and-forget from the caller's perspective; failures must not block the
// underlying operation.
type AuditLogRepository interface {
	RecordAuditEntry(ctx context.Context, entry domain.AuditLogEntry) error
}
