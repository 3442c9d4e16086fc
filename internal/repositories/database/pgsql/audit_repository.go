package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
	portsrepo "github.com/petroprice/fuel_pricing_app/internal/core/ports/repositories"
)

type pgxAuditLogRepository struct {
	BaseRepository
}

func newPgxAuditLogRepository(pool *pgxpool.Pool) *pgxAuditLogRepository {
	return &pgxAuditLogRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditLogRepository = (*pgxAuditLogRepository)(nil)

func (r *pgxAuditLogRepository) RecordAuditEntry(ctx context.Context, entry domain.AuditLogEntry) error {
	query := `
		INSERT INTO audit_log (entry_id, action, entity_type, entity_id, actor_id, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6);`
	_, err := r.Pool.Exec(ctx, query,
		entry.EntryID, entry.Action, entry.EntityType, entry.EntityID, entry.ActorID, entry.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}
