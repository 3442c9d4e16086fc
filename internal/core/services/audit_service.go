package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/petroprice/fuel_pricing_app/internal/core/domain"
	portsrepo "github.com/petroprice/fuel_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/petroprice/fuel_pricing_app/internal/core/ports/services"
	"github.com/petroprice/fuel_pricing_app/internal/middleware"
)

// auditService records administrative actions. A failed write is logged and
// swallowed; the audit log never blocks the operation it describes.
type auditService struct {
	auditRepo portsrepo.AuditLogRepository
}

// NewAuditService creates a new AuditSvcFacade.
func NewAuditService(auditRepo portsrepo.AuditLogRepository) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) Record(ctx context.Context, action string, entityType string, entityID string, actorID string) {
	entry := domain.AuditLogEntry{
		EntryID:    uuid.NewString(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		ActorID:    actorID,
		RecordedAt: time.Now().UTC(),
	}
	if err := s.auditRepo.RecordAuditEntry(ctx, entry); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to record audit entry",
			slog.String("error", err.Error()),
			slog.String("action", action),
			slog.String("entity_id", entityID),
		)
	}
}
