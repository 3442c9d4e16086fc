package pgsql

import (
	portsrepo "github.com/petroprice/fuel_pricing_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		SuggestionRepo:    newPgxSuggestionRepository(dbPool),
		QuotationRepo:     newPgxQuotationRepository(dbPool),
		FeeRepo:           newPgxFeeRateRepository(dbPool),
		StationRepo:       newPgxStationRepository(dbPool),
		ClientRepo:        newPgxClientRepository(dbPool),
		PaymentMethodRepo: newPgxPaymentMethodRepository(dbPool),
		ReviewerRepo:      newPgxReviewerRepository(dbPool),
		AuditRepo:         newPgxAuditLogRepository(dbPool),
	}
}
