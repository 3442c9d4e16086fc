package services

import (
	portsrepo "github.com/petroprice/fuel_pricing_app/internal/core/ports/repositories"
	portssvc "github.com/petroprice/fuel_pricing_app/internal/core/ports/services"
	"github.com/petroprice/fuel_pricing_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Directory services first; the suggestion service validates against them.
	container.Station = NewStationService(repos.StationRepo)
	container.Client = NewClientService(repos.ClientRepo)
	container.PaymentMethod = NewPaymentMethodService(repos.PaymentMethodRepo, repos.FeeRepo)
	container.Quotation = NewQuotationService(repos.QuotationRepo)

	// Pricing core.
	container.Fee = NewFeeService(repos.FeeRepo)
	container.CostQuote = NewCostQuoteService(repos.QuotationRepo)
	container.Profitability = NewProfitabilityService()

	// Accounts and authorization.
	container.Reviewer = NewReviewerService(repos.ReviewerRepo)
	container.Permission = NewPermissionService(repos.ReviewerRepo)
	container.Token = NewTokenService(cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)
	container.Audit = NewAuditService(repos.AuditRepo)

	// Suggestion lifecycle.
	container.Suggestion = NewSuggestionService(
		repos.SuggestionRepo,
		container.Fee,
		container.CostQuote,
		container.Station,
		container.Client,
		cfg.DefaultTotalApprovers,
	)
	container.Approval = NewApprovalService(
		repos.SuggestionRepo,
		container.Permission,
		container.Audit,
	)

	return container
}
