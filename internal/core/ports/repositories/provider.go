package repositories

// RepositoryProvider bundles every repository implementation the services
// need. Built once at startup and handed to the service container.
type RepositoryProvider struct {
	SuggestionRepo    SuggestionRepositoryWithTx
	QuotationRepo     QuotationRepositoryFacade
	FeeRepo           FeeRateRepositoryFacade
	StationRepo       StationRepository
	ClientRepo        ClientRepository
	PaymentMethodRepo PaymentMethodRepository
	ReviewerRepo      ReviewerRepositoryFacade
	AuditRepo         AuditLogRepository
}
