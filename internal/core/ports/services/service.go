package services

// ServiceContainer holds instances of all the application services. Handlers
// receive this rather than individual constructor arguments.
type ServiceContainer struct {
	Suggestion    SuggestionSvcFacade
	Approval      ApprovalSvcFacade
	Fee           FeeSvcFacade
	CostQuote     CostQuoteSvcFacade
	Profitability ProfitabilitySvcFacade
	Reviewer      ReviewerSvcFacade
	Permission    PermissionSvcFacade
	Token         TokenSvcFacade
	Station       StationSvcFacade
	Client        ClientSvcFacade
	PaymentMethod PaymentMethodSvcFacade
	Quotation     QuotationSvcFacade
	Audit         AuditSvcFacade
}
