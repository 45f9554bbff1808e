package services

// ServiceContainer aggregates the service interfaces handed to the handlers.
type ServiceContainer struct {
	Order         OrderSvcFacade
	Quote         QuoteSvcFacade
	ExpenseOrder  ExpenseOrderSvcFacade
	Authorization AuthorizationSvcFacade
	Audit         AuditSvcFacade
	Capability    CapabilitySvcFacade
	User          UserSvcFacade
}
