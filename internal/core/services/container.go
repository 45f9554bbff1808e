package services

import (
	portsrepo "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/repositories"
	portssvc "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/services"
)

// Repositories bundles the persistence ports needed to assemble the services.
type Repositories struct {
	Documents      portsrepo.DocumentRepositoryFacade
	OrderDetails   portsrepo.OrderDetailRepository
	Sequences      portsrepo.SequenceRepository
	Audit          portsrepo.AuditRepository
	Authorizations portsrepo.AuthorizationRepository
	Users          portsrepo.UserRepository
}

// NewServiceContainer wires the full service graph. The lifecycle coordinator
// sits between the document modules and the sequence, transition, audit and
// authorization collaborators.
func NewServiceContainer(repos Repositories) *portssvc.ServiceContainer {
	capability := NewCapabilityService(repos.Users)
	audit := NewAuditService(repos.Audit, repos.Users)
	sequence := NewSequenceService(repos.Sequences)
	transition := NewTransitionService(repos.Documents)
	notifier := NewLogNotifier()
	authorization := NewAuthorizationService(repos.Authorizations, repos.Documents, transition, audit, capability, notifier)
	lifecycle := NewLifecycleService(repos.Documents, sequence, transition, authorization, audit, capability)

	return &portssvc.ServiceContainer{
		Order:         NewOrderService(repos.Documents, repos.OrderDetails, lifecycle, audit),
		Quote:         NewQuoteService(repos.Documents, lifecycle),
		ExpenseOrder:  NewExpenseOrderService(repos.Documents, lifecycle),
		Authorization: authorization,
		Audit:         audit,
		Capability:    capability,
		User:          NewUserService(repos.Users, audit),
	}
}
