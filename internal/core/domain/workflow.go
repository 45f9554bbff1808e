package domain

// Capability names checked against the actor's capability set.
const (
	CapabilityApproveExpenses = "expense_orders:approve"
	CapabilityPayExpenses     = "expense_orders:pay"
	CapabilityCancelOrders    = "orders:cancel"
	CapabilityCancelQuotes    = "quotes:cancel"
	CapabilityReviewRequests  = "authorization_requests:review"
)

// CapabilityGate declares that moving a document into a target status requires
// a capability. Deferrable gates fall back to the authorization-request
// workflow when the actor lacks the capability; non-deferrable gates reject.
type CapabilityGate struct {
	Capability string
	Deferrable bool
}

// transitionTables maps, per document type, each status to the set of statuses
// reachable from it. Terminal statuses map to an empty set.
var transitionTables = map[DocumentType]map[DocumentStatus][]DocumentStatus{
	DocumentTypeOrder: {
		OrderStatusCreated:      {OrderStatusInProduction, OrderStatusCancelled},
		OrderStatusInProduction: {OrderStatusReady, OrderStatusCancelled},
		OrderStatusReady:        {OrderStatusDelivered, OrderStatusCancelled},
		OrderStatusDelivered:    {},
		OrderStatusCancelled:    {},
	},
	DocumentTypeQuote: {
		QuoteStatusDraft:     {QuoteStatusSent, QuoteStatusCancelled},
		QuoteStatusSent:      {QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusCancelled},
		QuoteStatusAccepted:  {QuoteStatusConverted},
		QuoteStatusRejected:  {QuoteStatusSent},
		QuoteStatusConverted: {},
		QuoteStatusCancelled: {},
	},
	DocumentTypeExpenseOrder: {
		ExpenseStatusDraft:      {ExpenseStatusCreated, ExpenseStatusAuthorized},
		ExpenseStatusCreated:    {ExpenseStatusAuthorized, ExpenseStatusDraft},
		ExpenseStatusAuthorized: {ExpenseStatusPaid},
		ExpenseStatusPaid:       {},
	},
}

// capabilityGates maps (type, target status) to the gate protecting it.
// Targets without an entry are open to any actor allowed by the transition table.
var capabilityGates = map[DocumentType]map[DocumentStatus]CapabilityGate{
	DocumentTypeOrder: {
		OrderStatusCancelled: {Capability: CapabilityCancelOrders, Deferrable: true},
	},
	DocumentTypeQuote: {
		QuoteStatusCancelled: {Capability: CapabilityCancelQuotes, Deferrable: false},
	},
	DocumentTypeExpenseOrder: {
		ExpenseStatusAuthorized: {Capability: CapabilityApproveExpenses, Deferrable: true},
		ExpenseStatusPaid:       {Capability: CapabilityPayExpenses, Deferrable: false},
	},
}

// initialStatuses is the status a freshly created document of each type starts in.
var initialStatuses = map[DocumentType]DocumentStatus{
	DocumentTypeOrder:        OrderStatusCreated,
	DocumentTypeQuote:        QuoteStatusDraft,
	DocumentTypeExpenseOrder: ExpenseStatusDraft,
}

// sequencePrefixes is the human-readable number prefix per document type.
var sequencePrefixes = map[DocumentType]string{
	DocumentTypeOrder:        "OP",
	DocumentTypeQuote:        "COT",
	DocumentTypeExpenseOrder: "OG",
}

// IsValidDocumentType reports whether t is a known document type.
func IsValidDocumentType(t DocumentType) bool {
	_, ok := transitionTables[t]
	return ok
}

// InitialStatus returns the creation status for a document type.
func InitialStatus(t DocumentType) DocumentStatus {
	return initialStatuses[t]
}

// SequencePrefix returns the document number prefix for a type.
func SequencePrefix(t DocumentType) string {
	return sequencePrefixes[t]
}

// KnownStatuses returns all statuses that appear in the transition table for t.
func KnownStatuses(t DocumentType) []DocumentStatus {
	table := transitionTables[t]
	statuses := make([]DocumentStatus, 0, len(table))
	for s := range table {
		statuses = append(statuses, s)
	}
	return statuses
}

// LegalNextStatuses returns the statuses reachable from the given status.
// An unknown (type, status) pair yields an empty set.
func LegalNextStatuses(t DocumentType, from DocumentStatus) []DocumentStatus {
	return transitionTables[t][from]
}

// CanTransition reports whether the transition table for t allows from -> to.
func CanTransition(t DocumentType, from, to DocumentStatus) bool {
	for _, s := range transitionTables[t][from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status accepts no further transitions.
func IsTerminal(t DocumentType, s DocumentStatus) bool {
	next, ok := transitionTables[t][s]
	return ok && len(next) == 0
}

// GateFor returns the capability gate for moving a document of type t into
// target, if one is declared.
func GateFor(t DocumentType, target DocumentStatus) (CapabilityGate, bool) {
	gate, ok := capabilityGates[t][target]
	return gate, ok
}

// OutcomeKind classifies the result of an attempted status transition.
type OutcomeKind string

const (
	OutcomeApplied  OutcomeKind = "APPLIED"
	OutcomeDeferred OutcomeKind = "DEFERRED"
	OutcomeRejected OutcomeKind = "REJECTED"
)

// TransitionOutcome is the result of StatusTransitionEngine.AttemptTransition.
// Reason is set only for rejected outcomes and wraps either
// apperrors.ErrIllegalTransition or apperrors.ErrForbidden.
// RequiredCapability is set for deferred and permission-rejected outcomes.
type TransitionOutcome struct {
	Kind               OutcomeKind
	RequiredCapability string
	Reason             error
}
