package domain_test

import (
	"testing"

	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition_OrderLifecycle(t *testing.T) {
	tests := []struct {
		name string
		from domain.DocumentStatus
		to   domain.DocumentStatus
		want bool
	}{
		{"created to in_production", domain.OrderStatusCreated, domain.OrderStatusInProduction, true},
		{"created to cancelled", domain.OrderStatusCreated, domain.OrderStatusCancelled, true},
		{"created skips to ready", domain.OrderStatusCreated, domain.OrderStatusReady, false},
		{"created skips to delivered", domain.OrderStatusCreated, domain.OrderStatusDelivered, false},
		{"in_production to ready", domain.OrderStatusInProduction, domain.OrderStatusReady, true},
		{"in_production back to created", domain.OrderStatusInProduction, domain.OrderStatusCreated, false},
		{"ready to delivered", domain.OrderStatusReady, domain.OrderStatusDelivered, true},
		{"delivered is terminal", domain.OrderStatusDelivered, domain.OrderStatusCancelled, false},
		{"cancelled is terminal", domain.OrderStatusCancelled, domain.OrderStatusCreated, false},
		{"no self transition", domain.OrderStatusCreated, domain.OrderStatusCreated, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CanTransition(domain.DocumentTypeOrder, tt.from, tt.to))
		})
	}
}

func TestCanTransition_QuoteLifecycle(t *testing.T) {
	tests := []struct {
		name string
		from domain.DocumentStatus
		to   domain.DocumentStatus
		want bool
	}{
		{"draft to sent", domain.QuoteStatusDraft, domain.QuoteStatusSent, true},
		{"draft to accepted", domain.QuoteStatusDraft, domain.QuoteStatusAccepted, false},
		{"sent to accepted", domain.QuoteStatusSent, domain.QuoteStatusAccepted, true},
		{"sent to rejected", domain.QuoteStatusSent, domain.QuoteStatusRejected, true},
		{"rejected can be resent", domain.QuoteStatusRejected, domain.QuoteStatusSent, true},
		{"accepted to converted", domain.QuoteStatusAccepted, domain.QuoteStatusConverted, true},
		{"accepted cannot be cancelled", domain.QuoteStatusAccepted, domain.QuoteStatusCancelled, false},
		{"converted is terminal", domain.QuoteStatusConverted, domain.QuoteStatusSent, false},
		{"cancelled is terminal", domain.QuoteStatusCancelled, domain.QuoteStatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CanTransition(domain.DocumentTypeQuote, tt.from, tt.to))
		})
	}
}

func TestCanTransition_ExpenseOrderLifecycle(t *testing.T) {
	tests := []struct {
		name string
		from domain.DocumentStatus
		to   domain.DocumentStatus
		want bool
	}{
		{"draft to created", domain.ExpenseStatusDraft, domain.ExpenseStatusCreated, true},
		{"draft straight to authorized", domain.ExpenseStatusDraft, domain.ExpenseStatusAuthorized, true},
		{"draft to paid", domain.ExpenseStatusDraft, domain.ExpenseStatusPaid, false},
		{"created to authorized", domain.ExpenseStatusCreated, domain.ExpenseStatusAuthorized, true},
		{"created back to draft", domain.ExpenseStatusCreated, domain.ExpenseStatusDraft, true},
		{"authorized to paid", domain.ExpenseStatusAuthorized, domain.ExpenseStatusPaid, true},
		{"authorized back to created", domain.ExpenseStatusAuthorized, domain.ExpenseStatusCreated, false},
		{"paid is terminal", domain.ExpenseStatusPaid, domain.ExpenseStatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CanTransition(domain.DocumentTypeExpenseOrder, tt.from, tt.to))
		})
	}
}

// Every pair not present in LegalNextStatuses must be rejected, for every type.
func TestCanTransition_MatchesLegalNextStatuses(t *testing.T) {
	for _, docType := range []domain.DocumentType{domain.DocumentTypeOrder, domain.DocumentTypeQuote, domain.DocumentTypeExpenseOrder} {
		statuses := domain.KnownStatuses(docType)
		require.NotEmpty(t, statuses)

		for _, from := range statuses {
			legal := make(map[domain.DocumentStatus]bool)
			for _, next := range domain.LegalNextStatuses(docType, from) {
				legal[next] = true
			}
			for _, to := range statuses {
				assert.Equal(t, legal[to], domain.CanTransition(docType, from, to),
					"%s: %s -> %s", docType, from, to)
			}
		}
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, domain.IsTerminal(domain.DocumentTypeOrder, domain.OrderStatusDelivered))
	assert.True(t, domain.IsTerminal(domain.DocumentTypeOrder, domain.OrderStatusCancelled))
	assert.True(t, domain.IsTerminal(domain.DocumentTypeQuote, domain.QuoteStatusConverted))
	assert.True(t, domain.IsTerminal(domain.DocumentTypeExpenseOrder, domain.ExpenseStatusPaid))
	assert.False(t, domain.IsTerminal(domain.DocumentTypeOrder, domain.OrderStatusCreated))
	assert.False(t, domain.IsTerminal(domain.DocumentTypeQuote, domain.QuoteStatusRejected))
	// Unknown statuses are not terminal, they are simply unknown.
	assert.False(t, domain.IsTerminal(domain.DocumentTypeOrder, domain.QuoteStatusDraft))
}

func TestGateFor(t *testing.T) {
	gate, ok := domain.GateFor(domain.DocumentTypeExpenseOrder, domain.ExpenseStatusAuthorized)
	require.True(t, ok)
	assert.Equal(t, domain.CapabilityApproveExpenses, gate.Capability)
	assert.True(t, gate.Deferrable)

	gate, ok = domain.GateFor(domain.DocumentTypeExpenseOrder, domain.ExpenseStatusPaid)
	require.True(t, ok)
	assert.Equal(t, domain.CapabilityPayExpenses, gate.Capability)
	assert.False(t, gate.Deferrable)

	gate, ok = domain.GateFor(domain.DocumentTypeOrder, domain.OrderStatusCancelled)
	require.True(t, ok)
	assert.Equal(t, domain.CapabilityCancelOrders, gate.Capability)
	assert.True(t, gate.Deferrable)

	gate, ok = domain.GateFor(domain.DocumentTypeQuote, domain.QuoteStatusCancelled)
	require.True(t, ok)
	assert.Equal(t, domain.CapabilityCancelQuotes, gate.Capability)
	assert.False(t, gate.Deferrable)

	_, ok = domain.GateFor(domain.DocumentTypeOrder, domain.OrderStatusInProduction)
	assert.False(t, ok)
}

func TestInitialStatusAndPrefix(t *testing.T) {
	assert.Equal(t, domain.OrderStatusCreated, domain.InitialStatus(domain.DocumentTypeOrder))
	assert.Equal(t, domain.QuoteStatusDraft, domain.InitialStatus(domain.DocumentTypeQuote))
	assert.Equal(t, domain.ExpenseStatusDraft, domain.InitialStatus(domain.DocumentTypeExpenseOrder))

	assert.Equal(t, "OP", domain.SequencePrefix(domain.DocumentTypeOrder))
	assert.Equal(t, "COT", domain.SequencePrefix(domain.DocumentTypeQuote))
	assert.Equal(t, "OG", domain.SequencePrefix(domain.DocumentTypeExpenseOrder))
}

func TestIsValidDocumentType(t *testing.T) {
	assert.True(t, domain.IsValidDocumentType(domain.DocumentTypeOrder))
	assert.True(t, domain.IsValidDocumentType(domain.DocumentTypeQuote))
	assert.True(t, domain.IsValidDocumentType(domain.DocumentTypeExpenseOrder))
	assert.False(t, domain.IsValidDocumentType(domain.DocumentType("INVOICE")))
}
