package mapping

import (
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/models"
)

// ToModelDocument converts a domain document to its persisted shape.
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:  d.DocumentID,
		Type:        string(d.Type),
		Number:      d.Number,
		Status:      string(d.Status),
		ClientName:  d.ClientName,
		Description: d.Description,
		TotalAmount: d.TotalAmount,
		Version:     d.Version,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDocument converts a persisted document row to the domain shape.
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:  m.DocumentID,
		Type:        domain.DocumentType(m.Type),
		Number:      m.Number,
		Status:      domain.DocumentStatus(m.Status),
		ClientName:  m.ClientName,
		Description: m.Description,
		TotalAmount: m.TotalAmount,
		Version:     m.Version,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelOrderItem converts a domain order item to its persisted shape.
func ToModelOrderItem(i domain.OrderItem) models.OrderItem {
	return models.OrderItem{
		ItemID:      i.ItemID,
		DocumentID:  i.DocumentID,
		Product:     i.Product,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice,
		AuditFields: ToModelAuditFields(i.AuditFields),
	}
}

// ToDomainOrderItem converts a persisted order item row to the domain shape.
func ToDomainOrderItem(m models.OrderItem) domain.OrderItem {
	return domain.OrderItem{
		ItemID:      m.ItemID,
		DocumentID:  m.DocumentID,
		Product:     m.Product,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPayment converts a domain payment to its persisted shape.
func ToModelPayment(p domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:   p.PaymentID,
		DocumentID:  p.DocumentID,
		Amount:      p.Amount,
		Method:      p.Method,
		Notes:       p.Notes,
		AuditFields: ToModelAuditFields(p.AuditFields),
	}
}

// ToDomainPayment converts a persisted payment row to the domain shape.
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:   m.PaymentID,
		DocumentID:  m.DocumentID,
		Amount:      m.Amount,
		Method:      m.Method,
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
