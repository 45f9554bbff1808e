package mapping

import (
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/models"
)

// ToModelAuditFields converts domain audit fields to the persisted shape.
func ToModelAuditFields(f domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     f.CreatedAt,
		CreatedBy:     f.CreatedBy,
		LastUpdatedAt: f.LastUpdatedAt,
		LastUpdatedBy: f.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts persisted audit fields to the domain shape.
func ToDomainAuditFields(f models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     f.CreatedAt,
		CreatedBy:     f.CreatedBy,
		LastUpdatedAt: f.LastUpdatedAt,
		LastUpdatedBy: f.LastUpdatedBy,
	}
}
