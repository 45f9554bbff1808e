package mapping

import (
	"encoding/json"

	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/models"
)

// ToModelAuditLog converts a domain audit entry to its persisted shape,
// marshalling the snapshots to JSONB bytes. Nil snapshots stay nil so the
// column is NULL rather than the JSON literal "null".
func ToModelAuditLog(e domain.AuditLogEntry) (models.AuditLog, error) {
	m := models.AuditLog{
		AuditID:   e.AuditID,
		Model:     e.Model,
		RecordID:  e.RecordID,
		Action:    string(e.Action),
		UserID:    e.UserID,
		CreatedAt: e.CreatedAt,
	}
	if e.OldData != nil {
		data, err := json.Marshal(e.OldData)
		if err != nil {
			return models.AuditLog{}, err
		}
		m.OldData = data
	}
	if e.NewData != nil {
		data, err := json.Marshal(e.NewData)
		if err != nil {
			return models.AuditLog{}, err
		}
		m.NewData = data
	}
	return m, nil
}

// ToDomainAuditLog converts a persisted audit row to the domain shape.
func ToDomainAuditLog(m models.AuditLog) (domain.AuditLogEntry, error) {
	e := domain.AuditLogEntry{
		AuditID:   m.AuditID,
		Model:     m.Model,
		RecordID:  m.RecordID,
		Action:    domain.AuditAction(m.Action),
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
	}
	if len(m.OldData) > 0 {
		if err := json.Unmarshal(m.OldData, &e.OldData); err != nil {
			return domain.AuditLogEntry{}, err
		}
	}
	if len(m.NewData) > 0 {
		if err := json.Unmarshal(m.NewData, &e.NewData); err != nil {
			return domain.AuditLogEntry{}, err
		}
	}
	return e, nil
}
