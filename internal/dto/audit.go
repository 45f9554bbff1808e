package dto

import (
	"time"

	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
)

// ActorSummaryResponse identifies the user behind an audit entry.
type ActorSummaryResponse struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// AuditEntryResponse is one enriched entry of a record's history.
// Actor is null for system-triggered actions.
type AuditEntryResponse struct {
	AuditID   string                `json:"auditId"`
	Model     string                `json:"model"`
	RecordID  string                `json:"recordId"`
	Action    string                `json:"action"`
	OldData   map[string]any        `json:"oldData,omitempty"`
	NewData   map[string]any        `json:"newData,omitempty"`
	Actor     *ActorSummaryResponse `json:"actor"`
	CreatedAt time.Time             `json:"createdAt"`
}

// ToAuditEntryResponse converts an enriched history entry to its external shape.
func ToAuditEntryResponse(entry domain.AuditHistoryEntry) AuditEntryResponse {
	resp := AuditEntryResponse{
		AuditID:   entry.AuditID,
		Model:     entry.Model,
		RecordID:  entry.RecordID,
		Action:    string(entry.Action),
		OldData:   entry.OldData,
		NewData:   entry.NewData,
		CreatedAt: entry.CreatedAt,
	}
	if entry.Actor != nil {
		resp.Actor = &ActorSummaryResponse{
			UserID: entry.Actor.UserID,
			Name:   entry.Actor.Name,
			Email:  entry.Actor.Email,
		}
	}
	return resp
}
