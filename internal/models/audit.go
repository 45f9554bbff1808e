package models

import "time"

// AuditLog is the persisted shape of an audit entry. OldData/NewData hold the
// raw JSONB snapshot bytes; the mapping layer converts them to maps.
type AuditLog struct {
	AuditID   string    `json:"auditId"`
	Model     string    `json:"model"`
	RecordID  string    `json:"recordId"`
	Action    string    `json:"action"`
	OldData   []byte    `json:"oldData,omitempty"`
	NewData   []byte    `json:"newData,omitempty"`
	UserID    *string   `json:"userId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
