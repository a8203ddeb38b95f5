package dto

import (
	"encoding/json"
	"time"
)

type AuditEntryDTO struct {
	ID          string          `json:"id"`
	ModeratorID string          `json:"moderator_id"`
	ItemKind    string          `json:"item_kind"`
	ItemID      string          `json:"item_id"`
	Action      string          `json:"action"`
	Outcome     string          `json:"outcome"`
	Error       string          `json:"error,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type AuditRecentResponse struct {
	Items []AuditEntryDTO `json:"items"`
}

type HealthResponse struct {
	OK bool `json:"ok"`
}
