package model

import (
	"encoding/json"
	"time"

	"github.com/GovThePPL/candid-sub000/internal/domain/enums"
)

type AuditEntry struct {
	ID          string
	ModeratorID string
	ItemKind    enums.ItemKind
	ItemID      string
	Action      enums.UserAction
	Outcome     enums.AuditOutcome
	Error       string
	Payload     json.RawMessage
	CreatedAt   time.Time
}
