package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GovThePPL/candid-sub000/internal/domain/enums"
	"github.com/GovThePPL/candid-sub000/internal/domain/model"
)

// AuditRepo journals moderator decisions. A nil pool turns every call into a no-op
// so the agent keeps working without a database.
type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

func (r *AuditRepo) EnsureSchema(ctx context.Context) error {
	if r.pool == nil {
		return nil
	}

	if _, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS moderation_agent_audit (
	id UUID PRIMARY KEY,
	moderator_id TEXT NOT NULL,
	item_kind TEXT NOT NULL,
	item_id TEXT NOT NULL,
	action TEXT NOT NULL,
	outcome TEXT NOT NULL,
	error TEXT NOT NULL DEFAULT '',
	payload JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at TIMESTAMPTZ NOT NULL
)`); err != nil {
		return fmt.Errorf("ensure audit schema: %w", err)
	}
	return nil
}

func (r *AuditRepo) Save(ctx context.Context, entry model.AuditEntry) error {
	if r.pool == nil {
		return nil
	}

	payload := entry.Payload
	if len(payload) == 0 {
		payload = json.RawMessage(`{}`)
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO moderation_agent_audit (
	id,
	moderator_id,
	item_kind,
	item_id,
	action,
	outcome,
	error,
	payload,
	created_at
) VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8::jsonb, $9)
`,
		entry.ID,
		entry.ModeratorID,
		string(entry.ItemKind),
		entry.ItemID,
		string(entry.Action),
		string(entry.Outcome),
		entry.Error,
		string(payload),
		entry.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepo) ListRecent(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	if r.pool == nil {
		return []model.AuditEntry{}, nil
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, `
SELECT id::text, moderator_id, item_kind, item_id, action, outcome, error, payload, created_at
FROM moderation_agent_audit
ORDER BY created_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent audit entries: %w", err)
	}
	defer rows.Close()

	result := make([]model.AuditEntry, 0, limit)
	for rows.Next() {
		var entry model.AuditEntry
		var itemKind, action, outcome string
		var payload []byte
		if err := rows.Scan(
			&entry.ID,
			&entry.ModeratorID,
			&itemKind,
			&entry.ItemID,
			&action,
			&outcome,
			&entry.Error,
			&payload,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		entry.ItemKind = enums.ItemKind(itemKind)
		entry.Action = enums.UserAction(action)
		entry.Outcome = enums.AuditOutcome(outcome)
		entry.Payload = json.RawMessage(payload)
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit rows: %w", err)
	}

	return result, nil
}
