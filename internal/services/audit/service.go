package audit

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GovThePPL/candid-sub000/internal/domain/model"
)

type Repo interface {
	Save(context.Context, model.AuditEntry) error
	ListRecent(context.Context, int) ([]model.AuditEntry, error)
}

type Service struct {
	repo        Repo
	moderatorID string
	now         func() time.Time
	newID       func() string
}

func NewService(repo Repo, moderatorID string) *Service {
	return &Service{
		repo:        repo,
		moderatorID: strings.TrimSpace(moderatorID),
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Record stamps id, time and moderator onto entry when missing and saves it.
func (s *Service) Record(ctx context.Context, entry model.AuditEntry) error {
	if s == nil || s.repo == nil {
		return nil
	}

	if entry.ID == "" {
		entry.ID = s.newID()
	}
	if entry.ModeratorID == "" {
		entry.ModeratorID = s.moderatorID
	}
	if entry.ModeratorID == "" {
		entry.ModeratorID = "unknown"
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}

	return s.repo.Save(ctx, entry)
}

func (s *Service) ListRecent(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	if s == nil || s.repo == nil {
		return []model.AuditEntry{}, nil
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return s.repo.ListRecent(ctx, limit)
}
