package handlers

import (
	"net/http"

	"go.uber.org/zap"

	auditsvc "github.com/GovThePPL/candid-sub000/internal/services/audit"
	"github.com/GovThePPL/candid-sub000/internal/transport/http/dto"
	httperrors "github.com/GovThePPL/candid-sub000/internal/transport/http/errors"
)

type AuditHandler struct {
	service      *auditsvc.Service
	defaultLimit int
	log          *zap.Logger
}

func NewAuditHandler(service *auditsvc.Service, defaultLimit int, log *zap.Logger) *AuditHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuditHandler{service: service, defaultLimit: defaultLimit, log: log}
}

func (h *AuditHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := parseIntOrDefault(r.URL.Query().Get("limit"), h.defaultLimit)

	entries, err := h.service.ListRecent(r.Context(), limit)
	if err != nil {
		h.log.Error("list audit entries", zap.Error(err))
		writeInternal(w, "AUDIT_UNAVAILABLE", "failed to load audit journal")
		return
	}

	items := make([]dto.AuditEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.AuditEntryDTO{
			ID:          entry.ID,
			ModeratorID: entry.ModeratorID,
			ItemKind:    string(entry.ItemKind),
			ItemID:      entry.ItemID,
			Action:      string(entry.Action),
			Outcome:     string(entry.Outcome),
			Error:       entry.Error,
			Payload:     entry.Payload,
			CreatedAt:   entry.CreatedAt,
		})
	}
	httperrors.Write(w, http.StatusOK, dto.AuditRecentResponse{Items: items})
}
