package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/GovThePPL/candid-sub000/internal/domain/enums"
	"github.com/GovThePPL/candid-sub000/internal/domain/rules"
	"github.com/GovThePPL/candid-sub000/internal/repo/candidhttp"
	dispatchsvc "github.com/GovThePPL/candid-sub000/internal/services/dispatch"
	queuesvc "github.com/GovThePPL/candid-sub000/internal/services/queue"
	"github.com/GovThePPL/candid-sub000/internal/transport/http/dto"
	httperrors "github.com/GovThePPL/candid-sub000/internal/transport/http/errors"
)

type QueueHandler struct {
	queue      *queuesvc.Controller
	dispatcher *dispatchsvc.Dispatcher
	log        *zap.Logger
}

func NewQueueHandler(queue *queuesvc.Controller, dispatcher *dispatchsvc.Dispatcher, log *zap.Logger) *QueueHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &QueueHandler{queue: queue, dispatcher: dispatcher, log: log}
}

func (h *QueueHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	if h.queue == nil {
		writeInternal(w, "QUEUE_UNAVAILABLE", "moderation queue is unavailable")
		return
	}
	httperrors.Write(w, http.StatusOK, h.snapshot())
}

func (h *QueueHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if h.queue == nil {
		writeInternal(w, "QUEUE_UNAVAILABLE", "moderation queue is unavailable")
		return
	}

	if err := h.queue.Load(r.Context()); err != nil {
		writeRemoteError(w, "QUEUE_LOAD_FAILED", "failed to load moderation queue", err)
		return
	}
	httperrors.Write(w, http.StatusOK, h.snapshot())
}

func (h *QueueHandler) Act(w http.ResponseWriter, r *http.Request) {
	if h.queue == nil || h.dispatcher == nil {
		writeInternal(w, "QUEUE_UNAVAILABLE", "moderation queue is unavailable")
		return
	}

	var req dto.QueueActionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid json body")
		return
	}
	action := enums.UserAction(strings.ToLower(strings.TrimSpace(req.Action)))
	if action == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "action is required")
		return
	}

	result, err := h.dispatcher.Dispatch(r.Context(), dispatchsvc.Request{
		Action:     action,
		Text:       req.Text,
		Selections: selectionsFromDTO(req.Selections),
	})
	if err != nil {
		h.writeDispatchError(w, err)
		return
	}

	response := dto.QueueActionResponse{
		Advanced: result.Advanced,
		Queue:    h.snapshot(),
	}
	if result.ReloadErr != nil {
		message := result.ReloadErr.Error()
		response.ReloadErr = &message
	}
	httperrors.Write(w, http.StatusOK, response)
}

func (h *QueueHandler) snapshot() dto.QueueSnapshotResponse {
	processing := h.dispatcher != nil && h.dispatcher.Processing()
	return snapshotResponse(h.queue.Snapshot(), processing)
}

func (h *QueueHandler) writeDispatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dispatchsvc.ErrNoCurrentItem):
		httperrors.Write(w, http.StatusNotFound, httperrors.APIError{Code: "NO_CURRENT_ITEM", Message: "moderation queue has no current item"})
	case errors.Is(err, dispatchsvc.ErrBusy):
		httperrors.Write(w, http.StatusConflict, httperrors.APIError{Code: "ACTION_IN_PROGRESS", Message: "another action is still in progress"})
	case errors.Is(err, dispatchsvc.ErrActionNotAllowed):
		writeUnprocessable(w, "ACTION_NOT_ALLOWED", err.Error())
	case errors.Is(err, rules.ErrNoActionSelected):
		writeUnprocessable(w, "NO_ACTION_SELECTED", "select an action for at least one user class")
	case errors.Is(err, rules.ErrUnknownUserClass), errors.Is(err, rules.ErrUnknownActionKind):
		writeUnprocessable(w, "INVALID_SELECTION", err.Error())
	default:
		writeRemoteError(w, "MODERATION_ACTION_FAILED", "moderation action failed, try again", err)
	}
}

func writeRemoteError(w http.ResponseWriter, code, message string, err error) {
	apiErr := httperrors.APIError{
		Code:      code,
		Message:   message,
		Retryable: candidhttp.IsRetryable(err),
	}
	var reqErr *candidhttp.RequestError
	if errors.As(err, &reqErr) {
		apiErr.RequestID = reqErr.RequestID
	}
	httperrors.Write(w, http.StatusBadGateway, apiErr)
}
