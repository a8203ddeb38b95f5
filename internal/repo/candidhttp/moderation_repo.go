package candidhttp

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/GovThePPL/candid-sub000/internal/domain/model"
)

// ModerationRepo is the client side of the Candid moderation endpoints.
type ModerationRepo struct {
	client *Client
	log    *zap.Logger
}

func NewModerationRepo(client *Client, log *zap.Logger) *ModerationRepo {
	if log == nil {
		log = zap.NewNop()
	}
	return &ModerationRepo{client: client, log: log}
}

func (r *ModerationRepo) GetQueue(ctx context.Context) ([]model.QueueItem, error) {
	var envelopes []queueEnvelopeDTO
	if err := r.client.DoJSON(ctx, http.MethodGet, "/moderation/queue", nil, &envelopes); err != nil {
		return nil, err
	}

	items := make([]model.QueueItem, 0, len(envelopes))
	for idx, envelope := range envelopes {
		item, err := decodeQueueItem(envelope)
		if err != nil {
			return nil, &RequestError{
				Op:  "decode moderation queue",
				Err: err,
			}
		}
		if item == nil {
			r.log.Warn("skipping unknown moderation queue item",
				zap.String("type", envelope.Type),
				zap.Int("position", idx),
			)
			continue
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *ModerationRepo) ClaimReport(ctx context.Context, reportID string) error {
	path, err := reportPath(reportID, "claim")
	if err != nil {
		return err
	}
	return r.client.DoJSON(ctx, http.MethodPost, path, nil, nil)
}

func (r *ModerationRepo) ReleaseReport(ctx context.Context, reportID string) error {
	path, err := reportPath(reportID, "release")
	if err != nil {
		return err
	}
	return r.client.DoJSON(ctx, http.MethodPost, path, nil, nil)
}

func (r *ModerationRepo) TakeAction(ctx context.Context, reportID string, req model.TakeActionRequest) error {
	path, err := reportPath(reportID, "response")
	if err != nil {
		return err
	}
	body := takeActionRequestDTO{
		ModResponse:     string(req.ModResponse),
		ModResponseText: strings.TrimSpace(req.ModResponseText),
		Actions:         modActionsToDTO(req.Actions),
	}
	return r.client.DoJSON(ctx, http.MethodPost, path, body, nil)
}

func (r *ModerationRepo) RespondToAppeal(ctx context.Context, appealID string, req model.AppealResponseRequest) error {
	if strings.TrimSpace(appealID) == "" {
		return invalidID("respond to appeal")
	}
	body := appealResponseRequestDTO{
		Response:     string(req.Response),
		ResponseText: strings.TrimSpace(req.ResponseText),
		Actions:      modActionsToDTO(req.Actions),
	}
	path := "/moderation/appeals/" + url.PathEscape(appealID) + "/response"
	return r.client.DoJSON(ctx, http.MethodPost, path, body, nil)
}

func (r *ModerationRepo) DismissAdminResponseNotification(ctx context.Context, modActionAppealID string) error {
	if strings.TrimSpace(modActionAppealID) == "" {
		return invalidID("dismiss admin response notification")
	}
	path := "/moderation/notifications/" + url.PathEscape(modActionAppealID) + "/dismiss"
	return r.client.DoJSON(ctx, http.MethodPost, path, nil, nil)
}

func reportPath(reportID string, verb string) (string, error) {
	if strings.TrimSpace(reportID) == "" {
		return "", invalidID(verb + " report")
	}
	return "/moderation/reports/" + url.PathEscape(reportID) + "/" + verb, nil
}

func invalidID(op string) error {
	return &RequestError{
		Op:  op,
		Err: errors.New("empty item id"),
	}
}
