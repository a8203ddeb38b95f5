package candidhttp

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/GovThePPL/candid-sub000/internal/domain/enums"
	"github.com/GovThePPL/candid-sub000/internal/domain/model"
)

type queueEnvelopeDTO struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type userDTO struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Status      string `json:"status"`
}

type ruleDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"text"`
}

type chatMessageDTO struct {
	Sender  userDTO    `json:"sender"`
	Content string     `json:"content"`
	SentAt  *time.Time `json:"sentTime"`
}

type targetContentDTO struct {
	ID        string           `json:"id"`
	Statement string           `json:"statement"`
	Category  string           `json:"category"`
	Author    *userDTO         `json:"creator"`
	Messages  []chatMessageDTO `json:"messages"`
}

type reportDTO struct {
	ID               string           `json:"id"`
	ReportType       string           `json:"reportType"`
	TargetContent    targetContentDTO `json:"targetContent"`
	Submitter        userDTO          `json:"submitter"`
	SubmitterComment string           `json:"submitterComment"`
	Rule             ruleDTO          `json:"rule"`
	CreatedTime      *time.Time       `json:"createdTime"`
}

type modActionDTO struct {
	UserClass string `json:"userClass"`
	Action    string `json:"action"`
	Duration  *int   `json:"duration,omitempty"`
}

type modActionRecordDTO struct {
	ID              string         `json:"id"`
	Responder       userDTO        `json:"responder"`
	ModResponse     string         `json:"modResponse"`
	ModResponseText string         `json:"modResponseText"`
	Actions         []modActionDTO `json:"actions"`
	CreatedTime     *time.Time     `json:"createdTime"`
}

type appealResponseDTO struct {
	Responder    userDTO    `json:"responder"`
	Response     string     `json:"response"`
	ResponseText string     `json:"responseText"`
	CreatedTime  *time.Time `json:"createdTime"`
}

type appealDTO struct {
	ID             string              `json:"id"`
	AppealState    string              `json:"appealState"`
	OriginalReport reportDTO           `json:"originalReport"`
	OriginalAction modActionRecordDTO  `json:"originalAction"`
	User           userDTO             `json:"user"`
	UserClass      string              `json:"userClass"`
	AppealText     string              `json:"appealText"`
	PriorResponses []appealResponseDTO `json:"priorResponses"`
	CreatedTime    *time.Time          `json:"createdTime"`
}

type adminResponseNotificationDTO struct {
	ModActionAppealID string              `json:"modActionAppealId"`
	AppealState       string              `json:"appealState"`
	OriginalReport    reportDTO           `json:"originalReport"`
	OriginalAction    modActionRecordDTO  `json:"originalAction"`
	AppealText        string              `json:"appealText"`
	AppealUser        userDTO             `json:"appealUser"`
	AdminResponder    userDTO             `json:"adminResponder"`
	AdminResponseText string              `json:"adminResponseText"`
	PriorResponses    []appealResponseDTO `json:"priorResponses"`
}

type takeActionRequestDTO struct {
	ModResponse     string         `json:"modResponse"`
	ModResponseText string         `json:"modResponseText,omitempty"`
	Actions         []modActionDTO `json:"actions,omitempty"`
}

type appealResponseRequestDTO struct {
	Response     string         `json:"response"`
	ResponseText string         `json:"responseText,omitempty"`
	Actions      []modActionDTO `json:"actions,omitempty"`
}

// decodeQueueItem returns (nil, nil) for item types this agent does not know.
func decodeQueueItem(envelope queueEnvelopeDTO) (model.QueueItem, error) {
	switch enums.ItemKind(strings.TrimSpace(envelope.Type)) {
	case enums.ItemKindReport:
		var dto reportDTO
		if err := json.Unmarshal(envelope.Data, &dto); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		if strings.TrimSpace(dto.ID) == "" {
			return nil, fmt.Errorf("decode report: missing id")
		}
		return dto.toModel(), nil
	case enums.ItemKindAppeal:
		var dto appealDTO
		if err := json.Unmarshal(envelope.Data, &dto); err != nil {
			return nil, fmt.Errorf("decode appeal: %w", err)
		}
		if strings.TrimSpace(dto.ID) == "" {
			return nil, fmt.Errorf("decode appeal: missing id")
		}
		state := enums.AppealState(dto.AppealState)
		switch state {
		case enums.AppealStatePending, enums.AppealStateEscalated, enums.AppealStateOverruled:
		default:
			return nil, fmt.Errorf("decode appeal %s: unsupported appeal state %q", dto.ID, dto.AppealState)
		}
		return dto.toModel(), nil
	case enums.ItemKindAdminResponseNotification:
		var dto adminResponseNotificationDTO
		if err := json.Unmarshal(envelope.Data, &dto); err != nil {
			return nil, fmt.Errorf("decode admin response notification: %w", err)
		}
		if strings.TrimSpace(dto.ModActionAppealID) == "" {
			return nil, fmt.Errorf("decode admin response notification: missing modActionAppealId")
		}
		state := enums.AppealState(dto.AppealState)
		switch state {
		case enums.AppealStateApproved, enums.AppealStateDenied, enums.AppealStateModified:
		default:
			return nil, fmt.Errorf("decode admin response notification %s: unsupported appeal state %q", dto.ModActionAppealID, dto.AppealState)
		}
		return dto.toModel(), nil
	default:
		return nil, nil
	}
}

func (d userDTO) toModel() model.User {
	return model.User{
		ID:          d.ID,
		Username:    d.Username,
		DisplayName: d.DisplayName,
		Status:      d.Status,
	}
}

func (d reportDTO) toModel() model.Report {
	content := model.TargetContent{
		ID:        d.TargetContent.ID,
		Statement: d.TargetContent.Statement,
		Category:  d.TargetContent.Category,
	}
	if d.TargetContent.Author != nil {
		author := d.TargetContent.Author.toModel()
		content.Author = &author
	}
	for _, msg := range d.TargetContent.Messages {
		content.Messages = append(content.Messages, model.ChatMessage{
			Sender:  msg.Sender.toModel(),
			Content: msg.Content,
			SentAt:  timeOrZero(msg.SentAt),
		})
	}

	return model.Report{
		ID:               d.ID,
		TargetContent:    content,
		Submitter:        d.Submitter.toModel(),
		SubmitterComment: d.SubmitterComment,
		Rule: model.Rule{
			ID:          d.Rule.ID,
			Title:       d.Rule.Title,
			Description: d.Rule.Description,
		},
		ReportType: enums.ReportType(d.ReportType),
		CreatedAt:  timeOrZero(d.CreatedTime),
	}
}

func (d modActionRecordDTO) toModel() model.ModActionRecord {
	return model.ModActionRecord{
		ID:              d.ID,
		Responder:       d.Responder.toModel(),
		ModResponse:     enums.ModResponse(d.ModResponse),
		ModResponseText: d.ModResponseText,
		Actions:         modActionsFromDTO(d.Actions),
		CreatedAt:       timeOrZero(d.CreatedTime),
	}
}

func (d appealDTO) toModel() model.Appeal {
	return model.Appeal{
		ID:             d.ID,
		State:          enums.AppealState(d.AppealState),
		OriginalReport: d.OriginalReport.toModel(),
		OriginalAction: d.OriginalAction.toModel(),
		User:           d.User.toModel(),
		UserClass:      enums.UserClass(d.UserClass),
		AppealText:     d.AppealText,
		PriorResponses: appealResponsesFromDTO(d.PriorResponses),
		CreatedAt:      timeOrZero(d.CreatedTime),
	}
}

func (d adminResponseNotificationDTO) toModel() model.AdminResponseNotification {
	return model.AdminResponseNotification{
		ModActionAppealID: d.ModActionAppealID,
		State:             enums.AppealState(d.AppealState),
		OriginalReport:    d.OriginalReport.toModel(),
		OriginalAction:    d.OriginalAction.toModel(),
		AppealText:        d.AppealText,
		AppealUser:        d.AppealUser.toModel(),
		AdminResponder:    d.AdminResponder.toModel(),
		AdminResponseText: d.AdminResponseText,
		PriorResponses:    appealResponsesFromDTO(d.PriorResponses),
	}
}

func modActionsFromDTO(values []modActionDTO) []model.ModAction {
	if len(values) == 0 {
		return nil
	}
	actions := make([]model.ModAction, 0, len(values))
	for _, v := range values {
		actions = append(actions, model.ModAction{
			UserClass:    enums.UserClass(v.UserClass),
			Action:       enums.ModActionKind(v.Action),
			DurationDays: v.Duration,
		})
	}
	return actions
}

func modActionsToDTO(values []model.ModAction) []modActionDTO {
	if len(values) == 0 {
		return nil
	}
	result := make([]modActionDTO, 0, len(values))
	for _, v := range values {
		result = append(result, modActionDTO{
			UserClass: string(v.UserClass),
			Action:    string(v.Action),
			Duration:  v.DurationDays,
		})
	}
	return result
}

func appealResponsesFromDTO(values []appealResponseDTO) []model.AppealResponseRecord {
	if len(values) == 0 {
		return nil
	}
	result := make([]model.AppealResponseRecord, 0, len(values))
	for _, v := range values {
		result = append(result, model.AppealResponseRecord{
			Responder:    v.Responder.toModel(),
			Response:     enums.AppealResponse(v.Response),
			ResponseText: v.ResponseText,
			CreatedAt:    timeOrZero(v.CreatedTime),
		})
	}
	return result
}

func timeOrZero(value *time.Time) time.Time {
	if value == nil {
		return time.Time{}
	}
	return value.UTC()
}
