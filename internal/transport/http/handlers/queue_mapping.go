package handlers

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/GovThePPL/candid-sub000/internal/domain/enums"
	"github.com/GovThePPL/candid-sub000/internal/domain/model"
	"github.com/GovThePPL/candid-sub000/internal/domain/rules"
	dispatchsvc "github.com/GovThePPL/candid-sub000/internal/services/dispatch"
	queuesvc "github.com/GovThePPL/candid-sub000/internal/services/queue"
	"github.com/GovThePPL/candid-sub000/internal/transport/http/dto"
)

func snapshotResponse(snap queuesvc.Snapshot, processing bool) dto.QueueSnapshotResponse {
	response := dto.QueueSnapshotResponse{
		State:          string(snap.State),
		Position:       snap.Position,
		Total:          snap.Total,
		UserClasses:    []string{},
		AllowedActions: []string{},
		Processing:     processing,
	}
	if snap.LastError != nil {
		message := snap.LastError.Error()
		response.Error = &message
	}
	if !snap.LoadedAt.IsZero() {
		loadedAt := snap.LoadedAt
		response.LoadedAt = &loadedAt
	}
	if snap.Current == nil {
		return response
	}

	response.Current = &dto.QueueItemPayload{
		Type: string(snap.Current.Kind()),
		Data: queueItemData(snap.Current),
	}
	for _, action := range dispatchsvc.AllowedActions(snap.Current) {
		response.AllowedActions = append(response.AllowedActions, string(action))
	}
	for _, class := range rules.UserClassesFor(reportTypeOf(snap.Current)) {
		response.UserClasses = append(response.UserClasses, string(class))
	}
	return response
}

func reportTypeOf(item model.QueueItem) enums.ReportType {
	switch v := item.(type) {
	case model.Report:
		return v.ReportType
	case model.Appeal:
		return v.OriginalReport.ReportType
	default:
		return ""
	}
}

func queueItemData(item model.QueueItem) any {
	switch v := item.(type) {
	case model.Report:
		return reportDTO(v)
	case model.Appeal:
		out := dto.AppealDTO{
			ID:             v.ID,
			State:          string(v.State),
			OriginalReport: reportDTO(v.OriginalReport),
			OriginalAction: modActionRecordDTO(v.OriginalAction),
			User:           userDTO(v.User),
			UserClass:      string(v.UserClass),
			AppealText:     v.AppealText,
			PriorResponses: appealResponseDTOs(v.PriorResponses),
		}
		if v.State == enums.AppealStateEscalated {
			if overruling, ok := v.OverrulingResponse(); ok {
				converted := appealResponseDTO(overruling)
				out.OverrulingResponse = &converted
			}
		}
		return out
	case model.AdminResponseNotification:
		return dto.AdminResponseNotificationDTO{
			ModActionAppealID: v.ModActionAppealID,
			State:             string(v.State),
			OriginalReport:    reportDTO(v.OriginalReport),
			OriginalAction:    modActionRecordDTO(v.OriginalAction),
			AppealText:        v.AppealText,
			AppealUser:        userDTO(v.AppealUser),
			AdminResponder:    userDTO(v.AdminResponder),
			AdminResponseText: v.AdminResponseText,
			PriorResponses:    appealResponseDTOs(v.PriorResponses),
		}
	default:
		return nil
	}
}

func reportDTO(report model.Report) dto.ReportDTO {
	target := dto.TargetContentDTO{
		ID:        report.TargetContent.ID,
		Statement: report.TargetContent.Statement,
		Category:  report.TargetContent.Category,
	}
	if report.TargetContent.Author != nil {
		author := userDTO(*report.TargetContent.Author)
		target.Author = &author
	}
	for _, message := range report.TargetContent.Messages {
		target.Messages = append(target.Messages, dto.ChatMessageDTO{
			Sender:  userDTO(message.Sender),
			Content: message.Content,
			SentAt:  timePtr(message.SentAt),
		})
	}

	return dto.ReportDTO{
		ID:               report.ID,
		ReportType:       string(report.ReportType),
		TargetContent:    target,
		Submitter:        userDTO(report.Submitter),
		SubmitterComment: report.SubmitterComment,
		Rule: dto.RuleDTO{
			ID:          report.Rule.ID,
			Title:       report.Rule.Title,
			Description: report.Rule.Description,
		},
		CreatedAt: timePtr(report.CreatedAt),
	}
}

func userDTO(user model.User) dto.UserDTO {
	return dto.UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Status:      user.Status,
	}
}

func modActionRecordDTO(record model.ModActionRecord) dto.ModActionRecordDTO {
	actions := make([]dto.ModActionDTO, 0, len(record.Actions))
	for _, action := range record.Actions {
		actions = append(actions, dto.ModActionDTO{
			UserClass:    string(action.UserClass),
			Action:       string(action.Action),
			DurationDays: action.DurationDays,
		})
	}
	return dto.ModActionRecordDTO{
		ID:              record.ID,
		Responder:       userDTO(record.Responder),
		ModResponse:     string(record.ModResponse),
		ModResponseText: record.ModResponseText,
		Actions:         actions,
	}
}

func appealResponseDTO(record model.AppealResponseRecord) dto.AppealResponseDTO {
	return dto.AppealResponseDTO{
		Responder:    userDTO(record.Responder),
		Response:     string(record.Response),
		ResponseText: record.ResponseText,
		CreatedAt:    timePtr(record.CreatedAt),
	}
}

func appealResponseDTOs(records []model.AppealResponseRecord) []dto.AppealResponseDTO {
	out := make([]dto.AppealResponseDTO, 0, len(records))
	for _, record := range records {
		out = append(out, appealResponseDTO(record))
	}
	return out
}

func timePtr(value time.Time) *time.Time {
	if value.IsZero() {
		return nil
	}
	return &value
}

func selectionsFromDTO(items []dto.ModActionSelectionDTO) []rules.Selection {
	out := make([]rules.Selection, 0, len(items))
	for _, item := range items {
		out = append(out, rules.Selection{
			UserClass:    enums.UserClass(strings.TrimSpace(item.UserClass)),
			Action:       enums.ModActionKind(item.Action),
			DurationDays: durationInput(item.DurationDays),
		})
	}
	return out
}

// durationInput accepts duration_days as either a JSON number or a string; the
// rules package decides what to do with anything unparsable.
func durationInput(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	var number json.Number
	if err := json.Unmarshal(raw, &number); err == nil {
		return number.String()
	}
	return string(raw)
}
