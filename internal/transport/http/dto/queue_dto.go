package dto

import (
	"encoding/json"
	"time"
)

type QueueSnapshotResponse struct {
	State          string            `json:"state"`
	Position       int               `json:"position"`
	Total          int               `json:"total"`
	Current        *QueueItemPayload `json:"current"`
	UserClasses    []string          `json:"user_classes"`
	AllowedActions []string          `json:"allowed_actions"`
	Processing     bool              `json:"processing"`
	Error          *string           `json:"error,omitempty"`
	LoadedAt       *time.Time        `json:"loaded_at,omitempty"`
}

type QueueItemPayload struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type QueueActionRequest struct {
	Action     string                  `json:"action"`
	Text       string                  `json:"text"`
	Selections []ModActionSelectionDTO `json:"selections"`
}

type ModActionSelectionDTO struct {
	UserClass    string          `json:"user_class"`
	Action       string          `json:"action"`
	DurationDays json.RawMessage `json:"duration_days,omitempty"`
}

type QueueActionResponse struct {
	Advanced  bool                  `json:"advanced"`
	ReloadErr *string               `json:"reload_error,omitempty"`
	Queue     QueueSnapshotResponse `json:"queue"`
}

type UserDTO struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Status      string `json:"status,omitempty"`
}

type RuleDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ChatMessageDTO struct {
	Sender  UserDTO    `json:"sender"`
	Content string     `json:"content"`
	SentAt  *time.Time `json:"sent_at,omitempty"`
}

type TargetContentDTO struct {
	ID        string           `json:"id"`
	Statement string           `json:"statement,omitempty"`
	Category  string           `json:"category,omitempty"`
	Author    *UserDTO         `json:"author,omitempty"`
	Messages  []ChatMessageDTO `json:"messages,omitempty"`
}

type ReportDTO struct {
	ID               string           `json:"id"`
	ReportType       string           `json:"report_type"`
	TargetContent    TargetContentDTO `json:"target_content"`
	Submitter        UserDTO          `json:"submitter"`
	SubmitterComment string           `json:"submitter_comment,omitempty"`
	Rule             RuleDTO          `json:"rule"`
	CreatedAt        *time.Time       `json:"created_at,omitempty"`
}

type ModActionDTO struct {
	UserClass    string `json:"user_class"`
	Action       string `json:"action"`
	DurationDays *int   `json:"duration_days,omitempty"`
}

type ModActionRecordDTO struct {
	ID              string         `json:"id"`
	Responder       UserDTO        `json:"responder"`
	ModResponse     string         `json:"mod_response"`
	ModResponseText string         `json:"mod_response_text,omitempty"`
	Actions         []ModActionDTO `json:"actions"`
}

type AppealResponseDTO struct {
	Responder    UserDTO    `json:"responder"`
	Response     string     `json:"response"`
	ResponseText string     `json:"response_text,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

type AppealDTO struct {
	ID                 string              `json:"id"`
	State              string              `json:"state"`
	OriginalReport     ReportDTO           `json:"original_report"`
	OriginalAction     ModActionRecordDTO  `json:"original_action"`
	User               UserDTO             `json:"user"`
	UserClass          string              `json:"user_class"`
	AppealText         string              `json:"appeal_text"`
	PriorResponses     []AppealResponseDTO `json:"prior_responses"`
	OverrulingResponse *AppealResponseDTO  `json:"overruling_response,omitempty"`
}

type AdminResponseNotificationDTO struct {
	ModActionAppealID string              `json:"mod_action_appeal_id"`
	State             string              `json:"state"`
	OriginalReport    ReportDTO           `json:"original_report"`
	OriginalAction    ModActionRecordDTO  `json:"original_action"`
	AppealText        string              `json:"appeal_text"`
	AppealUser        UserDTO             `json:"appeal_user"`
	AdminResponder    UserDTO             `json:"admin_responder"`
	AdminResponseText string              `json:"admin_response_text"`
	PriorResponses    []AppealResponseDTO `json:"prior_responses"`
}
