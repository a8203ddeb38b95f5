package model

import (
	"time"

	"github.com/GovThePPL/candid-sub000/internal/domain/enums"
)

// ModAction is one per-user-class consequence submitted with take_action or modify.
type ModAction struct {
	UserClass    enums.UserClass
	Action       enums.ModActionKind
	DurationDays *int
}

type ModActionRecord struct {
	ID              string
	Responder       User
	ModResponse     enums.ModResponse
	ModResponseText string
	Actions         []ModAction
	CreatedAt       time.Time
}

type AppealResponseRecord struct {
	Responder    User
	Response     enums.AppealResponse
	ResponseText string
	CreatedAt    time.Time
}

type TakeActionRequest struct {
	ModResponse     enums.ModResponse
	ModResponseText string
	Actions         []ModAction
}

type AppealResponseRequest struct {
	Response     enums.AppealResponse
	ResponseText string
	Actions      []ModAction
}
