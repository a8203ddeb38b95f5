package rules

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/GovThePPL/candid-sub000/internal/domain/enums"
	"github.com/GovThePPL/candid-sub000/internal/domain/model"
)

const DefaultTemporaryBanDays = 7

var (
	ErrNoActionSelected  = errors.New("at least one user class needs an action")
	ErrUnknownUserClass  = errors.New("user class does not apply to this report type")
	ErrUnknownActionKind = errors.New("unknown moderation action")
)

// Selection is one row of the take-action / modify form.
type Selection struct {
	UserClass    enums.UserClass
	Action       enums.ModActionKind
	DurationDays string
}

var userClassesByReportType = map[enums.ReportType][]enums.UserClass{
	enums.ReportTypePosition: {
		enums.UserClassCreator,
		enums.UserClassActiveAdopter,
		enums.UserClassPassiveAdopter,
	},
	enums.ReportTypeChatLog: {
		enums.UserClassReported,
		enums.UserClassReporter,
	},
}

func UserClassesFor(reportType enums.ReportType) []enums.UserClass {
	classes := userClassesByReportType[reportType]
	return append([]enums.UserClass(nil), classes...)
}

// BuildModActions turns form selections into the action list sent to the server.
// Rows set to none are dropped and temporary bans get a duration in days.
func BuildModActions(reportType enums.ReportType, selections []Selection) ([]model.ModAction, error) {
	allowed := userClassesByReportType[reportType]

	actions := make([]model.ModAction, 0, len(selections))
	for _, sel := range selections {
		if !containsUserClass(allowed, sel.UserClass) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownUserClass, sel.UserClass)
		}
		kind := enums.ModActionKind(strings.ToLower(strings.TrimSpace(string(sel.Action))))
		if kind == "" {
			kind = enums.ModActionNone
		}
		if !kind.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrUnknownActionKind, sel.Action)
		}
		if kind == enums.ModActionNone {
			continue
		}

		action := model.ModAction{UserClass: sel.UserClass, Action: kind}
		if kind == enums.ModActionTemporaryBan {
			days := ParseBanDays(sel.DurationDays)
			action.DurationDays = &days
		}
		actions = append(actions, action)
	}

	if len(actions) == 0 {
		return nil, ErrNoActionSelected
	}
	return actions, nil
}

// ParseBanDays reads the duration input; blank, non-numeric or non-positive input
// falls back to DefaultTemporaryBanDays.
func ParseBanDays(raw string) int {
	days, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || days <= 0 {
		return DefaultTemporaryBanDays
	}
	return days
}

func containsUserClass(classes []enums.UserClass, target enums.UserClass) bool {
	for _, class := range classes {
		if class == target {
			return true
		}
	}
	return false
}
