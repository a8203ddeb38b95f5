package dispatch

import (
	"github.com/GovThePPL/candid-sub000/internal/domain/enums"
	"github.com/GovThePPL/candid-sub000/internal/domain/model"
)

var (
	reportActions = []enums.UserAction{
		enums.UserActionPass,
		enums.UserActionDismiss,
		enums.UserActionTakeAction,
		enums.UserActionMarkSpurious,
	}
	appealActionsByState = map[enums.AppealState][]enums.UserAction{
		enums.AppealStatePending: {
			enums.UserActionApprove,
			enums.UserActionDeny,
			enums.UserActionModify,
		},
		enums.AppealStateOverruled: {
			enums.UserActionAccept,
			enums.UserActionEscalate,
		},
		enums.AppealStateEscalated: {
			enums.UserActionSideWithOverruler,
			enums.UserActionSideWithOriginal,
		},
	}
	notificationActions = []enums.UserAction{
		enums.UserActionDismiss,
	}
)

// AllowedActions lists what the moderator may do with item. Appeals in a state
// without a row get nothing.
func AllowedActions(item model.QueueItem) []enums.UserAction {
	var actions []enums.UserAction

	switch v := item.(type) {
	case model.Report:
		actions = reportActions
	case model.Appeal:
		actions = appealActionsByState[v.State]
	case model.AdminResponseNotification:
		actions = notificationActions
	}

	out := make([]enums.UserAction, len(actions))
	copy(out, actions)
	return out
}

func allowed(item model.QueueItem, action enums.UserAction) bool {
	for _, candidate := range AllowedActions(item) {
		if candidate == action {
			return true
		}
	}
	return false
}
