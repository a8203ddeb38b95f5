package enums

// UserAction is what the moderator pressed; the dispatcher resolves it against the current item.
type UserAction string

const (
	UserActionPass              UserAction = "pass"
	UserActionDismiss           UserAction = "dismiss"
	UserActionTakeAction        UserAction = "take_action"
	UserActionMarkSpurious      UserAction = "mark_spurious"
	UserActionApprove           UserAction = "approve"
	UserActionDeny              UserAction = "deny"
	UserActionModify            UserAction = "modify"
	UserActionAccept            UserAction = "accept"
	UserActionEscalate          UserAction = "escalate"
	UserActionSideWithOverruler UserAction = "side_with_overruler"
	UserActionSideWithOriginal  UserAction = "side_with_original"
)
