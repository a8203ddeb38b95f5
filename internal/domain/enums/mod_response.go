package enums

type ModResponse string

const (
	ModResponseDismiss      ModResponse = "dismiss"
	ModResponseTakeAction   ModResponse = "take_action"
	ModResponseMarkSpurious ModResponse = "mark_spurious"
)

type AppealResponse string

const (
	AppealResponseApprove  AppealResponse = "approve"
	AppealResponseDeny     AppealResponse = "deny"
	AppealResponseModify   AppealResponse = "modify"
	AppealResponseAccept   AppealResponse = "accept"
	AppealResponseEscalate AppealResponse = "escalate"
)
