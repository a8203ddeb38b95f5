package enums

type AppealState string

const (
	AppealStatePending   AppealState = "pending"
	AppealStateEscalated AppealState = "escalated"
	AppealStateOverruled AppealState = "overruled"

	// Admin resolutions, carried by admin response notifications.
	AppealStateApproved AppealState = "approved"
	AppealStateDenied   AppealState = "denied"
	AppealStateModified AppealState = "modified"
)
