package enums

type ItemKind string

const (
	ItemKindReport                    ItemKind = "report"
	ItemKindAppeal                    ItemKind = "appeal"
	ItemKindAdminResponseNotification ItemKind = "admin_response_notification"
)
