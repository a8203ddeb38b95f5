package enums

type ReportType string

const (
	ReportTypePosition ReportType = "position"
	ReportTypeChatLog  ReportType = "chat_log"
)
