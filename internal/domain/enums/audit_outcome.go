package enums

type AuditOutcome string

const (
	AuditOutcomeSucceeded AuditOutcome = "SUCCEEDED"
	AuditOutcomeFailed    AuditOutcome = "FAILED"
)
