package enums

type ModActionKind string

const (
	ModActionNone         ModActionKind = "none"
	ModActionRemoved      ModActionKind = "removed"
	ModActionWarning      ModActionKind = "warning"
	ModActionTemporaryBan ModActionKind = "temporary_ban"
	ModActionPermanentBan ModActionKind = "permanent_ban"
)

func (k ModActionKind) Valid() bool {
	switch k {
	case ModActionNone, ModActionRemoved, ModActionWarning, ModActionTemporaryBan, ModActionPermanentBan:
		return true
	default:
		return false
	}
}
