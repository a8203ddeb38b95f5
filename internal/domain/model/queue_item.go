package model

import (
	"time"

	"github.com/GovThePPL/candid-sub000/internal/domain/enums"
)

// QueueItem is one entry of the moderation queue. The set of variants is closed:
// Report, Appeal and AdminResponseNotification.
type QueueItem interface {
	Kind() enums.ItemKind
	ItemID() string
	queueItem()
}

type Report struct {
	ID               string
	TargetContent    TargetContent
	Submitter        User
	SubmitterComment string
	Rule             Rule
	ReportType       enums.ReportType
	CreatedAt        time.Time
}

func (Report) Kind() enums.ItemKind { return enums.ItemKindReport }
func (r Report) ItemID() string { return r.ID }
func (Report) queueItem() {}

type Appeal struct {
	ID             string
	State          enums.AppealState
	OriginalReport Report
	OriginalAction ModActionRecord
	User           User
	UserClass      enums.UserClass
	AppealText     string
	PriorResponses []AppealResponseRecord
	CreatedAt      time.Time
}

func (Appeal) Kind() enums.ItemKind { return enums.ItemKindAppeal }
func (a Appeal) ItemID() string { return a.ID }
func (Appeal) queueItem() {}

// OverrulingResponse returns the most recent prior response on the appeal. For an
// escalated appeal this is the moderator who overruled the original action.
func (a Appeal) OverrulingResponse() (AppealResponseRecord, bool) {
	if len(a.PriorResponses) == 0 {
		return AppealResponseRecord{}, false
	}
	return a.PriorResponses[len(a.PriorResponses)-1], true
}

type AdminResponseNotification struct {
	ModActionAppealID string
	State             enums.AppealState
	OriginalReport    Report
	OriginalAction    ModActionRecord
	AppealText        string
	AppealUser        User
	AdminResponder    User
	AdminResponseText string
	PriorResponses    []AppealResponseRecord
}

func (AdminResponseNotification) Kind() enums.ItemKind {
	return enums.ItemKindAdminResponseNotification
}
func (n AdminResponseNotification) ItemID() string { return n.ModActionAppealID }
func (AdminResponseNotification) queueItem() {}
