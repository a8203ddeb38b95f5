package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/GovThePPL/candid-sub000/internal/domain/enums"
	"github.com/GovThePPL/candid-sub000/internal/domain/model"
	"github.com/GovThePPL/candid-sub000/internal/domain/rules"
	"github.com/GovThePPL/candid-sub000/internal/pkg/noncritical"
)

var (
	ErrBusy             = errors.New("another moderation action is in progress")
	ErrNoCurrentItem    = errors.New("moderation queue has no current item")
	ErrActionNotAllowed = errors.New("action is not allowed for the current item")
)

const defaultAdvanceTimeout = 10 * time.Second

type Remote interface {
	ReleaseReport(ctx context.Context, reportID string) error
	TakeAction(ctx context.Context, reportID string, req model.TakeActionRequest) error
	RespondToAppeal(ctx context.Context, appealID string, req model.AppealResponseRequest) error
	DismissAdminResponseNotification(ctx context.Context, modActionAppealID string) error
}

type Queue interface {
	Current() model.QueueItem
	AdvancePast(ctx context.Context, item model.QueueItem) (bool, error)
	ForgetClaim(ctx context.Context, reportID string, released bool)
}

type Recorder interface {
	Record(ctx context.Context, entry model.AuditEntry) error
}

type Request struct {
	Action     enums.UserAction
	Text       string
	Selections []rules.Selection
}

type Result struct {
	Item      model.QueueItem
	Advanced  bool
	ReloadErr error
}

type Dispatcher struct {
	remote   Remote
	queue    Queue
	recorder Recorder
	log      *zap.Logger

	// advanceTimeout bounds the queue reload that follows an action.
	advanceTimeout time.Duration

	processing atomic.Bool
}

func NewDispatcher(remote Remote, queue Queue, recorder Recorder, advanceTimeout time.Duration, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	if advanceTimeout <= 0 {
		advanceTimeout = defaultAdvanceTimeout
	}
	return &Dispatcher{
		remote:         remote,
		queue:          queue,
		recorder:       recorder,
		log:            log,
		advanceTimeout: advanceTimeout,
	}
}

// Processing reports whether an action is currently in flight.
func (d *Dispatcher) Processing() bool {
	return d.processing.Load()
}

// Dispatch applies req to the current item. The cursor only moves once the remote
// call succeeded, except for pass which always moves on. Once the remote call has
// returned, the queue is advanced even if ctx is cancelled, and only if the item
// acted on is still current.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (Result, error) {
	if !d.processing.CompareAndSwap(false, true) {
		return Result{}, ErrBusy
	}
	defer d.processing.Store(false)

	item := d.queue.Current()
	if item == nil {
		return Result{}, ErrNoCurrentItem
	}

	act, err := resolve(item, req)
	if err != nil {
		return Result{Item: item}, err
	}

	callErr := act.call(ctx, d.remote)
	d.record(ctx, item, req.Action, act.payload, callErr)

	if report, ok := item.(model.Report); ok {
		if act.advanceAlways || callErr == nil {
			d.queue.ForgetClaim(ctx, report.ID, callErr == nil)
		}
	}

	fields := []zap.Field{
		zap.String("item_kind", string(item.Kind())),
		zap.String("item_id", item.ItemID()),
		zap.String("action", string(req.Action)),
	}

	if callErr != nil {
		if !act.advanceAlways {
			d.log.Error("moderation action failed", append(fields, zap.Error(callErr))...)
			return Result{Item: item}, fmt.Errorf("%s %s %s: %w", req.Action, item.Kind(), item.ItemID(), callErr)
		}
		noncritical.Log(d.log, "release report", callErr, fields...)
	} else {
		d.log.Info("moderation action applied", fields...)
	}

	advanceCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.advanceTimeout)
	defer cancel()

	advanced, reloadErr := d.queue.AdvancePast(advanceCtx, item)
	if reloadErr != nil {
		d.log.Warn("advance moderation queue", append(fields, zap.Error(reloadErr))...)
	}
	return Result{Item: item, Advanced: advanced, ReloadErr: reloadErr}, nil
}

func (d *Dispatcher) record(ctx context.Context, item model.QueueItem, action enums.UserAction, payload any, callErr error) {
	if d.recorder == nil {
		return
	}

	entry := model.AuditEntry{
		ItemKind: item.Kind(),
		ItemID:   item.ItemID(),
		Action:   action,
		Outcome:  enums.AuditOutcomeSucceeded,
	}
	if callErr != nil {
		entry.Outcome = enums.AuditOutcomeFailed
		entry.Error = callErr.Error()
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if noncritical.Log(d.log, "encode audit payload", err) {
			entry.Payload = raw
		}
	}

	noncritical.Log(d.log, "record moderation action", d.recorder.Record(ctx, entry),
		zap.String("item_id", entry.ItemID),
		zap.String("action", string(action)),
	)
}

type resolvedAction struct {
	call          func(context.Context, Remote) error
	payload       any
	advanceAlways bool
}

func resolve(item model.QueueItem, req Request) (resolvedAction, error) {
	if !allowed(item, req.Action) {
		return resolvedAction{}, fmt.Errorf("%w: %s on %s", ErrActionNotAllowed, req.Action, describe(item))
	}

	switch v := item.(type) {
	case model.Report:
		return resolveReport(v, req)
	case model.Appeal:
		return resolveAppeal(v, req)
	case model.AdminResponseNotification:
		return resolvedAction{
			call: func(ctx context.Context, r Remote) error {
				return r.DismissAdminResponseNotification(ctx, v.ModActionAppealID)
			},
		}, nil
	}
	return resolvedAction{}, ErrActionNotAllowed
}

func resolveReport(report model.Report, req Request) (resolvedAction, error) {
	var body model.TakeActionRequest

	switch req.Action {
	case enums.UserActionPass:
		return resolvedAction{
			call: func(ctx context.Context, r Remote) error {
				return r.ReleaseReport(ctx, report.ID)
			},
			advanceAlways: true,
		}, nil
	case enums.UserActionDismiss:
		body = model.TakeActionRequest{
			ModResponse:     enums.ModResponseDismiss,
			ModResponseText: strings.TrimSpace(req.Text),
		}
	case enums.UserActionTakeAction:
		actions, err := rules.BuildModActions(report.ReportType, req.Selections)
		if err != nil {
			return resolvedAction{}, err
		}
		body = model.TakeActionRequest{
			ModResponse: enums.ModResponseTakeAction,
			Actions:     actions,
		}
	case enums.UserActionMarkSpurious:
		body = model.TakeActionRequest{ModResponse: enums.ModResponseMarkSpurious}
	}

	return resolvedAction{
		call: func(ctx context.Context, r Remote) error {
			return r.TakeAction(ctx, report.ID, body)
		},
		payload: body,
	}, nil
}

func resolveAppeal(appeal model.Appeal, req Request) (resolvedAction, error) {
	body := model.AppealResponseRequest{ResponseText: strings.TrimSpace(req.Text)}

	switch req.Action {
	case enums.UserActionApprove:
		body.Response = enums.AppealResponseApprove
	case enums.UserActionDeny:
		body.Response = enums.AppealResponseDeny
	case enums.UserActionModify:
		actions, err := rules.BuildModActions(appeal.OriginalReport.ReportType, req.Selections)
		if err != nil {
			return resolvedAction{}, err
		}
		body = model.AppealResponseRequest{
			Response: enums.AppealResponseModify,
			Actions:  actions,
		}
	case enums.UserActionAccept:
		body.Response = enums.AppealResponseAccept
	case enums.UserActionEscalate:
		body.Response = enums.AppealResponseEscalate
	case enums.UserActionSideWithOverruler:
		body.Response = enums.AppealResponseApprove
	case enums.UserActionSideWithOriginal:
		body.Response = enums.AppealResponseDeny
	}

	return resolvedAction{
		call: func(ctx context.Context, r Remote) error {
			return r.RespondToAppeal(ctx, appeal.ID, body)
		},
		payload: body,
	}, nil
}

func describe(item model.QueueItem) string {
	if appeal, ok := item.(model.Appeal); ok {
		return string(appeal.State) + " " + string(appeal.Kind())
	}
	return string(item.Kind())
}
