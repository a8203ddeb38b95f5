package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GovThePPL/candid-sub000/internal/domain/model"
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

type Source interface {
	GetQueue(context.Context) ([]model.QueueItem, error)
	ClaimReport(context.Context, string) error
	ReleaseReport(context.Context, string) error
}

type ClaimLedger interface {
	Remember(ctx context.Context, moderatorID, reportID string) error
	Forget(ctx context.Context, moderatorID, reportID string) error
	Outstanding(ctx context.Context, moderatorID string) (string, bool, error)
}

type Options struct {
	ModeratorID  string
	Ledger       ClaimLedger
	ClaimTimeout time.Duration
	Logger       *zap.Logger
}

type Snapshot struct {
	State     State
	Position  int
	Total     int
	Current   model.QueueItem
	LastError error
	LoadedAt  time.Time
}

// Controller owns the fetched queue and the cursor into it. Remote calls are made
// without holding the lock; a load only applies its result if no newer load started.
type Controller struct {
	source       Source
	ledger       ClaimLedger
	moderatorID  string
	claimTimeout time.Duration
	log          *zap.Logger
	now          func() time.Time

	mu         sync.Mutex
	items      []model.QueueItem
	index      int
	state      State
	lastErr    error
	loadedAt   time.Time
	generation uint64
	claimedID  string

	// ledgerMu orders ledger writes so a Remember cannot land after the
	// Forget for the same claim.
	ledgerMu   sync.Mutex
	background sync.WaitGroup
}

func NewController(source Source, opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	claimTimeout := opts.ClaimTimeout
	if claimTimeout <= 0 {
		claimTimeout = 10 * time.Second
	}

	var ledger ClaimLedger
	if opts.Ledger != nil && opts.ModeratorID != "" {
		ledger = opts.Ledger
	}

	return &Controller{
		source:       source,
		ledger:       ledger,
		moderatorID:  opts.ModeratorID,
		claimTimeout: claimTimeout,
		log:          log,
		now:          time.Now,
		state:        StateIdle,
	}
}

// Load replaces the queue with a fresh fetch and moves the cursor to the first item.
// On failure the queue is left empty in the failed state.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.items = nil
	c.index = 0
	c.state = StateLoading
	c.mu.Unlock()

	items, err := c.source.GetQueue(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.log.Debug("dropping superseded queue load", zap.Uint64("generation", gen))
		return nil
	}

	if err != nil {
		c.items = nil
		c.index = 0
		c.state = StateFailed
		c.lastErr = err
		c.log.Error("load moderation queue", zap.Error(err))
		return fmt.Errorf("load moderation queue: %w", err)
	}

	c.items = items
	c.index = 0
	c.state = StateReady
	c.lastErr = nil
	c.loadedAt = c.now().UTC()
	c.log.Info("moderation queue loaded", zap.Int("items", len(items)))

	c.claimCurrentLocked(ctx)
	return nil
}

// Current returns the item under the cursor, or nil once the queue is exhausted.
func (c *Controller) Current() model.QueueItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentLocked()
}

// Advance moves to the next item. At the last item it refetches instead.
func (c *Controller) Advance(ctx context.Context) error {
	c.mu.Lock()
	if c.index < len(c.items)-1 {
		c.index++
		c.claimCurrentLocked(ctx)
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	return c.Load(ctx)
}

// AdvancePast advances only while item is still the current item. It reports
// false and leaves the cursor alone when a load replaced the queue after item
// was read, so a refresh during an action never skips an unseen item.
func (c *Controller) AdvancePast(ctx context.Context, item model.QueueItem) (bool, error) {
	c.mu.Lock()
	if !sameItem(c.currentLocked(), item) {
		c.mu.Unlock()
		c.log.Debug("queue changed during action, cursor kept",
			zap.String("item_kind", string(item.Kind())),
			zap.String("item_id", item.ItemID()),
		)
		return false, nil
	}
	if c.index < len(c.items)-1 {
		c.index++
		c.claimCurrentLocked(ctx)
		c.mu.Unlock()
		return true, nil
	}
	c.mu.Unlock()

	return true, c.Load(ctx)
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		State:     c.state,
		Position:  c.index,
		Total:     len(c.items),
		Current:   c.currentLocked(),
		LastError: c.lastErr,
		LoadedAt:  c.loadedAt,
	}
}

// Wait blocks until background claim calls have finished.
func (c *Controller) Wait() {
	c.background.Wait()
}

func (c *Controller) currentLocked() model.QueueItem {
	if c.index >= len(c.items) {
		return nil
	}
	return c.items[c.index]
}

func sameItem(a, b model.QueueItem) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Kind() == b.Kind() && a.ItemID() == b.ItemID()
}

func (c *Controller) claimCurrentLocked(ctx context.Context) {
	report, ok := c.currentLocked().(model.Report)
	if !ok || report.ID == c.claimedID {
		return
	}
	c.claimedID = report.ID

	claimCtx := context.WithoutCancel(ctx)
	c.background.Add(1)
	go func(reportID string) {
		defer c.background.Done()
		c.claim(claimCtx, reportID)
	}(report.ID)
}
