package queue

import (
	"context"

	"go.uber.org/zap"

	"github.com/GovThePPL/candid-sub000/internal/pkg/noncritical"
)

func (c *Controller) claim(parent context.Context, reportID string) {
	ctx, cancel := context.WithTimeout(parent, c.claimTimeout)
	defer cancel()

	field := zap.String("report_id", reportID)
	if !noncritical.Log(c.log, "claim report", c.source.ClaimReport(ctx, reportID), field) {
		return
	}
	if c.ledger == nil {
		return
	}

	c.ledgerMu.Lock()
	defer c.ledgerMu.Unlock()

	c.mu.Lock()
	stillHeld := c.claimedID == reportID
	c.mu.Unlock()
	if !stillHeld {
		return
	}
	noncritical.Log(c.log, "remember claim", c.ledger.Remember(ctx, c.moderatorID, reportID), field)
}

// ForgetClaim drops the local claim marker for reportID so the report is claimed
// again if it becomes current later. The ledger entry is only cleared when the
// server side claim is gone, i.e. the report was released or resolved.
func (c *Controller) ForgetClaim(ctx context.Context, reportID string, released bool) {
	c.ledgerMu.Lock()
	defer c.ledgerMu.Unlock()

	c.mu.Lock()
	if c.claimedID == reportID {
		c.claimedID = ""
	}
	c.mu.Unlock()

	if !released || c.ledger == nil {
		return
	}
	noncritical.Log(c.log, "forget claim", c.ledger.Forget(ctx, c.moderatorID, reportID), zap.String("report_id", reportID))
}

// ReleaseOrphanedClaim releases a claim recorded by a previous run of the agent.
// It returns the released report id, or "" when there was nothing to release.
func (c *Controller) ReleaseOrphanedClaim(ctx context.Context) string {
	if c.ledger == nil {
		return ""
	}

	reportID, ok, err := c.ledger.Outstanding(ctx, c.moderatorID)
	if !noncritical.Log(c.log, "read outstanding claim", err) || !ok {
		return ""
	}

	field := zap.String("report_id", reportID)
	if !noncritical.Log(c.log, "release orphaned claim", c.source.ReleaseReport(ctx, reportID), field) {
		return ""
	}
	noncritical.Log(c.log, "forget claim", c.ledger.Forget(ctx, c.moderatorID, reportID), field)
	c.log.Info("released orphaned claim", field)
	return reportID
}

// ReleaseHeldClaim gives back the claim on the current report, used on shutdown.
func (c *Controller) ReleaseHeldClaim(ctx context.Context) string {
	c.ledgerMu.Lock()
	defer c.ledgerMu.Unlock()

	c.mu.Lock()
	reportID := c.claimedID
	c.claimedID = ""
	c.mu.Unlock()

	if reportID == "" {
		return ""
	}

	field := zap.String("report_id", reportID)
	if !noncritical.Log(c.log, "release held claim", c.source.ReleaseReport(ctx, reportID), field) {
		return ""
	}
	if c.ledger != nil {
		noncritical.Log(c.log, "forget claim", c.ledger.Forget(ctx, c.moderatorID, reportID), field)
	}
	return reportID
}
