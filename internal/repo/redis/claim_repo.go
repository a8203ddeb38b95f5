package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const claimPrefix = "modqueue:claim:"

// forgetIfMatches deletes the claim key only while it still points at the given report.
var forgetIfMatches = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ClaimRepo remembers which report a moderator currently holds a claim on, so a
// restarted agent can release a claim its previous run left behind.
type ClaimRepo struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewClaimRepo(client *goredis.Client, ttl time.Duration) *ClaimRepo {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &ClaimRepo{client: client, ttl: ttl}
}

func (r *ClaimRepo) Remember(ctx context.Context, moderatorID, reportID string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(moderatorID) == "" || strings.TrimSpace(reportID) == "" {
		return fmt.Errorf("invalid claim payload")
	}

	if err := r.client.Set(ctx, claimKey(moderatorID), reportID, r.ttl).Err(); err != nil {
		return fmt.Errorf("remember claim: %w", err)
	}
	return nil
}

func (r *ClaimRepo) Forget(ctx context.Context, moderatorID, reportID string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(moderatorID) == "" {
		return fmt.Errorf("moderator id is required")
	}

	if err := forgetIfMatches.Run(ctx, r.client, []string{claimKey(moderatorID)}, reportID).Err(); err != nil {
		return fmt.Errorf("forget claim: %w", err)
	}
	return nil
}

// Outstanding returns the report id the moderator still holds, if any.
func (r *ClaimRepo) Outstanding(ctx context.Context, moderatorID string) (string, bool, error) {
	if r.client == nil {
		return "", false, fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(moderatorID) == "" {
		return "", false, fmt.Errorf("moderator id is required")
	}

	reportID, err := r.client.Get(ctx, claimKey(moderatorID)).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get outstanding claim: %w", err)
	}
	return reportID, true, nil
}

func claimKey(moderatorID string) string {
	return claimPrefix + moderatorID
}
