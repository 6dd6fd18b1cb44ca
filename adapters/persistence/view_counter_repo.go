package persistence

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/portfolio-page/internal/domain/pageview"
	"github.com/khoahotran/portfolio-page/pkg/apperror"
)

const (
	viewCountsKey     = "pageviews:counts"
	viewSeenKeyPrefix = "pageviews:seen:"

	// Window in which a redelivered event is recognised.
	viewSeenTTL = 24 * time.Hour
)

func viewSeenKey(id string) string {
	return viewSeenKeyPrefix + id
}

type redisViewCounter struct {
	client redis.UniversalClient
}

func NewRedisViewCounter(client redis.UniversalClient) pageview.Counter {
	return &redisViewCounter{client: client}
}

// Increment counts a view once per event ID, so a redelivered message does
// not inflate the totals.
func (r *redisViewCounter) Increment(ctx context.Context, v pageview.View) error {
	seenKey := viewSeenKey(v.ID.String())
	added, err := r.client.SetNX(ctx, seenKey, 1, viewSeenTTL).Result()
	if err != nil {
		return apperror.NewUnavailable("failed to record view id", err)
	}
	if !added {
		return nil
	}
	if err := r.client.HIncrBy(ctx, viewCountsKey, v.Path, 1).Err(); err != nil {
		// Forget the id so a redelivered event is counted.
		r.client.Del(ctx, seenKey)
		return apperror.NewUnavailable("failed to increment view counter", err)
	}
	return nil
}

func (r *redisViewCounter) Counts(ctx context.Context) (map[string]int64, error) {
	raw, err := r.client.HGetAll(ctx, viewCountsKey).Result()
	if err != nil {
		return nil, apperror.NewUnavailable("failed to read view counters", err)
	}
	counts := make(map[string]int64, len(raw))
	for path, s := range raw {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, apperror.NewInternal("corrupt view counter for "+path, err)
		}
		counts[path] = n
	}
	return counts, nil
}
