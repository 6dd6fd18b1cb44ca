package pageview

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type View struct {
	ID        uuid.UUID `json:"id"`
	Path      string    `json:"path"`
	Referrer  string    `json:"referrer,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	ViewedAt  time.Time `json:"viewed_at"`
}

func New(path, referrer, userAgent string, now time.Time) View {
	return View{
		ID:        uuid.New(),
		Path:      path,
		Referrer:  referrer,
		UserAgent: userAgent,
		ViewedAt:  now.UTC(),
	}
}

// Publisher hands a view to whatever transports it to the worker.
type Publisher interface {
	Publish(ctx context.Context, v View) error
}

// Counter stores aggregated view counts per path.
type Counter interface {
	Increment(ctx context.Context, v View) error
	Counts(ctx context.Context) (map[string]int64, error)
}
