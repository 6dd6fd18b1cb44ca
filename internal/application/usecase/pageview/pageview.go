package pageview

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-page/internal/domain/pageview"
	"github.com/khoahotran/portfolio-page/pkg/logger"
)

type RecordViewUseCase struct {
	publisher pageview.Publisher
	now       func() time.Time
	logger    logger.Logger
}

func NewRecordViewUseCase(pub pageview.Publisher, now func() time.Time, log logger.Logger) *RecordViewUseCase {
	if now == nil {
		now = time.Now
	}
	return &RecordViewUseCase{publisher: pub, now: now, logger: log}
}

type RecordViewInput struct {
	Path      string
	Referrer  string
	UserAgent string
}

// Execute publishes a view. Tracking is best effort: failures are logged and
// never reach the visitor.
func (uc *RecordViewUseCase) Execute(ctx context.Context, input RecordViewInput) {
	v := pageview.New(input.Path, input.Referrer, input.UserAgent, uc.now())
	if err := uc.publisher.Publish(ctx, v); err != nil {
		uc.logger.Warn("Failed to publish page view", zap.String("path", v.Path), zap.Error(err))
	}
}

type ProcessViewUseCase struct {
	counter pageview.Counter
	backOff func() backoff.BackOff
	logger  logger.Logger
}

func NewProcessViewUseCase(c pageview.Counter, log logger.Logger) *ProcessViewUseCase {
	return &ProcessViewUseCase{
		counter: c,
		backOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.MaxInterval = 30 * time.Second
			return b
		},
		logger: log,
	}
}

// ExecuteUntilCounted retries Execute with backoff until it succeeds or ctx
// ends. A consumer may only move past a view once it returns nil.
func (uc *ProcessViewUseCase) ExecuteUntilCounted(ctx context.Context, v pageview.View) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, uc.Execute(ctx, v)
	},
		backoff.WithBackOff(uc.backOff()),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			uc.logger.Warn("Failed to count view, retrying",
				zap.String("view_id", v.ID.String()),
				zap.Duration("retry_in", next),
				zap.Error(err),
			)
		}),
	)
	return err
}

func (uc *ProcessViewUseCase) Execute(ctx context.Context, v pageview.View) error {
	l := uc.logger.With(zap.String("view_id", v.ID.String()), zap.String("path", v.Path))
	if v.Path == "" {
		l.Warn("View without path, skipping")
		return nil
	}
	if err := uc.counter.Increment(ctx, v); err != nil {
		return err
	}
	l.Debug("View counted")
	return nil
}

type ViewStatsUseCase struct {
	counter pageview.Counter
}

func NewViewStatsUseCase(c pageview.Counter) *ViewStatsUseCase {
	return &ViewStatsUseCase{counter: c}
}

type ViewStatsOutput struct {
	Total  int64
	ByPath map[string]int64
}

func (uc *ViewStatsUseCase) Execute(ctx context.Context) (*ViewStatsOutput, error) {
	counts, err := uc.counter.Counts(ctx)
	if err != nil {
		return nil, err
	}
	out := &ViewStatsOutput{ByPath: counts}
	for _, n := range counts {
		out.Total += n
	}
	return out, nil
}
