package page

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/khoahotran/portfolio-page/internal/application/service"
	"github.com/khoahotran/portfolio-page/internal/domain/avatar"
	"github.com/khoahotran/portfolio-page/internal/domain/profile"
	"github.com/khoahotran/portfolio-page/internal/view"
	"github.com/khoahotran/portfolio-page/pkg/logger"
	"github.com/khoahotran/portfolio-page/pkg/tracing"
)

type RenderPageUseCase struct {
	profileRepo profile.Repository
	urls        service.AvatarURLBuilder
	loader      avatar.ImageLoader
	now         func() time.Time
	logger      logger.Logger
}

// NewRenderPageUseCase wires the page builder. loader may be nil, in which
// case the image is left for the browser to load and fall back on its own.
func NewRenderPageUseCase(repo profile.Repository, urls service.AvatarURLBuilder, loader avatar.ImageLoader, now func() time.Time, log logger.Logger) *RenderPageUseCase {
	if now == nil {
		now = time.Now
	}
	return &RenderPageUseCase{profileRepo: repo, urls: urls, loader: loader, now: now, logger: log}
}

type RenderPageOutput struct {
	Page view.Page
}

func (uc *RenderPageUseCase) Execute(ctx context.Context) (*RenderPageOutput, error) {
	ctx, span := tracing.Tracer().Start(ctx, "page.render")
	defer span.End()

	p, err := uc.profileRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	brand := uc.newResolver(p, avatar.SizeSmall)
	hero := uc.newResolver(p, avatar.SizeLarge)

	if uc.loader != nil {
		var g errgroup.Group
		for _, r := range []*avatar.Resolver{brand, hero} {
			g.Go(func() error {
				r.Attempt(ctx, uc.loader)
				return nil
			})
		}
		_ = g.Wait()
	}

	brandDisplay, heroDisplay := brand.Resolve(), hero.Resolve()
	if hero.HasImage() && !heroDisplay.IsImage() {
		uc.logger.Debug("Avatar image unavailable, showing initials",
			zap.String("image_ref", p.ImageRef),
			zap.String("initials", heroDisplay.Initials),
		)
	}
	span.SetAttributes(
		attribute.String("avatar.brand", string(brandDisplay.Kind)),
		attribute.String("avatar.hero", string(heroDisplay.Kind)),
	)

	return &RenderPageOutput{Page: view.Build(p, brandDisplay, heroDisplay, uc.now())}, nil
}

// newResolver creates one avatar instance. A reference that cannot be turned
// into a URL is treated like an image that failed to load.
func (uc *RenderPageUseCase) newResolver(p *profile.Profile, size avatar.Size) *avatar.Resolver {
	ref, err := uc.urls.AvatarURL(p.ImageRef, size)
	if err != nil {
		uc.logger.Debug("Cannot build avatar URL", zap.String("image_ref", p.ImageRef), zap.Error(err))
		r := avatar.NewResolver(p.ImageRef, p.Name, size)
		r.ReportLoadFailure()
		return r
	}
	return avatar.NewResolver(ref, p.Name, size)
}
