package page

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-page/internal/domain/profile"
	"github.com/khoahotran/portfolio-page/pkg/logger"
)

type ProjectFeedUseCase struct {
	profileRepo profile.Repository
	baseURL     string
	now         func() time.Time
	logger      logger.Logger
}

func NewProjectFeedUseCase(repo profile.Repository, baseURL string, now func() time.Time, log logger.Logger) *ProjectFeedUseCase {
	if now == nil {
		now = time.Now
	}
	return &ProjectFeedUseCase{
		profileRepo: repo,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		now:         now,
		logger:      log,
	}
}

func (uc *ProjectFeedUseCase) Execute(ctx context.Context) (*feeds.Feed, error) {
	p, err := uc.profileRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	feed := &feeds.Feed{
		Title:       p.Name + " - Projects",
		Link:        &feeds.Link{Href: uc.baseURL + "/"},
		Description: p.Title,
		Author:      &feeds.Author{Name: p.Name, Email: p.Contact.Email},
		Created:     now,
	}

	for _, pr := range p.Projects {
		link := uc.resolveLink(pr.Link)
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          link + "#" + url.PathEscape(pr.Title),
			Title:       pr.Title,
			Link:        &feeds.Link{Href: link},
			Description: pr.Description,
			Created:     now,
		})
	}

	uc.logger.Debug("Project feed generated", zap.Int("item_count", len(feed.Items)))
	return feed, nil
}

// resolveLink points placeholder and relative project links at the page's
// project section.
func (uc *ProjectFeedUseCase) resolveLink(link string) string {
	if link == "" || link == "#" {
		return uc.baseURL + "/#projects"
	}
	u, err := url.Parse(link)
	if err != nil || u.IsAbs() {
		return link
	}
	base, err := url.Parse(uc.baseURL + "/")
	if err != nil {
		return link
	}
	return base.ResolveReference(u).String()
}
