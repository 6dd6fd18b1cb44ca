package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-page/adapters/media_storage"
	"github.com/khoahotran/portfolio-page/adapters/persistence"
	pageUC "github.com/khoahotran/portfolio-page/internal/application/usecase/page"
	"github.com/khoahotran/portfolio-page/internal/config"
	"github.com/khoahotran/portfolio-page/internal/domain/avatar"
	"github.com/khoahotran/portfolio-page/internal/view"
	"github.com/khoahotran/portfolio-page/pkg/logger"
)

var (
	exportOut     string
	exportProfile string
	exportProbe   bool
	exportNoFeed  bool
)

func init() {
	rootCmd.Flags().StringVarP(&exportOut, "out", "o", "dist", "Output directory")
	rootCmd.Flags().StringVarP(&exportProfile, "profile", "p", "", "Profile file (overrides PROFILE_PATH)")
	rootCmd.Flags().BoolVar(&exportProbe, "probe", false, "Fetch the avatar image and bake in the initials badge if it fails")
	rootCmd.Flags().BoolVar(&exportNoFeed, "no-feed", false, "Skip writing projects.rss")
}

type exportOptions struct {
	OutDir  string
	Probe   bool
	NoFeed  bool
	Now     func() time.Time
	Timeout time.Duration
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}
	if exportProfile != "" {
		cfg.Profile.Path = exportProfile
	}

	log := logger.NewZapLogger(cfg.App.Env)
	defer log.Sync()

	written, err := export(cmd.Context(), cfg, log, exportOptions{
		OutDir:  exportOut,
		Probe:   exportProbe || cfg.Avatar.Probe,
		NoFeed:  exportNoFeed,
		Timeout: 5 * time.Second,
	})
	if err != nil {
		return err
	}
	for _, f := range written {
		fmt.Fprintln(cmd.OutOrStdout(), f)
	}
	return nil
}

// export writes the page (and feed) into opts.OutDir and returns the written
// file paths.
func export(ctx context.Context, cfg config.Config, log logger.Logger, opts exportOptions) ([]string, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	profileRepo, err := persistence.NewProfileRepo(cfg, log)
	if err != nil {
		return nil, err
	}
	urlBuilder, err := media_storage.NewAvatarURLBuilder(cfg, log)
	if err != nil {
		return nil, err
	}
	var loader avatar.ImageLoader
	if opts.Probe {
		loader = media_storage.NewHTTPImageLoader(&http.Client{Timeout: opts.Timeout})
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}

	output, err := pageUC.NewRenderPageUseCase(profileRepo, urlBuilder, loader, opts.Now, log).Execute(ctx)
	if err != nil {
		return nil, fmt.Errorf("build page: %w", err)
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	indexPath := filepath.Join(opts.OutDir, view.PageTemplate)
	if err := writeFile(indexPath, func(f *os.File) error { return renderer.Render(f, output.Page) }); err != nil {
		return nil, err
	}
	written := []string{indexPath}

	if !opts.NoFeed {
		feed, err := pageUC.NewProjectFeedUseCase(profileRepo, cfg.App.BaseURL, opts.Now, log).Execute(ctx)
		if err != nil {
			return nil, fmt.Errorf("build project feed: %w", err)
		}
		feedPath := filepath.Join(opts.OutDir, "projects.rss")
		if err := writeFile(feedPath, func(f *os.File) error { return feed.WriteRss(f) }); err != nil {
			return nil, err
		}
		written = append(written, feedPath)
	}

	log.Info("Exported portfolio page",
		zap.String("out", opts.OutDir),
		zap.String("hero_avatar", string(output.Page.Hero.Kind)),
	)
	return written, nil
}

func writeFile(path string, fill func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fill(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
