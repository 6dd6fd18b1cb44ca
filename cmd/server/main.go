package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-page/adapters/event"
	httpAdapter "github.com/khoahotran/portfolio-page/adapters/http"
	"github.com/khoahotran/portfolio-page/adapters/media_storage"
	"github.com/khoahotran/portfolio-page/adapters/persistence"
	pageUC "github.com/khoahotran/portfolio-page/internal/application/usecase/page"
	pageviewUC "github.com/khoahotran/portfolio-page/internal/application/usecase/pageview"
	"github.com/khoahotran/portfolio-page/internal/config"
	"github.com/khoahotran/portfolio-page/internal/domain/avatar"
	"github.com/khoahotran/portfolio-page/internal/view"
	"github.com/khoahotran/portfolio-page/pkg/logger"
	"github.com/khoahotran/portfolio-page/pkg/tracing"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	log := logger.NewZapLogger(cfg.App.Env)
	defer log.Sync()

	log.Info("Starting portfolio page server...", zap.String("env", cfg.App.Env))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(cfg, log, "portfolio-page-server")
	if err != nil {
		log.Fatal("Cannot init tracing", err)
	}
	defer shutdownTracing(context.Background())

	// Profile and avatar
	profileRepo, err := persistence.NewProfileRepo(cfg, log)
	if err != nil {
		log.Fatal("Cannot load profile", err)
	}
	urlBuilder, err := media_storage.NewAvatarURLBuilder(cfg, log)
	if err != nil {
		log.Fatal("Cannot init avatar URL builder", err)
	}
	var imageLoader avatar.ImageLoader
	if cfg.Avatar.Probe {
		imageLoader = media_storage.NewHTTPImageLoader(&http.Client{Timeout: 3 * time.Second})
		log.Info("Avatar probing enabled")
	}

	// Page views are optional: without brokers nothing is published, without
	// Redis /api/views answers 503.
	var recordViewUseCase *pageviewUC.RecordViewUseCase
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := event.NewKafkaViewPublisher(cfg, log)
		if err != nil {
			log.Fatal("Cannot init Kafka", err)
		}
		defer publisher.Close()
		recordViewUseCase = pageviewUC.NewRecordViewUseCase(publisher, time.Now, log)
	}

	var viewStatsUseCase *pageviewUC.ViewStatsUseCase
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Fatal("Cannot connect Redis", err)
		}
		defer redisClient.Close()
		viewStatsUseCase = pageviewUC.NewViewStatsUseCase(persistence.NewRedisViewCounter(redisClient))
	}

	// Use Cases
	renderPageUseCase := pageUC.NewRenderPageUseCase(profileRepo, urlBuilder, imageLoader, time.Now, log)
	projectFeedUseCase := pageUC.NewProjectFeedUseCase(profileRepo, cfg.App.BaseURL, time.Now, log)

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatal("Cannot parse page templates", err)
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		Templates:         renderer.Template(),
		PageHandler:       httpAdapter.NewPageHandler(renderPageUseCase, projectFeedUseCase, log),
		ProfileHandler:    httpAdapter.NewProfileHandler(profileRepo, log),
		StatsHandler:      httpAdapter.NewStatsHandler(viewStatsUseCase),
		RecordViewUseCase: recordViewUseCase,
		StaticDir:         cfg.App.StaticDir,
		Logger:            log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err)
	}
	log.Info("Server exited")
}
