package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	pageviewUC "github.com/khoahotran/portfolio-page/internal/application/usecase/pageview"
	"github.com/khoahotran/portfolio-page/pkg/logger"
)

type RouterDeps struct {
	Templates         *template.Template
	PageHandler       *PageHandler
	ProfileHandler    *ProfileHandler
	StatsHandler      *StatsHandler
	RecordViewUseCase *pageviewUC.RecordViewUseCase
	StaticDir         string
	Logger            logger.Logger
}

func NewRouter(d RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(d.Logger))
	router.Use(ErrorMiddleware(d.Logger))
	router.Use(ViewTrackingMiddleware(d.RecordViewUseCase))

	router.SetHTMLTemplate(d.Templates)
	if d.StaticDir != "" {
		router.Static("/static", d.StaticDir)
	}

	router.GET("/", d.PageHandler.GetPage)
	router.GET("/projects.rss", d.PageHandler.GetProjectFeed)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		api.GET("/profile", d.ProfileHandler.GetProfile)
		api.GET("/views", d.StatsHandler.GetViews)
	}

	return router
}
