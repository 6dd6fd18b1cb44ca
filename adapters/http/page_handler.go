package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pageUC "github.com/khoahotran/portfolio-page/internal/application/usecase/page"
	"github.com/khoahotran/portfolio-page/internal/view"
	"github.com/khoahotran/portfolio-page/pkg/apperror"
	"github.com/khoahotran/portfolio-page/pkg/logger"
)

type PageHandler struct {
	renderPageUseCase  *pageUC.RenderPageUseCase
	projectFeedUseCase *pageUC.ProjectFeedUseCase
	logger             logger.Logger
}

func NewPageHandler(renderUC *pageUC.RenderPageUseCase, feedUC *pageUC.ProjectFeedUseCase, log logger.Logger) *PageHandler {
	return &PageHandler{
		renderPageUseCase:  renderUC,
		projectFeedUseCase: feedUC,
		logger:             log,
	}
}

func (h *PageHandler) GetPage(c *gin.Context) {
	output, err := h.renderPageUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.HTML(http.StatusOK, view.PageTemplate, output.Page)
}

func (h *PageHandler) GetProjectFeed(c *gin.Context) {
	feed, err := h.projectFeedUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(apperror.NewInternal("failed to generate project feed", err))
		return
	}

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")

	if err := feed.WriteRss(c.Writer); err != nil {
		h.logger.Error("Failed to write RSS feed to response", err)
	}
}
