package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pageviewUC "github.com/khoahotran/portfolio-page/internal/application/usecase/pageview"
	"github.com/khoahotran/portfolio-page/pkg/apperror"
)

type StatsHandler struct {
	viewStatsUseCase *pageviewUC.ViewStatsUseCase
}

// NewStatsHandler accepts a nil use case when no counter store is configured.
func NewStatsHandler(uc *pageviewUC.ViewStatsUseCase) *StatsHandler {
	return &StatsHandler{viewStatsUseCase: uc}
}

func (h *StatsHandler) GetViews(c *gin.Context) {
	if h.viewStatsUseCase == nil {
		c.Error(apperror.NewUnavailable("page view counters are not configured", nil))
		return
	}
	output, err := h.viewStatsUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ViewStatsDTO{Total: output.Total, ByPath: output.ByPath})
}
