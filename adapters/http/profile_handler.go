package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio-page/internal/domain/profile"
	"github.com/khoahotran/portfolio-page/pkg/logger"
)

type ProfileHandler struct {
	profileRepo profile.Repository
	logger      logger.Logger
}

func NewProfileHandler(repo profile.Repository, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileRepo: repo,
		logger:      log,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	p, err := h.profileRepo.Get(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(p))
}
