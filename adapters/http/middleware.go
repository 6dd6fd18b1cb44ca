package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	pageviewUC "github.com/khoahotran/portfolio-page/internal/application/usecase/pageview"
	"github.com/khoahotran/portfolio-page/pkg/apperror"
	"github.com/khoahotran/portfolio-page/pkg/logger"
)

const (
	GinContextKeyRequestID = "requestID"
	HeaderRequestID        = "X-Request-ID"
)

// ErrorMiddleware turns errors attached with c.Error into a JSON response.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)

		fields := []zap.Field{
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.String("request_id", c.GetString(GinContextKeyRequestID)),
		}
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", err, fields...)
		} else {
			log.Warn("Request rejected", append(fields, zap.Error(err))...)
		}

		if c.Writer.Written() {
			return
		}
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			c.AbortWithStatusJSON(status, appErr.ToJSON())
			return
		}
		c.AbortWithStatusJSON(status, gin.H{"error": apperror.ErrInternal.Error()})
	}
}

// RequestLoggerMiddleware tags every request with an ID and logs its outcome.
func RequestLoggerMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(GinContextKeyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)

		start := time.Now()
		c.Next()

		log.Info("HTTP request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

var untrackedPrefixes = []string{"/static/", "/api/", "/favicon"}

// ViewTrackingMiddleware records successful page GETs. Visitors sending
// "DNT: 1" are not tracked.
func ViewTrackingMiddleware(uc *pageviewUC.RecordViewUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if uc == nil || c.Request.Method != http.MethodGet || len(c.Errors) > 0 || c.Writer.Status() != http.StatusOK {
			return
		}
		if c.GetHeader("DNT") == "1" {
			return
		}
		path := c.Request.URL.Path
		for _, prefix := range untrackedPrefixes {
			if strings.HasPrefix(path, prefix) {
				return
			}
		}

		uc.Execute(context.WithoutCancel(c.Request.Context()), pageviewUC.RecordViewInput{
			Path:      path,
			Referrer:  c.Request.Referer(),
			UserAgent: c.Request.UserAgent(),
		})
	}
}
