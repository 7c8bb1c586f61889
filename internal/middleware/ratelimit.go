package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"squadhealth/config"
	"squadhealth/internal/core"
	"squadhealth/internal/database/redis/repository"
	cErr "squadhealth/internal/pkg/error"
	"squadhealth/internal/pkg/response"
	"squadhealth/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubmissionQuota 限制每位使用者每日（UTC）可提交的健康檢查次數
type SubmissionQuota struct {
	conf       *config.Configuration
	logger     *zap.Logger
	trace      *telemetry.Trace
	repository *repository.SubmissionQuotaRepository
	now        func() time.Time
}

func NewSubmissionQuota(
	conf *config.Configuration,
	logger *zap.Logger,
	trace *telemetry.Trace,
	repository *repository.SubmissionQuotaRepository,
) *SubmissionQuota {
	return &SubmissionQuota{
		conf:       conf,
		logger:     logger,
		trace:      trace,
		repository: repository,
		now:        time.Now,
	}
}

func (m *SubmissionQuota) Guard() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := m.conf.Submission.DailyLimit
		if limit <= 0 {
			c.Next()
			return
		}

		ctx, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanQuotaMiddleware))
		user, ok := CurrentUser(c)
		if !ok {
			err := cErr.Unauthorized("missing user context")
			response.AbortWithError(c, err)
			end(err)
			return
		}

		now := m.now().UTC()
		day := now.Format("2006-01-02")
		window := secondsUntilEndOfDay(now)
		meta := core.TraceSubmissionQuotaMeta{
			UserID:    user.ID,
			Day:       day,
			Limit:     limit,
			WindowSec: window,
			Op:        "consume",
		}

		remaining, ttl, err := m.repository.Consume(ctx, user.ID, day, window, limit)
		meta.Remaining, meta.TTL = remaining, ttl
		m.trace.ApplyTraceAttributes(span, meta)

		if err != nil && !errors.Is(err, repository.ErrQuotaExceeded) {
			m.logger.Error("submission quota unavailable", zap.String("userID", user.ID), zap.Error(err))
			cause := cErr.RateLimiterUnavailable("submission quota unavailable")
			response.AbortWithError(c, cause)
			end(cause)
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if ttl > 0 {
			c.Header("X-RateLimit-Reset", strconv.FormatInt(ttl, 10))
		}
		if err != nil {
			if ttl > 0 {
				c.Header("Retry-After", strconv.FormatInt(ttl, 10))
			}
			cause := cErr.RateLimitExceeded("daily submission limit reached")
			response.AbortWithError(c, cause)
			end(cause)
			return
		}
		end(nil)

		c.Next()

		// 提交失敗不算次數
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			if err := m.repository.Refund(c.Request.Context(), user.ID, day); err != nil {
				m.logger.Warn("submission quota refund failed", zap.String("userID", user.ID), zap.Error(err))
			}
		}
	}
}

func secondsUntilEndOfDay(now time.Time) int64 {
	tomorrow := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	seconds := int64(tomorrow.Sub(now).Seconds())
	if seconds < 1 {
		return 1
	}
	return seconds
}
