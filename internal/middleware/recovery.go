package middleware

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"
	"unicode/utf8"

	"squadhealth/config"
	"squadhealth/internal/core"
	"squadhealth/internal/database/fluentd/model"
	"squadhealth/internal/database/fluentd/repository"
	cErr "squadhealth/internal/pkg/error"
	res "squadhealth/internal/pkg/response"
	"squadhealth/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Recovery struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	metric            *telemetry.Metric
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewRecovery(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Recovery {
	return &Recovery{
		logger:            logger,
		trace:             trace,
		metric:            metric,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

func (middleware *Recovery) ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestTime := requestStart(c)
		// ---- panic recover 必須在 c.Next() 之前註冊 ----
		defer func() {
			if rec := recover(); rec != nil {
				duration := time.Since(requestTime)

				ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRecoveryMiddleware))
				requestID := requestIDOf(span)
				spanID := span.SpanContext().SpanID()

				meta := core.TracePanicMeta{
					Path:       c.Request.URL.Path,
					Method:     c.Request.Method,
					ClientIP:   c.ClientIP(),
					UserAgent:  c.Request.UserAgent(),
					DurationMs: float64(duration.Milliseconds()),
					Message:    toSafeString(fmt.Sprint(rec)),
					Stack:      toSafeStack(debug.Stack()),
					Status:     http.StatusInternalServerError,
				}
				middleware.trace.ApplyTraceAttributes(span, meta)

				middleware.logger.Error("[PANIC] Recovered",
					zap.String("path", meta.Path),
					zap.String("method", meta.Method),
					zap.String("client_ip", meta.ClientIP),
					zap.String("user_agent", meta.UserAgent),
					zap.Duration("duration", duration),
					zap.String("panic", meta.Message),
					zap.String("stacktrace", meta.Stack),
					zap.String("spanId", fmt.Sprintf("%x", spanID[:])),
					zap.String("traceId", requestID),
				)

				err := cErr.InternalServer("unexpected panic")
				end(err)
				// 尚未回寫才輸出
				if !c.Writer.Written() {
					res.FailByErr(c, requestID, err)
				}
				middleware.logResponse(ctx, c, requestID, cErr.INTERNAL_ERROR, http.StatusInternalServerError, duration, meta.Message)
				middleware.metric.ObserveFailure("panic")
				c.Abort()
			}
		}()

		// 執行下游
		c.Next()

		// ---- 統一處理非 panic 的 gin errors（若尚未回寫）----
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		duration := time.Since(requestTime)

		ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRecoveryMiddleware))
		defer end(nil)
		requestID := requestIDOf(span)
		spanID := span.SpanContext().SpanID()

		// 找第一個 *cErr.Error
		for _, e := range c.Errors {
			var appErr *cErr.Error
			if !errors.As(e.Err, &appErr) {
				continue
			}
			middleware.trace.ApplyTraceAttributes(span, core.TraceErrorMeta{
				Code:       appErr.ErrorCode(),
				Message:    appErr.Error(),
				Detail:     appErr.ErrorDesc(),
				DurationMs: float64(duration.Milliseconds()),
				Status:     appErr.HttpCode(),
			})
			middleware.logger.Warn(appErr.Error(),
				zap.Int("code", appErr.ErrorCode()),
				zap.String("data", appErr.ErrorDesc()),
				zap.String("path", c.Request.URL.Path),
				zap.Duration("duration", duration),
				zap.String("spanId", fmt.Sprintf("%x", spanID[:])),
				zap.String("traceId", requestID),
			)
			middleware.logResponse(ctx, c, requestID, appErr.ErrorCode(), appErr.HttpCode(), duration, appErr.Error())
			middleware.metric.ObserveFailure(appErr.Error())
			res.FailByErr(c, requestID, appErr)
			c.Abort()
			return
		}

		// 其餘未知錯誤
		unknown := c.Errors.String()
		middleware.trace.ApplyTraceAttributes(span, core.TraceErrorMeta{
			Code:       cErr.INTERNAL_ERROR,
			Message:    "unknown-error",
			Detail:     toSafeString(unknown),
			DurationMs: float64(duration.Milliseconds()),
			Status:     http.StatusInternalServerError,
		})
		middleware.logger.Warn("[ERROR] unknown",
			zap.String("error", unknown),
			zap.Duration("duration", duration),
			zap.String("spanId", fmt.Sprintf("%x", spanID[:])),
			zap.String("traceId", requestID),
		)
		middleware.logResponse(ctx, c, requestID, cErr.INTERNAL_ERROR, http.StatusInternalServerError, duration, toSafeString(unknown))
		middleware.metric.ObserveFailure("unknown")
		res.Fail(c, requestID, http.StatusInternalServerError, cErr.INTERNAL_ERROR, "unknown-error", unknown)
		c.Abort()
	}
}

func (middleware *Recovery) logResponse(ctx context.Context, c *gin.Context, requestID string, code, status int, duration time.Duration, message string) {
	record := model.ResponseLog{
		RequestID:   requestID,
		ProjectName: middleware.config.App.Name,
		Route:       c.FullPath(),
		Code:        code,
		StatusCode:  status,
		DurationMs:  float64(duration.Microseconds()) / 1000,
		Error:       message,
		ResponseTS:  time.Now().UTC().Format(timestampLayout),
	}
	if user, ok := CurrentUser(c); ok {
		record.UserID = user.ID
	}
	if err := middleware.fluentdRepository.LogResponse(ctx, record); err != nil {
		middleware.logger.Debug("fluentd response log failed", zap.Error(err))
	}
}

func requestIDOf(span trace.Span) string {
	traceID := span.SpanContext().TraceID()
	if traceID.IsValid() {
		return fmt.Sprintf("%x", traceID[:])
	}
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}

// ---- helpers ----

func toSafeString(s string) string {
	const max = 8000
	if utf8.ValidString(s) {
		if len(s) > max {
			return s[:max] + "…"
		}
		return s
	}
	b := []byte(s)
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}

func toSafeStack(b []byte) string {
	const max = 16000
	if utf8.Valid(b) {
		if len(b) > max {
			return string(b[:max]) + "…"
		}
		return string(b)
	}
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}
