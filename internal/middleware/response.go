package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"squadhealth/config"
	"squadhealth/internal/core"
	"squadhealth/internal/database/fluentd/model"
	"squadhealth/internal/database/fluentd/repository"
	cErr "squadhealth/internal/pkg/error"
	"squadhealth/internal/pkg/response"
	"squadhealth/internal/telemetry"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 把 handler 放進 context 的資料包成 response.Response 輸出。
// 錯誤一律交給 Recovery，這裡只處理成功路徑與 Raw 回應的記錄。
type Response struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	metric            *telemetry.Metric
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewResponse(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Response {
	return &Response{
		logger:            logger,
		trace:             trace,
		metric:            metric,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

func (middleware *Response) FormatHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if isInfraEndpoint(route) {
			c.Next()
			return
		}
		requestTime := requestStart(c)

		c.Next()

		if len(c.Errors) > 0 {
			return
		}
		raw := response.IsRaw(c)
		if !raw && c.Writer.Written() {
			return
		}
		status := c.Writer.Status()
		if !raw && status >= http.StatusBadRequest {
			response.AbortWithError(c, cErr.MapHttpStatusToError(status, http.StatusText(status)))
			return
		}

		ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanResponseMiddleware))
		defer end(nil)
		requestID := fmt.Sprintf("%x", span.SpanContext().TraceID())
		data, message := response.Payload(c)
		if data == nil {
			data = map[string]any{}
		}
		preview := previewJSON(data, bodyPreviewBytes)
		duration := time.Since(requestTime)

		middleware.trace.ApplyTraceAttributes(span, core.TraceResponseMeta{
			Path:       c.Request.URL.Path,
			Method:     c.Request.Method,
			Status:     status,
			Message:    message,
			DurationMs: float64(duration.Milliseconds()),
			Data:       preview,
		})
		middleware.logger.Info("[Response] "+message,
			zap.String("route", route),
			zap.String("method", c.Request.Method),
			zap.Int("status", status),
			zap.Bool("raw", raw),
			zap.Duration("duration", duration),
			zap.String("traceId", requestID),
		)
		middleware.logResponse(ctx, c, requestID, status, duration, preview)
		middleware.metric.ObserveSuccess(route, status)

		if raw {
			return
		}
		body, err := sonic.Marshal(response.Response{
			RequestID:   requestID,
			Code:        0,
			Data:        data,
			Message:     "OK",
			Description: message,
		})
		if err != nil {
			response.AbortWithError(c, cErr.InternalServer("marshal response failed"))
			return
		}
		c.Data(status, "application/json; charset=utf-8", body)
	}
}

func (middleware *Response) logResponse(ctx context.Context, c *gin.Context, requestID string, status int, duration time.Duration, body string) {
	record := model.ResponseLog{
		RequestID:   requestID,
		ProjectName: middleware.config.App.Name,
		Route:       c.FullPath(),
		StatusCode:  status,
		DurationMs:  float64(duration.Microseconds()) / 1000,
		Body:        body,
		ResponseTS:  time.Now().UTC().Format(timestampLayout),
	}
	if user, ok := CurrentUser(c); ok {
		record.UserID = user.ID
	}
	if err := middleware.fluentdRepository.LogResponse(ctx, record); err != nil {
		middleware.logger.Debug("fluentd response log failed", zap.Error(err))
	}
}

// previewJSON 序列化後截斷，字串若本身是 JSON 會先正規化
func previewJSON(data any, max int) string {
	if s, ok := data.(string); ok {
		var decoded any
		if err := sonic.UnmarshalString(s, &decoded); err != nil {
			return toSafePreview([]byte(s), max)
		}
		data = decoded
	}
	b, err := sonic.Marshal(data)
	if err != nil {
		return fmt.Sprintf("[marshal error: %v]", err)
	}
	return toSafePreview(b, max)
}
