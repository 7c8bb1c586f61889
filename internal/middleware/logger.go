package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"strings"
	"time"
	"unicode/utf8"

	"squadhealth/config"
	"squadhealth/internal/core"
	"squadhealth/internal/database/fluentd/model"
	"squadhealth/internal/database/fluentd/repository"
	"squadhealth/internal/telemetry"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	bodyPreviewBytes = 2000
	timestampLayout  = "2006-01-02 15:04:05.999999 UTC"
)

// Logger 記錄進入 API 的請求 (zap + fluentd)，body 只預覽文字內容並遮蔽敏感欄位
type Logger struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewLogger(
	logger *zap.Logger,
	trace *telemetry.Trace,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Logger {
	return &Logger{
		logger:            logger,
		trace:             trace,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

func (m *Logger) LoggerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if isInfraEndpoint(route) {
			c.Next()
			return
		}

		ctx, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanLoggerMiddleware))
		requestTime := requestStart(c)
		body := previewRequestBody(c)

		headers := make(map[string]string, len(c.Request.Header))
		for k, v := range c.Request.Header {
			key := strings.ToLower(k)
			if _, ok := sensitiveHeaders[key]; ok {
				headers[key] = "***"
				continue
			}
			headers[key] = strings.Join(v, ",")
		}
		params := make(map[string]string, len(c.Params))
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}

		m.trace.ApplyTraceAttributes(span, core.LoggerRequestMeta{
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			FullPath:   route,
			Query:      c.Request.URL.RawQuery,
			Body:       body,
			Host:       c.Request.Host,
			UserAgent:  c.Request.UserAgent(),
			ContentLen: c.Request.ContentLength,
			Proto:      c.Request.Proto,
			ClientIP:   c.ClientIP(),
			Headers:    headers,
			Params:     params,
		})

		requestID := fmt.Sprintf("%x", span.SpanContext().TraceID())
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", route),
			zap.Any("headers", headers),
			zap.String("traceId", requestID),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			fields = append(fields, zap.String("query", q))
		}
		if len(params) > 0 {
			fields = append(fields, zap.Any("params", params))
		}
		if body != "" {
			fields = append(fields, zap.String("body", body))
		}
		m.logger.Info("[Request]", fields...)

		err := m.fluentdRepository.LogRequest(ctx, model.RequestLog{
			RequestID:   requestID,
			ProjectName: m.config.App.Name,
			Method:      c.Request.Method,
			Path:        c.Request.URL.Path,
			Route:       route,
			Query:       c.Request.URL.RawQuery,
			Body:        body,
			IPHash:      hashIP(c.ClientIP()),
			UserAgent:   c.Request.UserAgent(),
			Version:     m.config.App.Version,
			RequestTS:   requestTime.UTC().Format(timestampLayout),
		})
		if err != nil {
			m.logger.Debug("fluentd request log failed", zap.Error(err))
		}
		end(nil)
		c.Next()
	}
}

// requestStart 取 TraceEntry 記下的開始時間，沒有就以現在為準並寫回
func requestStart(c *gin.Context) time.Time {
	if raw, ok := c.Get(core.ContextRequestStartKey); ok {
		if t, ok := raw.(time.Time); ok {
			return t
		}
	}
	now := time.Now().UTC()
	c.Set(core.ContextRequestStartKey, now)
	return now
}

// previewRequestBody 讀完 body 後回填給下游；二進位內容只記型別與大小
func previewRequestBody(c *gin.Context) string {
	mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
	if isBinaryContent(mediaType) {
		if c.Request.ContentLength > 0 {
			return fmt.Sprintf("(binary %s, %d bytes)", mediaType, c.Request.ContentLength)
		}
		return fmt.Sprintf("(binary %s)", mediaType)
	}
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return ""
	}

	data, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(data))

	if strings.HasPrefix(mediaType, "application/json") && len(data) > 0 {
		var decoded any
		if err := sonic.Unmarshal(data, &decoded); err == nil {
			if masked, err := sonic.Marshal(maskSecrets(decoded)); err == nil {
				return toSafePreview(masked, bodyPreviewBytes)
			}
		}
	}
	return toSafePreview(data, bodyPreviewBytes)
}

func hashIP(ip string) string {
	if ip == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:8])
}

// 文字內容直接截斷；非 UTF-8 以 base64 表示
func toSafePreview(b []byte, max int) string {
	if len(b) == 0 {
		return ""
	}
	valid := utf8.Valid(b)
	truncated := len(b) > max
	if truncated {
		b = b[:max]
	}
	if !valid {
		return "b64:" + base64.StdEncoding.EncodeToString(b)
	}
	if truncated {
		return string(b) + "…"
	}
	return string(b)
}

func isBinaryContent(mediaType string) bool {
	for _, prefix := range []string{"multipart/", "image/", "audio/", "video/"} {
		if strings.HasPrefix(mediaType, prefix) {
			return true
		}
	}
	return mediaType == "application/octet-stream" ||
		mediaType == "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

var sensitiveHeaders = map[string]struct{}{
	"authorization": {},
	"cookie":        {},
	"x-api-key":     {},
}

var sensitiveFields = map[string]struct{}{
	"password":     {},
	"secret":       {},
	"token":        {},
	"accesstoken":  {},
	"refreshtoken": {},
}

// maskSecrets 遞迴遮蔽 JSON body 內的密碼 / token 欄位
func maskSecrets(v any) any {
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			if _, ok := sensitiveFields[strings.ToLower(k)]; ok {
				node[k] = "***"
				continue
			}
			node[k] = maskSecrets(child)
		}
		return node
	case []any:
		for i, child := range node {
			node[i] = maskSecrets(child)
		}
		return node
	default:
		return v
	}
}
