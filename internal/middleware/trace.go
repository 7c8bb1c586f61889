package middleware

import (
	"net"
	"strconv"
	"time"

	"squadhealth/config"
	"squadhealth/internal/core"
	"squadhealth/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// TraceEntry 開啟每個 request 的 server span 並記錄 HTTP 指標
type TraceEntry struct {
	trace  *telemetry.Trace
	metric *telemetry.Metric
	conf   *config.Configuration
}

func NewTraceEntry(trace *telemetry.Trace, metric *telemetry.Metric, conf *config.Configuration) *TraceEntry {
	return &TraceEntry{trace: trace, metric: metric, conf: conf}
}

func (m *TraceEntry) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if isInfraEndpoint(route) {
			c.Next()
			return
		}
		if route == "" {
			// 404 時 FullPath 為空，避免用原始 path 撐爆 label
			route = "unmatched"
		}

		start := time.Now().UTC()
		if _, exists := c.Get(core.ContextRequestStartKey); !exists {
			c.Set(core.ContextRequestStartKey, start)
		}

		parent := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, span := m.trace.ServerSpan(parent, c.Request.Method+" "+route)
		c.Request = c.Request.WithContext(ctx)
		c.Set(core.ContextTraceKey, ctx)

		meta := core.TraceHttpServerMeta{
			ClientAddr:        c.ClientIP(),
			HttpRequestMethod: c.Request.Method,
			HttpRoute:         route,
			UrlPath:           c.Request.URL.Path,
			UrlScheme:         schemeOf(c),
			UserAgent:         c.Request.UserAgent(),
			ServerAddress:     m.conf.App.Name,
			NetworkProtoVer:   c.Request.Proto,
			SpanTraceID:       span.SpanContext().TraceID().String(),
		}
		meta.NetworkPeerAddr, meta.NetworkPeerPort = peerOf(c)
		m.trace.ApplyTraceAttributes(span, &meta)

		c.Next()

		// 回應後補上狀態碼與驗證後的使用者
		status := c.Writer.Status()
		meta.HttpStatusCode = status
		if user, ok := CurrentUser(c); ok {
			meta.EndUserID = user.ID
			meta.EndUserLevel = user.HierarchyLevelID
		}
		m.trace.ApplyTraceAttributes(span, &meta)

		var spanErr error
		if status >= 500 && len(c.Errors) > 0 {
			spanErr = c.Errors.Last().Err
		}
		m.metric.ObserveRequest(route, status, time.Since(start))
		telemetry.End(span, spanErr)
	}
}

func schemeOf(c *gin.Context) string {
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		return "https"
	}
	return "http"
}

func peerOf(c *gin.Context) (string, int) {
	host, port, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.ClientIP(), 0
	}
	p, _ := strconv.Atoi(port)
	return host, p
}
