package middleware

import (
	"net/http"
	"time"

	"squadhealth/config"
	"squadhealth/internal/core"
	"squadhealth/internal/telemetry"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Cors struct {
	trace  *telemetry.Trace
	config cors.Config
}

type traceCorsMeta struct {
	Origin       string   `trace:"http.cors.origin,omitempty"`
	AllowOrigins []string `trace:"http.cors.allow_origins"`
	Preflight    bool     `trace:"http.cors.preflight"`
}

func NewCors(trace *telemetry.Trace, conf *config.Configuration) *Cors {
	return &Cors{trace: trace, config: corsConfig(conf.Cors)}
}

// 前端需要讀到下載檔名與配額標頭
func corsConfig(conf config.Cors) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders:  []string{"Content-Type", "Authorization", "traceparent", "tracestate"},
		ExposeHeaders: []string{"Content-Disposition", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After", "X-App-Version"},
		MaxAge:        12 * time.Hour,
	}
	if conf.MaxAge > 0 {
		cfg.MaxAge = time.Duration(conf.MaxAge) * time.Second
	}
	if len(conf.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = conf.AllowOrigins
	cfg.AllowCredentials = true
	return cfg
}

func (m *Cors) CorsHandler() gin.HandlerFunc {
	handler := cors.New(m.config)
	return func(c *gin.Context) {
		// 基礎路徑不追蹤，但 preflight 仍需回應
		if isInfraEndpoint(c.FullPath()) {
			handler(c)
			return
		}
		_, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanCorsMiddleware))
		m.trace.ApplyTraceAttributes(span, traceCorsMeta{
			Origin:       c.GetHeader("Origin"),
			AllowOrigins: m.config.AllowOrigins,
			Preflight:    c.Request.Method == http.MethodOptions,
		})
		end(nil)
		handler(c)
	}
}
