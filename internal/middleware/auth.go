package middleware

import (
	"errors"
	"fmt"
	"strings"

	"squadhealth/config"
	"squadhealth/internal/core"
	cErr "squadhealth/internal/pkg/error"
	"squadhealth/internal/pkg/response"
	"squadhealth/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

type Auth struct {
	logger *zap.Logger
	trace  *telemetry.Trace
	secret []byte
}

func NewAuth(
	conf *config.Configuration,
	logger *zap.Logger,
	trace *telemetry.Trace,
) *Auth {
	return &Auth{
		logger: logger,
		trace:  trace,
		secret: []byte(conf.App.SecretKey),
	}
}

// Handler 驗證 Bearer JWT (HS256)，成功後把 *core.Claims 放進 gin.Context
func (m *Auth) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanAuthMiddleware))
		var cause error
		token, from := readBearerToken(c)
		meta := core.TraceAuthMiddlewareMeta{
			Where:    from,
			ClientIP: c.ClientIP(),
		}

		if len(m.secret) == 0 {
			meta.Status = "secret_not_configured"
			m.trace.ApplyTraceAttributes(span, meta)
			cause = cErr.Unauthorized("authentication is not configured")
			response.AbortWithError(c, cause)
			end(cause)
			return
		}
		if token == "" {
			meta.Status = "missing_token"
			m.trace.ApplyTraceAttributes(span, meta)
			cause = cErr.Unauthorized("missing bearer token")
			response.AbortWithError(c, cause)
			end(cause)
			return
		}

		claims, err := m.parse(token)
		if err != nil {
			meta.Status = "invalid_token"
			m.trace.ApplyTraceAttributes(span, meta)
			response.AbortWithError(c, cErr.InvalidToken(err.Error()))
			end(err)
			return
		}

		meta.UserID = claims.UserID
		meta.Status = "success"
		m.trace.ApplyTraceAttributes(span, meta)
		traceID := span.SpanContext().TraceID()
		spanID := span.SpanContext().SpanID()
		m.logger.Debug("[Auth] token accepted",
			zap.String("userID", claims.UserID),
			zap.String("username", claims.Username),
			zap.String("spanId", fmt.Sprintf("%x", spanID[:])),
			zap.String("traceId", fmt.Sprintf("%x", traceID[:])),
		)
		end(nil)

		c.Set(core.ContextClaimsKey, claims)
		c.Next()
	}
}

func (m *Auth) parse(raw string) (*core.Claims, error) {
	claims := &core.Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	claims.UserID = claims.Identity()
	return claims, nil
}

// Authorization: Bearer <jwt>
func readBearerToken(c *gin.Context) (token string, from string) {
	auth := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(auth) > len("bearer ") && strings.EqualFold(auth[:len("bearer ")], "bearer ") {
		return strings.TrimSpace(auth[len("bearer "):]), "bearer"
	}
	return "", ""
}

// ClaimsFrom 取出 Auth 放入的 claims
func ClaimsFrom(c *gin.Context) (*core.Claims, bool) {
	raw, ok := c.Get(core.ContextClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := raw.(*core.Claims)
	return claims, ok && claims != nil
}
