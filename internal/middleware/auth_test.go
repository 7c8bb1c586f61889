package middleware

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"squadhealth/config"
	"squadhealth/internal/core"
	"squadhealth/internal/healthcheck"
	cErr "squadhealth/internal/pkg/error"
	"squadhealth/internal/service"
	"squadhealth/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret string, claims *core.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func bearer(token string) http.Header {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	return header
}

func authEngine(secret string, seen **core.Claims) *gin.Engine {
	conf := &config.Configuration{App: config.App{SecretKey: secret}}
	engine := newEngine(conf)
	engine.Use(NewAuth(conf, zap.NewNop(), &telemetry.Trace{}).Handler())
	engine.GET("/me", func(c *gin.Context) {
		claims, _ := ClaimsFrom(c)
		*seen = claims
		c.Status(http.StatusNoContent)
	})
	return engine
}

func TestAuthAcceptsSignedToken(t *testing.T) {
	var seen *core.Claims
	engine := authEngine(testSecret, &seen)

	token := signToken(t, testSecret, &core.Claims{
		UserID:   "alice",
		Username: "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	w, _ := perform(t, engine, http.MethodGet, "/me", bearer(token))

	assert.Equal(t, http.StatusNoContent, w.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "alice", seen.UserID)
	assert.Equal(t, "alice@example.com", seen.Username)
}

func TestAuthFallsBackToSubject(t *testing.T) {
	var seen *core.Claims
	engine := authEngine(testSecret, &seen)

	token := signToken(t, testSecret, &core.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "carol"}})
	w, _ := perform(t, engine, http.MethodGet, "/me", bearer(token))

	assert.Equal(t, http.StatusNoContent, w.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "carol", seen.UserID)
}

func TestAuthRejects(t *testing.T) {
	expired := &core.Claims{
		UserID: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}

	tests := []struct {
		name   string
		secret string
		header func(t *testing.T) http.Header
		code   int
	}{
		{
			name:   "missing header",
			secret: testSecret,
			header: func(*testing.T) http.Header { return http.Header{} },
			code:   cErr.UNAUTHORIZED,
		},
		{
			name:   "wrong scheme",
			secret: testSecret,
			header: func(*testing.T) http.Header {
				h := http.Header{}
				h.Set("Authorization", "Basic YWxpY2U6cHc=")
				return h
			},
			code: cErr.UNAUTHORIZED,
		},
		{
			name:   "bad signature",
			secret: testSecret,
			header: func(t *testing.T) http.Header {
				return bearer(signToken(t, "another-secret", &core.Claims{UserID: "alice"}))
			},
			code: cErr.INVALID_TOKEN,
		},
		{
			name:   "expired",
			secret: testSecret,
			header: func(t *testing.T) http.Header { return bearer(signToken(t, testSecret, expired)) },
			code:   cErr.INVALID_TOKEN,
		},
		{
			name:   "no user id",
			secret: testSecret,
			header: func(t *testing.T) http.Header {
				return bearer(signToken(t, testSecret, &core.Claims{Username: "ghost"}))
			},
			code: cErr.INVALID_TOKEN,
		},
		{
			name:   "secret not configured",
			secret: "",
			header: func(t *testing.T) http.Header {
				return bearer(signToken(t, testSecret, &core.Claims{UserID: "alice"}))
			},
			code: cErr.UNAUTHORIZED,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *core.Claims
			engine := authEngine(tt.secret, &seen)

			w, body := perform(t, engine, http.MethodGet, "/me", tt.header(t))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, tt.code, body.Code)
			assert.Nil(t, seen, "handler must not run")
		})
	}
}

func TestUserMiddlewareResolvesCurrentUser(t *testing.T) {
	source := &staticSource{users: []healthcheck.User{
		{ID: "alice", Name: "Alice", HierarchyLevelID: "member", TeamIDs: []string{"alpha"}},
	}}
	conf := &config.Configuration{App: config.App{SecretKey: testSecret}}
	snapshots := service.NewSnapshotService(conf, zap.NewNop(), &telemetry.Trace{}, telemetry.NewMetric(conf), source, nil)

	engine := newEngine(conf)
	engine.Use(
		NewAuth(conf, zap.NewNop(), &telemetry.Trace{}).Handler(),
		NewUser(zap.NewNop(), &telemetry.Trace{}, snapshots).Handler(),
	)
	var current healthcheck.User
	engine.GET("/me", func(c *gin.Context) {
		current, _ = CurrentUser(c)
		c.Status(http.StatusNoContent)
	})

	w, _ := perform(t, engine, http.MethodGet, "/me", bearer(signToken(t, testSecret, &core.Claims{UserID: "alice"})))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "Alice", current.Name)

	// token 有效但使用者已被移除
	w, body := perform(t, engine, http.MethodGet, "/me", bearer(signToken(t, testSecret, &core.Claims{UserID: "bob"})))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, cErr.UNAUTHORIZED, body.Code)

	source.err = errors.New("mongo down")
	w, body = perform(t, engine, http.MethodGet, "/me", bearer(signToken(t, testSecret, &core.Claims{UserID: "alice"})))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, cErr.DATABASE_ERROR, body.Code)
}
