package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"squadhealth/config"
	"squadhealth/internal/database/client"
	fluentdRepo "squadhealth/internal/database/fluentd/repository"
	"squadhealth/internal/healthcheck"
	"squadhealth/internal/service"
	"squadhealth/internal/telemetry"

	"github.com/alicebob/miniredis/v2"
	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newEngine 串上 Recovery，讓 c.Errors 以統一格式輸出
func newEngine(conf *config.Configuration) *gin.Engine {
	recovery := NewRecovery(
		zap.NewNop(),
		&telemetry.Trace{},
		telemetry.NewMetric(conf),
		conf,
		fluentdRepo.NewLogRepository(conf, &client.NoopClient{}),
	)
	engine := gin.New()
	engine.Use(recovery.ErrorHandler())
	return engine
}

type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func perform(t *testing.T, engine *gin.Engine, method, path string, header http.Header) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var body envelope
	if w.Body.Len() > 0 {
		require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *client.RedisClient) {
	t.Helper()
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	conf := &config.Configuration{Redis: config.Redis{Host: mr.Host(), Port: port}}
	redisClient, cleanup, err := client.NewRedisClient(zap.NewNop(), conf)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return mr, redisClient
}

// staticSource 只提供 User middleware 需要的組織資料
type staticSource struct {
	users []healthcheck.User
	err   error
}

func (s *staticSource) Dimensions(context.Context) ([]healthcheck.Dimension, error) {
	return nil, s.err
}

func (s *staticSource) HierarchyLevels(context.Context) ([]healthcheck.HierarchyLevel, error) {
	return []healthcheck.HierarchyLevel{{ID: "member", Rank: 1, IsTeamMemberLevel: true}}, s.err
}

func (s *staticSource) Users(context.Context) ([]healthcheck.User, error) {
	return s.users, s.err
}

func (s *staticSource) Teams(context.Context) ([]healthcheck.Team, error) {
	return nil, s.err
}

func (s *staticSource) Sessions(context.Context, service.SessionQuery) ([]healthcheck.Session, error) {
	return nil, s.err
}

func (s *staticSource) CreateSession(_ context.Context, session healthcheck.Session) (healthcheck.Session, error) {
	return session, s.err
}
