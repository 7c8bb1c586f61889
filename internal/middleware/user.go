package middleware

import (
	"squadhealth/internal/core"
	"squadhealth/internal/healthcheck"
	cErr "squadhealth/internal/pkg/error"
	"squadhealth/internal/pkg/response"
	"squadhealth/internal/service"
	"squadhealth/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type User struct {
	logger    *zap.Logger
	trace     *telemetry.Trace
	snapshots *service.SnapshotService
}

func NewUser(
	logger *zap.Logger,
	trace *telemetry.Trace,
	snapshots *service.SnapshotService,
) *User {
	return &User{
		logger:    logger,
		trace:     trace,
		snapshots: snapshots,
	}
}

// Handler 以 token 內的 user_id 在組織快照中找出目前使用者
func (m *User) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanUserMiddleware))
		var cause error
		claims, ok := ClaimsFrom(c)
		if !ok {
			m.trace.ApplyTraceAttributes(span, core.TraceUserMiddlewareMeta{
				Status: "missing_claims",
			})
			cause = cErr.Unauthorized("missing user context")
			response.AbortWithError(c, cause)
			end(cause)
			return
		}

		snapshot, err := m.snapshots.Load(ctx)
		if err != nil {
			m.trace.ApplyTraceAttributes(span, core.TraceUserMiddlewareMeta{
				UserID: claims.UserID,
				Status: "snapshot_load_failed",
			})
			response.AbortWithError(c, err)
			end(err)
			return
		}

		user, ok := snapshot.Directory().User(claims.UserID)
		if !ok {
			m.trace.ApplyTraceAttributes(span, core.TraceUserMiddlewareMeta{
				UserID: claims.UserID,
				Status: "unknown_user",
			})
			cause = cErr.Unauthorized("user no longer exists")
			response.AbortWithError(c, cause)
			end(cause)
			return
		}

		m.trace.ApplyTraceAttributes(span, core.TraceUserMiddlewareMeta{
			UserID:  user.ID,
			LevelID: user.HierarchyLevelID,
			IsAdmin: user.IsAdmin,
			Status:  "success",
		})
		c.Set(core.ContextCurrentUserKey, user)
		end(nil)
		c.Next()
	}
}

// CurrentUser 取出 User middleware 解析好的使用者
func CurrentUser(c *gin.Context) (healthcheck.User, bool) {
	raw, ok := c.Get(core.ContextCurrentUserKey)
	if !ok {
		return healthcheck.User{}, false
	}
	user, ok := raw.(healthcheck.User)
	return user, ok
}
