package handler

import (
	"squadhealth/internal/healthcheck"
	"squadhealth/internal/middleware"
	cErr "squadhealth/internal/pkg/error"
	"squadhealth/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
)

// ProviderSet Provider对象集合
var ProviderSet = wire.NewSet(
	NewDashboardHandler,
	NewSessionHandler,
	NewAdminHandler,
	NewBackendHandler,
	NewHealthHandler,
)

// viewer 取出目前使用者；User middleware 沒跑過時直接回 401
func viewer(c *gin.Context, end func(error)) (healthcheck.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		err := cErr.Unauthorized("missing user context")
		end(err)
		response.AbortWithError(c, err)
		return healthcheck.User{}, false
	}
	return user, true
}
