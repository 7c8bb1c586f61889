package router

import (
	"squadhealth/internal/handler"
	"squadhealth/internal/middleware"

	"github.com/gin-gonic/gin"
)

type BackendRouter struct {
	backendHandler *handler.BackendHandler
	authMiddleware *middleware.Auth
	userMiddleware *middleware.User
}

func NewBackendRouter(
	backendHandler *handler.BackendHandler,
	authMiddleware *middleware.Auth,
	userMiddleware *middleware.User,
) *BackendRouter {
	return &BackendRouter{
		backendHandler: backendHandler,
		authMiddleware: authMiddleware,
		userMiddleware: userMiddleware,
	}
}

func (backendRouter *BackendRouter) RegisterRoutes(engine *gin.Engine) {
	router := engine.Group("/api/v1/backend")
	router.Use(backendRouter.authMiddleware.Handler())
	router.Use(backendRouter.userMiddleware.Handler())
	router.Any("/*action", backendRouter.backendHandler.Passthrough)
}
