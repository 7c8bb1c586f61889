package router

import (
	"squadhealth/internal/handler"
	"squadhealth/internal/middleware"

	"github.com/gin-gonic/gin"
)

type AdminRouter struct {
	adminHandler   *handler.AdminHandler
	authMiddleware *middleware.Auth
	userMiddleware *middleware.User
}

func NewAdminRouter(
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.Auth,
	userMiddleware *middleware.User,
) *AdminRouter {
	return &AdminRouter{
		adminHandler:   adminHandler,
		authMiddleware: authMiddleware,
		userMiddleware: userMiddleware,
	}
}

// 權限由 AdminService 依各資源檢查
func (ar *AdminRouter) RegisterRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(ar.authMiddleware.Handler())
	admin.Use(ar.userMiddleware.Handler())

	dimensions := admin.Group("/dimensions")
	{
		dimensions.GET("", ar.adminHandler.ListDimensions)
		dimensions.POST("", ar.adminHandler.CreateDimension)
		dimensions.PATCH("/:dimensionID", ar.adminHandler.UpdateDimension)
		dimensions.DELETE("/:dimensionID", ar.adminHandler.DeleteDimension)
	}

	levels := admin.Group("/levels")
	{
		levels.GET("", ar.adminHandler.ListLevels)
		levels.POST("", ar.adminHandler.CreateLevel)
		levels.PUT("/:levelID", ar.adminHandler.ReplaceLevel)
		levels.DELETE("/:levelID", ar.adminHandler.DeleteLevel)
	}

	users := admin.Group("/users")
	{
		users.GET("", ar.adminHandler.ListUsers)
		users.POST("", ar.adminHandler.CreateUser)
		users.PUT("/:userID", ar.adminHandler.ReplaceUser)
		users.DELETE("/:userID", ar.adminHandler.DeleteUser)
	}

	teams := admin.Group("/teams")
	{
		teams.GET("", ar.adminHandler.ListTeams)
		teams.POST("", ar.adminHandler.CreateTeam)
		teams.PUT("/:teamID", ar.adminHandler.ReplaceTeam)
		teams.DELETE("/:teamID", ar.adminHandler.DeleteTeam)
	}
}
