package router

import (
	"squadhealth/internal/handler"
	"squadhealth/internal/middleware"

	"github.com/gin-gonic/gin"
)

type APIRouter struct {
	dashboardHandler *handler.DashboardHandler
	sessionHandler   *handler.SessionHandler
	authMiddleware   *middleware.Auth
	userMiddleware   *middleware.User
	quotaMiddleware  *middleware.SubmissionQuota
}

func NewAPIRouter(
	dashboardHandler *handler.DashboardHandler,
	sessionHandler *handler.SessionHandler,
	authMiddleware *middleware.Auth,
	userMiddleware *middleware.User,
	quotaMiddleware *middleware.SubmissionQuota,
) *APIRouter {
	return &APIRouter{
		dashboardHandler: dashboardHandler,
		sessionHandler:   sessionHandler,
		authMiddleware:   authMiddleware,
		userMiddleware:   userMiddleware,
		quotaMiddleware:  quotaMiddleware,
	}
}

func (apiRouter *APIRouter) RegisterRoutes(engine *gin.Engine) {
	router := engine.Group("/api/v1")
	router.Use(apiRouter.authMiddleware.Handler())
	router.Use(apiRouter.userMiddleware.Handler())

	router.GET("/me", apiRouter.dashboardHandler.Me)
	router.GET("/dimensions", apiRouter.dashboardHandler.Dimensions)
	router.GET("/periods", apiRouter.dashboardHandler.Periods)

	teams := router.Group("/teams")
	{
		teams.GET("", apiRouter.dashboardHandler.Teams)
		teams.GET("/:teamID/summary", apiRouter.dashboardHandler.Summary)
		teams.GET("/:teamID/history", apiRouter.dashboardHandler.History)
		teams.GET("/:teamID/sessions", apiRouter.sessionHandler.List)
	}

	router.POST("/sessions", apiRouter.quotaMiddleware.Guard(), apiRouter.sessionHandler.Submit)

	org := router.Group("/org/:userID")
	{
		org.GET("/tree", apiRouter.dashboardHandler.OrgTree)
		org.GET("/export", apiRouter.dashboardHandler.Export)
	}
}
