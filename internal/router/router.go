package router

import (
	docs "squadhealth/cmd/docs"
	"squadhealth/config"
	"squadhealth/internal/middleware"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var ProviderSet = wire.NewSet(
	NewRouter,
	NewAPIRouter,
	NewAdminRouter,
	NewHealthRouter,
	NewBackendRouter,
)

// 透過依賴注入將所有 middleware 與子路由組成 gin.Engine
func NewRouter(
	config *config.Configuration,
	traceEntry *middleware.TraceEntry,
	recovery *middleware.Recovery,
	cors *middleware.Cors,
	logger *middleware.Logger,
	responseMiddleware *middleware.Response,
	healthRouter *HealthRouter,
	apiRouter *APIRouter,
	adminRouter *AdminRouter,
	backendRouter *BackendRouter,
) *gin.Engine {

	switch config.App.Env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	healthRouter.RegisterProbeRoutes(router)

	router.Use(func(c *gin.Context) {
		if v := config.App.Version; v != "" {
			c.Writer.Header().Set("X-App-Version", v)
		}
		c.Next()
	})
	router.Use(traceEntry.Handler())
	router.Use(logger.LoggerHandler())
	router.Use(cors.CorsHandler())
	router.Use(recovery.ErrorHandler())
	router.Use(responseMiddleware.FormatHandler())

	if config.App.SwaggerEnabled {
		router.GET("/swagger/*any", func(c *gin.Context) {
			docs.SwaggerInfo.Host = c.Request.Host

			if config.App.IsProduction() {
				docs.SwaggerInfo.Schemes = []string{"https"}
				if config.App.BasePath != "" {
					docs.SwaggerInfo.BasePath = config.App.BasePath
				}
			}
		}, ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiRouter.RegisterRoutes(router)
	backendRouter.RegisterRoutes(router)
	adminRouter.RegisterRoutes(router)
	pprof.Register(router)
	return router
}
