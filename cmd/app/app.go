package main

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"squadhealth/config"
	"squadhealth/internal/cron"
	"squadhealth/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RuntimeInfo struct {
	Env         string    `json:"env"`
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	GoVersion   string    `json:"go_version"`
	StoreDriver string    `json:"store_driver"`
	CacheTTL    int       `json:"cache_ttl_seconds,omitempty"`
	StartAt     time.Time `json:"start_at"`
	Uptime      string    `json:"uptime"`
}

type App struct {
	conf          *config.Configuration
	logger        *zap.Logger
	cronSrv       *cron.Cron
	Router        *gin.Engine
	httpServer    *http.Server
	healthService *service.HealthService

	startAt time.Time   // 程式啟動時間（非環境變數）
	appInfo RuntimeInfo // 版本/環境快照（來源 = conf.App）
}

func newHttpServer(
	conf *config.Configuration,
	router *gin.Engine,
) *http.Server {
	port := conf.App.Port
	if port == 0 {
		port = 3000
	}
	return &http.Server{
		Addr:              ":" + strconv.FormatUint(uint64(port), 10),
		Handler:           router,
		ReadHeaderTimeout: config.Seconds(conf.App.ReadHeaderTimeout, 10*time.Second),
		// 0 表示不限制，匯出大檔時需要
		WriteTimeout: config.Seconds(conf.App.WriteTimeout, 0),
	}
}

// newHttpClient 給 backend passthrough 使用
func newHttpClient(conf *config.Configuration) *http.Client {
	return &http.Client{Timeout: config.Seconds(conf.Backend.Timeout, 30*time.Second)}
}

func newApp(
	conf *config.Configuration,
	logger *zap.Logger,
	router *gin.Engine,
	httpServer *http.Server,
	healthService *service.HealthService,
	cronSrv *cron.Cron,
) *App {
	startAt := time.Now()
	return &App{
		conf:          conf,
		logger:        logger,
		Router:        router,
		httpServer:    httpServer,
		healthService: healthService,
		cronSrv:       cronSrv,
		startAt:       startAt,
		appInfo: RuntimeInfo{
			Env:         conf.App.Env,
			Name:        conf.App.Name,
			Version:     conf.App.Version,
			GoVersion:   runtime.Version(),
			StoreDriver: conf.Store.Driver,
			CacheTTL:    cacheTTL(conf),
			StartAt:     startAt,
		},
	}
}

func (a *App) Run() error {
	// 1) 啟動時寫入版本/環境資訊
	info := a.appInfo
	a.logger.Info("app runtime info",
		zap.String("env", info.Env),
		zap.String("name", info.Name),
		zap.String("version", info.Version),
		zap.String("go_version", info.GoVersion),
		zap.String("store_driver", info.StoreDriver),
		zap.Time("start_at", info.StartAt),
	)

	// 2) /version：回傳 JSON（含 uptime）
	if a.Router != nil {
		a.Router.GET("/version", func(c *gin.Context) {
			resp := a.appInfo
			resp.Uptime = time.Since(a.startAt).Truncate(time.Second).String()
			c.JSON(http.StatusOK, resp)
		})
	}

	// 3) 啟動 cron
	if err := a.cronSrv.Run(); err != nil {
		return err
	}
	a.logger.Info("cron server started")

	// 4) 啟動 http server
	go func() {
		a.logger.Info("http server listening", zap.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("http server stopped unexpectedly", zap.Error(err))
		}
	}()
	a.healthService.SetReady(true)

	return nil
}

func (a *App) Close(ctx context.Context) error {
	if a.healthService != nil {
		a.healthService.SetReady(false)
	}
	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			return err
		}
		a.logger.Info("http server has been stop")
	}
	if a.cronSrv == nil {
		return nil
	}

	if err := a.cronSrv.Stop(ctx); err != nil {
		return err
	}
	a.logger.Info("cron server has been stop")

	return nil
}

func (a *App) Stop(ctx context.Context) error {
	return a.Close(ctx)
}

func cacheTTL(conf *config.Configuration) int {
	if !conf.Cache.Enabled {
		return 0
	}
	return conf.Cache.TTL
}
