package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"squadhealth/config"
	"squadhealth/internal/command"
	"squadhealth/internal/log"
	"squadhealth/utils/path"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	_ "squadhealth/cmd/docs"
)

// Version 由 -ldflags "-X main.Version=..." 注入
var Version string

// @title        squadhealth API
// @version      1.0
// @description  團隊健康檢查 (squad health check) 後端 API 文件
// @host         localhost:3000
// @basePath     /

// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
// @description 請在欄位輸入 "Bearer {token}"
func main() {
	var (
		opts   = config.LoadOptions{Root: path.RootPath()}
		conf   *config.Configuration
		logger *zap.Logger
		level  zap.AtomicLevel
	)

	// 子命令與主服務共用設定與 logger，只初始化一次
	setup := func() error {
		if conf != nil {
			return nil
		}
		var err error
		conf, err = config.Load(opts, func(next *config.Configuration) {
			// 執行中只熱更新 log 層級，其餘設定需重啟
			level.SetLevel(log.ParseLevel(next.Log.Level))
			logger.Info("config reloaded", zap.String("logLevel", next.Log.Level))
		})
		if err != nil {
			return err
		}
		if Version != "" && conf.App.Version == "" {
			conf.App.Version = Version
		}
		logger, level, err = log.NewLogger(conf)
		return err
	}

	rootCmd := &cobra.Command{
		Use:           "squadhealth",
		Short:         "squad health check API server",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer func() { _ = logger.Sync() }()
			return serve(conf, logger)
		},
	}
	bindFlags(rootCmd.PersistentFlags(), &opts)

	command.Register(rootCmd, func() (*command.Command, func(), error) {
		if err := setup(); err != nil {
			return nil, nil, err
		}
		return wireCommand(conf, logger)
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func bindFlags(flags *pflag.FlagSet, opts *config.LoadOptions) {
	flags.StringVarP(&opts.EnvFile, "env", "e", "", "environment file, e.g. --env .env (wins over --config)")
	flags.StringVarP(&opts.YAMLFile, "config", "c", "", "YAML config under conf/, e.g. --config local.yaml")
}

func serve(conf *config.Configuration, logger *zap.Logger) error {
	app, cleanup, err := wireApp(conf, logger)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer cleanup()

	logger.Info("start app ...", zap.String("store", conf.Store.Driver), zap.Uint32("port", conf.App.Port))
	if err := app.Run(); err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutdown app ...")
	ctx, cancel := context.WithTimeout(context.Background(), config.Seconds(conf.App.ShutdownTimeout, 5*time.Second))
	defer cancel()
	return app.Stop(ctx)
}
