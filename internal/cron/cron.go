package cron

import (
	"context"
	"time"

	"squadhealth/config"
	"squadhealth/internal/service"

	"github.com/google/wire"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewCron)

const defaultAdvanceSpec = "@every 1h"

type Cron struct {
	conf     *config.Configuration
	logger   *zap.Logger
	server   *cron.Cron
	schedule *service.ScheduleService
}

// NewCron .
func NewCron(conf *config.Configuration, logger *zap.Logger, schedule *service.ScheduleService) *Cron {
	server := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	return &Cron{
		conf:     conf,
		logger:   logger,
		server:   server,
		schedule: schedule,
	}
}

func (c *Cron) Run() error {
	spec := c.conf.Cron.AdvanceSpec
	if spec == "" {
		spec = defaultAdvanceSpec
	}
	if _, err := c.server.AddFunc(spec, c.advanceCheckDates); err != nil {
		return err
	}

	c.server.Start()
	return nil
}

func (c *Cron) advanceCheckDates() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	advanced, err := c.schedule.AdvanceDue(ctx)
	if err != nil {
		c.logger.Error("advance check dates failed", zap.Error(err))
		return
	}
	if advanced > 0 {
		c.logger.Info("advanced team check dates", zap.Int("teams", advanced))
	}
}

// Stop 等待執行中的 job 結束或 ctx 逾時
func (c *Cron) Stop(ctx context.Context) error {
	done := c.server.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
