package service

import (
	"context"
	"time"

	"squadhealth/config"
	"squadhealth/internal/core"
	"squadhealth/internal/database/mongodb/repository"
	"squadhealth/internal/healthcheck"
	"squadhealth/internal/telemetry"

	"go.uber.org/zap"
)

// ScheduleService 推進到期團隊的下次檢查日（只處理 mongo 內的團隊）
type ScheduleService struct {
	conf      *config.Configuration
	logger    *zap.Logger
	trace     *telemetry.Trace
	teamRepo  *repository.TeamRepository
	snapshots *SnapshotService
	now       func() time.Time
}

func NewScheduleService(
	conf *config.Configuration,
	logger *zap.Logger,
	trace *telemetry.Trace,
	teamRepo *repository.TeamRepository,
	snapshots *SnapshotService,
) *ScheduleService {
	return &ScheduleService{
		conf:      conf,
		logger:    logger,
		trace:     trace,
		teamRepo:  teamRepo,
		snapshots: snapshots,
		now:       time.Now,
	}
}

// AdvanceDue 回傳本次推進的團隊數
func (s *ScheduleService) AdvanceDue(ctx context.Context) (advanced int, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx, string(core.SpanCronAdvance))
	defer func() { end(returnedError) }()

	if core.StoreDriver(s.conf.Store.Driver) == core.StoreDriverBackend {
		s.logger.Debug("skip advancing check dates, teams are owned by the backend")
		return 0, nil
	}

	now := s.now().UTC()
	due, err := s.teamRepo.ListDue(ctx, now)
	if err != nil {
		return 0, err
	}
	for _, doc := range due {
		team := doc.ToDomain()
		next := healthcheck.AdvanceCheckDate(team, now)
		if err := s.teamRepo.SetNextCheckDate(ctx, doc.ID, next); err != nil {
			s.logger.Error("advance next check date failed", zap.String("team_id", team.ID), zap.Error(err))
			continue
		}
		s.logger.Info("team health check due",
			zap.String("team_id", team.ID),
			zap.String("team", team.Name),
			zap.String("cadence", string(team.Cadence)),
			zap.Time("next_check_date", next),
		)
		advanced++
	}
	if advanced > 0 {
		s.snapshots.Invalidate(ctx)
	}
	return advanced, nil
}
