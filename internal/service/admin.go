package service

import (
	"context"

	"squadhealth/internal/core"
	"squadhealth/internal/database/mongodb/repository"
	"squadhealth/internal/dto"
	"squadhealth/internal/healthcheck"
	cErr "squadhealth/internal/pkg/error"
	"squadhealth/internal/telemetry"

	"go.uber.org/zap"
)

// AdminService 組織設定的維護一律寫入 mongo；寫入後清除組織快照快取
type AdminService struct {
	logger        *zap.Logger
	trace         *telemetry.Trace
	snapshots     *SnapshotService
	dimensionRepo *repository.DimensionRepository
	levelRepo     *repository.HierarchyLevelRepository
	userRepo      *repository.UserRepository
	teamRepo      *repository.TeamRepository
}

func NewAdminService(
	logger *zap.Logger,
	trace *telemetry.Trace,
	snapshots *SnapshotService,
	dimensionRepo *repository.DimensionRepository,
	levelRepo *repository.HierarchyLevelRepository,
	userRepo *repository.UserRepository,
	teamRepo *repository.TeamRepository,
) *AdminService {
	return &AdminService{
		logger:        logger,
		trace:         trace,
		snapshots:     snapshots,
		dimensionRepo: dimensionRepo,
		levelRepo:     levelRepo,
		userRepo:      userRepo,
		teamRepo:      teamRepo,
	}
}

var (
	canConfigureSystem = func(p healthcheck.Permissions) bool { return p.CanConfigureSystem }
	canManageUsers     = func(p healthcheck.Permissions) bool { return p.CanManageUsers }
	canEditTeams       = func(p healthcheck.Permissions) bool { return p.CanEditTeams }
)

// authorize 載入快照並檢查權限，回傳的快照可直接用於後續驗證
func (s *AdminService) authorize(ctx context.Context, viewer healthcheck.User, check func(healthcheck.Permissions) bool) (*Snapshot, error) {
	snapshot, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !healthcheck.HasPermission(viewer, snapshot.Directory(), check) {
		return nil, cErr.PermissionDenied("insufficient permission for this operation")
	}
	return snapshot, nil
}

func (s *AdminService) changed(ctx context.Context, resource, id, op string) {
	s.snapshots.Invalidate(ctx)
	s.logger.Info("organization setting changed",
		zap.String("resource", resource),
		zap.String("id", id),
		zap.String("op", op),
	)
}

// listOptions 對外 page 從 1 開始
func listOptions(query dto.ListQueryDto) core.ListOptions {
	opts := core.ListOptions{Page: query.Page, Size: query.Size}
	if opts.Size <= 0 {
		opts.Size = 50
	}
	if opts.Page <= 0 {
		opts.Page = 1
	}
	opts.Page--
	return opts
}
