package service

import (
	"context"
	"time"

	"squadhealth/config"
	"squadhealth/internal/core"
	"squadhealth/internal/dto"
	"squadhealth/internal/healthcheck"
	cErr "squadhealth/internal/pkg/error"
	"squadhealth/internal/telemetry"

	"go.uber.org/zap"
)

// DashboardService 所有讀取皆先做權限檢查；權限無法解析時一律拒絕
type DashboardService struct {
	conf      *config.Configuration
	logger    *zap.Logger
	trace     *telemetry.Trace
	metric    *telemetry.Metric
	source    DataSource
	snapshots *SnapshotService
	now       func() time.Time
}

func NewDashboardService(
	conf *config.Configuration,
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	source DataSource,
	snapshots *SnapshotService,
) *DashboardService {
	return &DashboardService{
		conf:      conf,
		logger:    logger,
		trace:     trace,
		metric:    metric,
		source:    source,
		snapshots: snapshots,
		now:       time.Now,
	}
}

func (s *DashboardService) Me(ctx context.Context, viewer healthcheck.User) (_ *dto.MeResponseDto, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	snapshot, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	dir := snapshot.Directory()
	me := &dto.MeResponseDto{User: viewer}
	if level, ok := dir.LevelOf(viewer); ok {
		me.Level = &level
		me.Permissions = level.Permissions
	}
	if teams, err := healthcheck.VisibleTeams(viewer, dir); err == nil {
		me.VisibleTeams = len(teams)
	}
	return me, nil
}

// ActiveDimensions 提交表單使用的維度清單
func (s *DashboardService) ActiveDimensions(ctx context.Context) (_ []healthcheck.Dimension, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	snapshot, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Registry().Active(), nil
}

func (s *DashboardService) VisibleTeams(ctx context.Context, viewer healthcheck.User) (_ []healthcheck.Team, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	snapshot, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	teams, err := healthcheck.VisibleTeams(viewer, snapshot.Directory())
	if err != nil {
		return nil, cErr.FromDomain(err)
	}
	return teams, nil
}

// TeamSummary 最新一批提交的彙總；沒有資料時回傳 NoData 而不是全為 0 的結果
func (s *DashboardService) TeamSummary(ctx context.Context, viewer healthcheck.User, teamID, period string) (_ *healthcheck.TeamHealthSummary, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	snapshot, team, err := s.visibleTeam(ctx, viewer, teamID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.source.Sessions(ctx, SessionQuery{TeamID: team.ID, Period: period})
	if err != nil {
		return nil, sourceError(err, "load sessions failed")
	}
	summary := healthcheck.SummarizeTeam(team, sessions, snapshot.Registry(), period)
	if summary == nil {
		return nil, cErr.NoData("no completed health check for this team")
	}
	return summary, nil
}

func (s *DashboardService) TeamHistory(ctx context.Context, viewer healthcheck.User, teamID string) (_ *dto.TeamHistoryResponseDto, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	snapshot, team, err := s.visibleTeam(ctx, viewer, teamID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.source.Sessions(ctx, SessionQuery{TeamID: team.ID})
	if err != nil {
		return nil, sourceError(err, "load sessions failed")
	}
	history := healthcheck.TeamHistory(team, sessions, snapshot.Registry())
	return &dto.TeamHistoryResponseDto{Team: team, History: history}, nil
}

// Periods 指定日期（預設今天）所屬的期別，加上可見團隊已有資料的期別（新到舊）
func (s *DashboardService) Periods(ctx context.Context, viewer healthcheck.User, rawDate string) (_ *dto.PeriodsResponseDto, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	date := s.now().UTC()
	if rawDate != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, rawDate, time.UTC)
		if err != nil {
			return nil, cErr.BadRequestParams("date must be YYYY-MM-DD")
		}
		date = parsed
	}

	teams, err := s.VisibleTeams(ctx, viewer)
	if err != nil {
		return nil, err
	}
	visible := make(map[string]struct{}, len(teams))
	for _, t := range teams {
		visible[t.ID] = struct{}{}
	}
	sessions, err := s.source.Sessions(ctx, SessionQuery{})
	if err != nil {
		return nil, sourceError(err, "load sessions failed")
	}
	mine := sessions[:0:0]
	for _, session := range sessions {
		if _, ok := visible[session.TeamID]; ok {
			mine = append(mine, session)
		}
	}
	known := healthcheck.KnownPeriods(mine)
	if known == nil {
		known = []string{}
	}
	return &dto.PeriodsResponseDto{
		Date:    date.Format(time.DateOnly),
		Current: healthcheck.AssessmentPeriod(date),
		Known:   known,
	}, nil
}

// OrgTree 檢視者必須是 root 本人、root 的上級、管理員或具 CanViewAllTeams
func (s *DashboardService) OrgTree(ctx context.Context, viewer healthcheck.User, rootUserID, period string) (_ *dto.OrgTreeResponseDto, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx, string(core.SpanOrgTreeBuild))
	defer func() { end(returnedError) }()

	meta := core.TraceOrgTreeMeta{ViewerID: viewer.ID, RootUserID: rootUserID}
	defer func() { s.trace.ApplyTraceAttributes(span, meta) }()

	snapshot, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	dir := snapshot.Directory()
	if err := canViewSubtree(viewer, rootUserID, dir); err != nil {
		return nil, err
	}

	sessions, err := s.source.Sessions(ctx, SessionQuery{})
	if err != nil {
		return nil, sourceError(err, "load sessions failed")
	}
	meta.Sessions = len(sessions)

	startedAt := time.Now()
	root, err := healthcheck.BuildOrgTree(rootUserID, dir, snapshot.Registry(), sessions, s.treeOptions(period))
	elapsed := time.Since(startedAt)
	s.metric.ObserveOrgTree(elapsed.Seconds())
	meta.DurationMs = float64(elapsed.Microseconds()) / 1000
	if err != nil {
		s.logger.Warn("build org tree failed", zap.String("root_user_id", rootUserID), zap.Error(err))
		return nil, cErr.FromDomain(err)
	}
	meta.TotalTeams = root.Metrics.TotalTeams
	meta.TotalMembers = root.Metrics.TotalMembers

	return &dto.OrgTreeResponseDto{GeneratedAt: s.now().UTC(), Root: root}, nil
}

func (s *DashboardService) treeOptions(period string) healthcheck.TreeOptions {
	opts := healthcheck.TreeOptions{Now: s.now, PeriodFilter: period}
	if days := s.conf.Aggregation.CompletionWindowDays; days > 0 {
		opts.CompletionWindow = time.Duration(days) * 24 * time.Hour
	}
	return opts
}

func (s *DashboardService) visibleTeam(ctx context.Context, viewer healthcheck.User, teamID string) (*Snapshot, healthcheck.Team, error) {
	snapshot, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, healthcheck.Team{}, err
	}
	dir := snapshot.Directory()
	team, ok := dir.Team(teamID)
	if !ok {
		return nil, healthcheck.Team{}, cErr.NotFound("team not found")
	}
	if !healthcheck.CanView(viewer, teamID, dir) {
		return nil, healthcheck.Team{}, cErr.PermissionDenied("team is not visible to the current user")
	}
	return snapshot, team, nil
}

func canViewSubtree(viewer healthcheck.User, rootUserID string, dir *healthcheck.Directory) error {
	if _, ok := dir.User(rootUserID); !ok {
		return cErr.NotFound("user not found")
	}
	if _, ok := dir.LevelOf(viewer); !ok {
		return cErr.PermissionDenied("current user has no resolvable hierarchy level")
	}
	if viewer.ID == rootUserID || healthcheck.HasPermission(viewer, dir, func(p healthcheck.Permissions) bool { return p.CanViewAllTeams }) {
		return nil
	}
	superior, err := dir.IsSuperiorOf(viewer.ID, rootUserID)
	if err != nil {
		return cErr.FromDomain(err)
	}
	if !superior {
		return cErr.PermissionDenied("organization subtree is not visible to the current user")
	}
	return nil
}
