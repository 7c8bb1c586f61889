package service

import (
	"context"
	"time"

	"squadhealth/config"
	"squadhealth/internal/core"
	"squadhealth/internal/healthcheck"
	"squadhealth/internal/telemetry"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultSnapshotTTL = 60 * time.Second

// SnapshotCache 組織快照的快取，只影響資料新鮮度，不影響正確性
type SnapshotCache interface {
	Get(ctx context.Context, name string, dest any) (bool, error)
	Set(ctx context.Context, name string, value any, ttl time.Duration) error
	Invalidate(ctx context.Context, name string) error
}

// Snapshot 某一時間點的組織設定；每個請求各自建立 Directory / Registry
type Snapshot struct {
	Levels     []healthcheck.HierarchyLevel `json:"levels"`
	Users      []healthcheck.User           `json:"users"`
	Teams      []healthcheck.Team           `json:"teams"`
	Dimensions []healthcheck.Dimension      `json:"dimensions"`
	LoadedAt   time.Time                    `json:"loadedAt"`
}

func (s *Snapshot) Directory() *healthcheck.Directory {
	return healthcheck.NewDirectory(s.Levels, s.Users, s.Teams)
}

func (s *Snapshot) Registry() *healthcheck.Registry {
	return healthcheck.NewRegistry(s.Dimensions)
}

type SnapshotService struct {
	conf   *config.Configuration
	logger *zap.Logger
	trace  *telemetry.Trace
	metric *telemetry.Metric
	source DataSource
	cache  SnapshotCache
	now    func() time.Time
}

func NewSnapshotService(
	conf *config.Configuration,
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	source DataSource,
	cache SnapshotCache,
) *SnapshotService {
	return &SnapshotService{
		conf:   conf,
		logger: logger,
		trace:  trace,
		metric: metric,
		source: source,
		cache:  cache,
		now:    time.Now,
	}
}

// Load 先讀快取，未命中時並行載入四種設定後寫回快取
func (s *SnapshotService) Load(ctx context.Context) (_ *Snapshot, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx, string(core.SpanSnapshotLoad))
	defer func() { end(returnedError) }()

	meta := core.TraceSnapshotMeta{Driver: s.driver()}
	useCache := s.conf.Cache.Enabled && s.cache != nil

	if useCache {
		var cached Snapshot
		hit, err := s.cache.Get(ctx, s.cacheKey(), &cached)
		switch {
		case err != nil:
			s.metric.ObserveCache("error")
			s.logger.Warn("snapshot cache read failed, falling back to source", zap.Error(err))
		case hit:
			s.metric.ObserveCache("hit")
			meta.CacheHit = true
			fillSnapshotMeta(&meta, &cached)
			s.trace.ApplyTraceAttributes(span, meta)
			return &cached, nil
		default:
			s.metric.ObserveCache("miss")
		}
	}

	snapshot, err := s.fetch(ctx)
	if err != nil {
		return nil, sourceError(err, "load organization snapshot failed")
	}
	fillSnapshotMeta(&meta, snapshot)
	s.trace.ApplyTraceAttributes(span, meta)

	if useCache {
		if err := s.cache.Set(ctx, s.cacheKey(), snapshot, s.ttl()); err != nil {
			s.logger.Warn("snapshot cache write failed", zap.Error(err))
		}
	}
	return snapshot, nil
}

// Invalidate 管理端修改設定後呼叫
func (s *SnapshotService) Invalidate(ctx context.Context) {
	if s.cache == nil || !s.conf.Cache.Enabled {
		return
	}
	if err := s.cache.Invalidate(ctx, s.cacheKey()); err != nil {
		s.logger.Warn("snapshot cache invalidate failed", zap.Error(err))
	}
}

func (s *SnapshotService) fetch(ctx context.Context) (*Snapshot, error) {
	snapshot := &Snapshot{LoadedAt: s.now().UTC()}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snapshot.Levels, err = s.source.HierarchyLevels(gctx)
		return err
	})
	g.Go(func() (err error) {
		snapshot.Users, err = s.source.Users(gctx)
		return err
	})
	g.Go(func() (err error) {
		snapshot.Teams, err = s.source.Teams(gctx)
		return err
	})
	g.Go(func() (err error) {
		snapshot.Dimensions, err = s.source.Dimensions(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *SnapshotService) driver() string {
	if s.conf.Store.Driver == "" {
		return string(core.StoreDriverMongo)
	}
	return s.conf.Store.Driver
}

func (s *SnapshotService) cacheKey() string {
	return "org:" + s.driver()
}

func (s *SnapshotService) ttl() time.Duration {
	if s.conf.Cache.TTL > 0 {
		return time.Duration(s.conf.Cache.TTL) * time.Second
	}
	return defaultSnapshotTTL
}

func fillSnapshotMeta(meta *core.TraceSnapshotMeta, snapshot *Snapshot) {
	meta.Levels = len(snapshot.Levels)
	meta.Users = len(snapshot.Users)
	meta.Teams = len(snapshot.Teams)
	meta.Dimensions = len(snapshot.Dimensions)
}
