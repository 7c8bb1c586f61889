package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"squadhealth/config"
	"squadhealth/internal/database/client"
	fluentdRepo "squadhealth/internal/database/fluentd/repository"
	"squadhealth/internal/healthcheck"
	cErr "squadhealth/internal/pkg/error"
	"squadhealth/internal/telemetry"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSource 記憶體版資料來源
type fakeSource struct {
	mu         sync.Mutex
	dimensions []healthcheck.Dimension
	levels     []healthcheck.HierarchyLevel
	users      []healthcheck.User
	teams      []healthcheck.Team
	sessions   []healthcheck.Session
	loads      atomic.Int32
	err        error
}

func (f *fakeSource) Dimensions(context.Context) ([]healthcheck.Dimension, error) {
	return f.dimensions, f.err
}

func (f *fakeSource) HierarchyLevels(context.Context) ([]healthcheck.HierarchyLevel, error) {
	return f.levels, f.err
}

func (f *fakeSource) Users(context.Context) ([]healthcheck.User, error) {
	f.loads.Add(1)
	return f.users, f.err
}

func (f *fakeSource) Teams(context.Context) ([]healthcheck.Team, error) {
	return f.teams, f.err
}

func (f *fakeSource) Sessions(_ context.Context, query SessionQuery) ([]healthcheck.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []healthcheck.Session
	for _, s := range f.sessions {
		if query.TeamID != "" && s.TeamID != query.TeamID {
			continue
		}
		if query.UserID != "" && s.UserID != query.UserID {
			continue
		}
		if query.Period != "" && s.Period() != query.Period {
			continue
		}
		if !query.Since.IsZero() && s.Date.Before(query.Since) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSource) CreateSession(_ context.Context, session healthcheck.Session) (healthcheck.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	day := session.Date.UTC().Format(time.DateOnly)
	for _, s := range f.sessions {
		if s.TeamID == session.TeamID && s.UserID == session.UserID && s.Date.UTC().Format(time.DateOnly) == day {
			return healthcheck.Session{}, ErrDuplicateSession
		}
	}
	session.ID = fmt.Sprintf("s%d", len(f.sessions)+1)
	f.sessions = append(f.sessions, session)
	return session, nil
}

// memCache 以 json 保存，行為與 redis 版相同
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (c *memCache) Get(_ context.Context, name string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.entries[name]
	if !ok {
		return false, nil
	}
	return true, sonic.Unmarshal(raw, dest)
}

func (c *memCache) Set(_ context.Context, name string, value any, _ time.Duration) error {
	raw, err := sonic.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = raw
	return nil
}

func (c *memCache) Invalidate(_ context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, name)
	return nil
}

var testNow = time.Date(2024, time.September, 12, 9, 0, 0, 0, time.UTC)

// newTestSource:
// vp <- manager <- {alice, bob}; alpha = {alice}, beta = {bob}, both led by manager.
// carol reports to vp directly and sits in gamma.
func newTestSource() *fakeSource {
	chain := []healthcheck.SupervisorLink{{UserID: "manager", LevelID: "manager"}, {UserID: "vp", LevelID: "vp"}}
	return &fakeSource{
		dimensions: []healthcheck.Dimension{
			{ID: "mission", Name: "Mission", IsActive: true, Weight: 1},
			{ID: "speed", Name: "Speed", IsActive: true, Weight: 1},
			{ID: "legacy", Name: "Legacy", IsActive: false, Weight: 1},
		},
		levels: []healthcheck.HierarchyLevel{
			{ID: "vp", Name: "VP", Rank: 1, Permissions: healthcheck.Permissions{CanViewAllTeams: true, CanViewReports: true, CanExportData: true}},
			{ID: "manager", Name: "Manager", Rank: 2, Permissions: healthcheck.Permissions{CanViewReports: true}},
			{ID: "member", Name: "Team Member", Rank: 3, IsTeamMemberLevel: true},
		},
		users: []healthcheck.User{
			{ID: "vp", Username: "vp", Name: "Vera", HierarchyLevelID: "vp"},
			{ID: "manager", Username: "manager", Name: "Max", HierarchyLevelID: "manager", ReportsTo: "vp"},
			{ID: "alice", Username: "alice", Name: "Alice", HierarchyLevelID: "member", ReportsTo: "manager", TeamIDs: []string{"alpha"}},
			{ID: "bob", Username: "bob", Name: "Bob", HierarchyLevelID: "member", ReportsTo: "manager", TeamIDs: []string{"beta"}},
			{ID: "carol", Username: "carol", Name: "Carol", HierarchyLevelID: "member", ReportsTo: "vp", TeamIDs: []string{"gamma"}},
		},
		teams: []healthcheck.Team{
			{ID: "alpha", Name: "Alpha", Cadence: healthcheck.CadenceBiweekly, Members: []string{"alice"}, SupervisorChain: chain},
			{ID: "beta", Name: "Beta", Cadence: healthcheck.CadenceBiweekly, Members: []string{"bob"}, SupervisorChain: chain},
			{ID: "gamma", Name: "Gamma", Cadence: healthcheck.CadenceMonthly, Members: []string{"carol"},
				SupervisorChain: []healthcheck.SupervisorLink{{UserID: "vp", LevelID: "vp"}}},
		},
	}
}

func (f *fakeSource) user(t *testing.T, id string) healthcheck.User {
	t.Helper()
	for _, u := range f.users {
		if u.ID == id {
			return u
		}
	}
	t.Fatalf("unknown fixture user %s", id)
	return healthcheck.User{}
}

type testServices struct {
	source    *fakeSource
	cache     *memCache
	snapshots *SnapshotService
	sessions  *SessionService
	dashboard *DashboardService
	export    *ExportService
}

func newTestServices(source *fakeSource, conf *config.Configuration) *testServices {
	if conf == nil {
		conf = &config.Configuration{}
	}
	logger := zap.NewNop()
	trace := &telemetry.Trace{}
	metric := telemetry.NewMetric(conf)
	logRepo := fluentdRepo.NewLogRepository(conf, &client.NoopClient{})
	cache := newMemCache()

	snapshots := NewSnapshotService(conf, logger, trace, metric, source, cache)
	snapshots.now = func() time.Time { return testNow }
	sessions := NewSessionService(conf, logger, trace, metric, source, snapshots, logRepo)
	sessions.now = func() time.Time { return testNow }
	dashboard := NewDashboardService(conf, logger, trace, metric, source, snapshots)
	dashboard.now = func() time.Time { return testNow }

	return &testServices{
		source:    source,
		cache:     cache,
		snapshots: snapshots,
		sessions:  sessions,
		dashboard: dashboard,
		export:    NewExportService(logger, trace, dashboard, snapshots, source),
	}
}

func requireAppError(t *testing.T, err error, httpCode, errorCode int) {
	t.Helper()
	require.Error(t, err)
	var appErr *cErr.Error
	require.True(t, errors.As(err, &appErr), "expected *error.Error, got %T: %v", err, err)
	require.Equal(t, httpCode, appErr.HttpCode(), appErr.ErrorDesc())
	require.Equal(t, errorCode, appErr.ErrorCode(), appErr.ErrorDesc())
}
