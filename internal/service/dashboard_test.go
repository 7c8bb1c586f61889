package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"squadhealth/config"
	"squadhealth/internal/healthcheck"
	cErr "squadhealth/internal/pkg/error"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completed(id, teamID, userID string, date time.Time, responses ...healthcheck.Response) healthcheck.Session {
	return healthcheck.Session{ID: id, TeamID: teamID, UserID: userID, Date: date, Completed: true, Responses: responses}
}

func scored(dimensionID string, score healthcheck.Score, trend healthcheck.Trend) healthcheck.Response {
	return healthcheck.Response{DimensionID: dimensionID, Score: score, Trend: trend}
}

func sourceWithHistory() *fakeSource {
	source := newTestSource()
	march := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	sept := time.Date(2024, time.September, 2, 0, 0, 0, 0, time.UTC)
	source.sessions = []healthcheck.Session{
		completed("a1", "alpha", "alice", march, scored("mission", 1, healthcheck.TrendDeclining), scored("speed", 1, healthcheck.TrendStable)),
		completed("a2", "alpha", "alice", sept, scored("mission", 3, healthcheck.TrendImproving), scored("speed", 2, healthcheck.TrendStable)),
		completed("g1", "gamma", "carol", sept, scored("mission", 2, healthcheck.TrendStable)),
	}
	return source
}

func TestMe(t *testing.T) {
	svc := newTestServices(newTestSource(), nil)

	me, err := svc.dashboard.Me(context.Background(), svc.source.user(t, "manager"))
	require.NoError(t, err)
	require.NotNil(t, me.Level)
	assert.Equal(t, "manager", me.Level.ID)
	assert.True(t, me.Permissions.CanViewReports)
	assert.Equal(t, 2, me.VisibleTeams)

	orphan, err := svc.dashboard.Me(context.Background(), healthcheck.User{ID: "x", HierarchyLevelID: "gone"})
	require.NoError(t, err)
	assert.Nil(t, orphan.Level)
	assert.Zero(t, orphan.VisibleTeams)
}

func TestActiveDimensionsSkipsInactive(t *testing.T) {
	svc := newTestServices(newTestSource(), nil)

	dims, err := svc.dashboard.ActiveDimensions(context.Background())
	require.NoError(t, err)
	ids := make([]string, 0, len(dims))
	for _, d := range dims {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"mission", "speed"}, ids)
}

func TestVisibleTeams(t *testing.T) {
	svc := newTestServices(newTestSource(), nil)
	ctx := context.Background()

	cases := map[string][]string{
		"vp":      {"alpha", "beta", "gamma"},
		"manager": {"alpha", "beta"},
		"alice":   {"alpha"},
	}
	for user, want := range cases {
		teams, err := svc.dashboard.VisibleTeams(ctx, svc.source.user(t, user))
		require.NoError(t, err, user)
		got := make([]string, 0, len(teams))
		for _, team := range teams {
			got = append(got, team.ID)
		}
		assert.ElementsMatch(t, want, got, user)
	}

	_, err := svc.dashboard.VisibleTeams(ctx, healthcheck.User{ID: "x", HierarchyLevelID: "gone", IsAdmin: true})
	requireAppError(t, err, http.StatusForbidden, cErr.PERMISSION_DENIED)
}

func TestTeamSummaryUsesLatestWave(t *testing.T) {
	svc := newTestServices(sourceWithHistory(), nil)
	ctx := context.Background()

	summary, err := svc.dashboard.TeamSummary(ctx, svc.source.user(t, "manager"), "alpha", "")
	require.NoError(t, err)
	assert.Equal(t, "2024 - 1st Half", summary.AssessmentPeriod)
	assert.Equal(t, 1, summary.Respondents)
	assert.InDelta(t, 2.5, summary.OverallScore, 1e-9)
	assert.InDelta(t, 75, summary.HealthPercentage, 1e-9)

	older, err := svc.dashboard.TeamSummary(ctx, svc.source.user(t, "manager"), "alpha", "2023 - 2nd Half")
	require.NoError(t, err)
	assert.InDelta(t, 1, older.OverallScore, 1e-9)

	_, err = svc.dashboard.TeamSummary(ctx, svc.source.user(t, "vp"), "beta", "")
	requireAppError(t, err, http.StatusNotFound, cErr.NO_DATA)

	_, err = svc.dashboard.TeamSummary(ctx, svc.source.user(t, "alice"), "gamma", "")
	requireAppError(t, err, http.StatusForbidden, cErr.PERMISSION_DENIED)

	_, err = svc.dashboard.TeamSummary(ctx, svc.source.user(t, "vp"), "missing", "")
	requireAppError(t, err, http.StatusNotFound, cErr.NOT_FOUND)
}

func TestTeamHistoryOrdersPeriods(t *testing.T) {
	svc := newTestServices(sourceWithHistory(), nil)

	history, err := svc.dashboard.TeamHistory(context.Background(), svc.source.user(t, "alice"), "alpha")
	require.NoError(t, err)
	require.Len(t, history.History, 2)
	assert.Equal(t, "2023 - 2nd Half", history.History[0].Period)
	assert.Empty(t, history.History[0].Change)
	assert.Equal(t, "2024 - 1st Half", history.History[1].Period)
	assert.Equal(t, healthcheck.TrendImproving, history.History[1].Change)
}

func TestPeriodsOnlyCountsVisibleTeams(t *testing.T) {
	svc := newTestServices(sourceWithHistory(), nil)
	ctx := context.Background()

	periods, err := svc.dashboard.Periods(ctx, svc.source.user(t, "carol"), "")
	require.NoError(t, err)
	assert.Equal(t, "2024-09-12", periods.Date)
	assert.Equal(t, "2024 - 1st Half", periods.Current)
	assert.Equal(t, []string{"2024 - 1st Half"}, periods.Known)

	periods, err = svc.dashboard.Periods(ctx, svc.source.user(t, "vp"), "2024-02-01")
	require.NoError(t, err)
	assert.Equal(t, "2023 - 2nd Half", periods.Current)
	assert.Equal(t, []string{"2024 - 1st Half", "2023 - 2nd Half"}, periods.Known)

	_, err = svc.dashboard.Periods(ctx, svc.source.user(t, "vp"), "yesterday")
	requireAppError(t, err, http.StatusBadRequest, cErr.BAD_REQUEST_PARAMS)
}

func TestOrgTreeRollsUpSubtree(t *testing.T) {
	conf := &config.Configuration{Aggregation: config.Aggregation{CompletionWindowDays: 30}}
	svc := newTestServices(sourceWithHistory(), conf)

	tree, err := svc.dashboard.OrgTree(context.Background(), svc.source.user(t, "vp"), "vp", "")
	require.NoError(t, err)
	root := tree.Root
	assert.Equal(t, "vp", root.User.ID)
	assert.Equal(t, 3, root.Metrics.TotalTeams)
	assert.Equal(t, 3, root.Metrics.TotalMembers)
	assert.Equal(t, 2, root.Metrics.HealthSamples, "alpha and gamma have data, beta does not")
	assert.InDelta(t, 2.25, root.Metrics.AvgHealth, 1e-9)
	// alice 與 carol 在 30 天內都有提交
	assert.InDelta(t, 2.0/3.0, root.Metrics.CompletionRate, 1e-9)
	assert.Equal(t, testNow, tree.GeneratedAt)

	require.Len(t, root.Children, 2)
	var manager *healthcheck.OrganizationNode
	for _, child := range root.Children {
		if child.User.ID == "manager" {
			manager = child
		}
	}
	require.NotNil(t, manager)
	assert.Equal(t, 2, manager.Metrics.TotalTeams)
	assert.Len(t, manager.Children, 2)
}

func TestOrgTreePermissions(t *testing.T) {
	svc := newTestServices(sourceWithHistory(), nil)
	ctx := context.Background()

	_, err := svc.dashboard.OrgTree(ctx, svc.source.user(t, "manager"), "alice", "")
	require.NoError(t, err, "manager sees a direct report")

	_, err = svc.dashboard.OrgTree(ctx, svc.source.user(t, "alice"), "alice", "")
	require.NoError(t, err, "users see their own subtree")

	_, err = svc.dashboard.OrgTree(ctx, svc.source.user(t, "manager"), "vp", "")
	requireAppError(t, err, http.StatusForbidden, cErr.PERMISSION_DENIED)

	_, err = svc.dashboard.OrgTree(ctx, svc.source.user(t, "manager"), "carol", "")
	requireAppError(t, err, http.StatusForbidden, cErr.PERMISSION_DENIED)

	_, err = svc.dashboard.OrgTree(ctx, svc.source.user(t, "vp"), "nobody", "")
	requireAppError(t, err, http.StatusNotFound, cErr.NOT_FOUND)
}

func TestOrgTreeCycleIsConflict(t *testing.T) {
	source := newTestSource()
	// manager 與 vp 互相匯報
	source.users[0].ReportsTo = "manager"
	svc := newTestServices(source, nil)

	_, err := svc.dashboard.OrgTree(context.Background(), source.user(t, "vp"), "vp", "")
	require.Error(t, err)
	var appErr *cErr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.HttpCode())
}
