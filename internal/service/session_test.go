package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"squadhealth/internal/dto"
	"squadhealth/internal/healthcheck"
	cErr "squadhealth/internal/pkg/error"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submission(teamID, date string, responses ...dto.ResponseDto) *dto.SubmitSessionDto {
	return &dto.SubmitSessionDto{TeamID: teamID, Date: date, Responses: responses}
}

func answer(dimensionID string, score int, trend string) dto.ResponseDto {
	return dto.ResponseDto{DimensionID: dimensionID, Score: score, Trend: trend}
}

func TestSubmitStoresCompletedSession(t *testing.T) {
	svc := newTestServices(newTestSource(), nil)
	alice := svc.source.user(t, "alice")

	created, err := svc.sessions.Submit(context.Background(), alice, submission("alpha", "",
		answer("mission", 3, "improving"),
		answer("speed", 2, "stable"),
	))
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.True(t, created.Completed)
	assert.Equal(t, "alice", created.UserID)
	assert.Equal(t, "2024 - 1st Half", created.AssessmentPeriod)
	assert.Equal(t, testNow, created.Date)
	assert.Len(t, svc.source.sessions, 1)
}

func TestSubmitWithExplicitDate(t *testing.T) {
	svc := newTestServices(newTestSource(), nil)
	alice := svc.source.user(t, "alice")

	created, err := svc.sessions.Submit(context.Background(), alice, submission("alpha", "2024-03-01",
		answer("mission", 1, "declining"),
	))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), created.Date)
	assert.Equal(t, "2023 - 2nd Half", created.AssessmentPeriod)
}

func TestSubmitRejections(t *testing.T) {
	cases := []struct {
		name      string
		user      string
		req       *dto.SubmitSessionDto
		httpCode  int
		errorCode int
	}{
		{
			name:      "unknown team",
			user:      "alice",
			req:       submission("nope", "", answer("mission", 3, "stable")),
			httpCode:  http.StatusNotFound,
			errorCode: cErr.NOT_FOUND,
		},
		{
			name:      "not a member",
			user:      "bob",
			req:       submission("alpha", "", answer("mission", 3, "stable")),
			httpCode:  http.StatusForbidden,
			errorCode: cErr.PERMISSION_DENIED,
		},
		{
			name:      "future date",
			user:      "alice",
			req:       submission("alpha", "2024-09-13", answer("mission", 3, "stable")),
			httpCode:  http.StatusBadRequest,
			errorCode: cErr.INVALID_SUBMISSION,
		},
		{
			name:      "inactive dimension",
			user:      "alice",
			req:       submission("alpha", "", answer("legacy", 3, "stable")),
			httpCode:  http.StatusBadRequest,
			errorCode: cErr.INVALID_SUBMISSION,
		},
		{
			name:      "dimension answered twice",
			user:      "alice",
			req:       submission("alpha", "", answer("mission", 3, "stable"), answer("mission", 1, "stable")),
			httpCode:  http.StatusBadRequest,
			errorCode: cErr.INVALID_SUBMISSION,
		},
		{
			name:      "malformed date",
			user:      "alice",
			req:       submission("alpha", "12/09/2024", answer("mission", 3, "stable")),
			httpCode:  http.StatusBadRequest,
			errorCode: cErr.INVALID_SUBMISSION,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestServices(newTestSource(), nil)
			_, err := svc.sessions.Submit(context.Background(), svc.source.user(t, tc.user), tc.req)
			requireAppError(t, err, tc.httpCode, tc.errorCode)
			assert.Empty(t, svc.source.sessions)
		})
	}
}

func TestSubmitTwiceSameDayConflicts(t *testing.T) {
	svc := newTestServices(newTestSource(), nil)
	alice := svc.source.user(t, "alice")
	ctx := context.Background()

	_, err := svc.sessions.Submit(ctx, alice, submission("alpha", "", answer("mission", 3, "stable")))
	require.NoError(t, err)
	_, err = svc.sessions.Submit(ctx, alice, submission("alpha", "", answer("speed", 1, "declining")))
	requireAppError(t, err, http.StatusConflict, cErr.CONFLICT)

	// 前一天的補填不衝突
	_, err = svc.sessions.Submit(ctx, alice, submission("alpha", "2024-09-11", answer("speed", 1, "declining")))
	require.NoError(t, err)
}

func TestAdminMaySubmitForAnyTeam(t *testing.T) {
	svc := newTestServices(newTestSource(), nil)
	admin := healthcheck.User{ID: "root", HierarchyLevelID: "vp", IsAdmin: true}

	_, err := svc.sessions.Submit(context.Background(), admin, submission("gamma", "", answer("mission", 2, "stable")))
	require.NoError(t, err)
}

func TestListForTeamRespectsVisibility(t *testing.T) {
	source := newTestSource()
	source.sessions = []healthcheck.Session{
		{ID: "s1", TeamID: "alpha", UserID: "alice", Date: testNow, Completed: true},
		{ID: "s2", TeamID: "gamma", UserID: "carol", Date: testNow, Completed: true},
	}
	svc := newTestServices(source, nil)
	ctx := context.Background()

	list, err := svc.sessions.ListForTeam(ctx, source.user(t, "manager"), "alpha", "")
	require.NoError(t, err)
	require.Len(t, list.Sessions, 1)
	assert.Equal(t, "s1", list.Sessions[0].ID)

	_, err = svc.sessions.ListForTeam(ctx, source.user(t, "manager"), "gamma", "")
	requireAppError(t, err, http.StatusForbidden, cErr.PERMISSION_DENIED)

	empty, err := svc.sessions.ListForTeam(ctx, source.user(t, "vp"), "beta", "")
	require.NoError(t, err)
	assert.NotNil(t, empty.Sessions)
	assert.Empty(t, empty.Sessions)
}
