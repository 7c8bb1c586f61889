package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"squadhealth/config"
	"squadhealth/internal/database/client"
	"squadhealth/internal/healthcheck"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBackendSource(t *testing.T, handler http.HandlerFunc) *BackendDataSource {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	conf := &config.Configuration{Backend: config.Backend{BaseURL: server.URL}}
	return NewBackendDataSource(client.NewBackendClient(zap.NewNop(), conf))
}

func TestBackendSourceReadsArrays(t *testing.T) {
	source := newBackendSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/teams":
			_, _ = io.WriteString(w, `[{"id":"alpha","name":"Alpha","members":["alice"],"supervisorChain":[{"userId":"m","levelId":"manager"}]}]`)
		case "/hierarchy-levels":
			_, _ = io.WriteString(w, `[{"id":"member","rank":3,"isTeamMemberLevel":true}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	teams, err := source.Teams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "Alpha", teams[0].Name)
	assert.True(t, teams[0].SupervisedBy("m"))

	levels, err := source.HierarchyLevels(ctx)
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.True(t, levels[0].IsTeamMemberLevel)

	_, err = source.Users(ctx)
	var backendErr *client.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusNotFound, backendErr.StatusCode)
}

func TestBackendSourceSessionQuery(t *testing.T) {
	since := time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)
	source := newBackendSource(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "alpha", q.Get("teamId"))
		assert.Equal(t, "2024 - 1st Half", q.Get("period"))
		assert.Equal(t, "2024-08-01T00:00:00Z", q.Get("since"))
		assert.False(t, q.Has("userId"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":"s1","teamId":"alpha","userId":"alice","date":"2024-09-02T00:00:00Z","completed":true}]`)
	})

	sessions, err := source.Sessions(context.Background(), SessionQuery{TeamID: "alpha", Period: "2024 - 1st Half", Since: since})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "2024 - 1st Half", sessions[0].Period())
}

func TestBackendSourceCreateSession(t *testing.T) {
	var received healthcheck.Session
	source := newBackendSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, sonic.Unmarshal(body, &received))
		if received.UserID == "dup" {
			w.WriteHeader(http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	ctx := context.Background()
	session := healthcheck.Session{TeamID: "alpha", UserID: "alice", Date: testNow, Completed: true}

	created, err := source.CreateSession(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, "alice", received.UserID)
	assert.Equal(t, session.TeamID, created.TeamID, "an empty 201 echoes the submitted session")

	session.UserID = "dup"
	_, err = source.CreateSession(ctx, session)
	assert.ErrorIs(t, err, ErrDuplicateSession)
}
