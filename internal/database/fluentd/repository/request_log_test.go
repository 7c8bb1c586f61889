package repository

import (
	"context"
	"testing"

	"squadhealth/config"
	"squadhealth/internal/database/fluentd/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingClient struct {
	tags    []string
	records []map[string]any
}

func (c *recordingClient) Post(_ context.Context, tag string, message any) error {
	c.tags = append(c.tags, tag)
	c.records = append(c.records, message.(map[string]any))
	return nil
}

func (c *recordingClient) Close() error { return nil }

func TestLogSubmission(t *testing.T) {
	fake := &recordingClient{}
	repo := NewLogRepository(&config.Configuration{App: config.App{Version: "2.1.0"}}, fake)

	err := repo.LogSubmission(context.Background(), model.SubmissionLog{
		UserID:    "u1",
		TeamID:    "t1",
		Date:      "2024-09-02",
		Responses: 3,
		Result:    "created",
	})
	require.NoError(t, err)

	require.Len(t, fake.records, 1)
	assert.Equal(t, "submission_log", fake.tags[0])
	rec := fake.records[0]
	assert.Equal(t, "u1", rec["user_id"])
	assert.Equal(t, "2.1.0", rec["version"])
	assert.NotEmpty(t, rec["logged_at"])
	assert.NotContains(t, rec, "error")
}

func TestLogResponseDefaultsVersion(t *testing.T) {
	fake := &recordingClient{}
	repo := NewLogRepository(&config.Configuration{}, fake)

	require.NoError(t, repo.LogResponse(context.Background(), model.ResponseLog{RequestID: "r", StatusCode: 200}))
	assert.Equal(t, "response_log", fake.tags[0])
	assert.Equal(t, "1.0.0", fake.records[0]["version"])
}
