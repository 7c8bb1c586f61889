package healthcheck

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateSession(t *testing.T) {
	now := day(2024, time.September, 10)
	valid := session("alpha", "alice", now, resp("mission", ScoreGreen, TrendStable))

	tests := []struct {
		name   string
		mutate func(s *Session)
		ok     bool
	}{
		{name: "valid", mutate: func(s *Session) {}, ok: true},
		{name: "partial answers are fine", mutate: func(s *Session) {
			s.Responses = append(s.Responses, resp("speed", ScoreRed, TrendDeclining))
		}, ok: true},
		{name: "later today", mutate: func(s *Session) { s.Date = now.Add(5 * time.Hour) }, ok: true},
		{name: "missing team", mutate: func(s *Session) { s.TeamID = "" }},
		{name: "no date", mutate: func(s *Session) { s.Date = time.Time{} }},
		{name: "future date", mutate: func(s *Session) { s.Date = now.AddDate(0, 0, 1) }},
		{name: "no responses", mutate: func(s *Session) { s.Responses = nil }},
		{name: "unknown dimension", mutate: func(s *Session) { s.Responses[0].DimensionID = "nope" }},
		{name: "inactive dimension", mutate: func(s *Session) { s.Responses[0].DimensionID = "legacy" }},
		{name: "duplicate dimension", mutate: func(s *Session) {
			s.Responses = append(s.Responses, resp("mission", ScoreRed, TrendStable))
		}},
		{name: "score out of range", mutate: func(s *Session) { s.Responses[0].Score = 4 }},
		{name: "zero score", mutate: func(s *Session) { s.Responses[0].Score = 0 }},
		{name: "bad trend", mutate: func(s *Session) { s.Responses[0].Trend = "sideways" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			s.Responses = append([]Response(nil), valid.Responses...)
			tt.mutate(&s)

			err := ValidateSession(s, testRegistry(), now)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidSession)
		})
	}
}
