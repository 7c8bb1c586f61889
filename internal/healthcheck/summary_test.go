package healthcheck

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alpha = Team{ID: "alpha", Name: "Alpha"}

func dimensionOf(t *testing.T, s *TeamHealthSummary, id string) DimensionSummary {
	t.Helper()
	for _, d := range s.Dimensions {
		if d.DimensionID == id {
			return d
		}
	}
	t.Fatalf("dimension %s not in summary", id)
	return DimensionSummary{}
}

func TestSummarizeTeamAveragesLatestBatch(t *testing.T) {
	date := day(2024, time.September, 2)
	sessions := []Session{
		session("alpha", "u1", date, resp("mission", ScoreRed, TrendDeclining)),
		session("alpha", "u2", date, resp("mission", ScoreGreen, TrendImproving)),
	}

	s := SummarizeTeam(alpha, sessions, testRegistry(), "")
	require.NotNil(t, s)

	m := dimensionOf(t, s, "mission")
	assert.True(t, m.HasData)
	assert.InDelta(t, 2.0, m.AverageScore, 1e-9)
	assert.Equal(t, Distribution{Red: 1, Yellow: 0, Green: 1}, m.Distribution)
	assert.Equal(t, TrendDeclining, m.Trend)
	assert.Equal(t, 2, s.Respondents)
	assert.Equal(t, "2024 - 1st Half", s.AssessmentPeriod)
}

func TestSummarizeTeamIgnoresEarlierDates(t *testing.T) {
	sessions := []Session{
		session("alpha", "u1", day(2024, time.August, 1), resp("mission", ScoreRed, TrendStable)),
		session("alpha", "u2", day(2024, time.September, 2).Add(-9*time.Hour), resp("mission", ScoreGreen, TrendStable)),
		session("alpha", "u3", day(2024, time.September, 2).Add(5*time.Hour), resp("mission", ScoreYellow, TrendStable)),
	}

	s := SummarizeTeam(alpha, sessions, testRegistry(), "")
	require.NotNil(t, s)

	m := dimensionOf(t, s, "mission")
	assert.InDelta(t, 2.5, m.AverageScore, 1e-9)
	assert.Equal(t, 0, m.Distribution.Red)
	assert.Equal(t, 2, s.Respondents)
	assert.Equal(t, time.Date(2024, time.September, 2, 0, 0, 0, 0, time.UTC), s.Date)
}

func TestSummarizeTeamNoDataIsNil(t *testing.T) {
	sessions := []Session{
		session("alpha", "u1", day(2024, time.September, 2), resp("mission", ScoreGreen, TrendStable)),
		session("beta", "u2", day(2024, time.September, 2), resp("mission", ScoreGreen, TrendStable)),
	}
	incomplete := session("alpha", "u3", day(2024, time.October, 1), resp("mission", ScoreRed, TrendStable))
	incomplete.Completed = false
	sessions = append(sessions, incomplete)

	assert.Nil(t, SummarizeTeam(alpha, sessions, testRegistry(), "2019 - 1st Half"))
	assert.Nil(t, SummarizeTeam(alpha, nil, testRegistry(), ""))
	assert.Nil(t, SummarizeTeam(Team{ID: "nobody"}, sessions, testRegistry(), ""))

	s := SummarizeTeam(alpha, sessions, testRegistry(), "")
	require.NotNil(t, s)
	assert.Equal(t, 1, s.Respondents)
}

func TestSummarizeTeamMissingDimensionIsNotZero(t *testing.T) {
	sessions := []Session{
		session("alpha", "u1", day(2024, time.September, 2), resp("mission", ScoreGreen, TrendStable)),
		session("alpha", "u2", day(2024, time.September, 2), resp("mission", ScoreGreen, TrendStable), resp("speed", Score(7), TrendStable)),
	}

	s := SummarizeTeam(alpha, sessions, testRegistry(), "")
	require.NotNil(t, s)

	sp := dimensionOf(t, s, "speed")
	assert.False(t, sp.HasData)
	assert.Zero(t, sp.Distribution.Total())

	assert.True(t, s.HasData)
	assert.InDelta(t, 3.0, s.OverallScore, 1e-9)
	assert.InDelta(t, 100.0, s.HealthPercentage, 1e-9)
	assert.Len(t, s.Dimensions, 2, "inactive dimensions are not summarized")
}

func TestSummarizeTeamWeightsOverallScore(t *testing.T) {
	dims := NewRegistry([]Dimension{
		{ID: "mission", IsActive: true, Weight: 3},
		{ID: "speed", IsActive: true, Weight: 1},
	})
	sessions := []Session{
		session("alpha", "u1", day(2024, time.September, 2), resp("mission", ScoreGreen, TrendStable), resp("speed", ScoreRed, TrendStable)),
	}

	s := SummarizeTeam(alpha, sessions, dims, "")
	require.NotNil(t, s)
	assert.InDelta(t, 2.5, s.OverallScore, 1e-9)
	assert.InDelta(t, 75.0, s.HealthPercentage, 1e-9)
}

func TestSummarizeTeamPeriodFilter(t *testing.T) {
	older := session("alpha", "u1", day(2024, time.March, 1), resp("mission", ScoreRed, TrendStable))
	newer := session("alpha", "u1", day(2024, time.September, 1), resp("mission", ScoreGreen, TrendStable))

	s := SummarizeTeam(alpha, []Session{older, newer}, testRegistry(), "2023 - 2nd Half")
	require.NotNil(t, s)
	assert.InDelta(t, 1.0, dimensionOf(t, s, "mission").AverageScore, 1e-9)
}

func TestHealthPercentage(t *testing.T) {
	assert.InDelta(t, 0.0, HealthPercentage(1), 1e-9)
	assert.InDelta(t, 50.0, HealthPercentage(2), 1e-9)
	assert.InDelta(t, 100.0, HealthPercentage(3), 1e-9)
	assert.InDelta(t, 0.0, HealthPercentage(0), 1e-9)
	assert.InDelta(t, 100.0, HealthPercentage(4), 1e-9)
}

func TestClassifyTrend(t *testing.T) {
	assert.Equal(t, TrendImproving, ClassifyTrend(2.0, 2.2))
	assert.Equal(t, TrendDeclining, ClassifyTrend(2.2, 2.0))
	assert.Equal(t, TrendStable, ClassifyTrend(2.0, 2.05))
}

func TestTeamHistory(t *testing.T) {
	first := session("alpha", "u1", day(2024, time.March, 1), resp("mission", ScoreRed, TrendStable))
	second := session("alpha", "u1", day(2024, time.September, 1), resp("mission", ScoreGreen, TrendStable))
	third := session("alpha", "u2", day(2025, time.February, 1), resp("mission", ScoreGreen, TrendStable))
	odd := session("alpha", "u3", day(2024, time.May, 1), resp("mission", ScoreYellow, TrendStable))
	odd.AssessmentPeriod = "Pilot"

	history := TeamHistory(alpha, []Session{third, odd, second, first}, testRegistry())
	require.Len(t, history, 4)

	assert.Equal(t, "2023 - 2nd Half", history[0].Period)
	assert.Empty(t, history[0].Change)
	assert.Equal(t, "2024 - 1st Half", history[1].Period)
	assert.Equal(t, TrendImproving, history[1].Change)
	assert.Equal(t, "2024 - 2nd Half", history[2].Period)
	assert.Equal(t, TrendStable, history[2].Change)
	assert.Equal(t, "Pilot", history[3].Period)
}

func TestKnownPeriods(t *testing.T) {
	sessions := []Session{
		session("alpha", "u1", day(2024, time.March, 1)),
		session("beta", "u1", day(2024, time.September, 1)),
		session("alpha", "u2", day(2024, time.March, 2)),
	}
	assert.Equal(t, []string{"2024 - 1st Half", "2023 - 2nd Half"}, KnownPeriods(sessions))
}

func TestRegistry(t *testing.T) {
	r := testRegistry()

	active := r.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "mission", active[0].ID)
	assert.Equal(t, "speed", active[1].ID)

	d, ok := r.Get("legacy")
	assert.True(t, ok)
	assert.False(t, d.IsActive)

	_, ok = r.Get("nope")
	assert.False(t, ok)
	assert.Equal(t, UnknownDimension("nope"), r.Resolve("nope"))

	assert.ErrorIs(t, Dimension{ID: "x", IsActive: true}.Validate(), ErrInvalidConfiguration)
	assert.NoError(t, Dimension{ID: "x"}.Validate())
}
