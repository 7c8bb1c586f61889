package healthcheck

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessmentPeriodBoundary(t *testing.T) {
	for _, year := range []int{1999, 2020, 2024, 2025} {
		lastOfJune := time.Date(year, time.June, 30, 23, 59, 59, 0, time.UTC)
		firstOfJuly := time.Date(year, time.July, 1, 0, 0, 0, 0, time.UTC)

		assert.Equal(t, Period{Year: year - 1, Half: SecondHalf}.String(), AssessmentPeriod(lastOfJune))
		assert.Equal(t, Period{Year: year, Half: FirstHalf}.String(), AssessmentPeriod(firstOfJuly))
	}
	assert.Equal(t, "2023 - 2nd Half", AssessmentPeriod(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024 - 1st Half", AssessmentPeriod(time.Date(2024, time.December, 31, 12, 0, 0, 0, time.UTC)))
}

func TestAssessmentPeriodRoundTrip(t *testing.T) {
	start := time.Date(2022, time.January, 1, 7, 30, 0, 0, time.UTC)
	for d := start; d.Year() < 2025; d = d.AddDate(0, 0, 1) {
		label := AssessmentPeriod(d)
		p, ok := ParseAssessmentPeriod(label)
		require.True(t, ok, label)

		want := Period{Year: d.Year(), Half: FirstHalf}
		if d.Month() <= time.June {
			want = Period{Year: d.Year() - 1, Half: SecondHalf}
		}
		assert.Equal(t, want, p, d.Format(time.DateOnly))
	}
}

func TestAssessmentPeriodPadsEarlyYears(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(1000, time.March, 1, 0, 0, 0, 0, time.UTC), "0999 - 2nd Half"},
		{time.Date(1000, time.July, 1, 0, 0, 0, 0, time.UTC), "1000 - 1st Half"},
		{time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC), "0000 - 2nd Half"},
	}
	for _, tt := range tests {
		label := AssessmentPeriod(tt.date)
		assert.Equal(t, tt.want, label)

		p, ok := ParseAssessmentPeriod(label)
		require.True(t, ok, label)
		assert.Equal(t, label, p.String())
	}
}

func TestCurrentAssessmentPeriod(t *testing.T) {
	now := func() time.Time { return time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC) }
	assert.Equal(t, "2024 - 2nd Half", CurrentAssessmentPeriod(now))
	assert.NotEmpty(t, CurrentAssessmentPeriod(nil))
}

func TestParseAssessmentPeriodRejectsMalformed(t *testing.T) {
	for _, label := range []string{
		"",
		"2024",
		"2024 - 3rd Half",
		"2024-1st Half",
		"24 - 1st Half",
		" 2024 - 1st Half",
		"2024 - 1st half",
	} {
		_, ok := ParseAssessmentPeriod(label)
		assert.False(t, ok, label)
	}

	p, ok := ParseAssessmentPeriod("2024 - 2nd Half")
	require.True(t, ok)
	assert.Equal(t, Period{Year: 2024, Half: SecondHalf}, p)
}

func TestCompareAssessmentPeriods(t *testing.T) {
	assert.Negative(t, CompareAssessmentPeriods("2024 - 1st Half", "2024 - 2nd Half"))
	assert.Positive(t, CompareAssessmentPeriods("2025 - 1st Half", "2024 - 2nd Half"))
	assert.Zero(t, CompareAssessmentPeriods("2024 - 1st Half", "2024 - 1st Half"))
	assert.Zero(t, CompareAssessmentPeriods("garbage", "2024 - 1st Half"))
	assert.Zero(t, CompareAssessmentPeriods("2024 - 1st Half", ""))
}

func TestCompareAssessmentPeriodsIsTransitive(t *testing.T) {
	var labels []string
	for y := 2020; y <= 2023; y++ {
		labels = append(labels, Period{Year: y, Half: FirstHalf}.String(), Period{Year: y, Half: SecondHalf}.String())
	}
	for _, a := range labels {
		for _, b := range labels {
			assert.Equal(t, -sign(CompareAssessmentPeriods(a, b)), sign(CompareAssessmentPeriods(b, a)), "%s vs %s", a, b)
			for _, c := range labels {
				if CompareAssessmentPeriods(a, b) < 0 && CompareAssessmentPeriods(b, c) < 0 {
					assert.Negative(t, CompareAssessmentPeriods(a, c), "%s < %s < %s", a, b, c)
				}
			}
		}
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
