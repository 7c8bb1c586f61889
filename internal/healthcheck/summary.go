package healthcheck

import (
	"sort"
	"time"
)

// TrendThreshold is the minimum change of the overall score between two periods that counts as
// improving or declining.
const TrendThreshold = 0.1

type Distribution struct {
	Red    int `json:"red"`
	Yellow int `json:"yellow"`
	Green  int `json:"green"`
}

func (d Distribution) Total() int {
	return d.Red + d.Yellow + d.Green
}

type DimensionSummary struct {
	DimensionID   string       `json:"dimensionId"`
	DimensionName string       `json:"dimensionName"`
	AverageScore  float64      `json:"averageScore"`
	HasData       bool         `json:"hasData"`
	Distribution  Distribution `json:"distribution"`
	Trend         Trend        `json:"trend,omitempty"`
}

type TeamHealthSummary struct {
	TeamID           string             `json:"teamId"`
	TeamName         string             `json:"teamName"`
	Date             time.Time          `json:"date"`
	AssessmentPeriod string             `json:"assessmentPeriod"`
	Respondents      int                `json:"respondents"`
	OverallScore     float64            `json:"overallScore"`
	HasData          bool               `json:"hasData"`
	HealthPercentage float64            `json:"healthPercentage"`
	Dimensions       []DimensionSummary `json:"dimensions"`
}

// TrendTally counts the summarized dimension trends.
type TrendTally struct {
	Improving int `json:"improving"`
	Stable    int `json:"stable"`
	Declining int `json:"declining"`
}

func (t TrendTally) Add(o TrendTally) TrendTally {
	return TrendTally{
		Improving: t.Improving + o.Improving,
		Stable:    t.Stable + o.Stable,
		Declining: t.Declining + o.Declining,
	}
}

func (t *TrendTally) count(trend Trend) {
	switch trend {
	case TrendImproving:
		t.Improving++
	case TrendStable:
		t.Stable++
	case TrendDeclining:
		t.Declining++
	}
}

func (s *TeamHealthSummary) Trends() TrendTally {
	var tally TrendTally
	if s == nil {
		return tally
	}
	for _, d := range s.Dimensions {
		if d.HasData {
			tally.count(d.Trend)
		}
	}
	return tally
}

// SummarizeTeam reduces the latest submission wave of a team to per-dimension averages. It
// returns nil when no completed session matches, never a summary of zeros.
func SummarizeTeam(team Team, sessions []Session, dims *Registry, periodFilter string) *TeamHealthSummary {
	matching := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if !s.Completed || s.TeamID != team.ID {
			continue
		}
		if periodFilter != "" && s.Period() != periodFilter {
			continue
		}
		matching = append(matching, s)
	}
	if len(matching) == 0 {
		return nil
	}

	batch, day := latestBatch(matching)
	summary := &TeamHealthSummary{
		TeamID:           team.ID,
		TeamName:         team.Name,
		Date:             day,
		AssessmentPeriod: batch[0].Period(),
		Respondents:      len(batch),
	}

	var weighted, weights float64
	for _, dim := range dims.Active() {
		ds := summarizeDimension(dim, batch)
		summary.Dimensions = append(summary.Dimensions, ds)
		if ds.HasData {
			weighted += ds.AverageScore * dim.Weight
			weights += dim.Weight
		}
	}
	if weights > 0 {
		summary.OverallScore = weighted / weights
		summary.HasData = true
		summary.HealthPercentage = HealthPercentage(summary.OverallScore)
	}
	return summary
}

func summarizeDimension(dim Dimension, batch []Session) DimensionSummary {
	ds := DimensionSummary{DimensionID: dim.ID, DimensionName: dim.Name}
	sum, count := 0, 0
	for _, s := range batch {
		for _, r := range s.Responses {
			if r.DimensionID != dim.ID || !r.Score.Valid() {
				continue
			}
			if count == 0 {
				// first match wins; see DESIGN.md open questions
				ds.Trend = r.Trend
			}
			sum += int(r.Score)
			count++
			switch r.Score {
			case ScoreRed:
				ds.Distribution.Red++
			case ScoreYellow:
				ds.Distribution.Yellow++
			case ScoreGreen:
				ds.Distribution.Green++
			}
		}
	}
	if count > 0 {
		ds.AverageScore = float64(sum) / float64(count)
		ds.HasData = true
	}
	return ds
}

// latestBatch keeps the sessions sharing the maximum calendar date, in input order.
func latestBatch(sessions []Session) ([]Session, time.Time) {
	var latest time.Time
	for i, s := range sessions {
		day := calendarDay(s.Date)
		if i == 0 || day.After(latest) {
			latest = day
		}
	}
	batch := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if calendarDay(s.Date).Equal(latest) {
			batch = append(batch, s)
		}
	}
	return batch, latest
}

// HealthPercentage maps an average on the 1..3 scale onto 0..100.
func HealthPercentage(avg float64) float64 {
	p := (avg - 1) / 2 * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func ClassifyTrend(previous, current float64) Trend {
	delta := current - previous
	switch {
	case delta >= TrendThreshold:
		return TrendImproving
	case delta <= -TrendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

type PeriodSummary struct {
	Period  string             `json:"period"`
	Summary *TeamHealthSummary `json:"summary"`
	// Change is empty for the first period with data.
	Change Trend `json:"change,omitempty"`
}

// TeamHistory summarizes every assessment period of a team, oldest first. Periods that cannot be
// parsed are kept but placed after the ordered ones.
func TeamHistory(team Team, sessions []Session, dims *Registry) []PeriodSummary {
	seen := map[string]struct{}{}
	var valid, invalid []string
	for _, s := range sessions {
		if !s.Completed || s.TeamID != team.ID {
			continue
		}
		p := s.Period()
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		if _, ok := ParseAssessmentPeriod(p); ok {
			valid = append(valid, p)
		} else {
			invalid = append(invalid, p)
		}
	}
	sort.SliceStable(valid, func(i, j int) bool {
		return CompareAssessmentPeriods(valid[i], valid[j]) < 0
	})

	history := make([]PeriodSummary, 0, len(valid)+len(invalid))
	var previous *TeamHealthSummary
	for _, p := range append(valid, invalid...) {
		summary := SummarizeTeam(team, sessions, dims, p)
		if summary == nil {
			continue
		}
		entry := PeriodSummary{Period: p, Summary: summary}
		if previous != nil && previous.HasData && summary.HasData {
			entry.Change = ClassifyTrend(previous.OverallScore, summary.OverallScore)
		}
		history = append(history, entry)
		previous = summary
	}
	return history
}

// KnownPeriods lists the distinct parseable periods of the given sessions, newest first.
func KnownPeriods(sessions []Session) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, s := range sessions {
		p := s.Period()
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		if _, ok := ParseAssessmentPeriod(p); ok {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return CompareAssessmentPeriods(out[i], out[j]) > 0
	})
	return out
}
