// Package healthcheck holds the squad health aggregation engine: assessment periods, team
// summaries, organization roll-ups and team visibility. Every function is pure and works on the
// registry, directory and sessions it is given.
package healthcheck

import "time"

// Score is the red/yellow/green answer of a single dimension.
type Score int

const (
	ScoreRed    Score = 1
	ScoreYellow Score = 2
	ScoreGreen  Score = 3
)

func (s Score) Valid() bool {
	return s >= ScoreRed && s <= ScoreGreen
}

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

func (t Trend) Valid() bool {
	switch t {
	case TrendImproving, TrendStable, TrendDeclining:
		return true
	}
	return false
}

type Cadence string

const (
	CadenceWeekly    Cadence = "weekly"
	CadenceBiweekly  Cadence = "biweekly"
	CadenceMonthly   Cadence = "monthly"
	CadenceQuarterly Cadence = "quarterly"
)

type Permissions struct {
	CanViewAllTeams    bool `json:"canViewAllTeams" bson:"canViewAllTeams"`
	CanEditTeams       bool `json:"canEditTeams" bson:"canEditTeams"`
	CanManageUsers     bool `json:"canManageUsers" bson:"canManageUsers"`
	CanConfigureSystem bool `json:"canConfigureSystem" bson:"canConfigureSystem"`
	CanViewReports     bool `json:"canViewReports" bson:"canViewReports"`
	CanExportData      bool `json:"canExportData" bson:"canExportData"`
}

// HierarchyLevel ranks start at 1 for the top of the organization.
type HierarchyLevel struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Rank              int         `json:"rank"`
	IsTeamMemberLevel bool        `json:"isTeamMemberLevel"`
	Permissions       Permissions `json:"permissions"`
}

type User struct {
	ID               string   `json:"id"`
	Username         string   `json:"username"`
	Name             string   `json:"name"`
	HierarchyLevelID string   `json:"hierarchyLevelId"`
	ReportsTo        string   `json:"reportsTo,omitempty"`
	TeamIDs          []string `json:"teamIds"`
	IsAdmin          bool     `json:"isAdmin"`
}

type SupervisorLink struct {
	UserID  string `json:"userId"`
	LevelID string `json:"levelId"`
}

// Team supervisor chains run from the team lead up to the top executive.
type Team struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Cadence         Cadence          `json:"cadence"`
	NextCheckDate   time.Time        `json:"nextCheckDate"`
	Members         []string         `json:"members"`
	SupervisorChain []SupervisorLink `json:"supervisorChain"`
}

func (t Team) SupervisedBy(userID string) bool {
	for _, link := range t.SupervisorChain {
		if link.UserID == userID {
			return true
		}
	}
	return false
}

func (t Team) HasMember(userID string) bool {
	for _, member := range t.Members {
		if member == userID {
			return true
		}
	}
	return false
}

type Response struct {
	DimensionID string `json:"dimensionId"`
	Score       Score  `json:"score"`
	Trend       Trend  `json:"trend"`
	Comment     string `json:"comment,omitempty"`
}

type Session struct {
	ID               string     `json:"id"`
	TeamID           string     `json:"teamId"`
	UserID           string     `json:"userId"`
	Date             time.Time  `json:"date"`
	AssessmentPeriod string     `json:"assessmentPeriod"`
	Responses        []Response `json:"responses"`
	Completed        bool       `json:"completed"`
}

// Period returns the stored assessment period, falling back to the one derived from the date.
func (s Session) Period() string {
	if s.AssessmentPeriod != "" {
		return s.AssessmentPeriod
	}
	return AssessmentPeriod(s.Date)
}

// calendarDay truncates to the UTC calendar date.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
