package healthcheck

import "time"

var (
	mission = Dimension{ID: "mission", Name: "Mission", IsActive: true, Weight: 1}
	speed   = Dimension{ID: "speed", Name: "Speed", IsActive: true, Weight: 1}
	legacy  = Dimension{ID: "legacy", Name: "Legacy", IsActive: false, Weight: 1}
)

func testRegistry() *Registry {
	return NewRegistry([]Dimension{mission, speed, legacy})
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func session(teamID, userID string, date time.Time, responses ...Response) Session {
	return Session{
		ID:        teamID + "-" + userID + "-" + date.Format(time.DateOnly),
		TeamID:    teamID,
		UserID:    userID,
		Date:      date,
		Responses: responses,
		Completed: true,
	}
}

func resp(dimensionID string, score Score, trend Trend) Response {
	return Response{DimensionID: dimensionID, Score: score, Trend: trend}
}

func testLevels() []HierarchyLevel {
	return []HierarchyLevel{
		{ID: "vp", Name: "VP", Rank: 1, Permissions: Permissions{CanViewAllTeams: true, CanViewReports: true, CanExportData: true}},
		{ID: "director", Name: "Director", Rank: 2, Permissions: Permissions{CanViewReports: true}},
		{ID: "manager", Name: "Manager", Rank: 3, Permissions: Permissions{CanViewReports: true}},
		{ID: "member", Name: "Team Member", Rank: 4, IsTeamMemberLevel: true},
	}
}

// testDirectory: vp <- director <- {manager-a, manager-b}; manager-a leads alpha and beta,
// manager-b leads gamma.
func testDirectory() *Directory {
	users := []User{
		{ID: "vp", HierarchyLevelID: "vp"},
		{ID: "director", HierarchyLevelID: "director", ReportsTo: "vp"},
		{ID: "manager-a", HierarchyLevelID: "manager", ReportsTo: "director"},
		{ID: "manager-b", HierarchyLevelID: "manager", ReportsTo: "director"},
		{ID: "alice", HierarchyLevelID: "member", ReportsTo: "manager-a", TeamIDs: []string{"alpha"}},
		{ID: "bob", HierarchyLevelID: "member", ReportsTo: "manager-a", TeamIDs: []string{"beta"}},
		{ID: "carol", HierarchyLevelID: "member", ReportsTo: "manager-b", TeamIDs: []string{"gamma"}},
		{ID: "ghost", HierarchyLevelID: "missing"},
	}
	chain := func(manager string) []SupervisorLink {
		return []SupervisorLink{
			{UserID: manager, LevelID: "manager"},
			{UserID: "director", LevelID: "director"},
			{UserID: "vp", LevelID: "vp"},
		}
	}
	teams := []Team{
		{ID: "alpha", Name: "Alpha", Members: []string{"alice", "dave"}, SupervisorChain: chain("manager-a")},
		{ID: "beta", Name: "Beta", Members: []string{"bob"}, SupervisorChain: chain("manager-a")},
		{ID: "gamma", Name: "Gamma", Members: []string{"carol", "erin", "frank"}, SupervisorChain: chain("manager-b")},
		{ID: "orphan", Name: "Orphan", Members: []string{"zed"}},
	}
	return NewDirectory(testLevels(), users, teams)
}
