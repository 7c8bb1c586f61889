package healthcheck

import (
	"fmt"
	"time"
)

// DefaultCompletionWindow bounds the sessions counted as "recent" when approximating participation.
const DefaultCompletionWindow = 30 * 24 * time.Hour

type TreeOptions struct {
	Now              func() time.Time
	CompletionWindow time.Duration
	// PeriodFilter restricts team summaries to one assessment period. Empty means latest wave.
	PeriodFilter string
}

func (o TreeOptions) withDefaults() TreeOptions {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.CompletionWindow <= 0 {
		o.CompletionWindow = DefaultCompletionWindow
	}
	return o
}

type NodeMetrics struct {
	AvgHealth float64 `json:"avgHealth"`
	// HealthSamples is the number of subtree teams with data. Zero means AvgHealth is meaningless.
	HealthSamples   int                `json:"healthSamples"`
	TotalTeams      int                `json:"totalTeams"`
	TotalMembers    int                `json:"totalMembers"`
	CompletionRate  float64            `json:"completionRate"`
	Trends          TrendTally         `json:"trends"`
	DimensionScores map[string]float64 `json:"dimensionScores"`
}

type OrganizationNode struct {
	User     User                `json:"user"`
	Level    HierarchyLevel      `json:"level"`
	Children []*OrganizationNode `json:"children"`
	Teams    []Team              `json:"teams"`
	Metrics  NodeMetrics         `json:"metrics"`
}

// Walk visits the node and its descendants depth first, parents before children.
func (n *OrganizationNode) Walk(fn func(node *OrganizationNode, depth int)) {
	n.walk(fn, 0)
}

func (n *OrganizationNode) walk(fn func(node *OrganizationNode, depth int), depth int) {
	if n == nil {
		return
	}
	fn(n, depth)
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// treeBuilder memoizes the per-team work shared by every node of one tree.
type treeBuilder struct {
	dir       *Directory
	dims      *Registry
	opts      TreeOptions
	byTeam    map[string][]Session
	summaries map[string]*TeamHealthSummary
	visited   map[string]struct{}
	since     time.Time
	now       time.Time
}

// BuildOrgTree rolls team health up the reports-to tree below rootUserID. Children are built
// before their parent, and a team supervised from several places in one subtree is counted once.
func BuildOrgTree(rootUserID string, dir *Directory, dims *Registry, sessions []Session, opts TreeOptions) (*OrganizationNode, error) {
	opts = opts.withDefaults()
	now := opts.Now()
	b := &treeBuilder{
		dir:       dir,
		dims:      dims,
		opts:      opts,
		byTeam:    make(map[string][]Session),
		summaries: make(map[string]*TeamHealthSummary),
		visited:   make(map[string]struct{}),
		now:       now,
		since:     now.Add(-opts.CompletionWindow),
	}
	for _, s := range sessions {
		b.byTeam[s.TeamID] = append(b.byTeam[s.TeamID], s)
	}
	node, _, err := b.build(rootUserID)
	if err != nil {
		return nil, err
	}
	return node, nil
}

func (b *treeBuilder) build(userID string) (*OrganizationNode, []string, error) {
	if _, seen := b.visited[userID]; seen {
		return nil, nil, fmt.Errorf("%w: user %s visited twice", ErrHierarchyCycleDetected, userID)
	}
	b.visited[userID] = struct{}{}

	user, ok := b.dir.User(userID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	level, ok := b.dir.LevelOf(user)
	if !ok {
		return nil, nil, fmt.Errorf("%w: hierarchy level %s of user %s", ErrNotFound, user.HierarchyLevelID, userID)
	}

	seen := map[string]struct{}{}
	var subtree []string
	addTeam := func(id string) {
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		subtree = append(subtree, id)
	}

	reports := b.dir.DirectReports(userID)
	children := make([]*OrganizationNode, 0, len(reports))
	for _, report := range reports {
		child, childTeams, err := b.build(report.ID)
		if err != nil {
			return nil, nil, err
		}
		if child.Level.Rank <= level.Rank {
			return nil, nil, fmt.Errorf("%w: %s (rank %d) reports to %s (rank %d)",
				ErrHierarchyIntegrity, child.User.ID, child.Level.Rank, userID, level.Rank)
		}
		children = append(children, child)
		for _, id := range childTeams {
			addTeam(id)
		}
	}

	own := b.dir.TeamsSupervisedBy(userID)
	for _, t := range own {
		addTeam(t.ID)
	}

	return &OrganizationNode{
		User:     user,
		Level:    level,
		Children: children,
		Teams:    own,
		Metrics:  b.metrics(subtree),
	}, subtree, nil
}

func (b *treeBuilder) summary(team Team) *TeamHealthSummary {
	if s, ok := b.summaries[team.ID]; ok {
		return s
	}
	s := SummarizeTeam(team, b.byTeam[team.ID], b.dims, b.opts.PeriodFilter)
	b.summaries[team.ID] = s
	return s
}

func (b *treeBuilder) metrics(teamIDs []string) NodeMetrics {
	m := NodeMetrics{DimensionScores: map[string]float64{}}
	var healthSum float64
	dimSum := map[string]float64{}
	dimCount := map[string]int{}
	completed := 0

	for _, id := range teamIDs {
		team, ok := b.dir.Team(id)
		if !ok {
			continue
		}
		m.TotalTeams++
		m.TotalMembers += len(team.Members)
		completed += b.recentSubmitters(team)

		s := b.summary(team)
		if s == nil || !s.HasData {
			continue
		}
		healthSum += s.OverallScore
		m.HealthSamples++
		m.Trends = m.Trends.Add(s.Trends())
		for _, d := range s.Dimensions {
			if d.HasData {
				dimSum[d.DimensionID] += d.AverageScore
				dimCount[d.DimensionID]++
			}
		}
	}

	if m.HealthSamples > 0 {
		m.AvgHealth = healthSum / float64(m.HealthSamples)
	}
	for id, sum := range dimSum {
		m.DimensionScores[id] = sum / float64(dimCount[id])
	}
	if m.TotalMembers > 0 {
		m.CompletionRate = float64(completed) / float64(m.TotalMembers)
		if m.CompletionRate > 1 {
			m.CompletionRate = 1
		}
	}
	return m
}

// recentSubmitters counts distinct users with a completed session for the team inside the window.
func (b *treeBuilder) recentSubmitters(team Team) int {
	users := map[string]struct{}{}
	for _, s := range b.byTeam[team.ID] {
		if !s.Completed || s.Date.Before(b.since) || s.Date.After(b.now) {
			continue
		}
		users[s.UserID] = struct{}{}
	}
	return len(users)
}
