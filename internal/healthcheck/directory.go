package healthcheck

import "fmt"

// Directory indexes one snapshot of the organization: levels, users and teams. It is built per
// request and never mutated afterwards.
type Directory struct {
	levels  []HierarchyLevel
	users   []User
	teams   []Team
	levelBy map[string]int
	userBy  map[string]int
	teamBy  map[string]int
	reports map[string][]string
}

func NewDirectory(levels []HierarchyLevel, users []User, teams []Team) *Directory {
	d := &Directory{
		levels:  append([]HierarchyLevel(nil), levels...),
		users:   append([]User(nil), users...),
		teams:   append([]Team(nil), teams...),
		levelBy: make(map[string]int, len(levels)),
		userBy:  make(map[string]int, len(users)),
		teamBy:  make(map[string]int, len(teams)),
		reports: make(map[string][]string),
	}
	for i, l := range d.levels {
		d.levelBy[l.ID] = i
	}
	for i, u := range d.users {
		d.userBy[u.ID] = i
		if u.ReportsTo != "" {
			d.reports[u.ReportsTo] = append(d.reports[u.ReportsTo], u.ID)
		}
	}
	for i, t := range d.teams {
		d.teamBy[t.ID] = i
	}
	return d
}

func (d *Directory) Levels() []HierarchyLevel { return append([]HierarchyLevel(nil), d.levels...) }
func (d *Directory) Users() []User            { return append([]User(nil), d.users...) }
func (d *Directory) Teams() []Team            { return append([]Team(nil), d.teams...) }

func (d *Directory) Level(id string) (HierarchyLevel, bool) {
	i, ok := d.levelBy[id]
	if !ok {
		return HierarchyLevel{}, false
	}
	return d.levels[i], true
}

func (d *Directory) User(id string) (User, bool) {
	i, ok := d.userBy[id]
	if !ok {
		return User{}, false
	}
	return d.users[i], true
}

func (d *Directory) Team(id string) (Team, bool) {
	i, ok := d.teamBy[id]
	if !ok {
		return Team{}, false
	}
	return d.teams[i], true
}

// LevelOf resolves the hierarchy level of a user.
func (d *Directory) LevelOf(u User) (HierarchyLevel, bool) {
	return d.Level(u.HierarchyLevelID)
}

// DirectReports returns users whose ReportsTo is id, in directory order.
func (d *Directory) DirectReports(id string) []User {
	ids := d.reports[id]
	out := make([]User, 0, len(ids))
	for _, uid := range ids {
		out = append(out, d.users[d.userBy[uid]])
	}
	return out
}

// Subordinates walks ReportsTo edges downwards breadth first. A user reached twice means the
// edges form a cycle.
func (d *Directory) Subordinates(id string) ([]User, error) {
	visited := map[string]struct{}{id: {}}
	queue := []string{id}
	var out []User
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range d.DirectReports(current) {
			if _, seen := visited[child.ID]; seen {
				return nil, fmt.Errorf("%w: user %s is reachable twice below %s", ErrHierarchyCycleDetected, child.ID, id)
			}
			visited[child.ID] = struct{}{}
			out = append(out, child)
			queue = append(queue, child.ID)
		}
	}
	return out, nil
}

// IsSuperiorOf reports whether managerID appears on the ReportsTo path above userID.
func (d *Directory) IsSuperiorOf(managerID, userID string) (bool, error) {
	visited := map[string]struct{}{}
	current, ok := d.User(userID)
	for ok && current.ReportsTo != "" {
		if _, seen := visited[current.ID]; seen {
			return false, fmt.Errorf("%w: reports-to chain of %s loops", ErrHierarchyCycleDetected, userID)
		}
		visited[current.ID] = struct{}{}
		if current.ReportsTo == managerID {
			return true, nil
		}
		current, ok = d.User(current.ReportsTo)
	}
	return false, nil
}

func (d *Directory) TeamsSupervisedBy(userID string) []Team {
	var out []Team
	for _, t := range d.teams {
		if t.SupervisedBy(userID) {
			out = append(out, t)
		}
	}
	return out
}

func (d *Directory) TeamMemberLevel() (HierarchyLevel, bool) {
	for _, l := range d.levels {
		if l.IsTeamMemberLevel {
			return l, true
		}
	}
	return HierarchyLevel{}, false
}

// ValidateLevels checks that ranks are positive and unique and that exactly one level is the team
// member level.
func ValidateLevels(levels []HierarchyLevel) error {
	ranks := map[int]string{}
	memberLevels := 0
	for _, l := range levels {
		if l.Rank < 1 {
			return fmt.Errorf("%w: level %q has rank %d", ErrInvalidConfiguration, l.ID, l.Rank)
		}
		if other, dup := ranks[l.Rank]; dup {
			return fmt.Errorf("%w: levels %q and %q share rank %d", ErrInvalidConfiguration, other, l.ID, l.Rank)
		}
		ranks[l.Rank] = l.ID
		if l.IsTeamMemberLevel {
			memberLevels++
		}
	}
	if memberLevels != 1 {
		return fmt.Errorf("%w: expected exactly one team member level, got %d", ErrInvalidConfiguration, memberLevels)
	}
	return nil
}

// ValidateReportsTo checks that a manager sits strictly higher in the organization than the user.
func (d *Directory) ValidateReportsTo(u User) error {
	if u.ReportsTo == "" {
		return nil
	}
	if u.ReportsTo == u.ID {
		return fmt.Errorf("%w: user %s reports to itself", ErrHierarchyCycleDetected, u.ID)
	}
	manager, ok := d.User(u.ReportsTo)
	if !ok {
		return fmt.Errorf("%w: manager %s of user %s", ErrNotFound, u.ReportsTo, u.ID)
	}
	level, ok := d.LevelOf(u)
	if !ok {
		return fmt.Errorf("%w: level %s of user %s", ErrNotFound, u.HierarchyLevelID, u.ID)
	}
	managerLevel, ok := d.LevelOf(manager)
	if !ok {
		return fmt.Errorf("%w: level %s of user %s", ErrNotFound, manager.HierarchyLevelID, manager.ID)
	}
	if managerLevel.Rank >= level.Rank {
		return fmt.Errorf("%w: %s (rank %d) reports to %s (rank %d)",
			ErrHierarchyIntegrity, u.ID, level.Rank, manager.ID, managerLevel.Rank)
	}
	return nil
}
