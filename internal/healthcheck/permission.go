package healthcheck

import "fmt"

// VisibleTeams resolves the teams a user may read. A user whose hierarchy level cannot be
// resolved sees nothing, even when flagged as admin.
func VisibleTeams(user User, dir *Directory) ([]Team, error) {
	level, ok := dir.LevelOf(user)
	if !ok {
		return []Team{}, fmt.Errorf("%w: user %s has no resolvable hierarchy level", ErrPermissionDenied, user.ID)
	}
	if user.IsAdmin || level.Permissions.CanViewAllTeams {
		return dir.Teams(), nil
	}

	subordinates, err := dir.Subordinates(user.ID)
	if err != nil {
		return []Team{}, err
	}
	supervisors := make(map[string]struct{}, len(subordinates)+1)
	supervisors[user.ID] = struct{}{}
	for _, s := range subordinates {
		supervisors[s.ID] = struct{}{}
	}

	visible := []Team{}
	for _, t := range dir.Teams() {
		if t.HasMember(user.ID) || memberOf(user, t.ID) || chainContainsAny(t, supervisors) {
			visible = append(visible, t)
		}
	}
	return visible, nil
}

// CanView reports whether teamID is among the user's visible teams. Any resolution error denies.
func CanView(user User, teamID string, dir *Directory) bool {
	teams, err := VisibleTeams(user, dir)
	if err != nil {
		return false
	}
	for _, t := range teams {
		if t.ID == teamID {
			return true
		}
	}
	return false
}

// HasPermission checks a level permission. Admins pass every check; unresolved levels fail.
func HasPermission(user User, dir *Directory, check func(Permissions) bool) bool {
	level, ok := dir.LevelOf(user)
	if !ok {
		return false
	}
	return user.IsAdmin || check(level.Permissions)
}

func memberOf(user User, teamID string) bool {
	for _, id := range user.TeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}

func chainContainsAny(t Team, users map[string]struct{}) bool {
	for _, link := range t.SupervisorChain {
		if _, ok := users[link.UserID]; ok {
			return true
		}
	}
	return false
}
