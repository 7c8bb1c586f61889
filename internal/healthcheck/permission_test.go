package healthcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teamIDs(teams []Team) []string {
	ids := make([]string, 0, len(teams))
	for _, t := range teams {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestVisibleTeams(t *testing.T) {
	dir := testDirectory()
	tests := []struct {
		user string
		want []string
	}{
		{user: "vp", want: []string{"alpha", "beta", "gamma", "orphan"}},
		{user: "director", want: []string{"alpha", "beta", "gamma"}},
		{user: "manager-a", want: []string{"alpha", "beta"}},
		{user: "manager-b", want: []string{"gamma"}},
		{user: "alice", want: []string{"alpha"}},
	}
	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			u, ok := dir.User(tt.user)
			require.True(t, ok)

			teams, err := VisibleTeams(u, dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, teamIDs(teams))
		})
	}
}

func TestVisibleTeamsFailsClosed(t *testing.T) {
	dir := testDirectory()

	ghost, _ := dir.User("ghost")
	teams, err := VisibleTeams(ghost, dir)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Empty(t, teams)

	ghost.IsAdmin = true
	teams, err = VisibleTeams(ghost, dir)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Empty(t, teams)
	assert.False(t, CanView(ghost, "alpha", dir))
}

func TestVisibleTeamsAdmin(t *testing.T) {
	dir := testDirectory()
	admin := User{ID: "root", HierarchyLevelID: "member", IsAdmin: true}

	teams, err := VisibleTeams(admin, dir)
	require.NoError(t, err)
	assert.Len(t, teams, 4)
	assert.True(t, HasPermission(admin, dir, func(p Permissions) bool { return p.CanExportData }))
}

func TestVisibleTeamsCycle(t *testing.T) {
	users := []User{
		{ID: "a", HierarchyLevelID: "manager", ReportsTo: "c"},
		{ID: "b", HierarchyLevelID: "manager", ReportsTo: "a"},
		{ID: "c", HierarchyLevelID: "manager", ReportsTo: "b"},
	}
	dir := NewDirectory(testLevels(), users, nil)
	_, err := VisibleTeams(users[0], dir)
	assert.ErrorIs(t, err, ErrHierarchyCycleDetected)
}

func TestCanView(t *testing.T) {
	dir := testDirectory()
	alice, _ := dir.User("alice")
	managerB, _ := dir.User("manager-b")

	assert.True(t, CanView(alice, "alpha", dir))
	assert.False(t, CanView(alice, "beta", dir))
	assert.True(t, CanView(managerB, "gamma", dir))
	assert.False(t, CanView(managerB, "alpha", dir))
}

func TestHasPermission(t *testing.T) {
	dir := testDirectory()
	vp, _ := dir.User("vp")
	alice, _ := dir.User("alice")
	ghost, _ := dir.User("ghost")
	canExport := func(p Permissions) bool { return p.CanExportData }

	assert.True(t, HasPermission(vp, dir, canExport))
	assert.False(t, HasPermission(alice, dir, canExport))
	assert.False(t, HasPermission(ghost, dir, canExport))
}
