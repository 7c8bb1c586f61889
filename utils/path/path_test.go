package path

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootPathFromEnv(t *testing.T) {
	t.Setenv("APP_ROOT", "/srv/squadhealth/")
	assert.Equal(t, "/srv/squadhealth", RootPath())
}

func TestFindUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "internal", "service")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module x\n"), 0o600))

	found, ok := findUp(nested, "go.mod")
	require.True(t, ok)
	assert.Equal(t, root, found)

	_, ok = findUp(nested, "no-such-marker")
	assert.False(t, ok)
}
