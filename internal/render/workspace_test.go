package render

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceLifecycle(t *testing.T) {
	ws, err := NewWorkspace()
	require.NoError(t, err)

	info, err := os.Stat(ws.Path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	require.NoError(t, os.WriteFile(ws.Join("a.txt"), []byte("x"), 0o644))

	require.NoError(t, ws.Close())
	_, err = os.Stat(ws.Path)
	assert.True(t, os.IsNotExist(err))

	// closing again is a no-op
	require.NoError(t, ws.Close())
}

func TestWorkspacesAreUnique(t *testing.T) {
	a, err := NewWorkspace()
	require.NoError(t, err)
	defer a.Close()
	b, err := NewWorkspace()
	require.NoError(t, err)
	defer b.Close()

	assert.NotEqual(t, a.Path, b.Path)
}
