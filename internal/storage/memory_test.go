package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorePutAndPresign(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.pdf")
	require.NoError(t, os.WriteFile(path, []byte("pdf bytes"), 0o644))

	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.PutFile(ctx, "job-1/out.pdf", path, "application/pdf"))

	data, ok := s.Object("job-1/out.pdf")
	require.True(t, ok)
	assert.Equal(t, []byte("pdf bytes"), data)

	url, err := s.Presign(ctx, "job-1/out.pdf", 0)
	require.NoError(t, err)
	assert.Contains(t, url, "job-1/out.pdf")
}

func TestMemoryStorePresignUnknownKey(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Presign(context.Background(), "missing", 0)
	assert.Error(t, err)
}
