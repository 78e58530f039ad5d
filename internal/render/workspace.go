package render

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// Workspace is a job-unique scratch directory. Every per-job file lives
// inside it, and the pipeline keeps it alive until the final archive upload
// has settled. Close removes the tree; calling it more than once is safe and
// removes it exactly once.
type Workspace struct {
	Path string

	once sync.Once
}

func NewWorkspace() (*Workspace, error) {
	dir, err := os.MkdirTemp("", "paperpress-")
	if err != nil {
		return nil, errors.Wrap(err, "create workspace")
	}
	return &Workspace{Path: dir}, nil
}

// Join resolves a filename inside the workspace.
func (w *Workspace) Join(name string) string {
	return filepath.Join(w.Path, name)
}

func (w *Workspace) Close() error {
	var err error
	w.once.Do(func() {
		err = os.RemoveAll(w.Path)
	})
	return err
}
