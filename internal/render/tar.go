package render

import (
	"archive/tar"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// tarWorkspace archives the workspace tree into a spill file outside the
// workspace and returns its path. The caller removes the file after the
// upload. Keeping the archive on disk bounds memory for large jobs.
func tarWorkspace(ws *Workspace) (string, error) {
	f, err := os.CreateTemp("", "paperpress-archive-*.tar")
	if err != nil {
		return "", errors.Wrap(err, "create archive file")
	}

	tw := tar.NewWriter(f)
	walkErr := filepath.WalkDir(ws.Path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(ws.Path, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		src, err := os.Open(p)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(tw, src)
		return err
	})

	if walkErr == nil {
		walkErr = tw.Close()
	} else {
		tw.Close()
	}
	if closeErr := f.Close(); walkErr == nil {
		walkErr = closeErr
	}
	if walkErr != nil {
		os.Remove(f.Name())
		return "", errors.Wrap(walkErr, "archive workspace")
	}
	return f.Name(), nil
}
