package render

import (
	"context"
	"os/exec"

	"github.com/pkg/errors"
)

// Typesetter runs the external typesetter against a workspace.
type Typesetter struct {
	// Binary is the typesetter executable; empty means "xelatex".
	Binary string
}

// Run invokes the typesetter on templateFile with the workspace as working
// directory. Stdout is returned in the success and the non-zero-exit case
// alike, since xelatex reports its errors there.
func (t *Typesetter) Run(ctx context.Context, ws *Workspace, templateFile string) (string, error) {
	bin := t.Binary
	if bin == "" {
		bin = "xelatex"
	}
	cmd := exec.CommandContext(ctx, bin,
		"-interaction=nonstopmode",
		"-file-line-error",
		"-shell-restricted",
		templateFile,
	)
	cmd.Dir = ws.Path
	out, err := cmd.Output()
	stdout := string(out)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout, &TypesetError{Stdout: stdout}
		}
		return stdout, errors.Wrap(err, "spawn typesetter")
	}
	return stdout, nil
}
