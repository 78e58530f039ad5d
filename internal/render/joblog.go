package render

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// jobLogFilename is the per-job log inside the workspace; it ends up in the
// workspace.tar post-mortem archive.
const jobLogFilename = "logs.txt"

// newJobLogger duplicates the service log into <workspace>/logs.txt. The
// file sink records everything down to debug; the root sink keeps filtering
// at the service level. The returned closer owns the log file.
func newJobLogger(root io.Writer, rootLevel zerolog.Level, ws *Workspace, keyPrefix string) (zerolog.Logger, io.Closer, error) {
	f, err := os.Create(ws.Join(jobLogFilename))
	if err != nil {
		return zerolog.Nop(), nil, errors.Wrap(err, "create job log sink")
	}
	rootSink := &zerolog.FilteredLevelWriter{
		Writer: zerolog.LevelWriterAdapter{Writer: root},
		Level:  rootLevel,
	}
	sink := zerolog.MultiLevelWriter(rootSink, f)
	log := zerolog.New(sink).Level(zerolog.DebugLevel).With().
		Timestamp().
		Str("job", keyPrefix).
		Logger()
	return log, f, nil
}
