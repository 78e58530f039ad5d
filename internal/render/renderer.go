package render

import (
	"context"
	"io"
	"os"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/paperpress/paperpress/internal/config"
	"github.com/paperpress/paperpress/internal/fetch"
	"github.com/paperpress/paperpress/internal/storage"
	"github.com/paperpress/paperpress/pkg/logger"
	"github.com/paperpress/paperpress/pkg/metrics"
)

// Renderer drives render and preview jobs. It is shared between all jobs;
// each job owns its workspace exclusively.
type Renderer struct {
	cfg        *config.Config
	fetcher    *fetch.Client
	store      storage.Store
	reporter   *Reporter
	typesetter *Typesetter

	// uploads bounds the number of concurrent blocking object-store
	// operations (PDF uploads, workspace tarring) across all jobs.
	uploads *semaphore.Weighted

	log      zerolog.Logger
	logOut   io.Writer
	logLevel zerolog.Level
}

func NewRenderer(cfg *config.Config, store storage.Store, log zerolog.Logger, logOut io.Writer) *Renderer {
	return &Renderer{
		cfg:        cfg,
		fetcher:    fetch.NewClient(cfg.Render.MaxRedirects),
		store:      store,
		reporter:   NewReporter(),
		typesetter: &Typesetter{Binary: cfg.Render.TypesetterPath},
		uploads:    semaphore.NewWeighted(cfg.Render.WorkerPoolSize),
		log:        log,
		logOut:     logOut,
		logLevel:   logger.ParseLevel(cfg.LogLevel),
	}
}

// Preview fetches the template and returns its expansion. No workspace, no
// typesetter, no uploads, no callbacks.
func (r *Renderer) Preview(ctx context.Context, spec *DocumentSpec) (string, error) {
	tpl, err := r.fetchTemplate(ctx, spec.TemplateURL)
	if err != nil {
		return "", err
	}
	return Expand(tpl, spec.Variables, !spec.NoEscapeLatex)
}

// Render runs one job end to end: expand the template, download the assets,
// typeset, upload the PDF, presign and report — then archive the workspace
// as <key_prefix>/workspace.tar and remove it. It blocks until the job has
// fully settled; callers wanting fire-and-forget spawn it on a goroutine.
//
// Every job that gets past workspace creation terminates with exactly one
// callback attempt (success or failure) followed by one archive attempt.
func (r *Renderer) Render(ctx context.Context, spec *DocumentSpec) error {
	ws, err := NewWorkspace()
	if err != nil {
		// No workspace means no job log and no place to run; the callback
		// URL is left untouched.
		r.log.Error().Err(err).Msg("cannot create workspace")
		metrics.RendersTotal.WithLabelValues("failed").Inc()
		return err
	}
	defer ws.Close()

	keyPrefix := uuid.NewString()

	jobLog, logCloser, err := newJobLogger(r.logOut, r.logLevel, ws, keyPrefix)
	if err != nil {
		r.log.Error().Err(err).Msg("cannot create job log sink")
		r.reportFailure(ctx, r.log, spec.CallbackURL, err)
		r.uploadWorkspaceArchive(ctx, ws, keyPrefix, r.log)
		metrics.RendersTotal.WithLabelValues("failed").Inc()
		return err
	}
	defer logCloser.Close()

	jobLog.Debug().Interface("spec", spec).Msg("starting render job")

	presignedURL, renderErr := r.execute(ctx, spec, ws, jobLog, keyPrefix)
	if renderErr != nil {
		jobLog.Error().Err(renderErr).Msg("render failed")
		r.reportFailure(ctx, jobLog, spec.CallbackURL, renderErr)
		metrics.RendersTotal.WithLabelValues("failed").Inc()
	} else {
		status, cbErr := r.reporter.ReportSuccess(ctx, spec.CallbackURL, keyPrefix, presignedURL)
		logCallback(jobLog, status, cbErr)
		metrics.RendersTotal.WithLabelValues("succeeded").Inc()
	}

	// The archive is uploaded after the callback so it contains the job log
	// recorded up to this point. Archive errors are logged and swallowed.
	r.uploadWorkspaceArchive(ctx, ws, keyPrefix, jobLog)

	return renderErr
}

// execute covers pipeline steps 3-8: template, assets, typesetting, PDF
// upload and presign. Any error short-circuits to the failure callback.
func (r *Renderer) execute(ctx context.Context, spec *DocumentSpec, ws *Workspace, jobLog zerolog.Logger, keyPrefix string) (string, error) {
	templateFile := spec.TexFilename()
	templatePath := ws.Join(templateFile)

	tpl, err := r.fetchTemplate(ctx, spec.TemplateURL)
	if err != nil {
		return "", err
	}
	jobLog.Debug().Msg("successfully downloaded the template")

	expanded, err := Expand(tpl, spec.Variables, !spec.NoEscapeLatex)
	if err != nil {
		return "", err
	}

	jobLog.Debug().Str("path", templatePath).Msg("writing expanded template")
	if err := os.WriteFile(templatePath, []byte(expanded), 0o644); err != nil {
		return "", errors.Wrap(err, "write template")
	}

	if err := downloadAssets(ctx, r.fetcher, ws, spec.AssetsURLs, r.cfg.Render.MaxAssetSize, jobLog); err != nil {
		return "", err
	}

	jobLog.Debug().Str("template", templateFile).Msg("spawning typesetter")
	stdout, err := r.typesetter.Run(ctx, ws, templateFile)
	if err != nil {
		return "", err
	}
	jobLog.Debug().Msg(stdout)

	pdfKey := keyPrefix + "/" + spec.OutputFilename
	if err := r.putFile(ctx, pdfKey, ws.Join(spec.OutputFilename), "application/pdf", jobLog); err != nil {
		return "", errors.Wrap(err, "upload pdf")
	}

	presignedURL, err := r.store.Presign(ctx, pdfKey, r.cfg.Render.PresignExpiry)
	if err != nil {
		return "", errors.Wrap(err, "presign pdf")
	}
	return presignedURL, nil
}

func (r *Renderer) fetchTemplate(ctx context.Context, rawURL string) (string, error) {
	res, err := r.fetcher.GetFollowRedirect(ctx, rawURL)
	if err != nil {
		return "", err
	}
	if res.StatusCode/100 != 2 {
		res.Body.Close()
		return "", errors.Errorf("GET %s returned status %d", rawURL, res.StatusCode)
	}
	body, err := fetch.BodyBytesWithLimit(res, r.cfg.Render.MaxAssetSize)
	if err != nil {
		return "", errors.Wrapf(err, "fetch template %s", rawURL)
	}
	if !utf8.Valid(body) {
		return "", errors.Errorf("template at %s is not valid UTF-8", rawURL)
	}
	return string(body), nil
}

// putFile uploads a disk-backed object while holding a worker-pool slot.
func (r *Renderer) putFile(ctx context.Context, key, path, contentType string, jobLog zerolog.Logger) error {
	if err := r.uploads.Acquire(ctx, 1); err != nil {
		return err
	}
	defer r.uploads.Release(1)
	jobLog.Debug().Str("key", key).Msg("uploading object")
	return r.store.PutFile(ctx, key, path, contentType)
}

// uploadWorkspaceArchive tars the workspace and uploads it under
// <key_prefix>/workspace.tar. Failures are logged and swallowed.
func (r *Renderer) uploadWorkspaceArchive(ctx context.Context, ws *Workspace, keyPrefix string, jobLog zerolog.Logger) {
	if err := r.uploads.Acquire(ctx, 1); err != nil {
		jobLog.Error().Err(err).Msg("workspace archive upload aborted")
		return
	}
	defer r.uploads.Release(1)

	tarPath, err := tarWorkspace(ws)
	if err != nil {
		jobLog.Error().Err(err).Msg("failed to archive workspace")
		return
	}
	defer os.Remove(tarPath)

	key := keyPrefix + "/workspace.tar"
	jobLog.Debug().Str("key", key).Msg("uploading workspace archive")
	if err := r.store.PutFile(ctx, key, tarPath, "application/x-tar"); err != nil {
		jobLog.Error().Err(err).Msg("failed to upload workspace archive")
	}
}

func (r *Renderer) reportFailure(ctx context.Context, log zerolog.Logger, callbackURL string, jobErr error) {
	status, cbErr := r.reporter.ReportFailure(ctx, callbackURL, jobErr)
	logCallback(log, status, cbErr)
}

func logCallback(log zerolog.Logger, status int, err error) {
	if err != nil {
		metrics.CallbackFailures.Inc()
		log.Error().Err(err).Msg("callback POST failed")
		return
	}
	log.Info().Int("status", status).Msg("callback delivered")
}
