package render

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// Reporter posts job outcomes to the caller's callback URL as
// multipart/form-data. Callbacks are fire-and-forget: the pipeline logs the
// response status but never changes course because of it.
type Reporter struct {
	client *http.Client
}

func NewReporter() *Reporter {
	return &Reporter{client: &http.Client{Timeout: 30 * time.Second}}
}

// ReportSuccess posts the presigned URL under the "file" field together with
// the job's key prefix.
func (r *Reporter) ReportSuccess(ctx context.Context, callbackURL, keyPrefix, presignedURL string) (int, error) {
	return r.post(ctx, callbackURL, [][2]string{
		{"file", presignedURL},
		{"key_prefix", keyPrefix},
	})
}

// ReportFailure posts the stringified error under the "error" field.
func (r *Reporter) ReportFailure(ctx context.Context, callbackURL string, jobErr error) (int, error) {
	return r.post(ctx, callbackURL, [][2]string{
		{"error", jobErr.Error()},
	})
}

func (r *Reporter) post(ctx context.Context, callbackURL string, fields [][2]string) (int, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, field := range fields {
		if err := w.WriteField(field[0], field[1]); err != nil {
			return 0, errors.Wrap(err, "encode callback body")
		}
	}
	if err := w.Close(); err != nil {
		return 0, errors.Wrap(err, "encode callback body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, callbackURL, &body)
	if err != nil {
		return 0, errors.Wrapf(err, "build callback request for %s", callbackURL)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	res, err := r.client.Do(req)
	if err != nil {
		return 0, errors.Wrapf(err, "POST callback %s", callbackURL)
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)
	return res.StatusCode, nil
}
