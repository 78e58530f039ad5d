// Package fetch implements the outbound HTTP client used to retrieve
// templates and assets: redirect handling, bounded body reads and filename
// negotiation.
package fetch

import (
	"bytes"
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/pkg/errors"
)

// ErrBodyTooLarge is returned when a response body grows past the configured
// per-asset size limit.
var ErrBodyTooLarge = errors.New("body exceeds the maximum asset size")

const readChunkSize = 32 * 1024

// Client issues GETs on behalf of the render pipeline. Only 307 and 308
// redirects are followed; every other status is surfaced to the caller as-is.
type Client struct {
	httpClient   *http.Client
	maxRedirects int
}

func NewClient(maxRedirects int) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
			// Redirects are handled manually in GetFollowRedirect.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		maxRedirects: maxRedirects,
	}
}

// GetFollowRedirect issues a GET to rawURL, chasing 307/308 redirects through
// their Location header up to the configured hop limit. The returned
// response's body is open; the caller owns it.
func (c *Client) GetFollowRedirect(ctx context.Context, rawURL string) (*http.Response, error) {
	target := rawURL
	for hop := 0; ; hop++ {
		if hop > c.maxRedirects {
			return nil, errors.Errorf("redirect chain for %s exceeded %d hops", rawURL, c.maxRedirects)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "build request for %s", target)
		}
		res, err := c.httpClient.Do(req)
		if err != nil {
			return nil, errors.Wrapf(err, "GET %s", target)
		}
		switch res.StatusCode {
		case http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
			loc := res.Header.Get("Location")
			res.Body.Close()
			if loc == "" {
				return nil, errors.Errorf("redirect from %s without Location header", target)
			}
			next, err := res.Request.URL.Parse(loc)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid Location %q", loc)
			}
			target = next.String()
		default:
			return res, nil
		}
	}
}

// BodyBytesWithLimit drains the response body into memory, failing as soon as
// the accumulated size exceeds max. The body is closed in all cases.
func BodyBytesWithLimit(res *http.Response, max int64) ([]byte, error) {
	defer res.Body.Close()
	var buf bytes.Buffer
	chunk := make([]byte, readChunkSize)
	for {
		n, err := res.Body.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			if int64(buf.Len()) > max {
				return nil, ErrBodyTooLarge
			}
		}
		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "read response body")
		}
	}
}

// FilenameHint returns the filename advertised by an attachment
// Content-Disposition header, or "" when the response carries none.
func FilenameHint(res *http.Response) string {
	cd := res.Header.Get("Content-Disposition")
	if cd == "" {
		return ""
	}
	disposition, params, err := mime.ParseMediaType(cd)
	if err != nil || disposition != "attachment" {
		return ""
	}
	return params["filename"]
}

// FilenameFromURL returns the final path segment of u, or "" when the path
// has none.
func FilenameFromURL(u *url.URL) string {
	seg := path.Base(u.Path)
	if seg == "/" || seg == "." || seg == "" {
		return ""
	}
	return seg
}
