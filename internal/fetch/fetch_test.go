package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFollowRedirectFollows307And308(t *testing.T) {
	for _, status := range []int{http.StatusTemporaryRedirect, http.StatusPermanentRedirect} {
		t.Run(fmt.Sprintf("status_%d", status), func(t *testing.T) {
			final := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, "the real body")
			}))
			defer final.Close()

			redirecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Location", final.URL+"/asset.png")
				w.WriteHeader(status)
			}))
			defer redirecting.Close()

			c := NewClient(10)
			res, err := c.GetFollowRedirect(context.Background(), redirecting.URL)
			require.NoError(t, err)
			body, err := BodyBytesWithLimit(res, 1024)
			require.NoError(t, err)
			assert.Equal(t, "the real body", string(body))
			// the request URL reflects the redirect target
			assert.Equal(t, "/asset.png", res.Request.URL.Path)
		})
	}
}

func TestGetFollowRedirectLeavesOther3xxAlone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "/elsewhere")
		w.WriteHeader(http.StatusFound)
	}))
	defer srv.Close()

	c := NewClient(10)
	res, err := c.GetFollowRedirect(context.Background(), srv.URL)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusFound, res.StatusCode)
}

func TestGetFollowRedirectMissingLocation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTemporaryRedirect)
	}))
	defer srv.Close()

	c := NewClient(10)
	_, err := c.GetFollowRedirect(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without Location header")
}

func TestGetFollowRedirectLoopCap(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", srv.URL)
		w.WriteHeader(http.StatusTemporaryRedirect)
	}))
	defer srv.Close()

	c := NewClient(5)
	_, err := c.GetFollowRedirect(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeded 5 hops")
}

func TestBodyBytesWithLimit(t *testing.T) {
	body := strings.Repeat("x", 100)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	c := NewClient(10)

	// exactly at the limit succeeds
	res, err := c.GetFollowRedirect(context.Background(), srv.URL)
	require.NoError(t, err)
	got, err := BodyBytesWithLimit(res, 100)
	require.NoError(t, err)
	assert.Len(t, got, 100)

	// a body one byte over the limit fails
	res, err = c.GetFollowRedirect(context.Background(), srv.URL)
	require.NoError(t, err)
	_, err = BodyBytesWithLimit(res, 99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBodyTooLarge))
}

func TestFilenameHint(t *testing.T) {
	tests := []struct {
		name        string
		disposition string
		want        string
	}{
		{name: "attachment with filename", disposition: `attachment; filename="invoice.png"`, want: "invoice.png"},
		{name: "attachment without filename", disposition: "attachment", want: ""},
		{name: "inline disposition", disposition: `inline; filename="x.png"`, want: ""},
		{name: "no header", disposition: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.disposition != "" {
					w.Header().Set("Content-Disposition", tt.disposition)
				}
			}))
			defer srv.Close()

			c := NewClient(10)
			res, err := c.GetFollowRedirect(context.Background(), srv.URL)
			require.NoError(t, err)
			defer res.Body.Close()
			assert.Equal(t, tt.want, FilenameHint(res))
		})
	}
}

func TestFilenameFromURL(t *testing.T) {
	tests := []struct {
		rawURL string
		want   string
	}{
		{rawURL: "http://example.com/assets/logo.png", want: "logo.png"},
		{rawURL: "http://example.com/logo.png?v=2", want: "logo.png"},
		{rawURL: "http://example.com/", want: ""},
		{rawURL: "http://example.com", want: ""},
	}
	for _, tt := range tests {
		u, err := url.Parse(tt.rawURL)
		require.NoError(t, err)
		assert.Equal(t, tt.want, FilenameFromURL(u), tt.rawURL)
	}
}
