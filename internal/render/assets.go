package render

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/paperpress/paperpress/internal/fetch"
)

// downloadAssets fetches every asset into the workspace. All downloads start
// concurrently; the first failure cancels the remaining ones and fails the
// whole batch.
func downloadAssets(ctx context.Context, client *fetch.Client, ws *Workspace, urls []string, maxSize int64, log zerolog.Logger) error {
	if len(urls) == 0 {
		return nil
	}
	log.Debug().Strs("urls", urls).Msg("downloading assets")
	g, ctx := errgroup.WithContext(ctx)
	for _, rawURL := range urls {
		g.Go(func() error {
			return downloadAsset(ctx, client, ws, rawURL, maxSize, log)
		})
	}
	return g.Wait()
}

func downloadAsset(ctx context.Context, client *fetch.Client, ws *Workspace, rawURL string, maxSize int64, log zerolog.Logger) error {
	res, err := client.GetFollowRedirect(ctx, rawURL)
	if err != nil {
		return err
	}
	if res.StatusCode/100 != 2 {
		res.Body.Close()
		return errors.Errorf("GET %s returned status %d", rawURL, res.StatusCode)
	}
	hint := fetch.FilenameHint(res)
	body, err := fetch.BodyBytesWithLimit(res, maxSize)
	if err != nil {
		return errors.Wrapf(err, "download asset %s", rawURL)
	}

	name := hint
	if name == "" {
		name = fetch.FilenameFromURL(res.Request.URL)
	}
	if name == "" {
		// No usable filename anywhere: the asset is fetched but discarded.
		log.Debug().Str("url", rawURL).Msg("asset has no determinable filename, discarding")
		return nil
	}

	dest := ws.Join(filepath.Base(name))
	log.Debug().Str("url", rawURL).Str("path", dest).Msg("writing asset")
	if err := os.WriteFile(dest, body, 0o644); err != nil {
		return errors.Wrap(err, "Error writing asset")
	}
	return nil
}
