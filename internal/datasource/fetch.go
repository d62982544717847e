package datasource

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"path/filepath"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"github.com/deekonger/powerwatch/internal/datasource/httpds"
)

// Request describes one raw file to acquire before the run starts.
type Request struct {
	// Name labels log lines (usually the country or portal name).
	Name string

	// URL is fetched with GET unless Form is non-nil, in which case it is
	// submitted as a form POST (some portals only serve the dataset that way).
	URL  string
	Form url.Values

	// Dest is the local path the body is written to. Parent directories are
	// created as needed.
	Dest string
}

// FetchAll downloads every request concurrently and waits for all of them to
// finish before returning, so transformation never interleaves with I/O. Any
// failure cancels the remaining downloads and fails the whole batch: a
// partial raw set is not a valid starting state.
//
// Each completed file logs its size and xxh3 content fingerprint so runs are
// attributable to exact source bytes.
func FetchAll(ctx context.Context, client *httpds.Client, reqs []Request) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, req := range reqs {
		req := req
		g.Go(func() error {
			return fetchOne(ctx, client, req)
		})
	}
	return g.Wait()
}

func fetchOne(ctx context.Context, client *httpds.Client, req Request) error {
	resp, err := download(ctx, client, req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", req.Name, err)
	}
	defer resp.Close()

	if err := os.MkdirAll(filepath.Dir(req.Dest), 0o755); err != nil {
		return fmt.Errorf("fetch %s: %w", req.Name, err)
	}
	f, err := os.Create(req.Dest)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", req.Name, err)
	}

	h := xxh3.New()
	n, err := io.Copy(io.MultiWriter(f, h), resp)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(req.Dest)
		return fmt.Errorf("fetch %s: write %s: %w", req.Name, req.Dest, err)
	}

	log.Printf("fetched %s: %s (%d bytes, xxh3=%016x)", req.Name, req.Dest, n, h.Sum64())
	return nil
}

func download(ctx context.Context, client *httpds.Client, req Request) (io.ReadCloser, error) {
	if req.Form != nil {
		resp, err := client.PostForm(ctx, req.URL, req.Form)
		if err != nil {
			return nil, err
		}
		return resp.Body, nil
	}
	resp, err := client.Get(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
