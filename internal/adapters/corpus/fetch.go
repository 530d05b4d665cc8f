package corpus

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	perr "labelit/internal/platform/errors"
	"labelit/internal/platform/logger"
)

const (
	// DefaultBaseURL hosts the sample and label files
	DefaultBaseURL = "https://host.ddot.cc"
	// DefaultCacheDir holds the downloaded copies between runs
	DefaultCacheDir = "/tmp"

	defaultHTTPTO = 30 * time.Second
)

// Fetcher returns a local path holding the named resource
type Fetcher interface {
	Fetch(ctx context.Context, name string) (string, error)
	// Path is where name is or would be cached
	Path(name string) string
}

// CachedFetcher downloads <base>/<name> once into <dir>/<name>
// A present cache file is served as is, so an interrupted session resumes without refetching
type CachedFetcher struct {
	base   string
	dir    string
	client *http.Client
}

// CachedOption configures the fetcher
type CachedOption func(*CachedFetcher)

// WithHTTPClient swaps the client, used by tests and custom transports
func WithHTTPClient(c *http.Client) CachedOption {
	return func(f *CachedFetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithTimeout sets the client timeout for downloads
func WithTimeout(d time.Duration) CachedOption {
	return func(f *CachedFetcher) {
		if d > 0 {
			f.client = &http.Client{Timeout: d, Transport: f.client.Transport}
		}
	}
}

// NewCachedFetcher builds a fetcher, empty base or dir fall back to the defaults
func NewCachedFetcher(base, dir string, opts ...CachedOption) *CachedFetcher {
	if base == "" {
		base = DefaultBaseURL
	}
	if dir == "" {
		dir = DefaultCacheDir
	}
	f := &CachedFetcher{
		base:   strings.TrimRight(base, "/"),
		dir:    dir,
		client: &http.Client{Timeout: defaultHTTPTO},
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Path returns the cache location for name
func (f *CachedFetcher) Path(name string) string {
	return filepath.Join(f.dir, filepath.Base(name))
}

// Fetch returns the cached path for name, downloading it on a cache miss
func (f *CachedFetcher) Fetch(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" || name != filepath.Base(name) {
		return "", perr.WithField(perr.InvalidArgf("corpus: bad resource name %q", name), "name")
	}
	path := f.Path(name)
	log := logger.C(ctx).With().Str("resource", name).Str("path", path).Logger()

	if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
		log.Debug().Msg("corpus cache hit")
		return path, nil
	}

	u := f.base + "/" + url.PathEscape(name)
	start := time.Now()
	n, err := f.download(ctx, u, path)
	if err != nil {
		return "", perr.WithOp(perr.Wrapf(err, perr.ErrorCodeUnavailable, "corpus: fetch %s", u), "corpus.fetch")
	}
	log.Info().Int64("bytes", n).Dur("took", time.Since(start)).Msg("corpus downloaded")
	return path, nil
}

// download saves the body atomically via a .part sibling and rename
func (f *CachedFetcher) download(ctx context.Context, u, path string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}
	tmp := path + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return 0, err
	}
	defer func() { _ = os.Remove(tmp) }()

	n, werr := io.Copy(out, resp.Body)
	cerr := out.Close()
	if werr != nil {
		return 0, werr
	}
	if cerr != nil {
		return 0, cerr
	}
	if err := os.Rename(tmp, path); err != nil {
		return 0, err
	}
	return n, nil
}
