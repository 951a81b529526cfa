package assets

import (
	"context"
	"image"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flagring/flagring/pkg/errors"
	"github.com/flagring/flagring/pkg/flag"
	"github.com/flagring/flagring/pkg/httputil"
)

// maxAssetSize caps fetched artwork at 10 MiB. Flag SVGs are a few KiB;
// anything near the cap is a misconfigured URL.
const maxAssetSize = 10 << 20

// Fetcher retrieves flag artwork over HTTP with response caching and
// retry on transient failures.
type Fetcher struct {
	client     *http.Client
	cache      *httputil.Cache
	logger     *log.Logger
	attempts   int
	retryDelay time.Duration
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) { f.client = client }
}

// WithCache sets the response cache. Without one, every Fetch hits the
// network.
func WithCache(cache *httputil.Cache) FetcherOption {
	return func(f *Fetcher) { f.cache = cache }
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) FetcherOption {
	return func(f *Fetcher) { f.logger = logger }
}

// WithRetryPolicy sets the retry attempt count and initial backoff delay.
func WithRetryPolicy(attempts int, delay time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.attempts = attempts
		f.retryDelay = delay
	}
}

// NewFetcher creates a Fetcher with a 30 second request timeout and three
// retry attempts by default.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:     &http.Client{Timeout: 30 * time.Second},
		logger:     log.Default(),
		attempts:   3,
		retryDelay: time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the asset at url, consulting the cache first. Server
// errors and rate limits are retried with exponential backoff; client
// errors fail fast.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := errors.ValidateURL(url); err != nil {
		return nil, err
	}

	if f.cache != nil {
		var data []byte
		if ok, err := f.cache.Get("assets:"+url, &data); ok && err == nil {
			f.logger.Debug("asset cache hit", "url", url)
			return data, nil
		}
	}

	var data []byte
	err := httputil.Retry(ctx, f.attempts, f.retryDelay, func() error {
		var err error
		data, err = f.fetchOnce(ctx, url)
		return err
	})
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		if err := f.cache.Set("assets:"+url, data); err != nil {
			f.logger.Warn("asset cache write failed", "url", url, "err", err)
		}
	}
	return data, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "build request for %s", url)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "asset %s not found", url)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &httputil.RetryableError{
			Err: errors.New(errors.ErrCodeNetwork, "fetch %s: status %d", url, resp.StatusCode),
		}
	default:
		return nil, errors.New(errors.ErrCodeNetwork, "fetch %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetSize+1))
	if err != nil {
		return nil, &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "read %s", url)}
	}
	if len(data) > maxAssetSize {
		return nil, errors.New(errors.ErrCodeInvalidImage, "asset %s exceeds %d bytes", url, maxAssetSize)
	}
	return data, nil
}

// FetchTexture fetches a flag's artwork and decodes it into a border
// texture. The requested width should match the annulus circumference for
// the render size; pass zero height to keep the artwork's aspect ratio.
func (f *Fetcher) FetchTexture(ctx context.Context, fl *flag.Flag, width, height int) (*image.NRGBA, error) {
	if fl.AssetURL == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "flag %q has no asset", fl.ID)
	}
	data, err := f.Fetch(ctx, fl.AssetURL)
	if err != nil {
		return nil, err
	}
	img, err := DecodeTexture(data, width, height)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "decode asset for flag %q", fl.ID)
	}
	return img, nil
}
