package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/mcversion/internal/errs"
	"github.com/MrSnakeDoc/mcversion/internal/logger"
	"github.com/MrSnakeDoc/mcversion/internal/utils"
)

// DefaultMaxTextBytes caps text bodies read through GetString.
const DefaultMaxTextBytes = 8 << 20

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type DefaultHTTPClient struct{ *http.Client }

func NewHTTPClient(timeout time.Duration) *DefaultHTTPClient {
	return &DefaultHTTPClient{Client: &http.Client{Timeout: timeout}}
}

// Fetcher performs GET requests against upstream sources. Every transport
// failure and non-2xx status comes back as an errs.UpstreamFetch error.
type Fetcher struct {
	Client       HTTPClient
	UserAgent    string
	Timeout      time.Duration
	RequireHTTPS bool
	MaxTextBytes int64
}

type Options struct {
	UserAgent    string
	Timeout      time.Duration
	RequireHTTPS bool
	MaxTextBytes int64 // 0 means DefaultMaxTextBytes
}

func NewFetcher(client HTTPClient, opts Options) *Fetcher {
	if client == nil {
		client = NewHTTPClient(0)
	}
	if opts.MaxTextBytes <= 0 {
		opts.MaxTextBytes = DefaultMaxTextBytes
	}
	return &Fetcher{
		Client:       client,
		UserAgent:    opts.UserAgent,
		Timeout:      opts.Timeout,
		RequireHTTPS: opts.RequireHTTPS,
		MaxTextBytes: opts.MaxTextBytes,
	}
}

// GetJSON decodes the response body at url into v.
func (f *Fetcher) GetJSON(ctx context.Context, url string, v any) error {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	resp, err := f.get(ctx, url, "application/json")
	if err != nil {
		return err
	}
	defer utils.Try(resp.Body.Close)

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		logger.Debug("Failed to decode %s: %v", url, err)
		return errs.Wrap(errs.MalformedDocument, err, url)
	}
	return nil
}

// GetBytes reads the whole body. A positive limit caps the body size; a body
// larger than limit is an error rather than a silent truncation.
func (f *Fetcher) GetBytes(ctx context.Context, url string, limit int64) ([]byte, error) {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	resp, err := f.get(ctx, url, "")
	if err != nil {
		return nil, err
	}
	defer utils.Try(resp.Body.Close)

	var src io.Reader = resp.Body
	if limit > 0 {
		src = io.LimitReader(resp.Body, limit+1)
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, errs.Wrap(errs.UpstreamFetch, err, url)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, errs.Wrap(errs.UpstreamFetch, fmt.Errorf("body exceeds %s", utils.HumanSize(limit)), url)
	}
	return data, nil
}

// GetString reads a text body of at most MaxTextBytes.
func (f *Fetcher) GetString(ctx context.Context, url string) (string, error) {
	data, err := f.GetBytes(ctx, url, f.MaxTextBytes)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (f *Fetcher) get(ctx context.Context, url, accept string) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(errs.UpstreamFetch, err, url)
	}

	target := url
	if f.RequireHTTPS {
		parsed, err := utils.ParseSecureURL(url)
		if err != nil {
			logger.Debug("Rejected upstream URL %s: %v", url, err)
			return nil, errs.Wrap(errs.UpstreamFetch, err, url)
		}
		target = parsed.String()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, errs.Wrap(errs.UpstreamFetch, err, url)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	start := time.Now()
	resp, err := f.Client.Do(req)
	if err != nil {
		logger.Debug("GET %s failed: %v", url, err)
		return nil, errs.Wrap(errs.UpstreamFetch, err, url)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		utils.Try(resp.Body.Close)
		logger.Debug("GET %s -> %d", url, resp.StatusCode)
		return nil, errs.Wrap(errs.UpstreamFetch, fmt.Errorf("unexpected status %d", resp.StatusCode), url)
	}

	logger.Debug("GET %s -> %d in %s", url, resp.StatusCode, time.Since(start).Truncate(time.Millisecond))
	return resp, nil
}

func (f *Fetcher) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if f.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, f.Timeout)
}
