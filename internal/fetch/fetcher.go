// Package fetch provides the HTTP implementation of types.Fetcher used to
// download pages, site configs and oEmbed responses.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/net/html/charset"

	"github.com/mrjoshuak/postcollect/types"
)

const (
	// DefaultTimeout bounds a whole exchange, redirects included.
	DefaultTimeout = 20 * time.Second

	// DefaultMaxRedirects is the number of redirects followed before giving up.
	DefaultMaxRedirects = 5

	// MaxBodySize caps how much of a response body is read.
	MaxBodySize = 10 << 20
)

var _ types.Fetcher = (*Fetcher)(nil)

// Fetcher issues GET requests with a bounded timeout and redirect policy.
// Non-2xx responses are returned, not reported as errors.
type Fetcher struct {
	client       *http.Client
	timeout      time.Duration
	maxRedirects int
	userAgent    string
	limiter      *DomainLimiter
	logger       zerolog.Logger
	transport    http.RoundTripper
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithMaxRedirects sets how many redirects are followed. Zero disables
// following redirects.
func WithMaxRedirects(n int) Option {
	return func(f *Fetcher) {
		if n >= 0 {
			f.maxRedirects = n
		}
	}
}

// WithUserAgent replaces the default User-Agent header. Request headers
// still take precedence.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithRateLimit limits requests to rps per host. Zero or less disables it.
func WithRateLimit(rps float64) Option {
	return func(f *Fetcher) {
		if rps > 0 {
			f.limiter = NewDomainLimiter(rps)
		} else {
			f.limiter = nil
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// WithTransport replaces the HTTP transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Fetcher) {
		f.transport = rt
	}
}

// New creates a Fetcher.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:      DefaultTimeout,
		maxRedirects: DefaultMaxRedirects,
		userAgent:    types.UserAgent(),
		logger:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}

	maxRedirects := f.maxRedirects
	f.client = &http.Client{
		Timeout:   f.timeout,
		Transport: f.transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
	if maxRedirects == 0 {
		f.client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return f
}

// Fetch downloads req.URL. The body is decoded to UTF-8 when the response
// declares or sniffs another charset.
func (f *Fetcher) Fetch(ctx context.Context, req types.FetchRequest) (*types.FetchResponse, error) {
	target, err := url.Parse(req.URL)
	if err != nil {
		return nil, err
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, target.Hostname()); err != nil {
			return nil, err
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("User-Agent", f.userAgent)
	httpReq.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	for name, value := range req.Headers {
		httpReq.Header.Set(name, value)
	}

	start := time.Now()
	resp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return nil, err
	}

	finalURL := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	f.logger.Debug().
		Str("url", req.URL).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("fetched")

	return &types.FetchResponse{
		URL:        finalURL,
		StatusCode: resp.StatusCode,
		Body:       decode(body, resp.Header.Get("Content-Type")),
		Headers:    resp.Header,
	}, nil
}

// decode converts body to UTF-8. Bodies already in UTF-8, bodies whose
// encoding is only guessed but which validate as UTF-8, and bodies whose
// encoding cannot be decoded are returned as is.
func decode(body []byte, contentType string) []byte {
	if len(body) == 0 {
		return body
	}
	enc, name, certain := charset.DetermineEncoding(body, contentType)
	if name == "utf-8" || enc == nil || (!certain && utf8.Valid(body)) {
		return body
	}
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return body
	}
	return decoded
}
