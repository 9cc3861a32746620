package postcollect

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrjoshuak/postcollect/internal/fetch"
	"github.com/mrjoshuak/postcollect/internal/plugins/youtube"
	"github.com/mrjoshuak/postcollect/internal/readability"
	"github.com/mrjoshuak/postcollect/internal/simplifiers"
	"github.com/mrjoshuak/postcollect/internal/siteconfig"
	"github.com/mrjoshuak/postcollect/types"
)

// Collector downloads pages and extracts their article content.
type Collector interface {
	// Download extracts the article at rawURL. When content is non-empty it
	// is used as the page HTML and nothing is fetched.
	Download(ctx context.Context, rawURL, content string) (*ExtractedPage, error)

	// Extract runs DOM extraction over html, applying the site config for
	// rawURL's host when one exists.
	Extract(ctx context.Context, rawURL, html string) (*ExtractedPage, error)
}

// Option configures a Collector.
type Option func(*options)

type options struct {
	fetcher           types.Fetcher
	source            siteconfig.Source
	siteConfigDir     string
	remoteSiteConfigs bool
	siteConfigBaseURL string
	plugins           []types.Plugin
	pluginsSet        bool
	logger            zerolog.Logger
	userAgent         string
	timeout           time.Duration
	maxRedirects      int
	rateLimit         float64
	charThreshold     int
}

func defaultOptions() options {
	return options{
		logger:        zerolog.Nop(),
		timeout:       fetch.DefaultTimeout,
		maxRedirects:  fetch.DefaultMaxRedirects,
		charThreshold: readability.DefaultCharThreshold,
	}
}

// WithFetcher replaces the HTTP fetcher. Timeout, user agent, redirect and
// rate limit options only apply to the built-in fetcher.
func WithFetcher(f Fetcher) Option {
	return func(o *options) {
		o.fetcher = f
	}
}

// WithSiteConfigs sets the source of site config files, replacing the
// directory and remote options.
func WithSiteConfigs(src SiteConfigSource) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithSiteConfigDir reads site config files from a local ftr-site-config
// checkout.
func WithSiteConfigDir(dir string) Option {
	return func(o *options) {
		o.siteConfigDir = dir
	}
}

// WithRemoteSiteConfigs enables downloading site config files that are not
// found locally.
func WithRemoteSiteConfigs(enable bool) Option {
	return func(o *options) {
		o.remoteSiteConfigs = enable
	}
}

// WithSiteConfigBaseURL sets where remote site config files are downloaded
// from.
func WithSiteConfigBaseURL(baseURL string) Option {
	return func(o *options) {
		o.siteConfigBaseURL = baseURL
	}
}

// WithPlugins replaces the default per-site plugins. Plugins are tried in
// the order given.
func WithPlugins(plugins ...Plugin) Option {
	return func(o *options) {
		o.plugins = plugins
		o.pluginsSet = true
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithUserAgent sets the User-Agent sent with every request.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithTimeout bounds each HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithMaxRedirects sets how many redirects a fetch follows.
func WithMaxRedirects(n int) Option {
	return func(o *options) {
		o.maxRedirects = n
	}
}

// WithRateLimit limits requests per second to each host.
func WithRateLimit(rps float64) Option {
	return func(o *options) {
		o.rateLimit = rps
	}
}

// WithCharThreshold sets how much text the scorer wants before it stops
// relaxing its heuristics.
func WithCharThreshold(n int) Option {
	return func(o *options) {
		o.charThreshold = n
	}
}

type collector struct {
	fetcher       types.Fetcher
	plugins       []types.Plugin
	configs       *siteconfig.Cache
	logger        zerolog.Logger
	charThreshold int
}

// New creates a Collector. Without options it fetches over HTTP, handles
// YouTube URLs through oEmbed and uses no site configs.
//
// Example:
//
//	c := postcollect.New(
//	    postcollect.WithSiteConfigDir("/srv/ftr-site-config"),
//	    postcollect.WithTimeout(10*time.Second),
//	)
func New(opts ...Option) Collector {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	fetcher := o.fetcher
	if fetcher == nil {
		fetcher = fetch.New(
			fetch.WithTimeout(o.timeout),
			fetch.WithMaxRedirects(o.maxRedirects),
			fetch.WithUserAgent(o.userAgent),
			fetch.WithRateLimit(o.rateLimit),
			fetch.WithLogger(o.logger),
		)
	}

	plugins := o.plugins
	if !o.pluginsSet {
		plugins = []types.Plugin{youtube.New(fetcher, "")}
	}

	source := o.source
	if source == nil {
		var multi siteconfig.MultiSource
		if o.siteConfigDir != "" {
			multi = append(multi, &siteconfig.DirSource{Dir: o.siteConfigDir})
		}
		if o.remoteSiteConfigs {
			multi = append(multi, siteconfig.NewHTTPSource(o.siteConfigBaseURL, fetcher))
		}
		if len(multi) > 0 {
			source = multi
		}
	}

	var configs *siteconfig.Cache
	if source != nil {
		configs = siteconfig.NewCache(source, o.logger)
	}

	return &collector{
		fetcher:       fetcher,
		plugins:       plugins,
		configs:       configs,
		logger:        o.logger,
		charThreshold: o.charThreshold,
	}
}

// Download implements Collector.
func (c *collector) Download(ctx context.Context, rawURL, content string) (*ExtractedPage, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, &types.FetchError{URL: rawURL, Err: err}
	}

	for _, p := range c.plugins {
		if !p.IsURLSupported(rawURL) {
			continue
		}
		page, err := p.Download(ctx, rawURL)
		if err != nil {
			c.logger.Warn().Err(err).Str("plugin", p.Name()).Str("url", rawURL).Msg("plugin failed, trying next extractor")
			continue
		}
		page.Content = simplifiers.RemoveArtificialLineBreaks(page.Content)
		return c.finish(page)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rule := c.lookupRule(ctx, rawURL)

	if content == "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		body, err := c.download(ctx, rawURL, rule)
		if err != nil {
			return nil, err
		}
		content = body
	}

	return c.extract(ctx, rawURL, content, rule)
}

// Extract implements Collector.
func (c *collector) Extract(ctx context.Context, rawURL, html string) (*ExtractedPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.extract(ctx, rawURL, html, c.lookupRule(ctx, rawURL))
}

// lookupRule returns the site config for rawURL. Lookup failures are logged
// and treated as no config.
func (c *collector) lookupRule(ctx context.Context, rawURL string) *siteconfig.Rule {
	rule, filename, err := c.configs.Resolve(ctx, rawURL)
	if err != nil {
		c.logger.Warn().Err(err).Str("url", rawURL).Msg("site config lookup failed")
		return nil
	}
	if rule != nil {
		c.logger.Debug().Str("url", rawURL).Str("file", filename).Msg("using site config")
	}
	return rule
}

// download fetches rawURL with the rule's extra headers and types every
// failure as a *types.FetchError.
func (c *collector) download(ctx context.Context, rawURL string, rule *siteconfig.Rule) (string, error) {
	resp, err := c.fetcher.Fetch(ctx, types.FetchRequest{URL: rawURL, Headers: rule.Headers()})
	if err != nil {
		return "", &types.FetchError{URL: rawURL, Err: err}
	}
	if !resp.OK() {
		return "", &types.FetchError{URL: rawURL, StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}
	return string(resp.Body), nil
}

// extract runs the DOM pipeline: replacements, parse, site selectors with
// the generic scorer for whatever they leave empty, then normalization.
func (c *collector) extract(ctx context.Context, rawURL, raw string, rule *siteconfig.Rule) (*ExtractedPage, error) {
	doc, err := readability.ParseHTML(rule.ApplyReplacements(raw))
	if err != nil {
		return nil, &types.ParseError{URL: rawURL, Err: err}
	}

	opts := &readability.Options{URL: rawURL, CharThreshold: c.charThreshold}
	if !rule.Empty() {
		opts.Overrides = rule
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, err := readability.New(doc, opts).Parse()
	if err != nil {
		return nil, &types.ParseError{URL: rawURL, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content := simplifiers.RemoveCarriageReturns(result.Content)
	content = simplifiers.ReconstructParagraphs(content)
	content = simplifiers.RemoveArtificialLineBreaks(content)

	page := types.NewExtractedPage(rawURL)
	page.Title = strings.TrimSpace(result.Title)
	page.Author = result.Author
	page.Excerpt = result.Excerpt
	page.Date = result.Date
	page.Content = strings.TrimSpace(content)
	page.RawHTML = raw

	c.logger.Debug().
		Str("url", rawURL).
		Interface("sources", result.Sources).
		Int("length", result.Length).
		Msg("extracted")

	return c.finish(page)
}

// finish reports a page with neither title nor content as an empty
// extraction. The page is still returned.
func (c *collector) finish(page *ExtractedPage) (*ExtractedPage, error) {
	if page.Empty() {
		c.logger.Info().Str("url", page.SourceURL).Msg("no title or content found")
		return page, &types.EmptyExtractionError{URL: page.SourceURL}
	}
	return page, nil
}

// validateURL accepts absolute http and https URLs only.
func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s", types.ErrUnsupportedURL, rawURL)
	}
	return nil
}
