// Package youtube extracts YouTube videos through the oEmbed API instead of
// scraping the watch page.
package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/mrjoshuak/postcollect/types"
)

// DefaultEndpoint is YouTube's oEmbed endpoint.
const DefaultEndpoint = "https://www.youtube.com/oembed"

var hosts = map[string]bool{
	"youtu.be":        true,
	"youtube.com":     true,
	"www.youtube.com": true,
	"m.youtube.com":   true,
}

var _ types.Plugin = (*Plugin)(nil)

// Plugin turns a video URL into a page holding an embed block.
type Plugin struct {
	fetcher  types.Fetcher
	endpoint string
}

// New returns a Plugin that queries endpoint through fetcher. An empty
// endpoint uses DefaultEndpoint.
func New(fetcher types.Fetcher, endpoint string) *Plugin {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Plugin{fetcher: fetcher, endpoint: endpoint}
}

// Name identifies the plugin in logs.
func (p *Plugin) Name() string { return "youtube" }

// IsURLSupported reports whether rawURL is on a YouTube host.
func (p *Plugin) IsURLSupported(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	return hosts[strings.ToLower(u.Hostname())]
}

// oembed holds the response fields that are used.
type oembed struct {
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
}

// Download asks the oEmbed endpoint for the video's metadata and builds the
// page from it. The watch page itself is never fetched.
func (p *Plugin) Download(ctx context.Context, rawURL string) (*types.ExtractedPage, error) {
	if !p.IsURLSupported(rawURL) {
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedURL, rawURL)
	}

	apiURL := p.endpoint + "?url=" + url.QueryEscape(rawURL) + "&format=json"
	resp, err := p.fetcher.Fetch(ctx, types.FetchRequest{URL: apiURL})
	if err != nil {
		return nil, &types.FetchError{URL: apiURL, Err: err}
	}
	if !resp.OK() {
		return nil, &types.FetchError{URL: apiURL, StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	var data oembed
	if err := json.Unmarshal(resp.Body, &data); err != nil {
		return nil, fmt.Errorf("decode oembed response: %w", err)
	}

	content, err := EmbedBlock(rawURL)
	if err != nil {
		return nil, err
	}

	page := types.NewExtractedPage(rawURL)
	page.PostFormat = types.PostFormatVideo
	page.Title = data.Title
	page.Author = data.AuthorName
	page.Content = content
	return page, nil
}

// embedAttrs are the block attributes, in the order the block editor writes them.
type embedAttrs struct {
	URL              string `json:"url"`
	Type             string `json:"type"`
	ProviderNameSlug string `json:"providerNameSlug"`
	Responsive       bool   `json:"responsive"`
	ClassName        string `json:"className"`
}

// EmbedBlock renders the block-editor embed markup for a YouTube URL.
func EmbedBlock(rawURL string) (string, error) {
	var attrs bytes.Buffer
	enc := json.NewEncoder(&attrs)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(embedAttrs{
		URL:              rawURL,
		Type:             "video",
		ProviderNameSlug: "youtube",
		Responsive:       true,
		ClassName:        "wp-embed-aspect-16-9 wp-has-aspect-ratio",
	}); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("<!-- wp:embed ")
	b.WriteString(strings.TrimSpace(attrs.String()))
	b.WriteString(" -->\n")
	b.WriteString(`<figure class="wp-block-embed is-type-video is-provider-youtube wp-block-embed-youtube wp-embed-aspect-16-9 wp-has-aspect-ratio"><div class="wp-block-embed__wrapper">`)
	b.WriteString("\n" + rawURL + "\n")
	b.WriteString("</div></figure>\n<!-- /wp:embed -->")
	return b.String(), nil
}
