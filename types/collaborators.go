package types

import (
	"context"
	"net/http"
	"time"
)

// FetchRequest describes one HTTP GET issued by the orchestrator.
type FetchRequest struct {
	URL     string
	Headers map[string]string
}

// FetchResponse is what a Fetcher returns for any completed HTTP exchange,
// including non-2xx responses.
type FetchResponse struct {
	URL        string
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// OK reports whether the response carries a 2xx status.
func (r *FetchResponse) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetcher retrieves documents over the network. Implementations return an
// error only for transport failures; a non-2xx status is reported through
// FetchResponse.StatusCode.
type Fetcher interface {
	Fetch(ctx context.Context, req FetchRequest) (*FetchResponse, error)
}

// Plugin is a specialised per-domain extractor that bypasses DOM extraction.
type Plugin interface {
	Name() string
	IsURLSupported(rawURL string) bool
	Download(ctx context.Context, rawURL string) (*ExtractedPage, error)
}

// StoredArticle is an ExtractedPage persisted by an ArticleStore.
type StoredArticle struct {
	ID          string
	Page        ExtractedPage
	ContentHash string
	SavedAt     time.Time
}

// ArticleStore persists extracted pages.
type ArticleStore interface {
	Save(ctx context.Context, page *ExtractedPage) (string, error)
	FindByID(ctx context.Context, id string) (*StoredArticle, error)
	FindBySourceURL(ctx context.Context, sourceURL string) (*StoredArticle, error)
	List(ctx context.Context, limit int) ([]*StoredArticle, error)
}
