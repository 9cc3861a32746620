// Package types provides the core data structures shared by the postcollect
// library, its collaborators and its command-line tool.
package types

import "time"

// PostFormat is the WordPress-style post format an extractor assigns to a page.
type PostFormat string

// Post formats. Generic extraction always yields PostFormatStandard; per-site
// plugins may pick a more specific one.
const (
	PostFormatStandard PostFormat = "standard"
	PostFormatAside    PostFormat = "aside"
	PostFormatAudio    PostFormat = "audio"
	PostFormatChat     PostFormat = "chat"
	PostFormatGallery  PostFormat = "gallery"
	PostFormatImage    PostFormat = "image"
	PostFormatLink     PostFormat = "link"
	PostFormatQuote    PostFormat = "quote"
	PostFormatStatus   PostFormat = "status"
	PostFormatVideo    PostFormat = "video"
)

// Valid reports whether f is one of the known post formats.
func (f PostFormat) Valid() bool {
	switch f {
	case PostFormatStandard, PostFormatAside, PostFormatAudio, PostFormatChat,
		PostFormatGallery, PostFormatImage, PostFormatLink, PostFormatQuote,
		PostFormatStatus, PostFormatVideo:
		return true
	}
	return false
}

// ExtractedPage is the result of one extraction call.
// An empty Title or Content means the extractor could not find that field.
type ExtractedPage struct {
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Author     string     `json:"author,omitempty"`
	Excerpt    string     `json:"excerpt,omitempty"`
	SourceURL  string     `json:"source_url"`
	PostFormat PostFormat `json:"post_format"`
	Date       time.Time  `json:"date,omitzero"`

	// RawHTML is the unprocessed document, kept so extraction can be re-run.
	RawHTML string `json:"-"`
}

// NewExtractedPage returns a page for sourceURL with the standard post format.
func NewExtractedPage(sourceURL string) *ExtractedPage {
	return &ExtractedPage{
		SourceURL:  sourceURL,
		PostFormat: PostFormatStandard,
	}
}

// Empty reports whether neither a title nor content was extracted.
func (p *ExtractedPage) Empty() bool {
	return p == nil || (p.Title == "" && p.Content == "")
}
