package postcollect

import (
	"github.com/mrjoshuak/postcollect/internal/siteconfig"
	"github.com/mrjoshuak/postcollect/types"
)

// Version information for the postcollect library.
const (
	Version = types.Version
	Name    = types.Name
)

// Re-exported value types and collaborator interfaces, so callers need only
// import this package.
type (
	ExtractedPage = types.ExtractedPage
	PostFormat    = types.PostFormat
	Fetcher       = types.Fetcher
	FetchRequest  = types.FetchRequest
	FetchResponse = types.FetchResponse
	Plugin        = types.Plugin
	ArticleStore  = types.ArticleStore

	// SiteConfigSource supplies site config files by name.
	SiteConfigSource = siteconfig.Source
)

// Error types returned by Download and Extract.
type (
	FetchError           = types.FetchError
	ParseError           = types.ParseError
	EmptyExtractionError = types.EmptyExtractionError
)

// Post formats.
const (
	PostFormatStandard = types.PostFormatStandard
	PostFormatVideo    = types.PostFormatVideo
)

// Sentinel errors.
var (
	ErrNoDocument     = types.ErrNoDocument
	ErrNoContent      = types.ErrNoContent
	ErrUnsupportedURL = types.ErrUnsupportedURL
)

// IsFetchError reports whether err wraps a *FetchError.
func IsFetchError(err error) bool { return types.IsFetchError(err) }

// IsParseError reports whether err wraps a *ParseError.
func IsParseError(err error) bool { return types.IsParseError(err) }

// IsEmptyExtraction reports whether err wraps an *EmptyExtractionError.
func IsEmptyExtraction(err error) bool { return types.IsEmptyExtraction(err) }
