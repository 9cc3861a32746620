package types

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	ErrNoDocument     = errors.New("no document to parse")
	ErrNoContent      = errors.New("could not extract article content")
	ErrUnsupportedURL = errors.New("unsupported url")
	ErrNotFound       = errors.New("not found")
)

// FetchError reports a network failure or a non-2xx response.
// StatusCode is 0 for transport failures, in which case Err is set.
type FetchError struct {
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("could not download %s: http status %d", e.URL, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("could not download %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("could not download %s", e.URL)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Transport reports whether the failure happened before any HTTP status was received.
func (e *FetchError) Transport() bool { return e.StatusCode == 0 }

// ParseError reports input that could not be parsed as HTML at all.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("error processing HTML: %v", e.Err)
	}
	return fmt.Sprintf("error processing HTML from %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// EmptyExtractionError reports a document that parsed but yielded neither a
// title nor content.
type EmptyExtractionError struct {
	URL string
}

func (e *EmptyExtractionError) Error() string {
	return fmt.Sprintf("no title or content found in %s", e.URL)
}

func (e *EmptyExtractionError) Unwrap() error { return ErrNoContent }

// IsFetchError reports whether err wraps a *FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// IsParseError reports whether err wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsEmptyExtraction reports whether err wraps an *EmptyExtractionError.
func IsEmptyExtraction(err error) bool {
	var ee *EmptyExtractionError
	return errors.As(err, &ee)
}
