package siteconfig

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrjoshuak/postcollect/types"
)

// DefaultBaseURL serves the community-maintained ftr-site-config repository.
const DefaultBaseURL = "https://raw.githubusercontent.com/fivefilters/ftr-site-config/master/"

// ErrNotFound is returned by a Source that has no file with the given name.
var ErrNotFound = errors.New("site config not found")

// Source loads the text of a site config file by name, e.g. "example.com.txt".
type Source interface {
	Fetch(ctx context.Context, filename string) (string, error)
}

// DirSource reads site config files from a local directory, typically a
// checkout of ftr-site-config.
type DirSource struct {
	Dir string
}

var _ Source = (*DirSource)(nil)

// Fetch reads filename from the directory.
func (s *DirSource) Fetch(ctx context.Context, filename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !validFilename(filename) {
		return "", ErrNotFound
	}

	data, err := os.ReadFile(filepath.Join(s.Dir, filename))
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read site config %s: %w", filename, err)
	}
	return string(data), nil
}

// HTTPSource downloads site config files relative to a base URL.
type HTTPSource struct {
	BaseURL string
	Fetcher types.Fetcher
}

var _ Source = (*HTTPSource)(nil)

// NewHTTPSource returns an HTTPSource for baseURL, defaulting to DefaultBaseURL.
func NewHTTPSource(baseURL string, fetcher types.Fetcher) *HTTPSource {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &HTTPSource{BaseURL: baseURL, Fetcher: fetcher}
}

// Fetch downloads filename. A 404 maps to ErrNotFound; any other non-2xx
// status is reported as a *types.FetchError.
func (s *HTTPSource) Fetch(ctx context.Context, filename string) (string, error) {
	if !validFilename(filename) {
		return "", ErrNotFound
	}

	target := s.BaseURL + filename
	resp, err := s.Fetcher.Fetch(ctx, types.FetchRequest{URL: target})
	if err != nil {
		return "", &types.FetchError{URL: target, Err: err}
	}
	if resp.StatusCode == 404 {
		return "", ErrNotFound
	}
	if !resp.OK() {
		return "", &types.FetchError{URL: target, StatusCode: resp.StatusCode}
	}
	return string(resp.Body), nil
}

// MultiSource tries each source in order and returns the first hit.
type MultiSource []Source

var _ Source = (MultiSource)(nil)

// Fetch returns the first source's file that exists. Errors other than
// ErrNotFound stop the search.
func (m MultiSource) Fetch(ctx context.Context, filename string) (string, error) {
	for _, src := range m {
		text, err := src.Fetch(ctx, filename)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return text, err
	}
	return "", ErrNotFound
}

// validFilename rejects names that could escape the source root.
func validFilename(name string) bool {
	return name != "" && !strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..") &&
		strings.HasSuffix(name, ".txt")
}
