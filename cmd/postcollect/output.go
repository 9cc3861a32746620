package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mrjoshuak/postcollect/internal/markdown"
	"github.com/mrjoshuak/postcollect/internal/simplifiers"
	"github.com/mrjoshuak/postcollect/types"
)

// Output formats accepted by --format.
const (
	FormatJSON     = "json"
	FormatHTML     = "html"
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

// writePage renders page in format.
func writePage(w io.Writer, page *types.ExtractedPage, format string, conv *markdown.Converter) error {
	var out string
	switch format {
	case FormatJSON, "":
		data, err := json.MarshalIndent(page, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode page: %w", err)
		}
		out = string(data)
	case FormatHTML:
		out = page.Content
	case FormatText:
		parts := []string{page.Title, simplifiers.PlainText(page.Content)}
		out = strings.TrimSpace(strings.Join(parts, "\n\n"))
	case FormatMarkdown:
		md, err := conv.Page(page)
		switch {
		case errors.Is(err, types.ErrNoContent):
			md = "# " + page.Title
		case err != nil:
			return fmt.Errorf("failed to convert page: %w", err)
		}
		out = md
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	_, err := fmt.Fprintln(w, strings.TrimRight(out, "\n"))
	return err
}

// readInput returns the HTML named by --input: nothing for "", stdin for "-"
// and the file contents otherwise.
func readInput(deps *Dependencies, path string) (string, error) {
	switch path {
	case "":
		return "", nil
	case "-":
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}
}

// reportError prints a one-line explanation of a collection failure.
func reportError(w io.Writer, err error) {
	var fetchErr *types.FetchError
	switch {
	case errors.As(err, &fetchErr) && fetchErr.StatusCode != 0:
		fmt.Fprintf(w, "error: %s returned HTTP %d\n", fetchErr.URL, fetchErr.StatusCode)
	case errors.Is(err, types.ErrUnsupportedURL):
		fmt.Fprintln(w, "error: only absolute http and https URLs are supported")
	case types.IsEmptyExtraction(err):
		fmt.Fprintln(w, "error: no title or content found")
	default:
		fmt.Fprintf(w, "error: %v\n", err)
	}
}
