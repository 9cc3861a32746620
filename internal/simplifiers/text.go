// Package simplifiers holds the text-level passes that run over extracted
// HTML: whitespace and Unicode normalisation, paragraph reconstruction and
// the artificial line-break normalizer.
package simplifiers

import (
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	tagRegex        = regexp.MustCompile(`<[^>]*>`)
	retainedChars   = map[rune]bool{
		'\t': true,
		'\n': true,
		'\r': true,
		'\f': true,
	}
)

// NormalizeUnicode normalizes text to NFKC form for consistent character representation
func NormalizeUnicode(text string) string {
	return norm.NFKC.String(text)
}

// NormalizeWhitespace replaces runs of whitespace with a single space and trims
func NormalizeWhitespace(text string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(text), " ")
}

// StripControlChars removes Unicode control characters while retaining specific whitespace chars
func StripControlChars(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		if !unicode.IsControl(r) || retainedChars[r] {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeText performs all text normalization steps in the correct order
func NormalizeText(text string) string {
	text = StripControlChars(text)
	text = NormalizeUnicode(text)
	text = NormalizeWhitespace(text)
	return text
}

// StripTags removes every tag from an HTML fragment and decodes entities.
// It tolerates ill-formed markup since it never builds a tree.
func StripTags(fragment string) string {
	return html.UnescapeString(tagRegex.ReplaceAllString(fragment, ""))
}

// PlainTextLength is the number of characters a fragment renders as once tags
// are stripped and surrounding whitespace is trimmed.
func PlainTextLength(fragment string) int {
	return utf8.RuneCountInString(strings.TrimSpace(StripTags(fragment)))
}

// RemoveCarriageReturns drops literal and entity-encoded carriage returns
// left behind by documents authored with CRLF line endings.
func RemoveCarriageReturns(text string) string {
	text = strings.ReplaceAll(text, "&#xD;", "")
	text = strings.ReplaceAll(text, "&#13;", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
