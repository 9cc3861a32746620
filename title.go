package postcollect

import (
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und, cases.NoLower)

// SynthesizeTitle derives a title from the last path segment of rawURL, for
// pages where extraction found nothing: dashes become spaces and each word
// is capitalized. A URL without a path yields its host.
func SynthesizeTitle(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}

	path := strings.Trim(u.Path, "/")
	if path == "" {
		return u.Hostname()
	}
	segments := strings.Split(path, "/")
	slug := segments[len(segments)-1]
	if unescaped, err := url.PathUnescape(slug); err == nil {
		slug = unescaped
	}
	slug = strings.ReplaceAll(slug, "-", " ")

	return titleCaser.String(strings.Join(strings.Fields(slug), " "))
}
