package siteconfig

import (
	"net/url"
	"strings"
)

// NormalizeHost returns the lower-cased host of rawURL without port or a
// leading "www.". It returns "" when rawURL has no host.
func NormalizeHost(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// CandidateFilenames lists the rule files that may apply to rawURL, most
// specific first: the host itself, then the host minus its first label when
// the host has more than one dot.
func CandidateFilenames(rawURL string) []string {
	host := NormalizeHost(rawURL)
	if host == "" {
		return nil
	}

	filenames := []string{host + ".txt"}
	if strings.Count(host, ".") > 1 {
		parent := host[strings.Index(host, ".")+1:]
		filenames = append(filenames, parent+".txt")
	}
	return filenames
}
