// Package siteconfig parses and applies per-domain extraction rules written
// in the line-oriented ftr-site-config format.
package siteconfig

import "net/http"

// Replacement is one find_string/replace_string pair. Replacements run on the
// raw document text before it is parsed.
type Replacement struct {
	Find    string
	Replace string
}

// Rule is the parsed rule set for one domain. Selectors are XPath
// expressions; an empty selector defers that field to the generic extractor.
type Rule struct {
	Title  string
	Body   string
	Author string
	Date   string

	Strip          []string
	StripIDOrClass []string
	Replacements   []Replacement
	HTTPHeaders    map[string]string

	// Skipped counts malformed lines that were ignored while parsing.
	Skipped int
}

// Empty reports whether the rule carries no directives at all.
func (r *Rule) Empty() bool {
	return r == nil || (r.Title == "" && r.Body == "" && r.Author == "" && r.Date == "" &&
		len(r.Strip) == 0 && len(r.StripIDOrClass) == 0 &&
		len(r.Replacements) == 0 && len(r.HTTPHeaders) == 0)
}

// Headers returns a copy of the rule's HTTP headers in canonical form.
func (r *Rule) Headers() map[string]string {
	if r == nil || len(r.HTTPHeaders) == 0 {
		return nil
	}
	headers := make(map[string]string, len(r.HTTPHeaders))
	for name, value := range r.HTTPHeaders {
		headers[http.CanonicalHeaderKey(name)] = value
	}
	return headers
}
