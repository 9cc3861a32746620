package extractors

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"

	"github.com/mrjoshuak/postcollect/internal/simplifiers"
)

// DateSelectors are the metadata locations that could hold a publication
// date. Scores reflect confidence in each selector.
var DateSelectors = []SelectorScore{
	{Selector: "//meta[@property='article:published_time']/@content", Score: 13},
	{Selector: "//meta[@property='og:article:published_time']/@content", Score: 10},
	{Selector: "//meta[@name='pubdate']/@content", Score: 10},
	{Selector: "//meta[@name='publishdate']/@content", Score: 10},
	{Selector: "//meta[@property='og:updated_time']/@content", Score: 9},
	{Selector: "//meta[@name='date']/@content", Score: 9},
	{Selector: "//meta[@property='article:published']/@content", Score: 7},
	{Selector: "//meta[@itemprop='datePublished']/@content", Score: 3},
	{Selector: "//time/@datetime", Score: 3},
	{Selector: "//meta[@itemprop='dateModified']/@content", Score: 2},
	{Selector: "//meta[@property='article:modified_time']/@content", Score: 2},
	{Selector: "//meta[@name='DC.date.issued']/@content", Score: 2},
	{Selector: "//meta[@name='DC.date.created']/@content", Score: 2},
	{Selector: "//meta[@name='dcterms.created']/@content", Score: 1},
	{Selector: "//meta[@name='dcterms.modified']/@content", Score: 1},
}

// VisibleDateSelectors cover dates printed in the page itself. They are
// only consulted when no metadata date parses.
var VisibleDateSelectors = []SelectorScore{
	{Selector: "//time", Score: 3},
	{Selector: "//span[@class='date']", Score: 3},
	{Selector: "//span[@class='published']", Score: 3},
	{Selector: "//span[contains(@class, 'date')]", Score: 2},
	{Selector: "//div[contains(@class, 'date')]", Score: 2},
	{Selector: "//p[contains(@class, 'date')]", Score: 2},
	{Selector: "//*[contains(@class, 'dateline')]", Score: 1},
}

var datePrefix = regexp.MustCompile(`(?i)^(published|posted|updated|date|on|at|:|\s)+`)

// ExtractDate returns the publication date found in doc, or the zero time
func ExtractDate(doc *goquery.Document) time.Time {
	for _, selectors := range [][]SelectorScore{DateSelectors, VisibleDateSelectors} {
		extracted := ExtractElement(doc, selectors, nil)
		for _, candidate := range ranked(extracted) {
			if t := ParseDate(candidate); !t.IsZero() {
				return t
			}
		}
	}
	return time.Time{}
}

// ParseDate parses a date written in any common layout. Values without a
// zone are read as UTC. It returns the zero time when s is not a date.
func ParseDate(s string) time.Time {
	s = cleanupDateString(s)
	if s == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// cleanupDateString removes markup and leading words such as "Published on"
func cleanupDateString(s string) string {
	s = simplifiers.NormalizeWhitespace(simplifiers.StripTags(s))
	s = datePrefix.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
