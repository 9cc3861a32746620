package extractors

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// BylineSelectors is the list of CSS selectors for elements that could hold
// a byline, in order of confidence
var BylineSelectors = []string{
	"meta[property='article:author']",
	"meta[property='og:article:author']",
	"meta[name='author']",
	"meta[name='sailthru.author']",
	"meta[name='byl']",
	"meta[name='twitter:creator']",
	"meta[property='book:author']",
	"meta[name='dc.creator']",
	"meta[name='dcterms.creator']",
	"a[rel='author']",
	"article .entry-author",
	"span[itemprop='author']",
	"div[itemprop='author']",
	"span[class*='author']",
	"p[class*='author']",
	"div[class*='author']",
	"span[class*='byline']",
	"p[class*='byline']",
	"div[class*='byline']",
}

// bylinePrefixes are stripped from the front of a byline
var bylinePrefixes = []string{"by ", "author: ", "written by ", "posted by ", "published by ", "reported by "}

// bylineSuffixes are stripped from the end of a byline
var bylineSuffixes = []string{" | Author", " | Writer", " | Reporter", " | Staff"}

// ExtractByline returns the article author from meta tags, rel=author links
// or byline elements, or "" when none is found
func ExtractByline(doc *goquery.Document) string {
	if doc == nil {
		return ""
	}

	for _, selector := range BylineSelectors {
		var byline string
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if strings.HasPrefix(selector, "meta") {
				byline = CleanByline(s.AttrOr("content", ""))
			} else if s.Find("[itemprop='name']").Length() > 0 {
				byline = CleanByline(s.Find("[itemprop='name']").First().Text())
			} else {
				byline = CleanByline(s.Text())
			}
			return byline == ""
		})
		if byline != "" {
			return byline
		}
	}

	return extractBylineFromParagraphs(doc)
}

// extractBylineFromParagraphs finds paragraphs that open with "By "
func extractBylineFromParagraphs(doc *goquery.Document) string {
	var result string
	doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		lower := strings.ToLower(text)
		if (strings.HasPrefix(lower, "by ") || strings.HasPrefix(lower, "written by ")) && len(text) < 100 {
			result = CleanByline(text)
		}
		return result == ""
	})
	return result
}

// CleanByline trims whitespace, "By"-style prefixes and role suffixes
func CleanByline(byline string) string {
	byline = strings.Join(strings.Fields(byline), " ")

	lower := strings.ToLower(byline)
	for _, prefix := range bylinePrefixes {
		if strings.HasPrefix(lower, prefix) {
			byline = strings.TrimSpace(byline[len(prefix):])
			break
		}
	}

	for _, suffix := range bylineSuffixes {
		byline = strings.TrimSpace(strings.TrimSuffix(byline, suffix))
	}

	return byline
}
