package extractors

import "github.com/PuerkitoBio/goquery"

// TitleSelectors are tried in order; the first non-empty match wins.
var TitleSelectors = []string{
	"//h1",
	"//head/title",
	"//title",
	"//meta[@property='og:title']/@content",
	"//meta[@name='og:title']/@content",
	"//meta[@name='twitter:title']/@content",
}

// ExtractTitle returns the text of the first <h1>, else the document
// <title>, else the og:title meta tag
func ExtractTitle(doc *goquery.Document) string {
	return firstMatch(doc, TitleSelectors)
}
