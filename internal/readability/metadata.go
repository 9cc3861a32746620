package readability

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/mrjoshuak/postcollect/internal/extractors"
	"github.com/mrjoshuak/postcollect/internal/simplifiers"
)

// overrideValues are the fields resolved by site-specific selectors
type overrideValues struct {
	title, author, content, date string
}

func (r *Readability) overrideFields(root *html.Node) overrideValues {
	o := r.options.Overrides
	if o == nil {
		return overrideValues{}
	}
	return overrideValues{
		title:   o.TitleText(root),
		author:  o.AuthorText(root),
		content: o.BodyHTML(root),
		date:    o.DateText(root),
	}
}

// getArticleMetadata fills title, author, date and excerpt, preferring
// override values and falling back to the document's own markup
func (r *Readability) getArticleMetadata(result *Result, override overrideValues) {
	if override.title != "" {
		result.Title = override.title
		result.Sources["title"] = SourceOverride
	} else if title := extractors.ExtractTitle(r.doc); title != "" {
		result.Title = title
		result.Sources["title"] = SourceMetadata
	}

	if override.author != "" {
		result.Author = override.author
		result.Sources["author"] = SourceOverride
	} else if author := extractors.ExtractByline(r.doc); author != "" {
		result.Author = author
		result.Sources["author"] = SourceMetadata
	}

	if date := extractors.ParseDate(override.date); !date.IsZero() {
		result.Date = date
		result.Sources["date"] = SourceOverride
	} else if date := extractors.ExtractDate(r.doc); !date.IsZero() {
		result.Date = date
		result.Sources["date"] = SourceMetadata
	}

	result.Excerpt = simplifiers.NormalizeWhitespace(
		r.doc.Find(`meta[name="description"], meta[property="og:description"]`).First().AttrOr("content", ""))
}

// checkByline records the first short byline element seen during the walk
// and reports whether node is one
func (r *Readability) checkByline(node *goquery.Selection, matchString string) bool {
	if r.articleByline != "" {
		return false
	}

	rel := node.AttrOr("rel", "")
	itemprop := node.AttrOr("itemprop", "")
	if rel != "author" && !strings.Contains(itemprop, "author") && !RegexpByline.MatchString(matchString) {
		return false
	}

	text := InnerText(node, true)
	if text == "" || textLen(text) >= 100 {
		return false
	}
	r.articleByline = extractors.CleanByline(text)
	return r.articleByline != ""
}
