package readability

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Overrides supplies per-site answers that take precedence over the
// heuristics: nodes to strip before scoring and fields picked by selector.
// Any method may return "" to defer that field to the generic algorithm.
type Overrides interface {
	StripNodes(root *html.Node) int
	TitleText(root *html.Node) string
	BodyHTML(root *html.Node) string
	AuthorText(root *html.Node) string
	DateText(root *html.Node) string
}

// Options defines configuration options for the Readability parser
type Options struct {
	URL               string    // Page URL, used to resolve relative links
	CharThreshold     int       // Minimum character threshold
	ClassesToPreserve []string  // Classes to preserve
	KeepClasses       bool      // Whether to keep classes
	Overrides         Overrides // Site-specific rules, may be nil
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		CharThreshold:     DefaultCharThreshold,
		ClassesToPreserve: ClassesToPreserve,
	}
}

// Result is what one extraction produced. Empty strings mean the field
// could not be found.
type Result struct {
	Title       string
	Author      string
	Content     string // Article content (HTML fragment)
	TextContent string // Article content as plain text
	Length      int    // Length of TextContent in characters
	Excerpt     string
	Date        time.Time

	// Sources names where each populated field came from.
	Sources map[string]string
}

// Field sources reported in Result.Sources
const (
	SourceOverride    = "override"
	SourceReadability = "readability"
	SourceMetadata    = "metadata"
)

// Readability implements the Readability algorithm
type Readability struct {
	doc           *goquery.Document
	options       Options
	articleByline string
}

// New creates a parser for doc. A nil opts uses DefaultOptions.
func New(doc *goquery.Document, opts *Options) *Readability {
	options := DefaultOptions()
	if opts != nil {
		options = *opts
		if options.CharThreshold <= 0 {
			options.CharThreshold = DefaultCharThreshold
		}
		if options.ClassesToPreserve == nil {
			options.ClassesToPreserve = ClassesToPreserve
		}
	}
	return &Readability{doc: doc, options: options}
}

// ParseHTML parses raw into a document. Blank input has nothing to parse
// and is reported as a parse error wrapping ErrNoDocument.
func ParseHTML(raw string) (*goquery.Document, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, WrapParseError(ErrNoDocument, "ParseHTML", "empty input")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, WrapParseError(err, "ParseHTML", "failed to parse HTML document")
	}
	return doc, nil
}

// Extract parses raw and runs the algorithm over it.
func Extract(raw string, opts *Options) (*Result, error) {
	doc, err := ParseHTML(raw)
	if err != nil {
		return nil, err
	}
	return New(doc, opts).Parse()
}

// Parse runs the Readability algorithm. It mutates the document. Finding
// nothing is not an error; the result simply has empty fields.
func (r *Readability) Parse() (*Result, error) {
	if r.doc == nil || r.doc.Selection.Length() == 0 {
		return nil, WrapValidationError(ErrNoDocument, "Parse", "")
	}

	root := r.doc.Get(0)
	if o := r.options.Overrides; o != nil {
		o.StripNodes(root)
	}

	result := &Result{Sources: make(map[string]string)}
	override := r.overrideFields(root)

	r.prepDocument()
	r.getArticleMetadata(result, override)

	if override.content != "" {
		result.Content = override.content
		result.Sources["content"] = SourceOverride
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(override.content)); err == nil {
			result.TextContent = InnerText(doc.Selection, true)
		}
	} else if article := r.grabArticle(); article != nil {
		r.postProcessContent(article)
		result.TextContent = InnerText(article, true)
		if result.TextContent != "" || article.Find("img, iframe, video, embed, object").Length() > 0 {
			content, err := article.Html()
			if err != nil {
				return nil, WrapExtractionError(err, "Parse", "failed to render article")
			}
			result.Content = strings.TrimSpace(content)
			result.Sources["content"] = SourceReadability
		}
		if result.Excerpt == "" {
			result.Excerpt = firstParagraph(article)
		}
	}
	result.Length = textLen(result.TextContent)

	if result.Author == "" && r.articleByline != "" {
		result.Author = r.articleByline
		result.Sources["author"] = SourceReadability
	}

	return result, nil
}

// firstParagraph returns the text of the first non-empty paragraph
func firstParagraph(article *goquery.Selection) string {
	var excerpt string
	article.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		excerpt = InnerText(s, true)
		return excerpt == ""
	})
	return excerpt
}
