// Package extractors pulls article metadata (title, byline, date) out of a
// parsed document with prioritized XPath selectors.
package extractors

import (
	"sort"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"

	"github.com/mrjoshuak/postcollect/internal/simplifiers"
)

// SelectorScore represents an XPath selector with a confidence score
type SelectorScore struct {
	Selector string
	Score    int
}

// ExtractedElement represents an extracted element with its score and the selectors used to find it
type ExtractedElement struct {
	Score     int
	Selectors []string
}

// ProcessDictFunc is a function that processes the extracted elements dictionary
type ProcessDictFunc func(map[string]*ExtractedElement) map[string]*ExtractedElement

var compiled sync.Map // selector -> *xpath.Expr

func compile(selector string) *xpath.Expr {
	if v, ok := compiled.Load(selector); ok {
		return v.(*xpath.Expr)
	}
	expr := xpath.MustCompile(selector)
	compiled.Store(selector, expr)
	return expr
}

// root returns the document node of doc, or nil for an empty document.
func root(doc *goquery.Document) *html.Node {
	if doc == nil || doc.Selection == nil || doc.Length() == 0 {
		return nil
	}
	return doc.Get(0)
}

// ExtractElement runs every selector against doc and scores each distinct
// normalized string by the selectors that produced it
func ExtractElement(doc *goquery.Document, selectors []SelectorScore, processDictFn ProcessDictFunc) map[string]*ExtractedElement {
	top := root(doc)
	if top == nil {
		return nil
	}

	extracted := make(map[string]*ExtractedElement)
	for _, sel := range selectors {
		for _, n := range htmlquery.QuerySelectorAll(top, compile(sel.Selector)) {
			text := simplifiers.NormalizeWhitespace(htmlquery.InnerText(n))
			if text == "" {
				continue
			}

			if e, exists := extracted[text]; exists {
				e.Score += sel.Score
				e.Selectors = append(e.Selectors, sel.Selector)
				sort.Strings(e.Selectors)
			} else {
				extracted[text] = &ExtractedElement{Score: sel.Score, Selectors: []string{sel.Selector}}
			}
		}
	}

	if processDictFn != nil {
		extracted = processDictFn(extracted)
	}
	return extracted
}

// ranked orders extracted strings by score, then alphabetically.
func ranked(extracted map[string]*ExtractedElement) []string {
	keys := make([]string, 0, len(extracted))
	for k := range extracted {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		si, sj := extracted[keys[i]].Score, extracted[keys[j]].Score
		if si != sj {
			return si > sj
		}
		return strings.Compare(keys[i], keys[j]) < 0
	})
	return keys
}

// firstMatch returns the first non-empty text produced by selectors, tried
// in order
func firstMatch(doc *goquery.Document, selectors []string) string {
	top := root(doc)
	if top == nil {
		return ""
	}
	for _, sel := range selectors {
		for _, n := range htmlquery.QuerySelectorAll(top, compile(sel)) {
			if text := simplifiers.NormalizeWhitespace(htmlquery.InnerText(n)); text != "" {
				return text
			}
		}
	}
	return ""
}
