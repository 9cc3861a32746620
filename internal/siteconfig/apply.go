package siteconfig

import (
	"html"
	"strings"
	"sync"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	xhtml "golang.org/x/net/html"

	"github.com/mrjoshuak/postcollect/internal/simplifiers"
)

var compiled sync.Map // map[string]*xpath.Expr

// compile returns the cached compiled form of expr. Invalid expressions
// return nil so that a broken community rule only disables that selector.
func compile(expr string) *xpath.Expr {
	if v, ok := compiled.Load(expr); ok {
		return v.(*xpath.Expr)
	}
	e, err := xpath.Compile(expr)
	if err != nil {
		return nil
	}
	compiled.Store(expr, e)
	return e
}

// query evaluates expr against root and returns the matched nodes.
func query(root *xhtml.Node, expr string) []*xhtml.Node {
	if root == nil || strings.TrimSpace(expr) == "" {
		return nil
	}
	e := compile(expr)
	if e == nil {
		return nil
	}
	return htmlquery.QuerySelectorAll(root, e)
}

// ApplyReplacements runs every find/replace pair over raw document text, in order.
func (r *Rule) ApplyReplacements(text string) string {
	if r == nil {
		return text
	}
	for _, rep := range r.Replacements {
		if rep.Find == "" {
			continue
		}
		text = strings.ReplaceAll(text, rep.Find, rep.Replace)
	}
	return text
}

// StripNodes removes elements matched by strip_id_or_class tokens and by
// strip selectors from the tree and returns how many were removed.
func (r *Rule) StripNodes(root *xhtml.Node) int {
	if r == nil || root == nil {
		return 0
	}

	removed := 0
	for _, token := range r.StripIDOrClass {
		lit, ok := xpathLiteral(strings.TrimSpace(token))
		if !ok {
			continue
		}
		removed += removeNodes(query(root, "//*[contains(@class, "+lit+")]|//*[@id="+lit+"]"))
	}
	for _, expr := range r.Strip {
		removed += removeNodes(query(root, expr))
	}
	return removed
}

// TitleText returns the plain-text title selected by the rule, if any.
func (r *Rule) TitleText(root *xhtml.Node) string {
	if r == nil {
		return ""
	}
	return simplifiers.NormalizeWhitespace(simplifiers.StripTags(innerHTML(query(root, r.Title))))
}

// BodyHTML returns the concatenated inner HTML of the body selector matches.
func (r *Rule) BodyHTML(root *xhtml.Node) string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(innerHTML(query(root, r.Body)))
}

// AuthorText returns the author selected by the rule. A selector written for
// an h2 byline is retried against h1.
func (r *Rule) AuthorText(root *xhtml.Node) string {
	if r != nil && r.Author != "" {
		for _, expr := range []string{r.Author, strings.ReplaceAll(r.Author, "h2", "h1")} {
			author := simplifiers.NormalizeWhitespace(simplifiers.StripTags(innerHTML(query(root, expr))))
			if author != "" {
				return author
			}
		}
	}
	return ""
}

// DateText returns the raw date string selected by the rule, if any.
func (r *Rule) DateText(root *xhtml.Node) string {
	if r == nil {
		return ""
	}
	nodes := query(root, r.Date)
	if len(nodes) == 0 {
		return ""
	}
	return simplifiers.NormalizeWhitespace(htmlquery.InnerText(nodes[0]))
}

// innerHTML concatenates the inner HTML of every node. Text nodes contribute
// their escaped text and attribute matches their value.
func innerHTML(nodes []*xhtml.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n.Type {
		case xhtml.TextNode:
			b.WriteString(html.EscapeString(n.Data))
		case xhtml.ElementNode, xhtml.DocumentNode:
			b.WriteString(htmlquery.OutputHTML(n, false))
		}
	}
	return b.String()
}

func removeNodes(nodes []*xhtml.Node) int {
	removed := 0
	for _, n := range nodes {
		if n.Parent == nil || n.Type == xhtml.DocumentNode {
			continue
		}
		n.Parent.RemoveChild(n)
		removed++
	}
	return removed
}

// xpathLiteral quotes s as an XPath 1.0 string literal. XPath has no escape
// syntax, so a value containing both quote characters cannot be expressed.
func xpathLiteral(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`, true
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'", true
	}
	return "", false
}
