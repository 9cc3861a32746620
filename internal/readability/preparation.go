package readability

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// prepDocument strips what can never be content and normalizes markup the
// scorer relies on
func (r *Readability) prepDocument() {
	r.doc.Find("script, noscript, style, template").Remove()

	// Hidden logos and modal headings must not win the title or byline.
	r.doc.Find("body *").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return !IsProbablyVisible(s.Get(0))
	}).Remove()

	if body := r.doc.Find("body"); body.Length() > 0 {
		replaceBrs(body)
	}

	r.doc.Find("font").Each(func(_ int, s *goquery.Selection) {
		setNodeTag(s, "span")
	})
}

// replaceBrs replaces 2 or more successive <br> elements with a single <p>
// holding the phrasing content that follows them
func replaceBrs(elem *goquery.Selection) {
	elem.Find("br").Each(func(_ int, br *goquery.Selection) {
		node := br.Get(0)
		parent := node.Parent
		if parent == nil {
			return
		}

		replaced := false
		for next := nextSignificant(node.NextSibling); next != nil && isBr(next); next = nextSignificant(node.NextSibling) {
			replaced = true
			for node.NextSibling != next {
				parent.RemoveChild(node.NextSibling)
			}
			parent.RemoveChild(next)
		}
		if !replaced {
			return
		}

		p := &html.Node{Type: html.ElementNode, Data: "p", DataAtom: atom.P}
		parent.InsertBefore(p, node)
		parent.RemoveChild(node)

		for next := p.NextSibling; next != nil; {
			if isBr(next) {
				if after := nextSignificant(next.NextSibling); after != nil && isBr(after) {
					break
				}
			}
			if !IsPhrasingContent(next) {
				break
			}
			sibling := next.NextSibling
			parent.RemoveChild(next)
			p.AppendChild(next)
			next = sibling
		}

		for p.LastChild != nil && isWhitespace(p.LastChild) {
			p.RemoveChild(p.LastChild)
		}

		if parent.Type == html.ElementNode && parent.DataAtom == atom.P {
			parent.Data = "div"
			parent.DataAtom = atom.Div
		}
	})
}

// nextSignificant skips whitespace-only text nodes
func nextSignificant(n *html.Node) *html.Node {
	for n != nil && n.Type == html.TextNode && strings.TrimSpace(n.Data) == "" {
		n = n.NextSibling
	}
	return n
}

func isBr(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && n.DataAtom == atom.Br
}

func isWhitespace(n *html.Node) bool {
	return (n.Type == html.TextNode && strings.TrimSpace(n.Data) == "") || isBr(n)
}

// postProcessContent resolves links against the page URL and strips
// classes and attributes that should not reach storage
func (r *Readability) postProcessContent(articleContent *goquery.Selection) {
	r.fixRelativeURIs(articleContent)

	if !r.options.KeepClasses {
		r.cleanClasses(articleContent)
	}
	cleanAttributes(articleContent)
}

// fixRelativeURIs converts relative URIs to absolute ones and unwraps
// javascript: links
func (r *Readability) fixRelativeURIs(articleContent *goquery.Selection) {
	base, err := url.Parse(r.options.URL)
	if err != nil || !base.IsAbs() {
		base = nil
	}

	articleContent.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if strings.HasPrefix(strings.ToLower(href), "javascript:") {
			a.ReplaceWithSelection(a.Contents())
			return
		}
		if base != nil {
			a.SetAttr("href", resolveURI(base, href))
		}
	})

	if base == nil {
		return
	}
	articleContent.Find("img[src], video[src], audio[src], source[src], iframe[src], embed[src]").Each(func(_ int, s *goquery.Selection) {
		s.SetAttr("src", resolveURI(base, s.AttrOr("src", "")))
	})
	articleContent.Find("video[poster]").Each(func(_ int, s *goquery.Selection) {
		s.SetAttr("poster", resolveURI(base, s.AttrOr("poster", "")))
	})
}

// resolveURI leaves in-page fragments and unparsable values alone.
func resolveURI(base *url.URL, ref string) string {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "data:") {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
