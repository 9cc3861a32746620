package readability

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ClassWeight scores the class and id attributes of the selection's first
// node. Each attribute adds ClassWeightPositive when it looks like content
// and subtracts ClassWeightNegative when it looks like boilerplate, so the
// result lies between -50 and +50.
func ClassWeight(s *goquery.Selection) int {
	if s == nil || s.Length() == 0 {
		return 0
	}

	weight := 0
	for _, attr := range []string{"class", "id"} {
		val, exists := s.Attr(attr)
		if !exists || val == "" {
			continue
		}
		if RegexpNegative.MatchString(val) {
			weight -= ClassWeightNegative
		}
		if RegexpPositive.MatchString(val) {
			weight += ClassWeightPositive
		}
	}
	return weight
}

// LinkDensity returns the share of the selection's normalized text that sits
// inside anchors. In-page hash links count at HashLinkWeight. A selection
// without text has density 0.
func LinkDensity(s *goquery.Selection) float64 {
	if s == nil || s.Length() == 0 {
		return 0
	}

	textLength := textLen(InnerText(s, true))
	if textLength == 0 {
		return 0
	}

	var linkLength float64
	s.Find("a").Each(func(_ int, link *goquery.Selection) {
		coefficient := 1.0
		if href, exists := link.Attr("href"); exists && RegexpHashURL.MatchString(href) {
			coefficient = HashLinkWeight
		}
		linkLength += float64(textLen(InnerText(link, true))) * coefficient
	})

	density := linkLength / float64(textLength)
	if density > 1 {
		density = 1
	}
	return density
}

// IsProbablyVisible reports whether node would render. Inline display:none,
// the hidden attribute and aria-hidden="true" all hide a node, except that
// aria-hidden images marked fallback-image stay visible.
func IsProbablyVisible(node *html.Node) bool {
	if node == nil {
		return false
	}
	if node.Type != html.ElementNode {
		return true
	}

	var class string
	ariaHidden := false
	for _, attr := range node.Attr {
		switch attr.Key {
		case "style":
			if RegexpDisplayNone.MatchString(attr.Val) {
				return false
			}
		case "hidden":
			return false
		case "aria-hidden":
			ariaHidden = attr.Val == "true"
		case "class":
			class = attr.Val
		}
	}
	if ariaHidden && !strings.Contains(class, "fallback-image") {
		return false
	}
	return true
}

// IsPhrasingContent reports whether node is inline content: a text node, one
// of PhrasingElems, or an a/del/ins element whose children are all phrasing.
func IsPhrasingContent(node *html.Node) bool {
	if node == nil {
		return false
	}
	if node.Type == html.TextNode {
		return true
	}
	if node.Type != html.ElementNode {
		return false
	}

	tag := strings.ToUpper(node.Data)
	if contains(PhrasingElems, tag) {
		return true
	}

	if tag == "A" || tag == "DEL" || tag == "INS" {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if !IsPhrasingContent(child) {
				return false
			}
		}
		return true
	}

	return false
}

// InnerText returns the trimmed text of the selection, with runs of
// whitespace collapsed to one space when normalizeSpaces is set.
func InnerText(s *goquery.Selection, normalizeSpaces bool) string {
	if s == nil || s.Length() == 0 {
		return ""
	}

	text := strings.TrimSpace(s.Text())
	if normalizeSpaces {
		text = RegexpNormalize.ReplaceAllString(text, " ")
	}
	return text
}

// textLen measures text in characters rather than bytes.
func textLen(text string) int {
	return utf8.RuneCountInString(text)
}

// getNodeName returns the uppercase tag name of a selection
func getNodeName(s *goquery.Selection) string {
	if s == nil || s.Length() == 0 {
		return ""
	}
	node := s.Get(0)
	if node == nil || node.Type != html.ElementNode {
		return ""
	}
	return strings.ToUpper(node.Data)
}

// getCharCount counts occurrences of a delimiter in the text
func getCharCount(s *goquery.Selection, delimiter string) int {
	return strings.Count(InnerText(s, true), delimiter)
}

// contains checks if a string is in a string slice
func contains(slice []string, s string) bool {
	for _, item := range slice {
		if item == s {
			return true
		}
	}
	return false
}

// hasAncestorTag checks if the node has an ancestor with the given tag.
// A maxDepth of 0 or less searches all the way up.
func hasAncestorTag(s *goquery.Selection, tagName string, maxDepth int) bool {
	if s == nil || s.Length() == 0 {
		return false
	}

	tagName = strings.ToUpper(tagName)
	depth := 0
	for parent := s.Parent(); parent.Length() > 0; parent = parent.Parent() {
		if maxDepth > 0 && depth >= maxDepth {
			return false
		}
		if getNodeName(parent) == tagName {
			return true
		}
		depth++
	}
	return false
}

// isElementWithoutContent checks if a node has no text and only br/hr children
func isElementWithoutContent(s *goquery.Selection) bool {
	if s == nil || s.Length() == 0 {
		return true
	}
	if strings.TrimSpace(s.Text()) != "" {
		return false
	}

	children := s.Children()
	breaks := children.Filter("br, hr").Length()
	return children.Length() == 0 || children.Length() == breaks
}

// hasSingleTagInsideElement checks if the node contains only a single tag of
// the given type and no text of its own
func hasSingleTagInsideElement(s *goquery.Selection, tag string) bool {
	if s == nil || s.Length() == 0 {
		return false
	}

	children := s.Children()
	if children.Length() != 1 || getNodeName(children) != strings.ToUpper(tag) {
		return false
	}

	for c := s.Get(0).FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
			return false
		}
	}
	return true
}

// hasChildBlockElement checks if an element has any block level descendants
func hasChildBlockElement(s *goquery.Selection) bool {
	if s == nil || s.Length() == 0 {
		return false
	}
	return s.Find(strings.Join(DivToPElems, ", ")).Length() > 0
}

// isAllowedVideo reports whether an embed points at a known video host.
func isAllowedVideo(s *goquery.Selection) bool {
	node := s.Get(0)
	for _, attr := range node.Attr {
		if RegexpVideos.MatchString(attr.Val) {
			return true
		}
	}
	if getNodeName(s) == "OBJECT" {
		inner, _ := s.Html()
		return RegexpVideos.MatchString(inner)
	}
	return false
}
