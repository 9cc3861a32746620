package readability

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// getNextNode gets the next element in depth-first order, skipping the
// node's own subtree when ignoreSelfAndKids is set
func getNextNode(s *goquery.Selection, ignoreSelfAndKids bool) *goquery.Selection {
	if s == nil || s.Length() == 0 {
		return nil
	}

	if !ignoreSelfAndKids {
		if kids := s.Children(); kids.Length() > 0 {
			return kids.First()
		}
	}

	if next := s.Next(); next.Length() > 0 {
		return next
	}

	parent := s.Parent()
	for parent.Length() > 0 && parent.Next().Length() == 0 {
		parent = parent.Parent()
	}
	if parent.Length() == 0 {
		return nil
	}
	return parent.Next()
}

// removeAndGetNext removes a node from the DOM and returns the next node
func removeAndGetNext(s *goquery.Selection) *goquery.Selection {
	next := getNextNode(s, true)
	s.Remove()
	return next
}

// getNodeAncestors lists the element ancestors of s, nearest first, up to
// maxDepth levels (0 means no limit)
func getNodeAncestors(s *goquery.Selection, maxDepth int) []*goquery.Selection {
	var ancestors []*goquery.Selection
	for parent := s.Parent(); parent.Length() > 0; parent = parent.Parent() {
		if parent.Get(0).Type != html.ElementNode {
			break
		}
		ancestors = append(ancestors, parent)
		if maxDepth > 0 && len(ancestors) == maxDepth {
			break
		}
	}
	return ancestors
}

// setNodeTag renames the element in place. The node keeps its identity,
// attributes and children.
func setNodeTag(s *goquery.Selection, tagName string) *goquery.Selection {
	if s == nil || s.Length() == 0 {
		return s
	}
	node := s.Get(0)
	node.Data = strings.ToLower(tagName)
	node.DataAtom = atom.Lookup([]byte(node.Data))
	return s
}

// documentOrder numbers every element under root in pre-order.
func documentOrder(root *html.Node) map[*html.Node]int {
	order := make(map[*html.Node]int)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			order[n] = len(order)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return order
}
