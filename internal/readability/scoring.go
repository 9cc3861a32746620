package readability

import (
	"math"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// candidate is the scoring state of one element during a single pass.
type candidate struct {
	node         *goquery.Selection
	contentScore float64
	initialized  bool
}

// scoreTable keeps candidate state beside the DOM instead of on it. A table
// lives for one extraction attempt.
type scoreTable struct {
	flags  int
	scores map[*html.Node]*candidate
	order  []*candidate
}

func newScoreTable(flags int) *scoreTable {
	return &scoreTable{flags: flags, scores: make(map[*html.Node]*candidate)}
}

// get returns the candidate for s, or nil when s was never scored.
func (t *scoreTable) get(s *goquery.Selection) *candidate {
	if s == nil || s.Length() == 0 {
		return nil
	}
	return t.scores[s.Get(0)]
}

// initialize returns the candidate for s, computing its base score from the
// tag name and class weight the first time s is seen.
func (t *scoreTable) initialize(s *goquery.Selection) *candidate {
	node := s.Get(0)
	if c, ok := t.scores[node]; ok {
		return c
	}

	c := &candidate{node: s, contentScore: tagScore(getNodeName(s)), initialized: true}
	if t.flags&FlagWeightClasses != 0 {
		c.contentScore += float64(ClassWeight(s))
	}
	t.scores[node] = c
	t.order = append(t.order, c)
	return c
}

// tagScore is the base score of an element by tag name.
func tagScore(tag string) float64 {
	switch tag {
	case "DIV":
		return DivInitialScore
	case "PRE", "TD", "BLOCKQUOTE":
		return BlockquoteInitialScore
	case "ADDRESS", "OL", "UL", "DL", "DD", "DT", "LI", "FORM":
		return NegativeListInitialScore
	case "H1", "H2", "H3", "H4", "H5", "H6", "TH":
		return HeadingInitialScore
	}
	return 0
}

// scoreNodes scores every paragraph-like element and propagates the score to
// its parent at full weight and grandparent at half weight.
func (t *scoreTable) scoreNodes(elementsToScore []*goquery.Selection) {
	for _, elem := range elementsToScore {
		if elem.Parent().Length() == 0 {
			continue
		}

		innerText := InnerText(elem, true)
		if textLen(innerText) < MinContentTextLength {
			continue
		}

		ancestors := getNodeAncestors(elem, AncestorLevelDepth)
		if len(ancestors) == 0 {
			continue
		}

		contentScore := BaseContentScore
		contentScore += float64(getCharCount(elem, ",") + 1)
		contentScore += math.Min(math.Floor(float64(textLen(innerText))/TextLengthDivisor), MaxLengthBonus)

		for level, ancestor := range ancestors {
			if getNodeName(ancestor) == "" || ancestor.Parent().Length() == 0 {
				continue
			}

			divider := AncestorScoreDividerL0
			if level == 1 {
				divider = AncestorScoreDividerL1
			}
			t.initialize(ancestor).contentScore += contentScore / divider
		}
	}
}

// topCandidate applies the link-density penalty to every candidate and
// returns the best one. Equal scores go to the node earliest in the
// document. It returns nil when nothing scored above zero.
func (t *scoreTable) topCandidate(root *html.Node) *candidate {
	position := documentOrder(root)

	var top *candidate
	for _, c := range t.order {
		c.contentScore *= 1 - LinkDensity(c.node)

		switch {
		case top == nil:
			top = c
		case c.contentScore > top.contentScore:
			top = c
		case c.contentScore == top.contentScore && position[c.node.Get(0)] < position[top.node.Get(0)]:
			top = c
		}
	}

	if top == nil || top.contentScore <= 0 {
		return nil
	}
	return top
}
