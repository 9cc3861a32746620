package readability

import (
	"math"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// attemptFlags lists the flag sets tried in order. Each retry relaxes one
// more heuristic.
var attemptFlags = []int{
	FlagStripUnlikelys | FlagWeightClasses | FlagCleanConditionally,
	FlagWeightClasses | FlagCleanConditionally,
	FlagCleanConditionally,
	0,
}

// grabArticle extracts the main content from the document. Attempts that
// yield fewer than CharThreshold characters are retried with relaxed flags
// on a fresh copy of the body; if none reaches the threshold the longest
// attempt wins.
func (r *Readability) grabArticle() *goquery.Selection {
	body := r.doc.Find("body").First()
	if body.Length() == 0 {
		return nil
	}
	pageHTML, err := body.Html()
	if err != nil {
		return nil
	}

	var best *goquery.Selection
	bestLength := -1
	for i, flags := range attemptFlags {
		if i > 0 {
			body.SetHtml(pageHTML)
		}
		r.articleByline = ""

		article := r.grabArticleNode(body, flags)
		length := textLen(InnerText(article, true))
		if length >= r.options.CharThreshold {
			return article
		}
		if length > bestLength {
			best, bestLength = article, length
		}
	}
	return best
}

// grabArticleNode runs one scoring pass over body and returns the assembled
// and cleaned article container
func (r *Readability) grabArticleNode(body *goquery.Selection, flags int) *goquery.Selection {
	elementsToScore := r.prepareNodesForScoring(body, flags)

	scores := newScoreTable(flags)
	scores.scoreNodes(elementsToScore)

	article := newContainer()
	top := scores.topCandidate(body.Get(0))
	if top == nil || getNodeName(top.node) == "BODY" {
		article.AppendSelection(body.Contents().Clone())
	} else {
		node, score := top.node, top.contentScore
		// A candidate that is an only child says nothing its parent doesn't.
		for parent := node.Parent(); parent.Length() > 0 && getNodeName(parent) != "BODY" && parent.Children().Length() == 1; parent = node.Parent() {
			node = parent
		}
		r.addSiblings(article, node, score, scores)
	}

	r.prepArticle(article, flags)
	return article
}

// newContainer returns a detached <div> that collects the article.
func newContainer() *goquery.Selection {
	div := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	return goquery.NewDocumentFromNode(div).Selection
}

// prepareNodesForScoring walks body in document order, removes nodes that
// cannot be content and returns the elements whose text will be scored
func (r *Readability) prepareNodesForScoring(body *goquery.Selection, flags int) []*goquery.Selection {
	var elementsToScore []*goquery.Selection

	node := body
	for node != nil && node.Length() > 0 {
		tagName := getNodeName(node)
		matchString := node.AttrOr("class", "") + " " + node.AttrOr("id", "")

		if !IsProbablyVisible(node.Get(0)) {
			node = removeAndGetNext(node)
			continue
		}

		if node.AttrOr("aria-modal", "") == "true" && node.AttrOr("role", "") == "dialog" {
			node = removeAndGetNext(node)
			continue
		}

		if r.checkByline(node, matchString) {
			node = removeAndGetNext(node)
			continue
		}

		if flags&FlagStripUnlikelys != 0 {
			if RegexpUnlikelyCandidates.MatchString(matchString) &&
				!RegexpMaybeCandidate.MatchString(matchString) &&
				!hasAncestorTag(node, "table", 0) && !hasAncestorTag(node, "code", 0) &&
				tagName != "BODY" && tagName != "A" {
				node = removeAndGetNext(node)
				continue
			}

			if contains(UnlikelyRoles, node.AttrOr("role", "")) {
				node = removeAndGetNext(node)
				continue
			}
		}

		switch tagName {
		case "DIV", "SECTION", "HEADER", "H1", "H2", "H3", "H4", "H5", "H6":
			if isElementWithoutContent(node) {
				node = removeAndGetNext(node)
				continue
			}
		}

		if contains(DefaultTagsToScore, tagName) {
			elementsToScore = append(elementsToScore, node)
		}

		// Turn DIVs with only non-block level content into Ps
		if tagName == "DIV" {
			if hasSingleTagInsideElement(node, "P") && LinkDensity(node) < ParagraphLinkDensityThreshold {
				child := node.Children().First()
				node.ReplaceWithSelection(child)
				node = child
				elementsToScore = append(elementsToScore, node)
			} else if !hasChildBlockElement(node) {
				setNodeTag(node, "p")
				elementsToScore = append(elementsToScore, node)
			}
		}

		node = getNextNode(node, false)
	}

	return elementsToScore
}

// addSiblings appends the top candidate and every sibling that scores close
// enough to it, or that reads like a real paragraph
func (r *Readability) addSiblings(article, top *goquery.Selection, topScore float64, scores *scoreTable) {
	parent := top.Parent()
	if parent.Length() == 0 {
		article.AppendSelection(top.Clone())
		return
	}

	threshold := math.Max(MinimumSiblingScoreThreshold, topScore*SiblingScoreMultiplier)
	topClass := top.AttrOr("class", "")

	parent.Children().Each(func(_ int, sibling *goquery.Selection) {
		if sibling.Get(0) == top.Get(0) {
			article.AppendSelection(sibling.Clone())
			return
		}

		bonus := 0.0
		if topClass != "" && sibling.AttrOr("class", "") == topClass {
			bonus = topScore * SameClassSiblingBonus
		}
		if c := scores.get(sibling); c != nil && c.contentScore+bonus >= threshold {
			article.AppendSelection(sibling.Clone())
			return
		}

		if getNodeName(sibling) == "P" && isGoodParagraph(sibling) {
			article.AppendSelection(sibling.Clone())
		}
	})
}

// isGoodParagraph accepts long paragraphs with few links and short ones
// without links that still contain a full sentence
func isGoodParagraph(p *goquery.Selection) bool {
	linkDensity := LinkDensity(p)
	content := InnerText(p, true)
	length := textLen(content)

	if length > MinParagraphLength {
		return linkDensity < ParagraphLinkDensityThreshold
	}
	return length > 0 && linkDensity == 0 && RegexpSentenceEnd.MatchString(content)
}
