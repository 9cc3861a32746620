package readability

import (
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// prepArticle cleans the assembled article: presentational attributes,
// embeds, forms and anything that looks like boilerplate go away
func (r *Readability) prepArticle(articleContent *goquery.Selection, flags int) {
	r.cleanStyles(articleContent)

	r.cleanConditionally(articleContent, "form", flags)
	r.cleanConditionally(articleContent, "fieldset", flags)
	r.clean(articleContent, "object")
	r.clean(articleContent, "embed")
	r.clean(articleContent, "footer")
	r.clean(articleContent, "link")
	r.clean(articleContent, "aside")
	r.clean(articleContent, "nav")

	articleContent.Children().Each(func(_ int, child *goquery.Selection) {
		cleanMatchedNodes(child, func(node *goquery.Selection, matchString string) bool {
			return RegexpShareElements.MatchString(matchString) &&
				textLen(InnerText(node, true)) < r.options.CharThreshold
		})
	})

	r.clean(articleContent, "iframe")
	r.clean(articleContent, "input")
	r.clean(articleContent, "textarea")
	r.clean(articleContent, "select")
	r.clean(articleContent, "button")
	r.cleanHeaders(articleContent, flags)

	r.cleanConditionally(articleContent, "table", flags)
	r.cleanConditionally(articleContent, "ul", flags)
	r.cleanConditionally(articleContent, "div", flags)

	articleContent.Find("h1").Each(func(_ int, h1 *goquery.Selection) {
		setNodeTag(h1, "h2")
	})

	// Remove empty paragraphs
	articleContent.Find("p").Each(func(_ int, p *goquery.Selection) {
		if p.Find("img, embed, object, iframe").Length() == 0 && InnerText(p, false) == "" {
			p.Remove()
		}
	})

	// Remove BR elements before paragraphs
	articleContent.Find("br").Each(func(_ int, br *goquery.Selection) {
		if next := nextSignificant(br.Get(0).NextSibling); next != nil && next.Type == html.ElementNode && next.Data == "p" {
			br.Remove()
		}
	})

	// Replace single-cell tables with their content
	articleContent.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() != 1 {
			return
		}
		cells := rows.First().Children().Filter("td")
		if cells.Length() != 1 || rows.First().Children().Length() != 1 {
			return
		}

		cell := cells.First()
		allPhrasing := true
		for c := cell.Get(0).FirstChild; c != nil; c = c.NextSibling {
			if !IsPhrasingContent(c) {
				allPhrasing = false
				break
			}
		}
		if allPhrasing {
			setNodeTag(cell, "p")
		} else {
			setNodeTag(cell, "div")
		}
		table.ReplaceWithSelection(cell)
	})
}

// clean removes all nodes of the specified tag from the element. Embeds of
// known video hosts are kept.
func (r *Readability) clean(e *goquery.Selection, tag string) {
	isEmbed := tag == "object" || tag == "embed" || tag == "iframe"

	e.Find(tag).Each(func(_ int, node *goquery.Selection) {
		if isEmbed && isAllowedVideo(node) {
			return
		}
		node.Remove()
	})
}

// cleanMatchedNodes removes descendants of e whose class and id string
// satisfies filter
func cleanMatchedNodes(e *goquery.Selection, filter func(*goquery.Selection, string) bool) {
	e.Find("*").Each(func(_ int, node *goquery.Selection) {
		matchString := node.AttrOr("class", "") + " " + node.AttrOr("id", "")
		if filter(node, matchString) {
			node.Remove()
		}
	})
}

// cleanHeaders removes h1 and h2 elements that carry a negative class weight
func (r *Readability) cleanHeaders(e *goquery.Selection, flags int) {
	if flags&FlagWeightClasses == 0 {
		return
	}
	e.Find("h1, h2").Each(func(_ int, h *goquery.Selection) {
		if ClassWeight(h) < 0 {
			h.Remove()
		}
	})
}

// cleanConditionally removes elements of tag that don't look like content:
// too many images, inputs or links for the amount of text around them
func (r *Readability) cleanConditionally(e *goquery.Selection, tag string, flags int) {
	if flags&FlagCleanConditionally == 0 {
		return
	}

	isList := tag == "ul" || tag == "ol"
	e.Find(tag).Each(func(_ int, node *goquery.Selection) {
		if tag == "table" && isDataTable(node) {
			return
		}
		if node.ParentsFiltered("table").FilterFunction(func(_ int, t *goquery.Selection) bool {
			return isDataTable(t)
		}).Length() > 0 {
			return
		}
		if hasAncestorTag(node, "code", 0) {
			return
		}

		if r.shouldRemoveNode(node, isList, flags) {
			node.Remove()
		}
	})
}

// shouldRemoveNode evaluates if a node should be removed during conditional cleaning
func (r *Readability) shouldRemoveNode(node *goquery.Selection, isList bool, flags int) bool {
	weight := 0
	if flags&FlagWeightClasses != 0 {
		weight = ClassWeight(node)
	}
	if weight < 0 {
		return true
	}

	if getCharCount(node, ",") >= MinCommaCount {
		return false
	}

	m := nodeMetrics(node)
	inFigure := hasAncestorTag(node, "figure", 3)

	// Lists that are mostly single images form a gallery.
	if items := m.liCount + ListItemAllowance; isList && items > 0 && m.imgCount == items {
		return false
	}

	switch {
	case m.imgCount > 1 && float64(m.paragraphCount)/float64(m.imgCount) < 0.5 && !inFigure:
		return true
	case !isList && m.liCount > m.paragraphCount:
		return true
	case float64(m.inputCount) > math.Floor(float64(m.paragraphCount)/3):
		return true
	case !isList && m.headingDensity < HeadingDensityThreshold &&
		m.contentLength < MinContentTextLength &&
		(m.imgCount == 0 || m.imgCount > 2) && !inFigure:
		return true
	case !isList && weight < ConditionalWeightThresholdLow && m.linkDensity > ConditionalLinkDensityThresholdLow:
		return true
	case weight >= ConditionalWeightThresholdLow && m.linkDensity > ConditionalLinkDensityThresholdHigh:
		return true
	case (m.embedCount == 1 && m.contentLength < MinEmbedContentLength) || m.embedCount > 1:
		return true
	}
	return false
}

// metrics holds the counts used to judge a node during conditional cleaning
type metrics struct {
	paragraphCount int
	imgCount       int
	liCount        int
	inputCount     int
	embedCount     int
	contentLength  int
	headingDensity float64
	linkDensity    float64
}

func nodeMetrics(node *goquery.Selection) metrics {
	m := metrics{
		paragraphCount: node.Find("p").Length(),
		imgCount:       node.Find("img").Length(),
		liCount:        node.Find("li").Length() - ListItemAllowance,
		inputCount:     node.Find("input").Length(),
		contentLength:  textLen(InnerText(node, true)),
		linkDensity:    LinkDensity(node),
	}

	if m.contentLength > 0 {
		headingText := 0
		node.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, h *goquery.Selection) {
			headingText += textLen(InnerText(h, true))
		})
		m.headingDensity = float64(headingText) / float64(m.contentLength)
	}

	node.Find("object, embed, iframe").Each(func(_ int, embed *goquery.Selection) {
		if !isAllowedVideo(embed) {
			m.embedCount++
		}
	})
	return m
}

// isDataTable guesses whether a table holds data rather than layout.
func isDataTable(table *goquery.Selection) bool {
	if role := table.AttrOr("role", ""); role == "presentation" {
		return false
	}
	if table.AttrOr("datatable", "") == "0" {
		return false
	}
	if table.AttrOr("summary", "") != "" {
		return true
	}
	if table.Find("caption, thead, tfoot, colgroup, col, th").Length() > 0 {
		return true
	}
	if table.Find("table").Length() > 0 {
		return false
	}

	rows := table.Find("tr")
	columns := 0
	rows.Each(func(_ int, tr *goquery.Selection) {
		if n := tr.Children().Filter("td").Length(); n > columns {
			columns = n
		}
	})
	if rows.Length() == 1 || columns == 1 {
		return false
	}
	return rows.Length() >= 10 || columns > 4 || rows.Length()*columns > 10
}

// cleanStyles removes presentational attributes from e and its descendants
func (r *Readability) cleanStyles(e *goquery.Selection) {
	if e == nil || e.Length() == 0 || getNodeName(e) == "SVG" {
		return
	}

	for _, attr := range PresentationalAttributes {
		e.RemoveAttr(attr)
	}
	if contains(DeprecatedSizeAttributeElems, getNodeName(e)) {
		e.RemoveAttr("width")
		e.RemoveAttr("height")
	}

	e.Children().Each(func(_ int, child *goquery.Selection) {
		r.cleanStyles(child)
	})
}

// cleanClasses removes class attributes except those in ClassesToPreserve
func (r *Readability) cleanClasses(node *goquery.Selection) {
	node.Find("[class]").AddSelection(node.Filter("[class]")).Each(func(_ int, s *goquery.Selection) {
		var keep []string
		for _, cls := range strings.Fields(s.AttrOr("class", "")) {
			if contains(r.options.ClassesToPreserve, cls) {
				keep = append(keep, cls)
			}
		}
		if len(keep) > 0 {
			s.SetAttr("class", strings.Join(keep, " "))
		} else {
			s.RemoveAttr("class")
		}
	})
}

// cleanAttributes drops every attribute outside AllowedAttributes, which
// takes event handlers and inline styles with it
func cleanAttributes(e *goquery.Selection) {
	e.Find("*").Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		if node.Data == "svg" || hasAncestorTag(s, "svg", 0) {
			return
		}
		kept := node.Attr[:0]
		for _, attr := range node.Attr {
			if attr.Namespace == "" && AllowedAttributes[strings.ToLower(attr.Key)] {
				kept = append(kept, attr)
			}
		}
		node.Attr = kept
	})
}
