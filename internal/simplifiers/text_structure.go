package simplifiers

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TextBlock is one block-level run of text in an article.
type TextBlock struct {
	Text  string
	Type  string // paragraph, heading, list-item, blockquote, preformatted
	Level int    // heading level, 0 otherwise
}

const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, blockquote, pre"

// wordsPerMinute is the reading speed assumed by ReadingTime.
const wordsPerMinute = 225

// ExtractBlocks returns the text blocks of an HTML fragment in document
// order. Blocks nested in another block are folded into the outer one. A
// fragment with text but no block elements yields a single paragraph.
func ExtractBlocks(fragment string) []TextBlock {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil
	}

	var blocks []TextBlock
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		if s.ParentsFiltered(blockSelector).Length() > 0 {
			return
		}
		text := NormalizeText(s.Text())
		if text == "" {
			return
		}
		block := TextBlock{Text: text, Type: "paragraph"}
		switch name := goquery.NodeName(s); name {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			block.Type, block.Level = "heading", int(name[1]-'0')
		case "li":
			block.Type = "list-item"
		case "blockquote":
			block.Type = "blockquote"
		case "pre":
			block.Type, block.Text = "preformatted", strings.TrimSpace(s.Text())
		}
		blocks = append(blocks, block)
	})

	if len(blocks) == 0 {
		if text := NormalizeText(doc.Text()); text != "" {
			blocks = append(blocks, TextBlock{Text: text, Type: "paragraph"})
		}
	}
	return blocks
}

// PlainText renders an HTML fragment as text, one block per paragraph.
func PlainText(fragment string) string {
	blocks := ExtractBlocks(fragment)
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.Type == "list-item" {
			parts = append(parts, "- "+b.Text)
			continue
		}
		parts = append(parts, b.Text)
	}
	return strings.Join(parts, "\n\n")
}

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// ReadingTime estimates minutes to read text, never less than one.
func ReadingTime(text string) int {
	minutes := CountWords(text) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
