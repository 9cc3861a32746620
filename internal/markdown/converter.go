// Package markdown renders extracted article HTML as Markdown.
package markdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/mrjoshuak/postcollect/types"
)

// Converter wraps html-to-markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a Converter with the CommonMark and table plugins.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an HTML fragment into Markdown. Blank input yields
// types.ErrNoContent.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", types.ErrNoContent
	}
	return c.conv.ConvertString(html)
}

// Page renders a page as a Markdown document with the title as a heading.
func (c *Converter) Page(page *types.ExtractedPage) (string, error) {
	body, err := c.Convert(page.Content)
	if err != nil {
		return "", err
	}
	if page.Title == "" {
		return body, nil
	}
	return "# " + page.Title + "\n\n" + strings.TrimSpace(body) + "\n", nil
}
