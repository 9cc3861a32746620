package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrjoshuak/postcollect/internal/markdown"
	"github.com/mrjoshuak/postcollect/types"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want []string
	}{
		{"paragraph", `<p>Hello, world!</p>`, []string{"Hello, world!"}},
		{"headings", `<h2>Subtitle</h2><h3>Section</h3>`, []string{"## Subtitle", "### Section"}},
		{"links", `<p>Visit <a href="https://example.com">Example</a>.</p>`, []string{"[Example](https://example.com)"}},
		{"emphasis", `<p><strong>bold</strong> and <em>italic</em></p>`, []string{"**bold**", "*italic*"}},
		{"lists", `<ul><li>one</li><li>two</li></ul>`, []string{"- one", "- two"}},
		{"tables", `<table><tr><th>A</th><th>B</th></tr><tr><td>1</td><td>2</td></tr></table>`, []string{"| A", "| 1"}},
	}

	conv := markdown.NewConverter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md, err := conv.Convert(tt.html)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, md, want)
			}
		})
	}
}

func TestConverter_ConvertEmpty(t *testing.T) {
	t.Parallel()

	_, err := markdown.NewConverter().Convert("  \n ")
	assert.ErrorIs(t, err, types.ErrNoContent)
}

func TestConverter_Page(t *testing.T) {
	t.Parallel()

	page := &types.ExtractedPage{Title: "Field Notes", Content: "<p>Body text.</p>"}
	md, err := markdown.NewConverter().Page(page)
	require.NoError(t, err)
	assert.Equal(t, "# Field Notes\n\nBody text.\n", md)
}
