package simplifiers

import (
	"strings"
	"testing"
)

func TestExtractBlocks(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected []TextBlock
	}{
		{
			name: "document order",
			html: `<h2>Intro</h2><p>First  paragraph.</p><ul><li>one</li><li>two</li></ul><p>Last.</p>`,
			expected: []TextBlock{
				{Text: "Intro", Type: "heading", Level: 2},
				{Text: "First paragraph.", Type: "paragraph"},
				{Text: "one", Type: "list-item"},
				{Text: "two", Type: "list-item"},
				{Text: "Last.", Type: "paragraph"},
			},
		},
		{
			name: "nested paragraphs fold into the quote",
			html: "<blockquote><p>Quoted</p>\n<p>words</p></blockquote>",
			expected: []TextBlock{
				{Text: "Quoted words", Type: "blockquote"},
			},
		},
		{
			name: "bare text",
			html: `<div>Only <b>inline</b> text</div>`,
			expected: []TextBlock{
				{Text: "Only inline text", Type: "paragraph"},
			},
		},
		{
			name:     "empty elements are skipped",
			html:     `<p> </p><h1></h1>`,
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := ExtractBlocks(test.html)
			if len(result) != len(test.expected) {
				t.Fatalf("Expected %d blocks, got %d: %+v", len(test.expected), len(result), result)
			}
			for i := range result {
				if result[i] != test.expected[i] {
					t.Errorf("Block %d: expected %+v, got %+v", i, test.expected[i], result[i])
				}
			}
		})
	}
}

func TestPlainText(t *testing.T) {
	result := PlainText(`<h1>Title</h1><p>Body text.</p><ol><li>step</li></ol>`)
	expected := "Title\n\nBody text.\n\n- step"
	if result != expected {
		t.Errorf("Expected %q, got %q", expected, result)
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"Empty text", "", 0},
		{"Single word", "Word", 1},
		{"Words with punctuation", "This, is a sentence. With punctuation!", 6},
		{"Words with extra whitespace", "  Words  with  extra  whitespace  ", 4},
		{"Words with numbers", "There are 3 words here", 5},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := CountWords(test.text)
			if result != test.expected {
				t.Errorf("Expected %d words, got %d", test.expected, result)
			}
		})
	}
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		name     string
		words    int
		expected int
	}{
		{"Empty", 0, 1},
		{"Short", 100, 1},
		{"Two minutes", 450, 2},
		{"Rounds down", 674, 2},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			text := strings.Repeat("word ", test.words)
			if result := ReadingTime(text); result != test.expected {
				t.Errorf("Expected %d minutes, got %d", test.expected, result)
			}
		})
	}
}
