package siteconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	text := `# example.com
title: //h1[@class='headline']
body: //div[@id='first']
body: //div[@id='article-body']
author: //span[@class='byline']
date: //time/@datetime
strip: //div[@class='ads']
strip: //aside
strip_id_or_class: share
strip_id_or_class: related
find_string: <noscript>
replace_string: <div>
http_header(User-Agent): Mozilla/5.0 (compatible)
http_header(referer): https://www.google.com/
prune: no
this line has no colon
test_url: https://example.com/article
`
	rule := Parse(text)

	assert.Equal(t, "//h1[@class='headline']", rule.Title)
	assert.Equal(t, "//div[@id='article-body']", rule.Body, "last body wins")
	assert.Equal(t, "//span[@class='byline']", rule.Author)
	assert.Equal(t, "//time/@datetime", rule.Date)
	assert.Equal(t, []string{"//div[@class='ads']", "//aside"}, rule.Strip)
	assert.Equal(t, []string{"share", "related"}, rule.StripIDOrClass)
	assert.Equal(t, []Replacement{{Find: "<noscript>", Replace: "<div>"}}, rule.Replacements)
	assert.Equal(t, map[string]string{
		"User-Agent": "Mozilla/5.0 (compatible)",
		"referer":    "https://www.google.com/",
	}, rule.HTTPHeaders)
	assert.Equal(t, 1, rule.Skipped)
	assert.False(t, rule.Empty())
}

func TestParseFindReplacePairing(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Replacement
	}{
		{
			name: "pair",
			text: "find_string: a\nreplace_string: b",
			want: []Replacement{{"a", "b"}},
		},
		{
			name: "replace without find is dropped",
			text: "replace_string: orphan",
			want: nil,
		},
		{
			name: "find is consumed once",
			text: "find_string: a\nreplace_string: b\nreplace_string: c",
			want: []Replacement{{"a", "b"}},
		},
		{
			name: "later find overrides unconsumed one",
			text: "find_string: a\nfind_string: x\nreplace_string: y",
			want: []Replacement{{"x", "y"}},
		},
		{
			name: "pairs keep source order",
			text: "find_string: 1\nbody: //div\nreplace_string: one\nfind_string: 2\nreplace_string: two",
			want: []Replacement{{"1", "one"}, {"2", "two"}},
		},
		{
			name: "empty replacement is allowed",
			text: "find_string: <br><br>\nreplace_string:",
			want: []Replacement{{"<br><br>", ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.text).Replacements)
		})
	}
}

func TestParseEmptyAndMalformed(t *testing.T) {
	for _, text := range []string{"", "\n\n", "# only a comment: really", "no colon here\nnor here"} {
		rule := Parse(text)
		require.NotNil(t, rule)
		assert.True(t, rule.Empty(), "input %q", text)
	}
}

func TestParseNormalizesKeysAndLineEndings(t *testing.T) {
	rule := Parse("  TITLE : //h1 \r\nBody:\t//article\r\n")

	assert.Equal(t, "//h1", rule.Title)
	assert.Equal(t, "//article", rule.Body)
}

func TestHeaders(t *testing.T) {
	rule := Parse("http_header(user-agent): bot\nhttp_header(): ignored")

	assert.Equal(t, map[string]string{"User-Agent": "bot"}, rule.Headers())
	assert.Nil(t, (&Rule{}).Headers())
	assert.Nil(t, (*Rule)(nil).Headers())
}
