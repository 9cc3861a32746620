package simplifiers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const goatcounterArticle = `<!-- wp:paragraph -->
<p>Last year I was working on a product idea and wanted to add some basic analytics<br>to measure how many people are visiting the site. I've also been wanting to add<br>basic analytics to my personal homepage/programming weblog to measure if anyone<br>is reading anything I write (and if so, what?)</p>
<!-- /wp:paragraph -->

<!-- wp:paragraph -->
<p>Analytics are useful to measure things like <em>"what type of content is popular,<br>and should I write more of?"</em>, <em>"does it even make sense to distribute a<br>newsletter?"</em>, <em>"how does the redesigned signup button affect signup rates?"</em>,<br><em>"is anyone even using this page I'm maintaining"?</em></p>
<!-- /wp:paragraph -->

<!-- wp:paragraph -->
<p>I tried a number of existing solutions, and found them are either very complex<br>and designed for advanced users, or far too simplistic. In addition almost all<br>hosted solutions are priced for business users (≥$10/month), making it too<br>expensive for personal/hobby use.</p>
<!-- /wp:paragraph -->

<!-- wp:paragraph -->
<p>What seems to be lacking is a "middle ground" that offers useful statistics to<br>answer business questions, without becoming a specialized marketing tool<br>requiring in-depth training to use effectively. Furthermore, some tools have<br>privacy issues (especially Google Analytics). I saw there was space for a new<br>service and ended up putting my original idea in the freezer and writing<br>GoatCounter.<sup><a href="gc">1</a></sup></p>
<!-- /wp:paragraph -->`

const goatcounterList = `<!-- wp:list -->
<ul class="wp-block-list"><!-- wp:list-item -->
<li>Give useful data while respecting people's privacy. For the most part, it<br>should just "count events" rather than "get as much data as technically<br>possible" (which, for the most part, is not even that useful or valuable for<br>analytics anyway).</li>
<!-- /wp:list-item -->

<!-- wp:list-item -->
<li>There should always be an option to add GoatCounter to your site <em>without</em><br>requiring a GDPR consent notice.</li>
<!-- /wp:list-item --></ul>
<!-- /wp:list -->`

func TestRemoveArtificialLineBreaksGoatCounter(t *testing.T) {
	result := RemoveArtificialLineBreaks(goatcounterArticle)

	assert.NotContains(t, result, "analytics<br>", "Should remove <br> in middle of sentences")
	assert.Contains(t, result, "analytics to measure", "Should have space instead of <br>")
	assert.Contains(t, result, "basic analytics to my personal", "Should remove line breaks")
	assert.Contains(t, result, "writing GoatCounter.<sup>")
	assert.Equal(t, 4, strings.Count(result, "<p>"), "Should maintain the same number of paragraphs")
	assert.NotContains(t, result, "<br>")
}

func TestRemoveArtificialLineBreaksPreservesIntentionalBreaks(t *testing.T) {
	input := "<p>First line.<br>Second line after period.<br>Third line.</p>"

	result := RemoveArtificialLineBreaks(input)

	assert.Contains(t, result, "line.<br>Second", "Should preserve <br> after sentence endings")
	assert.Equal(t, input, result)
}

func TestRemoveArtificialLineBreaksIdentityCases(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "no br tags",
			input: "<p>This is a paragraph without any line breaks at all.</p>",
		},
		{
			name:  "single br tag",
			input: "<p>First part<br>Second part</p>",
		},
		{
			name:  "varied length lines",
			input: "<p>Short line<br>This is a much longer line that breaks the pattern<br>Another short<br>Medium length line here</p>",
		},
		{
			name:  "only empty lines",
			input: "<p><br><br><br></p>",
		},
		{
			name:  "breaks outside blocks",
			input: "<div>one line here<br>two line here<br>red line here</div>",
		},
		{
			name:  "empty input",
			input: "",
		},
		{
			name:  "unterminated block",
			input: "<p>broken line one<br>broken line two<br>broken line",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemoveArtificialLineBreaks(tt.input); got != tt.input {
				t.Errorf("Expected input unchanged, got %q", got)
			}
		})
	}
}

func TestRemoveArtificialLineBreaksListItems(t *testing.T) {
	result := RemoveArtificialLineBreaks(goatcounterList)

	assert.NotContains(t, result, "it<br>should", "Should remove <br> in list items")
	assert.Contains(t, result, "it should", "Should have space instead of <br>")
	assert.Contains(t, result, "<em>without</em><br>requiring", "Single-break items are left alone")
}

func TestRemoveArtificialLineBreaksMultipleParagraphs(t *testing.T) {
	input := "<p>First paragraph with<br>artificial breaks<br>here in text.</p><p>Second paragraph also<br>has artificial line<br>breaks in text.</p>"

	result := RemoveArtificialLineBreaks(input)

	assert.NotContains(t, result, "with<br>artificial", "Should remove artificial breaks from multiple paragraphs")
	assert.Contains(t, result, "with artificial breaks here", "Should have spaces instead")
	assert.Equal(t, "<p>First paragraph with artificial breaks here in text.</p><p>Second paragraph also has artificial line breaks in text.</p>", result)
}

func TestRemoveArtificialLineBreaksLocalContext(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "self-closing and uppercase breaks",
			input: "<p>aaaa bbbb cccc<BR/>dddd eeee ffff<br />gggg hhhh</p>",
			want:  "<p>aaaa bbbb cccc dddd eeee ffff gggg hhhh</p>",
		},
		{
			name:  "break before block element stays",
			input: "<li>aaaa bbbb cccc<br>dddd eeee ffff<br><div>block</div></li>",
			want:  "<li>aaaa bbbb cccc dddd eeee ffff<br><div>block</div></li>",
		},
		{
			name:  "break after closing tag stays",
			input: "<p>aaaa bbbb <b>cccc</b><br>dddd eeee ffff<br>gggg</p>",
			want:  "<p>aaaa bbbb <b>cccc</b><br>dddd eeee ffff gggg</p>",
		},
		{
			name:  "break before inline element goes",
			input: "<p>aaaa bbbb cccc<br><em>dddd</em> eeee ffff<br>gggg</p>",
			want:  "<p>aaaa bbbb cccc <em>dddd</em> eeee ffff gggg</p>",
		},
		{
			name:  "whitespace around removed break collapses",
			input: "<p class=\"x\">aaaa bbbb cccc  <br>\n  dddd eeee ffff<br>gggg</p>",
			want:  "<p class=\"x\">aaaa bbbb cccc dddd eeee ffff gggg</p>",
		},
		{
			name:  "colon and semicolon endings stay",
			input: "<p>aaaa bbbb cccc:<br>dddd eeee ffff;<br>gggg</p>",
			want:  "<p>aaaa bbbb cccc:<br>dddd eeee ffff;<br>gggg</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemoveArtificialLineBreaks(tt.input); got != tt.want {
				t.Errorf("RemoveArtificialLineBreaks() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRemoveArtificialLineBreaksIsIdempotent(t *testing.T) {
	inputs := []string{
		goatcounterArticle,
		goatcounterList,
		"<p>First paragraph with<br>artificial breaks<br>here in text.</p>",
		"<p>aaaa bbbb <b>cccc</b><br>dddd eeee ffff<br>gggg</p>",
	}

	for _, input := range inputs {
		once := RemoveArtificialLineBreaks(input)
		twice := RemoveArtificialLineBreaks(once)
		assert.Equal(t, once, twice)
		assert.Equal(t, strings.Count(input, "<p"), strings.Count(once, "<p"))
	}
}

func TestLineVariation(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  float64
	}{
		{"equal lengths", []string{"abcd", "efgh", "ijkl"}, 0},
		{"empty lines ignored", []string{"abcd", "", "<em></em>", "efgh"}, 0},
		{"two lengths", []string{"aa", "aaaaaa"}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lineVariation(tt.lines); got != tt.want {
				t.Errorf("lineVariation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func BenchmarkRemoveArtificialLineBreaks(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RemoveArtificialLineBreaks(goatcounterArticle)
	}
}
