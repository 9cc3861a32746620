package simplifiers

import (
	"math"
	"regexp"
	"strings"
)

// MaxBreakVariation is the coefficient of variation of line lengths above
// which a block's breaks are treated as intentional.
const MaxBreakVariation = 0.3

var (
	breakBlockRegex   = regexp.MustCompile(`(?is)(<p(?:\s[^>]*)?>)(.*?)(</p>)|(<li(?:\s[^>]*)?>)(.*?)(</li>)`)
	lineBreakRegex    = regexp.MustCompile(`(?i)<br\s*/?>`)
	closingTagSuffix  = regexp.MustCompile(`</[a-zA-Z][a-zA-Z0-9]*\s*>$`)
	openingTagPrefix  = regexp.MustCompile(`^<([a-zA-Z][a-zA-Z0-9]*)`)
	sentenceEndSuffix = ".!?:;"
)

// inlineTags may follow a removable break without forcing it to stay.
var inlineTags = map[string]bool{
	"em":     true,
	"strong": true,
	"i":      true,
	"b":      true,
	"a":      true,
	"code":   true,
	"span":   true,
}

// RemoveArtificialLineBreaks removes <br> tags that come from hard-wrapped
// plain text, one <p> or <li> block at a time. A block is left untouched
// unless it has at least two breaks spaced at regular intervals.
func RemoveArtificialLineBreaks(content string) string {
	if !lineBreakRegex.MatchString(content) {
		return content
	}

	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, m := range breakBlockRegex.FindAllStringSubmatchIndex(content, -1) {
		// Group 2 is the <p> body, group 5 the <li> body.
		start, end := m[4], m[5]
		if start < 0 {
			start, end = m[10], m[11]
		}
		b.WriteString(content[last:start])
		b.WriteString(unwrapBlock(content[start:end]))
		last = end
	}
	b.WriteString(content[last:])
	return b.String()
}

// unwrapBlock applies the break heuristics to the inner HTML of one block.
func unwrapBlock(inner string) string {
	breaks := lineBreakRegex.FindAllStringIndex(inner, -1)
	if len(breaks) < 2 {
		return inner
	}

	segments := make([]string, 0, len(breaks)+1)
	prev := 0
	for _, loc := range breaks {
		segments = append(segments, inner[prev:loc[0]])
		prev = loc[1]
	}
	segments = append(segments, inner[prev:])

	// The remainder after the last break is a partial line and says nothing
	// about the wrap width.
	if lineVariation(segments[:len(segments)-1]) > MaxBreakVariation {
		return inner
	}

	var b strings.Builder
	b.Grow(len(inner))
	b.WriteString(segments[0])
	for i, loc := range breaks {
		before, after := segments[i], segments[i+1]
		if keepBreak(before, after) {
			b.WriteString(inner[loc[0]:loc[1]])
			b.WriteString(after)
			continue
		}
		written := strings.TrimRight(b.String(), " \t\r\n")
		b.Reset()
		b.WriteString(written)
		b.WriteByte(' ')
		b.WriteString(strings.TrimLeft(after, " \t\r\n"))
	}
	return b.String()
}

// lineVariation returns the coefficient of variation of the plain-text
// lengths of lines. Empty lines are ignored. It returns +Inf when no line has
// text so that the caller bails out.
func lineVariation(lines []string) float64 {
	lengths := make([]float64, 0, len(lines))
	for _, line := range lines {
		if n := PlainTextLength(line); n > 0 {
			lengths = append(lengths, float64(n))
		}
	}
	if len(lengths) == 0 {
		return math.Inf(1)
	}

	var sum float64
	for _, l := range lengths {
		sum += l
	}
	mean := sum / float64(len(lengths))
	if mean == 0 {
		return 0
	}

	var squares float64
	for _, l := range lengths {
		squares += (l - mean) * (l - mean)
	}
	return math.Sqrt(squares/float64(len(lengths))) / mean
}

// keepBreak reports whether a break between before and after looks intentional.
func keepBreak(before, after string) bool {
	before = strings.TrimSpace(before)
	after = strings.TrimSpace(after)

	if before == "" || after == "" {
		return true
	}
	if strings.ContainsRune(sentenceEndSuffix, rune(before[len(before)-1])) {
		return true
	}
	if closingTagSuffix.MatchString(before) {
		return true
	}
	if m := openingTagPrefix.FindStringSubmatch(after); m != nil && !inlineTags[strings.ToLower(m[1])] {
		return true
	}
	return false
}
