package simplifiers

import (
	"fmt"
	"regexp"
	"strings"
)

const blockTags = `(?:table|thead|tfoot|caption|col|colgroup|tbody|tr|td|th|div|dl|dd|dt|ul|ol|li|pre|form|map|area|blockquote|address|style|p|h[1-6]|hr|fieldset|legend|section|article|aside|hgroup|header|footer|nav|figure|figcaption|details|menu|summary)`

const (
	newlinePlaceholder  = " <!-- wpnl --> "
	preservedNewline    = "<WPPreserveNewline />"
	normalizedLineBreak = "<br />"
)

var (
	doubleBreakRegex   = regexp.MustCompile(`<br\s*/?>\s*<br\s*/?>`)
	blockOpenRegex     = regexp.MustCompile(`(<` + blockTags + `[\s/>])`)
	blockCloseRegex    = regexp.MustCompile(`(</` + blockTags + `>)`)
	hrRegex            = regexp.MustCompile(`(<hr\s*?/?>)`)
	tagOrCommentRegex  = regexp.MustCompile(`(?s)<!--.*?-->|<[^>]*>`)
	optionOpenRegex    = regexp.MustCompile(`\s*<option`)
	optionCloseRegex   = regexp.MustCompile(`</option>\s*`)
	objectOpenRegex    = regexp.MustCompile(`(<object[^>]*>)\s*`)
	objectCloseRegex   = regexp.MustCompile(`\s*</object>`)
	paramEmbedRegex    = regexp.MustCompile(`\s*(</?(?:param|embed)[^>]*>)\s*`)
	mediaOpenRegex     = regexp.MustCompile(`([<\[](?:audio|video)[^>\]]*[>\]])\s*`)
	mediaCloseRegex    = regexp.MustCompile(`\s*([<\[]/(?:audio|video)[>\]])`)
	sourceTrackRegex   = regexp.MustCompile(`\s*(<(?:source|track)[^>]*>)\s*`)
	figcaptionOpen     = regexp.MustCompile(`\s*(<figcaption[^>]*>)`)
	figcaptionClose    = regexp.MustCompile(`</figcaption>\s*`)
	manyNewlinesRegex  = regexp.MustCompile(`\n\n+`)
	paragraphSplit     = regexp.MustCompile(`\n\s*\n`)
	emptyParagraph     = regexp.MustCompile(`<p>\s*</p>`)
	unclosedInBlock    = regexp.MustCompile(`<p>([^<]+)</(div|address|form)>`)
	wrappedBlockTag    = regexp.MustCompile(`<p>\s*(</?` + blockTags + `[^>]*>)\s*</p>`)
	wrappedListItem    = regexp.MustCompile(`<p>(<li.+?)</p>`)
	wrappedBlockquote  = regexp.MustCompile(`(?i)<p><blockquote([^>]*)>`)
	openBeforeBlock    = regexp.MustCompile(`<p>\s*(</?` + blockTags + `[^>]*>)`)
	closeAfterBlock    = regexp.MustCompile(`(</?` + blockTags + `[^>]*>)\s*</p>`)
	newlineRun         = regexp.MustCompile(`\s*\n`)
	breakAfterBlock    = regexp.MustCompile(`(</?` + blockTags + `[^>]*>)\s*<br />`)
	breakBeforeBlock   = regexp.MustCompile(`<br />(\s*</?(?:p|li|div|dl|dd|dt|th|pre|td|ul|ol)[^>]*>)`)
	trailingNewlineEnd = regexp.MustCompile(`\n</p>$`)

	// RE2 has no backreferences, so each raw-text element gets its own pattern.
	rawTextElements = []*regexp.Regexp{
		regexp.MustCompile(`(?s)<script.*?</script>`),
		regexp.MustCompile(`(?s)<style.*?</style>`),
		regexp.MustCompile(`(?s)<svg.*?</svg>`),
		regexp.MustCompile(`(?s)<math.*?</math>`),
	}
)

// ReconstructParagraphs rebuilds paragraph structure the way the WordPress
// auto-paragraph filter does, except that a lone newline inside a paragraph
// becomes a space rather than a <br />. Double breaks become paragraph
// boundaries and stray breaks next to block tags are dropped.
func ReconstructParagraphs(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	text += "\n"

	text, preTags := protectPreBlocks(text)

	text = doubleBreakRegex.ReplaceAllString(text, "\n\n")
	text = blockOpenRegex.ReplaceAllString(text, "\n\n${1}")
	text = blockCloseRegex.ReplaceAllString(text, "${1}\n\n")
	text = hrRegex.ReplaceAllString(text, "${1}\n\n")
	text = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(text)

	text = tagOrCommentRegex.ReplaceAllStringFunc(text, func(tag string) string {
		return strings.ReplaceAll(tag, "\n", newlinePlaceholder)
	})

	if strings.Contains(text, "<option") {
		text = optionOpenRegex.ReplaceAllString(text, "<option")
		text = optionCloseRegex.ReplaceAllString(text, "</option>")
	}
	if strings.Contains(text, "</object>") {
		text = objectOpenRegex.ReplaceAllString(text, "${1}")
		text = objectCloseRegex.ReplaceAllString(text, "</object>")
		text = paramEmbedRegex.ReplaceAllString(text, "${1}")
	}
	if strings.Contains(text, "<source") || strings.Contains(text, "<track") {
		text = mediaOpenRegex.ReplaceAllString(text, "${1}")
		text = mediaCloseRegex.ReplaceAllString(text, "${1}")
		text = sourceTrackRegex.ReplaceAllString(text, "${1}")
	}
	if strings.Contains(text, "<figcaption") {
		text = figcaptionOpen.ReplaceAllString(text, "${1}")
		text = figcaptionClose.ReplaceAllString(text, "</figcaption>")
	}

	text = manyNewlinesRegex.ReplaceAllString(text, "\n\n")

	var b strings.Builder
	for _, paragraph := range paragraphSplit.Split(text, -1) {
		if paragraph == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(strings.Trim(paragraph, "\n"))
		b.WriteString("</p>\n")
	}
	text = b.String()

	text = emptyParagraph.ReplaceAllString(text, "")
	text = unclosedInBlock.ReplaceAllString(text, "<p>${1}</p></${2}>")
	text = wrappedBlockTag.ReplaceAllString(text, "${1}")
	text = wrappedListItem.ReplaceAllString(text, "${1}")
	text = wrappedBlockquote.ReplaceAllString(text, "<blockquote${1}><p>")
	text = strings.ReplaceAll(text, "</blockquote></p>", "</p></blockquote>")
	text = openBeforeBlock.ReplaceAllString(text, "${1}")
	text = closeAfterBlock.ReplaceAllString(text, "${1}")

	for _, re := range rawTextElements {
		text = re.ReplaceAllStringFunc(text, func(element string) string {
			return strings.ReplaceAll(element, "\n", preservedNewline)
		})
	}
	text = strings.NewReplacer("<br>", normalizedLineBreak, "<br/>", normalizedLineBreak).Replace(text)
	text = joinLines(text)
	text = strings.ReplaceAll(text, preservedNewline, "\n")

	text = breakAfterBlock.ReplaceAllString(text, "${1}")
	text = breakBeforeBlock.ReplaceAllString(text, "${1}")
	text = trailingNewlineEnd.ReplaceAllString(text, "</p>")

	for name, pre := range preTags {
		text = strings.ReplaceAll(text, name, pre)
	}

	text = strings.ReplaceAll(text, newlinePlaceholder, "\n")
	text = strings.ReplaceAll(text, strings.TrimSpace(newlinePlaceholder), "\n")

	return strings.TrimRight(text, " ")
}

// protectPreBlocks swaps every <pre> element for a placeholder so that the
// paragraph pass leaves preformatted text alone.
func protectPreBlocks(text string) (string, map[string]string) {
	if !strings.Contains(text, "<pre") {
		return text, nil
	}

	parts := strings.Split(text, "</pre>")
	lastPart := parts[len(parts)-1]
	parts = parts[:len(parts)-1]

	preTags := make(map[string]string, len(parts))
	var b strings.Builder
	for i, part := range parts {
		start := strings.Index(part, "<pre")
		if start < 0 {
			b.WriteString(part)
			continue
		}
		name := fmt.Sprintf("<pre wp-pre-tag-%d></pre>", i)
		preTags[name] = part[start:] + "</pre>"
		b.WriteString(part[:start])
		b.WriteString(name)
	}
	b.WriteString(lastPart)
	return b.String(), preTags
}

// joinLines replaces every newline run with a space unless the run directly
// follows a <br />, in which case a bare newline survives.
func joinLines(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, loc := range newlineRun.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		b.WriteString(text[last:start])
		last = end
		if !strings.HasSuffix(text[:start], normalizedLineBreak) {
			b.WriteByte(' ')
			continue
		}
		if end-start == 1 {
			b.WriteByte('\n')
			continue
		}
		// The first whitespace character shields the rest of the run from the
		// preceding break.
		b.WriteByte(text[start])
		b.WriteByte(' ')
	}
	b.WriteString(text[last:])
	return b.String()
}
