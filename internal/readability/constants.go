// Package readability implements the Readability content-scoring algorithm
// over goquery documents. It picks the node most likely to hold the article
// body, gathers related siblings, and cleans the result for storage.
package readability

import (
	"regexp"
)

// Flags for controlling the content extraction process
const (
	FlagStripUnlikelys     = 0x1
	FlagWeightClasses      = 0x2
	FlagCleanConditionally = 0x4
)

// Default settings
const (
	// DefaultCharThreshold is the minimum number of characters an attempt
	// must produce before the relaxed retries stop.
	DefaultCharThreshold = 500
)

// Scoring constants
const (
	DivInitialScore          = 5.0
	BlockquoteInitialScore   = 3.0
	NegativeListInitialScore = -3.0
	HeadingInitialScore      = -5.0

	ClassWeightPositive = 25
	ClassWeightNegative = 25

	// HashLinkWeight is applied to anchors pointing into the same page.
	HashLinkWeight = 0.3

	// MinContentTextLength is the shortest paragraph that contributes score.
	MinContentTextLength = 25

	BaseContentScore  = 1.0
	TextLengthDivisor = 100.0
	MaxLengthBonus    = 3.0

	// AncestorLevelDepth limits score propagation to parent and grandparent.
	AncestorLevelDepth = 2

	AncestorScoreDividerL0 = 1.0
	AncestorScoreDividerL1 = 2.0

	MinimumSiblingScoreThreshold = 10.0
	SiblingScoreMultiplier       = 0.2
	SameClassSiblingBonus        = 0.2

	MinParagraphLength            = 80
	ParagraphLinkDensityThreshold = 0.25

	MinCommaCount                       = 10
	MinEmbedContentLength               = 75
	HeadingDensityThreshold             = 0.9
	ConditionalWeightThresholdLow       = 25
	ConditionalLinkDensityThresholdLow  = 0.2
	ConditionalLinkDensityThresholdHigh = 0.5

	// ListItemAllowance is subtracted from the li count before comparing it
	// with the paragraph count.
	ListItemAllowance = 100
)

// DefaultTagsToScore defines the element tags that should be scored
var DefaultTagsToScore = []string{"SECTION", "H2", "H3", "H4", "H5", "H6", "P", "TD", "PRE"}

// ClassesToPreserve defines CSS classes that should be preserved in the output
var ClassesToPreserve = []string{"page"}

// UnlikelyRoles defines ARIA roles that suggest a node is not content
var UnlikelyRoles = []string{"menu", "menubar", "complementary", "navigation", "alert", "alertdialog", "dialog"}

// DivToPElems defines elements whose presence keeps a <div> from becoming a paragraph
var DivToPElems = []string{"blockquote", "dl", "div", "img", "ol", "p", "pre", "table", "ul"}

// PresentationalAttributes defines presentational attributes to remove
var PresentationalAttributes = []string{"align", "background", "bgcolor", "border", "cellpadding", "cellspacing", "frame", "hspace", "rules", "style", "valign", "vspace"}

// DeprecatedSizeAttributeElems defines elements with deprecated size attributes
var DeprecatedSizeAttributeElems = []string{"TABLE", "TH", "TD", "HR", "PRE"}

// AllowedAttributes lists the attributes kept on elements of the cleaned
// article. Everything else, including event handlers, is dropped.
var AllowedAttributes = map[string]bool{
	"href": true, "src": true, "srcset": true, "alt": true, "title": true,
	"width": true, "height": true, "colspan": true, "rowspan": true,
	"datetime": true, "cite": true, "lang": true, "dir": true, "class": true,
	"id": true, "allowfullscreen": true, "frameborder": true, "start": true,
	"type": true, "poster": true, "controls": true,
}

// PhrasingElems defines elements that qualify as phrasing content
var PhrasingElems = []string{
	"ABBR", "AUDIO", "B", "BDO", "BR", "BUTTON", "CITE", "CODE", "DATA",
	"DATALIST", "DFN", "EM", "EMBED", "I", "IMG", "INPUT", "KBD", "LABEL",
	"MARK", "MATH", "METER", "NOSCRIPT", "OBJECT", "OUTPUT", "PROGRESS", "Q",
	"RUBY", "SAMP", "SCRIPT", "SELECT", "SMALL", "SPAN", "STRONG", "SUB",
	"SUP", "TEXTAREA", "TIME", "VAR", "WBR",
}

// Regular expressions used in the Readability algorithm
var (
	// Unlikely candidates for content
	RegexpUnlikelyCandidates = regexp.MustCompile(`(?i)-ad-|ai2html|banner|breadcrumbs|combx|comment|community|cover-wrap|disqus|extra|footer|gdpr|header|legends|menu|related|remark|replies|rss|shoutbox|sidebar|skyscraper|social|sponsor|supplemental|ad-break|agegate|pagination|pager|popup|yom-remote`)

	// Candidates that might be content despite matching the unlikelyCandidates pattern
	RegexpMaybeCandidate = regexp.MustCompile(`(?i)and|article|body|column|content|main|shadow`)

	// Positive indicators of content
	RegexpPositive = regexp.MustCompile(`(?i)article|body|content|entry|hentry|h-entry|main|page|pagination|post|text|blog|story`)

	// Negative indicators of content
	RegexpNegative = regexp.MustCompile(`(?i)-ad-|hidden|^hid$| hid$| hid |^hid |banner|combx|comment|com-|contact|foot|footer|footnote|gdpr|masthead|media|meta|nav|outbrain|popup|promo|related|scroll|share|shoutbox|sidebar|skyscraper|sponsor|shopping|tags|tool|widget`)

	// Byline indicators
	RegexpByline = regexp.MustCompile(`(?i)byline|author|dateline|writtenby|p-author`)

	// Normalize whitespace
	RegexpNormalize = regexp.MustCompile(`\s{2,}`)

	// Video services to preserve
	RegexpVideos = regexp.MustCompile(`(?i)//(www\.)?((dailymotion|youtube|youtube-nocookie|player\.vimeo|v\.qq)\.com|(archive|upload\.wikimedia)\.org|player\.twitch\.tv)`)

	// Share elements
	RegexpShareElements = regexp.MustCompile(`(?i)(\b|_)(share|sharedaddy)(\b|_)`)

	// Hidden inline style
	RegexpDisplayNone = regexp.MustCompile(`(?i)display\s*:\s*none`)

	// Hash URL
	RegexpHashURL = regexp.MustCompile(`^#.+`)

	// Sentence end inside short paragraphs
	RegexpSentenceEnd = regexp.MustCompile(`\.( |$)`)
)
