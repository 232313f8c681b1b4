package sanitizer

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	emailPolicy  *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		// StrictPolicy strips ALL HTML, returns plain text
		strictPolicy = bluemonday.StrictPolicy()

		// Email policy keeps the layout markup mail clients understand:
		// tables, presentational attributes and a small set of inline styles.
		emailPolicy = bluemonday.UGCPolicy()
		emailPolicy.RequireNoFollowOnLinks(false)
		emailPolicy.AllowElements(
			"table", "thead", "tbody", "tfoot", "tr", "td", "th",
			"center", "font", "span", "div", "hr",
		)
		emailPolicy.AllowAttrs(
			"align", "valign", "bgcolor", "width", "height",
			"border", "cellpadding", "cellspacing", "role",
		).Globally()
		emailPolicy.AllowAttrs("color", "face", "size").OnElements("font")
		emailPolicy.AllowStyles(
			"color", "background-color",
			"font-family", "font-size", "font-weight", "font-style",
			"text-align", "text-decoration", "line-height",
			"padding", "margin", "border",
		).Globally()
	})
}

// StripHTML removes every tag and returns the remaining text.
func StripHTML(s string) string {
	initPolicies()
	return strictPolicy.Sanitize(s)
}

// SanitizeHTML cleans rendered email HTML for display. Layout tables, links,
// images and common inline styles survive; scripts, event handlers, style
// blocks and unsafe URLs do not.
func SanitizeHTML(s string) string {
	initPolicies()
	return emailPolicy.Sanitize(s)
}

// SanitizeHTMLCustom applies a custom bluemonday policy.
// Returns input unchanged if policy is nil.
func SanitizeHTMLCustom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}

var (
	blockBreaks = strings.NewReplacer(
		"</p>", "</p>\n",
		"</div>", "</div>\n",
		"</tr>", "</tr>\n",
		"</li>", "</li>\n",
		"</h1>", "</h1>\n",
		"</h2>", "</h2>\n",
		"</h3>", "</h3>\n",
		"<br>", "<br>\n",
		"<br/>", "<br/>\n",
		"<br />", "<br />\n",
	)
	blankLines = regexp.MustCompile(`\n{3,}`)
)

// PlainText converts an HTML email into the text/plain alternative part.
// Block elements end a line, entities are decoded and runs of blank lines
// are collapsed.
func PlainText(s string) string {
	text := html.UnescapeString(StripHTML(blockBreaks.Replace(s)))

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	text = strings.Join(lines, "\n")

	return strings.TrimSpace(blankLines.ReplaceAllString(text, "\n\n"))
}
