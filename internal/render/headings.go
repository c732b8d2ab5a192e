package render

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// Heading is one anchor-bearing heading extracted from rendered HTML.
type Heading struct {
	Level int // heading element level, 2..4
	ID    string
	Text  string
}

var (
	headingRe = regexp.MustCompile(`<h([2-4]) id="([^"]+)"[^>]*>(.*?)</h[2-4]>`)
	tagRe     = regexp.MustCompile(`<[^>]+>`)
)

// ExtractHeadings pulls h2-h4 headings with ids out of rendered HTML,
// in document order.
func ExtractHeadings(htmlContent string) []Heading {
	var headings []Heading
	for _, m := range headingRe.FindAllStringSubmatch(htmlContent, -1) {
		level, _ := strconv.Atoi(m[1])
		text := html.UnescapeString(tagRe.ReplaceAllString(m[3], ""))
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		headings = append(headings, Heading{Level: level, ID: m[2], Text: text})
	}
	return headings
}

// TOCFragment renders headings as the nested <ul> fragment carried through
// the handoff node. Nesting follows heading levels: an h3 under an h2 is one
// list deeper.
func TOCFragment(headings []Heading) string {
	if len(headings) == 0 {
		return ""
	}

	var b strings.Builder
	base := headings[0].Level
	depth := 0

	b.WriteString("<ul>")
	for i, h := range headings {
		level := h.Level - base
		if level < 0 {
			level = 0
		}
		if i > 0 {
			for depth < level {
				b.WriteString("<ul>")
				depth++
			}
			for depth > level {
				b.WriteString("</ul>")
				depth--
			}
		}
		fmt.Fprintf(&b, `<li><a href="#%s">%s</a></li>`, h.ID, html.EscapeString(h.Text))
	}
	for depth > 0 {
		b.WriteString("</ul>")
		depth--
	}
	b.WriteString("</ul>")
	return b.String()
}
