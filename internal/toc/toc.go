// Package toc derives the table-of-contents navigation model from a
// server-supplied HTML fragment.
package toc

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Entry is one jump-list item derived from the TOC fragment.
type Entry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Level int    `json:"level"` // 0 for items in the outermost list
}

// Parse extracts entries from a TOC HTML fragment. An entry is emitted for
// every anchor with a non-empty href and non-empty text. The nesting level
// is the number of ancestor list containers minus one, so items in the
// outermost list sit at level 0.
func Parse(fragment string) ([]Entry, error) {
	if strings.TrimSpace(fragment) == "" {
		return nil, nil
	}

	container := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), container)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, n := range nodes {
		walk(n, 0, &entries)
	}
	return entries, nil
}

func walk(n *html.Node, listDepth int, entries *[]Entry) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Ul, atom.Ol:
			listDepth++
		case atom.A:
			href := attr(n, "href")
			label := strings.TrimSpace(text(n))
			if href != "" && label != "" {
				level := listDepth - 1
				if level < 0 {
					level = 0
				}
				*entries = append(*entries, Entry{
					ID:    strings.TrimPrefix(href, "#"),
					Label: label,
					Level: level,
				})
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, listDepth, entries)
	}
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func text(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(text(c))
	}
	return b.String()
}
