// Package hydrate turns server-rendered handoff pages into the full
// interactive site shell.
package hydrate

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// HandoffID is the container the server leaves page content in.
	HandoffID = "app-handoff"
	// TOCID is the sub-element of the handoff carrying the TOC fragment.
	TOCID = "toc-contents"
	// MountID is where the shell is mounted.
	MountID = "app"
)

// Handoff is the content extracted from a server-rendered page.
type Handoff struct {
	TOC  string // inner markup of the TOC sub-element, empty if absent
	Main string // inner markup of the page's <main> element
}

// extractHandoff pulls the handoff content out of a parsed document and
// removes the handoff node entirely. A missing handoff yields an empty
// content set, never an error.
func extractHandoff(root *html.Node) Handoff {
	node := findByID(root, HandoffID)
	if node == nil {
		return Handoff{}
	}

	var h Handoff
	if toc := findByID(node, TOCID); toc != nil {
		h.TOC = innerHTML(toc)
	}
	if main := findByAtom(node, atom.Main); main != nil {
		h.Main = innerHTML(main)
	}

	if node.Parent != nil {
		node.Parent.RemoveChild(node)
	}
	return h
}

func findByID(root *html.Node, id string) *html.Node {
	return find(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && attr(n, "id") == id
	})
}

func findByAtom(root *html.Node, a atom.Atom) *html.Node {
	return find(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == a
	})
}

func find(root *html.Node, match func(*html.Node) bool) *html.Node {
	if match(root) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

func innerHTML(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		html.Render(&b, c)
	}
	return b.String()
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
