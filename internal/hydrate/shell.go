package hydrate

import (
	"fmt"
	"html/template"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/catpaladin/inkwell/internal/theme"
)

// SiteMeta is the site-level data the shell is rendered with.
type SiteMeta struct {
	Title       string
	Description string
	Author      string
	Menu        []MenuEntry
	Social      []SocialLink
}

// MenuEntry is one navbar link.
type MenuEntry struct {
	Name string
	URL  string
}

// SocialLink is one footer link.
type SocialLink struct {
	Name string
	URL  string
	Icon string
}

// PageFlags classify the page being hydrated.
type PageFlags struct {
	IsHome  bool
	IsPost  bool
	Section string
}

// shellData feeds the shell template. TOC and Main hold build-time-trusted
// markup extracted from the handoff and are injected unescaped.
type shellData struct {
	Site   SiteMeta
	Page   PageFlags
	Theme  string
	TOC    template.HTML
	Main   template.HTML
	HasTOC bool
}

var (
	shellTmpl   = template.Must(template.New("shell").Parse(shellTemplate))
	handoffTmpl = template.Must(template.New("handoff").Parse(handoffTemplate))
)

// handoffData feeds the static handoff page template. TOC and Main are
// rendered markup produced by the build pipeline, injected unescaped.
type handoffData struct {
	Title     string
	SiteTitle string
	TOC       template.HTML
	Main      template.HTML
}

// HandoffPage renders the static server page carrying the handoff structure
// the shell is mounted from.
func HandoffPage(title, siteTitle, tocFragment, mainHTML string) (string, error) {
	var b strings.Builder
	err := handoffTmpl.Execute(&b, handoffData{
		Title:     title,
		SiteTitle: siteTitle,
		TOC:       template.HTML(tocFragment),
		Main:      template.HTML(mainHTML),
	})
	if err != nil {
		return "", fmt.Errorf("rendering handoff page: %w", err)
	}
	return b.String(), nil
}

// Mount hydrates a server-rendered document: the handoff content is
// extracted and removed, and the shell is rendered into the mount point.
// A document without a mount point is returned unchanged, so pages outside
// the handoff contract stay plain static markup.
func Mount(doc string, meta SiteMeta, flags PageFlags, mode theme.Mode) (string, error) {
	root, err := xhtml.Parse(strings.NewReader(doc))
	if err != nil {
		return doc, fmt.Errorf("parsing page: %w", err)
	}

	handoff := extractHandoff(root)

	mount := findByID(root, MountID)
	if mount == nil {
		return doc, nil
	}

	var shell strings.Builder
	err = shellTmpl.Execute(&shell, shellData{
		Site:   meta,
		Page:   flags,
		Theme:  string(mode),
		TOC:    template.HTML(handoff.TOC),
		Main:   template.HTML(handoff.Main),
		HasTOC: strings.TrimSpace(handoff.TOC) != "",
	})
	if err != nil {
		return doc, fmt.Errorf("rendering shell: %w", err)
	}

	for mount.FirstChild != nil {
		mount.RemoveChild(mount.FirstChild)
	}
	mount.AppendChild(&xhtml.Node{Type: xhtml.RawNode, Data: shell.String()})

	if htmlNode := findByAtom(root, atom.Html); htmlNode != nil {
		setAttr(htmlNode, "data-theme", string(mode))
	}

	var out strings.Builder
	if err := xhtml.Render(&out, root); err != nil {
		return doc, fmt.Errorf("serializing page: %w", err)
	}
	return out.String(), nil
}

func setAttr(n *xhtml.Node, name, value string) {
	for i, a := range n.Attr {
		if a.Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, xhtml.Attribute{Key: name, Val: value})
}
