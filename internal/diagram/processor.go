package diagram

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/catpaladin/inkwell/internal/theme"
)

const (
	// PlaceholderClass marks an element as a diagram placeholder.
	PlaceholderClass = "mermaid"
	// PayloadAttr carries the encoded diagram source.
	PayloadAttr = "data-diagram"
	// ProcessedAttr marks a placeholder whose content is rendered output.
	ProcessedAttr = "data-processed"
)

// ErrNoSuitablePoint is the transient geometry failure class. Renders that
// fail this way are skipped silently for the current pass.
var ErrNoSuitablePoint = errors.New("no suitable point")

func transient(err error) bool {
	return errors.Is(err, ErrNoSuitablePoint) ||
		strings.Contains(err.Error(), "no suitable point")
}

// Processor runs diagram passes over the built site. Passes are sequential
// per document and guarded by a single in-flight slot: a trigger arriving
// while a pass runs is dropped, with one bounded retry scheduled so the
// change is not lost.
type Processor struct {
	renderer Renderer
	mode     func() theme.Mode
	dir      string
	settle   time.Duration

	busy  atomic.Bool
	retry atomic.Bool
}

// NewProcessor builds a processor over the site output directory. mode is
// consulted at pass time so theme changes between triggers take effect.
func NewProcessor(renderer Renderer, mode func() theme.Mode, dir string, settle time.Duration) *Processor {
	return &Processor{
		renderer: renderer,
		mode:     mode,
		dir:      dir,
		settle:   settle,
	}
}

// Trigger requests a diagram pass. If a pass is already in flight the
// trigger is dropped and Trigger returns false; the running pass picks the
// drop up as a single retry before releasing the slot.
func (p *Processor) Trigger(ctx context.Context) bool {
	if !p.busy.CompareAndSwap(false, true) {
		p.retry.Store(true)
		return false
	}
	defer p.busy.Store(false)

	p.runPass(ctx)
	if p.retry.CompareAndSwap(true, false) {
		p.runPass(ctx)
	}
	return true
}

func (p *Processor) runPass(ctx context.Context) {
	time.Sleep(p.settle)
	if err := p.ProcessDir(ctx); err != nil {
		log.Printf("diagram: pass over %s: %v", p.dir, err)
	}
}

// ProcessDir rewrites every HTML page under the output directory.
func (p *Processor) ProcessDir(ctx context.Context) error {
	return filepath.Walk(p.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		processed, n, err := p.ProcessDocument(ctx, string(raw))
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		return os.WriteFile(path, []byte(processed), info.Mode())
	})
}

// ProcessDocument renders every visible placeholder in an HTML document,
// sequentially and in document order. It returns the rewritten document and
// how many placeholders were touched. Render failures never abort the pass:
// transient geometry errors are skipped silently, anything else is logged,
// and either way the placeholder keeps its decoded source as text.
func (p *Processor) ProcessDocument(ctx context.Context, doc string) (string, int, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return doc, 0, err
	}

	directive := PaletteFor(p.mode()).InitDirective()

	touched := 0
	for _, node := range findPlaceholders(root) {
		if !visible(node) {
			continue
		}
		source := DecodePayload(attr(node, PayloadAttr))
		if source == "" {
			continue
		}

		removeChildren(node)
		removeAttr(node, ProcessedAttr)
		touched++

		id := uuid.NewString()
		svg, err := p.renderer.Render(ctx, id, directive+source)
		if err != nil {
			if !transient(err) {
				log.Printf("diagram: rendering %s: %v", id, err)
			}
			node.AppendChild(&html.Node{Type: html.TextNode, Data: source})
			continue
		}

		node.AppendChild(&html.Node{Type: html.RawNode, Data: svg})
		setAttr(node, ProcessedAttr, "true")
	}

	var b strings.Builder
	if err := html.Render(&b, root); err != nil {
		return doc, 0, err
	}
	return b.String(), touched, nil
}

func findPlaceholders(root *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, PlaceholderClass) {
			out = append(out, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func hasClass(n *html.Node, class string) bool {
	for _, field := range strings.Fields(attr(n, "class")) {
		if field == class {
			return true
		}
	}
	return false
}

// visible applies the render gate: hidden elements keep their payload
// untouched until a later pass finds them displayable.
func visible(n *html.Node) bool {
	if hasAttr(n, "hidden") {
		return false
	}
	style := strings.ReplaceAll(strings.ToLower(attr(n, "style")), " ", "")
	if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
		return false
	}
	if attr(n, "width") == "0" || attr(n, "height") == "0" {
		return false
	}
	return true
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, name, value string) {
	for i, a := range n.Attr {
		if a.Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

func removeAttr(n *html.Node, name string) {
	for i, a := range n.Attr {
		if a.Key == name {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

func removeChildren(n *html.Node) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
}
