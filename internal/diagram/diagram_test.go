package diagram

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/catpaladin/inkwell/internal/theme"
)

type fakeRenderer struct {
	mu      sync.Mutex
	calls   int
	sources []string
	svg     string
	fail    func(source string) error
	block   chan struct{}
}

func (r *fakeRenderer) Render(_ context.Context, _, source string) (string, error) {
	r.mu.Lock()
	r.calls++
	r.sources = append(r.sources, source)
	r.mu.Unlock()

	if r.block != nil {
		<-r.block
	}
	if r.fail != nil {
		if err := r.fail(source); err != nil {
			return "", err
		}
	}
	if r.svg == "" {
		return "<svg><title>ok</title></svg>", nil
	}
	return r.svg, nil
}

func (r *fakeRenderer) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func darkMode() theme.Mode { return theme.Dark }

func placeholder(source string) string {
	payload := base64.StdEncoding.EncodeToString([]byte(source))
	return `<div class="mermaid" data-diagram="` + payload + `"></div>`
}

func TestDecodePayloadBase64(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("graph TD\nA --> B"))

	got := DecodePayload(payload)
	if got != "graph TD\nA --> B" {
		t.Errorf("DecodePayload = %q", got)
	}
}

func TestDecodePayloadLiteralFallback(t *testing.T) {
	// Raw escaped text, not base64. Arrows survive entity unescaping.
	got := DecodePayload("graph TD; A--&gt;B")
	if got != "graph TD; A-->B" {
		t.Errorf("DecodePayload = %q, want literal fallback with arrow", got)
	}
}

func TestDecodePayloadNormalizes(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("graph TD\\nA --> B\r\n"))

	got := DecodePayload(payload)
	if strings.Contains(got, `\n`) || strings.Contains(got, "\r") {
		t.Errorf("DecodePayload = %q, want normalized newlines", got)
	}
	if !strings.Contains(got, "\nA --> B") {
		t.Errorf("DecodePayload = %q, escaped newline should become real", got)
	}
}

func TestDecodePayloadEmpty(t *testing.T) {
	if got := DecodePayload("   "); got != "" {
		t.Errorf("DecodePayload = %q, want empty", got)
	}
}

func TestPalettesDifferPerMode(t *testing.T) {
	dark := PaletteFor(theme.Dark)
	light := PaletteFor(theme.Light)

	if dark.Background == light.Background {
		t.Error("dark and light backgrounds must differ")
	}

	directive := dark.InitDirective()
	if !strings.HasPrefix(directive, "%%{init:") {
		t.Errorf("directive = %q, want mermaid init prefix", directive)
	}
	if !strings.Contains(directive, dark.Background) {
		t.Errorf("directive should carry the background color: %s", directive)
	}
	if !strings.Contains(directive, "flowchart") || !strings.Contains(directive, "sequence") {
		t.Errorf("directive should carry per-family overrides: %s", directive)
	}
}

func TestProcessDocumentRenders(t *testing.T) {
	r := &fakeRenderer{}
	p := NewProcessor(r, darkMode, "", 0)

	doc := "<html><body>" + placeholder("graph TD\nA --> B") + "</body></html>"
	out, n, err := p.ProcessDocument(context.Background(), doc)
	if err != nil {
		t.Fatalf("ProcessDocument error: %v", err)
	}
	if n != 1 {
		t.Errorf("touched = %d, want 1", n)
	}
	if !strings.Contains(out, `data-processed="true"`) {
		t.Errorf("placeholder should be marked processed: %s", out)
	}
	if !strings.Contains(out, "<svg>") {
		t.Errorf("placeholder content should be the rendered SVG: %s", out)
	}
	if len(r.sources) != 1 || !strings.HasPrefix(r.sources[0], "%%{init:") {
		t.Errorf("renderer should get the palette directive prepended, got %q", r.sources)
	}
}

func TestProcessDocumentSkipsHidden(t *testing.T) {
	r := &fakeRenderer{}
	p := NewProcessor(r, darkMode, "", 0)

	payload := base64.StdEncoding.EncodeToString([]byte("graph TD\nA --> B"))
	doc := `<html><body>` +
		`<div class="mermaid" hidden data-diagram="` + payload + `"></div>` +
		`<div class="mermaid" style="display: none" data-diagram="` + payload + `"></div>` +
		`<div class="mermaid" width="0" data-diagram="` + payload + `"></div>` +
		`</body></html>`

	_, n, err := p.ProcessDocument(context.Background(), doc)
	if err != nil {
		t.Fatalf("ProcessDocument error: %v", err)
	}
	if n != 0 || r.callCount() != 0 {
		t.Errorf("hidden placeholders must not render: touched=%d calls=%d", n, r.callCount())
	}
}

func TestProcessDocumentMalformedIsolation(t *testing.T) {
	r := &fakeRenderer{fail: func(source string) error {
		if strings.Contains(source, "nonsense") {
			return errors.New("parse error at line 1")
		}
		return nil
	}}
	p := NewProcessor(r, darkMode, "", 0)

	doc := "<html><body>" +
		placeholder("nonsense ===") +
		placeholder("graph TD\nA --> B") +
		"</body></html>"

	out, n, err := p.ProcessDocument(context.Background(), doc)
	if err != nil {
		t.Fatalf("ProcessDocument error: %v", err)
	}
	if n != 2 {
		t.Errorf("touched = %d, want 2", n)
	}
	// The broken diagram keeps its decoded source, the good one renders.
	if !strings.Contains(out, "nonsense ===") {
		t.Errorf("failed placeholder should keep decoded source: %s", out)
	}
	if strings.Count(out, `data-processed="true"`) != 1 {
		t.Errorf("exactly the well-formed placeholder should be marked: %s", out)
	}
}

func TestProcessDocumentTransientSkip(t *testing.T) {
	r := &fakeRenderer{fail: func(string) error {
		return ErrNoSuitablePoint
	}}
	p := NewProcessor(r, darkMode, "", 0)

	doc := "<html><body>" + placeholder("graph TD\nA --> B") + "</body></html>"
	out, _, err := p.ProcessDocument(context.Background(), doc)
	if err != nil {
		t.Fatalf("ProcessDocument error: %v", err)
	}
	if strings.Contains(out, `data-processed="true"`) {
		t.Errorf("transient failure must not mark the placeholder: %s", out)
	}
	if !strings.Contains(out, "data-diagram=") {
		t.Errorf("payload must survive a transient skip for the next pass: %s", out)
	}
}

func TestProcessDocumentIdempotent(t *testing.T) {
	r := &fakeRenderer{svg: `<svg viewBox="0 0 10 10"></svg>`}
	p := NewProcessor(r, darkMode, "", 0)
	ctx := context.Background()

	doc := "<html><body>" + placeholder("graph TD\nA --> B") + "</body></html>"

	once, n1, err := p.ProcessDocument(ctx, doc)
	if err != nil {
		t.Fatalf("first pass error: %v", err)
	}
	twice, n2, err := p.ProcessDocument(ctx, once)
	if err != nil {
		t.Fatalf("second pass error: %v", err)
	}
	if n1 != 1 || n2 != 1 {
		t.Errorf("both passes should touch the placeholder: %d, %d", n1, n2)
	}
	if once != twice {
		t.Errorf("back-to-back passes diverge:\nfirst:  %s\nsecond: %s", once, twice)
	}
}

func TestProcessDirRewritesPages(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "posts", "go-channels", "index.html")
	if err := os.MkdirAll(filepath.Dir(page), 0755); err != nil {
		t.Fatal(err)
	}
	doc := "<html><body>" + placeholder("graph TD\nA --> B") + "</body></html>"
	if err := os.WriteFile(page, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	p := NewProcessor(&fakeRenderer{}, darkMode, dir, 0)
	if err := p.ProcessDir(context.Background()); err != nil {
		t.Fatalf("ProcessDir error: %v", err)
	}

	got, err := os.ReadFile(page)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), `data-processed="true"`) {
		t.Errorf("page on disk should be rewritten: %s", got)
	}
}

func TestTriggerDropsWhileBusyAndRetries(t *testing.T) {
	dir := t.TempDir()
	doc := "<html><body>" + placeholder("graph TD\nA --> B") + "</body></html>"
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	r := &fakeRenderer{block: make(chan struct{}, 4)}
	p := NewProcessor(r, darkMode, dir, 0)

	first := make(chan bool)
	started := make(chan struct{})
	go func() {
		go func() {
			// Wait for the first render to begin before signaling.
			for r.callCount() == 0 {
				time.Sleep(time.Millisecond)
			}
			close(started)
		}()
		first <- p.Trigger(context.Background())
	}()

	<-started
	if p.Trigger(context.Background()) {
		t.Error("trigger during a running pass should be dropped")
	}

	// Unblock both the in-flight pass and the bounded retry it picks up.
	r.block <- struct{}{}
	r.block <- struct{}{}

	if !<-first {
		t.Error("the owning trigger should report that it ran")
	}
	if got := r.callCount(); got != 2 {
		t.Errorf("renders = %d, want pass plus one retry", got)
	}
}

func TestTransientClassification(t *testing.T) {
	if !transient(errors.New("svg error: no suitable point found")) {
		t.Error("message match should classify as transient")
	}
	if transient(errors.New("parse error")) {
		t.Error("ordinary errors are not transient")
	}
}
