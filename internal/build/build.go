// Package build runs the site build pipeline: markdown to handoff pages,
// hydrated shell, content index, and static assets.
package build

import (
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/catpaladin/inkwell/internal/config"
	"github.com/catpaladin/inkwell/internal/content"
	"github.com/catpaladin/inkwell/internal/hydrate"
	"github.com/catpaladin/inkwell/internal/progress"
	"github.com/catpaladin/inkwell/internal/render"
	"github.com/catpaladin/inkwell/internal/theme"
)

// Builder renders the whole site into the output directory.
type Builder struct {
	cfg      *config.Config
	renderer *render.Renderer
	mode     theme.Mode
	reporter progress.Reporter
}

// New creates a builder. The mode decides the theme marker baked into the
// built pages; diagram passes run separately.
func New(cfg *config.Config, mode theme.Mode, reporter progress.Reporter) *Builder {
	if reporter == nil {
		reporter = progress.NopReporter{}
	}
	return &Builder{
		cfg:      cfg,
		renderer: render.New(),
		mode:     mode,
		reporter: reporter,
	}
}

// Run builds every page and returns how many posts were rendered.
func (b *Builder) Run(ctx context.Context) (int, error) {
	entries, posts, err := content.BuildIndex(b.cfg.ContentDir, b.cfg.Include, b.cfg.Exclude)
	if err != nil {
		return 0, fmt.Errorf("indexing content: %w", err)
	}

	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return 0, fmt.Errorf("creating output dir: %w", err)
	}

	meta := siteMeta(b.cfg)

	b.reporter.Start(len(posts) + 1)
	haveHome := false
	for i, post := range posts {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if post.Permalink == "/" {
			haveHome = true
		}
		if err := b.buildPost(meta, post); err != nil {
			return i, err
		}
		b.reporter.Update(i+1, post.RelPath)
	}

	if !haveHome {
		if err := b.buildHome(meta, posts); err != nil {
			return len(posts), err
		}
	}

	b.reporter.Update(len(posts)+1, content.IndexFileName)
	if err := content.WriteIndex(entries, filepath.Join(b.cfg.OutputDir, content.IndexFileName)); err != nil {
		return len(posts), err
	}
	if err := hydrate.WriteAssets(b.cfg.OutputDir); err != nil {
		return len(posts), err
	}
	if err := b.copyStatic(); err != nil {
		return len(posts), err
	}
	b.reporter.Finish()

	return len(posts), nil
}

func (b *Builder) buildPost(meta hydrate.SiteMeta, post *content.Post) error {
	body, err := b.renderer.Render(post.Body)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", post.RelPath, err)
	}

	headings := render.ExtractHeadings(body)
	toc := render.TOCFragment(headings)

	var main strings.Builder
	main.WriteString("<article>")
	main.WriteString("<header><h1>" + html.EscapeString(post.Meta.Title) + "</h1>")
	if date := post.DisplayDate(); date != "" {
		fmt.Fprintf(&main, `<time datetime="%s">%s</time>`, date, date)
	}
	main.WriteString("</header>")
	main.WriteString(body)
	main.WriteString("</article>")

	page, err := hydrate.HandoffPage(post.Meta.Title, b.cfg.Site.Title, toc, main.String())
	if err != nil {
		return err
	}

	flags := hydrate.PageFlags{
		IsHome:  post.Permalink == "/",
		IsPost:  !post.Meta.Date.IsZero(),
		Section: post.Section(),
	}
	hydrated, err := hydrate.Mount(page, meta, flags, b.mode)
	if err != nil {
		return fmt.Errorf("hydrating %s: %w", post.RelPath, err)
	}

	return b.writePage(post.OutputPath(), hydrated)
}

// buildHome emits a post listing when no index.md provides a front page.
func (b *Builder) buildHome(meta hydrate.SiteMeta, posts []*content.Post) error {
	dated := make([]*content.Post, 0, len(posts))
	for _, p := range posts {
		if !p.Meta.Date.IsZero() {
			dated = append(dated, p)
		}
	}
	sort.Slice(dated, func(i, j int) bool {
		return dated[i].Meta.Date.After(dated[j].Meta.Date)
	})

	var main strings.Builder
	main.WriteString("<h1>" + html.EscapeString(b.cfg.Site.Title) + "</h1>")
	if b.cfg.Site.Description != "" {
		main.WriteString("<p>" + html.EscapeString(b.cfg.Site.Description) + "</p>")
	}
	main.WriteString(`<ul class="post-list">`)
	for _, p := range dated {
		fmt.Fprintf(&main, `<li><a href="%s">%s</a><time>%s</time></li>`,
			p.Permalink, html.EscapeString(p.Meta.Title), p.DisplayDate())
	}
	main.WriteString("</ul>")

	page, err := hydrate.HandoffPage(b.cfg.Site.Title, b.cfg.Site.Title, "", main.String())
	if err != nil {
		return err
	}
	hydrated, err := hydrate.Mount(page, meta, hydrate.PageFlags{IsHome: true}, b.mode)
	if err != nil {
		return fmt.Errorf("hydrating home page: %w", err)
	}
	return b.writePage("index.html", hydrated)
}

func (b *Builder) writePage(relPath, doc string) error {
	path := filepath.Join(b.cfg.OutputDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(doc), 0644)
}

// copyStatic mirrors the static dir into the output dir. A missing static
// dir is fine.
func (b *Builder) copyStatic() error {
	info, err := os.Stat(b.cfg.StaticDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("static path %s is not a directory", b.cfg.StaticDir)
	}

	return filepath.Walk(b.cfg.StaticDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(b.cfg.StaticDir, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(b.cfg.OutputDir, rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		return copyFile(path, dst)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

func siteMeta(cfg *config.Config) hydrate.SiteMeta {
	meta := hydrate.SiteMeta{
		Title:       cfg.Site.Title,
		Description: cfg.Site.Description,
		Author:      cfg.Site.Author,
	}
	for _, m := range cfg.Site.Menu {
		meta.Menu = append(meta.Menu, hydrate.MenuEntry{Name: m.Name, URL: m.URL})
	}
	for _, s := range cfg.Site.Social {
		meta.Social = append(meta.Social, hydrate.SocialLink{Name: s.Name, URL: s.URL, Icon: s.Icon})
	}
	return meta
}
