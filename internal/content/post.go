package content

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the YAML metadata block at the top of each post.
type FrontMatter struct {
	Title       string    `yaml:"title"`
	Date        time.Time `yaml:"date"`
	Tags        []string  `yaml:"tags"`
	Description string    `yaml:"description"`
	Draft       bool      `yaml:"draft"`
}

// Post is one markdown source file with parsed metadata.
type Post struct {
	Meta      FrontMatter
	Body      string // markdown body without front matter
	RelPath   string // slash-separated path relative to the content dir
	Permalink string // URL path, e.g. /posts/go-channels/
}

// ParsePost reads and parses a single markdown file.
func ParsePost(contentDir, relPath string) (*Post, error) {
	srcPath := filepath.Join(contentDir, filepath.FromSlash(relPath))
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", relPath, err)
	}

	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return nil, fmt.Errorf("parsing front matter of %s: %w", relPath, err)
	}

	p := &Post{
		Meta:      meta,
		Body:      string(body),
		RelPath:   relPath,
		Permalink: permalinkFor(relPath),
	}
	if p.Meta.Title == "" {
		p.Meta.Title = titleFromPath(relPath)
	}
	return p, nil
}

// DisplayDate returns the post date formatted for display, or "" when unset.
func (p *Post) DisplayDate() string {
	if p.Meta.Date.IsZero() {
		return ""
	}
	return p.Meta.Date.Format("2006-01-02")
}

// permalinkFor maps a content-relative markdown path to its URL path.
// "posts/go-channels.md" -> "/posts/go-channels/" and directory indexes
// collapse: "about/index.md" -> "/about/".
func permalinkFor(relPath string) string {
	p := strings.TrimSuffix(filepath.ToSlash(relPath), ".md")
	if strings.HasSuffix(p, "/index") {
		p = strings.TrimSuffix(p, "index")
	} else if p == "index" {
		p = ""
	} else {
		p += "/"
	}
	return "/" + p
}

// titleFromPath derives a fallback title from the file name.
func titleFromPath(relPath string) string {
	name := strings.TrimSuffix(filepath.Base(relPath), ".md")
	words := strings.FieldsFunc(name, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// OutputPath maps a permalink to its file path under the output dir,
// e.g. /posts/go-channels/ -> posts/go-channels/index.html.
func (p *Post) OutputPath() string {
	trimmed := strings.Trim(p.Permalink, "/")
	if trimmed == "" {
		return "index.html"
	}
	return trimmed + "/index.html"
}

// Section returns the first path segment of the permalink, e.g. "posts".
func (p *Post) Section() string {
	parts := strings.SplitN(strings.Trim(p.Permalink, "/"), "/", 2)
	if len(parts) == 0 || parts[0] == "" {
		return ""
	}
	return parts[0]
}
