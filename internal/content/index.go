package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IndexFileName is the fixed path of the content index under the site root.
const IndexFileName = "index.json"

// Entry is one searchable post in the content index.
type Entry struct {
	Title     string   `json:"title"`
	Permalink string   `json:"permalink"`
	Date      string   `json:"date"`
	Tags      []string `json:"tags,omitempty"`
	Content   string   `json:"content"`
}

// Walk returns the content-relative paths of all markdown files under
// contentDir that match the include globs and none of the exclude globs.
func Walk(contentDir string, include, exclude []string) ([]string, error) {
	var paths []string
	err := filepath.Walk(contentDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		rel, err := filepath.Rel(contentDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if matchAny(include, rel) && !matchAny(exclude, rel) {
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking content dir: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// BuildIndex parses every non-draft post and produces its index entry.
func BuildIndex(contentDir string, include, exclude []string) ([]Entry, []*Post, error) {
	paths, err := Walk(contentDir, include, exclude)
	if err != nil {
		return nil, nil, err
	}

	var entries []Entry
	var posts []*Post
	for _, rel := range paths {
		post, err := ParsePost(contentDir, rel)
		if err != nil {
			return nil, nil, err
		}
		if post.Meta.Draft {
			continue
		}
		posts = append(posts, post)
		entries = append(entries, Entry{
			Title:     post.Meta.Title,
			Permalink: post.Permalink,
			Date:      post.DisplayDate(),
			Tags:      post.Meta.Tags,
			Content:   PlainText(post.Body),
		})
	}
	return entries, posts, nil
}

// WriteIndex writes the content index as JSON to the given path.
func WriteIndex(entries []Entry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}

// LoadIndex reads a content index JSON file.
func LoadIndex(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content index: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing content index: %w", err)
	}
	return entries, nil
}

var (
	codeFenceRe  = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe = regexp.MustCompile("`([^`]*)`")
	linkRe       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	imageRe      = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	headingRe    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	emphasisRe   = regexp.MustCompile(`[*_]{1,3}([^*_]+)[*_]{1,3}`)
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	spaceRe      = regexp.MustCompile(`\s+`)
)

// PlainText strips markdown syntax down to searchable plain text.
func PlainText(markdown string) string {
	s := codeFenceRe.ReplaceAllString(markdown, " ")
	s = imageRe.ReplaceAllString(s, " ")
	s = linkRe.ReplaceAllString(s, "$1")
	s = inlineCodeRe.ReplaceAllString(s, "$1")
	s = headingRe.ReplaceAllString(s, "")
	s = emphasisRe.ReplaceAllString(s, "$1")
	s = htmlTagRe.ReplaceAllString(s, " ")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
