package content

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const channelsPost = `---
title: Go Channels
date: 2025-02-21
tags:
  - go
  - concurrency
---

Channels are the pipes that connect concurrent goroutines.
`

func TestBuildIndex(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "posts", "go-channels.md"), channelsPost)
	writeTestFile(t, filepath.Join(dir, "posts", "draft.md"), "---\ntitle: WIP\ndraft: true\n---\n\nNot yet.\n")

	entries, posts, err := BuildIndex(dir, []string{"**/*.md"}, nil)
	if err != nil {
		t.Fatalf("BuildIndex error: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1 (draft skipped)", len(entries))
	}
	if len(posts) != 1 {
		t.Fatalf("posts = %d, want 1", len(posts))
	}

	e := entries[0]
	if e.Title != "Go Channels" {
		t.Errorf("title = %q, want Go Channels", e.Title)
	}
	if e.Permalink != "/posts/go-channels/" {
		t.Errorf("permalink = %q, want /posts/go-channels/", e.Permalink)
	}
	if e.Date != "2025-02-21" {
		t.Errorf("date = %q, want 2025-02-21", e.Date)
	}
	if len(e.Tags) != 2 || e.Tags[0] != "go" {
		t.Errorf("tags = %v, want [go concurrency]", e.Tags)
	}
	if !strings.Contains(e.Content, "concurrent goroutines") {
		t.Errorf("content = %q, want plain text body", e.Content)
	}
}

func TestWalkRespectsGlobs(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "posts", "one.md"), "# One")
	writeTestFile(t, filepath.Join(dir, "drafts", "two.md"), "# Two")
	writeTestFile(t, filepath.Join(dir, "posts", "_partial.md"), "# Partial")
	writeTestFile(t, filepath.Join(dir, "notes.txt"), "not markdown")

	paths, err := Walk(dir, []string{"**/*.md"}, []string{"drafts/**", "**/_*.md"})
	if err != nil {
		t.Fatalf("Walk error: %v", err)
	}

	if len(paths) != 1 || paths[0] != "posts/one.md" {
		t.Errorf("paths = %v, want [posts/one.md]", paths)
	}
}

func TestIndexRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), IndexFileName)
	entries := []Entry{
		{Title: "Go Channels", Permalink: "/posts/go-channels/", Date: "2025-02-21", Tags: []string{"go"}, Content: "body"},
	}

	if err := WriteIndex(entries, path); err != nil {
		t.Fatalf("WriteIndex error: %v", err)
	}

	loaded, err := LoadIndex(path)
	if err != nil {
		t.Fatalf("LoadIndex error: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Title != "Go Channels" {
		t.Errorf("loaded = %+v, want original entry back", loaded)
	}

	// Tags must serialize as an ordered array.
	data, _ := os.ReadFile(path)
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("index is not a JSON array of objects: %v", err)
	}
	if _, ok := raw[0]["permalink"]; !ok {
		t.Error("index entries must carry a permalink field")
	}
}

func TestPermalinks(t *testing.T) {
	tests := []struct {
		rel  string
		want string
	}{
		{"posts/go-channels.md", "/posts/go-channels/"},
		{"about/index.md", "/about/"},
		{"index.md", "/"},
		{"posts/2025/deep/nested.md", "/posts/2025/deep/nested/"},
	}
	for _, tt := range tests {
		got := permalinkFor(tt.rel)
		if got != tt.want {
			t.Errorf("permalinkFor(%q) = %q, want %q", tt.rel, got, tt.want)
		}
	}
}

func TestPlainText(t *testing.T) {
	md := "# Heading\n\nSome **bold** and `code` and [a link](/x/).\n\n```go\nfunc main() {}\n```\n"
	got := PlainText(md)

	if strings.Contains(got, "#") || strings.Contains(got, "**") || strings.Contains(got, "```") {
		t.Errorf("PlainText left markdown syntax behind: %q", got)
	}
	for _, want := range []string{"Heading", "bold", "code", "a link"} {
		if !strings.Contains(got, want) {
			t.Errorf("PlainText dropped %q: %q", want, got)
		}
	}
	if strings.Contains(got, "func main") {
		t.Errorf("PlainText should drop fenced code blocks: %q", got)
	}
}

func TestOutputPathAndSection(t *testing.T) {
	p := &Post{Permalink: "/posts/go-channels/"}
	if got := p.OutputPath(); got != "posts/go-channels/index.html" {
		t.Errorf("OutputPath = %q", got)
	}
	if got := p.Section(); got != "posts" {
		t.Errorf("Section = %q", got)
	}

	root := &Post{Permalink: "/"}
	if got := root.OutputPath(); got != "index.html" {
		t.Errorf("root OutputPath = %q", got)
	}
	if got := root.Section(); got != "" {
		t.Errorf("root Section = %q", got)
	}
}
