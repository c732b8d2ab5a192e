// Package search provides fuzzy full-text search over the content index.
package search

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/search/query"

	"github.com/catpaladin/inkwell/internal/content"
)

const (
	// MaxResults caps how many ranked entries a query returns.
	MaxResults = 5
	// MinQueryLength is the shortest query that produces matches. Shorter
	// queries return empty result sets rather than noisy single-character
	// matches.
	MinQueryLength = 2
)

// Engine wraps an in-memory bleve index over the content index entries.
// The index is built lazily on first Open and kept for the engine's
// lifetime; a failed load leaves the engine uninitialized and every query
// silently returns no results.
type Engine struct {
	mu          sync.Mutex
	initialized bool
	index       bleve.Index
	entries     map[string]content.Entry // doc id (permalink) -> entry
	load        func() ([]content.Entry, error)
}

// New creates an engine that fetches the content index with load on first
// Open.
func New(load func() ([]content.Entry, error)) *Engine {
	return &Engine{load: load}
}

// Open builds the matcher on first call; repeated opens are no-ops. A load
// failure is logged and the engine stays uninitialized so later queries
// degrade to empty results.
func (e *Engine) Open() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return
	}

	entries, err := e.load()
	if err != nil {
		log.Printf("search: loading content index: %v", err)
		return
	}

	idx, err := buildIndex(entries)
	if err != nil {
		log.Printf("search: building index: %v", err)
		return
	}

	e.index = idx
	e.entries = make(map[string]content.Entry, len(entries))
	for _, entry := range entries {
		e.entries[entry.Permalink] = entry
	}
	e.initialized = true
}

func buildIndex(entries []content.Entry) (bleve.Index, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, err
	}

	batch := idx.NewBatch()
	for _, entry := range entries {
		doc := map[string]interface{}{
			"title":   entry.Title,
			"tags":    strings.Join(entry.Tags, " "),
			"content": entry.Content,
		}
		if err := batch.Index(entry.Permalink, doc); err != nil {
			return nil, err
		}
	}
	if err := idx.Batch(batch); err != nil {
		return nil, fmt.Errorf("indexing entries: %w", err)
	}
	return idx, nil
}

// Ready reports whether the matcher has been constructed.
func (e *Engine) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized
}

// Query returns up to MaxResults ranked entries for the query text. Queries
// shorter than MinQueryLength, or any query before the matcher is ready,
// return an empty result set.
func (e *Engine) Query(text string) []content.Entry {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return nil
	}
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < MinQueryLength {
		return nil
	}

	res, err := e.index.Search(bleve.NewSearchRequestOptions(buildQuery(text), MaxResults, 0, false))
	if err != nil {
		log.Printf("search: query %q: %v", text, err)
		return nil
	}

	results := make([]content.Entry, 0, len(res.Hits))
	for _, hit := range res.Hits {
		if entry, ok := e.entries[hit.ID]; ok {
			results = append(results, entry)
		}
	}
	return results
}

// buildQuery combines a fuzzy term match with location-agnostic substring
// matches so a fragment anywhere in a long content body still counts.
func buildQuery(text string) query.Query {
	fuzzy := bleve.NewMatchQuery(text)
	fuzzy.SetFuzziness(1)

	lower := strings.ToLower(text)

	title := bleve.NewWildcardQuery("*" + lower + "*")
	title.SetField("title")
	title.SetBoost(2.0)

	tags := bleve.NewWildcardQuery("*" + lower + "*")
	tags.SetField("tags")
	tags.SetBoost(1.5)

	body := bleve.NewWildcardQuery("*" + lower + "*")
	body.SetField("content")

	return bleve.NewDisjunctionQuery(fuzzy, title, tags, body)
}

// Close clears transient query state. The constructed matcher is kept so
// reopening is fast.
func (e *Engine) Close() {
	// Nothing to discard: query state lives in the caller and the matcher
	// survives across opens intentionally.
}
