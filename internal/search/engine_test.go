package search

import (
	"errors"
	"testing"

	"github.com/catpaladin/inkwell/internal/content"
)

func fixedLoader(entries []content.Entry) func() ([]content.Entry, error) {
	return func() ([]content.Entry, error) { return entries, nil }
}

var corpus = []content.Entry{
	{
		Title:     "Go Channels",
		Permalink: "/posts/go-channels/",
		Date:      "2025-02-21",
		Tags:      []string{"go", "concurrency"},
		Content:   "Channels are the pipes that connect concurrent goroutines.",
	},
	{
		Title:     "Terraform State",
		Permalink: "/posts/terraform-state/",
		Date:      "2024-11-02",
		Tags:      []string{"terraform", "iac"},
		Content:   "Remote state locking with S3 and DynamoDB.",
	},
	{
		Title:     "Kubernetes Operators",
		Permalink: "/posts/k8s-operators/",
		Date:      "2024-06-15",
		Tags:      []string{"kubernetes"},
		Content:   "Writing controllers with controller-runtime.",
	},
}

func TestQueryFindsTitleSubstring(t *testing.T) {
	e := New(fixedLoader(corpus))
	e.Open()

	results := e.Query("chan")
	if len(results) == 0 {
		t.Fatal("query chan returned no results")
	}
	if results[0].Permalink != "/posts/go-channels/" {
		t.Errorf("top result = %q, want /posts/go-channels/", results[0].Permalink)
	}
}

func TestQueryMatchesContentBody(t *testing.T) {
	e := New(fixedLoader(corpus))
	e.Open()

	results := e.Query("dynamodb")
	found := false
	for _, r := range results {
		if r.Permalink == "/posts/terraform-state/" {
			found = true
		}
	}
	if !found {
		t.Errorf("content-body match missing, results = %+v", results)
	}
}

func TestQueryMatchesTags(t *testing.T) {
	e := New(fixedLoader(corpus))
	e.Open()

	results := e.Query("concurrency")
	if len(results) == 0 || results[0].Title != "Go Channels" {
		t.Errorf("tag match failed, results = %+v", results)
	}
}

func TestShortQueriesReturnNothing(t *testing.T) {
	e := New(fixedLoader(corpus))
	e.Open()

	if got := e.Query("g"); got != nil {
		t.Errorf("single-character query returned %+v, want nil", got)
	}
	if got := e.Query("  g  "); got != nil {
		t.Errorf("whitespace-padded single character returned %+v, want nil", got)
	}
}

func TestQueryBeforeOpenIsEmpty(t *testing.T) {
	e := New(fixedLoader(corpus))

	if got := e.Query("channels"); got != nil {
		t.Errorf("query before Open returned %+v, want nil", got)
	}
}

func TestLoadFailureDegradesSilently(t *testing.T) {
	e := New(func() ([]content.Entry, error) {
		return nil, errors.New("index unreachable")
	})

	e.Open()
	if e.Ready() {
		t.Error("engine should stay uninitialized after load failure")
	}
	if got := e.Query("channels"); got != nil {
		t.Errorf("query after failed load returned %+v, want nil", got)
	}
}

func TestOpenOnlyLoadsOnce(t *testing.T) {
	calls := 0
	e := New(func() ([]content.Entry, error) {
		calls++
		return corpus, nil
	})

	e.Open()
	e.Close()
	e.Open()
	e.Open()

	if calls != 1 {
		t.Errorf("load calls = %d, want 1", calls)
	}
	if !e.Ready() {
		t.Error("engine should be ready after Open")
	}
}

func TestResultCap(t *testing.T) {
	var many []content.Entry
	for i := 0; i < 20; i++ {
		many = append(many, content.Entry{
			Title:     "Go Notes",
			Permalink: permalinkN(i),
			Content:   "notes about the go runtime",
		})
	}
	e := New(fixedLoader(many))
	e.Open()

	results := e.Query("notes")
	if len(results) > MaxResults {
		t.Errorf("results = %d, want at most %d", len(results), MaxResults)
	}
}

func permalinkN(i int) string {
	return "/posts/notes-" + string(rune('a'+i)) + "/"
}
