package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/catpaladin/inkwell/internal/config"
	"github.com/catpaladin/inkwell/internal/content"
	"github.com/catpaladin/inkwell/internal/search"
	"github.com/catpaladin/inkwell/internal/theme"
)

type memStore struct {
	mode theme.Mode
	ok   bool
}

func (s *memStore) Get() (theme.Mode, bool, error) { return s.mode, s.ok, nil }
func (s *memStore) Set(m theme.Mode) error         { s.mode, s.ok = m, true; return nil }

func newTestServer(t *testing.T) (*Server, *memStore, string) {
	t.Helper()

	siteDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(siteDir, "index.html"), []byte("<html>home</html>"), 0644); err != nil {
		t.Fatal(err)
	}

	engine := search.New(func() ([]content.Entry, error) {
		return []content.Entry{
			{Title: "Go Channels", Permalink: "/posts/go-channels/", Date: "2025-02-21", Tags: []string{"go"}, Content: "pipes for goroutines"},
			{Title: "Terraform State", Permalink: "/posts/terraform-state/", Content: "remote state"},
		}, nil
	})
	store := &memStore{}
	themes := theme.NewController(store, nil)

	s := New(config.ServerConfig{Port: 0}, siteDir, engine, themes, NewHub())
	return s, store, siteDir
}

func TestHealthz(t *testing.T) {
	s, _, _ := newTestServer(t)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", res.StatusCode)
	}
}

func TestSearchEndpoint(t *testing.T) {
	s, _, _ := newTestServer(t)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/api/search?q=chan")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	var body searchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(body.Results) == 0 || body.Results[0].Permalink != "/posts/go-channels/" {
		t.Errorf("results = %+v, want go-channels first", body.Results)
	}
}

func TestSearchShortQueryReturnsEmptyArray(t *testing.T) {
	s, _, _ := newTestServer(t)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/api/search?q=g")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), `"results":[]`) {
		t.Errorf("short query should return an empty array, got %s", body)
	}
}

func TestThemeEndpoints(t *testing.T) {
	s, store, _ := newTestServer(t)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	get := func() string {
		res, err := http.Get(ts.URL + "/api/theme")
		if err != nil {
			t.Fatal(err)
		}
		defer res.Body.Close()
		var body themeResponse
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		return body.Theme
	}

	if got := get(); got != "dark" {
		t.Errorf("initial theme = %s, want dark default", got)
	}

	res, err := http.Post(ts.URL+"/api/theme", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()

	if got := get(); got != "light" {
		t.Errorf("theme after toggle = %s, want light", got)
	}
	if store.mode != theme.Light {
		t.Errorf("toggle should persist, store = %s", store.mode)
	}
}

func TestStaticSiteServed(t *testing.T) {
	s, _, _ := newTestServer(t)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "home") {
		t.Errorf("index page not served, got %q", body)
	}
}

func TestLiveReloadBroadcast(t *testing.T) {
	s, _, _ := newTestServer(t)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/livereload"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dialing livereload: %v", err)
	}
	defer conn.Close()

	// Registration happens just after the handshake completes.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		s.reload.mu.Lock()
		n := len(s.reload.clients)
		s.reload.mu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	s.reload.Broadcast()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("reading broadcast: %v", err)
	}
	if string(msg) != "reload" {
		t.Errorf("message = %q, want reload", msg)
	}
}
