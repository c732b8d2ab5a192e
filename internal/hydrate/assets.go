package hydrate

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteAssets writes the shell stylesheet and script into the site output
// directory.
func WriteAssets(dir string) error {
	assets := map[string]string{
		"style.css": cssContent,
		"app.js":    scriptContent,
	}
	for name, content := range assets {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}

// cssContent styles the shell for both themes via the data-theme marker.
const cssContent = `:root {
  --bg: #ffffff;
  --bg-panel: #f6f8fa;
  --text: #1a1a1a;
  --text-muted: #6a737d;
  --border: #e1e4e8;
  --accent: #0969da;
  --navbar-height: 56px;
}
[data-theme="dark"] {
  --bg: #1a202c;
  --bg-panel: #2d3748;
  --text: #e2e8f0;
  --text-muted: #a0aec0;
  --border: #4a5568;
  --accent: #63b3ed;
}
* { box-sizing: border-box; }
body {
  margin: 0;
  background: var(--bg);
  color: var(--text);
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
  line-height: 1.6;
}
a { color: var(--accent); }
#app-handoff { display: none; }
.scroll-indicator {
  position: fixed;
  top: 0;
  left: 0;
  height: 3px;
  width: 0;
  background: var(--accent);
  z-index: 40;
}
.navbar {
  position: sticky;
  top: 0;
  height: var(--navbar-height);
  display: flex;
  align-items: center;
  gap: 1rem;
  padding: 0 1.25rem;
  background: var(--bg);
  border-bottom: 1px solid var(--border);
  z-index: 10;
}
.site-title { font-weight: 700; text-decoration: none; color: var(--text); }
.navbar .menu { display: flex; gap: 0.75rem; flex: 1; }
.navbar .menu a { text-decoration: none; color: var(--text-muted); }
.navbar-actions { display: flex; gap: 0.5rem; }
.navbar-actions button {
  background: none;
  border: none;
  color: var(--text);
  cursor: pointer;
  padding: 0.4rem;
}
[data-theme="light"] .moon-icon { display: none; }
[data-theme="dark"] .sun-icon { display: none; }
.layout { display: flex; max-width: 1100px; margin: 0 auto; padding: 1.5rem; gap: 2rem; }
.content { flex: 1; min-width: 0; }
.content pre { background: var(--bg-panel); padding: 1rem; overflow-x: auto; border-radius: 6px; }
.content code { background: var(--bg-panel); padding: 0.1rem 0.3rem; border-radius: 3px; }
.content pre code { padding: 0; }
.mermaid { margin: 1.5rem 0; text-align: center; }
.toc-sidebar {
  width: 240px;
  flex-shrink: 0;
  position: sticky;
  top: calc(var(--navbar-height) + 1rem);
  align-self: flex-start;
  font-size: 0.9rem;
}
.toc ul { list-style: none; padding-left: 1rem; margin: 0.25rem 0; }
.toc > ul { padding-left: 0; }
.toc a { text-decoration: none; color: var(--text-muted); display: block; padding: 0.15rem 0; }
.toc a:hover { color: var(--accent); }
.toc-fab {
  display: none;
  position: fixed;
  right: 1rem;
  bottom: 1rem;
  background: var(--bg-panel);
  border: 1px solid var(--border);
  border-radius: 50%;
  padding: 0.75rem;
  color: var(--text);
  cursor: pointer;
  z-index: 20;
}
.toc-panel {
  position: fixed;
  right: 1rem;
  bottom: 4.5rem;
  max-width: 320px;
  max-height: 60vh;
  overflow-y: auto;
  background: var(--bg-panel);
  border: 1px solid var(--border);
  border-radius: 8px;
  padding: 1rem;
  z-index: 20;
}
.toc-close { float: right; background: none; border: none; color: var(--text); cursor: pointer; font-size: 1.1rem; }
.footer {
  display: flex;
  justify-content: space-between;
  max-width: 1100px;
  margin: 0 auto;
  padding: 1.5rem;
  border-top: 1px solid var(--border);
  color: var(--text-muted);
  font-size: 0.85rem;
}
.footer .social { display: flex; gap: 0.75rem; }
.search-overlay {
  position: fixed;
  inset: 0;
  background: rgba(0, 0, 0, 0.5);
  display: flex;
  justify-content: center;
  align-items: flex-start;
  padding-top: 10vh;
  z-index: 30;
}
.search-box { width: min(560px, 90vw); }
.search-box input {
  width: 100%;
  padding: 0.75rem 1rem;
  font-size: 1rem;
  border: 1px solid var(--border);
  border-radius: 8px;
  background: var(--bg);
  color: var(--text);
}
.search-results { list-style: none; margin: 0.5rem 0 0; padding: 0; }
.search-results li { background: var(--bg); border: 1px solid var(--border); border-radius: 6px; margin-bottom: 0.4rem; }
.search-results a { display: block; padding: 0.6rem 1rem; text-decoration: none; color: var(--text); }
.search-results .date { color: var(--text-muted); font-size: 0.8rem; margin-left: 0.5rem; }
@media (max-width: 860px) {
  .toc-sidebar { display: none; }
  .toc-fab { display: block; }
}
`

// scriptContent wires the shell's interactive behavior against the server
// API: theme toggling, the search overlay, offset-aware TOC scrolling, and
// live reload during authoring.
const scriptContent = `(function () {
  'use strict';

  // The server owns theme persistence. Sync the root marker on load so a
  // page built under the other mode honors the stored preference.
  fetch('/api/theme')
    .then(function (res) { return res.json(); })
    .then(function (data) {
      document.documentElement.setAttribute('data-theme', data.theme);
    })
    .catch(function () { /* static hosting: keep the baked marker */ });

  // Theme toggle. The response carries the applied mode.
  var themeToggle = document.getElementById('theme-toggle');
  if (themeToggle) {
    themeToggle.addEventListener('click', function () {
      fetch('/api/theme', { method: 'POST' })
        .then(function (res) { return res.json(); })
        .then(function (data) {
          document.documentElement.setAttribute('data-theme', data.theme);
        })
        .catch(function () { /* offline: leave the current theme */ });
    });
  }

  // Search overlay.
  var overlay = document.getElementById('search-overlay');
  var searchInput = document.getElementById('search-input');
  var searchResults = document.getElementById('search-results');
  var searchToggle = document.getElementById('search-toggle');

  function openOverlay() {
    if (!overlay) return;
    overlay.hidden = false;
    searchInput.value = '';
    searchResults.innerHTML = '';
    searchInput.focus();
  }
  function closeOverlay() {
    if (overlay) overlay.hidden = true;
  }

  if (searchToggle) searchToggle.addEventListener('click', openOverlay);
  if (overlay) {
    overlay.addEventListener('click', function (e) {
      if (e.target === overlay) closeOverlay();
    });
  }
  document.addEventListener('keydown', function (e) {
    if (e.key === 'Escape') {
      closeOverlay();
      closePanel();
    }
  });

  var searchTimer = null;
  if (searchInput) {
    searchInput.addEventListener('input', function () {
      clearTimeout(searchTimer);
      var q = searchInput.value.trim();
      if (q.length < 2) {
        searchResults.innerHTML = '';
        return;
      }
      searchTimer = setTimeout(function () {
        fetch('/api/search?q=' + encodeURIComponent(q))
          .then(function (res) { return res.json(); })
          .then(function (data) {
            searchResults.innerHTML = (data.results || []).map(function (r) {
              return '<li><a href="' + r.permalink + '">' + r.title +
                '<span class="date">' + (r.date || '') + '</span></a></li>';
            }).join('');
          })
          .catch(function () { searchResults.innerHTML = ''; });
      }, 150);
    });
  }

  // Reading progress indicator.
  var indicator = document.getElementById('scroll-indicator');
  if (indicator) {
    var updateIndicator = function () {
      var max = document.documentElement.scrollHeight - window.innerHeight;
      var pct = max > 0 ? (window.pageYOffset / max) * 100 : 0;
      indicator.style.width = pct + '%';
    };
    window.addEventListener('scroll', updateIndicator, { passive: true });
    updateIndicator();
  }

  // Floating TOC panel.
  var panel = document.getElementById('toc-panel');
  var fab = document.getElementById('toc-fab');
  var panelClose = document.getElementById('toc-close');

  function closePanel() {
    if (panel) panel.hidden = true;
  }
  if (fab) {
    fab.addEventListener('click', function () { panel.hidden = !panel.hidden; });
  }
  if (panelClose) panelClose.addEventListener('click', closePanel);

  // Offset-aware smooth scroll for TOC anchors. The navbar height is read
  // at click time since it varies with viewport.
  document.querySelectorAll('.toc a[href^="#"]').forEach(function (link) {
    link.addEventListener('click', function (e) {
      var id = link.getAttribute('href').slice(1);
      var target = document.getElementById(id);
      if (!target) return;
      e.preventDefault();
      var navbar = document.getElementById('navbar');
      var offset = navbar ? navbar.offsetHeight + 8 : 0;
      var top = target.getBoundingClientRect().top + window.pageYOffset - offset;
      window.scrollTo({ top: top, behavior: 'smooth' });
      history.replaceState(null, '', '#' + id);
      closePanel();
    });
  });

  // Live reload during authoring; absent in production builds where the
  // endpoint does not exist.
  function connectReload() {
    var proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
    var ws = new WebSocket(proto + '//' + location.host + '/livereload');
    ws.onmessage = function (msg) {
      if (msg.data === 'reload') location.reload();
    };
    ws.onerror = function () { ws.close(); };
  }
  try { connectReload(); } catch (e) { /* static hosting */ }
})();
`
