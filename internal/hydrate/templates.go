package hydrate

// handoffTemplate is the static page the build pipeline emits. The shell is
// mounted into #app from the #app-handoff content; pages served to clients
// with scripting disabled still read fine from the handoff markup itself.
const handoffTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} — {{.SiteTitle}}</title>
  <link rel="stylesheet" href="/style.css">
  <script src="/app.js" defer></script>
</head>
<body>
  <div id="app"></div>
  <div id="app-handoff">
    <div id="toc-contents">{{.TOC}}</div>
    <main>{{.Main}}</main>
  </div>
</body>
</html>`

// shellTemplate is the interactive shell mounted at #app.
const shellTemplate = `<div class="shell" data-section="{{.Page.Section}}">
  <div class="scroll-indicator" id="scroll-indicator"></div>
  <header class="navbar" id="navbar">
    <a class="site-title" href="/">{{.Site.Title}}</a>
    <nav class="menu">
      {{range .Site.Menu}}<a href="{{.URL}}">{{.Name}}</a>{{end}}
    </nav>
    <div class="navbar-actions">
      <button class="search-toggle" id="search-toggle" aria-label="Search">
        <svg width="18" height="18" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
          <circle cx="11" cy="11" r="8"/><line x1="21" y1="21" x2="16.65" y2="16.65"/>
        </svg>
      </button>
      <button class="theme-toggle" id="theme-toggle" aria-label="Toggle theme">
        <svg class="sun-icon" width="18" height="18" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
          <circle cx="12" cy="12" r="5"/><line x1="12" y1="1" x2="12" y2="3"/><line x1="12" y1="21" x2="12" y2="23"/><line x1="1" y1="12" x2="3" y2="12"/><line x1="21" y1="12" x2="23" y2="12"/>
        </svg>
        <svg class="moon-icon" width="18" height="18" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
          <path d="M21 12.79A9 9 0 1 1 11.21 3 7 7 0 0 0 21 12.79z"/>
        </svg>
      </button>
    </div>
  </header>
  <div class="layout{{if .Page.IsPost}} layout-post{{end}}">
    {{if .HasTOC}}
    <aside class="toc-sidebar">
      <nav class="toc" aria-label="Table of contents">{{.TOC}}</nav>
    </aside>
    <div class="toc-panel" id="toc-panel" hidden>
      <button class="toc-close" id="toc-close" aria-label="Close">&times;</button>
      <nav class="toc" aria-label="Table of contents">{{.TOC}}</nav>
    </div>
    <button class="toc-fab" id="toc-fab" aria-label="Table of contents">
      <svg width="20" height="20" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
        <line x1="8" y1="6" x2="21" y2="6"/><line x1="8" y1="12" x2="21" y2="12"/><line x1="8" y1="18" x2="21" y2="18"/>
        <line x1="3" y1="6" x2="3.01" y2="6"/><line x1="3" y1="12" x2="3.01" y2="12"/><line x1="3" y1="18" x2="3.01" y2="18"/>
      </svg>
    </button>
    {{end}}
    <main class="content{{if .Page.IsHome}} home{{end}}">{{.Main}}</main>
  </div>
  <footer class="footer">
    <span>{{.Site.Author}}</span>
    <nav class="social">
      {{range .Site.Social}}<a href="{{.URL}}" rel="me">{{.Name}}</a>{{end}}
    </nav>
  </footer>
  <div class="search-overlay" id="search-overlay" hidden>
    <div class="search-box">
      <input type="text" id="search-input" placeholder="Search posts..." autocomplete="off">
      <ul class="search-results" id="search-results"></ul>
    </div>
  </div>
</div>`
