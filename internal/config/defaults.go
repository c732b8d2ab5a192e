package config

// DefaultExcludes are glob patterns excluded from the content walk by default.
var DefaultExcludes = []string{
	"drafts/**",
	"**/_*.md",
	"README.md",
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Title:   "My Blog",
			BaseURL: "/",
		},
		ContentDir: "content",
		StaticDir:  "static",
		OutputDir:  "public",
		DataDir:    ".inkwell",
		Include:    []string{"**/*.md"},
		Exclude:    DefaultExcludes,
		Theme: ThemeConfig{
			Default: "dark",
		},
		Server: ServerConfig{
			Port: 1313,
		},
		Diagram: DiagramConfig{
			Command:       "mmdc",
			SettleDelayMS: 150,
		},
	}
}
