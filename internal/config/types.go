package config

// MenuEntry is one navigation menu item rendered in the shell navbar.
type MenuEntry struct {
	Name string `yaml:"name" koanf:"name"`
	URL  string `yaml:"url" koanf:"url"`
}

// SocialLink is one external profile link rendered in the shell footer.
type SocialLink struct {
	Name string `yaml:"name" koanf:"name"`
	URL  string `yaml:"url" koanf:"url"`
	Icon string `yaml:"icon" koanf:"icon"`
}

// SiteConfig holds the site metadata injected into every mounted shell.
type SiteConfig struct {
	Title       string       `yaml:"title" koanf:"title"`
	Description string       `yaml:"description" koanf:"description"`
	Author      string       `yaml:"author" koanf:"author"`
	BaseURL     string       `yaml:"base_url" koanf:"base_url"`
	Menu        []MenuEntry  `yaml:"menu" koanf:"menu"`
	Social      []SocialLink `yaml:"social" koanf:"social"`
}

// ThemeConfig controls the initial theme resolution.
type ThemeConfig struct {
	// Default is used when no preference is persisted and no system
	// color-scheme signal is available. Must be "light" or "dark".
	Default string `yaml:"default" koanf:"default"`
}

// ServerConfig holds dev server settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// DiagramConfig controls diagram rendering.
type DiagramConfig struct {
	// Command is the external renderer binary (mermaid CLI).
	Command string `yaml:"command" koanf:"command"`
	// SettleDelayMS is the fixed delay before a rendering pass starts.
	SettleDelayMS int `yaml:"settle_delay_ms" koanf:"settle_delay_ms"`
}

// Config is the top-level inkwell configuration, corresponding to .inkwell.yml.
type Config struct {
	Site       SiteConfig    `yaml:"site" koanf:"site"`
	ContentDir string        `yaml:"content_dir" koanf:"content_dir"`
	StaticDir  string        `yaml:"static_dir" koanf:"static_dir"`
	OutputDir  string        `yaml:"output_dir" koanf:"output_dir"`
	DataDir    string        `yaml:"data_dir" koanf:"data_dir"`
	Include    []string      `yaml:"include" koanf:"include"`
	Exclude    []string      `yaml:"exclude" koanf:"exclude"`
	Theme      ThemeConfig   `yaml:"theme" koanf:"theme"`
	Server     ServerConfig  `yaml:"server" koanf:"server"`
	Diagram    DiagramConfig `yaml:"diagram" koanf:"diagram"`
}
