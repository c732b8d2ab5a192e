package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/catpaladin/inkwell/internal/config"
	"github.com/catpaladin/inkwell/internal/content"
	"github.com/catpaladin/inkwell/internal/db"
	"github.com/catpaladin/inkwell/internal/diagram"
	"github.com/catpaladin/inkwell/internal/search"
	"github.com/catpaladin/inkwell/internal/theme"
)

// loadConfig reads and validates the config file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openDatabase opens the preference store under the data dir.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	return db.Open(filepath.Join(cfg.DataDir, "inkwell.db"))
}

// themeController resolves the active theme: the persisted preference wins,
// then the configured default stands in for the platform color-scheme
// signal, then dark.
func themeController(cfg *config.Config, database *db.DB) *theme.Controller {
	signal := func() (theme.Mode, bool) {
		m := theme.Mode(cfg.Theme.Default)
		return m, m.Valid()
	}
	return theme.NewController(theme.NewDBStore(database), signal)
}

// searchEngine lazily loads the built content index.
func searchEngine(cfg *config.Config) *search.Engine {
	indexPath := filepath.Join(cfg.OutputDir, content.IndexFileName)
	return search.New(func() ([]content.Entry, error) {
		return content.LoadIndex(indexPath)
	})
}

// diagramProcessor wires the mermaid CLI over the output dir.
func diagramProcessor(cfg *config.Config, mode func() theme.Mode) *diagram.Processor {
	renderer := diagram.NewCLIRenderer(cfg.Diagram.Command)
	settle := time.Duration(cfg.Diagram.SettleDelayMS) * time.Millisecond
	return diagram.NewProcessor(renderer, mode, cfg.OutputDir, settle)
}
