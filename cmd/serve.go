package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/catpaladin/inkwell/internal/build"
	"github.com/catpaladin/inkwell/internal/hydrate"
	"github.com/catpaladin/inkwell/internal/progress"
	"github.com/catpaladin/inkwell/internal/server"
	"github.com/catpaladin/inkwell/internal/theme"
	"github.com/catpaladin/inkwell/internal/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and serve it with live reload",
	Long: `Builds the site, then serves it with the search and theme APIs.
Content changes trigger a rebuild, a diagram pass, and a browser reload.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return fmt.Errorf("opening preference store: %w", err)
		}
		defer database.Close()

		themes := themeController(cfg, database)
		proc := diagramProcessor(cfg, themes.Current)
		hub := server.NewHub()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		rebuild := func() {
			if _, err := build.New(cfg, themes.Current(), progress.NopReporter{}).Run(ctx); err != nil {
				log.Printf("serve: rebuild: %v", err)
				return
			}
			proc.Trigger(ctx)
			hub.Broadcast()
		}

		// Initial build with visible progress.
		if _, err := build.New(cfg, themes.Current(), progress.NewReporter()).Run(ctx); err != nil {
			return fmt.Errorf("building site: %w", err)
		}
		go proc.Trigger(ctx)

		// Theme changes rewrite the root marker on built pages and
		// re-render diagrams with the new palette.
		unsubscribe := themes.Subscribe(func(mode theme.Mode) {
			go func() {
				if err := hydrate.ApplyTheme(cfg.OutputDir, mode); err != nil {
					log.Printf("serve: applying theme: %v", err)
				}
				proc.Trigger(ctx)
				hub.Broadcast()
			}()
		})
		defer unsubscribe()

		watcher, err := watch.New(cfg.ContentDir, 300*time.Millisecond, func() {
			go rebuild()
		})
		if err != nil {
			return fmt.Errorf("watching content: %w", err)
		}
		defer watcher.Close()
		go watcher.Run(ctx)

		srv := server.New(cfg.Server, cfg.OutputDir, searchEngine(cfg), themes, hub)

		errCh := make(chan error, 1)
		go func() {
			if err := srv.Start(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
