package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/catpaladin/inkwell/internal/build"
	"github.com/catpaladin/inkwell/internal/progress"
)

var skipDiagrams bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the site into the output directory",
	Long: `Renders markdown posts into hydrated pages, writes the content
index, copies static assets, and pre-renders diagrams.`,
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

		builder := build.New(cfg, themes.Current(), progress.NewReporter())
		n, err := builder.Run(cmd.Context())
		if err != nil {
			return fmt.Errorf("building site: %w", err)
		}

		if !skipDiagrams {
			proc := diagramProcessor(cfg, themes.Current)
			proc.Trigger(cmd.Context())
		}

		fmt.Printf("Built %d posts into %s\n", n, cfg.OutputDir)
		return nil
	},
}

func init() {
	buildCmd.Flags().BoolVar(&skipDiagrams, "skip-diagrams", false, "skip the diagram render pass")
	rootCmd.AddCommand(buildCmd)
}
