package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "inkwell",
	Short: "A personal blog engine with progressive page enhancement",
	Long: `Inkwell builds and serves a personal technical blog. It renders
markdown posts into hydrated pages with fuzzy search, a table of
contents, theme-aware diagrams, and live reload during authoring.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".inkwell.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
