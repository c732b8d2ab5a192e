package cmd

import (
	"github.com/spf13/cobra"

	"github.com/catpaladin/inkwell/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a blog with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the site and generates a .inkwell.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
