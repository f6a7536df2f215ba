package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/layoutgen/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize layoutgen configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to pick a provider, model, language and storage backend, and writes a .layoutgen.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
