package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "layoutgen",
	Short: "AI-generated HTML posters and cards",
	Long: `Layoutgen turns a short theme into a self-contained HTML poster or card
using an LLM and a set of instruction templates. Jobs are kept in a durable
history that the dashboard, the MCP server and the CLI all share.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".layoutgen.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
