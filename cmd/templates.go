package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/layoutgen/internal/instructions"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the instruction templates",
	Long:  `Lists every instruction template visible to the generator, including overrides from instructions_dir.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		names, err := instructions.Default(cfg.InstructionsDir).Available()
		if err != nil {
			return err
		}
		if cfg.InstructionsDir != "" {
			fmt.Printf("Overrides from %s take precedence over built-in templates.\n\n", cfg.InstructionsDir)
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}
