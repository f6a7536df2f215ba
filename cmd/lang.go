package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/layoutgen/internal/i18n"
)

var langCmd = &cobra.Command{
	Use:   "lang [zh|en]",
	Short: "Show or set the display language",
	Long:  `Without an argument prints the saved language preference. With one, saves it for the dashboard, captions and CLI labels.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		rt, err := openStorage(ctx)
		if err != nil {
			return err
		}
		defer rt.Close()

		if len(args) == 0 {
			lang, err := rt.prefs.Language(ctx)
			if err != nil {
				return err
			}
			fmt.Println(lang)
			return nil
		}

		lang, err := i18n.Parse(args[0])
		if err != nil {
			return err
		}
		if err := rt.prefs.SetLanguage(ctx, lang); err != nil {
			return err
		}
		fmt.Printf("Language set to %s\n", lang)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(langCmd)
}
