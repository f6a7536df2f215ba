package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/layoutgen/internal/config"
	"github.com/ziadkadry99/layoutgen/internal/generation"
	"github.com/ziadkadry99/layoutgen/internal/instructions"
	"github.com/ziadkadry99/layoutgen/internal/llm"
)

var costCmd = &cobra.Command{
	Use:   "cost <theme>",
	Short: "Estimate API costs for one generation",
	Long:  `Performs a dry run that resolves the instruction template, estimates tokens, and calculates the expected API cost without making any calls.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCost,
}

func init() {
	costCmd.Flags().String("type", "poster", "content type: poster or card")
	costCmd.Flags().String("style", "with-image-upload", "with-image-upload or without-image-upload")
	rootCmd.AddCommand(costCmd)
}

func runCost(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	typeFlag, _ := cmd.Flags().GetString("type")
	styleFlag, _ := cmd.Flags().GetString("style")
	ct, err := instructions.ParseContentType(typeFlag)
	if err != nil {
		return err
	}
	style, err := instructions.ParseStyle(styleFlag)
	if err != nil {
		return err
	}

	instruction, err := instructions.Default(cfg.InstructionsDir).Resolve(context.Background(), ct, style)
	if err != nil {
		return err
	}
	theme := strings.Join(args, " ")
	estimate := generation.EstimateRequest(cfg.Model, instruction, theme, cfg.MaxTokens)

	fmt.Println("Cost Estimate")
	fmt.Println("=============")
	fmt.Printf("  Template:            %s\n", instructions.TemplateName(ct, style))
	fmt.Printf("  Input tokens:        ~%d\n", estimate.InputTokens)
	fmt.Printf("  Output tokens (max): %d\n", estimate.OutputTokens)
	fmt.Printf("  Estimated cost:      $%.4f (upper bound)\n", estimate.CostUSD)
	fmt.Println()

	// Default model per provider for comparison.
	fmt.Println("  Provider Comparison:")
	fmt.Println("  ────────────────────────────────────────")
	for _, p := range []config.ProviderType{
		config.ProviderGoogle, config.ProviderOpenAI, config.ProviderAnthropic,
		config.ProviderOpenRouter, config.ProviderMiniMax, config.ProviderOllama,
	} {
		model := config.DefaultModel(p)
		e := generation.EstimateRequest(model, instruction, theme, cfg.MaxTokens)

		marker := " "
		if p == cfg.Provider {
			marker = "*"
		}
		if !llm.Priced(model) {
			fmt.Printf("  %s %-10s  unpriced  (model: %s)\n", marker, p, model)
			continue
		}
		fmt.Printf("  %s %-10s  ~$%.4f  (model: %s)\n", marker, p, e.CostUSD, model)
	}
	fmt.Println()
	fmt.Println("  * = current provider")
	fmt.Println()
	fmt.Printf("  Provider: %s\n", cfg.Provider)
	fmt.Printf("  Model:    %s\n", cfg.Model)

	return nil
}
