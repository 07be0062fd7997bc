package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Noodieknoodie/AI-HELPER/internal/models"
	"github.com/Noodieknoodie/AI-HELPER/internal/usage"
)

// modelsCmd lists the models of one provider.
var modelsCmd = &cobra.Command{
	Use:   "models [provider]",
	Short: "List the models of a provider",
	Long: `List the catalogue entries of a provider with their capabilities and
prices in USD per million tokens. Without an argument the active provider
is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runModels,
}

func runModels(cmd *cobra.Command, args []string) error {
	name := env.currentProvider()
	if len(args) == 1 {
		name = args[0]
	}
	p, ok := env.registry.Provider(name)
	if !ok {
		return exitError(ExitInvalidArgs, fmt.Sprintf("unknown provider %q; configured providers: %s",
			name, strings.Join(env.registry.Providers(), ", ")))
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)

	_, _ = fmt.Fprintln(tw, " \t"+bold.Sprint("ID")+"\t"+bold.Sprint("NAME")+"\t"+bold.Sprint("CONTEXT")+"\t"+
		bold.Sprint("MAX OUTPUT")+"\t"+bold.Sprint("FEATURES")+"\t"+bold.Sprint("PRICE IN/OUT"))

	for _, m := range p.Models {
		marker := " "
		if m.ID == p.DefaultModel {
			marker = green.Sprint("*")
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			marker, m.ID, m.Name,
			formatLimit(m.Capabilities.ContextWindow),
			formatLimit(maxOutput(m.Capabilities)),
			strings.Join(features(m.Capabilities), ","),
			formatPrice(m))
	}
	return tw.Flush()
}

func maxOutput(c models.Capabilities) int {
	return max(c.MaxTokensDefault, c.MaxTokensExtended, c.MaxCompletionTokens, c.OutputTokenLimit)
}

func features(c models.Capabilities) []string {
	var out []string
	if c.SupportsExtendedThinking {
		out = append(out, "extended-thinking")
	}
	if c.SupportsThinking {
		out = append(out, "thinking")
	}
	if c.SupportsReasoning {
		out = append(out, "reasoning")
	}
	if c.SupportsLongOutput {
		out = append(out, "long-output")
	}
	if c.SupportsVision {
		out = append(out, "vision")
	}
	if len(out) == 0 {
		out = append(out, "-")
	}
	return out
}

func formatLimit(n int) string {
	if n <= 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

func formatPrice(m models.ModelInfo) string {
	if !usage.Priced(m) {
		return "-"
	}
	return fmt.Sprintf("$%g/$%g", m.PriceInput, m.PriceOutput)
}
