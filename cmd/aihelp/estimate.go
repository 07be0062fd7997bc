package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Noodieknoodie/AI-HELPER/internal/usage"
)

var estimateFile string

// estimateCmd prints a token and cost estimate without calling a provider.
var estimateCmd = &cobra.Command{
	Use:   "estimate [prompt]",
	Short: "Estimate prompt tokens and input cost",
	Long: `Estimate the token count of a prompt at roughly four characters per token
and price it with the active model's input rate. No request is sent.`,
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&estimateFile, "file", "f", "", "read the prompt from a file (- for stdin)")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	prompt, err := readPrompt(cmd, args, estimateFile)
	if err != nil {
		return err
	}

	s := env.newSession()
	info, _ := s.ModelInfo()
	tokens, cost := usage.EstimatePrompt(info, prompt)

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "model:  %s/%s\n", s.Provider(), s.Model())
	_, _ = fmt.Fprintf(w, "tokens: ~%d\n", tokens)
	if usage.Priced(info) {
		_, _ = fmt.Fprintf(w, "cost:   ~%s input\n", cost)
	} else {
		_, _ = fmt.Fprintln(w, "cost:   unknown (no price in catalogue)")
	}
	if limit := info.Capabilities.ContextWindow; limit > 0 && tokens > limit {
		_, _ = fmt.Fprintf(w, "warning: estimate exceeds the %d token context window\n", limit)
	}
	return nil
}
