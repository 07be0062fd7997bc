package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configCmd prints the merged configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration aihelp runs with: aihelp.yaml merged with AIHELP_*
environment variables and the built-in provider catalogue. API keys are
never part of the configuration and are not shown.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	data, err := yaml.Marshal(env.cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(w, color.New(color.Faint).Sprintf("# credentials backend: %s", env.cfg.Credentials.Backend))
	_, err = w.Write(data)
	return err
}
