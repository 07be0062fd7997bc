package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Noodieknoodie/AI-HELPER/internal/providers"
)

// providersCmd lists the configured providers.
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List configured providers",
	Long: `List every configured provider with its default model, whether an API key
is stored for it and the adapter that serves it. The active provider is
marked with an asterisk.`,
	Args: cobra.NoArgs,
	RunE: runProviders,
}

func runProviders(cmd *cobra.Command, _ []string) error {
	current := env.currentProvider()

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	_, _ = fmt.Fprintln(tw, " \t"+bold.Sprint("NAME")+"\t"+bold.Sprint("DEFAULT MODEL")+"\t"+bold.Sprint("KEY")+"\t"+bold.Sprint("ADAPTER"))

	for _, name := range env.registry.Providers() {
		p, _ := env.registry.Provider(name)

		marker := " "
		if name == current {
			marker = green.Sprint("*")
		}
		key := red.Sprint("missing")
		if env.store.Load(name) != "" {
			key = green.Sprint("stored")
		}
		adapter := red.Sprint("unsupported")
		if def, ok := providers.LookupDefinition(name); ok {
			adapter = def.Description
		}

		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", marker, name, p.DefaultModel, key, adapter)
	}
	return tw.Flush()
}
