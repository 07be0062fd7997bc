package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Noodieknoodie/AI-HELPER/internal/catalog"
	"github.com/Noodieknoodie/AI-HELPER/internal/credentials"
)

// keyCmd is the parent command for credential management.
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage stored API keys",
	Long: `Store, show and delete provider API keys in the configured credential
backend (a .env file or the system keyring).`,
}

var keySetCmd = &cobra.Command{
	Use:   "set <provider> [key]",
	Short: "Store the API key for a provider",
	Long:  "Store the API key for a provider. Without a key argument the first line of stdin is used.",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runKeySet,
}

var keyGetCmd = &cobra.Command{
	Use:   "get <provider>",
	Short: "Show the masked API key of a provider",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeyGet,
}

var keyDeleteCmd = &cobra.Command{
	Use:   "delete <provider>",
	Short: "Delete the stored API key of a provider",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeyDelete,
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyGetCmd)
	keyCmd.AddCommand(keyDeleteCmd)
}

func runKeySet(cmd *cobra.Command, args []string) error {
	name := catalog.NormalizeProviderSlug(args[0])
	var key string
	if len(args) == 2 {
		key = args[1]
	} else {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return exitError(ExitInvalidArgs, "no key given on stdin")
		}
		key = line
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return exitError(ExitInvalidArgs, "key must not be empty")
	}

	if !env.store.Save(name, key) {
		return fmt.Errorf("could not store the key for %s", name)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s key for %s stored (%s)\n",
		color.GreenString("✓"), name, credentials.Mask(key))
	return nil
}

func runKeyGet(cmd *cobra.Command, args []string) error {
	name := catalog.NormalizeProviderSlug(args[0])
	key := env.store.Load(name)
	if key == "" {
		return exitError(ExitInvalidArgs, fmt.Sprintf("no key stored for %s", name))
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), credentials.Mask(key))
	return nil
}

func runKeyDelete(cmd *cobra.Command, args []string) error {
	name := catalog.NormalizeProviderSlug(args[0])
	if !env.store.Delete(name) {
		return fmt.Errorf("could not delete the key for %s", name)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "key for %s deleted\n", name)
	return nil
}
