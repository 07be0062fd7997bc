package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Noodieknoodie/AI-HELPER/internal/catalog"
	"github.com/Noodieknoodie/AI-HELPER/internal/config"
	"github.com/Noodieknoodie/AI-HELPER/internal/credentials"
	"github.com/Noodieknoodie/AI-HELPER/internal/logging"
	"github.com/Noodieknoodie/AI-HELPER/internal/observability"
	"github.com/Noodieknoodie/AI-HELPER/internal/session"
)

// Global flag values.
var (
	configFile string
	envFile    string
	provider   string
	model      string
	verbose    bool
	quiet      bool
	noColor    bool
)

// env is populated by the root PersistentPreRunE for every subcommand.
var env *environment

type environment struct {
	cfg      *config.Config
	registry *catalog.Registry
	store    credentials.Store
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// rootCmd is the base command for aihelp.
var rootCmd = &cobra.Command{
	Use:   "aihelp",
	Short: "Send prompts to Anthropic, OpenAI and Gemini models",
	Long: `aihelp sends a prompt to one configured LLM provider and prints the reply.

Providers, models and their capabilities come from the built-in catalogue,
optionally extended by aihelp.yaml. API keys are read from a .env file or
the system keyring.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupEnvironment,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to aihelp.yaml")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a .env file loaded before the config")
	rootCmd.PersistentFlags().StringVarP(&provider, "provider", "p", "", "provider to use (default from config)")
	rootCmd.PersistentFlags().StringVarP(&model, "model", "m", "", "model to use (default from provider)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func setupEnvironment(cmd *cobra.Command, _ []string) error {
	if noColor {
		color.NoColor = true
	}

	cfg, err := config.Load(config.Options{ConfigFile: configFile, EnvFile: envFile})
	if err != nil {
		return exitError(ExitInvalidArgs, err.Error())
	}

	logger := logging.Setup(logging.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Verbose: verbose,
		Quiet:   quiet,
		Output:  cmd.ErrOrStderr(),
	})

	store, err := credentials.New(cfg.Credentials, logger)
	if err != nil {
		return exitError(ExitInvalidArgs, err.Error())
	}

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		if metrics, err = observability.NewMetrics(); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}

	env = &environment{
		cfg:      cfg,
		registry: catalog.NewRegistry(cfg.Providers),
		store:    store,
		logger:   logger,
		metrics:  metrics,
	}
	return nil
}

// currentProvider is the --provider flag or the configured default.
func (e *environment) currentProvider() string {
	if provider != "" {
		return catalog.NormalizeProviderSlug(provider)
	}
	return e.cfg.DefaultProvider
}

func (e *environment) newSession(extra ...session.Option) *session.Session {
	opts := []session.Option{
		session.WithProvider(e.currentProvider()),
		session.WithParameters(e.cfg.Parameters),
		session.WithCredentials(e.store),
		session.WithHTTPClient(&http.Client{Timeout: e.cfg.HTTP.Timeout}),
		session.WithLogger(e.logger),
		session.WithMetrics(e.metrics),
	}
	if model != "" {
		opts = append(opts, session.WithModel(model))
	}
	return session.New(e.registry, append(opts, extra...)...)
}

func (e *environment) writeMetrics() {
	if e.metrics == nil || e.cfg.Metrics.Textfile == "" {
		return
	}
	if err := e.metrics.WriteTextfile(e.cfg.Metrics.Textfile); err != nil {
		e.logger.Warn("write metrics textfile failed", "path", e.cfg.Metrics.Textfile, "error", err)
	}
}
