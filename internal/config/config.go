package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/Noodieknoodie/AI-HELPER/internal/models"
)

// Config captures the runtime configuration for the helper.
type Config struct {
	ProjectRoot     string                     `mapstructure:"project_root" yaml:"project_root"`
	DefaultProvider string                     `mapstructure:"default_provider" yaml:"default_provider"`
	Parameters      map[string]any             `mapstructure:"parameters" yaml:"parameters"`
	Providers       map[string]models.Provider `mapstructure:"providers" yaml:"providers"`
	Credentials     CredentialsConfig          `mapstructure:"credentials" yaml:"credentials"`
	HTTP            HTTPConfig                 `mapstructure:"http" yaml:"http"`
	Logging         LoggingConfig              `mapstructure:"logging" yaml:"logging"`
	Metrics         MetricsConfig              `mapstructure:"metrics" yaml:"metrics"`
}

// Credential backends understood by the credentials package.
const (
	CredentialBackendEnvFile = "envfile"
	CredentialBackendKeyring = "keyring"
)

type CredentialsConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	EnvFile string `mapstructure:"env_file" yaml:"env_file"`
	Service string `mapstructure:"service" yaml:"service"`
}

type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type MetricsConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Textfile string `mapstructure:"textfile" yaml:"textfile"`
}

// Options controls the config loader behavior.
type Options struct {
	ConfigFile string
	EnvFile    string
}

// Load returns the merged configuration sourced from the config file, AIHELP_*
// environment variables and the built-in provider catalogue.
func Load(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		_ = godotenv.Load(opts.EnvFile)
	} else {
		_ = godotenv.Load()
	}

	v := viper.New()
	setDefaults(v)

	explicitFile := false
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		explicitFile = true
	} else if cfg := os.Getenv("AIHELP_CONFIG_FILE"); cfg != "" {
		v.SetConfigFile(cfg)
		explicitFile = true
	}

	if !explicitFile {
		v.SetConfigName("aihelp")
		v.AddConfigPath(".")
		v.AddConfigPath("./AI_HELP")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("AIHELP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(timeStringToDurationHook())); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Providers = MergeProviders(DefaultProviders(), cfg.Providers)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate normalises values and ensures the provider catalogue is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ProjectRoot) == "" {
		c.ProjectRoot = "."
	}

	if len(c.Providers) == 0 {
		return fmt.Errorf("at least one provider must be configured")
	}
	normalized := make(map[string]models.Provider, len(c.Providers))
	for _, name := range sortedKeys(c.Providers) {
		p := c.Providers[name]
		slug := strings.ToLower(strings.TrimSpace(name))
		if slug == "" {
			return fmt.Errorf("providers: empty provider name")
		}
		p.Name = slug
		p.URL = strings.TrimSpace(p.URL)
		p.APIVersion = strings.TrimSpace(p.APIVersion)
		if len(p.Models) == 0 {
			return fmt.Errorf("providers.%s.models must not be empty", slug)
		}
		for i, m := range p.Models {
			if strings.TrimSpace(m.ID) == "" {
				return fmt.Errorf("providers.%s.models[%d].id must be provided", slug, i)
			}
			if m.Name == "" {
				p.Models[i].Name = m.ID
			}
			if m.PriceInput < 0 || m.PriceOutput < 0 {
				return fmt.Errorf("providers.%s.models[%d] price_input and price_output must be >= 0", slug, i)
			}
		}
		if p.DefaultModel == "" {
			p.DefaultModel = p.Models[0].ID
		}
		normalized[slug] = p
	}
	c.Providers = normalized

	c.DefaultProvider = strings.ToLower(strings.TrimSpace(c.DefaultProvider))
	if _, ok := c.Providers[c.DefaultProvider]; !ok {
		return fmt.Errorf("default_provider %q is not a configured provider", c.DefaultProvider)
	}

	switch strings.ToLower(strings.TrimSpace(c.Credentials.Backend)) {
	case "", CredentialBackendEnvFile:
		c.Credentials.Backend = CredentialBackendEnvFile
	case CredentialBackendKeyring:
		c.Credentials.Backend = CredentialBackendKeyring
	default:
		return fmt.Errorf("credentials.backend must be %s or %s", CredentialBackendEnvFile, CredentialBackendKeyring)
	}
	if strings.TrimSpace(c.Credentials.EnvFile) == "" {
		c.Credentials.EnvFile = filepath.Join(c.ProjectRoot, ".env")
	}
	if strings.TrimSpace(c.Credentials.Service) == "" {
		c.Credentials.Service = "ai-helper"
	}

	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be > 0")
	}
	if c.Parameters == nil {
		c.Parameters = map[string]any{}
	}
	return nil
}

// ProviderNames returns the configured provider names sorted alphabetically.
func (c *Config) ProviderNames() []string {
	return sortedKeys(c.Providers)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("project_root", ".")
	v.SetDefault("default_provider", "anthropic")
	v.SetDefault("parameters", map[string]any{"temperature": 0.7})

	v.SetDefault("credentials.backend", CredentialBackendEnvFile)
	v.SetDefault("credentials.service", "ai-helper")

	v.SetDefault("http.timeout", "300s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("metrics.enabled", false)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func timeStringToDurationHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		switch v := data.(type) {
		case time.Duration:
			return v, nil
		case string:
			d, err := time.ParseDuration(v)
			if err != nil {
				return nil, err
			}
			return d, nil
		case int:
			return time.Duration(v) * time.Second, nil
		case int64:
			return time.Duration(v) * time.Second, nil
		case float64:
			return time.Duration(v * float64(time.Second)), nil
		default:
			return nil, fmt.Errorf("cannot decode %T into time.Duration", data)
		}
	}
}
