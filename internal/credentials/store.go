// Package credentials persists provider API keys outside the session.
package credentials

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Noodieknoodie/AI-HELPER/internal/config"
)

// Store saves and loads one credential per provider. Implementations never
// return errors: failures are logged and reported as false or "".
type Store interface {
	Save(provider, key string) bool
	Load(provider string) string
	Delete(provider string) bool
}

var envVariables = map[string]string{
	"anthropic": "ANTHROPIC_API_KEY",
	"openai":    "OPENAI_API_KEY",
	"gemini":    "GEMINI_API_KEY",
}

// EnvVariable returns the .env variable name used for provider.
func EnvVariable(provider string) string {
	slug := strings.ToLower(strings.TrimSpace(provider))
	if name, ok := envVariables[slug]; ok {
		return name
	}
	slug = strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(slug)
	return strings.ToUpper(slug) + "_API_KEY"
}

// New returns the backend selected by cfg.
func New(cfg config.CredentialsConfig, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Backend {
	case "", config.CredentialBackendEnvFile:
		return NewEnvFile(cfg.EnvFile, logger), nil
	case config.CredentialBackendKeyring:
		return NewKeyring(cfg.Service, logger), nil
	default:
		return nil, fmt.Errorf("credentials: unknown backend %q", cfg.Backend)
	}
}

// Mask hides all but the last four characters of key.
func Mask(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
