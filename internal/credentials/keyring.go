package credentials

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/zalando/go-keyring"
)

const defaultService = "ai-helper"

// Keyring stores keys in the platform secret store under one service name,
// with the provider as the account.
type Keyring struct {
	service string
	logger  *slog.Logger
}

func NewKeyring(service string, logger *slog.Logger) *Keyring {
	if strings.TrimSpace(service) == "" {
		service = defaultService
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Keyring{service: service, logger: logger}
}

func (k *Keyring) Load(provider string) string {
	secret, err := keyring.Get(k.service, account(provider))
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			k.logger.Warn("keyring lookup failed", slog.String("provider", provider), slog.String("error", err.Error()))
		}
		return ""
	}
	return secret
}

func (k *Keyring) Save(provider, key string) bool {
	if err := keyring.Set(k.service, account(provider), key); err != nil {
		k.logger.Warn("keyring save failed", slog.String("provider", provider), slog.String("error", err.Error()))
		return false
	}
	return true
}

func (k *Keyring) Delete(provider string) bool {
	err := keyring.Delete(k.service, account(provider))
	if err == nil || errors.Is(err, keyring.ErrNotFound) {
		return true
	}
	k.logger.Warn("keyring delete failed", slog.String("provider", provider), slog.String("error", err.Error()))
	return false
}

func account(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}
