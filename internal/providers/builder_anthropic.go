package providers

import (
	"github.com/Noodieknoodie/AI-HELPER/internal/adapters/anthropic"
	"github.com/Noodieknoodie/AI-HELPER/internal/models"
)

func init() {
	RegisterDefinition(Definition{
		Name:         "anthropic",
		Description:  "Anthropic Messages API",
		Capabilities: []string{"chat", "extended_thinking", "long_output"},
		Builder:      buildAnthropicAdapter,
	})
}

func buildAnthropicAdapter(provider models.Provider, opts BuildOptions) (Adapter, error) {
	adapter, err := anthropic.New(anthropic.Options{
		URL:        provider.URL,
		Version:    provider.APIVersion,
		HTTPClient: opts.HTTPClient,
		Logger:     opts.Logger.With("provider", provider.Name),
	})
	if err != nil {
		return nil, err
	}
	return adapter, nil
}
