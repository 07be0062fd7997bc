package providers

import (
	native "github.com/Noodieknoodie/AI-HELPER/internal/adapters/openai"
	"github.com/Noodieknoodie/AI-HELPER/internal/models"
)

func init() {
	RegisterDefinition(Definition{
		Name:         "openai",
		Description:  "OpenAI Chat Completions API",
		Capabilities: []string{"chat", "reasoning_effort"},
		Builder:      buildOpenAIAdapter,
	})
}

func buildOpenAIAdapter(provider models.Provider, opts BuildOptions) (Adapter, error) {
	adapter, err := native.New(native.Options{
		URL:        provider.URL,
		HTTPClient: opts.HTTPClient,
		Logger:     opts.Logger.With("provider", provider.Name),
	})
	if err != nil {
		return nil, err
	}
	return adapter, nil
}
