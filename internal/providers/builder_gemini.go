package providers

import (
	"github.com/Noodieknoodie/AI-HELPER/internal/adapters/gemini"
	"github.com/Noodieknoodie/AI-HELPER/internal/models"
)

func init() {
	RegisterDefinition(Definition{
		Name:         "gemini",
		Description:  "Google Gemini generateContent (API key or Vertex AI service account)",
		Capabilities: []string{"chat", "thinking"},
		Builder:      buildGeminiAdapter,
	})
}

func buildGeminiAdapter(provider models.Provider, opts BuildOptions) (Adapter, error) {
	return gemini.New(gemini.Options{
		URL:        provider.URL,
		ProjectID:  provider.ProjectID,
		Location:   provider.Location,
		HTTPClient: opts.HTTPClient,
		Logger:     opts.Logger.With("provider", provider.Name),
	}), nil
}
