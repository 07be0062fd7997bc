package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Noodieknoodie/AI-HELPER/internal/config"
	"github.com/Noodieknoodie/AI-HELPER/internal/models"
)

func TestLookupKnownModel(t *testing.T) {
	r := NewRegistry(config.DefaultProviders())

	caps := r.Lookup("anthropic", "claude-3-7-sonnet-20250219")
	assert.Equal(t, 8192, caps.MaxTokensDefault)
	assert.Equal(t, 64000, caps.MaxTokensExtended)
	assert.True(t, caps.SupportsExtendedThinking)
	assert.True(t, caps.SupportsLongOutput)
	assert.False(t, caps.SupportsReasoning)
}

func TestLookupUnknownReturnsZero(t *testing.T) {
	r := NewRegistry(config.DefaultProviders())

	assert.True(t, r.Lookup("anthropic", "claude-9").IsZero())
	assert.True(t, r.Lookup("cohere", "command-r").IsZero())
	assert.True(t, r.Lookup("", "").IsZero())
}

func TestLookupIsIdempotent(t *testing.T) {
	r := NewRegistry(config.DefaultProviders())
	for _, provider := range r.Providers() {
		for _, m := range r.Models(provider) {
			first := r.Lookup(provider, m.ID)
			second := r.Lookup(provider, m.ID)
			require.Equal(t, first, second, "%s/%s", provider, m.ID)
			require.Equal(t, m.Capabilities, first)
		}
	}
}

func TestRegistryIsolatedFromCaller(t *testing.T) {
	providers := map[string]models.Provider{
		"OpenAI": {Models: []models.ModelInfo{{ID: "gpt-4o", Capabilities: models.Capabilities{MaxTokensDefault: 10}}}},
	}
	r := NewRegistry(providers)

	providers["OpenAI"].Models[0].Capabilities.MaxTokensDefault = 99
	listed := r.Models("openai")
	listed[0].ID = "changed"

	assert.Equal(t, 10, r.Lookup("openai", "gpt-4o").MaxTokensDefault)
	assert.Equal(t, []string{"openai"}, r.Providers())
}

func TestProviderAliases(t *testing.T) {
	r := NewRegistry(config.DefaultProviders())

	p, ok := r.Provider(" Claude ")
	require.True(t, ok)
	assert.Equal(t, "anthropic", p.Name)

	_, ok = r.Provider("google")
	assert.True(t, ok)
	_, ok = r.Provider("unknown")
	assert.False(t, ok)
	assert.Equal(t, []string{"anthropic", "gemini", "openai"}, r.Providers())
}

func TestNormalizeProviderSlug(t *testing.T) {
	assert.Equal(t, "", NormalizeProviderSlug("  "))
	assert.Equal(t, "openai", NormalizeProviderSlug("ChatGPT"))
	assert.Equal(t, "mistral", NormalizeProviderSlug("Mistral"))
}
