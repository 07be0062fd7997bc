package catalog

import "strings"

// Vendor and product names accepted wherever a provider is named.
var providerAliases = map[string]string{
	"claude":       "anthropic",
	"chatgpt":      "openai",
	"google":       "gemini",
	"google_genai": "gemini",
	"vertex":       "gemini",
	"vertex_ai":    "gemini",
}

// NormalizeProviderSlug maps a user supplied provider name to its catalogue key.
func NormalizeProviderSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := providerAliases[strings.ReplaceAll(slug, "-", "_")]; ok {
		return canonical
	}
	return slug
}
