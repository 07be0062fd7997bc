package config

import "github.com/Noodieknoodie/AI-HELPER/internal/models"

// DefaultProviders returns the built-in provider catalogue.
func DefaultProviders() map[string]models.Provider {
	return map[string]models.Provider{
		"anthropic": {
			Name:         "anthropic",
			URL:          "https://api.anthropic.com/v1/messages",
			APIVersion:   "2023-06-01",
			DefaultModel: "claude-3-7-sonnet-20250219",
			Models: []models.ModelInfo{
				{
					ID:   "claude-3-7-sonnet-20250219",
					Name: "Claude 3.7 Sonnet",
					Capabilities: models.Capabilities{
						ContextWindow:            200000,
						MaxTokensDefault:         8192,
						MaxTokensExtended:        64000,
						SupportsExtendedThinking: true,
						SupportsLongOutput:       true,
						SupportsVision:           true,
					},
					PriceInput:  3,
					PriceOutput: 15,
				},
				{
					ID:   "claude-3-5-sonnet-20241022",
					Name: "Claude 3.5 Sonnet",
					Capabilities: models.Capabilities{
						ContextWindow:    200000,
						MaxTokensDefault: 8192,
						SupportsVision:   true,
					},
					PriceInput:  3,
					PriceOutput: 15,
				},
				{
					ID:   "claude-3-opus-20240229",
					Name: "Claude 3 Opus",
					Capabilities: models.Capabilities{
						ContextWindow:    200000,
						MaxTokensDefault: 4096,
						SupportsVision:   true,
					},
					PriceInput:  15,
					PriceOutput: 75,
				},
				{
					ID:   "claude-3-haiku-20240307",
					Name: "Claude 3 Haiku",
					Capabilities: models.Capabilities{
						ContextWindow:    200000,
						MaxTokensDefault: 4096,
						SupportsVision:   true,
					},
					PriceInput:  0.25,
					PriceOutput: 1.25,
				},
			},
		},
		"openai": {
			Name:         "openai",
			URL:          "https://api.openai.com/v1/chat/completions",
			DefaultModel: "gpt-4o",
			Models: []models.ModelInfo{
				{
					ID:   "gpt-4o",
					Name: "GPT-4o",
					Capabilities: models.Capabilities{
						ContextWindow:    128000,
						MaxTokensDefault: 16384,
						SupportsVision:   true,
					},
					PriceInput:  2.5,
					PriceOutput: 10,
				},
				{
					ID:   "o3-mini",
					Name: "o3-mini",
					Capabilities: models.Capabilities{
						ContextWindow:       200000,
						MaxTokensDefault:    16000,
						MaxCompletionTokens: 100000,
						SupportsReasoning:   true,
					},
					PriceInput:  1.1,
					PriceOutput: 4.4,
				},
				{
					ID:   "o1",
					Name: "o1",
					Capabilities: models.Capabilities{
						ContextWindow:       200000,
						MaxTokensDefault:    16000,
						MaxCompletionTokens: 100000,
						SupportsReasoning:   true,
						SupportsVision:      true,
					},
					PriceInput:  15,
					PriceOutput: 60,
				},
				{
					ID:   "gpt-4-turbo",
					Name: "GPT-4 Turbo",
					Capabilities: models.Capabilities{
						ContextWindow:    128000,
						MaxTokensDefault: 4096,
						SupportsVision:   true,
					},
					PriceInput:  10,
					PriceOutput: 30,
				},
			},
		},
		"gemini": {
			Name:         "gemini",
			URL:          "https://generativelanguage.googleapis.com/v1beta/models",
			DefaultModel: "gemini-2.0-flash",
			Models: []models.ModelInfo{
				{
					ID:   "gemini-2.5-pro-preview-03-25",
					Name: "Gemini 2.5 Pro Preview",
					Capabilities: models.Capabilities{
						ContextWindow:    1048576,
						OutputTokenLimit: 65536,
						SupportsThinking: true,
						SupportsVision:   true,
					},
					PriceInput:  1.25,
					PriceOutput: 10,
				},
				{
					ID:   "gemini-2.0-flash",
					Name: "Gemini 2.0 Flash",
					Capabilities: models.Capabilities{
						ContextWindow:    1048576,
						OutputTokenLimit: 8192,
						SupportsVision:   true,
					},
					PriceInput:  0.1,
					PriceOutput: 0.4,
				},
				{
					ID:   "gemini-2.0-flash-thinking-exp-01-21",
					Name: "Gemini 2.0 Flash Thinking",
					Capabilities: models.Capabilities{
						ContextWindow:    1048576,
						OutputTokenLimit: 65536,
						SupportsThinking: true,
					},
				},
				{
					ID:   "gemini-1.5-pro",
					Name: "Gemini 1.5 Pro",
					Capabilities: models.Capabilities{
						ContextWindow:    2097152,
						OutputTokenLimit: 8192,
						SupportsVision:   true,
					},
					PriceInput:  1.25,
					PriceOutput: 5,
				},
			},
		},
	}
}

// MergeProviders overlays configured providers on top of the defaults, field by
// field. A configured model list replaces the default list as a whole.
func MergeProviders(defaults, configured map[string]models.Provider) map[string]models.Provider {
	merged := make(map[string]models.Provider, len(defaults)+len(configured))
	for name, p := range defaults {
		merged[name] = p
	}
	for name, p := range configured {
		base, ok := merged[name]
		if !ok {
			merged[name] = p
			continue
		}
		if p.URL != "" {
			base.URL = p.URL
		}
		if p.APIVersion != "" {
			base.APIVersion = p.APIVersion
		}
		if len(p.Models) > 0 {
			base.Models = p.Models
			if p.DefaultModel == "" {
				base.DefaultModel = ""
			}
		}
		if p.DefaultModel != "" {
			base.DefaultModel = p.DefaultModel
		}
		if p.ProjectID != "" {
			base.ProjectID = p.ProjectID
		}
		if p.Location != "" {
			base.Location = p.Location
		}
		merged[name] = base
	}
	return merged
}
