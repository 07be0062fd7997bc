package models

// Provider describes one configured LLM vendor and the models it serves.
type Provider struct {
	Name         string      `mapstructure:"name" json:"name" yaml:"name"`
	URL          string      `mapstructure:"url" json:"url,omitempty" yaml:"url,omitempty"`
	APIVersion   string      `mapstructure:"version" json:"version,omitempty" yaml:"version,omitempty"`
	Models       []ModelInfo `mapstructure:"models" json:"models" yaml:"models"`
	DefaultModel string      `mapstructure:"default_model" json:"default_model" yaml:"default_model"`
	ProjectID    string      `mapstructure:"project_id" json:"project_id,omitempty" yaml:"project_id,omitempty"`
	Location     string      `mapstructure:"location" json:"location,omitempty" yaml:"location,omitempty"`
}

// Model returns the catalogue entry for id.
func (p Provider) Model(id string) (ModelInfo, bool) {
	for _, m := range p.Models {
		if m.ID == id {
			return m, true
		}
	}
	return ModelInfo{}, false
}

// ModelInfo is a single model offered by a provider. Prices are USD per
// million tokens and are only used for estimates.
type ModelInfo struct {
	ID           string       `mapstructure:"id" json:"id" yaml:"id"`
	Name         string       `mapstructure:"name" json:"name" yaml:"name"`
	Capabilities Capabilities `mapstructure:"capabilities" json:"capabilities" yaml:"capabilities"`
	PriceInput   float64      `mapstructure:"price_input" json:"price_input,omitempty" yaml:"price_input,omitempty"`
	PriceOutput  float64      `mapstructure:"price_output" json:"price_output,omitempty" yaml:"price_output,omitempty"`
}

// Capabilities lists the limits and feature flags of a model. A zero value
// means the limit is unknown or the feature is unsupported.
type Capabilities struct {
	ContextWindow            int  `mapstructure:"context_window" json:"context_window,omitempty" yaml:"context_window,omitempty"`
	MaxTokensDefault         int  `mapstructure:"max_tokens_default" json:"max_tokens_default,omitempty" yaml:"max_tokens_default,omitempty"`
	MaxTokensExtended        int  `mapstructure:"max_tokens_extended" json:"max_tokens_extended,omitempty" yaml:"max_tokens_extended,omitempty"`
	MaxCompletionTokens      int  `mapstructure:"max_completion_tokens" json:"max_completion_tokens,omitempty" yaml:"max_completion_tokens,omitempty"`
	OutputTokenLimit         int  `mapstructure:"output_token_limit" json:"output_token_limit,omitempty" yaml:"output_token_limit,omitempty"`
	SupportsReasoning        bool `mapstructure:"supports_reasoning" json:"supports_reasoning,omitempty" yaml:"supports_reasoning,omitempty"`
	SupportsExtendedThinking bool `mapstructure:"supports_extended_thinking" json:"supports_extended_thinking,omitempty" yaml:"supports_extended_thinking,omitempty"`
	SupportsThinking         bool `mapstructure:"supports_thinking" json:"supports_thinking,omitempty" yaml:"supports_thinking,omitempty"`
	SupportsLongOutput       bool `mapstructure:"supports_long_output" json:"supports_long_output,omitempty" yaml:"supports_long_output,omitempty"`
	SupportsVision           bool `mapstructure:"supports_vision" json:"supports_vision,omitempty" yaml:"supports_vision,omitempty"`
}

// IsZero reports whether no capability is known.
func (c Capabilities) IsZero() bool {
	return c == Capabilities{}
}

// Or returns value when it is set, otherwise fallback.
func Or(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
