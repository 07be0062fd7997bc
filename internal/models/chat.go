package models

import "strings"

// ReasoningEffort controls how much work OpenAI reasoning models spend before answering.
type ReasoningEffort string

const (
	ReasoningLow    ReasoningEffort = "low"
	ReasoningMedium ReasoningEffort = "medium"
	ReasoningHigh   ReasoningEffort = "high"
)

// ParseReasoningEffort accepts low, medium or high (case-insensitive).
func ParseReasoningEffort(raw string) (ReasoningEffort, bool) {
	switch effort := ReasoningEffort(strings.ToLower(strings.TrimSpace(raw))); effort {
	case ReasoningLow, ReasoningMedium, ReasoningHigh:
		return effort, true
	default:
		return "", false
	}
}

// ExtendedThinking is the Anthropic extended thinking mode.
type ExtendedThinking struct {
	Enabled bool
	Budget  int
}

// Thinking is the Gemini thinking mode.
type Thinking struct {
	Enabled bool
}

// Modes carries the provider specific toggles that are valid for the active model.
// A nil field means the mode is not available.
type Modes struct {
	ExtendedThinking *ExtendedThinking
	Thinking         *Thinking
	ReasoningEffort  *ReasoningEffort
}

// Call is everything an adapter needs to issue one request.
type Call struct {
	Provider     Provider
	Model        string
	APIKey       string
	Prompt       string
	Parameters   map[string]any
	Capabilities Capabilities
	Modes        Modes
}

// Usage holds the token counters reported by a provider.
type Usage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

// Result is the extracted reply of a successful call.
type Result struct {
	Text  string
	Usage *Usage
}
