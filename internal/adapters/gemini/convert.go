package gemini

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/Noodieknoodie/AI-HELPER/internal/models"
)

const (
	fallbackMaxOutputTokens = 8192
	fallbackTopP            = 1.0
	fallbackTopK            = 32
)

func buildGenerateRequest(call models.Call) generateRequest {
	cfg := generationConfig{
		MaxOutputTokens: fallbackMaxOutputTokens,
		TopP:            fallbackTopP,
		TopK:            fallbackTopK,
	}
	if v, ok := floatParam(call.Parameters, "temperature"); ok {
		cfg.Temperature = &v
	}
	if v, ok := floatParam(call.Parameters, "max_output_tokens"); ok && v > 0 {
		cfg.MaxOutputTokens = int(v)
	}
	if v, ok := floatParam(call.Parameters, "top_p"); ok {
		cfg.TopP = v
	}
	if v, ok := floatParam(call.Parameters, "top_k"); ok {
		cfg.TopK = int(v)
	}
	if t := call.Modes.Thinking; t != nil && t.Enabled && call.Capabilities.SupportsThinking {
		cfg.ThinkingConfig = &thinkingConfig{IncludeThoughts: true}
	}

	return generateRequest{
		Contents:         []content{{Role: "user", Parts: []part{{Text: call.Prompt}}}},
		GenerationConfig: cfg,
	}
}

// floatParam reads a numeric parameter that may arrive as a Go number, a
// JSON number or a string typed on the command line.
func floatParam(params map[string]any, key string) (float64, bool) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func convertUsage(meta *usageMetadata) *models.Usage {
	if meta == nil {
		return nil
	}
	total := meta.TotalTokens
	if total == 0 {
		total = meta.PromptTokens + meta.CandidatesTokens + meta.ThoughtsTokens
	}
	return &models.Usage{
		PromptTokens:     meta.PromptTokens,
		CompletionTokens: meta.CandidatesTokens,
		TotalTokens:      total,
	}
}
