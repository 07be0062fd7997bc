package usage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Noodieknoodie/AI-HELPER/internal/models"
)

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 0, EstimateTokens("abc"))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 250, EstimateTokens(strings.Repeat("x", 1003)))
	assert.Equal(t, 1, EstimateTokens("héllo"))
}

func TestCostFor(t *testing.T) {
	sonnet := models.ModelInfo{ID: "claude-3-7-sonnet-20250219", PriceInput: 3, PriceOutput: 15}

	cost := CostFor(sonnet, models.Usage{PromptTokens: 2000, CompletionTokens: 1000, TotalTokens: 3000})
	assert.Equal(t, "0.006", cost.Input.String())
	assert.Equal(t, "0.015", cost.Output.String())
	assert.Equal(t, "0.021", cost.Total().String())
	assert.Equal(t, "$0.0210", cost.String())
}

func TestCostForUnpricedModel(t *testing.T) {
	model := models.ModelInfo{ID: "gemini-2.0-flash-thinking-exp-01-21"}
	require.False(t, Priced(model))

	cost := CostFor(model, models.Usage{PromptTokens: 1_000_000, CompletionTokens: 1_000_000})
	assert.True(t, cost.Total().IsZero())
	assert.Equal(t, "$0.0000", cost.String())
}

func TestEstimatePrompt(t *testing.T) {
	model := models.ModelInfo{PriceInput: 2.5, PriceOutput: 10}
	tokens, cost := EstimatePrompt(model, strings.Repeat("word", 100_000))
	assert.Equal(t, 100_000, tokens)
	assert.Equal(t, "0.25", cost.Input.String())
	assert.True(t, cost.Output.IsZero())
}
