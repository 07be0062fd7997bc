// Package usage estimates token counts and spend from catalogue prices.
package usage

import (
	"unicode/utf8"

	decimal "github.com/shopspring/decimal"

	"github.com/Noodieknoodie/AI-HELPER/internal/models"
)

var perMillion = decimal.NewFromInt(1_000_000)

// EstimateTokens approximates the token count of text as one token per four
// characters.
func EstimateTokens(text string) int {
	return utf8.RuneCountInString(text) / 4
}

// Cost is a spend estimate in USD.
type Cost struct {
	Input  decimal.Decimal
	Output decimal.Decimal
}

// Total returns input plus output cost.
func (c Cost) Total() decimal.Decimal {
	return c.Input.Add(c.Output)
}

// String formats the total as dollars.
func (c Cost) String() string {
	return "$" + c.Total().StringFixed(4)
}

// Priced reports whether the model carries any price information.
func Priced(model models.ModelInfo) bool {
	return model.PriceInput > 0 || model.PriceOutput > 0
}

// CostFor prices recorded usage with the model's per-million-token rates.
func CostFor(model models.ModelInfo, u models.Usage) Cost {
	if !Priced(model) {
		return Cost{Input: decimal.Zero, Output: decimal.Zero}
	}
	prompt := decimal.NewFromInt(u.PromptTokens)
	completion := decimal.NewFromInt(u.CompletionTokens)

	cost := Cost{
		Input:  decimal.NewFromFloat(model.PriceInput).Mul(prompt).Div(perMillion),
		Output: decimal.NewFromFloat(model.PriceOutput).Mul(completion).Div(perMillion),
	}
	if cost.Input.IsNegative() {
		cost.Input = decimal.Zero
	}
	if cost.Output.IsNegative() {
		cost.Output = decimal.Zero
	}
	return cost
}

// EstimatePrompt prices the estimated input tokens of text.
func EstimatePrompt(model models.ModelInfo, text string) (int, Cost) {
	tokens := EstimateTokens(text)
	return tokens, CostFor(model, models.Usage{PromptTokens: int64(tokens), TotalTokens: int64(tokens)})
}
