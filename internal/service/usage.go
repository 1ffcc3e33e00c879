package service

import (
	"github.com/set-night/endoally/internal/domain"
	"github.com/set-night/endoally/internal/profile"
	"github.com/shopspring/decimal"
)

// UsageMeter accumulates token usage and its estimated cost for one widget.
type UsageMeter struct {
	promptTokens     int
	completionTokens int
	cost             decimal.Decimal
}

type UsageReport struct {
	PromptTokens     int
	CompletionTokens int
	Cost             decimal.Decimal
}

func (m *UsageMeter) Add(u domain.Usage, model profile.Model) {
	m.promptTokens += u.PromptTokens
	m.completionTokens += u.CompletionTokens
	m.cost = m.cost.Add(CalculateCost(u.PromptTokens, u.CompletionTokens, model.PromptPrice, model.CompletionPrice))
}

func (m *UsageMeter) Report() UsageReport {
	return UsageReport{
		PromptTokens:     m.promptTokens,
		CompletionTokens: m.completionTokens,
		Cost:             m.cost,
	}
}

// CalculateCost prices a request from per-1M-token rates.
func CalculateCost(promptTokens, completionTokens int, promptPrice, completionPrice float64) decimal.Decimal {
	million := decimal.NewFromInt(1_000_000)
	promptCost := decimal.NewFromInt(int64(promptTokens)).Mul(decimal.NewFromFloat(promptPrice)).Div(million)
	completionCost := decimal.NewFromInt(int64(completionTokens)).Mul(decimal.NewFromFloat(completionPrice)).Div(million)
	return promptCost.Add(completionCost)
}
