// Package activity summarizes insider transactions and institutional holdings.
package activity

import (
	"strings"

	"github.com/shopspring/decimal"

	"EquityLens/internal/model"
)

// SummarizeInsiders aggregates direct-ownership transactions.
//
// A positive value counts as a buy and a value of exactly zero counts as a
// sell, so zero-value disclosures such as gifts land in the sell count.
// Absent values are neither buys nor sells and add nothing to the net value.
//
// An empty input means the provider had nothing to report, and the summary
// is marked unavailable.
func SummarizeInsiders(txs []model.InsiderTransaction) model.InsiderActivitySummary {
	if len(txs) == 0 {
		return Unavailable()
	}

	sum := model.InsiderActivitySummary{Available: true, NetValue: decimal.Zero, Executives: []string{}}
	seen := make(map[string]bool)
	for _, tx := range txs {
		if !strings.EqualFold(strings.TrimSpace(tx.Ownership), model.OwnershipDirect) {
			continue
		}
		if v, ok := tx.Value.Get(); ok {
			switch {
			case v > 0:
				sum.Buys++
			case v == 0:
				sum.Sells++
			}
			sum.NetValue = sum.NetValue.Add(decimal.NewFromFloat(v))
		}
		name := strings.TrimSpace(tx.Name)
		if name != "" && !seen[name] {
			seen[name] = true
			sum.Executives = append(sum.Executives, name)
		}
	}
	return sum
}

// Unavailable is the placeholder used when insider data cannot be obtained.
func Unavailable() model.InsiderActivitySummary {
	return model.InsiderActivitySummary{Executives: []string{}}
}
