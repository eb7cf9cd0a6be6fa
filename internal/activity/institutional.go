package activity

import (
	"sort"

	"EquityLens/internal/model"
)

// DefaultTopHolders is the number of holder names reported.
const DefaultTopHolders = 3

// SummarizeHolders builds the holder-list tier. ok is false when the list is
// empty, in which case the caller should fall back to the held percentage.
func SummarizeHolders(holders []model.HolderRecord, topN int) (model.InstitutionalSummary, bool) {
	if len(holders) == 0 {
		return model.InstitutionalSummary{}, false
	}
	if topN <= 0 {
		topN = DefaultTopHolders
	}

	var total int64
	for _, h := range holders {
		total += h.Shares
	}

	ranked := make([]model.HolderRecord, len(holders))
	copy(ranked, holders)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Shares > ranked[j].Shares })
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	names := make([]string, len(ranked))
	for i, h := range ranked {
		names[i] = h.Holder
		if names[i] == "" {
			names[i] = model.NotAvailable
		}
	}

	return model.InstitutionalSummary{
		Tier:        model.TierHolderList,
		HolderCount: model.Some(float64(len(holders))),
		TotalShares: model.Some(float64(total)),
		TopHolders:  names,
	}, true
}

// FromHeldPercent builds the aggregate tier from the institutional held
// percentage. ok is false when the percentage is absent.
func FromHeldPercent(pct model.Value) (model.InstitutionalSummary, bool) {
	if !pct.Ok() {
		return model.InstitutionalSummary{}, false
	}
	return model.InstitutionalSummary{
		Tier:        model.TierHeldPercent,
		HeldPercent: pct,
		TopHolders:  []string{},
	}, true
}
