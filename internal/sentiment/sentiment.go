// Package sentiment summarizes earnings surprises and analyst grades.
package sentiment

import (
	"sort"
	"strings"

	"EquityLens/internal/model"
)

const (
	DefaultQuarters     = 4
	DefaultRatingWindow = 20
)

// LatestSurprises returns up to n surprises, newest first.
func LatestSurprises(surprises []model.EarningsSurprise, n int) []model.EarningsSurprise {
	if n <= 0 {
		n = DefaultQuarters
	}
	out := make([]model.EarningsSurprise, len(surprises))
	copy(out, surprises)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// SurprisePercent derives the surprise from actual and estimate.
// It is absent when either side is missing or the estimate is zero.
func SurprisePercent(actual, estimate model.Value) model.Value {
	a, okA := actual.Get()
	e, okE := estimate.Get()
	if !okA || !okE || e == 0 {
		return model.None()
	}
	if e < 0 {
		e = -e
	}
	return model.Some((a - estimate.Num) / e * 100)
}

// CountGrades counts the grades of the last `window` recommendations in
// chronological order. Counts are sorted descending; equal counts keep the
// order in which the grade first appeared. Blank grades are ignored.
func CountGrades(recs []model.Recommendation, window int) []model.GradeCount {
	if window <= 0 {
		window = DefaultRatingWindow
	}
	ordered := make([]model.Recommendation, len(recs))
	copy(ordered, recs)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })
	if len(ordered) > window {
		ordered = ordered[len(ordered)-window:]
	}

	index := make(map[string]int)
	var counts []model.GradeCount
	for _, r := range ordered {
		g := strings.TrimSpace(r.Grade)
		if g == "" {
			continue
		}
		if i, ok := index[g]; ok {
			counts[i].Count++
			continue
		}
		index[g] = len(counts)
		counts = append(counts, model.GradeCount{Grade: g, Count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	return counts
}

// Summarize assembles the sentiment section for one ticker.
func Summarize(surprises []model.EarningsSurprise, recs []model.Recommendation, targets model.TargetPrices, quarters, window int) model.SentimentSummary {
	return model.SentimentSummary{
		Surprises:  LatestSurprises(surprises, quarters),
		Ratings:    CountGrades(recs, window),
		HasRatings: len(recs) > 0,
		Targets:    targets,
	}
}
