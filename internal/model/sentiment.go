package model

import "time"

// EarningsSurprise is one reported quarter.
type EarningsSurprise struct {
	Date        time.Time
	Actual      Value
	Estimate    Value
	SurprisePct Value
}

// Recommendation is one analyst grade change.
type Recommendation struct {
	Date  time.Time
	Firm  string
	Grade string
}

// GradeCount is the number of times a grade appears in the rating window.
type GradeCount struct {
	Grade string
	Count int
}

// SentimentSummary collects earnings surprises, analyst grades and targets.
type SentimentSummary struct {
	Surprises  []EarningsSurprise
	Ratings    []GradeCount
	HasRatings bool
	Targets    TargetPrices
}
