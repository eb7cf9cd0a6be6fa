package comparator

import (
	"fmt"

	"EquityLens/internal/model"
)

// Status is the outcome of comparing one valuation metric against peers.
type Status string

const (
	StatusOvervalued           Status = "OVERVALUED"
	StatusUndervalued          Status = "UNDERVALUED"
	StatusInsufficientPeerData Status = "INSUFFICIENT_PEER_DATA"
	StatusMissingTargetMetric  Status = "MISSING_TARGET_METRIC"
)

// Comparison is the verdict for one valuation metric.
type Comparison struct {
	Metric    model.Metric
	Status    Status
	Target    model.Value
	PeerMean  model.Value
	PeerCount int
}

// Commentary renders the verdict the way the report prints it.
func (c Comparison) Commentary(ticker string) string {
	switch c.Status {
	case StatusOvervalued:
		return fmt.Sprintf("%s is overvalued vs peers (avg = %.2f)", ticker, c.PeerMean.Num)
	case StatusUndervalued:
		return fmt.Sprintf("%s is undervalued vs peers (avg = %.2f)", ticker, c.PeerMean.Num)
	case StatusMissingTargetMetric:
		return "Missing target metric"
	default:
		return "Not enough peer data"
	}
}

// Classify compares a target value with the peer mean. Ties count as undervalued.
func Classify(target, peerMean float64) Status {
	if target > peerMean {
		return StatusOvervalued
	}
	return StatusUndervalued
}

// PeerMean averages the numeric peer values for a metric. Peers without a
// value are skipped; ok is false when none remain.
func PeerMean(peers []model.RatioRecord, m model.Metric) (mean float64, n int, ok bool) {
	sum := 0.0
	for _, p := range peers {
		if v, present := p.Get(m).Get(); present {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, 0, false
	}
	return sum / float64(n), n, true
}

// CompareValuation evaluates the six valuation metrics of target against peers.
// Missing data for one metric never prevents the others from being evaluated.
func CompareValuation(target model.RatioRecord, peers []model.RatioRecord) []Comparison {
	metrics := model.ValuationMetrics()
	out := make([]Comparison, 0, len(metrics))
	for _, m := range metrics {
		c := Comparison{Metric: m, Target: target.Get(m)}
		mean, n, ok := PeerMean(peers, m)
		switch {
		case !ok:
			c.Status = StatusInsufficientPeerData
		case !c.Target.Ok():
			c.PeerMean = model.Some(mean)
			c.PeerCount = n
			c.Status = StatusMissingTargetMetric
		default:
			c.PeerMean = model.Some(mean)
			c.PeerCount = n
			c.Status = Classify(c.Target.Num, mean)
		}
		out = append(out, c)
	}
	return out
}
