package comparator

import "EquityLens/internal/model"

// Tier is the qualitative band of a profitability or growth metric.
type Tier int

const (
	TierNone Tier = iota
	TierLow
	TierMid
	TierHigh
)

// NoNumericData is the label used when the target has no value for a metric.
const NoNumericData = "No numeric data available"

// Assessment is the label attached to one profitability or growth metric.
type Assessment struct {
	Metric model.Metric
	Value  model.Value
	Tier   Tier
	Label  string
}

type band struct {
	high, mid          float64 // value > high is top tier, value >= mid is middle
	top, middle, lower string
}

var bands = map[model.Metric]band{
	model.MetricNetMargin:     {20, 10, "Strong profitability", "Healthy profitability", "Thin margin"},
	model.MetricROE:           {15, 5, "Excellent capital efficiency", "Moderate return on equity", "Low ROE, may indicate inefficiency"},
	model.MetricROA:           {7, 3, "Strong asset utilization", "Moderate return on assets", "Weak ROA"},
	model.MetricEPSGrowth:     {15, 5, "Strong earnings growth", "Moderate EPS growth", "Weak or stagnant EPS growth"},
	model.MetricRevenueGrowth: {15, 5, "High revenue expansion", "Moderate revenue growth", "Low revenue growth"},
}

// Assess labels a single metric value expressed in percent.
func Assess(m model.Metric, v model.Value) Assessment {
	a := Assessment{Metric: m, Value: v}
	b, known := bands[m]
	val, ok := v.Get()
	if !known || !ok {
		a.Label = NoNumericData
		return a
	}
	switch {
	case val > b.high:
		a.Tier, a.Label = TierHigh, b.top
	case val >= b.mid:
		a.Tier, a.Label = TierMid, b.middle
	default:
		a.Tier, a.Label = TierLow, b.lower
	}
	return a
}

// AssessProfitability labels the five profitability and growth metrics of target.
func AssessProfitability(target model.RatioRecord) []Assessment {
	metrics := model.ProfitabilityMetrics()
	out := make([]Assessment, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, Assess(m, target.Get(m)))
	}
	return out
}
