package model

// Metric enumerates the fixed set of ratios carried by a RatioRecord.
type Metric int

const (
	MetricPE Metric = iota
	MetricPB
	MetricPS
	MetricEVEBITDA
	MetricPEG
	MetricPriceCashFlow
	MetricNetMargin
	MetricROE
	MetricROA
	MetricEPSGrowth
	MetricRevenueGrowth

	metricCount
)

var metricNames = [metricCount]string{
	"PE Ratio",
	"PB Ratio",
	"PS Ratio",
	"EV/EBITDA",
	"PEG Ratio",
	"Price/Cash Flow",
	"Net Margin",
	"ROE",
	"ROA",
	"EPS Growth",
	"Revenue Growth",
}

func (m Metric) String() string {
	if m < 0 || m >= metricCount {
		return "unknown"
	}
	return metricNames[m]
}

// AllMetrics lists every metric in display order.
func AllMetrics() []Metric {
	ms := make([]Metric, metricCount)
	for i := range ms {
		ms[i] = Metric(i)
	}
	return ms
}

// ValuationMetrics are compared against the peer average.
func ValuationMetrics() []Metric {
	return []Metric{MetricPE, MetricPB, MetricPS, MetricEVEBITDA, MetricPEG, MetricPriceCashFlow}
}

// ProfitabilityMetrics are classified against fixed thresholds, expressed in percent.
func ProfitabilityMetrics() []Metric {
	return []Metric{MetricNetMargin, MetricROE, MetricROA, MetricEPSGrowth, MetricRevenueGrowth}
}

// RatioRecord carries every metric for one company. The array guarantees that
// each metric key is always present, either as a number or as a marker.
type RatioRecord struct {
	Ticker string
	Values [metricCount]Value
}

// NewRatioRecord returns a record with every metric absent.
func NewRatioRecord(ticker string) RatioRecord {
	return RatioRecord{Ticker: ticker}
}

// Get returns the value for a metric.
func (r RatioRecord) Get(m Metric) Value { return r.Values[m] }

// Set stores the value for a metric.
func (r *RatioRecord) Set(m Metric, v Value) { r.Values[m] = v }

// Pending lists the metrics whose value is waiting for operator input.
func (r RatioRecord) Pending() []Metric {
	var out []Metric
	for i, v := range r.Values {
		if v.State == NeedsInput {
			out = append(out, Metric(i))
		}
	}
	return out
}

// TargetPrices holds analyst price targets.
type TargetPrices struct {
	Low  Value
	Mean Value
	High Value
}
