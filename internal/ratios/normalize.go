// Package ratios turns a provider's raw company information into a uniform
// RatioRecord. It is the only place where missing, null or non-numeric
// provider fields become the unavailable marker.
package ratios

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"EquityLens/internal/model"
)

type source struct {
	fields []string // first numeric field wins
	scale  float64  // multiplier applied to the raw number
}

// sources maps each metric to the provider fields it is read from. Margins,
// returns and growth rates arrive as fractions and are scaled to percent.
var sources = map[model.Metric]source{
	model.MetricPE:            {fields: []string{"trailingPE"}, scale: 1},
	model.MetricPB:            {fields: []string{"priceToBook"}, scale: 1},
	model.MetricPS:            {fields: []string{"priceToSalesTrailing12Months"}, scale: 1},
	model.MetricEVEBITDA:      {fields: []string{"enterpriseToEbitda"}, scale: 1},
	model.MetricPEG:           {fields: []string{"pegRatio", "trailingPegRatio"}, scale: 1},
	model.MetricPriceCashFlow: {fields: []string{"priceToCashflow", "priceToCashFlow"}, scale: 1},
	model.MetricNetMargin:     {fields: []string{"netMargins", "profitMargins"}, scale: 100},
	model.MetricROE:           {fields: []string{"returnOnEquity"}, scale: 100},
	model.MetricROA:           {fields: []string{"returnOnAssets"}, scale: 100},
	model.MetricEPSGrowth:     {fields: []string{"earningsQuarterlyGrowth"}, scale: 100},
	model.MetricRevenueGrowth: {fields: []string{"revenueGrowth"}, scale: 100},
}

// Normalize builds a RatioRecord for ticker. A nil or empty map yields a
// record with every metric absent; the ticker is always set.
func Normalize(ticker string, raw model.FieldMap) model.RatioRecord {
	rec := model.NewRatioRecord(ticker)
	for _, m := range model.AllMetrics() {
		src := sources[m]
		if v, ok := Lookup(raw, src.fields...); ok {
			rec.Set(m, model.Some(v*src.scale))
		}
	}
	return rec
}

// Targets extracts the analyst price targets.
func Targets(raw model.FieldMap) model.TargetPrices {
	return model.TargetPrices{
		Low:  Field(raw, "targetLowPrice"),
		Mean: Field(raw, "targetMeanPrice"),
		High: Field(raw, "targetHighPrice"),
	}
}

// HeldPercentInstitutions returns the institutional held fraction as percent.
func HeldPercentInstitutions(raw model.FieldMap) model.Value {
	v, ok := Lookup(raw, "heldPercentInstitutions")
	if !ok {
		return model.None()
	}
	return model.Some(v * 100)
}

// Field returns a single numeric field as a Value.
func Field(raw model.FieldMap, name string) model.Value {
	if v, ok := Lookup(raw, name); ok {
		return model.Some(v)
	}
	return model.None()
}

// Lookup returns the first field in names holding a finite number.
func Lookup(raw model.FieldMap, names ...string) (float64, bool) {
	for _, name := range names {
		if v, ok := ToFloat(raw[name]); ok {
			return v, true
		}
	}
	return 0, false
}

// ToFloat converts a decoded JSON value into a finite float64.
// Provider wrappers of the form {"raw": x} are unwrapped.
func ToFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		x, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = x
	case string:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(n), "%"))
		s = strings.ReplaceAll(s, ",", "")
		if s == "" || strings.EqualFold(s, "N/A") {
			return 0, false
		}
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = x
	case map[string]any:
		return ToFloat(n["raw"])
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
