package ratios

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"EquityLens/internal/model"
)

func TestNormalize_AllKeysAlwaysPresent(t *testing.T) {
	inputs := []model.FieldMap{
		nil,
		{},
		{"trailingPE": 25.0},
		{"unrelated": "x", "priceToBook": nil},
	}
	for _, raw := range inputs {
		rec := Normalize("AAPL", raw)
		assert.Equal(t, "AAPL", rec.Ticker)
		assert.Len(t, rec.Values, len(model.AllMetrics()))
	}
}

func TestNormalize_TotalFailure(t *testing.T) {
	rec := Normalize("MSFT", nil)
	for _, m := range model.AllMetrics() {
		assert.False(t, rec.Get(m).Ok(), m.String())
		assert.Equal(t, model.Absent, rec.Get(m).State)
	}
}

func TestNormalize_FieldMapping(t *testing.T) {
	raw := model.FieldMap{
		"trailingPE":                   30.5,
		"priceToBook":                  map[string]any{"raw": 45.2, "fmt": "45.20"},
		"priceToSalesTrailing12Months": json.Number("7.8"),
		"enterpriseToEbitda":           "22.1",
		"pegRatio":                     nil,
		"trailingPegRatio":             2.4,
		"priceToCashflow":              "N/A",
		"profitMargins":                0.25,
		"returnOnEquity":               1.47,
		"returnOnAssets":               0.21,
		"earningsQuarterlyGrowth":      -0.05,
		"revenueGrowth":                "bogus",
	}
	rec := Normalize("AAPL", raw)

	want := map[model.Metric]model.Value{
		model.MetricPE:            model.Some(30.5),
		model.MetricPB:            model.Some(45.2),
		model.MetricPS:            model.Some(7.8),
		model.MetricEVEBITDA:      model.Some(22.1),
		model.MetricPEG:           model.Some(2.4),
		model.MetricPriceCashFlow: model.None(),
		model.MetricRevenueGrowth: model.None(),
	}
	for m, v := range want {
		assert.Equal(t, v, rec.Get(m), m.String())
	}
	assert.InDelta(t, 25.0, rec.Get(model.MetricNetMargin).Num, 1e-9)
	assert.InDelta(t, 147.0, rec.Get(model.MetricROE).Num, 1e-9)
	assert.InDelta(t, 21.0, rec.Get(model.MetricROA).Num, 1e-9)
	assert.InDelta(t, -5.0, rec.Get(model.MetricEPSGrowth).Num, 1e-9)
}

func TestNormalize_NetMarginsPreferredOverProfitMargins(t *testing.T) {
	rec := Normalize("X", model.FieldMap{"netMargins": 0.1, "profitMargins": 0.3})
	assert.InDelta(t, 10.0, rec.Get(model.MetricNetMargin).Num, 1e-9)
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{nil, 0, false},
		{1.5, 1.5, true},
		{3, 3, true},
		{int64(4), 4, true},
		{"1,234.5", 1234.5, true},
		{"12%", 12, true},
		{"", 0, false},
		{"abc", 0, false},
		{true, 0, false},
		{map[string]any{"raw": 2.0}, 2, true},
		{map[string]any{}, 0, false},
	}
	for _, tt := range tests {
		got, ok := ToFloat(tt.in)
		assert.Equal(t, tt.ok, ok, "%v", tt.in)
		if tt.ok {
			assert.InDelta(t, tt.want, got, 1e-9)
		}
	}
}

func TestTargetsAndHeldPercent(t *testing.T) {
	raw := model.FieldMap{
		"targetLowPrice":          150.0,
		"targetMeanPrice":         map[string]any{"raw": 200.0},
		"heldPercentInstitutions": 0.615,
	}
	tp := Targets(raw)
	assert.Equal(t, model.Some(150), tp.Low)
	assert.Equal(t, model.Some(200), tp.Mean)
	assert.False(t, tp.High.Ok())

	held := HeldPercentInstitutions(raw)
	assert.InDelta(t, 61.5, held.Num, 1e-9)
	assert.False(t, HeldPercentInstitutions(nil).Ok())
}
