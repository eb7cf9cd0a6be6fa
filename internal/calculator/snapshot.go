package calculator

import (
	"fmt"

	"EquityLens/internal/model"
)

// Snapshot computes the technical snapshot for a chronological price series.
// It fails only when the series is empty; shorter windows leave the
// corresponding indicator absent.
func Snapshot(series model.PriceSeries) (model.TechnicalSnapshot, error) {
	closes := series.Closes()
	if len(closes) == 0 {
		return model.TechnicalSnapshot{}, fmt.Errorf("snapshot %s: no closes: %w", series.Symbol, ErrInsufficientData)
	}

	current := closes[len(closes)-1]
	snap := model.TechnicalSnapshot{
		CurrentPrice: model.Some(current),
		Points:       len(closes),
	}

	if high, low, err := CalculateRange(closes); err == nil {
		snap.High52w = model.Some(high)
		snap.Low52w = model.Some(low)
		if pct, err := CalculatePctOffHigh(current, high); err == nil {
			snap.PctOffHigh = model.Some(pct)
		}
		if pos, err := Calculate52WeekPosition(current, high, low); err == nil {
			snap.Position52w = model.Some(pos)
		}
	}

	snap.MA50 = optional(CalculateMA50(closes))
	snap.MA200 = optional(CalculateMA200(closes))
	snap.RSI14 = optional(CalculateRSI(closes, DefaultRSIPeriod))
	return snap, nil
}

func optional(v float64, err error) model.Value {
	if err != nil {
		return model.None()
	}
	return model.Some(v)
}
