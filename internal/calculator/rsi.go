package calculator

import (
	"errors"
	"fmt"
)

// DefaultRSIPeriod is the RSI lookback used in the technical snapshot.
const DefaultRSIPeriod = 14

// CalculateRSI computes RSI from simple rolling means of gains and losses over
// the trailing `period` deltas. Requires at least period+1 closes.
// With no losing day in the window the RSI is 100.
func CalculateRSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) < period+1 {
		return 0, fmt.Errorf("RSI(%d) over %d points: %w", period, len(closes), ErrInsufficientData)
	}

	var gains, losses float64
	for i := len(closes) - period; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains += delta
		} else {
			losses -= delta
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}
