package calculator

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is returned when a series is shorter than an indicator's window.
var ErrInsufficientData = errors.New("insufficient data")

// CalculateSMA returns the arithmetic mean of the last `period` prices.
// It never averages over a shorter window.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, fmt.Errorf("SMA(%d) over %d points: %w", period, len(prices), ErrInsufficientData)
	}
	sum := 0.0
	for _, p := range prices[len(prices)-period:] {
		sum += p
	}
	return sum / float64(period), nil
}

// CalculateMA50 returns the 50-day simple moving average.
func CalculateMA50(closes []float64) (float64, error) {
	return CalculateSMA(closes, 50)
}

// CalculateMA200 returns the 200-day simple moving average.
func CalculateMA200(closes []float64) (float64, error) {
	return CalculateSMA(closes, 200)
}
