package calculator

import (
	"errors"
	"fmt"
	"math"
)

// CalculateRange returns the highest and lowest close of the whole series.
func CalculateRange(closes []float64) (high, low float64, err error) {
	if len(closes) == 0 {
		return 0, 0, fmt.Errorf("range over empty series: %w", ErrInsufficientData)
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, c := range closes {
		if c > high {
			high = c
		}
		if c < low {
			low = c
		}
	}
	return high, low, nil
}

// CalculatePctOffHigh returns how far current sits below high, in percent.
// The result is 0 when current equals high.
func CalculatePctOffHigh(current, high float64) (float64, error) {
	if high == 0 {
		return 0, errors.New("high must be non-zero")
	}
	return (current - high) / high * 100, nil
}

// Calculate52WeekPosition returns where the current price sits within the range (0.0~1.0).
func Calculate52WeekPosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	return math.Max(0, math.Min(1, pos)), nil
}
