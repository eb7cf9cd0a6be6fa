package model

import "time"

// PricePoint is a single daily close.
type PricePoint struct {
	Time  time.Time
	Close float64
}

// PriceSeries holds chronological closes for one ticker over the lookback window.
type PriceSeries struct {
	Symbol    string
	Points    []PricePoint
	FetchedAt time.Time
}

// Closes returns the closing prices in chronological order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}

// Len returns the number of points.
func (s PriceSeries) Len() int { return len(s.Points) }

// FieldMap is the raw company information returned by a market data provider.
// Values are whatever the provider decoded: numbers, strings, nil.
type FieldMap map[string]any
