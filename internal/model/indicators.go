package model

// TechnicalSnapshot holds the computed technical indicators for a ticker.
// Any indicator without enough history is left absent.
type TechnicalSnapshot struct {
	CurrentPrice Value
	High52w      Value
	Low52w       Value
	PctOffHigh   Value // (current - high) / high * 100
	Position52w  Value // 0.0 ~ 1.0
	MA50         Value
	MA200        Value
	RSI14        Value
	Points       int
}
