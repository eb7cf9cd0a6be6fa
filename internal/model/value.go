package model

import "fmt"

// NotAvailable is the placeholder rendered for any missing value.
const NotAvailable = "N/A"

// FieldState describes whether a numeric field carries a value.
type FieldState int

const (
	// Absent means the value is missing and nobody will be asked for it.
	Absent FieldState = iota
	// Present means Num holds a usable number.
	Present
	// NeedsInput means the value is missing and an operator may supply it.
	NeedsInput
)

func (s FieldState) String() string {
	switch s {
	case Present:
		return "present"
	case NeedsInput:
		return "needs-input"
	default:
		return "absent"
	}
}

// Value is an optional float. The zero Value is Absent.
type Value struct {
	Num   float64
	State FieldState
}

// Some wraps a present number.
func Some(v float64) Value { return Value{Num: v, State: Present} }

// None returns an absent value.
func None() Value { return Value{} }

// Ok reports whether the value is present.
func (v Value) Ok() bool { return v.State == Present }

// Get returns the number and whether it is present.
func (v Value) Get() (float64, bool) { return v.Num, v.State == Present }

// Format renders the value with the given verb, or N/A.
func (v Value) Format(verb string) string {
	if !v.Ok() {
		return NotAvailable
	}
	return fmt.Sprintf(verb, v.Num)
}

func (v Value) String() string { return v.Format("%.2f") }
