package collector

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderUnavailable covers transport failures, non-200 responses and
	// bodies that cannot be decoded.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrNoData means the provider answered but had nothing usable.
	ErrNoData = errors.New("no data")
)

// ProviderError describes a failed provider call.
type ProviderError struct {
	Provider   string
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Provider, e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Endpoint, e.Err)
}

func (e *ProviderError) Unwrap() []error {
	return []error{ErrProviderUnavailable, e.Err}
}

func unavailable(provider, endpoint string, status int, err error) error {
	return &ProviderError{Provider: provider, Endpoint: endpoint, StatusCode: status, Err: err}
}

func noData(provider, endpoint string) error {
	return fmt.Errorf("%s %s: %w", provider, endpoint, ErrNoData)
}
