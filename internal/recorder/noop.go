package recorder

import (
	"context"

	"EquityLens/internal/report"
)

// NoopRecorder is used when no output is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) Record(context.Context, *report.Report, string) error { return nil }
func (n *NoopRecorder) Close(context.Context) error                          { return nil }
