package recorder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"EquityLens/internal/report"
)

// Recorder receives each finished ticker report. Close is called once after
// the last ticker.
type Recorder interface {
	Record(ctx context.Context, r *report.Report, markdown string) error
	Close(ctx context.Context) error
}

// WriterRecorder prints every report to w as it completes.
type WriterRecorder struct {
	W     io.Writer
	count int
}

func NewWriterRecorder(w io.Writer) *WriterRecorder { return &WriterRecorder{W: w} }

func (w *WriterRecorder) Record(_ context.Context, _ *report.Report, markdown string) error {
	if w.count > 0 {
		if _, err := io.WriteString(w.W, "\n---\n\n"); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	w.count++
	if _, err := io.WriteString(w.W, markdown); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func (w *WriterRecorder) Close(context.Context) error { return nil }

// HTMLRecorder collects the run and writes one HTML page on Close.
type HTMLRecorder struct {
	Path    string
	parts   []string
	tickers []string
}

func NewHTMLRecorder(path string) *HTMLRecorder { return &HTMLRecorder{Path: path} }

func (h *HTMLRecorder) Record(_ context.Context, r *report.Report, markdown string) error {
	h.parts = append(h.parts, markdown)
	h.tickers = append(h.tickers, r.Ticker)
	return nil
}

func (h *HTMLRecorder) Close(context.Context) error {
	if len(h.parts) == 0 {
		return nil
	}
	title := "EquityLens: " + strings.Join(h.tickers, ", ")
	return report.WriteHTML(h.Path, title, strings.Join(h.parts, "\n---\n\n"))
}

// Sender delivers report text somewhere outside the process.
type Sender interface {
	SendReport(ctx context.Context, text string, maxRetries int) error
}

// SenderRecorder pushes each report through a Sender, e.g. Telegram.
type SenderRecorder struct {
	Sender     Sender
	MaxRetries int
}

func NewSenderRecorder(s Sender, maxRetries int) *SenderRecorder {
	return &SenderRecorder{Sender: s, MaxRetries: maxRetries}
}

func (s *SenderRecorder) Record(ctx context.Context, _ *report.Report, markdown string) error {
	return s.Sender.SendReport(ctx, markdown, s.MaxRetries)
}

func (s *SenderRecorder) Close(context.Context) error { return nil }

// Multi fans every call out to all recorders and joins their errors.
type Multi []Recorder

func (m Multi) Record(ctx context.Context, r *report.Report, markdown string) error {
	var errs []error
	for _, rec := range m {
		if err := rec.Record(ctx, r, markdown); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close(ctx context.Context) error {
	var errs []error
	for _, rec := range m {
		if err := rec.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
