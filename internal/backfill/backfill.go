// Package backfill resolves peer metrics that are waiting for operator input.
// Aggregation code never prompts; it marks fields as NeedsInput and the caller
// decides whether and how to resolve them.
package backfill

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/phuslu/log"

	"EquityLens/internal/model"
)

// ErrManualEntryInvalid is returned when operator input is not numeric.
var ErrManualEntryInvalid = errors.New("manual entry invalid")

// Resolver supplies a raw answer for one missing metric. ok is false when the
// operator declined or no input is available.
type Resolver interface {
	Resolve(ticker string, m model.Metric) (answer string, ok bool)
}

// MarkForInput turns every absent metric of rec into NeedsInput.
func MarkForInput(rec model.RatioRecord) model.RatioRecord {
	for _, m := range model.AllMetrics() {
		if rec.Get(m).State == model.Absent {
			rec.Set(m, model.Value{State: model.NeedsInput})
		}
	}
	return rec
}

// Parse converts an operator answer into a value.
func Parse(answer string) (float64, error) {
	s := strings.TrimSpace(answer)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q: %w", answer, ErrManualEntryInvalid)
	}
	return v, nil
}

// Fill asks r for every pending metric of rec. Valid answers become present
// values; declined or invalid answers leave the metric absent. There is no
// retry. Fill never leaves a metric in the NeedsInput state.
func Fill(rec model.RatioRecord, r Resolver) model.RatioRecord {
	for _, m := range rec.Pending() {
		rec.Set(m, model.None())
		if r == nil {
			continue
		}
		answer, ok := r.Resolve(rec.Ticker, m)
		if !ok {
			continue
		}
		v, err := Parse(answer)
		if err != nil {
			log.Warn().Str("ticker", rec.Ticker).Str("metric", m.String()).Err(err).Msg("skipping manual entry")
			continue
		}
		rec.Set(m, model.Some(v))
	}
	return rec
}

// Skip resolves nothing; every pending metric ends up absent.
type Skip struct{}

func (Skip) Resolve(string, model.Metric) (string, bool) { return "", false }

// Prompt asks the operator on Out and reads one line per metric from In.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompt creates a Prompt resolver.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out}
}

// Resolve prints the question and reads the answer. End of input declines.
func (p *Prompt) Resolve(ticker string, m model.Metric) (string, bool) {
	fmt.Fprintf(p.out, "Enter missing value for %s - %s: ", ticker, m)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}
	return line, true
}
