package backfill

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EquityLens/internal/model"
)

type answers map[model.Metric]string

func (a answers) Resolve(_ string, m model.Metric) (string, bool) {
	v, ok := a[m]
	return v, ok
}

func TestMarkForInput(t *testing.T) {
	rec := model.NewRatioRecord("MSFT")
	rec.Set(model.MetricPE, model.Some(30))
	rec = MarkForInput(rec)

	assert.Equal(t, model.Present, rec.Get(model.MetricPE).State)
	assert.Len(t, rec.Pending(), len(model.AllMetrics())-1)
}

func TestFill(t *testing.T) {
	rec := MarkForInput(model.NewRatioRecord("MSFT"))
	rec = Fill(rec, answers{
		model.MetricPE:  "31.5",
		model.MetricPB:  "abc",
		model.MetricROE: " 12 ",
	})

	assert.Equal(t, model.Some(31.5), rec.Get(model.MetricPE))
	assert.Equal(t, model.Some(12), rec.Get(model.MetricROE))
	assert.Equal(t, model.Absent, rec.Get(model.MetricPB).State)
	assert.Empty(t, rec.Pending())
}

func TestFill_NilAndSkip(t *testing.T) {
	for _, r := range []Resolver{nil, Skip{}} {
		rec := Fill(MarkForInput(model.NewRatioRecord("X")), r)
		assert.Empty(t, rec.Pending())
		for _, m := range model.AllMetrics() {
			assert.False(t, rec.Get(m).Ok())
		}
	}
}

func TestParse(t *testing.T) {
	v, err := Parse("-4.25")
	require.NoError(t, err)
	assert.Equal(t, -4.25, v)

	for _, bad := range []string{"", "  ", "n/a", "1.2.3", "NaN", "inf"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrManualEntryInvalid, bad)
	}
}

func TestPrompt(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompt(strings.NewReader("12.5\n\n7"), &out)

	v, ok := p.Resolve("GOOGL", model.MetricPE)
	assert.True(t, ok)
	assert.Equal(t, "12.5", v)
	assert.Contains(t, out.String(), "Enter missing value for GOOGL - PE Ratio: ")

	_, ok = p.Resolve("GOOGL", model.MetricPB)
	assert.False(t, ok)

	v, ok = p.Resolve("GOOGL", model.MetricPS)
	assert.True(t, ok)
	assert.Equal(t, "7", v)

	_, ok = p.Resolve("GOOGL", model.MetricPEG)
	assert.False(t, ok)
}
