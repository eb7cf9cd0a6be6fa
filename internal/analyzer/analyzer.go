package analyzer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"EquityLens/internal/backfill"
	"EquityLens/internal/collector"
	"EquityLens/internal/comparator"
	"EquityLens/internal/model"
	"EquityLens/internal/ratios"
	"EquityLens/internal/recorder"
	"EquityLens/internal/report"
	"EquityLens/internal/sentiment"
)

// Options tunes one analysis run.
type Options struct {
	PeerCount        int
	EarningsQuarters int
	RatingWindow     int
	ManualBackfill   bool
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		PeerCount:        3,
		EarningsQuarters: sentiment.DefaultQuarters,
		RatingWindow:     sentiment.DefaultRatingWindow,
		ManualBackfill:   true,
	}
}

// PeerFunc returns the comparable tickers for ticker.
type PeerFunc func(ticker string) []string

// Analyzer runs the per-ticker pipeline. Tickers are processed one after
// another and a failure in one never stops the others.
type Analyzer struct {
	Collector *collector.Collector
	Resolver  backfill.Resolver
	Recorder  recorder.Recorder
	Options   Options
	Now       func() time.Time
}

// NewAnalyzer creates a new Analyzer. A nil resolver skips manual entry and a
// nil recorder discards reports.
func NewAnalyzer(col *collector.Collector, res backfill.Resolver, rec recorder.Recorder, opts Options) *Analyzer {
	if res == nil {
		res = backfill.Skip{}
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Analyzer{
		Collector: col,
		Resolver:  res,
		Recorder:  rec,
		Options:   opts,
		Now:       time.Now,
	}
}

// Run analyzes every ticker and hands each report to the recorder as soon as
// it is complete. It stops early, returning ctx.Err(), only when ctx is cancelled.
func (a *Analyzer) Run(ctx context.Context, tickers []string, peers PeerFunc) ([]*report.Report, error) {
	lg := log.DefaultLogger
	lg.Context = log.NewContext(nil).Str("run", uuid.NewString()).Value()

	tickers = NormalizeTickers(tickers)
	lg.Info().Int("tickers", len(tickers)).Msg("analysis run started")

	var reports []*report.Report
	var runErr error
	for _, ticker := range tickers {
		if runErr = ctx.Err(); runErr != nil {
			lg.Warn().Err(runErr).Msg("analysis run interrupted")
			break
		}
		var peerList []string
		if peers != nil {
			peerList = peers(ticker)
		}

		start := time.Now()
		r := a.Analyze(ctx, &lg, ticker, peerList)
		reports = append(reports, r)

		if err := a.Recorder.Record(ctx, r, report.FormatReport(r)); err != nil {
			lg.Error().Str("ticker", ticker).Err(err).Msg("record report failed")
		}
		lg.Info().Str("ticker", ticker).Dur("elapsed", time.Since(start)).Msg("ticker analyzed")
	}

	if err := a.Recorder.Close(ctx); err != nil {
		lg.Error().Err(err).Msg("close recorder failed")
	}
	lg.Info().Int("reports", len(reports)).Msg("analysis run finished")
	return reports, runErr
}

// Analyze builds the full report for one ticker. Every failed fetch is logged
// and replaced by its placeholder, so a report is always returned.
func (a *Analyzer) Analyze(ctx context.Context, lg *log.Logger, ticker string, peerTickers []string) *report.Report {
	if lg == nil {
		lg = &log.DefaultLogger
	}
	lg.Info().Str("ticker", ticker).Strs("peers", peerTickers).Msg("analyzing")

	r := &report.Report{
		Ticker:       ticker,
		GeneratedAt:  a.Now(),
		RatingWindow: a.Options.RatingWindow,
	}

	snap, err := a.Collector.Snapshot(ctx, ticker)
	if err != nil {
		fetchFailed(lg, ticker, "technical snapshot", err)
	}
	r.Snapshot = snap

	info, err := a.Collector.CompanyInfo(ctx, ticker)
	if err != nil {
		fetchFailed(lg, ticker, "company info", err)
		info = model.FieldMap{}
	}

	surprises, err := a.Collector.EarningsSurprises(ctx, ticker)
	if err != nil {
		fetchFailed(lg, ticker, "earnings surprises", err)
	}
	recs, err := a.Collector.Recommendations(ctx, ticker)
	if err != nil {
		fetchFailed(lg, ticker, "analyst recommendations", err)
	}
	r.Sentiment = sentiment.Summarize(surprises, recs, ratios.Targets(info), a.Options.EarningsQuarters, a.Options.RatingWindow)

	r.Target = ratios.Normalize(ticker, info)
	r.Peers = a.peerRecords(ctx, lg, ticker, peerTickers)

	r.Insider, err = a.Collector.InsiderActivity(ctx, ticker)
	if err != nil {
		fetchFailed(lg, ticker, "insider transactions", err)
	}
	r.Institutional, err = a.Collector.InstitutionalOwnership(ctx, ticker, info)
	if err != nil {
		fetchFailed(lg, ticker, "institutional ownership", err)
	}

	r.Valuation = comparator.CompareValuation(r.Target, r.Peers)
	r.Profitability = comparator.AssessProfitability(r.Target)
	return r
}

func (a *Analyzer) peerRecords(ctx context.Context, lg *log.Logger, ticker string, peerTickers []string) []model.RatioRecord {
	var selected []string
	for _, p := range NormalizeTickers(peerTickers) {
		if strings.EqualFold(p, ticker) {
			lg.Warn().Str("ticker", ticker).Msg("ignoring ticker listed as its own peer")
			continue
		}
		selected = append(selected, p)
	}
	if n := a.Options.PeerCount; n > 0 && len(selected) > n {
		selected = selected[:n]
	}

	out := make([]model.RatioRecord, 0, len(selected))
	for _, p := range selected {
		info, err := a.Collector.CompanyInfo(ctx, p)
		if err != nil {
			fetchFailed(lg, p, "peer company info", err)
		}
		rec := ratios.Normalize(p, info)
		if a.Options.ManualBackfill {
			rec = backfill.Fill(backfill.MarkForInput(rec), a.Resolver)
		}
		out = append(out, rec)
	}
	return out
}

func fetchFailed(lg *log.Logger, ticker, op string, err error) {
	if errors.Is(err, collector.ErrNoData) && !errors.Is(err, collector.ErrProviderUnavailable) {
		lg.Info().Str("ticker", ticker).Str("op", op).Err(err).Msg("no data, using placeholder")
		return
	}
	lg.Warn().Str("ticker", ticker).Str("op", op).Err(err).Msg("fetch failed, using placeholder")
}

// NormalizeTickers upper-cases, trims and de-duplicates symbols, dropping blanks.
func NormalizeTickers(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// ParseTickers splits a comma separated operator answer.
func ParseTickers(s string) []string {
	return NormalizeTickers(strings.Split(s, ","))
}
