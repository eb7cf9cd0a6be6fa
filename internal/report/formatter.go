package report

import (
	"fmt"
	"strings"
	"time"

	"EquityLens/internal/comparator"
	"EquityLens/internal/model"
)

// Report is everything gathered for one ticker. Absent values render as N/A.
type Report struct {
	Ticker        string
	GeneratedAt   time.Time
	Snapshot      model.TechnicalSnapshot
	Sentiment     model.SentimentSummary
	RatingWindow  int
	Insider       model.InsiderActivitySummary
	Institutional model.InstitutionalSummary
	Target        model.RatioRecord
	Peers         []model.RatioRecord
	Valuation     []comparator.Comparison
	Profitability []comparator.Assessment
}

// FormatReport renders one ticker's analysis as Markdown.
func FormatReport(r *Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# Analyzing %s\n\n", r.Ticker))
	if !r.GeneratedAt.IsZero() {
		b.WriteString(fmt.Sprintf("_Generated %s_\n\n", r.GeneratedAt.Format("2006-01-02 15:04")))
	}

	writeSnapshot(&b, r.Ticker, r.Snapshot)
	writeSentiment(&b, r.Ticker, r.Sentiment, r.RatingWindow)
	writeActivity(&b, r.Insider, r.Institutional)
	writeComparables(&b, append([]model.RatioRecord{r.Target}, r.Peers...))
	writeValuation(&b, r.Ticker, r.Valuation)
	writeProfitability(&b, r.Ticker, r.Profitability)

	return b.String()
}

// FormatRun joins the reports of a multi-ticker run.
func FormatRun(reports []*Report) string {
	parts := make([]string, 0, len(reports))
	for _, r := range reports {
		parts = append(parts, FormatReport(r))
	}
	return strings.Join(parts, "\n---\n\n")
}

func writeSnapshot(b *strings.Builder, ticker string, s model.TechnicalSnapshot) {
	b.WriteString(fmt.Sprintf("## Technical Snapshot for %s\n\n", ticker))
	b.WriteString(fmt.Sprintf("- Current Price: %s\n", money(s.CurrentPrice)))
	b.WriteString(fmt.Sprintf("- 52-Week High: %s (%s)\n", money(s.High52w), s.PctOffHigh.Format("%.1f%%")))
	b.WriteString(fmt.Sprintf("- 52-Week Low: %s\n", money(s.Low52w)))
	b.WriteString(fmt.Sprintf("- 50-day MA: %s | 200-day MA: %s\n", money(s.MA50), money(s.MA200)))
	b.WriteString(fmt.Sprintf("- RSI(14): %s\n\n", s.RSI14.Format("%.1f")))
}

func writeSentiment(b *strings.Builder, ticker string, s model.SentimentSummary, window int) {
	b.WriteString(fmt.Sprintf("## Earnings & Analyst Sentiment for %s\n\n", ticker))

	if len(s.Surprises) == 0 {
		b.WriteString(fmt.Sprintf("- Earnings Surprises: %s\n", model.NotAvailable))
	}
	for _, e := range s.Surprises {
		b.WriteString(fmt.Sprintf("- Quarter: %s | Actual: %s | Estimate: %s | Surprise: %s\n",
			date(e.Date), e.Actual, e.Estimate, e.SurprisePct.Format("%.2f%%")))
	}

	switch {
	case !s.HasRatings:
		b.WriteString(fmt.Sprintf("- Analyst Ratings (last %d): %s\n", window, model.NotAvailable))
	case len(s.Ratings) == 0:
		b.WriteString(fmt.Sprintf("- Analyst Ratings (last %d): No grade data available\n", window))
	default:
		b.WriteString(fmt.Sprintf("- Analyst Ratings (last %d):\n", window))
		for _, g := range s.Ratings {
			b.WriteString(fmt.Sprintf("  - %s: %d\n", g.Grade, g.Count))
		}
	}

	t := s.Targets
	b.WriteString(fmt.Sprintf("- Target Price: Low %s | Avg %s | High %s\n\n", money(t.Low), money(t.Mean), money(t.High)))
}

func writeActivity(b *strings.Builder, in model.InsiderActivitySummary, inst model.InstitutionalSummary) {
	b.WriteString("## Insider and Institutional Activity\n\n")

	if in.Available {
		b.WriteString(fmt.Sprintf("- Insider Buys: %d, Sells: %d\n", in.Buys, in.Sells))
		b.WriteString(fmt.Sprintf("- Net Insider Trade Value: $%s\n", in.NetValue.StringFixed(2)))
	} else {
		b.WriteString(fmt.Sprintf("- Insider Buys: %s, Sells: %s\n", model.NotAvailable, model.NotAvailable))
		b.WriteString(fmt.Sprintf("- Net Insider Trade Value: %s\n", model.NotAvailable))
	}
	if len(in.Executives) > 0 {
		b.WriteString(fmt.Sprintf("- Execs Involved: %s\n", strings.Join(in.Executives, ", ")))
	} else {
		b.WriteString("- No executive insider trades reported.\n")
	}

	switch inst.Tier {
	case model.TierHolderList:
		b.WriteString(fmt.Sprintf("- Institutional Holders: %s\n", inst.HolderCount.Format("%.0f")))
		b.WriteString(fmt.Sprintf("- Total Shares Held: %s\n", inst.TotalShares.Format("%.0f")))
	case model.TierHeldPercent:
		b.WriteString(fmt.Sprintf("- Institutional Holders: %s\n", model.NotAvailable))
		b.WriteString(fmt.Sprintf("- Total Shares Held: %s\n", inst.HeldPercent.Format("%.2f%%")))
	default:
		b.WriteString(fmt.Sprintf("- Institutional Holders: %s\n", model.NotAvailable))
		b.WriteString(fmt.Sprintf("- Total Shares Held: %s\n", model.NotAvailable))
	}
	if len(inst.TopHolders) > 0 {
		b.WriteString(fmt.Sprintf("- Top Holders: %s\n", strings.Join(inst.TopHolders, ", ")))
	}
	b.WriteString("\n")
}

func writeComparables(b *strings.Builder, records []model.RatioRecord) {
	b.WriteString("## Comparable Metrics\n\n")

	metrics := model.AllMetrics()
	b.WriteString("| Ticker |")
	for _, m := range metrics {
		b.WriteString(fmt.Sprintf(" %s |", m))
	}
	b.WriteString("\n|---|")
	for range metrics {
		b.WriteString("---:|")
	}
	b.WriteString("\n")
	for _, rec := range records {
		b.WriteString(fmt.Sprintf("| %s |", rec.Ticker))
		for _, m := range metrics {
			b.WriteString(fmt.Sprintf(" %s |", rec.Get(m)))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeValuation(b *strings.Builder, ticker string, cs []comparator.Comparison) {
	b.WriteString(fmt.Sprintf("## Relative Valuation Summary for %s\n\n", ticker))
	for _, c := range cs {
		b.WriteString(fmt.Sprintf("- %s: %s\n", c.Metric, c.Commentary(ticker)))
	}
	b.WriteString("\n")
}

func writeProfitability(b *strings.Builder, ticker string, as []comparator.Assessment) {
	b.WriteString(fmt.Sprintf("## Profitability & Growth Analysis for %s\n\n", ticker))
	for _, a := range as {
		b.WriteString(fmt.Sprintf("- %s: %s - %s\n", a.Metric, a.Value.Format("%.2f%%"), a.Label))
	}
}

func money(v model.Value) string {
	return v.Format("$%.2f")
}

func date(t time.Time) string {
	if t.IsZero() {
		return model.NotAvailable
	}
	return t.Format("2006-01-02")
}
