package collector

import (
	"context"
	"errors"
	"fmt"

	"github.com/phuslu/log"

	"EquityLens/internal/activity"
	"EquityLens/internal/calculator"
	"EquityLens/internal/model"
	"EquityLens/internal/ratios"
)

// Collector wraps the providers with one boundary function per fetch. Each
// returns a result or an error; substituting placeholders is left to the caller.
type Collector struct {
	Market       MarketDataProvider
	Fundamentals FundamentalsProvider // may be nil when no API key is configured
	LookbackDays int
	TopHolders   int
}

// NewCollector creates a new Collector.
func NewCollector(market MarketDataProvider, fundamentals FundamentalsProvider, lookbackDays, topHolders int) *Collector {
	return &Collector{
		Market:       market,
		Fundamentals: fundamentals,
		LookbackDays: lookbackDays,
		TopHolders:   topHolders,
	}
}

// Snapshot fetches the price history and computes the technical snapshot.
func (c *Collector) Snapshot(ctx context.Context, ticker string) (model.TechnicalSnapshot, error) {
	series, err := c.Market.GetPriceHistory(ctx, ticker, c.LookbackDays)
	if err != nil {
		return model.TechnicalSnapshot{}, fmt.Errorf("fetch price history: %w", err)
	}
	return calculator.Snapshot(series)
}

// CompanyInfo fetches the raw company information.
func (c *Collector) CompanyInfo(ctx context.Context, ticker string) (model.FieldMap, error) {
	info, err := c.Market.GetCompanyInfo(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("fetch company info: %w", err)
	}
	return info, nil
}

// EarningsSurprises fetches reported quarters from the fundamentals provider.
func (c *Collector) EarningsSurprises(ctx context.Context, ticker string) ([]model.EarningsSurprise, error) {
	if c.Fundamentals == nil {
		return nil, fmt.Errorf("earnings surprises: no fundamentals provider: %w", ErrProviderUnavailable)
	}
	s, err := c.Fundamentals.GetEarningsSurprises(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("fetch earnings surprises: %w", err)
	}
	return s, nil
}

// Recommendations fetches analyst grade changes.
func (c *Collector) Recommendations(ctx context.Context, ticker string) ([]model.Recommendation, error) {
	recs, err := c.Market.GetAnalystRecommendations(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("fetch recommendations: %w", err)
	}
	return recs, nil
}

// InsiderActivity fetches and summarizes insider transactions.
func (c *Collector) InsiderActivity(ctx context.Context, ticker string) (model.InsiderActivitySummary, error) {
	txs, err := c.Market.GetInsiderTransactions(ctx, ticker)
	if err != nil {
		return activity.Unavailable(), fmt.Errorf("fetch insider transactions: %w", err)
	}
	return activity.SummarizeInsiders(txs), nil
}

// InstitutionalOwnership tries the holder list first and falls back to the
// aggregate held percentage from company information. info may be nil, in
// which case it is fetched. Exactly one tier's result is returned.
func (c *Collector) InstitutionalOwnership(ctx context.Context, ticker string, info model.FieldMap) (model.InstitutionalSummary, error) {
	var primaryErr error
	if c.Fundamentals != nil {
		holders, err := c.Fundamentals.GetInstitutionalHolders(ctx, ticker)
		if err == nil {
			if sum, ok := activity.SummarizeHolders(holders, c.TopHolders); ok {
				return sum, nil
			}
			err = fmt.Errorf("empty holder list: %w", ErrNoData)
		}
		primaryErr = fmt.Errorf("fetch institutional holders: %w", err)
	} else {
		primaryErr = fmt.Errorf("institutional holders: no fundamentals provider: %w", ErrProviderUnavailable)
	}
	log.Debug().Str("ticker", ticker).Err(primaryErr).Msg("holder list unavailable, using held percentage")

	if info == nil {
		var err error
		if info, err = c.CompanyInfo(ctx, ticker); err != nil {
			return model.InstitutionalSummary{}, errors.Join(primaryErr, err)
		}
	}
	if sum, ok := activity.FromHeldPercent(ratios.HeldPercentInstitutions(info)); ok {
		return sum, nil
	}
	return model.InstitutionalSummary{}, errors.Join(primaryErr, fmt.Errorf("held percentage: %w", ErrNoData))
}
