package collector

import (
	"context"

	"EquityLens/internal/model"
)

// MarketDataProvider supplies prices, company information, insider filings
// and analyst recommendations.
type MarketDataProvider interface {
	GetPriceHistory(ctx context.Context, ticker string, lookbackDays int) (model.PriceSeries, error)
	GetCompanyInfo(ctx context.Context, ticker string) (model.FieldMap, error)
	GetInsiderTransactions(ctx context.Context, ticker string) ([]model.InsiderTransaction, error)
	GetAnalystRecommendations(ctx context.Context, ticker string) ([]model.Recommendation, error)
	Name() string
}

// FundamentalsProvider is the secondary, API-key based source.
type FundamentalsProvider interface {
	GetEarningsSurprises(ctx context.Context, ticker string) ([]model.EarningsSurprise, error)
	GetInstitutionalHolders(ctx context.Context, ticker string) ([]model.HolderRecord, error)
	Name() string
}
