package collector

import (
	"context"
	"fmt"
	"time"

	"EquityLens/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// It implements both MarketDataProvider and FundamentalsProvider. A non-nil
// Err fails every call.
type MockFetcher struct {
	Price           float64
	Series          map[string]model.PriceSeries
	Info            map[string]model.FieldMap
	Insiders        map[string][]model.InsiderTransaction
	Recommendations map[string][]model.Recommendation
	Surprises       map[string][]model.EarningsSurprise
	Holders         map[string][]model.HolderRecord
	Err             error

	Calls []string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) record(op, ticker string) error {
	m.Calls = append(m.Calls, op+":"+ticker)
	if m.Err != nil {
		return &ProviderError{Provider: "mock", Endpoint: op, Err: m.Err}
	}
	return nil
}

func (m *MockFetcher) GetPriceHistory(_ context.Context, ticker string, lookbackDays int) (model.PriceSeries, error) {
	if err := m.record("history", ticker); err != nil {
		return model.PriceSeries{}, err
	}
	if s, ok := m.Series[ticker]; ok {
		return s, nil
	}
	if m.Price == 0 {
		return model.PriceSeries{}, noData(m.Name(), "history")
	}
	return model.PriceSeries{Symbol: ticker, Points: generateMockPoints(m.Price, lookbackDays*252/365), FetchedAt: time.Now()}, nil
}

func (m *MockFetcher) GetCompanyInfo(_ context.Context, ticker string) (model.FieldMap, error) {
	if err := m.record("info", ticker); err != nil {
		return nil, err
	}
	if info, ok := m.Info[ticker]; ok {
		return info, nil
	}
	return nil, noData(m.Name(), "info")
}

func (m *MockFetcher) GetInsiderTransactions(_ context.Context, ticker string) ([]model.InsiderTransaction, error) {
	if err := m.record("insiders", ticker); err != nil {
		return nil, err
	}
	if txs, ok := m.Insiders[ticker]; ok && len(txs) > 0 {
		return txs, nil
	}
	return nil, noData(m.Name(), "insiders")
}

func (m *MockFetcher) GetAnalystRecommendations(_ context.Context, ticker string) ([]model.Recommendation, error) {
	if err := m.record("recommendations", ticker); err != nil {
		return nil, err
	}
	if recs, ok := m.Recommendations[ticker]; ok && len(recs) > 0 {
		return recs, nil
	}
	return nil, noData(m.Name(), "recommendations")
}

func (m *MockFetcher) GetEarningsSurprises(_ context.Context, ticker string) ([]model.EarningsSurprise, error) {
	if err := m.record("surprises", ticker); err != nil {
		return nil, err
	}
	if s, ok := m.Surprises[ticker]; ok && len(s) > 0 {
		return s, nil
	}
	return nil, noData(m.Name(), "surprises")
}

func (m *MockFetcher) GetInstitutionalHolders(_ context.Context, ticker string) ([]model.HolderRecord, error) {
	if err := m.record("holders", ticker); err != nil {
		return nil, err
	}
	if h, ok := m.Holders[ticker]; ok && len(h) > 0 {
		return h, nil
	}
	return nil, fmt.Errorf("mock holders %s: %w", ticker, ErrNoData)
}

func generateMockPoints(basePrice float64, count int) []model.PricePoint {
	points := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		points[i] = model.PricePoint{
			Time:  time.Now().AddDate(0, 0, -(count - i)),
			Close: basePrice * (1 + float64(i-count/2)*0.001),
		}
	}
	return points
}
