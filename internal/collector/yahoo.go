package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/phuslu/log"
	"golang.org/x/time/rate"

	"EquityLens/internal/model"
	"EquityLens/internal/ratios"
)

const (
	DefaultYahooBaseURL   = "https://query2.finance.yahoo.com"
	DefaultYahooCookieURL = "https://fc.yahoo.com"
)

// infoModules are flattened into the company information field map.
var infoModules = []string{"summaryDetail", "defaultKeyStatistics", "financialData"}

// YahooOptions configures a YahooFetcher.
type YahooOptions struct {
	BaseURL   string
	CookieURL string
	Timeout   time.Duration
	Proxy     string
	RateLimit int // requests per second
}

// YahooFetcher implements MarketDataProvider using Yahoo Finance public endpoints.
type YahooFetcher struct {
	BaseURL   string
	CookieURL string
	Client    *http.Client
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker

	limiter *rate.Limiter
	mu      sync.Mutex
	crumb   string
	tried   bool
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(opts YahooOptions) *YahooFetcher {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultYahooBaseURL
	}
	if opts.CookieURL == "" {
		opts.CookieURL = DefaultYahooCookieURL
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5
	}
	return &YahooFetcher{
		BaseURL:   strings.TrimRight(opts.BaseURL, "/"),
		CookieURL: opts.CookieURL,
		Client:    newHTTPClient(opts.Timeout, opts.Proxy),
		SymbolMap: map[string]string{
			"SPX":   "^GSPC",
			"SP500": "^GSPC",
		},
		limiter: rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateLimit),
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[strings.ToUpper(symbol)]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []interface{} `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"chart"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// yahooSummary is the response structure from the quoteSummary API.
type yahooSummary struct {
	QuoteSummary struct {
		Result []map[string]json.RawMessage `json:"result"`
		Error  *yahooError                  `json:"error"`
	} `json:"quoteSummary"`
}

func (f *YahooFetcher) get(ctx context.Context, endpoint string, out interface{}) error {
	if err := f.limiter.Wait(ctx); err != nil {
		return unavailable(f.Name(), endpoint, 0, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return unavailable(f.Name(), endpoint, 0, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return unavailable(f.Name(), endpoint, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return unavailable(f.Name(), endpoint, 0, fmt.Errorf("read body: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return unavailable(f.Name(), endpoint, resp.StatusCode, fmt.Errorf("body: %.200s", string(body)))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return unavailable(f.Name(), endpoint, 0, fmt.Errorf("decode: %w", err))
	}
	return nil
}

// ensureCrumb performs the cookie and crumb handshake once. Failure is logged
// and requests continue without a crumb.
func (f *YahooFetcher) ensureCrumb(ctx context.Context) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tried {
		return f.crumb
	}
	f.tried = true

	if req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.CookieURL, nil); err == nil {
		req.Header.Set("User-Agent", "Mozilla/5.0")
		if resp, err := f.Client.Do(req); err == nil {
			resp.Body.Close()
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.BaseURL+"/v1/test/getcrumb", nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	resp, err := f.Client.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("yahoo crumb request failed, continuing without crumb")
		return ""
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || len(body) == 0 {
		log.Warn().Int("status", resp.StatusCode).Msg("yahoo crumb unavailable, continuing without crumb")
		return ""
	}
	f.crumb = strings.TrimSpace(string(body))
	return f.crumb
}

func (f *YahooFetcher) rangeFor(days int) string {
	switch {
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	case days <= 366:
		return "1y"
	case days <= 731:
		return "2y"
	default:
		return "5y"
	}
}

// GetPriceHistory returns daily closes covering the last lookbackDays calendar days.
func (f *YahooFetcher) GetPriceHistory(ctx context.Context, ticker string, lookbackDays int) (model.PriceSeries, error) {
	if lookbackDays <= 0 {
		lookbackDays = 365
	}
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		f.BaseURL, url.PathEscape(f.yahooSymbol(ticker)), f.rangeFor(lookbackDays))

	var chart yahooChart
	if err := f.get(ctx, u, &chart); err != nil {
		return model.PriceSeries{}, err
	}
	if chart.Chart.Error != nil {
		return model.PriceSeries{}, unavailable(f.Name(), "chart", 0, fmt.Errorf("api error: %s", chart.Chart.Error.Description))
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return model.PriceSeries{}, noData(f.Name(), "chart")
	}

	result := chart.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close
	points := make([]model.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) {
			break
		}
		c, ok := ratios.ToFloat(closes[i])
		if !ok {
			continue // skip null bars (holidays etc.)
		}
		points = append(points, model.PricePoint{Time: time.Unix(ts, 0).UTC(), Close: c})
	}
	if len(points) == 0 {
		return model.PriceSeries{}, noData(f.Name(), "chart")
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })

	cutoff := points[len(points)-1].Time.AddDate(0, 0, -lookbackDays)
	start := sort.Search(len(points), func(i int) bool { return !points[i].Time.Before(cutoff) })

	return model.PriceSeries{
		Symbol:    ticker,
		Points:    points[start:],
		FetchedAt: time.Now(),
	}, nil
}

func (f *YahooFetcher) summary(ctx context.Context, ticker string, modules ...string) (map[string]json.RawMessage, error) {
	params := url.Values{}
	params.Set("modules", strings.Join(modules, ","))
	if crumb := f.ensureCrumb(ctx); crumb != "" {
		params.Set("crumb", crumb)
	}
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s",
		f.BaseURL, url.PathEscape(f.yahooSymbol(ticker)), params.Encode())

	var s yahooSummary
	if err := f.get(ctx, u, &s); err != nil {
		return nil, err
	}
	if s.QuoteSummary.Error != nil {
		return nil, unavailable(f.Name(), "quoteSummary", 0, fmt.Errorf("api error: %s", s.QuoteSummary.Error.Description))
	}
	if len(s.QuoteSummary.Result) == 0 {
		return nil, noData(f.Name(), "quoteSummary")
	}
	return s.QuoteSummary.Result[0], nil
}

// GetCompanyInfo flattens the valuation, statistics and financial modules
// into one field map. Earlier modules win on duplicate keys.
func (f *YahooFetcher) GetCompanyInfo(ctx context.Context, ticker string) (model.FieldMap, error) {
	result, err := f.summary(ctx, ticker, infoModules...)
	if err != nil {
		return nil, err
	}
	info := model.FieldMap{}
	for _, name := range infoModules {
		raw, ok := result[name]
		if !ok {
			continue
		}
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			continue
		}
		for k, v := range fields {
			if _, exists := info[k]; exists {
				continue
			}
			if n, ok := ratios.ToFloat(v); ok {
				info[k] = n
			} else if s, ok := v.(string); ok {
				info[k] = s
			}
		}
	}
	if len(info) == 0 {
		return nil, noData(f.Name(), "quoteSummary")
	}
	return info, nil
}

// GetInsiderTransactions returns the insider filings reported for ticker.
func (f *YahooFetcher) GetInsiderTransactions(ctx context.Context, ticker string) ([]model.InsiderTransaction, error) {
	result, err := f.summary(ctx, ticker, "insiderTransactions")
	if err != nil {
		return nil, err
	}
	var module struct {
		Transactions []struct {
			FilerName       string `json:"filerName"`
			Ownership       string `json:"ownership"`
			TransactionText string `json:"transactionText"`
			Value           any    `json:"value"`
		} `json:"transactions"`
	}
	if raw, ok := result["insiderTransactions"]; ok {
		if err := json.Unmarshal(raw, &module); err != nil {
			return nil, unavailable(f.Name(), "insiderTransactions", 0, fmt.Errorf("decode: %w", err))
		}
	}
	if len(module.Transactions) == 0 {
		return nil, noData(f.Name(), "insiderTransactions")
	}

	txs := make([]model.InsiderTransaction, 0, len(module.Transactions))
	for _, t := range module.Transactions {
		tx := model.InsiderTransaction{Name: t.FilerName, Ownership: t.Ownership, Text: t.TransactionText}
		if v, ok := ratios.ToFloat(t.Value); ok {
			tx.Value = model.Some(v)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// GetAnalystRecommendations returns grade changes in chronological order.
func (f *YahooFetcher) GetAnalystRecommendations(ctx context.Context, ticker string) ([]model.Recommendation, error) {
	result, err := f.summary(ctx, ticker, "upgradeDowngradeHistory")
	if err != nil {
		return nil, err
	}
	var module struct {
		History []struct {
			EpochGradeDate int64  `json:"epochGradeDate"`
			Firm           string `json:"firm"`
			ToGrade        string `json:"toGrade"`
		} `json:"history"`
	}
	if raw, ok := result["upgradeDowngradeHistory"]; ok {
		if err := json.Unmarshal(raw, &module); err != nil {
			return nil, unavailable(f.Name(), "upgradeDowngradeHistory", 0, fmt.Errorf("decode: %w", err))
		}
	}
	if len(module.History) == 0 {
		return nil, noData(f.Name(), "upgradeDowngradeHistory")
	}

	recs := make([]model.Recommendation, 0, len(module.History))
	for _, h := range module.History {
		recs = append(recs, model.Recommendation{
			Date:  time.Unix(h.EpochGradeDate, 0).UTC(),
			Firm:  h.Firm,
			Grade: h.ToGrade,
		})
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Date.Before(recs[j].Date) })
	return recs, nil
}
