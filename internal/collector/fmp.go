package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"EquityLens/internal/model"
	"EquityLens/internal/ratios"
	"EquityLens/internal/sentiment"
)

const (
	DefaultFMPBaseURL     = "https://financialmodelingprep.com/api/v3"
	DefaultFMPHoldersPath = "institutional-ownership"
)

// FMPOptions configures an FMPFetcher. The API key is passed here and nowhere else.
type FMPOptions struct {
	BaseURL     string
	APIKey      string
	HoldersPath string
	Timeout     time.Duration
	Proxy       string
	RateLimit   int // requests per second
}

// FMPFetcher implements FundamentalsProvider using the Financial Modeling Prep REST API.
type FMPFetcher struct {
	BaseURL     string
	APIKey      string
	HoldersPath string
	Client      *http.Client

	limiter *rate.Limiter
}

// NewFMPFetcher creates a new fetcher with optional proxy support.
func NewFMPFetcher(opts FMPOptions) *FMPFetcher {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultFMPBaseURL
	}
	if opts.HoldersPath == "" {
		opts.HoldersPath = DefaultFMPHoldersPath
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5
	}
	return &FMPFetcher{
		BaseURL:     strings.TrimRight(opts.BaseURL, "/"),
		APIKey:      opts.APIKey,
		HoldersPath: strings.Trim(opts.HoldersPath, "/"),
		Client:      newHTTPClient(opts.Timeout, opts.Proxy),
		limiter:     rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateLimit),
	}
}

func (f *FMPFetcher) Name() string { return "fmp" }

// fmpSurprise is the expected JSON shape of one earnings surprise.
type fmpSurprise struct {
	Date               string `json:"date"`
	ActualEarning      any    `json:"actualEarningResult"`
	EstimatedEarning   any    `json:"estimatedEarning"`
	PercentageSurprise any    `json:"percentageSurprise"`
}

// fmpHolder is the expected JSON shape of one institutional holder.
type fmpHolder struct {
	Holder string `json:"holder"`
	Shares any    `json:"shares"`
}

// fetchList GETs path and decodes a JSON array into out. A non-200 status is
// ProviderUnavailable; an empty or non-list body is ErrNoData.
func (f *FMPFetcher) fetchList(ctx context.Context, path, ticker string, out interface{}) error {
	endpoint := fmt.Sprintf("%s/%s/%s?apikey=%s", f.BaseURL, path, url.PathEscape(ticker), url.QueryEscape(f.APIKey))
	if err := f.limiter.Wait(ctx); err != nil {
		return unavailable(f.Name(), path, 0, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return unavailable(f.Name(), path, 0, err)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return unavailable(f.Name(), path, 0, redact(err, f.APIKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return unavailable(f.Name(), path, 0, fmt.Errorf("read body: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return unavailable(f.Name(), path, resp.StatusCode, fmt.Errorf("body: %.200s", string(body)))
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil || len(items) == 0 {
		return noData(f.Name(), path)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return unavailable(f.Name(), path, 0, fmt.Errorf("decode: %w", err))
	}
	return nil
}

// GetEarningsSurprises returns the reported quarters for ticker.
func (f *FMPFetcher) GetEarningsSurprises(ctx context.Context, ticker string) ([]model.EarningsSurprise, error) {
	var raw []fmpSurprise
	if err := f.fetchList(ctx, "earnings-surprises", ticker, &raw); err != nil {
		return nil, err
	}
	out := make([]model.EarningsSurprise, 0, len(raw))
	for _, r := range raw {
		s := model.EarningsSurprise{}
		if d, err := time.Parse("2006-01-02", r.Date); err == nil {
			s.Date = d
		}
		if v, ok := ratios.ToFloat(r.ActualEarning); ok {
			s.Actual = model.Some(v)
		}
		if v, ok := ratios.ToFloat(r.EstimatedEarning); ok {
			s.Estimate = model.Some(v)
		}
		if v, ok := ratios.ToFloat(r.PercentageSurprise); ok {
			s.SurprisePct = model.Some(v)
		} else {
			s.SurprisePct = sentiment.SurprisePercent(s.Actual, s.Estimate)
		}
		out = append(out, s)
	}
	return out, nil
}

// GetInstitutionalHolders returns the holder list for ticker.
func (f *FMPFetcher) GetInstitutionalHolders(ctx context.Context, ticker string) ([]model.HolderRecord, error) {
	var raw []fmpHolder
	if err := f.fetchList(ctx, f.HoldersPath, ticker, &raw); err != nil {
		return nil, err
	}
	out := make([]model.HolderRecord, 0, len(raw))
	for _, r := range raw {
		shares, _ := ratios.ToFloat(r.Shares)
		out = append(out, model.HolderRecord{Holder: r.Holder, Shares: int64(shares)})
	}
	return out, nil
}

// redact strips the API key from transport errors, which embed the URL.
func redact(err error, key string) error {
	if key == "" {
		return err
	}
	return fmt.Errorf("%s", strings.ReplaceAll(err.Error(), url.QueryEscape(key), "***"))
}
