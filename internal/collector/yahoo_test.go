package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EquityLens/internal/model"
)

const summaryBody = `{"quoteSummary":{"result":[{
	"summaryDetail":{"trailingPE":{"raw":31.2,"fmt":"31.20"},"priceToSalesTrailing12Months":{"raw":8.1}},
	"defaultKeyStatistics":{"priceToBook":{"raw":47.5},"enterpriseToEbitda":{"raw":24.3},"heldPercentInstitutions":{"raw":0.62},"profitMargins":{"raw":0.24}},
	"financialData":{"returnOnEquity":{"raw":1.5},"targetMeanPrice":{"raw":240.0},"profitMargins":{"raw":0.99},"recommendationKey":"buy"},
	"insiderTransactions":{"transactions":[
		{"filerName":"COOK TIMOTHY","ownership":"D","value":{"raw":5000}},
		{"filerName":"LEVINSON ARTHUR","ownership":"I"}
	]},
	"upgradeDowngradeHistory":{"history":[
		{"epochGradeDate":1735689600,"firm":"B","toGrade":"Buy"},
		{"epochGradeDate":1704067200,"firm":"A","toGrade":"Hold"}
	]}
}],"error":null}}`

func newYahooServer(t *testing.T, chart string) *YahooFetcher {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/cookie", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "A3", Value: "x"})
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/v1/test/getcrumb", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("crumb123"))
	})
	mux.HandleFunc("/v8/finance/chart/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chart))
	})
	mux.HandleFunc("/v10/finance/quoteSummary/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("crumb") != "crumb123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if strings.HasSuffix(r.URL.Path, "/NOPE") {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"quoteSummary":{"result":null,"error":{"code":"Not Found","description":"Quote not found"}}}`))
			return
		}
		w.Write([]byte(summaryBody))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewYahooFetcher(YahooOptions{BaseURL: srv.URL, CookieURL: srv.URL + "/cookie", RateLimit: 100})
}

func chartJSON(start time.Time, closes ...any) string {
	ts := make([]string, len(closes))
	cs := make([]string, len(closes))
	for i, c := range closes {
		ts[i] = fmt.Sprint(start.AddDate(0, 0, i).Unix())
		if c == nil {
			cs[i] = "null"
		} else {
			cs[i] = fmt.Sprint(c)
		}
	}
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%s],"indicators":{"quote":[{"close":[%s]}]}}],"error":null}}`,
		strings.Join(ts, ","), strings.Join(cs, ","))
}

func TestYahoo_PriceHistory(t *testing.T) {
	start := time.Date(2025, 3, 3, 14, 30, 0, 0, time.UTC)
	f := newYahooServer(t, chartJSON(start, 100.5, nil, 101.0, 99.25))

	s, err := f.GetPriceHistory(context.Background(), "AAPL", 365)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", s.Symbol)
	assert.Equal(t, []float64{100.5, 101.0, 99.25}, s.Closes())
}

func TestYahoo_PriceHistoryKeepsZeroCloses(t *testing.T) {
	start := time.Date(2025, 3, 3, 14, 30, 0, 0, time.UTC)
	f := newYahooServer(t, chartJSON(start, 0.5, 0, nil, 0.25))

	s, err := f.GetPriceHistory(context.Background(), "PENNY", 365)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0, 0.25}, s.Closes())
}

func TestYahoo_PriceHistoryTrimsToLookback(t *testing.T) {
	start := time.Date(2025, 3, 3, 14, 30, 0, 0, time.UTC)
	f := newYahooServer(t, chartJSON(start, 1, 2, 3, 4, 5, 6))

	s, err := f.GetPriceHistory(context.Background(), "AAPL", 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6}, s.Closes())
}

func TestYahoo_PriceHistoryErrors(t *testing.T) {
	f := newYahooServer(t, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	_, err := f.GetPriceHistory(context.Background(), "ZZZZ", 365)
	assert.ErrorIs(t, err, ErrProviderUnavailable)

	f = newYahooServer(t, `{"chart":{"result":[{"timestamp":[],"indicators":{"quote":[]}}],"error":null}}`)
	_, err = f.GetPriceHistory(context.Background(), "ZZZZ", 365)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestYahoo_CompanyInfo(t *testing.T) {
	f := newYahooServer(t, "")
	info, err := f.GetCompanyInfo(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, 31.2, info["trailingPE"])
	assert.Equal(t, 47.5, info["priceToBook"])
	assert.Equal(t, 0.62, info["heldPercentInstitutions"])
	// summaryDetail, defaultKeyStatistics, financialData: first module wins
	assert.Equal(t, 0.24, info["profitMargins"])
	assert.Equal(t, "buy", info["recommendationKey"])
}

func TestYahoo_CompanyInfoNotFound(t *testing.T) {
	f := newYahooServer(t, "")
	_, err := f.GetCompanyInfo(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestYahoo_InsidersAndRecommendations(t *testing.T) {
	f := newYahooServer(t, "")
	txs, err := f.GetInsiderTransactions(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, model.InsiderTransaction{Name: "COOK TIMOTHY", Ownership: "D", Value: model.Some(5000)}, txs[0])
	assert.False(t, txs[1].Value.Ok())

	recs, err := f.GetAnalystRecommendations(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Hold", recs[0].Grade)
	assert.Equal(t, "Buy", recs[1].Grade)
}

func TestYahoo_SymbolMap(t *testing.T) {
	f := NewYahooFetcher(YahooOptions{})
	assert.Equal(t, "^GSPC", f.yahooSymbol("spx"))
	assert.Equal(t, "AAPL", f.yahooSymbol("AAPL"))
	assert.Equal(t, DefaultYahooBaseURL, f.BaseURL)
}
