package market

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbuddy/finbot/internal/common"
	"github.com/finbuddy/finbot/internal/models"
)

// fakeQuoteClient returns canned quote maps and counts calls
type fakeQuoteClient struct {
	quotes map[string]*models.Quote
	err    error
	calls  int
}

func (f *fakeQuoteClient) GetQuotes(ctx context.Context, symbols []string) (map[string]*models.Quote, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.quotes, nil
}

func testConfig() common.MarketConfig {
	return common.MarketConfig{
		CacheTTL: "5m",
		Indices: map[string]string{
			"NIFTY 50":  "^NSEI",
			"INDIA VIX": "^INDIAVIX",
		},
		Sectors:      map[string]string{"NIFTY BANK": "^NSEBANK"},
		Global:       map[string]string{"DOW JONES": "^DJI"},
		Commodities:  map[string]string{"GOLD": "GC=F"},
		Currencies:   map[string]string{"USD/INR": "INR=X"},
		Constituents: []string{"AAA.NS", "BBB.NS", "CCC.NS", "DDD.NS", "EEE.NS"},
	}
}

func quote(symbol string, price, changePct float64) *models.Quote {
	return &models.Quote{
		Symbol:    symbol,
		Price:     price,
		Change:    price * changePct / 100,
		ChangePct: changePct,
		Timestamp: time.Now(),
	}
}

func testQuotes() map[string]*models.Quote {
	return map[string]*models.Quote{
		"^NSEI":     quote("^NSEI", 24850.5, 0.49),
		"^INDIAVIX": quote("^INDIAVIX", 13.2, -2.1),
		"^NSEBANK":  quote("^NSEBANK", 51200.0, 0.8),
		"^DJI":      quote("^DJI", 42000.0, -0.3),
		"GC=F":      quote("GC=F", 2650.0, 0.1),
		"INR=X":     quote("INR=X", 84.2, 0.05),
		"AAA.NS":    quote("AAA.NS", 100, 3.2),
		"BBB.NS":    quote("BBB.NS", 200, 1.5),
		"CCC.NS":    quote("CCC.NS", 300, 0.05),
		"DDD.NS":    quote("DDD.NS", 400, -0.9),
		"EEE.NS":    quote("EEE.NS", 500, -2.4),
	}
}

func TestOverviewAssemblesSections(t *testing.T) {
	client := &fakeQuoteClient{quotes: testQuotes()}
	svc := NewService(client, testConfig(), common.NewSilentLogger())

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	require.Len(t, overview.Indices, 2)
	// Names sort alphabetically within a section
	assert.Equal(t, "INDIA VIX", overview.Indices[0].Name)
	assert.Equal(t, "NIFTY 50", overview.Indices[1].Name)
	require.NotNil(t, overview.Indices[1].Quote)
	assert.Equal(t, 24850.5, overview.Indices[1].Quote.Price)

	require.Len(t, overview.Sectors, 1)
	require.Len(t, overview.Global, 1)
	require.Len(t, overview.Commodities, 1)
	require.Len(t, overview.Currencies, 1)
}

func TestOverviewMissingSymbolGivesNilQuote(t *testing.T) {
	quotes := testQuotes()
	delete(quotes, "^NSEBANK")
	client := &fakeQuoteClient{quotes: quotes}
	svc := NewService(client, testConfig(), common.NewSilentLogger())

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	require.Len(t, overview.Sectors, 1)
	assert.Equal(t, "NIFTY BANK", overview.Sectors[0].Name)
	assert.Nil(t, overview.Sectors[0].Quote)
}

func TestOverviewVIXClassification(t *testing.T) {
	tests := []struct {
		name     string
		vix      float64
		expected string
	}{
		{"low band", 12.0, "LOW"},
		{"moderate band", 18.5, "MODERATE"},
		{"high band", 31.0, "HIGH"},
		{"low boundary goes moderate", 15.0, "MODERATE"},
		{"moderate boundary goes high", 25.0, "HIGH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quotes := testQuotes()
			quotes["^INDIAVIX"] = quote("^INDIAVIX", tt.vix, 0)
			client := &fakeQuoteClient{quotes: quotes}
			svc := NewService(client, testConfig(), common.NewSilentLogger())

			overview, err := svc.Overview(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, overview.VIXLevel)
		})
	}
}

func TestOverviewMoversAndBreadth(t *testing.T) {
	client := &fakeQuoteClient{quotes: testQuotes()}
	svc := NewService(client, testConfig(), common.NewSilentLogger())

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	// Constituents: +3.2, +1.5, +0.05, -0.9, -2.4
	require.Len(t, overview.Gainers, 3)
	assert.Equal(t, "AAA", overview.Gainers[0].Name)
	assert.Equal(t, "BBB", overview.Gainers[1].Name)

	require.Len(t, overview.Losers, 3)
	assert.Equal(t, "EEE", overview.Losers[0].Name)
	assert.Equal(t, "DDD", overview.Losers[1].Name)

	// ±0.1% threshold: 0.05 counts as unchanged
	assert.Equal(t, 2, overview.Breadth.Advances)
	assert.Equal(t, 2, overview.Breadth.Declines)
	assert.Equal(t, 1, overview.Breadth.Unchanged)
}

func TestOverviewServedFromCache(t *testing.T) {
	client := &fakeQuoteClient{quotes: testQuotes()}
	svc := NewService(client, testConfig(), common.NewSilentLogger())

	current := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return current }

	_, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)

	// Within the TTL the cached snapshot is reused
	current = current.Add(2 * time.Minute)
	_, err = svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)

	// Past the TTL a fresh fetch happens
	current = current.Add(4 * time.Minute)
	_, err = svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)
}

func TestRefreshForcesFetch(t *testing.T) {
	client := &fakeQuoteClient{quotes: testQuotes()}
	svc := NewService(client, testConfig(), common.NewSilentLogger())

	require.NoError(t, svc.Refresh(context.Background()))
	require.NoError(t, svc.Refresh(context.Background()))
	assert.Equal(t, 2, client.calls)
}

func TestOverviewServesStaleSnapshotOnError(t *testing.T) {
	client := &fakeQuoteClient{quotes: testQuotes()}
	svc := NewService(client, testConfig(), common.NewSilentLogger())

	current := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return current }

	first, err := svc.Overview(context.Background())
	require.NoError(t, err)

	// Provider starts failing after the cache expires
	client.err = errors.New("provider down")
	current = current.Add(10 * time.Minute)

	second, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.FetchedAt, second.FetchedAt, "stale snapshot should be served")
}

func TestOverviewErrorWithEmptyCache(t *testing.T) {
	client := &fakeQuoteClient{err: errors.New("provider down")}
	svc := NewService(client, testConfig(), common.NewSilentLogger())

	_, err := svc.Overview(context.Background())
	require.Error(t, err)
}
