package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbuddy/finbot/internal/common"
	"github.com/finbuddy/finbot/internal/interfaces"
	"github.com/finbuddy/finbot/internal/models"
)

// fakeFundamentals serves canned fundamentals and records tickers
type fakeFundamentals struct {
	overview   *models.StockOverview
	financials *models.FinancialReport
	statements *models.StatementSet
	err        error
	lastTicker string
}

func (f *fakeFundamentals) GetOverview(ctx context.Context, ticker string) (*models.StockOverview, error) {
	f.lastTicker = ticker
	if f.err != nil {
		return nil, f.err
	}
	return f.overview, nil
}

func (f *fakeFundamentals) GetFinancials(ctx context.Context, ticker string) (*models.FinancialReport, error) {
	f.lastTicker = ticker
	if f.err != nil {
		return nil, f.err
	}
	return f.financials, nil
}

func (f *fakeFundamentals) GetStatements(ctx context.Context, ticker string) (*models.StatementSet, error) {
	f.lastTicker = ticker
	if f.err != nil {
		return nil, f.err
	}
	return f.statements, nil
}

// fakeGemini echoes a fixed reply and records the prompt
type fakeGemini struct {
	reply      string
	err        error
	lastPrompt string
}

func (f *fakeGemini) GenerateContent(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeGemini) StartChat(ctx context.Context, systemPrompt string) (interfaces.ChatSession, error) {
	return nil, errors.New("not implemented")
}

func testOverview() *models.StockOverview {
	pe := 24.5
	return &models.StockOverview{
		Ticker:    "RELIANCE.NS",
		Name:      "Reliance Industries Limited",
		Price:     2456.7,
		Currency:  "INR",
		MarketCap: 16_600_000_000_000,
		PE:        &pe,
		Sector:    "Energy",
	}
}

func TestNormalizeTicker(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"reliance", "RELIANCE.NS"},
		{"  tcs  ", "TCS.NS"},
		{"INFY.NS", "INFY.NS"},
		{"AAPL.MX", "AAPL.MX"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeTicker(tt.raw), "NormalizeTicker(%q)", tt.raw)
	}
}

func TestAnalyzeOverview(t *testing.T) {
	fundamentals := &fakeFundamentals{overview: testOverview()}
	gemini := &fakeGemini{reply: "Solid large cap."}
	svc := NewService(fundamentals, gemini, common.NewSilentLogger())

	overview, analysis, err := svc.AnalyzeOverview(context.Background(), "reliance")
	require.NoError(t, err)

	assert.Equal(t, "RELIANCE.NS", fundamentals.lastTicker, "ticker should be normalized before the fetch")
	assert.Equal(t, "Reliance Industries Limited", overview.Name)
	assert.Equal(t, "Solid large cap.", analysis)

	// The prompt carries the formatted snapshot
	assert.Contains(t, gemini.lastPrompt, "Reliance Industries Limited")
	assert.Contains(t, gemini.lastPrompt, "1660000.00 Cr")
}

func TestAnalyzeOverviewEmptyTicker(t *testing.T) {
	svc := NewService(&fakeFundamentals{}, &fakeGemini{}, common.NewSilentLogger())

	_, _, err := svc.AnalyzeOverview(context.Background(), "   ")
	require.Error(t, err)
}

func TestAnalyzeOverviewFetchError(t *testing.T) {
	sentinel := errors.New("provider down")
	fundamentals := &fakeFundamentals{err: sentinel}
	svc := NewService(fundamentals, &fakeGemini{}, common.NewSilentLogger())

	_, _, err := svc.AnalyzeOverview(context.Background(), "TCS")
	require.ErrorIs(t, err, sentinel)
}

func TestAnalyzeFinancials(t *testing.T) {
	roe := 0.18
	revenue := 9_000_000_000.0
	fundamentals := &fakeFundamentals{
		financials: &models.FinancialReport{
			Ticker:   "TCS.NS",
			Name:     "Tata Consultancy Services",
			Currency: "INR",
			Annual: models.Statement{
				Periods: []string{"2025"},
				Rows: []models.StatementRow{
					{Label: "Total Revenue", Values: []*float64{&revenue}},
				},
			},
			Ratios: models.Ratios{ReturnOnEquity: &roe},
		},
	}
	gemini := &fakeGemini{reply: "Strong margins."}
	svc := NewService(fundamentals, gemini, common.NewSilentLogger())

	analysis, err := svc.AnalyzeFinancials(context.Background(), "TCS.NS", "Tata Consultancy Services")
	require.NoError(t, err)
	assert.Equal(t, "Strong margins.", analysis)

	assert.Contains(t, gemini.lastPrompt, "Total Revenue")
	assert.Contains(t, gemini.lastPrompt, "900.00 Cr")
	assert.Contains(t, gemini.lastPrompt, "18.00%")
}

func TestAnalyzeFinancialsUsesFallbackName(t *testing.T) {
	fundamentals := &fakeFundamentals{
		financials: &models.FinancialReport{Ticker: "TCS.NS", Name: "TCS.NS"},
	}
	gemini := &fakeGemini{reply: "ok"}
	svc := NewService(fundamentals, gemini, common.NewSilentLogger())

	_, err := svc.AnalyzeFinancials(context.Background(), "TCS.NS", "Tata Consultancy Services")
	require.NoError(t, err)
	assert.Contains(t, gemini.lastPrompt, "Tata Consultancy Services")
}

func TestAnalyzeStatements(t *testing.T) {
	assets := 50_000_000_000.0
	fundamentals := &fakeFundamentals{
		statements: &models.StatementSet{
			Ticker:   "TCS.NS",
			Name:     "Tata Consultancy Services",
			Currency: "INR",
			BalanceSheet: models.Statement{
				Periods: []string{"2025"},
				Rows: []models.StatementRow{
					{Label: "Total Assets", Values: []*float64{&assets}},
				},
			},
		},
	}
	gemini := &fakeGemini{reply: "Healthy balance sheet."}
	svc := NewService(fundamentals, gemini, common.NewSilentLogger())

	analysis, err := svc.AnalyzeStatements(context.Background(), "TCS.NS", "Tata Consultancy Services")
	require.NoError(t, err)
	assert.Equal(t, "Healthy balance sheet.", analysis)

	assert.Contains(t, gemini.lastPrompt, "Total Assets")
	assert.Contains(t, gemini.lastPrompt, "(no data available)", "missing cash flow should render as empty")
}

func TestSummarize(t *testing.T) {
	gemini := &fakeGemini{reply: "Buy on dips."}
	svc := NewService(&fakeFundamentals{}, gemini, common.NewSilentLogger())

	analysis, err := svc.Summarize(context.Background(), testOverview())
	require.NoError(t, err)
	assert.Equal(t, "Buy on dips.", analysis)
	assert.Contains(t, gemini.lastPrompt, "RELIANCE.NS")
}

func TestSummarizeNilOverview(t *testing.T) {
	svc := NewService(&fakeFundamentals{}, &fakeGemini{}, common.NewSilentLogger())

	_, err := svc.Summarize(context.Background(), nil)
	require.Error(t, err)
}

func TestAnalysisErrorsWrapTicker(t *testing.T) {
	gemini := &fakeGemini{err: errors.New("model overloaded")}
	fundamentals := &fakeFundamentals{overview: testOverview()}
	svc := NewService(fundamentals, gemini, common.NewSilentLogger())

	_, _, err := svc.AnalyzeOverview(context.Background(), "RELIANCE.NS")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "RELIANCE.NS"))
}
