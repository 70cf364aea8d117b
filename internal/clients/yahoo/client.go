// Package yahoo provides a client for the Yahoo Finance quoteSummary API,
// the per-ticker fundamentals provider.
package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/finbuddy/finbot/internal/common"
	"github.com/finbuddy/finbot/internal/interfaces"
	"github.com/finbuddy/finbot/internal/models"
)

const (
	DefaultBaseURL = "https://query2.finance.yahoo.com"
	DefaultTimeout = 30 * time.Second

	maxPeriods = 4
)

// ErrTickerNotFound indicates the provider has no data for the ticker
var ErrTickerNotFound = errors.New("ticker not found")

// Client implements the FundamentalsClient interface
type Client struct {
	client *resty.Client
	logger *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.client.SetBaseURL(baseURL)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.client.SetTimeout(timeout)
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Yahoo Finance client
func NewClient(opts ...ClientOption) *Client {
	client := resty.New()
	client.SetBaseURL(DefaultBaseURL)
	client.SetTimeout(DefaultTimeout)
	// Yahoo rejects requests without a browser-like user agent
	client.SetHeader("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	c := &Client{
		client: client,
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// quoteSummary fetches the requested modules for a ticker
func (c *Client) quoteSummary(ctx context.Context, ticker string, modules string) (*summaryResult, error) {
	c.logger.Debug().Str("ticker", ticker).Str("modules", modules).Msg("Yahoo quoteSummary request")

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"modules": modules,
		}).
		Get(fmt.Sprintf("/v10/finance/quoteSummary/%s", ticker))
	if err != nil {
		return nil, fmt.Errorf("quoteSummary request for %s: %w", ticker, err)
	}

	if resp.StatusCode() == 404 {
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("quoteSummary request for %s: status %d", ticker, resp.StatusCode())
	}

	var envelope struct {
		QuoteSummary struct {
			Result []summaryResult `json:"result"`
			Error  *struct {
				Code        string `json:"code"`
				Description string `json:"description"`
			} `json:"error"`
		} `json:"quoteSummary"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("decode quoteSummary for %s: %w", ticker, err)
	}

	if envelope.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("%w: %s (%s)", ErrTickerNotFound, ticker, envelope.QuoteSummary.Error.Code)
	}
	if len(envelope.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}

	return &envelope.QuoteSummary.Result[0], nil
}

// GetOverview retrieves profile, price and key statistics
func (c *Client) GetOverview(ctx context.Context, ticker string) (*models.StockOverview, error) {
	result, err := c.quoteSummary(ctx, ticker, "assetProfile,price,summaryDetail,defaultKeyStatistics")
	if err != nil {
		return nil, err
	}

	if result.Price == nil || result.Price.LongName == "" {
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}

	overview := &models.StockOverview{
		Ticker:   ticker,
		Name:     result.Price.LongName,
		Price:    result.Price.RegularMarketPrice.Value(),
		Currency: result.Price.Currency,
	}
	if overview.Currency == "" {
		overview.Currency = "INR"
	}

	overview.MarketCap = result.Price.MarketCap.Value()

	if sd := result.SummaryDetail; sd != nil {
		overview.Low52Week = sd.FiftyTwoWeekLow.Value()
		overview.High52Week = sd.FiftyTwoWeekHigh.Value()
		overview.PE = sd.TrailingPE.Raw
		overview.AvgVolume = int64(sd.AverageVolume.Value())
	}
	if ks := result.DefaultKeyStatistics; ks != nil {
		overview.PB = ks.PriceToBook.Raw
	}
	if ap := result.AssetProfile; ap != nil {
		overview.Sector = ap.Sector
		overview.Industry = ap.Industry
		overview.Country = ap.Country
		overview.Website = ap.Website
		overview.BusinessSummary = ap.LongBusinessSummary
	}

	return overview, nil
}

// GetFinancials retrieves income statements and key ratios
func (c *Client) GetFinancials(ctx context.Context, ticker string) (*models.FinancialReport, error) {
	result, err := c.quoteSummary(ctx, ticker,
		"price,incomeStatementHistory,incomeStatementHistoryQuarterly,financialData,defaultKeyStatistics")
	if err != nil {
		return nil, err
	}

	report := &models.FinancialReport{
		Ticker: ticker,
	}
	if result.Price != nil {
		report.Name = result.Price.LongName
		report.Currency = result.Price.Currency
	}
	if report.Name == "" {
		report.Name = ticker
	}

	if h := result.IncomeStatementHistory; h != nil {
		report.Annual = buildIncomeStatement(h.Statements, "2006")
	}
	if h := result.IncomeStatementHistoryQuarterly; h != nil {
		report.Quarterly = buildIncomeStatement(h.Statements, "2006-01-02")
	}

	if fd := result.FinancialData; fd != nil {
		report.Ratios.ReturnOnEquity = fd.ReturnOnEquity.Raw
		report.Ratios.ReturnOnAssets = fd.ReturnOnAssets.Raw
		report.Ratios.ProfitMargin = fd.ProfitMargins.Raw
		report.Ratios.DebtToEquity = fd.DebtToEquity.Raw
		report.Ratios.CurrentRatio = fd.CurrentRatio.Raw
	}
	if ks := result.DefaultKeyStatistics; ks != nil {
		report.Ratios.HeldByInsiders = ks.HeldPercentInsiders.Raw
		report.Ratios.HeldByInstitutions = ks.HeldPercentInstitutions.Raw
	}

	return report, nil
}

// GetStatements retrieves the balance sheet and cash-flow statement
func (c *Client) GetStatements(ctx context.Context, ticker string) (*models.StatementSet, error) {
	result, err := c.quoteSummary(ctx, ticker, "price,balanceSheetHistory,cashflowStatementHistory")
	if err != nil {
		return nil, err
	}

	set := &models.StatementSet{
		Ticker: ticker,
	}
	if result.Price != nil {
		set.Name = result.Price.LongName
		set.Currency = result.Price.Currency
	}
	if set.Name == "" {
		set.Name = ticker
	}

	if h := result.BalanceSheetHistory; h != nil {
		set.BalanceSheet = buildBalanceSheet(h.Statements)
	}
	if h := result.CashflowStatementHistory; h != nil {
		set.CashFlow = buildCashFlow(h.Statements)
	}

	return set, nil
}

// buildIncomeStatement converts raw income statements into a Statement,
// newest period first, keeping at most maxPeriods columns.
func buildIncomeStatement(raw []incomeStatement, periodFormat string) models.Statement {
	if len(raw) > maxPeriods {
		raw = raw[:maxPeriods]
	}

	stmt := models.Statement{
		Rows: []models.StatementRow{
			{Label: "Total Revenue"},
			{Label: "Gross Profit"},
			{Label: "Net Income"},
			{Label: "EBIT"},
		},
	}

	for _, s := range raw {
		stmt.Periods = append(stmt.Periods, s.EndDate.Format(periodFormat))
		stmt.Rows[0].Values = append(stmt.Rows[0].Values, s.TotalRevenue.Raw)
		stmt.Rows[1].Values = append(stmt.Rows[1].Values, s.GrossProfit.Raw)
		stmt.Rows[2].Values = append(stmt.Rows[2].Values, s.NetIncome.Raw)
		stmt.Rows[3].Values = append(stmt.Rows[3].Values, s.EBIT.Raw)
	}

	return stmt
}

// buildBalanceSheet converts raw balance sheets into a Statement
func buildBalanceSheet(raw []balanceSheetStatement) models.Statement {
	if len(raw) > maxPeriods {
		raw = raw[:maxPeriods]
	}

	stmt := models.Statement{
		Rows: []models.StatementRow{
			{Label: "Total Assets"},
			{Label: "Current Assets"},
			{Label: "Cash & Equivalents"},
			{Label: "Total Liabilities"},
			{Label: "Current Liabilities"},
			{Label: "Stockholders Equity"},
			{Label: "Long Term Debt"},
			{Label: "Short Term Debt"},
		},
	}

	for _, s := range raw {
		stmt.Periods = append(stmt.Periods, s.EndDate.Format("2006"))
		stmt.Rows[0].Values = append(stmt.Rows[0].Values, s.TotalAssets.Raw)
		stmt.Rows[1].Values = append(stmt.Rows[1].Values, s.TotalCurrentAssets.Raw)
		stmt.Rows[2].Values = append(stmt.Rows[2].Values, s.Cash.Raw)
		stmt.Rows[3].Values = append(stmt.Rows[3].Values, s.TotalLiab.Raw)
		stmt.Rows[4].Values = append(stmt.Rows[4].Values, s.TotalCurrentLiabilities.Raw)
		stmt.Rows[5].Values = append(stmt.Rows[5].Values, s.TotalStockholderEquity.Raw)
		stmt.Rows[6].Values = append(stmt.Rows[6].Values, s.LongTermDebt.Raw)
		stmt.Rows[7].Values = append(stmt.Rows[7].Values, s.ShortLongTermDebt.Raw)
	}

	return stmt
}

// buildCashFlow converts raw cash-flow statements into a Statement
func buildCashFlow(raw []cashflowStatement) models.Statement {
	if len(raw) > maxPeriods {
		raw = raw[:maxPeriods]
	}

	stmt := models.Statement{
		Rows: []models.StatementRow{
			{Label: "Operating Cash Flow"},
			{Label: "Investing Cash Flow"},
			{Label: "Financing Cash Flow"},
			{Label: "Capital Expenditure"},
			{Label: "Change In Cash"},
		},
	}

	for _, s := range raw {
		stmt.Periods = append(stmt.Periods, s.EndDate.Format("2006"))
		stmt.Rows[0].Values = append(stmt.Rows[0].Values, s.TotalCashFromOperatingActivities.Raw)
		stmt.Rows[1].Values = append(stmt.Rows[1].Values, s.TotalCashflowsFromInvestingActivities.Raw)
		stmt.Rows[2].Values = append(stmt.Rows[2].Values, s.TotalCashFromFinancingActivities.Raw)
		stmt.Rows[3].Values = append(stmt.Rows[3].Values, s.CapitalExpenditures.Raw)
		stmt.Rows[4].Values = append(stmt.Rows[4].Values, s.ChangeInCash.Raw)
	}

	return stmt
}

// Ensure Client implements FundamentalsClient
var _ interfaces.FundamentalsClient = (*Client)(nil)
