package yahoo

import (
	"encoding/json"
	"time"
)

// rawValue handles Yahoo's {"raw": n, "fmt": "..."} number wrappers.
// An absent or empty wrapper leaves Raw nil.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

// Value returns the raw number, or zero when absent
func (v rawValue) Value() float64 {
	if v.Raw == nil {
		return 0
	}
	return *v.Raw
}

// epochDate handles Yahoo's {"raw": epochSeconds, "fmt": "..."} dates
type epochDate struct {
	ts time.Time
}

func (d *epochDate) UnmarshalJSON(data []byte) error {
	var wrapper struct {
		Raw int64  `json:"raw"`
		Fmt string `json:"fmt"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}
	d.ts = time.Unix(wrapper.Raw, 0).UTC()
	return nil
}

// Format renders the date using the given layout
func (d epochDate) Format(layout string) string {
	if d.ts.IsZero() {
		return "N/A"
	}
	return d.ts.Format(layout)
}

// summaryResult holds the quoteSummary modules FinBot reads
type summaryResult struct {
	AssetProfile *struct {
		Sector              string `json:"sector"`
		Industry            string `json:"industry"`
		Country             string `json:"country"`
		Website             string `json:"website"`
		LongBusinessSummary string `json:"longBusinessSummary"`
	} `json:"assetProfile"`
	Price *struct {
		LongName           string   `json:"longName"`
		Currency           string   `json:"currency"`
		RegularMarketPrice rawValue `json:"regularMarketPrice"`
		MarketCap          rawValue `json:"marketCap"`
	} `json:"price"`
	SummaryDetail *struct {
		FiftyTwoWeekLow  rawValue `json:"fiftyTwoWeekLow"`
		FiftyTwoWeekHigh rawValue `json:"fiftyTwoWeekHigh"`
		TrailingPE       rawValue `json:"trailingPE"`
		AverageVolume    rawValue `json:"averageVolume"`
	} `json:"summaryDetail"`
	DefaultKeyStatistics *struct {
		PriceToBook             rawValue `json:"priceToBook"`
		HeldPercentInsiders     rawValue `json:"heldPercentInsiders"`
		HeldPercentInstitutions rawValue `json:"heldPercentInstitutions"`
	} `json:"defaultKeyStatistics"`
	FinancialData *struct {
		ReturnOnEquity rawValue `json:"returnOnEquity"`
		ReturnOnAssets rawValue `json:"returnOnAssets"`
		ProfitMargins  rawValue `json:"profitMargins"`
		DebtToEquity   rawValue `json:"debtToEquity"`
		CurrentRatio   rawValue `json:"currentRatio"`
	} `json:"financialData"`
	IncomeStatementHistory *struct {
		Statements []incomeStatement `json:"incomeStatementHistory"`
	} `json:"incomeStatementHistory"`
	IncomeStatementHistoryQuarterly *struct {
		Statements []incomeStatement `json:"incomeStatementHistory"`
	} `json:"incomeStatementHistoryQuarterly"`
	BalanceSheetHistory *struct {
		Statements []balanceSheetStatement `json:"balanceSheetStatements"`
	} `json:"balanceSheetHistory"`
	CashflowStatementHistory *struct {
		Statements []cashflowStatement `json:"cashflowStatements"`
	} `json:"cashflowStatementHistory"`
}

type incomeStatement struct {
	EndDate      epochDate `json:"endDate"`
	TotalRevenue rawValue  `json:"totalRevenue"`
	GrossProfit  rawValue  `json:"grossProfit"`
	NetIncome    rawValue  `json:"netIncome"`
	EBIT         rawValue  `json:"ebit"`
}

type balanceSheetStatement struct {
	EndDate                 epochDate `json:"endDate"`
	TotalAssets             rawValue  `json:"totalAssets"`
	TotalCurrentAssets      rawValue  `json:"totalCurrentAssets"`
	Cash                    rawValue  `json:"cash"`
	TotalLiab               rawValue  `json:"totalLiab"`
	TotalCurrentLiabilities rawValue  `json:"totalCurrentLiabilities"`
	TotalStockholderEquity  rawValue  `json:"totalStockholderEquity"`
	LongTermDebt            rawValue  `json:"longTermDebt"`
	ShortLongTermDebt       rawValue  `json:"shortLongTermDebt"`
}

type cashflowStatement struct {
	EndDate                               epochDate `json:"endDate"`
	TotalCashFromOperatingActivities      rawValue  `json:"totalCashFromOperatingActivities"`
	TotalCashflowsFromInvestingActivities rawValue  `json:"totalCashflowsFromInvestingActivities"`
	TotalCashFromFinancingActivities      rawValue  `json:"totalCashFromFinancingActivities"`
	CapitalExpenditures                   rawValue  `json:"capitalExpenditures"`
	ChangeInCash                          rawValue  `json:"changeInCash"`
}
