package models

// StockOverview holds per-ticker fundamentals for the first analysis step.
// Fields mirror what the provider reports; pointer fields are nil when the
// provider omits the value.
type StockOverview struct {
	Ticker          string   `json:"ticker"`
	Name            string   `json:"name"`
	Price           float64  `json:"price"`
	Currency        string   `json:"currency"`
	MarketCap       float64  `json:"market_cap"`
	Low52Week       float64  `json:"low_52_week"`
	High52Week      float64  `json:"high_52_week"`
	PE              *float64 `json:"pe_ratio,omitempty"`
	PB              *float64 `json:"pb_ratio,omitempty"`
	AvgVolume       int64    `json:"avg_volume"`
	Sector          string   `json:"sector"`
	Industry        string   `json:"industry"`
	Country         string   `json:"country"`
	Website         string   `json:"website"`
	BusinessSummary string   `json:"business_summary"`
}

// StatementRow is one labelled line of a financial statement with values
// aligned to the statement's period columns. Nil entries were not reported.
type StatementRow struct {
	Label  string     `json:"label"`
	Values []*float64 `json:"values"`
}

// Statement is a financial statement table, newest period first
type Statement struct {
	Periods []string       `json:"periods"`
	Rows    []StatementRow `json:"rows"`
}

// Empty reports whether the statement carries no usable rows
func (s Statement) Empty() bool {
	return len(s.Periods) == 0 || len(s.Rows) == 0
}

// Ratios holds the key financial ratios for the second analysis step
type Ratios struct {
	ReturnOnEquity     *float64 `json:"return_on_equity,omitempty"`
	ReturnOnAssets     *float64 `json:"return_on_assets,omitempty"`
	ProfitMargin       *float64 `json:"profit_margin,omitempty"`
	DebtToEquity       *float64 `json:"debt_to_equity,omitempty"`
	CurrentRatio       *float64 `json:"current_ratio,omitempty"`
	HeldByInsiders     *float64 `json:"held_by_insiders,omitempty"`
	HeldByInstitutions *float64 `json:"held_by_institutions,omitempty"`
}

// FinancialReport holds annual and quarterly income statements plus ratios
type FinancialReport struct {
	Ticker    string    `json:"ticker"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	Annual    Statement `json:"annual"`
	Quarterly Statement `json:"quarterly"`
	Ratios    Ratios    `json:"ratios"`
}

// StatementSet holds the balance sheet and cash-flow statement for the
// third analysis step
type StatementSet struct {
	Ticker       string    `json:"ticker"`
	Name         string    `json:"name"`
	Currency     string    `json:"currency"`
	BalanceSheet Statement `json:"balance_sheet"`
	CashFlow     Statement `json:"cash_flow"`
}
