package analyzer

import (
	"fmt"
	"strings"

	"github.com/finbuddy/finbot/internal/common"
	"github.com/finbuddy/finbot/internal/models"
)

// Column widths for the fixed-width statement tables sent to the model
const (
	labelWidth = 22
	valueWidth = 15
)

// serializeOverview renders the step-1 snapshot as the data block of the
// overview prompt.
func serializeOverview(o *models.StockOverview) string {
	symbol := common.CurrencySymbol(o.Currency)

	var sb strings.Builder
	sb.WriteString("Stock Data Overview:\n")
	sb.WriteString("------------------\n")
	fmt.Fprintf(&sb, "Name: %s\n", o.Name)
	fmt.Fprintf(&sb, "Ticker: %s\n", o.Ticker)
	fmt.Fprintf(&sb, "Current Price: %s%s\n", symbol, common.FormatPrice(o.Price))
	fmt.Fprintf(&sb, "Market Cap: %s %s\n", common.FormatMagnitude(o.MarketCap, o.Currency), o.Currency)
	fmt.Fprintf(&sb, "52-Week Range: %s - %s\n", common.FormatPrice(o.Low52Week), common.FormatPrice(o.High52Week))
	fmt.Fprintf(&sb, "PE Ratio: %s\n", common.FormatRatio(o.PE, false))
	fmt.Fprintf(&sb, "PB Ratio: %s\n", common.FormatRatio(o.PB, false))
	fmt.Fprintf(&sb, "Average Volume: %s\n", common.GroupDigits(float64(o.AvgVolume)))
	fmt.Fprintf(&sb, "Sector: %s\n", orNA(o.Sector))
	fmt.Fprintf(&sb, "Industry: %s\n", orNA(o.Industry))
	fmt.Fprintf(&sb, "Country: %s\n", orNA(o.Country))
	fmt.Fprintf(&sb, "Website: %s\n", orNA(o.Website))
	sb.WriteString("\nBusiness Summary:\n")
	sb.WriteString(orNA(o.BusinessSummary))
	sb.WriteString("\n")

	return sb.String()
}

// serializeFinancials renders income statements and ratios as the data
// block of the step-2 prompt.
func serializeFinancials(r *models.FinancialReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Company: %s (%s)\n", r.Name, r.Ticker)
	fmt.Fprintf(&sb, "All figures in %s.\n\n", orNA(r.Currency))

	sb.WriteString("Annual Income Statement (last 4 years):\n")
	writeStatement(&sb, r.Annual, r.Currency)

	sb.WriteString("\nQuarterly Income Statement (last 4 quarters):\n")
	writeStatement(&sb, r.Quarterly, r.Currency)

	sb.WriteString("\nKey Financial Ratios:\n")
	fmt.Fprintf(&sb, "- Return on Equity (ROE): %s\n", common.FormatRatio(r.Ratios.ReturnOnEquity, true))
	fmt.Fprintf(&sb, "- Return on Assets (ROA): %s\n", common.FormatRatio(r.Ratios.ReturnOnAssets, true))
	fmt.Fprintf(&sb, "- Profit Margin: %s\n", common.FormatRatio(r.Ratios.ProfitMargin, true))
	fmt.Fprintf(&sb, "- Total Debt/Equity: %s\n", common.FormatRatio(scaledDebtToEquity(r.Ratios.DebtToEquity), false))
	fmt.Fprintf(&sb, "- Current Ratio: %s\n", common.FormatRatio(r.Ratios.CurrentRatio, false))
	fmt.Fprintf(&sb, "- Held by Insiders: %s\n", common.FormatRatio(r.Ratios.HeldByInsiders, true))
	fmt.Fprintf(&sb, "- Held by Institutions: %s\n", common.FormatRatio(r.Ratios.HeldByInstitutions, true))

	return sb.String()
}

// serializeStatements renders the balance sheet and cash flow as the data
// block of the step-3 prompt.
func serializeStatements(s *models.StatementSet) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Company: %s (%s)\n", s.Name, s.Ticker)
	fmt.Fprintf(&sb, "All figures in %s. Last 4 available years.\n\n", orNA(s.Currency))

	sb.WriteString("Balance Sheet (Annual):\n")
	writeStatement(&sb, s.BalanceSheet, s.Currency)

	sb.WriteString("\nCash Flow Statement (Annual):\n")
	writeStatement(&sb, s.CashFlow, s.Currency)

	return sb.String()
}

// writeStatement renders one statement as a fixed-width table. INR values
// get the crore treatment so the model reads the same units the user would.
func writeStatement(sb *strings.Builder, stmt models.Statement, currency string) {
	if stmt.Empty() {
		sb.WriteString("  (no data available)\n")
		return
	}

	// Header row
	fmt.Fprintf(sb, "%-*s", labelWidth, "")
	for _, p := range stmt.Periods {
		fmt.Fprintf(sb, " %*s", valueWidth, p)
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", labelWidth+(valueWidth+1)*len(stmt.Periods)))
	sb.WriteString("\n")

	for _, row := range stmt.Rows {
		fmt.Fprintf(sb, "%-*s", labelWidth, row.Label)
		for i := range stmt.Periods {
			var cell string
			if i < len(row.Values) && row.Values[i] != nil {
				cell = common.FormatMagnitude(*row.Values[i], currency)
			} else {
				cell = "N/A"
			}
			fmt.Fprintf(sb, " %*s", valueWidth, cell)
		}
		sb.WriteString("\n")
	}
}

// scaledDebtToEquity converts the provider's percentage form into a plain
// ratio (the provider reports e.g. 41.3 for 0.413).
func scaledDebtToEquity(v *float64) *float64 {
	if v == nil {
		return nil
	}
	scaled := *v / 100
	return &scaled
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
