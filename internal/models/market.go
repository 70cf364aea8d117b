// Package models defines data structures for FinBot
package models

import "time"

// Quote holds one symbol's snapshot from the market-overview provider
type Quote struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Change    float64   `json:"change"`
	ChangePct float64   `json:"change_percent"`
	Timestamp time.Time `json:"timestamp"`
}

// QuoteLine pairs a display name with a quote. A nil Quote means the
// provider returned no data for the symbol.
type QuoteLine struct {
	Name  string `json:"name"`
	Quote *Quote `json:"quote,omitempty"`
}

// Mover is a top gainer or loser among the tracked index constituents
type Mover struct {
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	ChangePct float64 `json:"change_percent"`
}

// MarketBreadth counts advancing, declining and unchanged constituents
type MarketBreadth struct {
	Advances  int `json:"advances"`
	Declines  int `json:"declines"`
	Unchanged int `json:"unchanged"`
}

// MarketOverview is one assembled snapshot of the tracked market
type MarketOverview struct {
	Indices     []QuoteLine   `json:"indices"`
	Sectors     []QuoteLine   `json:"sectors"`
	Global      []QuoteLine   `json:"global"`
	Commodities []QuoteLine   `json:"commodities"`
	Currencies  []QuoteLine   `json:"currencies"`
	Gainers     []Mover       `json:"gainers"`
	Losers      []Mover       `json:"losers"`
	Breadth     MarketBreadth `json:"breadth"`
	VIXLevel    string        `json:"vix_level,omitempty"` // LOW, MODERATE, HIGH
	FetchedAt   time.Time     `json:"fetched_at"`
}
