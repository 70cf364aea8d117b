// Package interfaces defines service contracts for FinBot
package interfaces

import (
	"context"

	"github.com/finbuddy/finbot/internal/models"
)

// MarketQuoteClient provides batched quotes from the market-overview provider
type MarketQuoteClient interface {
	// GetQuotes retrieves quotes for the given symbols in one request,
	// keyed by symbol. Symbols the provider does not know are absent
	// from the result.
	GetQuotes(ctx context.Context, symbols []string) (map[string]*models.Quote, error)
}

// FundamentalsClient provides per-ticker fundamentals
type FundamentalsClient interface {
	// GetOverview retrieves profile, price and key statistics
	GetOverview(ctx context.Context, ticker string) (*models.StockOverview, error)

	// GetFinancials retrieves income statements and key ratios
	GetFinancials(ctx context.Context, ticker string) (*models.FinancialReport, error)

	// GetStatements retrieves the balance sheet and cash-flow statement
	GetStatements(ctx context.Context, ticker string) (*models.StatementSet, error)
}

// GeminiClient provides access to the Gemini API
type GeminiClient interface {
	// GenerateContent generates AI content from a prompt
	GenerateContent(ctx context.Context, prompt string) (string, error)

	// StartChat opens a stateful chat session primed with a system prompt
	StartChat(ctx context.Context, systemPrompt string) (ChatSession, error)
}

// ChatSession is a stateful conversation with the model
type ChatSession interface {
	// Send relays a message and returns the model's reply text
	Send(ctx context.Context, message string) (string, error)
}
