package interfaces

import (
	"context"

	"github.com/finbuddy/finbot/internal/models"
)

// MarketService assembles the market overview snapshot
type MarketService interface {
	// Overview returns the current snapshot, served from cache while fresh
	Overview(ctx context.Context) (*models.MarketOverview, error)

	// Refresh forces a fetch regardless of cache freshness
	Refresh(ctx context.Context) error
}

// AnalyzerService runs the four-step stock analysis sequence
type AnalyzerService interface {
	// AnalyzeOverview normalizes the ticker, fetches the overview
	// snapshot and returns it with the step-1 AI analysis
	AnalyzeOverview(ctx context.Context, rawTicker string) (*models.StockOverview, string, error)

	// AnalyzeFinancials fetches income statements and ratios and returns
	// the step-2 AI analysis
	AnalyzeFinancials(ctx context.Context, ticker, name string) (string, error)

	// AnalyzeStatements fetches the balance sheet and cash flow and
	// returns the step-3 AI analysis
	AnalyzeStatements(ctx context.Context, ticker, name string) (string, error)

	// Summarize produces the concluding assessment from the step-1
	// snapshot
	Summarize(ctx context.Context, overview *models.StockOverview) (string, error)
}

// ChatService manages free-form chat sessions with the bot personality
type ChatService interface {
	// Start opens (or replaces) the user's chat session and returns the
	// personality welcome message
	Start(ctx context.Context, userID int64) (string, error)

	// Send relays user text to the session and returns the reply
	Send(ctx context.Context, userID int64, text string) (string, error)

	// End discards the user's chat session if one exists
	End(userID int64)
}
