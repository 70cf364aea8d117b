// Package analyzer runs the four-step stock analysis sequence:
// overview, financials, balance sheet & cash flow, final summary.
package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/finbuddy/finbot/internal/common"
	"github.com/finbuddy/finbot/internal/interfaces"
	"github.com/finbuddy/finbot/internal/models"
)

// Service implements AnalyzerService
type Service struct {
	fundamentals interfaces.FundamentalsClient
	gemini       interfaces.GeminiClient
	logger       *common.Logger
}

// NewService creates a new analyzer service
func NewService(fundamentals interfaces.FundamentalsClient, gemini interfaces.GeminiClient, logger *common.Logger) *Service {
	return &Service{
		fundamentals: fundamentals,
		gemini:       gemini,
		logger:       logger,
	}
}

// NormalizeTicker uppercases a user-entered symbol and defaults it to the
// NSE exchange when no exchange suffix is present.
func NormalizeTicker(raw string) string {
	ticker := strings.ToUpper(strings.TrimSpace(raw))
	if ticker == "" {
		return ""
	}
	if !strings.Contains(ticker, ".") {
		ticker += ".NS"
	}
	return ticker
}

// AnalyzeOverview fetches the overview snapshot and returns it with the
// step-1 AI analysis
func (s *Service) AnalyzeOverview(ctx context.Context, rawTicker string) (*models.StockOverview, string, error) {
	ticker := NormalizeTicker(rawTicker)
	if ticker == "" {
		return nil, "", fmt.Errorf("empty ticker")
	}

	s.logger.Info().Str("ticker", ticker).Str("step", models.StepOverview.String()).Msg("Analyzing stock")

	overview, err := s.fundamentals.GetOverview(ctx, ticker)
	if err != nil {
		return nil, "", fmt.Errorf("fetch overview for %s: %w", ticker, err)
	}

	analysis, err := s.gemini.GenerateContent(ctx, overviewPrompt+"\n"+serializeOverview(overview))
	if err != nil {
		return nil, "", fmt.Errorf("overview analysis for %s: %w", ticker, err)
	}

	return overview, analysis, nil
}

// AnalyzeFinancials fetches income statements and ratios and returns the
// step-2 AI analysis
func (s *Service) AnalyzeFinancials(ctx context.Context, ticker, name string) (string, error) {
	s.logger.Info().Str("ticker", ticker).Str("step", models.StepFinancials.String()).Msg("Analyzing stock")

	report, err := s.fundamentals.GetFinancials(ctx, ticker)
	if err != nil {
		return "", fmt.Errorf("fetch financials for %s: %w", ticker, err)
	}
	if report.Name == "" || report.Name == ticker {
		report.Name = fallbackName(name, ticker)
	}

	analysis, err := s.gemini.GenerateContent(ctx, financialsPrompt+"\n"+serializeFinancials(report))
	if err != nil {
		return "", fmt.Errorf("financials analysis for %s: %w", ticker, err)
	}

	return analysis, nil
}

// AnalyzeStatements fetches the balance sheet and cash flow and returns
// the step-3 AI analysis
func (s *Service) AnalyzeStatements(ctx context.Context, ticker, name string) (string, error) {
	s.logger.Info().Str("ticker", ticker).Str("step", models.StepStatements.String()).Msg("Analyzing stock")

	statements, err := s.fundamentals.GetStatements(ctx, ticker)
	if err != nil {
		return "", fmt.Errorf("fetch statements for %s: %w", ticker, err)
	}
	if statements.Name == "" || statements.Name == ticker {
		statements.Name = fallbackName(name, ticker)
	}

	analysis, err := s.gemini.GenerateContent(ctx, statementsPrompt+"\n"+serializeStatements(statements))
	if err != nil {
		return "", fmt.Errorf("statements analysis for %s: %w", ticker, err)
	}

	return analysis, nil
}

// Summarize produces the concluding assessment from the step-1 snapshot
func (s *Service) Summarize(ctx context.Context, overview *models.StockOverview) (string, error) {
	if overview == nil {
		return "", fmt.Errorf("no overview snapshot to summarize")
	}

	s.logger.Info().Str("ticker", overview.Ticker).Str("step", models.StepSummary.String()).Msg("Analyzing stock")

	analysis, err := s.gemini.GenerateContent(ctx, summaryPrompt+"\n"+serializeOverview(overview))
	if err != nil {
		return "", fmt.Errorf("summary analysis for %s: %w", overview.Ticker, err)
	}

	return analysis, nil
}

func fallbackName(name, ticker string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	return ticker
}

// Ensure Service implements AnalyzerService
var _ interfaces.AnalyzerService = (*Service)(nil)
