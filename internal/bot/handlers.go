package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/finbuddy/finbot/internal/clients/yahoo"
	"github.com/finbuddy/finbot/internal/models"
	"github.com/finbuddy/finbot/internal/services/chat"
)

// handleStart resets the user's state and shows the main menu
func (b *Bot) handleStart(ctx context.Context, userID, chatID int64) {
	b.chat.End(userID)
	b.sessions.Clear(userID)
	b.sendMarkdownWithKeyboard(chatID, welcomeText, mainMenuKeyboard())
}

// handleBackToMenu behaves like /start but keeps the log distinct
func (b *Bot) handleBackToMenu(ctx context.Context, userID, chatID int64) {
	b.logger.Debug().Int64("user_id", userID).Msg("back to menu")
	b.handleStart(ctx, userID, chatID)
}

func (b *Bot) handleUnknown(ctx context.Context, userID, chatID int64) {
	b.sendMarkdownWithKeyboard(chatID, unknownText, mainMenuKeyboard())
}

// handleMarkets sends the market snapshot, split into chunks when the
// rendered message exceeds Telegram's limit.
func (b *Bot) handleMarkets(ctx context.Context, userID, chatID int64) {
	b.sendTyping(chatID)

	overview, err := b.market.Overview(ctx)
	if err != nil {
		b.logger.Error().Err(err).Int64("user_id", userID).Msg("market overview failed")
		b.sendPlainWithKeyboard(chatID, fetchFailureText, backKeyboard())
		return
	}

	b.sendChunks(chatID, renderMarketOverview(overview), backKeyboard())
}

// handleChatStart switches the user into chat mode and greets them
func (b *Bot) handleChatStart(ctx context.Context, userID, chatID int64) {
	greeting, err := b.chat.Start(ctx, userID)
	if err != nil {
		b.logger.Error().Err(err).Int64("user_id", userID).Msg("chat session start failed")
		b.sendPlainWithKeyboard(chatID, chatFailureText, backKeyboard())
		return
	}

	b.sessions.Update(userID, func(s *models.Session) {
		s.Mode = models.ModeChat
		s.Step = models.StepNone
	})

	b.sendPlainWithKeyboard(chatID, sanitizePlainText(greeting), backKeyboard())
}

// handleAnalyzePrompt switches the user into analyze mode and asks for a
// ticker. Any chat session is discarded so free text is not misrouted.
func (b *Bot) handleAnalyzePrompt(ctx context.Context, userID, chatID int64) {
	b.chat.End(userID)
	b.sessions.Update(userID, func(s *models.Session) {
		s.Mode = models.ModeAnalyze
		s.Step = models.StepNone
		s.Ticker = ""
		s.StockName = ""
		s.Overview = nil
	})

	b.sendMarkdownWithKeyboard(chatID, analyzePromptText, backKeyboard())
}

// handleText routes free-form text by the user's current mode
func (b *Bot) handleText(ctx context.Context, userID, chatID int64, text string) {
	session := b.sessions.Snapshot(userID)

	switch session.Mode {
	case models.ModeChat:
		b.handleChatMessage(ctx, userID, chatID, text)
	case models.ModeAnalyze:
		b.handleTicker(ctx, userID, chatID, text)
	default:
		b.sendMarkdownWithKeyboard(chatID, unknownText, mainMenuKeyboard())
	}
}

func (b *Bot) handleChatMessage(ctx context.Context, userID, chatID int64, text string) {
	b.sendTyping(chatID)

	reply, err := b.chat.Send(ctx, userID, text)
	if errors.Is(err, chat.ErrNoSession) {
		// Session evicted or lost across restarts. Reopen and retry once.
		if _, startErr := b.chat.Start(ctx, userID); startErr == nil {
			reply, err = b.chat.Send(ctx, userID, text)
		}
	}
	if err != nil {
		b.logger.Error().Err(err).Int64("user_id", userID).Msg("chat reply failed")
		b.sendPlain(chatID, chatFailureText)
		return
	}

	b.sendPlain(chatID, sanitizePlainText(reply))
}

// handleTicker runs step one of the analysis sequence on the entered
// ticker and offers the step-two button.
func (b *Bot) handleTicker(ctx context.Context, userID, chatID int64, raw string) {
	b.sendTyping(chatID)

	overview, analysis, err := b.analyzer.AnalyzeOverview(ctx, raw)
	if err != nil {
		b.logger.Error().Err(err).Str("ticker", raw).Int64("user_id", userID).Msg("overview analysis failed")
		if errors.Is(err, yahoo.ErrTickerNotFound) {
			text := fmt.Sprintf("❌ I couldn't find data for %q. Please check the ticker symbol and try again.", strings.TrimSpace(raw))
			b.sendPlainWithKeyboard(chatID, text, backKeyboard())
			return
		}
		b.sendPlainWithKeyboard(chatID, fetchFailureText, backKeyboard())
		return
	}

	b.sessions.Update(userID, func(s *models.Session) {
		s.Mode = models.ModeAnalyze
		s.Step = models.StepOverview
		s.Ticker = overview.Ticker
		s.StockName = overview.Name
		s.Overview = overview
	})

	text := formatAnalysisMessage(overview.Name, overview.Ticker, analysis)
	b.sendMarkdownWithKeyboard(chatID, text, nextStepKeyboard("Move to Step 2 ⏩", CallbackFinancials))
}

// handleFinancials runs step two on the ticker analyzed in step one
func (b *Bot) handleFinancials(ctx context.Context, userID, chatID int64) {
	session := b.sessions.Snapshot(userID)
	if session.Ticker == "" {
		b.sendPlainWithKeyboard(chatID, noSnapshotText, analyzeKeyboard())
		return
	}

	b.sendTyping(chatID)

	analysis, err := b.analyzer.AnalyzeFinancials(ctx, session.Ticker, session.StockName)
	if err != nil {
		b.logger.Error().Err(err).Str("ticker", session.Ticker).Msg("financials analysis failed")
		b.sendPlainWithKeyboard(chatID, analysisFailureText, backKeyboard())
		return
	}

	b.sessions.Update(userID, func(s *models.Session) { s.Step = models.StepFinancials })

	text := formatAnalysisMessage(session.StockName, session.Ticker, analysis)
	b.sendMarkdownWithKeyboard(chatID, text, nextStepKeyboard("Move to Step 3 ⏩", CallbackStatements))
}

// handleStatements runs step three, balance sheet and cash flow
func (b *Bot) handleStatements(ctx context.Context, userID, chatID int64) {
	session := b.sessions.Snapshot(userID)
	if session.Ticker == "" {
		b.sendPlainWithKeyboard(chatID, noSnapshotText, analyzeKeyboard())
		return
	}

	b.sendTyping(chatID)

	analysis, err := b.analyzer.AnalyzeStatements(ctx, session.Ticker, session.StockName)
	if err != nil {
		b.logger.Error().Err(err).Str("ticker", session.Ticker).Msg("statements analysis failed")
		b.sendPlainWithKeyboard(chatID, analysisFailureText, backKeyboard())
		return
	}

	b.sessions.Update(userID, func(s *models.Session) { s.Step = models.StepStatements })

	text := formatAnalysisMessage(session.StockName, session.Ticker, analysis)
	b.sendMarkdownWithKeyboard(chatID, text, summaryStepKeyboard())
}

// handleSummary runs the final step from the step-one snapshot
func (b *Bot) handleSummary(ctx context.Context, userID, chatID int64) {
	session := b.sessions.Snapshot(userID)
	if session.Overview == nil {
		b.sendPlainWithKeyboard(chatID, noSnapshotText, analyzeKeyboard())
		return
	}

	b.sendTyping(chatID)

	analysis, err := b.analyzer.Summarize(ctx, session.Overview)
	if err != nil {
		b.logger.Error().Err(err).Str("ticker", session.Ticker).Msg("summary analysis failed")
		b.sendPlainWithKeyboard(chatID, analysisFailureText, backKeyboard())
		return
	}

	b.sessions.Update(userID, func(s *models.Session) { s.Step = models.StepSummary })

	text := formatAnalysisMessage(session.StockName, session.Ticker, analysis)
	b.sendMarkdownWithKeyboard(chatID, text, doneKeyboard())
}
