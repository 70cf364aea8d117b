package bot

import "context"

// Callback identifiers carried in inline button data
const (
	CallbackMarkets    = "markets"
	CallbackChat       = "chat"
	CallbackAnalyze    = "analyze"
	CallbackFinancials = "analysis_financials"
	CallbackStatements = "analysis_statements"
	CallbackSummary    = "analysis_summary"
	CallbackBackToMenu = "back_to_menu"
)

// handlerFunc processes one routed interaction for a user/chat pair
type handlerFunc func(ctx context.Context, userID, chatID int64)

// router maps commands and callback identifiers to handlers. Dispatch is
// total: unknown input falls through to the fallback handler.
type router struct {
	commands  map[string]handlerFunc
	callbacks map[string]handlerFunc
	fallback  handlerFunc
}

// newRouter builds the fixed dispatch table over the bot's handlers
func newRouter(b *Bot) *router {
	return &router{
		commands: map[string]handlerFunc{
			"start":   b.handleStart,
			"markets": b.handleMarkets,
			"chat":    b.handleChatStart,
			"analyze": b.handleAnalyzePrompt,
		},
		callbacks: map[string]handlerFunc{
			CallbackMarkets:    b.handleMarkets,
			CallbackChat:       b.handleChatStart,
			CallbackAnalyze:    b.handleAnalyzePrompt,
			CallbackFinancials: b.handleFinancials,
			CallbackStatements: b.handleStatements,
			CallbackSummary:    b.handleSummary,
			CallbackBackToMenu: b.handleBackToMenu,
		},
		fallback: b.handleUnknown,
	}
}

// command resolves a slash command to its handler
func (r *router) command(name string) handlerFunc {
	if h, ok := r.commands[name]; ok {
		return h
	}
	return r.fallback
}

// callback resolves a button identifier to its handler
func (r *router) callback(data string) handlerFunc {
	if h, ok := r.callbacks[data]; ok {
		return h
	}
	return r.fallback
}
