package models

// Mode is the per-user input routing mode
type Mode int

const (
	ModeIdle    Mode = iota // free text gets a guidance reply
	ModeAnalyze             // next free text is treated as a ticker
	ModeChat                // free text is relayed to the chat session
)

// AnalysisStep identifies the position in the four-step analysis sequence
type AnalysisStep int

const (
	StepNone AnalysisStep = iota
	StepOverview
	StepFinancials
	StepStatements
	StepSummary
)

// String returns the step name used in logs
func (s AnalysisStep) String() string {
	switch s {
	case StepOverview:
		return "overview"
	case StepFinancials:
		return "financials"
	case StepStatements:
		return "statements"
	case StepSummary:
		return "summary"
	default:
		return "none"
	}
}

// Session is the per-user conversation context. It lives in memory only
// and is discarded when the user returns to the menu.
type Session struct {
	UserID    int64
	Mode      Mode
	Ticker    string
	StockName string
	Step      AnalysisStep
	Overview  *StockOverview // step-1 snapshot reused by later prompts
}
