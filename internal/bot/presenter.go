package bot

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/finbuddy/finbot/internal/common"
	"github.com/finbuddy/finbot/internal/models"
)

// messageLimit is Telegram's maximum message length. Longer analysis text
// is split into chunks; navigation buttons attach to the final chunk.
const messageLimit = 4096

// analysisTrimAt keeps single analysis messages under the limit with room
// for the header.
const analysisTrimAt = 3900

// --- Keyboards ---

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Market Overview 📊", CallbackMarkets),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Chat with FinBuddy 💬", CallbackChat),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Analyze Stock with AI 📈", CallbackAnalyze),
		),
	)
}

func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Back to Menu ⏮️", CallbackBackToMenu),
		),
	)
}

func analyzeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Analyze Stock 📈", CallbackAnalyze),
		),
	)
}

func nextStepKeyboard(label, callback string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, callback),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Back to Menu ⏮️", CallbackBackToMenu),
		),
	)
}

func summaryStepKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Get Final Analysis 💡", CallbackSummary),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Analyze Another Stock 📈", CallbackAnalyze),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Back to Menu ⏮️", CallbackBackToMenu),
		),
	)
}

func doneKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Thanks 👍", CallbackBackToMenu),
		),
	)
}

// --- Static texts ---

const welcomeText = `👋 *Welcome to FinBot!* 👋

🔍 *About FinBot*
I'm your personal finance assistant: real-time market updates, financial insights and AI analysis.

💼 *Available Commands*:
• /markets - Current market overview
• /chat - Chat with FinBuddy
• /analyze - Analyze a stock with AI

How can I help you today?`

const analyzePromptText = `📈 *Stock Analysis with AI*

Please enter the ticker symbol of the stock you want to analyze.

Example: RELIANCE, TCS etc`

const unknownText = `🤔 I didn't understand that. Use /start to open the main menu, or pick an option below.`

const noSnapshotText = `⚠️ I don't have analysis data for a stock yet. Please analyze a stock first.`

const fetchFailureText = `❌ Sorry, I couldn't fetch that data right now. Please try again in a moment.`

const analysisFailureText = `❌ Analysis unavailable right now. Please try again in a moment.`

const chatFailureText = `Sorry, I hit an error. Please try again or start a new chat session.`

// --- Model output sanitization ---

var (
	numberPattern   = regexp.MustCompile(`\b\d{1,3}(?:,\d{3})*(?:\.\d+)?\b|\b\d+(?:\.\d+)?\b`)
	listItemPattern = regexp.MustCompile(`^\s*[\d\w]+[\.\)]\s+`)
)

var boldHeadings = []string{
	"strengths", "weaknesses", "rating", "ratings",
	"overall assessment:", "key highlights:", "analysis:", "summary:",
	"fundamental quality:", "financial health:",
}

// sanitizeModelOutput strips Markdown control characters the model may
// emit and re-bolds numbers, headings and list items so the message
// renders cleanly under Telegram's Markdown parser.
func sanitizeModelOutput(text string) string {
	replacer := strings.NewReplacer("`", "", "*", "", "_", "", "[", "(", "]", ")")
	text = replacer.Replace(text)

	text = numberPattern.ReplaceAllString(text, "*$0*")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		if isHeadingLine(stripped) || listItemPattern.MatchString(stripped) {
			lines[i] = "*" + stripped + "*"
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func isHeadingLine(line string) bool {
	lower := strings.ToLower(line)
	for _, h := range boldHeadings {
		if strings.HasPrefix(lower, h) {
			return true
		}
	}
	return false
}

// sanitizePlainText strips Markdown control characters for messages sent
// without a parse mode (chat replies).
func sanitizePlainText(text string) string {
	replacer := strings.NewReplacer("*", "", "_", "", "`", "", "[", "", "]", "")
	return strings.TrimSpace(replacer.Replace(text))
}

// formatAnalysisMessage assembles the analysis header and sanitized body
func formatAnalysisMessage(name, ticker, analysis string) string {
	body := sanitizeModelOutput(analysis)
	if len(body) > analysisTrimAt {
		body = body[:analysisTrimAt] + "\n... (trimmed for length)"
	}
	return fmt.Sprintf("🧠 *AI Analysis: %s (%s)*\n\n%s", name, ticker, body)
}

// splitMessage splits text into chunks within Telegram's message limit,
// preferring line boundaries.
func splitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = limit
		}
		chunks = append(chunks, strings.TrimRight(text[:cut], "\n"))
		text = strings.TrimLeft(text[cut:], "\n")
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

// --- Market overview rendering ---

// renderMarketOverview builds the market snapshot message
func renderMarketOverview(o *models.MarketOverview) string {
	var sb strings.Builder

	sb.WriteString("📊 *MARKET SNAPSHOT* 📊\n")
	sb.WriteString("-----------------------------------\n")
	fmt.Fprintf(&sb, "As of %s\n", o.FetchedAt.Format("02 Jan 2006 at 03:04 PM"))
	age := time.Since(o.FetchedAt)
	if age > time.Minute {
		fmt.Fprintf(&sb, "⏰ Data delayed by %d mins\n", int(age.Minutes()))
	}

	sb.WriteString("\n📈 *MAJOR INDICES*\n-------------------")
	for _, line := range o.Indices {
		if line.Name == "INDIA VIX" && line.Quote != nil {
			fmt.Fprintf(&sb, "\n• *INDIA VIX* %s: %s (%s Volatility)",
				vixEmoji(line.Quote.Price), common.FormatPrice(line.Quote.Price), o.VIXLevel)
			continue
		}
		writeQuoteLine(&sb, line, "₹")
	}

	sb.WriteString("\n\n📊 *SECTOR & MARKET CAP*\n-------------------")
	for _, line := range o.Sectors {
		writeQuoteLine(&sb, line, "₹")
	}

	sb.WriteString("\n\n🔝 *TOP GAINERS & LOSERS* 🔝\n-----------------------------------")
	sb.WriteString("\n\n*TOP GAINERS:*")
	for _, g := range o.Gainers {
		fmt.Fprintf(&sb, "\n🟢 *%s*: ₹%s  (%s)", g.Name, common.FormatPrice(g.Price), common.FormatSignedPct(g.ChangePct))
	}
	sb.WriteString("\n\n*TOP LOSERS:*")
	for _, l := range o.Losers {
		fmt.Fprintf(&sb, "\n🔴 *%s*: ₹%s  (%s)", l.Name, common.FormatPrice(l.Price), common.FormatSignedPct(l.ChangePct))
	}

	sb.WriteString("\n\n💰 *COMMODITIES & CURRENCIES*\n-------------------")
	for _, line := range o.Commodities {
		symbol := "₹"
		if strings.Contains(line.Name, "CRUDE") {
			symbol = "$"
		}
		writeQuoteLine(&sb, line, symbol)
	}
	for _, line := range o.Currencies {
		writeQuoteLine(&sb, line, "₹")
	}

	sb.WriteString("\n\n🌎 *GLOBAL INDICES*\n-------------------")
	for _, line := range o.Global {
		if line.Quote == nil {
			fmt.Fprintf(&sb, "\n• *%s*: Data unavailable", line.Name)
			continue
		}
		fmt.Fprintf(&sb, "\n• *%s*: %s %s", line.Name, changeEmoji(line.Quote.Change), common.FormatSignedPct(line.Quote.ChangePct))
	}

	fmt.Fprintf(&sb, "\n\n📊 *MARKET BREADTH* 📊\n---------------------------\nAdvances: *%d* | Declines: *%d* | Unchanged: *%d*",
		o.Breadth.Advances, o.Breadth.Declines, o.Breadth.Unchanged)

	sb.WriteString("\n\n-----------------------------------\n_Data may be delayed. For informational purposes only. Not financial advice._")

	return sb.String()
}

func writeQuoteLine(sb *strings.Builder, line models.QuoteLine, symbol string) {
	if line.Quote == nil {
		fmt.Fprintf(sb, "\n• *%s*: Data unavailable", line.Name)
		return
	}
	q := line.Quote
	fmt.Fprintf(sb, "\n• *%s*: %s%s  %s (%s, %s)",
		line.Name, symbol, common.FormatPrice(q.Price),
		changeEmoji(q.Change), common.FormatSigned(q.Change), common.FormatSignedPct(q.ChangePct))
}

func changeEmoji(change float64) string {
	if change < 0 {
		return "🔴"
	}
	return "🟢"
}

func vixEmoji(value float64) string {
	switch {
	case value < 15:
		return "🟢"
	case value < 25:
		return "🟡"
	default:
		return "🔴"
	}
}
