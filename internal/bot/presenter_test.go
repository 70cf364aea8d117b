package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbuddy/finbot/internal/models"
)

func TestSanitizeModelOutput(t *testing.T) {
	input := "Overall Assessment: the stock trades at `24.5` times earnings.\n" +
		"Strengths\n" +
		"1. Revenue grew 12.5% [source]\n" +
		"Some _plain_ prose with *stray* markers."

	got := sanitizeModelOutput(input)

	assert.NotContains(t, got, "`")
	assert.NotContains(t, got, "[")
	assert.NotContains(t, got, "]")
	assert.Contains(t, got, "(source)")

	// Numbers come back bolded
	assert.Contains(t, got, "*24.5*")
	assert.Contains(t, got, "*12.5*")

	// Headings and numbered list items come back bolded
	assert.True(t, strings.Contains(got, "*Strengths*"), "heading should be bolded: %q", got)
	for _, line := range strings.Split(got, "\n") {
		if strings.Contains(line, "Revenue grew") {
			assert.True(t, strings.HasPrefix(line, "*"), "list item should be bolded: %q", line)
		}
	}
}

func TestSanitizePlainText(t *testing.T) {
	got := sanitizePlainText("  *bold* and _italic_ and `code` [link]  ")
	assert.Equal(t, "bold and italic and code link", got)
}

func TestSplitMessageShort(t *testing.T) {
	chunks := splitMessage("hello", messageLimit)
	require.Len(t, chunks, 1)
	assert.Equal(t, "hello", chunks[0])
}

func TestSplitMessageLong(t *testing.T) {
	line := strings.Repeat("x", 100)
	var sb strings.Builder
	for i := 0; i < 80; i++ {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	text := strings.TrimRight(sb.String(), "\n")

	chunks := splitMessage(text, messageLimit)
	require.Greater(t, len(chunks), 1)

	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), messageLimit, "chunk %d over limit", i)
	}

	// No content lost beyond the newlines used as cut points
	rejoined := strings.Join(chunks, "\n")
	assert.Equal(t, strings.Count(text, "x"), strings.Count(rejoined, "x"))
}

func TestSplitMessageNoNewlines(t *testing.T) {
	text := strings.Repeat("y", messageLimit*2+10)

	chunks := splitMessage(text, messageLimit)
	require.Len(t, chunks, 3)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), messageLimit)
	}
}

func testMarketOverview() *models.MarketOverview {
	vix := &models.Quote{Symbol: "^INDIAVIX", Price: 13.2, Change: -0.3, ChangePct: -2.2}
	nifty := &models.Quote{Symbol: "^NSEI", Price: 24850.5, Change: 120.25, ChangePct: 0.49}
	dji := &models.Quote{Symbol: "^DJI", Price: 42000, Change: -130, ChangePct: -0.31}

	return &models.MarketOverview{
		Indices: []models.QuoteLine{
			{Name: "INDIA VIX", Quote: vix},
			{Name: "NIFTY 50", Quote: nifty},
		},
		Sectors: []models.QuoteLine{
			{Name: "NIFTY BANK", Quote: nil},
		},
		Global: []models.QuoteLine{
			{Name: "DOW JONES", Quote: dji},
		},
		Gainers: []models.Mover{{Name: "AAA", Symbol: "AAA.NS", Price: 100, ChangePct: 3.2}},
		Losers:  []models.Mover{{Name: "EEE", Symbol: "EEE.NS", Price: 500, ChangePct: -2.4}},
		Breadth: models.MarketBreadth{Advances: 18, Declines: 10, Unchanged: 2},
		VIXLevel: "LOW",
		FetchedAt: time.Now(),
	}
}

func TestRenderMarketOverview(t *testing.T) {
	got := renderMarketOverview(testMarketOverview())

	assert.Contains(t, got, "MARKET SNAPSHOT")
	assert.Contains(t, got, "NIFTY 50")
	assert.Contains(t, got, "24,850.50")
	assert.Contains(t, got, "+0.49%")
	assert.Contains(t, got, "(LOW Volatility)")

	// Missing quote renders gracefully
	assert.Contains(t, got, "*NIFTY BANK*: Data unavailable")

	// Movers and breadth
	assert.Contains(t, got, "🟢 *AAA*")
	assert.Contains(t, got, "🔴 *EEE*")
	assert.Contains(t, got, "Advances: *18* | Declines: *10* | Unchanged: *2*")

	assert.Contains(t, got, "Not financial advice")
}

func TestRenderMarketOverviewStaleNotice(t *testing.T) {
	overview := testMarketOverview()
	overview.FetchedAt = time.Now().Add(-10 * time.Minute)

	got := renderMarketOverview(overview)
	assert.Contains(t, got, "Data delayed by")
}

func TestFormatAnalysisMessageTrims(t *testing.T) {
	long := strings.Repeat("analysis ", 1000)
	got := formatAnalysisMessage("Test Corp", "TEST.NS", long)

	assert.Contains(t, got, "AI Analysis: Test Corp (TEST.NS)")
	assert.Contains(t, got, "(trimmed for length)")
	assert.LessOrEqual(t, len(got), messageLimit)
}
