// Package market assembles the market overview snapshot from batched quotes
package market

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/finbuddy/finbot/internal/common"
	"github.com/finbuddy/finbot/internal/interfaces"
	"github.com/finbuddy/finbot/internal/models"
)

// VIX volatility bands
const (
	vixLowMax      = 15.0
	vixModerateMax = 25.0
)

// Breadth threshold: moves inside ±0.1% count as unchanged
const breadthThresholdPct = 0.1

const topMovers = 3

// Service implements MarketService with a TTL-guarded in-memory cache.
// All configured symbols are fetched in one batched provider call.
type Service struct {
	client interfaces.MarketQuoteClient
	cfg    common.MarketConfig
	logger *common.Logger
	ttl    time.Duration
	now    func() time.Time // injectable clock for testing

	mu        sync.Mutex
	quotes    map[string]*models.Quote
	fetchedAt time.Time
}

// NewService creates a new market service
func NewService(client interfaces.MarketQuoteClient, cfg common.MarketConfig, logger *common.Logger) *Service {
	return &Service{
		client: client,
		cfg:    cfg,
		logger: logger,
		ttl:    cfg.GetCacheTTL(),
		now:    time.Now,
	}
}

// Overview returns the current snapshot, served from cache while fresh
func (s *Service) Overview(ctx context.Context) (*models.MarketOverview, error) {
	quotes, fetchedAt, err := s.cachedQuotes(ctx, false)
	if err != nil {
		return nil, err
	}
	return s.assemble(quotes, fetchedAt), nil
}

// Refresh forces a fetch regardless of cache freshness
func (s *Service) Refresh(ctx context.Context) error {
	_, _, err := s.cachedQuotes(ctx, true)
	return err
}

// cachedQuotes returns the cached quote map, fetching when stale or forced.
// The provider call happens under the lock so concurrent users share one
// in-flight fetch.
func (s *Service) cachedQuotes(ctx context.Context, force bool) (map[string]*models.Quote, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !force && s.quotes != nil && s.now().Sub(s.fetchedAt) < s.ttl {
		return s.quotes, s.fetchedAt, nil
	}

	quotes, err := s.client.GetQuotes(ctx, s.allSymbols())
	if err != nil {
		// Serve the stale snapshot if we have one rather than failing
		if s.quotes != nil {
			s.logger.Warn().Err(err).Msg("Quote refresh failed, serving stale snapshot")
			return s.quotes, s.fetchedAt, nil
		}
		return nil, time.Time{}, fmt.Errorf("fetch market quotes: %w", err)
	}

	s.quotes = quotes
	s.fetchedAt = s.now()

	s.logger.Info().Int("symbols", len(quotes)).Msg("Market snapshot refreshed")

	return s.quotes, s.fetchedAt, nil
}

// allSymbols flattens every configured symbol table into one request list
func (s *Service) allSymbols() []string {
	var symbols []string
	for _, m := range []map[string]string{s.cfg.Indices, s.cfg.Sectors, s.cfg.Global, s.cfg.Commodities, s.cfg.Currencies} {
		for _, sym := range m {
			symbols = append(symbols, sym)
		}
	}
	symbols = append(symbols, s.cfg.Constituents...)
	sort.Strings(symbols)
	return symbols
}

// assemble builds the overview sections, movers and breadth from raw quotes
func (s *Service) assemble(quotes map[string]*models.Quote, fetchedAt time.Time) *models.MarketOverview {
	overview := &models.MarketOverview{
		Indices:     section(s.cfg.Indices, quotes),
		Sectors:     section(s.cfg.Sectors, quotes),
		Global:      section(s.cfg.Global, quotes),
		Commodities: section(s.cfg.Commodities, quotes),
		Currencies:  section(s.cfg.Currencies, quotes),
		FetchedAt:   fetchedAt,
	}

	if vix := findQuote(s.cfg.Indices, "INDIA VIX", quotes); vix != nil {
		overview.VIXLevel = classifyVIX(vix.Price)
	}

	s.rankMovers(overview, quotes)

	return overview
}

// section builds ordered quote lines for one symbol table.
// Names sort alphabetically so the rendering is deterministic.
func section(table map[string]string, quotes map[string]*models.Quote) []models.QuoteLine {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]models.QuoteLine, 0, len(names))
	for _, name := range names {
		lines = append(lines, models.QuoteLine{
			Name:  name,
			Quote: quotes[table[name]],
		})
	}
	return lines
}

func findQuote(table map[string]string, name string, quotes map[string]*models.Quote) *models.Quote {
	sym, ok := table[name]
	if !ok {
		return nil
	}
	return quotes[sym]
}

// classifyVIX maps a VIX reading to its volatility band
func classifyVIX(value float64) string {
	switch {
	case value < vixLowMax:
		return "LOW"
	case value < vixModerateMax:
		return "MODERATE"
	default:
		return "HIGH"
	}
}

// rankMovers fills top gainers, losers and breadth from the constituents
func (s *Service) rankMovers(overview *models.MarketOverview, quotes map[string]*models.Quote) {
	movers := make([]models.Mover, 0, len(s.cfg.Constituents))

	for _, sym := range s.cfg.Constituents {
		q, ok := quotes[sym]
		if !ok || q == nil {
			continue
		}

		movers = append(movers, models.Mover{
			Name:      displayName(sym),
			Symbol:    sym,
			Price:     q.Price,
			ChangePct: q.ChangePct,
		})

		switch {
		case q.ChangePct > breadthThresholdPct:
			overview.Breadth.Advances++
		case q.ChangePct < -breadthThresholdPct:
			overview.Breadth.Declines++
		default:
			overview.Breadth.Unchanged++
		}
	}

	sort.Slice(movers, func(i, j int) bool {
		return movers[i].ChangePct > movers[j].ChangePct
	})

	n := topMovers
	if n > len(movers) {
		n = len(movers)
	}
	overview.Gainers = append(overview.Gainers, movers[:n]...)

	for i := 0; i < n; i++ {
		overview.Losers = append(overview.Losers, movers[len(movers)-1-i])
	}
}

// displayName strips the exchange suffix from a constituent symbol
func displayName(symbol string) string {
	if i := strings.IndexByte(symbol, '.'); i > 0 {
		return symbol[:i]
	}
	return symbol
}

// Ensure Service implements MarketService
var _ interfaces.MarketService = (*Service)(nil)
