// Package rapid provides a client for the YH Finance API on RapidAPI
package rapid

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/finbuddy/finbot/internal/common"
	"github.com/finbuddy/finbot/internal/interfaces"
	"github.com/finbuddy/finbot/internal/models"
)

const (
	DefaultBaseURL   = "https://yh-finance.p.rapidapi.com"
	DefaultHost      = "yh-finance.p.rapidapi.com"
	DefaultRegion    = "IN"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client implements the MarketQuoteClient interface
type Client struct {
	baseURL    string
	host       string
	apiKey     string
	region     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHost sets the RapidAPI host header
func WithHost(host string) ClientOption {
	return func(c *Client) {
		c.host = host
	}
}

// WithRegion sets the market region passed on quote requests
func WithRegion(region string) ClientOption {
	return func(c *Client) {
		if region != "" {
			c.region = region
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new YH Finance client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		host:    DefaultHost,
		apiKey:  apiKey,
		region:  DefaultRegion,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a provider error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("YH Finance API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request with RapidAPI auth headers
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	c.logger.Debug().Str("url", c.baseURL+path).Msg("YH Finance API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// GetQuotes retrieves quotes for the given symbols in one batched request
func (c *Client) GetQuotes(ctx context.Context, symbols []string) (map[string]*models.Quote, error) {
	if len(symbols) == 0 {
		return map[string]*models.Quote{}, nil
	}

	params := url.Values{}
	params.Set("region", c.region)
	params.Set("symbols", strings.Join(symbols, ","))

	var resp quotesResponse
	if err := c.get(ctx, "/market/v2/get-quotes", params, &resp); err != nil {
		return nil, err
	}

	quotes := make(map[string]*models.Quote, len(resp.QuoteResponse.Result))
	for _, q := range resp.QuoteResponse.Result {
		if q.Symbol == "" {
			continue
		}
		quotes[q.Symbol] = &models.Quote{
			Symbol:    q.Symbol,
			Price:     q.RegularMarketPrice,
			Change:    q.RegularMarketChange,
			ChangePct: q.RegularMarketChangePercent,
			Timestamp: time.Unix(q.RegularMarketTime, 0),
		}
	}

	c.logger.Debug().
		Int("requested", len(symbols)).
		Int("returned", len(quotes)).
		Msg("Batched quotes fetched")

	return quotes, nil
}

// quotesResponse represents the get-quotes API response
type quotesResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol                     string  `json:"symbol"`
			RegularMarketPrice         float64 `json:"regularMarketPrice"`
			RegularMarketChange        float64 `json:"regularMarketChange"`
			RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
			RegularMarketTime          int64   `json:"regularMarketTime"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteResponse"`
}

// Ensure Client implements MarketQuoteClient
var _ interfaces.MarketQuoteClient = (*Client)(nil)
