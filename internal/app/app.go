// Package app wires configuration, clients, services and the bot
package app

import (
	"context"
	"fmt"

	"github.com/finbuddy/finbot/internal/bot"
	"github.com/finbuddy/finbot/internal/clients/gemini"
	"github.com/finbuddy/finbot/internal/clients/rapid"
	"github.com/finbuddy/finbot/internal/clients/yahoo"
	"github.com/finbuddy/finbot/internal/common"
	"github.com/finbuddy/finbot/internal/services/analyzer"
	"github.com/finbuddy/finbot/internal/services/chat"
	"github.com/finbuddy/finbot/internal/services/market"
)

// App holds the assembled application
type App struct {
	config    *common.Config
	logger    *common.Logger
	bot       *bot.Bot
	scheduler *Scheduler
}

// New loads configuration, resolves credentials and builds the full
// client, service and bot stack.
func New(ctx context.Context, configPaths ...string) (*App, error) {
	cfg, err := common.LoadConfig(configPaths...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := common.NewLogger(cfg.Logging.Level)
	logger.Info().Str("environment", cfg.Environment).Str("version", common.Version).Msg("starting finbot")

	telegramToken, err := common.ResolveAPIKey("telegram_bot_token", cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	geminiKey, err := common.ResolveAPIKey("gemini_api_key", cfg.Clients.Gemini.APIKey)
	if err != nil {
		return nil, err
	}
	rapidKey, err := common.ResolveAPIKey("rapid_api_key", cfg.Clients.Rapid.APIKey)
	if err != nil {
		return nil, err
	}

	rapidClient := rapid.NewClient(rapidKey,
		rapid.WithBaseURL(cfg.Clients.Rapid.BaseURL),
		rapid.WithHost(cfg.Clients.Rapid.Host),
		rapid.WithRegion(cfg.Clients.Rapid.Region),
		rapid.WithRateLimit(cfg.Clients.Rapid.RateLimit),
		rapid.WithTimeout(cfg.Clients.Rapid.GetTimeout()),
		rapid.WithLogger(logger),
	)

	yahooClient := yahoo.NewClient(
		yahoo.WithBaseURL(cfg.Clients.Yahoo.BaseURL),
		yahoo.WithTimeout(cfg.Clients.Yahoo.GetTimeout()),
		yahoo.WithLogger(logger),
	)

	geminiClient, err := gemini.NewClient(ctx, geminiKey,
		gemini.WithModel(cfg.Clients.Gemini.Model),
		gemini.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	marketSvc := market.NewService(rapidClient, cfg.Market, logger)
	analyzerSvc := analyzer.NewService(yahooClient, geminiClient, logger)
	chatSvc := chat.NewService(geminiClient, chat.DefaultPersonality(), logger)

	telegramBot, err := bot.NewBot(telegramToken, marketSvc, analyzerSvc, chatSvc,
		bot.WithLogger(logger),
		bot.WithPollTimeout(cfg.Telegram.PollTimeout),
		bot.WithRequestTimeout(cfg.Telegram.GetRequestTimeout()),
	)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &App{
		config:    cfg,
		logger:    logger,
		bot:       telegramBot,
		scheduler: NewScheduler(marketSvc, cfg.Market.GetCacheTTL(), logger),
	}, nil
}

// Run starts the background refresh scheduler and blocks polling
// Telegram until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.scheduler.Start(ctx)
	defer a.scheduler.Stop()

	return a.bot.Run(ctx)
}
