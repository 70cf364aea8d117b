// Package bot implements the Telegram front end: update polling,
// command and callback routing, per-user sessions and message rendering.
package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/finbuddy/finbot/internal/common"
	"github.com/finbuddy/finbot/internal/interfaces"
)

// sender is the slice of the Telegram API the handlers need. Tests
// substitute a recording fake.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot polls Telegram for updates and dispatches them to handlers
type Bot struct {
	api  *tgbotapi.BotAPI
	send sender

	market   interfaces.MarketService
	analyzer interfaces.AnalyzerService
	chat     interfaces.ChatService

	sessions *SessionStore
	routes   *router
	logger   *common.Logger

	pollTimeout int
	reqTimeout  time.Duration

	wg sync.WaitGroup
}

// Option configures a Bot
type Option func(*Bot)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) Option {
	return func(b *Bot) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithPollTimeout sets the long-poll timeout in seconds
func WithPollTimeout(seconds int) Option {
	return func(b *Bot) {
		if seconds > 0 {
			b.pollTimeout = seconds
		}
	}
}

// WithRequestTimeout bounds the handling of a single update
func WithRequestTimeout(d time.Duration) Option {
	return func(b *Bot) {
		if d > 0 {
			b.reqTimeout = d
		}
	}
}

// NewBot authenticates against the Telegram API and wires the routing
// table. The services are required; options cover the rest.
func NewBot(token string, market interfaces.MarketService, analyzer interfaces.AnalyzerService, chatSvc interfaces.ChatService, opts ...Option) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}

	b := &Bot{
		api:         api,
		send:        api,
		market:      market,
		analyzer:    analyzer,
		chat:        chatSvc,
		sessions:    NewSessionStore(),
		logger:      common.NewDefaultLogger(),
		pollTimeout: 30,
		reqTimeout:  90 * time.Second,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.routes = newRouter(b)

	b.logger.Info().Str("username", api.Self.UserName).Msg("telegram bot authenticated")
	return b, nil
}

// Run polls for updates until ctx is cancelled. Each update is handled
// in its own goroutine under a per-update timeout.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info().Int("poll_timeout", b.pollTimeout).Msg("bot started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.wg.Wait()
			b.logger.Info().Msg("bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				b.wg.Wait()
				return nil
			}
			b.wg.Add(1)
			go func(update tgbotapi.Update) {
				defer b.wg.Done()
				hctx, cancel := context.WithTimeout(ctx, b.reqTimeout)
				defer cancel()
				b.handleUpdate(hctx, update)
			}(update)
		}
	}
}

// handleUpdate dispatches one update through the routing table
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().Interface("panic", r).Msg("update handler panicked")
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		if _, err := b.send.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			b.logger.Warn().Err(err).Msg("callback ack failed")
		}
		if cb.Message == nil {
			return
		}
		b.logger.Debug().Str("callback", cb.Data).Int64("user_id", cb.From.ID).Msg("callback received")
		b.routes.callback(cb.Data)(ctx, cb.From.ID, cb.Message.Chat.ID)

	case update.Message != nil:
		msg := update.Message
		if msg.From == nil || msg.Text == "" {
			return
		}
		if msg.IsCommand() {
			b.logger.Debug().Str("command", msg.Command()).Int64("user_id", msg.From.ID).Msg("command received")
			b.routes.command(msg.Command())(ctx, msg.From.ID, msg.Chat.ID)
			return
		}
		b.handleText(ctx, msg.From.ID, msg.Chat.ID, msg.Text)
	}
}

// --- Send helpers ---

func (b *Bot) sendTyping(chatID int64) {
	if _, err := b.send.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		b.logger.Debug().Err(err).Msg("typing action failed")
	}
}

func (b *Bot) sendPlain(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	b.deliver(msg)
}

func (b *Bot) sendPlainWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	b.deliver(msg)
}

func (b *Bot) sendMarkdownWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = kb
	b.deliver(msg)
}

// sendChunks splits long text across messages and attaches the keyboard
// to the final one.
func (b *Bot) sendChunks(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	chunks := splitMessage(text, messageLimit)
	for i, chunk := range chunks {
		msg := tgbotapi.NewMessage(chatID, chunk)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if i == len(chunks)-1 {
			msg.ReplyMarkup = kb
		}
		b.deliver(msg)
	}
}

// deliver sends the message, retrying once without a parse mode when
// Telegram rejects the Markdown.
func (b *Bot) deliver(msg tgbotapi.MessageConfig) {
	if _, err := b.send.Send(msg); err != nil {
		if msg.ParseMode == "" {
			b.logger.Error().Err(err).Int64("chat_id", msg.ChatID).Msg("send failed")
			return
		}
		b.logger.Warn().Err(err).Int64("chat_id", msg.ChatID).Msg("markdown send failed, retrying as plain text")
		msg.ParseMode = ""
		msg.Text = sanitizePlainText(msg.Text)
		if _, err := b.send.Send(msg); err != nil {
			b.logger.Error().Err(err).Int64("chat_id", msg.ChatID).Msg("send failed")
		}
	}
}
