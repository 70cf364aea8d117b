// Package chat manages free-form chat sessions with the bot personality
package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/finbuddy/finbot/internal/common"
	"github.com/finbuddy/finbot/internal/interfaces"
)

// ErrNoSession indicates the user has no active chat session
var ErrNoSession = errors.New("no active chat session")

// Service implements ChatService. Sessions are in-memory only and keyed
// by the chat platform's user ID.
type Service struct {
	gemini      interfaces.GeminiClient
	personality Personality
	logger      *common.Logger

	mu       sync.Mutex
	sessions map[int64]interfaces.ChatSession
}

// NewService creates a new chat service
func NewService(gemini interfaces.GeminiClient, personality Personality, logger *common.Logger) *Service {
	return &Service{
		gemini:      gemini,
		personality: personality,
		logger:      logger,
		sessions:    make(map[int64]interfaces.ChatSession),
	}
}

// Start opens (or replaces) the user's chat session and returns the
// personality welcome message
func (s *Service) Start(ctx context.Context, userID int64) (string, error) {
	session, err := s.gemini.StartChat(ctx, s.personality.SystemPrompt)
	if err != nil {
		return "", fmt.Errorf("start chat session: %w", err)
	}

	s.mu.Lock()
	s.sessions[userID] = session
	s.mu.Unlock()

	s.logger.Info().Int64("user", userID).Str("personality", s.personality.Name).Msg("Chat session started")

	return s.personality.WelcomeMessage, nil
}

// Send relays user text to the session and returns the reply
func (s *Service) Send(ctx context.Context, userID int64, text string) (string, error) {
	s.mu.Lock()
	session, ok := s.sessions[userID]
	s.mu.Unlock()

	if !ok {
		return "", ErrNoSession
	}

	reply, err := session.Send(ctx, text)
	if err != nil {
		return "", fmt.Errorf("chat message: %w", err)
	}

	return reply, nil
}

// End discards the user's chat session if one exists
func (s *Service) End(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[userID]; ok {
		delete(s.sessions, userID)
		s.logger.Debug().Int64("user", userID).Msg("Chat session ended")
	}
}

// Ensure Service implements ChatService
var _ interfaces.ChatService = (*Service)(nil)
