package service

import (
	"context"
	"log/slog"

	"github.com/umeshgupta05/SmartPathAI/internal/model"
)

// chatFallback is returned when the AI backend is unreachable, so the chat
// box always answers something.
const chatFallback = "I'm having trouble connecting right now. Please try again in a moment."

// ChatService answers learner questions through the AI assistant.
type ChatService struct {
	gen    Generator
	logger *slog.Logger
}

// NewChatService creates a new ChatService.
func NewChatService(gen Generator, logger *slog.Logger) *ChatService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatService{gen: gen, logger: logger}
}

// Reply generates an assistant reply personalised with the learner's name
// and interests. Generation failures degrade to a canned apology.
func (s *ChatService) Reply(ctx context.Context, user *model.UserProfile, message string) string {
	reply, err := s.gen.Chat(ctx, message, user.Name, user.Interests())
	if err != nil || reply == "" {
		if err != nil {
			s.logger.Warn("chat generation failed", slog.String("error", err.Error()))
		}
		return chatFallback
	}
	return reply
}
