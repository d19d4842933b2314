package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/bible-study/internal/assistant"
)

const (
	chatbotMaxTokens   = 500
	chatbotTemperature = 0.7

	chatbotPersona = "You are a knowledgeable and compassionate Bible study assistant. " +
		"Help users understand scripture, its historical and cultural background, " +
		"and how it applies to daily life. Answer clearly and respectfully, " +
		"cite book, chapter and verse where helpful, and acknowledge where " +
		"Christian traditions differ in interpretation."

	explainVersePrefix = "Please explain this Bible verse: "
)

// ChatbotReply is what the chat assistant returns. Context echoes the
// caller's context and is nil when none was given.
type ChatbotReply struct {
	Response string  `json:"response"`
	Context  *string `json:"context"`
}

// ChatbotService relays questions to the language model.
//
// It never fails: any error from the model is logged and turned into an
// apology the user can read, so the endpoint always answers 200.
type ChatbotService struct {
	completer assistant.Completer
	logger    *slog.Logger
}

func NewChatbotService(completer assistant.Completer, logger *slog.Logger) *ChatbotService {
	return &ChatbotService{completer: completer, logger: logger}
}

// Ask sends the persona, the optional context line and the message.
func (s *ChatbotService) Ask(ctx context.Context, message string, contextText *string) ChatbotReply {
	messages := []assistant.Message{
		{Role: assistant.RoleSystem, Content: chatbotPersona},
	}
	if contextText != nil && strings.TrimSpace(*contextText) != "" {
		messages = append(messages, assistant.Message{
			Role:    assistant.RoleSystem,
			Content: "Context: " + *contextText,
		})
	}
	messages = append(messages, assistant.Message{Role: assistant.RoleUser, Content: message})

	res, err := s.completer.Complete(ctx, assistant.CompletionRequest{
		Messages:    messages,
		MaxTokens:   chatbotMaxTokens,
		Temperature: chatbotTemperature,
	})
	if err != nil {
		s.logger.Warn("chat assistant unavailable", slog.String("error", err.Error()))
		return ChatbotReply{
			Response: fmt.Sprintf("I'm sorry, I'm having trouble responding right now. Please try again later. (Error: %s)", err),
			Context:  contextText,
		}
	}

	return ChatbotReply{Response: res.Content, Context: contextText}
}

// ExplainVerse rewrites the context into an explicit request to explain it,
// then behaves like Ask.
func (s *ChatbotService) ExplainVerse(ctx context.Context, message string, contextText *string) ChatbotReply {
	if contextText != nil {
		rewritten := explainVersePrefix + *contextText
		contextText = &rewritten
	}
	return s.Ask(ctx, message, contextText)
}
