package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sakif/bible-study/internal/service"
)

// defaultExplainMessage is used when explain-verse is called with only a
// verse reference.
const defaultExplainMessage = "Please explain this verse."

// ChatbotHandler relays questions to the study assistant.
//
// Upstream failures never reach the status line: the service answers with
// an apology and the handler always writes 200. Only auth (401) and a bad
// request body can fail the call.
type ChatbotHandler struct {
	chatbot *service.ChatbotService
	decoder *requestDecoder
	logger  *slog.Logger
}

func NewChatbotHandler(chatbot *service.ChatbotService, logger *slog.Logger) *ChatbotHandler {
	return &ChatbotHandler{
		chatbot: chatbot,
		decoder: &requestDecoder{validate: newValidator()},
		logger:  logger,
	}
}

type askRequest struct {
	Message string  `json:"message" validate:"required"`
	Context *string `json:"context"`
}

// explainRequest accepts either {message, context} or a bare verse
// reference {book, chapter, verse, text}.
type explainRequest struct {
	Message string  `json:"message"`
	Context *string `json:"context"`
	Book    string  `json:"book"`
	Chapter int     `json:"chapter"`
	Verse   int     `json:"verse"`
	Text    string  `json:"text"`
}

// verseContext builds "Book C:V - text" from the reference fields, or
// returns nil when no book was given.
func (e explainRequest) verseContext() *string {
	book := strings.TrimSpace(e.Book)
	if book == "" {
		return nil
	}
	ctx := fmt.Sprintf("%s %d:%d", book, e.Chapter, e.Verse)
	if text := strings.TrimSpace(e.Text); text != "" {
		ctx += " - " + text
	}
	return &ctx
}

// HandleAsk answers a free-form question.
//
// HTTP: POST /api/chatbot/ask
// REQUEST BODY: {"message": "...", "context": "..."}
// RESPONSE:     {"response": "...", "context": "..." | null}
func (h *ChatbotHandler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}

	var req askRequest
	if err := h.decoder.decode(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, h.chatbot.Ask(r.Context(), req.Message, req.Context))
}

// HandleExplainVerse asks the assistant to explain a passage.
//
// HTTP: POST /api/chatbot/explain-verse
func (h *ChatbotHandler) HandleExplainVerse(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}

	var req explainRequest
	if err := h.decoder.decode(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	contextText := req.Context
	if contextText == nil {
		contextText = req.verseContext()
	}
	message := req.Message
	if strings.TrimSpace(message) == "" {
		message = defaultExplainMessage
	}

	writeJSON(w, http.StatusOK, h.chatbot.ExplainVerse(r.Context(), message, contextText))
}
