package ai

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"hairrap/models"
	"hairrap/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrEmptyMessage is returned for blank user input.
var ErrEmptyMessage = errors.New("message text is empty")

const titleLimit = 30

// Responder produces the assistant's reply to text given prior history.
type Responder interface {
	Reply(ctx context.Context, history []models.ChatMessage, text string) (string, error)
}

// Assistant runs chat sessions. With a nil Responder every reply is the
// fallback text.
type Assistant struct {
	responder     Responder
	sessions      *SessionStore
	historyWindow int
	clock         utils.Clock
	logger        *zap.Logger
}

func NewAssistant(responder Responder, sessions *SessionStore, historyWindow int, clock utils.Clock, logger *zap.Logger) *Assistant {
	return &Assistant{
		responder:     responder,
		sessions:      sessions,
		historyWindow: historyWindow,
		clock:         clock,
		logger:        logger,
	}
}

func (a *Assistant) Sessions(ctx context.Context) ([]models.ChatSession, error) {
	return a.sessions.List(ctx)
}

func (a *Assistant) Session(ctx context.Context, id string) (models.ChatSession, error) {
	return a.sessions.Get(ctx, id)
}

func (a *Assistant) DeleteSession(ctx context.Context, id string) error {
	return a.sessions.Delete(ctx, id)
}

func sessionTitle(text string) string {
	if utf8.RuneCountInString(text) <= titleLimit {
		return text
	}
	return string([]rune(text)[:titleLimit]) + "..."
}

// Send records the user's message, asks the responder, and records the
// reply. An empty SessionID starts a new session titled after the message.
func (a *Assistant) Send(ctx context.Context, req models.AIRequest) (models.AIResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return models.AIResponse{}, ErrEmptyMessage
	}

	userMsg := models.ChatMessage{ID: uuid.NewString(), Text: text, Sender: models.SenderUser, Timestamp: a.clock.Now()}
	var history []models.ChatMessage
	sess, err := a.sessions.Update(ctx, req.SessionID, func(s *models.ChatSession) error {
		if s.ID == "" {
			s.ID = uuid.NewString()
			s.Title = sessionTitle(text)
			s.CreatedAt = userMsg.Timestamp
		}
		history = lastN(s.Messages, a.historyWindow)
		s.Messages = append(s.Messages, userMsg)
		return nil
	})
	if err != nil {
		return models.AIResponse{}, err
	}

	replyText, fallback := a.reply(ctx, history, text)
	aiMsg := models.ChatMessage{ID: uuid.NewString(), Text: replyText, Sender: models.SenderAI, Timestamp: a.clock.Now()}

	sess, err = a.sessions.Update(ctx, sess.ID, func(s *models.ChatSession) error {
		s.Messages = append(s.Messages, aiMsg)
		return nil
	})
	if err != nil {
		return models.AIResponse{}, err
	}
	return models.AIResponse{Session: sess, Reply: aiMsg, Fallback: fallback}, nil
}

func (a *Assistant) reply(ctx context.Context, history []models.ChatMessage, text string) (string, bool) {
	if a.responder == nil {
		return FallbackReply, true
	}
	out, err := a.responder.Reply(ctx, history, text)
	if err != nil || strings.TrimSpace(out) == "" {
		a.logger.Warn("assistant: falling back to canned reply", zap.Error(err))
		return FallbackReply, true
	}
	return out, false
}

func lastN(msgs []models.ChatMessage, n int) []models.ChatMessage {
	if n <= 0 {
		return nil
	}
	if len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	return append([]models.ChatMessage(nil), msgs...)
}
