package models

import "time"

const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// ChatMessage is a single turn in an assistant conversation.
type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"` // "user" or "ai"
	Timestamp time.Time `json:"timestamp"`
}

// ChatSession is a persisted assistant conversation.
type ChatSession struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	CreatedAt time.Time     `json:"createdAt"`
	Messages  []ChatMessage `json:"messages"`
}

// AIRequest is the payload coming from the frontend into /api/assistant/messages.
type AIRequest struct {
	SessionID string `json:"sessionId,omitempty"` // empty starts a new session
	Text      string `json:"text" binding:"required"`
}

// AIResponse is what the assistant handler returns to the frontend.
type AIResponse struct {
	Session  ChatSession `json:"session"`
	Reply    ChatMessage `json:"reply"`
	Fallback bool        `json:"fallback"` // true when no model produced the reply
}
