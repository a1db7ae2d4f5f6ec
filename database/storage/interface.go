// Package storage is the client-local durable key/value store that favorites
// and assistant chat sessions are persisted into.
package storage

import (
	"context"
	"errors"
)

// Keys touched by the booking core.
const (
	FavoritesKey    = "favorites"
	ChatSessionsKey = "ai_chat_sessions"
)

// ErrNotFound is returned by GetItem when the key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// Storage persists serialized values under named keys.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}
