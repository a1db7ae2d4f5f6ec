package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"hairrap/database/storage"
	"hairrap/models"

	"go.uber.org/zap"
)

// ErrSessionNotFound is returned for an unknown chat session id.
var ErrSessionNotFound = errors.New("chat session not found")

// SessionStore persists chat sessions, newest first, as one JSON array.
type SessionStore struct {
	mu      sync.Mutex
	storage storage.Storage
	logger  *zap.Logger
}

func NewSessionStore(st storage.Storage, logger *zap.Logger) *SessionStore {
	return &SessionStore{storage: st, logger: logger}
}

func (s *SessionStore) load(ctx context.Context) ([]models.ChatSession, error) {
	raw, err := s.storage.GetItem(ctx, storage.ChatSessionsKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load chat sessions: %w", err)
	}
	var sessions []models.ChatSession
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		s.logger.Warn("assistant: ignoring unreadable chat sessions", zap.Error(err))
		return nil, nil
	}
	return sessions, nil
}

func (s *SessionStore) save(ctx context.Context, sessions []models.ChatSession) error {
	if sessions == nil {
		sessions = []models.ChatSession{}
	}
	raw, err := json.Marshal(sessions)
	if err != nil {
		return err
	}
	if err := s.storage.SetItem(ctx, storage.ChatSessionsKey, string(raw)); err != nil {
		return fmt.Errorf("save chat sessions: %w", err)
	}
	return nil
}

func (s *SessionStore) List(ctx context.Context) ([]models.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []models.ChatSession{}
	}
	return sessions, nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (models.ChatSession, error) {
	sessions, err := s.List(ctx)
	if err != nil {
		return models.ChatSession{}, err
	}
	for _, sess := range sessions {
		if sess.ID == id {
			return sess, nil
		}
	}
	return models.ChatSession{}, ErrSessionNotFound
}

// Update applies fn to the session with id and persists the result. An
// empty id inserts the session fn builds at the front of the list.
func (s *SessionStore) Update(ctx context.Context, id string, fn func(*models.ChatSession) error) (models.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load(ctx)
	if err != nil {
		return models.ChatSession{}, err
	}

	if id == "" {
		var sess models.ChatSession
		if err := fn(&sess); err != nil {
			return models.ChatSession{}, err
		}
		sessions = append([]models.ChatSession{sess}, sessions...)
		return sess, s.save(ctx, sessions)
	}

	for i := range sessions {
		if sessions[i].ID != id {
			continue
		}
		if err := fn(&sessions[i]); err != nil {
			return models.ChatSession{}, err
		}
		return sessions[i], s.save(ctx, sessions)
	}
	return models.ChatSession{}, ErrSessionNotFound
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := sessions[:0]
	found := false
	for _, sess := range sessions {
		if sess.ID == id {
			found = true
			continue
		}
		kept = append(kept, sess)
	}
	if !found {
		return ErrSessionNotFound
	}
	return s.save(ctx, kept)
}
