// Package favorites keeps the set of favorited service ids. It is a purely
// local preference layer; nothing here talks to the booking API.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"hairrap/database/storage"
	"hairrap/utils"

	"go.uber.org/zap"
)

// Snapshot is an immutable view of the favorite set, in insertion order.
type Snapshot struct {
	Items []string `json:"items"`
}

// Store is the toggle-set of favorite service ids. Every toggle is written
// through to storage before it becomes visible.
type Store struct {
	mu      sync.RWMutex
	items   []string
	storage storage.Storage
	key     string
	logger  *zap.Logger
	changes utils.Broadcaster[Snapshot]
}

// NewStore loads the persisted set. A missing or unreadable value starts
// an empty set; only storage I/O failures are returned.
func NewStore(ctx context.Context, st storage.Storage, logger *zap.Logger) (*Store, error) {
	s := &Store{storage: st, key: storage.FavoritesKey, logger: logger}

	raw, err := st.GetItem(ctx, s.key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("load favorites: %w", err)
	}

	items, err := decode(raw)
	if err != nil {
		logger.Warn("favorites: ignoring unreadable persisted set", zap.Error(err))
		return s, nil
	}
	s.items = items
	return s, nil
}

// decode accepts ids stored as strings or numbers and drops duplicates.
func decode(raw string) ([]string, error) {
	var values []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(values))
	items := make([]string, 0, len(values))
	for _, v := range values {
		var id string
		if err := json.Unmarshal(v, &id); err != nil {
			var n json.Number
			if err := json.Unmarshal(v, &n); err != nil {
				return nil, fmt.Errorf("favorite id %s: %w", v, err)
			}
			id = n.String()
		}
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		items = append(items, id)
	}
	return items, nil
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Items: append([]string{}, s.items...)}
}

func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	return s.changes.Subscribe(fn)
}

func (s *Store) IsFavorite(serviceID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.items {
		if id == serviceID {
			return true
		}
	}
	return false
}

// ToggleFavorite adds serviceID if absent and removes it if present, then
// persists the whole set. If the write fails the in-memory set is left as
// it was. It reports whether the service is a favorite afterwards.
func (s *Store) ToggleFavorite(ctx context.Context, serviceID string) (bool, error) {
	serviceID = strings.TrimSpace(serviceID)
	if serviceID == "" {
		return false, errors.New("favorites: empty service id")
	}

	s.mu.Lock()
	next := make([]string, 0, len(s.items)+1)
	removed := false
	for _, id := range s.items {
		if id == serviceID {
			removed = true
			continue
		}
		next = append(next, id)
	}
	if !removed {
		next = append(next, serviceID)
	}

	raw, err := json.Marshal(next)
	if err == nil {
		err = s.storage.SetItem(ctx, s.key, string(raw))
	}
	if err != nil {
		s.mu.Unlock()
		s.logger.Error("favorites: persist failed", zap.String("serviceID", serviceID), zap.Error(err))
		return removed, fmt.Errorf("persist favorites: %w", err)
	}
	s.items = next
	snap := Snapshot{Items: append([]string{}, next...)}
	s.mu.Unlock()

	s.changes.Publish(snap)
	s.logger.Debug("favorites: toggled", zap.String("serviceID", serviceID), zap.Bool("favorite", !removed))
	return !removed, nil
}
