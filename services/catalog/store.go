// Package catalog holds the client's copy of the bookable services.
package catalog

import (
	"context"
	"sync"

	"hairrap/models"
	"hairrap/services/transport"
	"hairrap/utils"

	"go.uber.org/zap"
)

// Snapshot is an immutable view of the catalog store.
type Snapshot struct {
	Items  []models.Service     `json:"items"`
	Status models.RequestStatus `json:"status"`
	Error  string               `json:"error,omitempty"`
}

// Store holds the service list and its fetch status. Services are read-only
// from the client's side, so the only operation is FetchServices.
type Store struct {
	mu        sync.RWMutex
	state     Snapshot
	transport transport.Transport
	logger    *zap.Logger
	changes   utils.Broadcaster[Snapshot]
}

func NewStore(t transport.Transport, logger *zap.Logger) *Store {
	return &Store{
		state:     Snapshot{Status: models.StatusIdle},
		transport: t,
		logger:    logger,
	}
}

// Snapshot returns the current state. The items slice is a copy.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := s.state
	snap.Items = append([]models.Service(nil), s.state.Items...)
	return snap
}

// Subscribe calls fn with a fresh snapshot after every state change.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	return s.changes.Subscribe(fn)
}

// FetchServices loads the catalog when it has never been loaded or the last
// attempt failed. While a fetch is in flight, or once one has succeeded,
// it returns the current snapshot without issuing a request.
func (s *Store) FetchServices(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	if s.state.Status == models.StatusLoading || s.state.Status == models.StatusSucceeded {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, nil
	}
	s.state.Status = models.StatusLoading
	s.state.Error = ""
	loading := s.snapshotLocked()
	s.mu.Unlock()
	s.changes.Publish(loading)
	s.logger.Debug("catalog: fetching services")

	services, err := s.transport.GetServices(ctx)

	s.mu.Lock()
	if err != nil {
		s.state.Status = models.StatusFailed
		s.state.Error = err.Error()
	} else {
		s.state.Status = models.StatusSucceeded
		s.state.Items = append([]models.Service(nil), services...)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.changes.Publish(snap)

	if err != nil {
		s.logger.Warn("catalog: fetch failed", zap.Error(err))
		return snap, err
	}
	s.logger.Debug("catalog: services loaded", zap.Int("count", len(services)))
	return snap, nil
}

// Lookup finds a loaded service by id.
func (s *Store) Lookup(id string) (models.Service, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, svc := range s.state.Items {
		if svc.ID == id {
			return svc, true
		}
	}
	return models.Service{}, false
}
