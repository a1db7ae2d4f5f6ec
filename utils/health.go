package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of external dependencies.
type HealthStatus struct {
	Storage   string    `json:"storage"`
	Redis     *bool     `json:"redis,omitempty"` // nil when redis is not in use
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

func checkHealth(ctx context.Context, storageBackend string, client *redis.Client) HealthStatus {
	status := HealthStatus{Storage: storageBackend, CheckedAt: time.Now()}
	if client != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		ok := client.Ping(pingCtx).Err() == nil
		cancel()
		status.Redis = &ok
	}
	return status
}

// StartHealthMonitor checks dependencies now and then every interval until
// ctx ends. client may be nil.
func StartHealthMonitor(ctx context.Context, storageBackend string, client *redis.Client, interval time.Duration) {
	update := func() {
		status := checkHealth(ctx, storageBackend, client)
		healthMu.Lock()
		currentHealth = status
		healthMu.Unlock()
	}
	update()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				update()
			}
		}
	}()
}
