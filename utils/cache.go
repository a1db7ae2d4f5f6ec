// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"hairrap/config"

	"github.com/go-redis/redis/v8"
)

// StorageClient backs the redis flavour of client-local storage.
var StorageClient *redis.Client

// InitStorageClient connects to the redis DB configured for client-local storage.
func InitStorageClient(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisStorageDB,
	})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("connect to redis (storage): %w", err)
	}
	StorageClient = client
	return nil
}

// GetStorageClient returns the storage client, connecting on first use.
func GetStorageClient() (*redis.Client, error) {
	if StorageClient == nil {
		if err := InitStorageClient(context.Background()); err != nil {
			return nil, err
		}
	}
	return StorageClient, nil
}
