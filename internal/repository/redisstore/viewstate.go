// Package redisstore provides Redis-backed implementations of the view-state
// store and the folder/document list cache.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"archiva/internal/domain/models"
	"archiva/internal/domain/repositories"
)

// viewStateTTL bounds how long an idle view survives. Long enough that a
// returning user finds their tree the way they left it.
const viewStateTTL = 90 * 24 * time.Hour

// ViewStateStore persists per-user, per-corpus tree view state in Redis.
type ViewStateStore struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewViewStateStore creates a Redis-backed view state store from a URL
func NewViewStateStore(redisURL string, logger *slog.Logger) (*ViewStateStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewViewStateStoreWithClient(client, logger), nil
}

// NewViewStateStoreWithClient creates a store from an existing Redis client
func NewViewStateStoreWithClient(client *redis.Client, logger *slog.Logger) *ViewStateStore {
	return &ViewStateStore{
		client: client,
		prefix: "view:",
		logger: logger,
	}
}

var _ repositories.ViewStateRepository = (*ViewStateStore)(nil)

// key generates the Redis key for a user+corpus view
func (s *ViewStateStore) key(userID, corpusID string) string {
	return s.prefix + userID + ":" + corpusID
}

// Get returns the stored view state. Absent or undecodable state degrades to
// the default state (root selected, nothing expanded) instead of failing.
func (s *ViewStateStore) Get(ctx context.Context, userID, corpusID string) (*models.ViewState, error) {
	data, err := s.client.Get(ctx, s.key(userID, corpusID)).Result()
	if err == redis.Nil {
		return models.DefaultViewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get view state: %w", err)
	}

	var state models.ViewState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		s.logger.Warn("corrupt view state, falling back to default",
			"user_id", userID,
			"corpus_id", corpusID,
			"error", err,
		)
		return models.DefaultViewState(), nil
	}

	if state.Expanded == nil {
		state.Expanded = []string{}
	}
	if state.Selection.Kind == "" {
		state.Selection = models.Selection{Kind: models.SelectionRoot}
	}

	return &state, nil
}

// Put replaces the stored view state
func (s *ViewStateStore) Put(ctx context.Context, userID, corpusID string, state *models.ViewState) error {
	state.UpdatedAt = time.Now()

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal view state: %w", err)
	}

	if err := s.client.Set(ctx, s.key(userID, corpusID), data, viewStateTTL).Err(); err != nil {
		return fmt.Errorf("save view state: %w", err)
	}

	return nil
}

// Delete clears the stored view state
func (s *ViewStateStore) Delete(ctx context.Context, userID, corpusID string) error {
	if err := s.client.Del(ctx, s.key(userID, corpusID)).Err(); err != nil {
		return fmt.Errorf("delete view state: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (s *ViewStateStore) Close() error {
	return s.client.Close()
}

// Ping checks if Redis is reachable
func (s *ViewStateStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
