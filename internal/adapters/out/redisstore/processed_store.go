// Package redisstore implements the processed-envelope store on Redis.
// Entries expire after a TTL; the store is a redelivery fast path, not the
// source of truth, so expiry only costs a redundant conditional update.
package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ordermgmt/internal/core/domain/model/kernel"
)

const keyPrefix = "fulfillment:processed:"

// ProcessedEnvelopeStore implements ports.ProcessedEnvelopeStore on Redis.
type ProcessedEnvelopeStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProcessedEnvelopeStore creates a Redis-backed processed-envelope store.
// Entries live for the given TTL.
func NewProcessedEnvelopeStore(client *redis.Client, ttl time.Duration) *ProcessedEnvelopeStore {
	return &ProcessedEnvelopeStore{
		client: client,
		ttl:    ttl,
	}
}

// IsProcessed reports whether the order's envelope was already processed.
func (s *ProcessedEnvelopeStore) IsProcessed(ctx context.Context, orderID kernel.UUID) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}

	exists, err := s.client.Exists(ctx, key(orderID)).Result()
	if err != nil {
		return false, fmt.Errorf("checking processed envelope for order %s: %w", orderID, err)
	}

	return exists > 0, nil
}

// MarkProcessed records the order's envelope as processed for the TTL window.
func (s *ProcessedEnvelopeStore) MarkProcessed(ctx context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	if err := s.client.Set(ctx, key(orderID), 1, s.ttl).Err(); err != nil {
		return fmt.Errorf("marking envelope processed for order %s: %w", orderID, err)
	}

	return nil
}

func key(orderID kernel.UUID) string {
	return keyPrefix + orderID.String()
}
