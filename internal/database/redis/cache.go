package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eventbooker/ticketing/internal/entity"

	"github.com/go-redis/redis/v8"
)

// AvailabilityCache serves category availability snapshots to catalog
// reads. Snapshots are eventually consistent with respect to concurrent
// reservations; only the inventory store's reserve/release calls are
// authoritative.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *AvailabilityCache) SetCategories(ctx context.Context, eventID string, categories []*entity.TicketCategory) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, "availability:"+eventID, data, c.ttl).Err()
}

func (c *AvailabilityCache) GetCategories(ctx context.Context, eventID string) ([]*entity.TicketCategory, error) {
	data, err := c.client.Get(ctx, "availability:"+eventID).Result()
	if err != nil {
		return nil, err
	}

	var categories []*entity.TicketCategory
	err = json.Unmarshal([]byte(data), &categories)
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// Invalidate drops the snapshot after a reservation or release commits.
func (c *AvailabilityCache) Invalidate(ctx context.Context, eventIDs ...string) error {
	keys := make([]string, 0, len(eventIDs))
	for _, id := range eventIDs {
		keys = append(keys, "availability:"+id)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// IsCacheMiss reports whether the error is an absent key rather than a
// transport failure.
func IsCacheMiss(err error) bool {
	return err == redis.Nil
}
