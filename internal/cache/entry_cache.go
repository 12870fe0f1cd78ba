package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"learnlog/internal/model"
)

// EntryListCache keeps each user's full entry list in Redis for a short TTL.
// Writes mark the list dirty and drop it; reads only trust the cache while
// the dirty marker is absent.
type EntryListCache struct {
	client         *redisv9.Client
	listTTL        time.Duration
	dirtyMarkerTTL time.Duration
}

func NewEntryListCache(client *redisv9.Client, listTTL, dirtyMarkerTTL time.Duration) *EntryListCache {
	if listTTL <= 0 {
		listTTL = 60 * time.Second
	}
	if dirtyMarkerTTL <= 0 {
		dirtyMarkerTTL = 5 * time.Second
	}
	return &EntryListCache{
		client:         client,
		listTTL:        listTTL,
		dirtyMarkerTTL: dirtyMarkerTTL,
	}
}

func (c *EntryListCache) GetList(ctx context.Context, userID uint) ([]model.Entry, bool, error) {
	raw, err := c.client.Get(ctx, c.listKey(userID)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get entry list failed: %w", err)
	}

	var entries []model.Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached entry list failed: %w", err)
	}
	return entries, true, nil
}

func (c *EntryListCache) SetList(ctx context.Context, userID uint, entries []model.Entry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal entry list cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.listKey(userID), payload, c.listTTL).Err(); err != nil {
		return fmt.Errorf("redis set entry list failed: %w", err)
	}
	return nil
}

func (c *EntryListCache) DeleteList(ctx context.Context, userID uint) error {
	if err := c.client.Del(ctx, c.listKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis delete entry list failed: %w", err)
	}
	return nil
}

func (c *EntryListCache) MarkDirty(ctx context.Context, userID uint) error {
	if err := c.client.Set(ctx, c.dirtyKey(userID), "1", c.dirtyMarkerTTL).Err(); err != nil {
		return fmt.Errorf("redis set dirty marker failed: %w", err)
	}
	return nil
}

func (c *EntryListCache) IsDirty(ctx context.Context, userID uint) (bool, error) {
	exists, err := c.client.Exists(ctx, c.dirtyKey(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis check dirty marker failed: %w", err)
	}
	return exists > 0, nil
}

func (c *EntryListCache) listKey(userID uint) string {
	return fmt.Sprintf("journal:entries:%d", userID)
}

func (c *EntryListCache) dirtyKey(userID uint) string {
	return fmt.Sprintf("journal:entries:dirty:%d", userID)
}
