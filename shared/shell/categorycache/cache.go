// Package categorycache caches category-id resolution in Redis so that the
// hot search path does not hit the categories table on every request.
// The cache is strictly an accelerator: every failure degrades to a miss and
// with it a direct store read, never a request failure.
package categorycache

import (
	"context"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/mkazarian-1/Nordic-Nest-Shop-Api/catalog"
)

const keyPrefix = "category:ref:"

const (
	logMsgLookupFailed = "category cache lookup failed"
	logMsgStoreFailed  = "category cache store failed"
	logMsgDropFailed   = "category cache invalidation failed"
	logAttrError       = "error"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Cache resolves category ids to (id, type) pairs through Redis.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger catalog.ContextualLogger
}

// New creates a category cache on the given Redis client.
// A nil logger disables logging.
func New(client *redis.Client, ttl time.Duration, logger catalog.ContextualLogger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Lookup returns the cached refs for the hit ids and the ids that missed.
// Any Redis failure turns the whole request into misses.
func (c *Cache) Lookup(ctx context.Context, categoryIDs []int64) (hits []catalog.CategoryRef, misses []int64) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		keys = append(keys, cacheKey(id))
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		c.warn(ctx, logMsgLookupFailed, err)
		return nil, categoryIDs
	}

	for i, value := range values {
		payload, ok := value.(string)
		if !ok {
			misses = append(misses, categoryIDs[i])
			continue
		}

		var ref catalog.CategoryRef
		if unmarshalErr := json.UnmarshalFromString(payload, &ref); unmarshalErr != nil {
			c.warn(ctx, logMsgLookupFailed, unmarshalErr)
			misses = append(misses, categoryIDs[i])
			continue
		}

		hits = append(hits, ref)
	}

	return hits, misses
}

// Store writes the given refs with the configured TTL. Failures are logged
// and swallowed; the next lookup will simply miss.
func (c *Cache) Store(ctx context.Context, refs []catalog.CategoryRef) {
	if len(refs) == 0 {
		return
	}

	pipe := c.client.Pipeline()
	for _, ref := range refs {
		payload, err := json.MarshalToString(ref)
		if err != nil {
			c.warn(ctx, logMsgStoreFailed, err)
			continue
		}

		pipe.Set(ctx, cacheKey(ref.ID), payload, c.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		c.warn(ctx, logMsgStoreFailed, err)
	}
}

// Drop invalidates the given category ids after a category mutation.
func (c *Cache) Drop(ctx context.Context, categoryIDs ...int64) {
	if len(categoryIDs) == 0 {
		return
	}

	keys := make([]string, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		keys = append(keys, cacheKey(id))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.warn(ctx, logMsgDropFailed, err)
	}
}

func cacheKey(categoryID int64) string {
	return keyPrefix + strconv.FormatInt(categoryID, 10)
}

func (c *Cache) warn(ctx context.Context, msg string, err error) {
	if c.logger != nil {
		c.logger.WarnContext(ctx, msg, logAttrError, err.Error())
	}
}
