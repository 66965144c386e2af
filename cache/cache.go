package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"contact-management/logger"
	"contact-management/model"
)

const defaultTTLSeconds = 3600

// InitRedis connects to the Redis instance named by REDIS_HOST.
func InitRedis() (*redis.Client, error) {
	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		return nil, errors.New("REDIS_HOST environment variable is not set")
	}

	client := redis.NewClient(&redis.Options{
		Addr: redisHost,
	})
	if _, err := client.Ping(context.TODO()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// ContactCache keeps whole contact aggregates as JSON under contact:<id>.
type ContactCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

func NewContactCache(client *redis.Client, log *logger.Logger) *ContactCache {
	ttl := defaultTTLSeconds
	if raw := os.Getenv("CACHE_TTL_SECONDS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			ttl = parsed
		}
	}
	return &ContactCache{
		client: client,
		ttl:    time.Duration(ttl) * time.Second,
		log:    log.With("component", "ContactCache"),
	}
}

func key(id int64) string {
	return fmt.Sprintf("contact:%d", id)
}

func (c *ContactCache) Set(ctx context.Context, contact *model.Contact) error {
	data, err := json.Marshal(contact)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(contact.ID), data, c.ttl).Err()
}

func (c *ContactCache) Invalidate(ctx context.Context, id int64) error {
	return c.client.Del(ctx, key(id)).Err()
}
