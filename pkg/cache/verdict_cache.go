package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/modshield/modshield/pkg/moderation"
)

const verdictKeyPattern = "verdict:%s:%x"

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

// VerdictCache keeps classifier verdicts in redis, keyed by classifier name
// and text hash. Cache failures are soft: a broken redis reads as a miss.
type VerdictCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewVerdictCache(cfg Config, logger *logrus.Logger) *VerdictCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &VerdictCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// NewVerdictCacheWithClient is the test seam for redismock.
func NewVerdictCacheWithClient(client *redis.Client, ttl time.Duration, logger *logrus.Logger) *VerdictCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &VerdictCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func Key(classifier, text string) string {
	return fmt.Sprintf(verdictKeyPattern, classifier, sha256.Sum256([]byte(text)))
}

func (c *VerdictCache) Get(ctx context.Context, key string) (moderation.Verdict, bool) {
	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithError(err).Debug("verdict cache read failed")
		}
		return moderation.NoHit(), false
	}

	var verdict moderation.Verdict
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		c.logger.WithError(err).Debug("verdict cache entry corrupt, ignoring")
		return moderation.NoHit(), false
	}
	return verdict, true
}

func (c *VerdictCache) Set(ctx context.Context, key string, verdict moderation.Verdict) {
	raw, err := json.Marshal(verdict)
	if err != nil {
		c.logger.WithError(err).Debug("verdict cache marshal failed")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.client.Set(ctx, key, string(raw), c.ttl).Err(); err != nil {
		c.logger.WithError(err).Debug("verdict cache write failed")
	}
}

func (c *VerdictCache) Close() error {
	return c.client.Close()
}
