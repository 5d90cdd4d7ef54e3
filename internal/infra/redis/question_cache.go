package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"jeopardy-game/internal/app"
	"jeopardy-game/internal/domain"
)

// QuestionCache caches loaded question sets in Redis and falls back to a
// loader on a miss. A non-positive TTL disables caching. Each set is stored as one JSON string:
//
//	SET questions:{identifier} <json> EX <ttl+jitter>
type QuestionCache struct {
	client *redis.Client
	loader app.QuestionLoader
	ttl    time.Duration
	logger *zap.Logger
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewQuestionCache(client *redis.Client, loader app.QuestionLoader, ttl time.Duration, logger *zap.Logger) *QuestionCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		logger: logger,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuestionCache) Load(ctx context.Context, identifier string) ([]domain.Question, error) {
	if qs, ok := c.get(ctx, identifier); ok {
		return qs, nil
	}

	result, err, _ := c.sf.Do(identifier, func() (interface{}, error) {
		// Re-check in case another caller filled it.
		if qs, ok := c.get(ctx, identifier); ok {
			return qs, nil
		}

		qs, err := c.loader.Load(ctx, identifier)
		if err != nil {
			return nil, err
		}
		if len(qs) > 0 && c.ttl > 0 {
			c.put(ctx, identifier, qs)
		}
		return qs, nil
	})
	if err != nil {
		return nil, err
	}
	return domain.CloneQuestions(result.([]domain.Question)), nil
}

// Invalidate drops a cached set so the next Load goes to the loader.
func (c *QuestionCache) Invalidate(ctx context.Context, identifier string) error {
	return c.client.Del(ctx, c.key(identifier)).Err()
}

func (c *QuestionCache) get(ctx context.Context, identifier string) ([]domain.Question, bool) {
	raw, err := c.client.Get(ctx, c.key(identifier)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("question cache read failed", zap.String("source", identifier), zap.Error(err))
		}
		return nil, false
	}
	var qs []domain.Question
	if err := json.Unmarshal(raw, &qs); err != nil || len(qs) == 0 {
		return nil, false
	}
	return qs, true
}

// put is best effort; a failed write only costs a reload next time.
func (c *QuestionCache) put(ctx context.Context, identifier string, qs []domain.Question) {
	raw, err := json.Marshal(qs)
	if err != nil {
		c.logger.Warn("question cache encode failed", zap.String("source", identifier), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.key(identifier), raw, c.ttlWithJitter()).Err(); err != nil {
		c.logger.Warn("question cache write failed", zap.String("source", identifier), zap.Error(err))
	}
}

func (c *QuestionCache) key(identifier string) string {
	return fmt.Sprintf("questions:%s", identifier)
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
