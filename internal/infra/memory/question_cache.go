package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"jeopardy-game/internal/app"
	"jeopardy-game/internal/domain"
)

// QuestionCache keeps loaded question sets for a TTL so replaying the same
// file skips parsing it again. A non-positive TTL disables caching.
type QuestionCache struct {
	loader app.QuestionLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedSet
}

type cachedSet struct {
	questions []domain.Question
	expiresAt time.Time
}

func NewQuestionCache(loader app.QuestionLoader, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedSet),
	}
}

// Load returns a private copy of the cached set, loading it on a miss.
// Empty results are not cached.
func (c *QuestionCache) Load(ctx context.Context, identifier string) ([]domain.Question, error) {
	if qs, ok := c.lookup(identifier); ok {
		return qs, nil
	}

	result, err, _ := c.sf.Do(identifier, func() (interface{}, error) {
		if qs, ok := c.lookup(identifier); ok {
			return qs, nil
		}

		qs, err := c.loader.Load(ctx, identifier)
		if err != nil {
			return nil, err
		}
		if len(qs) == 0 || c.ttl <= 0 {
			return qs, nil
		}

		c.mu.Lock()
		c.cache[identifier] = cachedSet{
			questions: domain.CloneQuestions(qs),
			expiresAt: c.clock().Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return qs, nil
	})
	if err != nil {
		return nil, err
	}
	return domain.CloneQuestions(result.([]domain.Question)), nil
}

func (c *QuestionCache) lookup(identifier string) ([]domain.Question, bool) {
	now := c.clock()
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.cache[identifier]
	if !ok || !entry.expiresAt.After(now) {
		return nil, false
	}
	return domain.CloneQuestions(entry.questions), true
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

// StaticQuestionLoader serves question sets from an in-memory map (tests, demos
// and the built-in sample board).
type StaticQuestionLoader struct {
	sets map[string][]domain.Question
}

func NewStaticQuestionLoader(sets map[string][]domain.Question) *StaticQuestionLoader {
	return &StaticQuestionLoader{sets: sets}
}

func (l *StaticQuestionLoader) Load(_ context.Context, identifier string) ([]domain.Question, error) {
	if qs, ok := l.sets[identifier]; ok {
		return domain.CloneQuestions(qs), nil
	}
	return nil, domain.ErrQuestionSetNotFound
}

// SampleBoard is a small built-in board for trying the game without a file.
func SampleBoard() []domain.Question {
	opts := func(a, b, c, d string) []domain.Option {
		return []domain.Option{{Label: "A", Text: a}, {Label: "B", Text: b}, {Label: "C", Text: c}, {Label: "D", Text: d}}
	}
	return []domain.Question{
		{ID: "11", Category: "Science", Value: 100, Prompt: "What is H2O commonly called?", Options: opts("Water", "Salt", "Oxygen", "Hydrogen"), Answer: "A"},
		{ID: "12", Category: "Science", Value: 200, Prompt: "Which planet is known as the Red Planet?", Options: opts("Venus", "Mars", "Jupiter", "Mercury"), Answer: "B"},
		{ID: "21", Category: "History", Value: 100, Prompt: "In which year did World War II end?", Options: opts("1918", "1939", "1945", "1950"), Answer: "C"},
		{ID: "22", Category: "History", Value: 200, Prompt: "Who was the first President of the United States?", Options: opts("Lincoln", "Jefferson", "Adams", "Washington"), Answer: "D"},
		{ID: "31", Category: "Geography", Value: 100, Prompt: "What is the capital of France?", Options: opts("Paris", "Rome", "Madrid", "Berlin"), Answer: "A"},
		{ID: "32", Category: "Geography", Value: 200, Prompt: "Which is the longest river in South America?", Options: opts("Orinoco", "Amazon", "Parana", "Magdalena"), Answer: "B"},
	}
}
