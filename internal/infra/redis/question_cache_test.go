package redis

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"jeopardy-game/internal/app"
	"jeopardy-game/internal/domain"
	"jeopardy-game/internal/infra/memory"
)

func TestQuestionCacheCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{
		QuestionLoader: memory.NewStaticQuestionLoader(map[string][]domain.Question{
			"science.csv": sampleQuestions(),
		}),
	}
	cache := NewQuestionCache(newClient(mr), loader, time.Minute, nil)

	qs, err := cache.Load(context.Background(), "science.csv")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loader.calls != 1 || len(qs) != 1 {
		t.Fatalf("expected loader once with one question, calls=%d len=%d", loader.calls, len(qs))
	}
	if !mr.Exists("questions:science.csv") {
		t.Fatalf("expected redis key to be set")
	}
	if ttl := mr.TTL("questions:science.csv"); ttl < time.Minute || ttl > time.Minute+6*time.Second {
		t.Fatalf("unexpected ttl %s", ttl)
	}

	// Second call should hit cache, loader not incremented.
	qs, _ = cache.Load(context.Background(), "science.csv")
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if qs[0].Prompt != "What is H2O?" || len(qs[0].Options) != 2 || qs[0].Answer != "A" {
		t.Fatalf("cached question lost fields: %+v", qs[0])
	}

	mr.FastForward(2 * time.Minute)
	_, _ = cache.Load(context.Background(), "science.csv")
	if loader.calls != 2 {
		t.Fatalf("expected reload after expiry, loader calls=%d", loader.calls)
	}
}

func TestQuestionCacheZeroTTLDisablesCaching(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{
		QuestionLoader: memory.NewStaticQuestionLoader(map[string][]domain.Question{
			"science.csv": sampleQuestions(),
		}),
	}
	cache := NewQuestionCache(newClient(mr), loader, 0, nil)

	for i := 0; i < 2; i++ {
		if _, err := cache.Load(context.Background(), "science.csv"); err != nil {
			t.Fatalf("load %d: %v", i, err)
		}
	}
	if mr.Exists("questions:science.csv") {
		t.Fatalf("zero ttl must not store the set")
	}
	if loader.calls != 2 {
		t.Fatalf("expected loader on every call, calls=%d", loader.calls)
	}
}

func TestQuestionCacheConcurrentLoads(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	sets := make(map[string][]domain.Question)
	for i := 0; i < 16; i++ {
		sets[fmt.Sprintf("set-%d.csv", i)] = sampleQuestions()
	}
	cache := NewQuestionCache(newClient(mr), memory.NewStaticQuestionLoader(sets), time.Minute, nil)

	var wg sync.WaitGroup
	errs := make(chan error, len(sets))
	for id := range sets {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if _, err := cache.Load(context.Background(), id); err != nil {
				errs <- err
			}
		}(id)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent load: %v", err)
	}
	for id := range sets {
		if !mr.Exists("questions:" + id) {
			t.Fatalf("expected %s cached", id)
		}
	}
}

func TestQuestionCacheDoesNotStoreEmptySets(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{
		QuestionLoader: memory.NewStaticQuestionLoader(map[string][]domain.Question{"empty.csv": {}}),
	}
	cache := NewQuestionCache(newClient(mr), loader, time.Minute, nil)

	if qs, err := cache.Load(context.Background(), "empty.csv"); err != nil || len(qs) != 0 {
		t.Fatalf("expected empty set, got %v %v", qs, err)
	}
	if mr.Exists("questions:empty.csv") {
		t.Fatalf("empty set should not be cached")
	}
	if _, err := cache.Load(context.Background(), "missing.csv"); err == nil {
		t.Fatalf("expected loader error to surface")
	}
}

func TestQuestionCacheFallsBackWhenRedisIsDown(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	client := newClient(mr)
	mr.Close()

	loader := &countingLoader{
		QuestionLoader: memory.NewStaticQuestionLoader(map[string][]domain.Question{
			"science.csv": sampleQuestions(),
		}),
	}
	cache := NewQuestionCache(client, loader, time.Minute, nil)

	qs, err := cache.Load(context.Background(), "science.csv")
	if err != nil || len(qs) != 1 {
		t.Fatalf("expected loader result without redis, got %v %v", qs, err)
	}
}

type countingLoader struct {
	app.QuestionLoader
	calls int
}

func (l *countingLoader) Load(ctx context.Context, identifier string) ([]domain.Question, error) {
	l.calls++
	return l.QuestionLoader.Load(ctx, identifier)
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:       "11",
			Category: "Science",
			Value:    100,
			Prompt:   "What is H2O?",
			Options: []domain.Option{
				{Label: "A", Text: "Water"},
				{Label: "B", Text: "Salt"},
			},
			Answer: "A",
		},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
