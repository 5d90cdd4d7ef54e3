package redis

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"jeopardy-game/internal/domain"
)

// EventPublisher mirrors a game's events into Redis so other processes can
// follow along:
//
//	RPUSH game:{id}:events <json>   one entry per event, in order
//	SET   game:{id}:live 1 EX ttl   while the game runs; removed when it finishes
//	PUBLISH game:{id}:feed <json>   for live subscribers
type EventPublisher struct {
	client  *redis.Client
	ttl     time.Duration
	timeout time.Duration

	mu       sync.Mutex
	finished map[string]bool
}

func NewEventPublisher(client *redis.Client, ttl time.Duration) *EventPublisher {
	return &EventPublisher{
		client:   client,
		ttl:      ttl,
		timeout:  2 * time.Second,
		finished: make(map[string]bool),
	}
}

func (p *EventPublisher) OnEvent(event domain.Event) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	pipe := p.client.TxPipeline()
	pipe.RPush(ctx, EventsKey(event.GameID), raw)
	if p.ttl > 0 {
		pipe.Expire(ctx, EventsKey(event.GameID), p.ttl)
	}
	// events after the finish (the report) must not revive the live marker
	if p.markFinished(event) {
		pipe.Del(ctx, LiveKey(event.GameID))
	} else {
		pipe.Set(ctx, LiveKey(event.GameID), "1", p.ttl)
	}
	pipe.Publish(ctx, FeedChannel(event.GameID), raw)
	_, err = pipe.Exec(ctx)
	return err
}

func (p *EventPublisher) markFinished(event domain.Event) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if event.Kind == domain.EventGameFinished || event.Kind == domain.EventReportGenerated {
		p.finished[event.GameID] = true
	}
	return p.finished[event.GameID]
}

// Replay reads back the stored events of a game in emission order. Payloads
// come back as generic JSON values.
func Replay(ctx context.Context, client *redis.Client, gameID string) ([]domain.Event, error) {
	items, err := client.LRange(ctx, EventsKey(gameID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	events := make([]domain.Event, 0, len(items))
	for _, item := range items {
		var ev domain.Event
		if err := json.Unmarshal([]byte(item), &ev); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func EventsKey(gameID string) string {
	return "game:" + gameID + ":events"
}

func LiveKey(gameID string) string {
	return "game:" + gameID + ":live"
}

func FeedChannel(gameID string) string {
	return "game:" + gameID + ":feed"
}
