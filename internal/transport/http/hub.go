package http

import (
	"sync"

	"jeopardy-game/internal/domain"
)

const subscriberBuffer = 16

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// Hub is an event sink that fans game events out to spectators. Delivery
// never blocks the game: a watcher that falls behind loses its oldest message.
type Hub struct {
	mu          sync.Mutex
	order       []string
	players     map[string]domain.Player
	finished    []domain.Standing
	subscribers map[chan outboundMessage[any]]struct{}
}

func NewHub() *Hub {
	return &Hub{
		players:     make(map[string]domain.Player),
		subscribers: make(map[chan outboundMessage[any]]struct{}),
	}
}

func (h *Hub) OnEvent(event domain.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	changed := true
	switch p := event.Payload.(type) {
	case domain.PlayerJoinedPayload:
		h.upsertLocked(p.Player)
	case domain.QuestionAnsweredPayload:
		h.upsertLocked(p.Player)
	case domain.GameFinishedPayload:
		h.finished = append([]domain.Standing(nil), p.Standings...)
	default:
		changed = false
	}

	h.broadcastLocked(outboundMessage[any]{Type: "event", Payload: event})
	if changed {
		h.broadcastLocked(outboundMessage[any]{Type: "standings", Payload: h.standingsLocked()})
	}
	return nil
}

// Standings returns the current ranking; after the game ends, the final one.
func (h *Hub) Standings() []domain.Standing {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.standingsLocked()
}

// subscribe registers a watcher. The caller must invoke the returned cancel
// function to avoid leaks.
func (h *Hub) subscribe() (<-chan outboundMessage[any], func()) {
	ch := make(chan outboundMessage[any], subscriberBuffer)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	ch <- outboundMessage[any]{Type: "standings", Payload: h.standingsLocked()}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *Hub) upsertLocked(p domain.Player) {
	if _, ok := h.players[p.ID]; !ok {
		h.order = append(h.order, p.ID)
	}
	h.players[p.ID] = p
}

func (h *Hub) standingsLocked() []domain.Standing {
	if h.finished != nil {
		return append([]domain.Standing(nil), h.finished...)
	}
	players := make([]domain.Player, 0, len(h.order))
	for _, id := range h.order {
		players = append(players, h.players[id])
	}
	return domain.RankPlayers(players)
}

func (h *Hub) broadcastLocked(msg outboundMessage[any]) {
	for ch := range h.subscribers {
		select {
		case ch <- msg:
		default:
			// drop the oldest message so a slow watcher never blocks the game
			select {
			case <-ch:
			default:
			}
			ch <- msg
		}
	}
}
