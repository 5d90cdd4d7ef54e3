package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"jeopardy-game/internal/domain"
)

// Sink observes game events. A returned error is logged and otherwise ignored.
type Sink interface {
	OnEvent(event domain.Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(event domain.Event) error

func (f SinkFunc) OnEvent(event domain.Event) error {
	return f(event)
}

// Emitter records every event for the session and delivers it synchronously,
// in emission order, to each subscribed sink.
type Emitter struct {
	gameID string
	now    func() time.Time
	logger *zap.Logger
	sinks  []Sink
	log    []domain.Event
}

func NewEmitter(gameID string, logger *zap.Logger) *Emitter {
	return newEmitterWithClock(gameID, time.Now, logger)
}

func newEmitterWithClock(gameID string, now func() time.Time, logger *zap.Logger) *Emitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Emitter{gameID: gameID, now: now, logger: logger}
}

// Subscribe registers a sink for all subsequent events.
func (e *Emitter) Subscribe(sink Sink) {
	if sink != nil {
		e.sinks = append(e.sinks, sink)
	}
}

// Emit appends an event to the log and fans it out. Sink failures never reach the caller.
func (e *Emitter) Emit(kind domain.EventKind, payload any) domain.Event {
	event := domain.Event{
		Seq:     len(e.log) + 1,
		GameID:  e.gameID,
		Kind:    kind,
		Time:    e.now(),
		Payload: payload,
	}
	e.log = append(e.log, event.Clone())
	for i, sink := range e.sinks {
		e.deliver(i, sink, event.Clone())
	}
	return event
}

// Events returns a deep copy of the log.
func (e *Emitter) Events() []domain.Event {
	out := make([]domain.Event, len(e.log))
	for i, ev := range e.log {
		out[i] = ev.Clone()
	}
	return out
}

func (e *Emitter) deliver(index int, sink Sink, event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("event sink panicked",
				zap.Int("sink", index),
				zap.String("kind", string(event.Kind)),
				zap.String("panic", fmt.Sprint(r)),
			)
		}
	}()
	if err := sink.OnEvent(event); err != nil {
		e.logger.Warn("event sink failed",
			zap.Int("sink", index),
			zap.String("kind", string(event.Kind)),
			zap.Int("seq", event.Seq),
			zap.Error(err),
		)
	}
}
