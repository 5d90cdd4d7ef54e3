package app

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"jeopardy-game/internal/domain"
)

// Session is the state one game carries across its phases. Only the active
// phase mutates it; everything handed outward is a copy.
type Session struct {
	id      string
	players []domain.Player
	staged  []domain.Question
	board   *domain.Board
	turn    int
	active  bool
	events  *Emitter
}

// NewSession starts an empty, active session with a fresh game id.
func NewSession(logger *zap.Logger) *Session {
	return NewSessionWithClock(uuid.NewString(), time.Now, logger)
}

// NewSessionWithClock is for tests that need a fixed id and timestamps.
func NewSessionWithClock(id string, now func() time.Time, logger *zap.Logger) *Session {
	return &Session{
		id:     id,
		active: true,
		events: newEmitterWithClock(id, now, logger),
	}
}

// ID is the game (case) id stamped on every event.
func (s *Session) ID() string {
	return s.id
}

// Subscribe attaches an observer to the session's event stream.
func (s *Session) Subscribe(sink Sink) {
	s.events.Subscribe(sink)
}

// Events returns a copy of everything emitted so far.
func (s *Session) Events() []domain.Event {
	return s.events.Events()
}

// Players returns the players in turn order.
func (s *Session) Players() []domain.Player {
	return append([]domain.Player(nil), s.players...)
}

// Standings ranks the current players.
func (s *Session) Standings() []domain.Standing {
	return domain.RankPlayers(s.players)
}

// Active reports whether play may continue.
func (s *Session) Active() bool {
	return s.active
}

// CurrentPlayer returns whose turn it is.
func (s *Session) CurrentPlayer() (domain.Player, bool) {
	if len(s.players) == 0 {
		return domain.Player{}, false
	}
	return s.players[s.turn], true
}

// Board returns the live board, or nil before play starts.
func (s *Session) Board() *domain.Board {
	return s.board
}

func (s *Session) stage(questions []domain.Question) {
	s.staged = domain.CloneQuestions(questions)
}

func (s *Session) emit(kind domain.EventKind, payload any) domain.Event {
	return s.events.Emit(kind, payload)
}

func (s *Session) deactivate() {
	s.active = false
}

func (s *Session) addPlayer(name string) domain.Player {
	p := domain.Player{ID: uuid.NewString(), Name: name}
	s.players = append(s.players, p)
	return p
}

func (s *Session) advanceTurn() {
	if len(s.players) > 0 {
		s.turn = (s.turn + 1) % len(s.players)
	}
}
