package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"jeopardy-game/internal/domain"
)

// Rules are the knobs of the turn protocol.
type Rules struct {
	MinPlayers int
	MaxPlayers int
	QuitWord   string
}

// DefaultRules allows one to four players and "quit" as the quit word.
func DefaultRules() Rules {
	return Rules{MinPlayers: 1, MaxPlayers: 4, QuitWord: "quit"}
}

func (r Rules) withDefaults() Rules {
	def := DefaultRules()
	if r.MinPlayers < 1 {
		r.MinPlayers = def.MinPlayers
	}
	if r.MaxPlayers < r.MinPlayers {
		r.MaxPlayers = max(def.MaxPlayers, r.MinPlayers)
	}
	if strings.TrimSpace(r.QuitWord) == "" {
		r.QuitWord = def.QuitWord
	}
	return r
}

// TurnOutcome says how a turn ended.
type TurnOutcome int

const (
	// TurnAnswered means a question was answered and scored.
	TurnAnswered TurnOutcome = iota
	// TurnAborted means the selection was invalid; the same player goes again.
	TurnAborted
	// TurnQuit means the player asked to end the game.
	TurnQuit
)

func (o TurnOutcome) String() string {
	switch o {
	case TurnAnswered:
		return "answered"
	case TurnAborted:
		return "aborted"
	case TurnQuit:
		return "quit"
	}
	return "unknown"
}

// TurnResult summarizes one call to PlayTurn.
type TurnResult struct {
	Outcome  TurnOutcome
	PlayerID string
	Question domain.Question
	Correct  bool
	Delta    int
	Score    int
}

// Engine runs player setup and individual turns against a session's board.
type Engine struct {
	session *Session
	io      Prompter
	rules   Rules
	logger  *zap.Logger
}

func NewEngine(session *Session, io Prompter, rules Rules, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{session: session, io: io, rules: rules.withDefaults(), logger: logger}
}

// SetupPlayers asks for a player count and each player's name. Bad counts are
// asked again without limit.
func (e *Engine) SetupPlayers(ctx context.Context) error {
	count, err := e.askPlayerCount(ctx)
	if err != nil {
		return err
	}
	e.session.emit(domain.EventPlayerCountChosen, domain.PlayerCountPayload{Count: count})

	for i := 1; i <= count; i++ {
		name, err := e.io.Ask(ctx, fmt.Sprintf("Enter name for Player %d: ", i))
		if err != nil {
			return err
		}
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Player %d", i)
		}
		player := e.session.addPlayer(name)
		e.session.emit(domain.EventPlayerJoined, domain.PlayerJoinedPayload{Player: player})
		e.logger.Debug("player joined", zap.String("player_id", player.ID), zap.String("name", player.Name))
	}
	return nil
}

func (e *Engine) askPlayerCount(ctx context.Context) (int, error) {
	e.io.Printf("\nHow many players? (%d-%d)\n", e.rules.MinPlayers, e.rules.MaxPlayers)
	for {
		line, err := e.io.Ask(ctx, "")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			e.io.Printf("Please enter a valid number.\n")
			continue
		}
		if n < e.rules.MinPlayers || n > e.rules.MaxPlayers {
			e.io.Printf("Please enter a number between %d and %d.\n", e.rules.MinPlayers, e.rules.MaxPlayers)
			continue
		}
		return n, nil
	}
}

// Over is the termination check: the session was ended or the board is empty.
func (e *Engine) Over() bool {
	board := e.session.board
	return !e.session.active || board == nil || board.IsExhausted()
}

// PlayTurn runs one selection, answer and scoring cycle for the current player.
// Invalid selections abort the turn without advancing it. An input error is
// returned as-is with the session left consistent.
func (e *Engine) PlayTurn(ctx context.Context) (TurnResult, error) {
	s := e.session
	player, ok := s.CurrentPlayer()
	if !ok {
		s.deactivate()
		return TurnResult{Outcome: TurnQuit}, nil
	}
	result := TurnResult{Outcome: TurnAborted, PlayerID: player.ID, Score: player.Score}

	e.io.Printf("\n%s's turn\n", player.Name)
	e.showBoard()

	category, err := e.io.Ask(ctx, fmt.Sprintf("\nSelect a category (or type '%s' to end): ", e.rules.QuitWord))
	if err != nil {
		return result, err
	}
	category = strings.TrimSpace(category)
	if strings.EqualFold(category, e.rules.QuitWord) {
		s.deactivate()
		result.Outcome = TurnQuit
		return result, nil
	}
	s.emit(domain.EventCategorySelected, domain.CategorySelectedPayload{
		PlayerID:   player.ID,
		PlayerName: player.Name,
		Category:   category,
	})

	rawValue, err := e.io.Ask(ctx, "Select a value: ")
	if err != nil {
		return result, err
	}
	value, err := strconv.Atoi(strings.TrimSpace(rawValue))
	if err != nil || value <= 0 {
		e.io.Printf("Invalid value. Try again.\n")
		return result, nil
	}
	s.emit(domain.EventQuestionSelected, domain.QuestionSelectedPayload{
		PlayerID:   player.ID,
		PlayerName: player.Name,
		Category:   category,
		Value:      value,
	})

	question, ok := s.board.Lookup(category, value)
	if !ok {
		e.io.Printf("Question not found or already answered. Try again.\n")
		return result, nil
	}

	e.showQuestion(question)
	answer, err := e.io.Ask(ctx, fmt.Sprintf("Your answer (%s): ", optionLabels(question)))
	if err != nil {
		return result, err
	}
	answer = strings.TrimSpace(answer)

	correct := question.IsCorrect(answer)
	delta := -question.Value
	if correct {
		delta = question.Value
	}

	s.players[s.turn].Score += delta
	updated := s.players[s.turn]
	s.board.MarkAnswered(question.Category, question.Value)
	question.Answered = true

	s.emit(domain.EventQuestionAnswered, domain.QuestionAnsweredPayload{
		Player:   updated,
		Question: question,
		Correct:  correct,
		Answer:   answer,
		Delta:    delta,
		Score:    updated.Score,
	})
	e.logger.Debug("question answered",
		zap.String("player_id", updated.ID),
		zap.String("question_id", question.ID),
		zap.Bool("correct", correct),
		zap.Int("delta", delta),
		zap.Int("score", updated.Score),
	)

	if correct {
		e.io.Printf("Correct! You earned %d points.\n", delta)
	} else {
		e.io.Printf("Incorrect. The correct answer was: %s\n", question.Answer)
	}

	result = TurnResult{
		Outcome:  TurnAnswered,
		PlayerID: updated.ID,
		Question: question,
		Correct:  correct,
		Delta:    delta,
		Score:    updated.Score,
	}

	s.advanceTurn()

	reply, err := e.io.Ask(ctx, "\nContinue playing? (y/n): ")
	if err != nil {
		return result, err
	}
	if !wantsToContinue(reply) {
		s.deactivate()
	}
	return result, nil
}

func (e *Engine) showBoard() {
	board := e.session.board
	e.io.Printf("\nAvailable Categories:\n")
	for _, category := range board.Categories() {
		values := board.AvailableValues(category)
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = strconv.Itoa(v)
		}
		e.io.Printf("- %s (Values: %s)\n", category, strings.Join(parts, ", "))
	}
}

func (e *Engine) showQuestion(q domain.Question) {
	e.io.Printf("\nQuestion: %s\n", q.Prompt)
	for _, opt := range q.Options {
		e.io.Printf("%s) %s\n", opt.Label, opt.Text)
	}
}

func optionLabels(q domain.Question) string {
	if len(q.Options) == 0 {
		return "A/B/C/D"
	}
	labels := make([]string, len(q.Options))
	for i, opt := range q.Options {
		labels[i] = opt.Label
	}
	return strings.Join(labels, "/")
}

func wantsToContinue(reply string) bool {
	switch strings.ToLower(strings.TrimSpace(reply)) {
	case "y", "yes":
		return true
	}
	return false
}
