package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"jeopardy-game/internal/domain"
)

// Phase is one of the three game phases. Phases only move forward.
type Phase int

const (
	PhaseSetup Phase = iota
	PhasePlaying
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhasePlaying:
		return "playing"
	case PhaseFinished:
		return "finished"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Machine drives a session through Setup, Playing and Finished.
type Machine struct {
	session  *Session
	loader   QuestionLoader
	io       Prompter
	reporter Reporter
	rules    Rules
	logger   *zap.Logger
	now      func() time.Time

	phase     Phase
	preset    *stagedSet
	engine    *Engine
	joined    bool
	standings []domain.Standing
	reported  bool
}

type stagedSet struct {
	source    string
	questions []domain.Question
}

// MachineOption customizes a Machine.
type MachineOption func(*Machine)

// WithReporter enables end-of-game reports.
func WithReporter(r Reporter) MachineOption {
	return func(m *Machine) { m.reporter = r }
}

// WithRules overrides DefaultRules.
func WithRules(r Rules) MachineOption {
	return func(m *Machine) { m.rules = r }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) MachineOption {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClock replaces time.Now for report names.
func WithClock(now func() time.Time) MachineOption {
	return func(m *Machine) { m.now = now }
}

// WithStagedQuestions skips the file prompt and starts from questions already
// in hand, even an empty set.
func WithStagedQuestions(source string, questions []domain.Question) MachineOption {
	return func(m *Machine) {
		m.preset = &stagedSet{source: source, questions: domain.CloneQuestions(questions)}
	}
}

func NewMachine(session *Session, loader QuestionLoader, io Prompter, opts ...MachineOption) *Machine {
	m := &Machine{
		session: session,
		loader:  loader,
		io:      io,
		rules:   DefaultRules(),
		logger:  zap.NewNop(),
		now:     time.Now,
		phase:   PhaseSetup,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Standings are the final rankings; empty until Finished is reached.
func (m *Machine) Standings() []domain.Standing {
	return append([]domain.Standing(nil), m.standings...)
}

// Run displays and executes phases until Finished, then runs Finished once.
func (m *Machine) Run(ctx context.Context) ([]domain.Standing, error) {
	for m.phase != PhaseFinished {
		m.Display()
		if err := m.Execute(ctx); err != nil {
			return nil, err
		}
	}
	m.Display()
	if err := m.Execute(ctx); err != nil {
		return nil, err
	}
	return m.Standings(), nil
}

// Display prints the banner of the current phase.
func (m *Machine) Display() {
	switch m.phase {
	case PhaseSetup:
		m.io.Printf("%s\n%s\n%s\n", rule, center("WELCOME TO JEOPARDY!"), rule)
		if m.preset == nil {
			m.io.Printf("Please enter the question filename (CSV, JSON, XML, YAML):\n")
		}
	case PhasePlaying:
		m.io.Printf("\n==== GAME IN PROGRESS ====\n")
		m.io.Printf("\n--- SCORES ---\n")
		for _, p := range m.session.players {
			m.io.Printf("%s: %d\n", p.Name, p.Score)
		}
		m.io.Printf("==========================\n")
	case PhaseFinished:
		m.io.Printf("\n%s\n", center("GAME FINISHED"))
	}
}

// Execute runs one step of the current phase.
func (m *Machine) Execute(ctx context.Context) error {
	switch m.phase {
	case PhaseSetup:
		return m.executeSetup(ctx)
	case PhasePlaying:
		return m.executePlaying(ctx)
	case PhaseFinished:
		return m.executeFinished(ctx)
	}
	return fmt.Errorf("execute %s: %w", m.phase, domain.ErrIllegalTransition)
}

func (m *Machine) transition(next Phase) error {
	if next <= m.phase || next > PhaseFinished {
		return fmt.Errorf("%s -> %s: %w", m.phase, next, domain.ErrIllegalTransition)
	}
	m.logger.Debug("phase change", zap.String("from", m.phase.String()), zap.String("to", next.String()))
	m.phase = next
	return nil
}

func (m *Machine) executeSetup(ctx context.Context) error {
	if m.preset != nil {
		return m.stage(m.preset.source, m.preset.questions)
	}

	identifier, err := m.io.Ask(ctx, "")
	if err != nil {
		m.logger.Info("input closed during setup", zap.Error(err))
		return m.finish()
	}
	identifier = strings.TrimSpace(identifier)

	questions := m.load(ctx, identifier)
	if len(questions) == 0 {
		m.io.Printf("No questions found. Try another file.\n")
		return nil
	}
	m.io.Printf("\n--->Loaded %d questions!<---\n", len(questions))
	return m.stage(identifier, questions)
}

func (m *Machine) load(ctx context.Context, identifier string) []domain.Question {
	if identifier == "" || m.loader == nil {
		return nil
	}
	questions, err := m.loader.Load(ctx, identifier)
	if err != nil {
		m.logger.Warn("question load failed", zap.String("source", identifier), zap.Error(err))
		return nil
	}
	return questions
}

func (m *Machine) stage(source string, questions []domain.Question) error {
	m.session.stage(questions)
	m.session.emit(domain.EventFileLoaded, domain.FileLoadedPayload{Source: source, Count: len(questions)})
	return m.transition(PhasePlaying)
}

func (m *Machine) executePlaying(ctx context.Context) error {
	if m.engine == nil {
		m.session.board = domain.NewBoard(m.session.staged)
		m.engine = NewEngine(m.session, m.io, m.rules, m.logger)
		if m.session.board.Len() == 0 {
			m.io.Printf("No questions loaded!\n")
			m.session.deactivate()
			return m.finish()
		}
	}

	if !m.joined {
		if err := m.engine.SetupPlayers(ctx); err != nil {
			m.logger.Info("input closed during player setup", zap.Error(err))
			m.session.deactivate()
			return m.finish()
		}
		m.joined = true
		m.session.emit(domain.EventGameStarted, domain.GameStartedPayload{Players: m.session.Players()})
	}

	if m.engine.Over() {
		m.io.Printf("\nGame over!\n")
		return m.finish()
	}

	if _, err := m.engine.PlayTurn(ctx); err != nil {
		if !errors.Is(err, domain.ErrInputClosed) && ctx.Err() == nil {
			m.logger.Warn("turn interrupted", zap.Error(err))
		}
		m.session.deactivate()
		return m.finish()
	}

	if m.engine.Over() {
		return m.finish()
	}
	return nil
}

// finish freezes the standings and moves to Finished.
func (m *Machine) finish() error {
	m.standings = m.session.Standings()
	if err := m.transition(PhaseFinished); err != nil {
		return err
	}
	m.session.emit(domain.EventGameFinished, domain.GameFinishedPayload{Standings: m.Standings()})
	return nil
}

func (m *Machine) executeFinished(ctx context.Context) error {
	m.io.Printf("Thank you for playing!\n")
	m.io.Printf("\n%s\n", center("FINAL SCORES"))
	for _, s := range m.standings {
		m.io.Printf("%d. %s: %d\n", s.Rank, s.Name, s.Score)
	}
	if len(m.standings) > 0 {
		m.io.Printf("\nWinner: %s!\n", m.standings[0].Name)
	}

	if m.reporter == nil || m.reported {
		return nil
	}
	m.reported = true

	base := fmt.Sprintf("game_report_%d", m.now().UnixMilli())
	path, err := m.reporter.Render(ctx, m.session.Events(), m.session.Players(), base)
	if err != nil {
		m.logger.Warn("report generation failed", zap.String("base", base), zap.Error(err))
		return nil
	}
	m.io.Printf("Report generated successfully at: %s\n", path)
	m.session.emit(domain.EventReportGenerated, domain.ReportGeneratedPayload{Path: path})
	return nil
}

const bannerWidth = 80

var rule = strings.Repeat("=", bannerWidth)

func center(text string) string {
	pad := (bannerWidth - len(text)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + text
}
