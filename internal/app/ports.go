package app

import (
	"context"

	"jeopardy-game/internal/domain"
)

// QuestionLoader turns an identifier (usually a file name) into a question list.
// The game treats any error the same as an empty result.
type QuestionLoader interface {
	Load(ctx context.Context, identifier string) ([]domain.Question, error)
}

// LoaderFunc adapts a function to QuestionLoader.
type LoaderFunc func(ctx context.Context, identifier string) ([]domain.Question, error)

func (f LoaderFunc) Load(ctx context.Context, identifier string) ([]domain.Question, error) {
	return f(ctx, identifier)
}

// Prompter is the line-oriented channel to the person at the keyboard.
// Ask writes prompt and blocks for one line of input; it returns
// domain.ErrInputClosed once no more input is available.
type Prompter interface {
	Ask(ctx context.Context, prompt string) (string, error)
	Printf(format string, args ...any)
}

// Reporter renders a finished game. base is a file name without extension;
// the returned path is where the report was written.
type Reporter interface {
	Render(ctx context.Context, events []domain.Event, players []domain.Player, base string) (string, error)
}
