// Package report renders a finished game as a plain-text or markdown summary.
package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"jeopardy-game/internal/domain"
)

// Format selects the document style.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

func (f Format) extension() string {
	if f == FormatMarkdown {
		return ".md"
	}
	return ".txt"
}

// ParseFormat accepts "text"/"txt" and "markdown"/"md".
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("report format %q: %w", raw, domain.ErrReportFormat)
}

// Writer implements app.Reporter by writing <dir>/<base>.<ext>.
type Writer struct {
	dir     string
	format  Format
	printer *message.Printer
}

// NewWriter builds a Writer. locale is a BCP 47 tag used for number
// formatting; empty means English.
func NewWriter(dir string, format Format, locale string) (*Writer, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	tag := language.English
	if locale != "" {
		parsed, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("report locale: %w", err)
		}
		tag = parsed
	}
	if dir == "" {
		dir = "."
	}
	return &Writer{dir: dir, format: format, printer: message.NewPrinter(tag)}, nil
}

func (w *Writer) Render(ctx context.Context, events []domain.Event, players []domain.Player, base string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(w.dir, base+w.format.extension())
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}

	summary := Summarize(events, players)
	if w.format == FormatMarkdown {
		err = writeMarkdown(f, w.printer, summary)
	} else {
		err = writeText(f, w.printer, summary)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// Turn is one answered question in the rundown.
type Turn struct {
	Number   int
	Player   string
	Category string
	Value    int
	Prompt   string
	Answer   string
	Correct  bool
	Delta    int
	Total    int
}

// Summary is what both formats render.
type Summary struct {
	Standings []domain.Standing
	Turns     []Turn
}

// Summarize ranks players and collects answered questions in play order.
func Summarize(events []domain.Event, players []domain.Player) Summary {
	s := Summary{Standings: domain.RankPlayers(players)}
	for _, ev := range events {
		p, ok := ev.Payload.(domain.QuestionAnsweredPayload)
		if !ok {
			continue
		}
		s.Turns = append(s.Turns, Turn{
			Number:   len(s.Turns) + 1,
			Player:   p.Player.Name,
			Category: p.Question.Category,
			Value:    p.Question.Value,
			Prompt:   p.Question.Prompt,
			Answer:   p.Answer,
			Correct:  p.Correct,
			Delta:    p.Delta,
			Total:    p.Score,
		})
	}
	return s
}

func correctness(ok bool) string {
	if ok {
		return "Correct"
	}
	return "Incorrect"
}

// errWriter keeps the first write error so callers can check once.
type errWriter struct {
	w   io.Writer
	p   *message.Printer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = e.p.Fprintf(e.w, format, args...)
}
