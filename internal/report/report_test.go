package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jeopardy-game/internal/domain"
)

func TestTextReport(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, FormatText, "")
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}

	events, players := sampleGame()
	path, err := w.Render(context.Background(), events, players, "game_report_1")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if path != filepath.Join(dir, "game_report_1.txt") {
		t.Fatalf("unexpected path %s", path)
	}
	body := readFile(t, path)

	for _, want := range []string{
		"Jeopardy Game Summary Report",
		"1. Bob: 1,200 points\n2. Alice: -100 points",
		"Turn 1:\n  Player: Alice\n  Category: Science",
		"  Correctness: Incorrect\n  Points Earned: -100",
		"Turn 2:\n  Player: Bob",
		"  Running Total for Bob: 1,200",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("report missing %q:\n%s", want, body)
		}
	}
	if strings.Index(body, "Turn 1:") > strings.Index(body, "Turn 2:") {
		t.Fatalf("turns out of order")
	}
}

func TestMarkdownReport(t *testing.T) {
	w, err := NewWriter(t.TempDir(), FormatMarkdown, "de")
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	events, players := sampleGame()
	path, err := w.Render(context.Background(), events, players, "game_report_2")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if filepath.Ext(path) != ".md" {
		t.Fatalf("expected markdown extension, got %s", path)
	}
	body := readFile(t, path)
	for _, want := range []string{
		"# Jeopardy Game Summary Report",
		"| 1 | Bob | 1.200 |",
		"### Turn 1: Alice",
		"- **Result:** Incorrect (-100)",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("report missing %q:\n%s", want, body)
		}
	}
}

func TestReportWithoutTurns(t *testing.T) {
	w, err := NewWriter(t.TempDir(), FormatText, "")
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	path, err := w.Render(context.Background(), nil, nil, "empty")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(readFile(t, path), "No questions were answered.") {
		t.Fatalf("expected empty rundown note")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		raw  string
		want Format
		err  error
	}{
		{raw: "text", want: FormatText},
		{raw: "TXT", want: FormatText},
		{raw: " md ", want: FormatMarkdown},
		{raw: "markdown", want: FormatMarkdown},
		{raw: "pdf", err: domain.ErrReportFormat},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.raw)
		if !errors.Is(err, tt.err) || got != tt.want {
			t.Fatalf("ParseFormat(%q) = %q, %v", tt.raw, got, err)
		}
	}
	if _, err := NewWriter(".", Format("pdf"), ""); !errors.Is(err, domain.ErrReportFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
}

func sampleGame() ([]domain.Event, []domain.Player) {
	alice := domain.Player{ID: "p1", Name: "Alice", Score: -100}
	bob := domain.Player{ID: "p2", Name: "Bob", Score: 1200}
	events := []domain.Event{
		{Seq: 1, Kind: domain.EventFileLoaded, Payload: domain.FileLoadedPayload{Source: "q.csv", Count: 2}},
		{Seq: 2, Kind: domain.EventQuestionAnswered, Payload: domain.QuestionAnsweredPayload{
			Player:   alice,
			Question: domain.Question{Category: "Science", Value: 100, Prompt: "What is H2O?"},
			Answer:   "B",
			Delta:    -100,
			Score:    -100,
		}},
		{Seq: 3, Kind: domain.EventQuestionAnswered, Payload: domain.QuestionAnsweredPayload{
			Player:   bob,
			Question: domain.Question{Category: "History", Value: 1200, Prompt: "Who?"},
			Answer:   "A",
			Correct:  true,
			Delta:    1200,
			Score:    1200,
		}},
	}
	return events, []domain.Player{alice, bob}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
