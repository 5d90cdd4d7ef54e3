package console

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"jeopardy-game/internal/domain"
)

func TestAskReadsLines(t *testing.T) {
	var out strings.Builder
	c := New(strings.NewReader("questions.csv\r\n2\nAlice"), &out)
	ctx := context.Background()

	for _, want := range []string{"questions.csv", "2", "Alice"} {
		got, err := c.Ask(ctx, "> ")
		if err != nil {
			t.Fatalf("ask: %v", err)
		}
		if got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
	if _, err := c.Ask(ctx, "> "); !errors.Is(err, domain.ErrInputClosed) {
		t.Fatalf("expected input closed, got %v", err)
	}
	if _, err := c.Ask(ctx, ""); !errors.Is(err, domain.ErrInputClosed) {
		t.Fatalf("closed input must stay closed, got %v", err)
	}
	if out.String() != "> > > > " {
		t.Fatalf("unexpected prompts %q", out.String())
	}
}

func TestPrintf(t *testing.T) {
	var out strings.Builder
	New(strings.NewReader(""), &out).Printf("%s: %d\n", "Alice", 100)
	if out.String() != "Alice: 100\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestAskHonorsCancellation(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	c := New(pr, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := c.Ask(ctx, ""); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	// The pending read is picked up by the next Ask.
	go func() { _, _ = pw.Write([]byte("late\n")) }()
	got, err := c.Ask(context.Background(), "")
	if err != nil || got != "late" {
		t.Fatalf("expected late line, got %q %v", got, err)
	}
}
