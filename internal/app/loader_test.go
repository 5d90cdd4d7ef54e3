package app

import (
	"context"
	"errors"
	"testing"

	"jeopardy-game/internal/domain"
)

func TestRoutingLoaderPicksLongestPrefix(t *testing.T) {
	var got []string
	record := func(tag string) QuestionLoader {
		return LoaderFunc(func(_ context.Context, id string) ([]domain.Question, error) {
			got = append(got, tag+":"+id)
			return nil, nil
		})
	}
	r := NewRoutingLoader(record("file")).
		Route("db:", record("db")).
		Route("db:archive:", record("archive")).
		Route("builtin:", record("builtin"))

	ctx := context.Background()
	for _, id := range []string{"questions.csv", "DB:season-1", "db:archive:2019", "builtin:sample"} {
		if _, err := r.Load(ctx, id); err != nil {
			t.Fatalf("load %s: %v", id, err)
		}
	}

	want := []string{"file:questions.csv", "db:season-1", "archive:2019", "builtin:sample"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("route %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestRoutingLoaderWithoutFallback(t *testing.T) {
	r := NewRoutingLoader(nil)
	_, err := r.Load(context.Background(), "questions.csv")
	if !errors.Is(err, domain.ErrUnsupportedSource) {
		t.Fatalf("expected unsupported source, got %v", err)
	}
}
