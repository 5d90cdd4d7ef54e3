package domain

import (
	"reflect"
	"testing"
)

func TestBoardCategoriesSortedAndDistinct(t *testing.T) {
	board := NewBoard(sampleQuestions())

	got := board.Categories()
	want := []string{"History", "Science"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected categories %v, got %v", want, got)
	}

	board.MarkAnswered("History", 100)
	board.MarkAnswered("History", 200)
	if got := board.Categories(); !reflect.DeepEqual(got, want) {
		t.Fatalf("answered questions must still list their category, got %v", got)
	}
}

func TestBoardAvailableValues(t *testing.T) {
	board := NewBoard(sampleQuestions())

	if got := board.AvailableValues("science"); !reflect.DeepEqual(got, []int{100, 300}) {
		t.Fatalf("expected [100 300], got %v", got)
	}
	if got := board.AvailableValues("Geography"); len(got) != 0 {
		t.Fatalf("expected no values for unknown category, got %v", got)
	}

	board.MarkAnswered("Science", 100)
	if got := board.AvailableValues("Science"); !reflect.DeepEqual(got, []int{300}) {
		t.Fatalf("expected [300] after answering, got %v", got)
	}
}

func TestBoardLookupNormalizesCategory(t *testing.T) {
	board := NewBoard(sampleQuestions())

	a, ok := board.Lookup("History", 100)
	if !ok {
		t.Fatalf("expected History/100 to resolve")
	}
	b, ok := board.Lookup(" hi sto ry ", 100)
	if !ok {
		t.Fatalf("expected spaced, lower-case category to resolve")
	}
	if a.ID != b.ID {
		t.Fatalf("expected same question, got %s and %s", a.ID, b.ID)
	}

	if _, ok := board.Lookup("History", 999); ok {
		t.Fatalf("expected unknown value to be absent")
	}
}

func TestBoardMarkAnsweredIsIdempotent(t *testing.T) {
	once := NewBoard(sampleQuestions())
	twice := NewBoard(sampleQuestions())

	once.MarkAnswered("History", 200)
	twice.MarkAnswered("History", 200)
	twice.MarkAnswered("HISTORY", 200)

	if !reflect.DeepEqual(once.Snapshot(), twice.Snapshot()) {
		t.Fatalf("expected identical boards after repeated mark")
	}
	if _, ok := twice.Lookup("History", 200); ok {
		t.Fatalf("answered question must not be returned by lookup")
	}

	// Unknown pairs are a no-op.
	twice.MarkAnswered("Nowhere", 1)
	if twice.Remaining() != len(sampleQuestions())-1 {
		t.Fatalf("expected one answered question, remaining=%d", twice.Remaining())
	}
}

func TestBoardExhaustion(t *testing.T) {
	qs := sampleQuestions()
	board := NewBoard(qs)
	for _, q := range qs {
		if board.IsExhausted() {
			t.Fatalf("board exhausted too early")
		}
		board.MarkAnswered(q.Category, q.Value)
	}
	if !board.IsExhausted() {
		t.Fatalf("expected exhausted board")
	}
	if !NewBoard(nil).IsExhausted() {
		t.Fatalf("empty board should report exhausted")
	}
}

func TestBoardDoesNotAliasInput(t *testing.T) {
	qs := sampleQuestions()
	qs[0].Answered = true
	board := NewBoard(qs)

	if _, ok := board.Lookup(qs[0].Category, qs[0].Value); !ok {
		t.Fatalf("board should start with every question unanswered")
	}
	board.MarkAnswered(qs[1].Category, qs[1].Value)
	if qs[1].Answered {
		t.Fatalf("marking the board must not touch the caller's slice")
	}

	got, _ := board.Lookup(qs[2].Category, qs[2].Value)
	got.Options[0].Text = "mutated"
	again, _ := board.Lookup(qs[2].Category, qs[2].Value)
	if again.Options[0].Text == "mutated" {
		t.Fatalf("lookup must return a copy")
	}
}

func TestQuestionIsCorrect(t *testing.T) {
	q := Question{Answer: "Water"}
	cases := map[string]bool{
		"Water":   true,
		"water":   true,
		" WATER ": true,
		"Wat":     false,
		"":        false,
	}
	for answer, want := range cases {
		if got := q.IsCorrect(answer); got != want {
			t.Fatalf("IsCorrect(%q) = %v, want %v", answer, got, want)
		}
	}
}

func sampleQuestions() []Question {
	opts := []Option{{Label: "A", Text: "one"}, {Label: "B", Text: "two"}, {Label: "C", Text: "three"}, {Label: "D", Text: "four"}}
	return []Question{
		{ID: "11", Category: "History", Value: 100, Prompt: "h1", Options: opts, Answer: "A"},
		{ID: "12", Category: "History", Value: 200, Prompt: "h2", Options: opts, Answer: "B"},
		{ID: "21", Category: "Science", Value: 300, Prompt: "s3", Options: opts, Answer: "C"},
		{ID: "22", Category: "Science", Value: 100, Prompt: "s1", Options: opts, Answer: "D"},
	}
}
