package domain

import (
	"sort"
	"strings"
)

// Board indexes a session's questions by category and value and tracks which
// ones have been answered. It is not safe for concurrent use; a single session
// owns it.
type Board struct {
	questions []Question
}

// NewBoard copies questions into a fresh board with every question unanswered.
func NewBoard(questions []Question) *Board {
	qs := CloneQuestions(questions)
	for i := range qs {
		qs[i].Answered = false
	}
	return &Board{questions: qs}
}

// NormalizeCategory folds case and drops all whitespace, so " hi sto ry " and
// "History" compare equal.
func NormalizeCategory(category string) string {
	return strings.Join(strings.Fields(strings.ToLower(category)), "")
}

// Categories returns the distinct category labels in sorted order, answered or not.
// Labels that normalize the same are reported once, with the casing seen first.
func (b *Board) Categories() []string {
	seen := make(map[string]struct{}, len(b.questions))
	labels := make([]string, 0, len(b.questions))
	for _, q := range b.questions {
		key := NormalizeCategory(q.Category)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		labels = append(labels, q.Category)
	}
	sort.Strings(labels)
	return labels
}

// AvailableValues lists unanswered values in a category, ascending. Unknown or
// exhausted categories yield an empty slice.
func (b *Board) AvailableValues(category string) []int {
	key := NormalizeCategory(category)
	values := []int{}
	for _, q := range b.questions {
		if !q.Answered && NormalizeCategory(q.Category) == key {
			values = append(values, q.Value)
		}
	}
	sort.Ints(values)
	return values
}

// Lookup finds the first unanswered question matching category and value.
// The returned question is a copy.
func (b *Board) Lookup(category string, value int) (Question, bool) {
	i := b.indexOf(category, value)
	if i < 0 {
		return Question{}, false
	}
	return b.questions[i].Clone(), true
}

// MarkAnswered flags the first unanswered match as answered. It is a no-op when
// nothing matches.
func (b *Board) MarkAnswered(category string, value int) {
	if i := b.indexOf(category, value); i >= 0 {
		b.questions[i].Answered = true
	}
}

// IsExhausted reports whether every question has been answered.
func (b *Board) IsExhausted() bool {
	for _, q := range b.questions {
		if !q.Answered {
			return false
		}
	}
	return true
}

// Remaining counts unanswered questions.
func (b *Board) Remaining() int {
	n := 0
	for _, q := range b.questions {
		if !q.Answered {
			n++
		}
	}
	return n
}

// Len is the total number of questions on the board.
func (b *Board) Len() int {
	return len(b.questions)
}

// Snapshot returns a copy of every question with its current answered flag.
func (b *Board) Snapshot() []Question {
	return CloneQuestions(b.questions)
}

func (b *Board) indexOf(category string, value int) int {
	key := NormalizeCategory(category)
	for i, q := range b.questions {
		if !q.Answered && q.Value == value && NormalizeCategory(q.Category) == key {
			return i
		}
	}
	return -1
}
