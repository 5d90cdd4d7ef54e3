package domain

import "strings"

// Option is one labeled choice of a question (A, B, C or D).
type Option struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Question models a board question. Everything except Answered is fixed once loaded.
type Question struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Value    int      `json:"value"`
	Prompt   string   `json:"prompt"`
	Options  []Option `json:"options"`
	Answer   string   `json:"answer"` // label of the correct option
	Answered bool     `json:"answered"`
}

// IsCorrect reports whether a free-text answer matches the correct label.
// Matching ignores case and surrounding space; there is no partial credit.
func (q Question) IsCorrect(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.Answer))
}

// Clone returns a copy that shares no slices with q.
func (q Question) Clone() Question {
	out := q
	out.Options = append([]Option(nil), q.Options...)
	return out
}

// CloneQuestions copies a question list so callers never alias each other's data.
func CloneQuestions(in []Question) []Question {
	if in == nil {
		return nil
	}
	out := make([]Question, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

// Player is a session participant. ID is stable; names may repeat.
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Standing is one ranked row of the final scoreboard.
type Standing struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}
