package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"jeopardy-game/internal/domain"
)

// QuestionStore keeps named question sets as JSONB rows in question_sets.
type QuestionStore struct {
	pool *pgxpool.Pool
}

func NewQuestionStore(pool *pgxpool.Pool) *QuestionStore {
	return &QuestionStore{pool: pool}
}

// Load implements app.QuestionLoader for identifiers of the form db:<set-id>
// (the prefix is stripped by the router).
func (s *QuestionStore) Load(ctx context.Context, setID string) ([]domain.Question, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM question_sets WHERE id=$1`, setID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("load question set %q: %w", setID, domain.ErrQuestionSetNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load question set: %w", err)
	}
	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("unmarshal question set: %w", err)
	}
	for i := range questions {
		questions[i].Answered = false
	}
	return questions, nil
}

// Save inserts or replaces a question set.
func (s *QuestionStore) Save(ctx context.Context, setID string, questions []domain.Question) error {
	if len(questions) == 0 {
		return domain.ErrNoQuestions
	}
	data, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("marshal question set: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO question_sets (id, data) VALUES ($1, $2::jsonb)
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`,
		setID, string(data))
	if err != nil {
		return fmt.Errorf("save question set: %w", err)
	}
	return nil
}
