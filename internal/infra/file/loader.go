// Package file loads question sets from local files. The format is chosen
// by extension: .csv, .json, .xml, .yaml or .yml.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"jeopardy-game/internal/domain"
)

type decodeFunc func(data []byte) ([]record, error)

// Loader implements app.QuestionLoader over the local filesystem.
type Loader struct {
	logger   *zap.Logger
	decoders map[string]decodeFunc
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		logger: logger,
		decoders: map[string]decodeFunc{
			".csv":  decodeCSV,
			".json": decodeJSON,
			".xml":  decodeXML,
			".yaml": decodeYAML,
			".yml":  decodeYAML,
		},
	}
}

func (l *Loader) Load(ctx context.Context, path string) ([]domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := l.decoders[ext]
	if !ok {
		return nil, fmt.Errorf("load %q: %w", path, domain.ErrUnsupportedSource)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	records, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ext, err)
	}

	questions := build(records)
	if dropped := len(records) - len(questions); dropped > 0 {
		l.logger.Warn("skipped malformed questions", zap.String("path", path), zap.Int("dropped", dropped))
	}
	l.logger.Debug("questions loaded", zap.String("path", path), zap.Int("count", len(questions)))
	return questions, nil
}

// record is one question as it appears in a file, before ids are assigned.
type record struct {
	Category string
	Value    int
	Prompt   string
	Options  [4]string
	Answer   string
}

var optionLabels = [4]string{"A", "B", "C", "D"}

// build assigns ids of the form <categoryNumber><questionNumber>. A numeric
// category is its own number; others are numbered by first appearance.
// Records without a category or a positive value are dropped.
func build(records []record) []domain.Question {
	categoryNumbers := make(map[string]int)
	nextCategory := 1
	counts := make(map[int]int)

	questions := make([]domain.Question, 0, len(records))
	for _, r := range records {
		category := strings.TrimSpace(r.Category)
		if category == "" || r.Value <= 0 {
			continue
		}

		num, err := strconv.Atoi(category)
		if err != nil {
			n, seen := categoryNumbers[category]
			if !seen {
				n = nextCategory
				categoryNumbers[category] = n
				nextCategory++
			}
			num = n
		}
		counts[num]++

		options := make([]domain.Option, 0, len(r.Options))
		for i, text := range r.Options {
			options = append(options, domain.Option{Label: optionLabels[i], Text: strings.TrimSpace(text)})
		}
		questions = append(questions, domain.Question{
			ID:       strconv.Itoa(num) + strconv.Itoa(counts[num]),
			Category: category,
			Value:    r.Value,
			Prompt:   strings.TrimSpace(r.Prompt),
			Options:  options,
			Answer:   strings.TrimSpace(r.Answer),
		})
	}
	return questions
}
