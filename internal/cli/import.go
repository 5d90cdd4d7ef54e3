package cli

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"jeopardy-game/internal/config"
	"jeopardy-game/internal/domain"
	"jeopardy-game/internal/infra/file"
	pgstore "jeopardy-game/internal/infra/postgres"
)

// NewImportCmd stores a question file in Postgres so it can be played as db:<set-id>.
func NewImportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file> <set-id>",
		Short: "Import a question file into the database",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), *configPath, args[0], args[1])
		},
	}
}

func runImport(ctx context.Context, configPath, path, setID string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if err := runMigrationsWithConfig(ctx, cfg, logger); err != nil {
		return err
	}

	questions, err := file.NewLoader(logger).Load(ctx, path)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return fmt.Errorf("import %s: %w", path, domain.ErrNoQuestions)
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pgstore.NewQuestionStore(pool).Save(ctx, setID, questions); err != nil {
		return err
	}
	logger.Info("question set imported", zap.String("set_id", setID), zap.Int("count", len(questions)))
	return nil
}
