package cli

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"jeopardy-game/internal/app"
	"jeopardy-game/internal/config"
	"jeopardy-game/internal/domain"
	"jeopardy-game/internal/infra/csvlog"
	"jeopardy-game/internal/infra/file"
	"jeopardy-game/internal/infra/memory"
	pgstore "jeopardy-game/internal/infra/postgres"
	infraredis "jeopardy-game/internal/infra/redis"
	"jeopardy-game/internal/infra/sqlite"
	"jeopardy-game/internal/report"
	"jeopardy-game/internal/transport/console"
	transport "jeopardy-game/internal/transport/http"
)

// NewPlayCmd builds the CLI subcommand that runs one interactive game.
func NewPlayCmd(configPath, questions *string, envQuestions string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runPlay(ctx, *configPath, *questions, os.Stdin, os.Stdout)
		},
	}
	cmd.Flags().StringVar(questions, "file", envQuestions, "question source to start with (file, db:<id> or builtin:sample)")
	return cmd
}

func runPlay(ctx context.Context, configPath, questions string, in io.Reader, out io.Writer) error {
	cfg, err := config.LoadOptional(configPath)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	client := redisClient(cfg)
	if client != nil {
		defer client.Close()
	}

	loader, cleanup, err := buildLoader(ctx, cfg, client, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	session := app.NewSession(logger)
	closers, err := attachSinks(ctx, cfg, session, client, logger)
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()
	if err != nil {
		return err
	}

	opts := []app.MachineOption{
		app.WithLogger(logger),
		app.WithRules(app.Rules{
			MinPlayers: cfg.Game.MinPlayers,
			MaxPlayers: cfg.Game.MaxPlayers,
			QuitWord:   cfg.Game.QuitWord,
		}),
	}
	if cfg.Report.Format != "" {
		format, err := report.ParseFormat(cfg.Report.Format)
		if err != nil {
			return err
		}
		writer, err := report.NewWriter(cfg.Report.Dir, format, cfg.Report.Locale)
		if err != nil {
			return err
		}
		opts = append(opts, app.WithReporter(writer))
	}

	if questions == "" {
		questions = cfg.Game.Questions
	}
	if questions != "" {
		qs, err := loader.Load(ctx, questions)
		if err != nil {
			logger.Warn("question load failed", zap.String("source", questions), zap.Error(err))
		}
		opts = append(opts, app.WithStagedQuestions(questions, qs))
	}

	logger.Info("game starting", zap.String("game_id", session.ID()))
	machine := app.NewMachine(session, loader, console.New(in, out), opts...)
	standings, err := machine.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("game finished", zap.String("game_id", session.ID()), zap.Int("players", len(standings)))
	return nil
}

// buildLoader routes identifiers to the file, builtin and database sources
// and puts a cache in front.
func buildLoader(ctx context.Context, cfg config.Config, client *redis.Client, logger *zap.Logger) (app.QuestionLoader, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for _, fn := range cleanups {
			fn()
		}
	}

	router := app.NewRoutingLoader(file.NewLoader(logger)).
		Route("builtin:", memory.NewStaticQuestionLoader(map[string][]domain.Question{
			"sample": memory.SampleBoard(),
		}))

	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, cleanup, err
		}
		cleanups = append(cleanups, pool.Close)
		router.Route("db:", pgstore.NewQuestionStore(pool))
	}

	ttl := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)
	if client != nil {
		return infraredis.NewQuestionCache(client, router, ttl, logger), cleanup, nil
	}
	return memory.NewQuestionCache(router, ttl), cleanup, nil
}

// attachSinks subscribes every configured event sink to the session. The
// returned closers run even when an error is returned.
func attachSinks(ctx context.Context, cfg config.Config, session *app.Session, client *redis.Client, logger *zap.Logger) ([]func(), error) {
	var closers []func()

	if cfg.Audit.CSVDir != "" {
		audit, err := csvlog.NewAuditLog(cfg.Audit.CSVDir)
		if err != nil {
			return closers, err
		}
		session.Subscribe(audit)
	}

	if cfg.Audit.SQLitePath != "" {
		history, err := sqlite.Open(cfg.Audit.SQLitePath)
		if err != nil {
			return closers, err
		}
		closers = append(closers, func() { _ = history.Close() })
		session.Subscribe(history)
	}

	if client != nil {
		ttl := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)
		session.Subscribe(infraredis.NewEventPublisher(client, ttl))
	}

	if cfg.Watch.Addr != "" {
		hub := transport.NewHub()
		session.Subscribe(hub)
		server := &http.Server{
			Addr:        cfg.Watch.Addr,
			Handler:     transport.NewWSHandler(hub, logger).Routes(),
			ReadTimeout: 15 * time.Second,
		}
		go func() {
			logger.Info("spectator feed listening", zap.String("addr", cfg.Watch.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Warn("spectator feed stopped", zap.Error(err))
			}
		}()
		closers = append(closers, func() {
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		})
	}
	return closers, nil
}

func redisClient(cfg config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
