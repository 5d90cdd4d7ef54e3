package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"jeopardy-game/internal/config"
)

var (
	configPath    string
	questionsFile string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}
	envQuestions := os.Getenv("QUESTIONS_FILE")

	cmd := &cobra.Command{
		Use:          "jeopardy",
		Short:        "Turn-based Jeopardy trivia in the terminal",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(NewPlayCmd(&configPath, &questionsFile, envQuestions))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	cmd.AddCommand(NewHistoryCmd(&configPath))
	cmd.AddCommand(NewImportCmd(&configPath))
	return cmd
}

// newLogger builds the process logger. Output goes to stderr so it never
// mixes with the game on stdout.
func newLogger(cfg config.Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Log.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	if cfg.Log.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Log.Level)
		if err != nil {
			return nil, err
		}
		zcfg.Level = level
	}
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	return zcfg.Build()
}
