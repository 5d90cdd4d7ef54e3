package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"jeopardy-game/internal/config"
	"jeopardy-game/internal/infra/sqlite"
)

// NewHistoryCmd prints recorded games, or the events of one game.
func NewHistoryCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history [game-id]",
		Short: "Show recorded games from the sqlite history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := ""
			if len(args) == 1 {
				gameID = args[0]
			}
			return runHistory(cmd.Context(), *configPath, gameID, os.Stdout)
		},
	}
}

func runHistory(ctx context.Context, configPath, gameID string, out io.Writer) error {
	cfg, err := config.LoadOptional(configPath)
	if err != nil {
		return err
	}
	if cfg.Audit.SQLitePath == "" {
		return fmt.Errorf("audit.sqlite_path not configured")
	}
	history, err := sqlite.Open(cfg.Audit.SQLitePath)
	if err != nil {
		return err
	}
	defer history.Close()

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	defer w.Flush()

	if gameID == "" {
		games, err := history.Games(ctx, 20)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "GAME\tSTARTED\tEVENTS\tFINISHED")
		for _, g := range games {
			fmt.Fprintf(w, "%s\t%s\t%d\t%t\n", g.GameID, g.StartedAt.Format(time.RFC3339), g.Events, g.Finished)
		}
		return nil
	}

	records, err := history.Events(ctx, gameID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no events recorded for game %s", gameID)
	}
	fmt.Fprintln(w, "SEQ\tTIME\tKIND\tPAYLOAD")
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.Seq, r.Time.Format(time.RFC3339), r.Kind, r.Payload)
	}
	return nil
}
