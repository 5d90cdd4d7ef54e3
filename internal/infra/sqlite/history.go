// Package sqlite keeps a durable history of game events in a SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"jeopardy-game/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS game_events (
  game_id    TEXT    NOT NULL,
  seq        INTEGER NOT NULL,
  kind       TEXT    NOT NULL,
  created_at INTEGER NOT NULL,
  payload    TEXT    NOT NULL,
  PRIMARY KEY (game_id, seq)
);
CREATE INDEX IF NOT EXISTS game_events_created_at ON game_events (created_at);
`

// Record is a stored event. The payload is kept as raw JSON.
type Record struct {
	GameID  string
	Seq     int
	Kind    domain.EventKind
	Time    time.Time
	Payload json.RawMessage
}

// GameSummary describes one recorded game.
type GameSummary struct {
	GameID    string
	Events    int
	StartedAt time.Time
	Finished  bool
}

// History persists events and reads them back.
type History struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens (or creates) the history database at path.
func Open(path string) (*History, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("history path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &History{sqlDB: sqlDB}, nil
}

func (h *History) Close() error {
	if h == nil || h.sqlDB == nil {
		return nil
	}
	return h.sqlDB.Close()
}

// OnEvent stores one event. Replays of the same (game, seq) are ignored.
func (h *History) OnEvent(event domain.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = h.sqlDB.ExecContext(ctx,
		`INSERT OR IGNORE INTO game_events (game_id, seq, kind, created_at, payload) VALUES (?, ?, ?, ?, ?)`,
		event.GameID, event.Seq, string(event.Kind), toMillis(event.Time), string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// Events returns a game's events in emission order.
func (h *History) Events(ctx context.Context, gameID string) ([]Record, error) {
	rows, err := h.sqlDB.QueryContext(ctx,
		`SELECT game_id, seq, kind, created_at, payload FROM game_events WHERE game_id = ? ORDER BY seq`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r       Record
			kind    string
			created int64
			payload string
		)
		if err := rows.Scan(&r.GameID, &r.Seq, &kind, &created, &payload); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		r.Kind = domain.EventKind(kind)
		r.Time = fromMillis(created)
		r.Payload = json.RawMessage(payload)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return records, nil
}

// Games lists recorded games, newest first.
func (h *History) Games(ctx context.Context, limit int) ([]GameSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.sqlDB.QueryContext(ctx,
		`SELECT game_id, COUNT(*), MIN(created_at), SUM(CASE WHEN kind = ? THEN 1 ELSE 0 END)
		   FROM game_events
		  GROUP BY game_id
		  ORDER BY MIN(created_at) DESC, game_id
		  LIMIT ?`,
		string(domain.EventGameFinished), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	var games []GameSummary
	for rows.Next() {
		var (
			g        GameSummary
			started  int64
			finished int
		)
		if err := rows.Scan(&g.GameID, &g.Events, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		g.StartedAt = fromMillis(started)
		g.Finished = finished > 0
		games = append(games, g)
	}
	return games, rows.Err()
}
