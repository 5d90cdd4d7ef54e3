// Package csvlog writes a per-game audit trail as CSV, one row per event, in
// the column layout process-mining tools expect.
package csvlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"sync"
	"time"

	"jeopardy-game/internal/domain"
)

var header = []string{
	"Case_ID", "Player_ID", "Activity", "Timestamp", "Category",
	"Question_Value", "Answer_Given", "Result", "Score_After_Play",
}

var logName = regexp.MustCompile(`^game_(\d{3})\.csv$`)

const systemActor = "System"

// AuditLog is an event sink. Each game id gets its own game_NNN.csv file
// under <dir>/game_logs, numbered after the highest existing file.
type AuditLog struct {
	dir string

	mu    sync.Mutex
	next  int
	cases map[string]caseFile
}

type caseFile struct {
	caseID string
	path   string
}

func NewAuditLog(baseDir string) (*AuditLog, error) {
	dir := filepath.Join(baseDir, "game_logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan log dir: %w", err)
	}
	highest := 0
	for _, e := range entries {
		m := logName.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
			highest = n
		}
	}
	return &AuditLog{dir: dir, next: highest + 1, cases: make(map[string]caseFile)}, nil
}

// Path returns the file a game's rows go to, allocating one if needed.
func (l *AuditLog) Path(gameID string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.caseFor(gameID).path
}

func (l *AuditLog) OnEvent(event domain.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	c := l.caseFor(event.GameID)
	row, ok := rowFor(c.caseID, event)
	if !ok {
		return nil
	}

	f, err := os.OpenFile(c.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if info, err := f.Stat(); err == nil && info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (l *AuditLog) caseFor(gameID string) caseFile {
	if c, ok := l.cases[gameID]; ok {
		return c
	}
	c := caseFile{
		caseID: fmt.Sprintf("GAME%03d", l.next),
		path:   filepath.Join(l.dir, fmt.Sprintf("game_%03d.csv", l.next)),
	}
	l.next++
	l.cases[gameID] = c
	return c
}

// rowFor maps an event to its audit row. Events with no activity are skipped.
func rowFor(caseID string, event domain.Event) ([]string, bool) {
	ts := event.Time.Format(time.RFC3339)
	row := func(actor, activity, category, value, answer, result, score string) []string {
		return []string{caseID, actor, activity, ts, category, value, answer, result, score}
	}

	switch p := event.Payload.(type) {
	case domain.FileLoadedPayload:
		result := "Success"
		if p.Count == 0 {
			result = "Empty"
		}
		return row(systemActor, "Load File", "", "", p.Source, result, ""), true
	case domain.GameStartedPayload:
		return row(systemActor, "Start Game", "", "", "", "", ""), true
	case domain.PlayerCountPayload:
		return row(systemActor, "Select Player Count", "", strconv.Itoa(p.Count), "", "N/A", ""), true
	case domain.PlayerJoinedPayload:
		return row(systemActor, "Enter Player Name", "", "", p.Player.Name, "N/A", strconv.Itoa(p.Player.Score)), true
	case domain.CategorySelectedPayload:
		return row(p.PlayerName, "Select Category", p.Category, "", "", "", ""), true
	case domain.QuestionSelectedPayload:
		return row(p.PlayerName, "Select Question", p.Category, strconv.Itoa(p.Value), "", "", ""), true
	case domain.QuestionAnsweredPayload:
		result := "Incorrect"
		if p.Correct {
			result = "Correct"
		}
		return row(p.Player.Name, "Answer Question", p.Question.Category, strconv.Itoa(p.Question.Value),
			p.Answer, result, strconv.Itoa(p.Score)), true
	case domain.ReportGeneratedPayload:
		return row(systemActor, "Generate Report", "", "", "N/A", "N/A", ""), true
	case domain.GameFinishedPayload:
		return row(systemActor, "Exit Game", "", "", "", "", ""), true
	}
	return nil, false
}
