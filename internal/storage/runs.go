package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidRunID is returned for run ids that are not UUIDs.
var ErrInvalidRunID = errors.New("storage: invalid run id")

// Run is one finished game session.
type Run struct {
	ID     string // UUID; generated when empty
	GameID string
	Score  int
	Frames uint64 // Loop frames the run lasted
	Seed   int64
}

// Entry is a stored run.
type Entry struct {
	Run
	Row       int64 // insertion order, breaks score ties
	CreatedAt time.Time
}

const entryColumns = `id, run_id, game_id, score, frames, seed, created_at`

// SaveRun records r and returns its run id.
func (s *Store) SaveRun(r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	} else if _, err := uuid.Parse(r.ID); err != nil {
		return "", fmt.Errorf("%w %q", ErrInvalidRunID, r.ID)
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, game_id, score, frames, seed) VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.GameID, r.Score, int64(r.Frames), r.Seed,
	)
	if err != nil {
		return "", fmt.Errorf("storage: save run: %w", err)
	}
	return r.ID, nil
}

// TopScores returns the best runs of a game, highest first; earlier runs
// win ties. limit <= 0 returns every run.
func (s *Store) TopScores(gameID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.Query(
		`SELECT `+entryColumns+` FROM runs WHERE game_id = ? ORDER BY score DESC, id ASC LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: top scores: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: top scores: %w", err)
	}
	return entries, nil
}

// Lookup finds a run by id. found is false when no run matches.
func (s *Store) Lookup(runID string) (e Entry, found bool, err error) {
	if _, err := uuid.Parse(runID); err != nil {
		return Entry{}, false, fmt.Errorf("%w %q", ErrInvalidRunID, runID)
	}
	e, err = scanEntry(s.db.QueryRow(`SELECT `+entryColumns+` FROM runs WHERE run_id = ?`, runID))
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

// Clear deletes every run of a game and reports how many were removed.
func (s *Store) Clear(gameID string) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM runs WHERE game_id = ?`, gameID)
	if err != nil {
		return 0, fmt.Errorf("storage: clear %s: %w", gameID, err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var (
		e         Entry
		frames    int64
		createdAt any
	)
	err := row.Scan(&e.Row, &e.ID, &e.GameID, &e.Score, &frames, &e.Seed, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, err
	}
	if err != nil {
		return Entry{}, fmt.Errorf("storage: scan run: %w", err)
	}
	e.Frames = uint64(frames)
	e.CreatedAt = parseTime(createdAt)
	return e, nil
}

const sqliteTime = "2006-01-02 15:04:05"

// parseTime accepts the driver's time.Time or SQLite's text timestamps.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
