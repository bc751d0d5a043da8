package storage

import (
	"fmt"
	"time"
)

// Stats aggregates every stored run of one game.
type Stats struct {
	GameID      string
	Runs        int
	Best        int
	Average     float64
	TotalFrames int64
	LastPlayed  time.Time
}

const statsColumns = `COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
	COALESCE(SUM(frames), 0), MAX(created_at)`

// Stats summarizes one game. A game with no runs has zero stats.
func (s *Store) Stats(gameID string) (Stats, error) {
	st := Stats{GameID: gameID}
	var last any
	err := s.db.QueryRow(`SELECT `+statsColumns+` FROM runs WHERE game_id = ?`, gameID).
		Scan(&st.Runs, &st.Best, &st.Average, &st.TotalFrames, &last)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: stats %s: %w", gameID, err)
	}
	st.LastPlayed = parseTime(last)
	return st, nil
}

// AllStats summarizes every game that has runs, ordered by game id.
func (s *Store) AllStats() ([]Stats, error) {
	rows, err := s.db.Query(`SELECT game_id, ` + statsColumns + ` FROM runs GROUP BY game_id ORDER BY game_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: all stats: %w", err)
	}
	defer rows.Close()

	var all []Stats
	for rows.Next() {
		var st Stats
		var last any
		if err := rows.Scan(&st.GameID, &st.Runs, &st.Best, &st.Average, &st.TotalFrames, &last); err != nil {
			return nil, fmt.Errorf("storage: all stats: %w", err)
		}
		st.LastPlayed = parseTime(last)
		all = append(all, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: all stats: %w", err)
	}
	return all, nil
}
