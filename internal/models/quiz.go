package models

import "time"

// QuizResult is a row of the quiz_results table. Responses is stored as JSONB
// keyed by question index.
type QuizResult struct {
	QuizID      string         `db:"quiz_id"`
	UserID      string         `db:"user_id"`
	Responses   map[string]int `db:"responses"`
	CompletedAt time.Time      `db:"completed_at"`
	Processed   bool           `db:"processed"`
}
