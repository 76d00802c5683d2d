package logging

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/codec"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/eval"
)

// timeLayout matches the fixed-width timestamps of the state tables.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// #region log-evaluation
// LogEvaluation writes an entry to the evaluation_log table.
func LogEvaluation(db *sql.DB, entry EvaluationEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO evaluation_log (version_id, trigger_type, wire, result, steps_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		nullIfEmpty(entry.VersionID),
		entry.TriggerType,
		nullIfEmpty(entry.Wire),
		entry.Result,
		nullIfEmpty(entry.StepsJSON),
		entry.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("log evaluation: %w", err)
	}
	return nil
}

// NewEvaluationEntry builds an entry for p and its result.
func NewEvaluationEntry(trigger, versionID string, p board.Puzzle, res eval.Result) (EvaluationEntry, error) {
	steps, err := json.Marshal(res.Steps)
	if err != nil {
		return EvaluationEntry{}, fmt.Errorf("marshal steps: %w", err)
	}
	return EvaluationEntry{
		VersionID:   versionID,
		TriggerType: trigger,
		Wire:        codec.Encode(p),
		Result:      res.Value.Exact(),
		StepsJSON:   string(steps),
	}, nil
}
// #endregion log-evaluation

// #region helpers
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
// #endregion helpers
