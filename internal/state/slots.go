package state

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/codec"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/rational"
	"github.com/google/uuid"
)

// #region save
// SavePuzzle stores p in a new slot with its computed result. Blank boards
// are refused with ErrEmptyPuzzle. Only the newest MaxSavedPuzzles slots are kept.
func (s *Store) SavePuzzle(p board.Puzzle, result rational.Rat, name string) (SavedPuzzle, error) {
	if p.IsEmpty() {
		return SavedPuzzle{}, ErrEmptyPuzzle
	}

	saved := SavedPuzzle{
		ID:      uuid.New().String(),
		Name:    name,
		Puzzle:  p,
		Wire:    codec.Encode(p),
		Result:  result,
		SavedAt: time.Now().UTC(),
	}
	puzzleJSON, err := json.Marshal(p)
	if err != nil {
		return SavedPuzzle{}, fmt.Errorf("marshal puzzle: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return SavedPuzzle{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var namePtr any
	if name != "" {
		namePtr = name
	}
	_, err = tx.Exec(
		`INSERT INTO saved_puzzles (id, name, puzzle_json, wire, result, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		saved.ID, namePtr, string(puzzleJSON), saved.Wire, result.Exact(),
		saved.SavedAt.Format(TimeLayout),
	)
	if err != nil {
		return SavedPuzzle{}, fmt.Errorf("insert saved puzzle: %w", err)
	}

	_, err = tx.Exec(
		`DELETE FROM saved_puzzles WHERE rowid NOT IN (
		   SELECT rowid FROM saved_puzzles ORDER BY saved_at DESC, rowid DESC LIMIT ?
		 )`, MaxSavedPuzzles,
	)
	if err != nil {
		return SavedPuzzle{}, fmt.Errorf("prune saved puzzles: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return SavedPuzzle{}, fmt.Errorf("commit: %w", err)
	}
	return saved, nil
}
// #endregion save

// #region list-saved
// ListSaved returns every slot, newest first.
func (s *Store) ListSaved() ([]SavedPuzzle, error) {
	rows, err := s.db.Query(
		`SELECT id, name, puzzle_json, wire, result, saved_at
		 FROM saved_puzzles ORDER BY saved_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list saved: %w", err)
	}
	defer rows.Close()

	var out []SavedPuzzle
	for rows.Next() {
		sp, err := scanSaved(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

// GetSaved loads one slot.
func (s *Store) GetSaved(id string) (SavedPuzzle, error) {
	row := s.db.QueryRow(
		`SELECT id, name, puzzle_json, wire, result, saved_at
		 FROM saved_puzzles WHERE id = ?`, id,
	)
	sp, err := scanSaved(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedPuzzle{}, fmt.Errorf("saved puzzle %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return SavedPuzzle{}, fmt.Errorf("saved puzzle %s: %w", id, err)
	}
	return sp, nil
}
// #endregion list-saved

// #region delete-saved
// DeleteSaved removes one slot.
func (s *Store) DeleteSaved(id string) error {
	res, err := s.db.Exec(`DELETE FROM saved_puzzles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete saved: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete saved: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("saved puzzle %s: %w", id, ErrNotFound)
	}
	return nil
}

// ClearSaved removes every slot and reports how many were deleted.
func (s *Store) ClearSaved() (int, error) {
	res, err := s.db.Exec(`DELETE FROM saved_puzzles`)
	if err != nil {
		return 0, fmt.Errorf("clear saved: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
// #endregion delete-saved

// #region scan-saved
func scanSaved(row rowScanner) (SavedPuzzle, error) {
	var sp SavedPuzzle
	var name sql.NullString
	var puzzleJSON, result, savedStr string
	if err := row.Scan(&sp.ID, &name, &puzzleJSON, &sp.Wire, &result, &savedStr); err != nil {
		return SavedPuzzle{}, err
	}
	sp.Name = name.String
	if err := json.Unmarshal([]byte(puzzleJSON), &sp.Puzzle); err != nil {
		return SavedPuzzle{}, fmt.Errorf("unmarshal puzzle: %w", err)
	}
	r, err := rational.Parse(result)
	if err != nil {
		return SavedPuzzle{}, fmt.Errorf("parse result: %w", err)
	}
	sp.Result = r
	sp.SavedAt, _ = time.Parse(time.RFC3339Nano, savedStr)
	return sp, nil
}
// #endregion scan-saved
