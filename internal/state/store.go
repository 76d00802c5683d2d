package state

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/rational"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS puzzle_versions (
	version_id   TEXT PRIMARY KEY,
	parent_id    TEXT,
	puzzle_json  TEXT NOT NULL,
	result       TEXT NOT NULL,
	action       TEXT,
	created_at   TEXT NOT NULL,
	FOREIGN KEY (parent_id) REFERENCES puzzle_versions(version_id)
);

CREATE TABLE IF NOT EXISTS evaluation_log (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	version_id   TEXT,
	trigger_type TEXT NOT NULL,
	wire         TEXT,
	result       TEXT NOT NULL,
	steps_json   TEXT,
	created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS active_puzzle (
	id           INTEGER PRIMARY KEY CHECK (id = 1),
	version_id   TEXT NOT NULL,
	FOREIGN KEY (version_id) REFERENCES puzzle_versions(version_id)
);

CREATE TABLE IF NOT EXISTS saved_puzzles (
	id           TEXT PRIMARY KEY,
	name         TEXT,
	puzzle_json  TEXT NOT NULL,
	wire         TEXT NOT NULL,
	result       TEXT NOT NULL,
	saved_at     TEXT NOT NULL
);
`
// #endregion schema

// #region store-struct
// Store keeps editor history and save slots in SQLite.
type Store struct {
	db *sql.DB
}
// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}
// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB for the evaluation log writer.
func (s *Store) DB() *sql.DB {
	return s.db
}
// #endregion db-accessor

// #region create-initial
// CreateInitial stores p as a root version and makes it active.
func (s *Store) CreateInitial(p board.Puzzle, result rational.Rat) (Snapshot, error) {
	snap := Snapshot{
		VersionID: uuid.New().String(),
		Puzzle:    p,
		Result:    result,
		Action:    "init",
		CreatedAt: time.Now().UTC(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Snapshot{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := insertVersion(tx, snap); err != nil {
		return Snapshot{}, err
	}
	_, err = tx.Exec(
		`INSERT INTO active_puzzle (id, version_id) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET version_id = excluded.version_id`,
		snap.VersionID,
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("set active: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Snapshot{}, fmt.Errorf("commit: %w", err)
	}
	return snap, nil
}
// #endregion create-initial

// #region get-current
// GetCurrent reads the active version. It wraps ErrNotFound when no history exists.
func (s *Store) GetCurrent() (Snapshot, error) {
	var versionID string
	err := s.db.QueryRow(`SELECT version_id FROM active_puzzle WHERE id = 1`).Scan(&versionID)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("get active: %w", ErrNotFound)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("get active: %w", err)
	}
	return s.GetVersion(versionID)
}
// #endregion get-current

// #region get-version
// GetVersion retrieves a specific version by ID.
func (s *Store) GetVersion(id string) (Snapshot, error) {
	row := s.db.QueryRow(
		`SELECT version_id, parent_id, puzzle_json, result, action, created_at
		 FROM puzzle_versions WHERE version_id = ?`, id,
	)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("get version %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("get version %s: %w", id, err)
	}
	return snap, nil
}
// #endregion get-version

// #region commit
// Commit inserts a new version and updates the active pointer atomically.
func (s *Store) Commit(snap Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := insertVersion(tx, snap); err != nil {
		return err
	}
	res, err := tx.Exec(`UPDATE active_puzzle SET version_id = ? WHERE id = 1`, snap.VersionID)
	if err != nil {
		return fmt.Errorf("update active: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := tx.Exec(`INSERT INTO active_puzzle (id, version_id) VALUES (1, ?)`, snap.VersionID); err != nil {
			return fmt.Errorf("set active: %w", err)
		}
	}

	return tx.Commit()
}

// Record commits p as a child of the active version, or as a root when the
// history is empty.
func (s *Store) Record(p board.Puzzle, result rational.Rat, action string) (Snapshot, error) {
	snap := Snapshot{
		VersionID: uuid.New().String(),
		Puzzle:    p,
		Result:    result,
		Action:    action,
		CreatedAt: time.Now().UTC(),
	}
	cur, err := s.GetCurrent()
	switch {
	case err == nil:
		snap.ParentID = cur.VersionID
	case !errors.Is(err, ErrNotFound):
		return Snapshot{}, err
	}
	if err := s.Commit(snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
// #endregion commit

// #region rollback
// Rollback sets the active pointer to a previous version.
func (s *Store) Rollback(targetVersionID string) error {
	var exists int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM puzzle_versions WHERE version_id = ?`, targetVersionID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check version: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("version %s: %w", targetVersionID, ErrNotFound)
	}

	_, err = s.db.Exec(`UPDATE active_puzzle SET version_id = ? WHERE id = 1`, targetVersionID)
	if err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

// Undo moves the active pointer to the parent of the active version and
// returns the new active snapshot.
func (s *Store) Undo() (Snapshot, error) {
	cur, err := s.GetCurrent()
	if err != nil {
		return Snapshot{}, err
	}
	if cur.ParentID == "" {
		return cur, ErrNothingToUndo
	}
	if err := s.Rollback(cur.ParentID); err != nil {
		return Snapshot{}, err
	}
	return s.GetVersion(cur.ParentID)
}
// #endregion rollback

// #region list-versions
// ListVersions returns the most recent versions, newest first.
func (s *Store) ListVersions(limit int) ([]Snapshot, error) {
	rows, err := s.db.Query(
		`SELECT version_id, parent_id, puzzle_json, result, action, created_at
		 FROM puzzle_versions ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// ListVersionsWithEvaluations returns recent versions joined with their
// latest evaluation_log entry, if any.
func (s *Store) ListVersionsWithEvaluations(limit int) ([]VersionWithEvaluation, error) {
	rows, err := s.db.Query(
		`SELECT v.version_id, v.parent_id, v.puzzle_json, v.result, v.action, v.created_at,
		        e.trigger_type, e.steps_json
		 FROM puzzle_versions v
		 LEFT JOIN evaluation_log e
		   ON e.id = (SELECT MAX(id) FROM evaluation_log WHERE version_id = v.version_id)
		 ORDER BY v.created_at DESC, v.rowid DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var out []VersionWithEvaluation
	for rows.Next() {
		var v VersionWithEvaluation
		var parentID, action, trigger, steps sql.NullString
		var puzzleJSON, result, createdStr string
		if err := rows.Scan(&v.VersionID, &parentID, &puzzleJSON, &result, &action, &createdStr, &trigger, &steps); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if err := fillSnapshot(&v.Snapshot, parentID, puzzleJSON, result, action, createdStr); err != nil {
			return nil, err
		}
		v.TriggerType = trigger.String
		v.StepsJSON = steps.String
		out = append(out, v)
	}
	return out, rows.Err()
}
// #endregion list-versions

// #region row-helpers
type rowScanner interface {
	Scan(dest ...any) error
}

func insertVersion(tx *sql.Tx, snap Snapshot) error {
	puzzleJSON, err := json.Marshal(snap.Puzzle)
	if err != nil {
		return fmt.Errorf("marshal puzzle: %w", err)
	}
	var parentPtr any
	if snap.ParentID != "" {
		parentPtr = snap.ParentID
	}
	var actionPtr any
	if snap.Action != "" {
		actionPtr = snap.Action
	}
	_, err = tx.Exec(
		`INSERT INTO puzzle_versions (version_id, parent_id, puzzle_json, result, action, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		snap.VersionID, parentPtr, string(puzzleJSON), snap.Result.Exact(), actionPtr,
		snap.CreatedAt.Format(TimeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert version: %w", err)
	}
	return nil
}

func scanSnapshot(row rowScanner) (Snapshot, error) {
	var snap Snapshot
	var parentID, action sql.NullString
	var puzzleJSON, result, createdStr string
	if err := row.Scan(&snap.VersionID, &parentID, &puzzleJSON, &result, &action, &createdStr); err != nil {
		return Snapshot{}, err
	}
	if err := fillSnapshot(&snap, parentID, puzzleJSON, result, action, createdStr); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func fillSnapshot(snap *Snapshot, parentID sql.NullString, puzzleJSON, result string, action sql.NullString, createdStr string) error {
	snap.ParentID = parentID.String
	snap.Action = action.String
	if err := json.Unmarshal([]byte(puzzleJSON), &snap.Puzzle); err != nil {
		return fmt.Errorf("unmarshal puzzle: %w", err)
	}
	r, err := rational.Parse(result)
	if err != nil {
		return fmt.Errorf("parse result: %w", err)
	}
	snap.Result = r
	snap.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return nil
}
// #endregion row-helpers
