package state

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/rational"
	"github.com/google/go-cmp/cmp"
)

func tempDB(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func edited(t *testing.T) board.Puzzle {
	t.Helper()
	p, err := board.Blank().SetOperation(20, board.InnerSegment, board.OpAdd)
	if err != nil {
		t.Fatal(err)
	}
	p, _ = p.SetModifier(5, board.TwoDots)
	p.Bullseye = board.Bullseye{Color: board.Yellow, InnerAction: board.ActionSquare}
	return p
}

func TestCreateInitialAndGetCurrent(t *testing.T) {
	s := tempDB(t)

	snap, err := s.CreateInitial(board.Blank(), rational.Int(0))
	if err != nil {
		t.Fatalf("CreateInitial: %v", err)
	}
	if snap.VersionID == "" {
		t.Fatal("expected non-empty version ID")
	}
	if snap.ParentID != "" {
		t.Fatalf("expected empty parent, got %s", snap.ParentID)
	}

	cur, err := s.GetCurrent()
	if err != nil {
		t.Fatalf("GetCurrent: %v", err)
	}
	if cur.VersionID != snap.VersionID {
		t.Fatalf("expected %s, got %s", snap.VersionID, cur.VersionID)
	}
	if !cur.Puzzle.IsEmpty() {
		t.Fatal("expected blank puzzle")
	}
}

func TestGetCurrentNoHistory(t *testing.T) {
	s := tempDB(t)
	if _, err := s.GetCurrent(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordRoundTripsPuzzleAndResult(t *testing.T) {
	s := tempDB(t)
	root, _ := s.CreateInitial(board.Blank(), rational.Int(0))

	p := edited(t)
	snap, err := s.Record(p, rational.Frac(10, 3), "set-op 20 innerSegment add")
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if snap.ParentID != root.VersionID {
		t.Fatalf("expected parent %s, got %s", root.VersionID, snap.ParentID)
	}

	got, err := s.GetVersion(snap.VersionID)
	if err != nil {
		t.Fatalf("GetVersion: %v", err)
	}
	if diff := cmp.Diff(p, got.Puzzle); diff != "" {
		t.Fatalf("puzzle mismatch (-want +got):\n%s", diff)
	}
	if !got.Result.Equal(rational.Frac(10, 3)) {
		t.Fatalf("expected 10/3, got %s", got.Result.Exact())
	}
	if got.Action != "set-op 20 innerSegment add" {
		t.Fatalf("unexpected action %q", got.Action)
	}
}

func TestRecordWithoutHistoryCreatesRoot(t *testing.T) {
	s := tempDB(t)
	snap, err := s.Record(edited(t), rational.Undefined(), "load")
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if snap.ParentID != "" {
		t.Fatalf("expected root version, got parent %q", snap.ParentID)
	}
	cur, err := s.GetCurrent()
	if err != nil {
		t.Fatalf("GetCurrent: %v", err)
	}
	if !cur.Result.IsUndefined() {
		t.Fatalf("expected undefined result, got %s", cur.Result.Exact())
	}
}

func TestCommitAndRollback(t *testing.T) {
	s := tempDB(t)
	v1, _ := s.CreateInitial(board.Blank(), rational.Int(0))

	v2 := Snapshot{
		VersionID: "v2-test",
		ParentID:  v1.VersionID,
		Puzzle:    edited(t),
		Result:    rational.Int(20),
		CreatedAt: v1.CreatedAt,
	}
	if err := s.Commit(v2); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	cur, _ := s.GetCurrent()
	if cur.VersionID != "v2-test" {
		t.Fatalf("expected v2-test, got %s", cur.VersionID)
	}

	if err := s.Rollback(v1.VersionID); err != nil {
		t.Fatalf("Rollback: %v", err)
	}
	cur, _ = s.GetCurrent()
	if cur.VersionID != v1.VersionID {
		t.Fatalf("expected %s after rollback, got %s", v1.VersionID, cur.VersionID)
	}
}

func TestRollbackNonExistent(t *testing.T) {
	s := tempDB(t)
	s.CreateInitial(board.Blank(), rational.Int(0))

	if err := s.Rollback("nonexistent-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUndoWalksParents(t *testing.T) {
	s := tempDB(t)
	root, _ := s.CreateInitial(board.Blank(), rational.Int(0))
	first, _ := s.Record(edited(t), rational.Int(20), "edit 1")
	if _, err := s.Record(edited(t).Reset(), rational.Int(0), "reset"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := s.Undo()
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got.VersionID != first.VersionID {
		t.Fatalf("expected %s, got %s", first.VersionID, got.VersionID)
	}
	got, err = s.Undo()
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got.VersionID != root.VersionID {
		t.Fatalf("expected root, got %s", got.VersionID)
	}
	if _, err := s.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}
}

func TestListVersions(t *testing.T) {
	s := tempDB(t)
	v1, _ := s.CreateInitial(board.Blank(), rational.Int(0))
	v2, _ := s.Record(edited(t), rational.Int(20), "edit")

	versions, err := s.ListVersions(10)
	if err != nil {
		t.Fatalf("ListVersions: %v", err)
	}
	if len(versions) != 2 {
		t.Fatalf("expected 2 versions, got %d", len(versions))
	}
	if versions[0].VersionID != v2.VersionID || versions[1].VersionID != v1.VersionID {
		t.Fatal("expected newest first")
	}
}

func TestListVersionsWithEvaluations(t *testing.T) {
	s := tempDB(t)
	v1, _ := s.CreateInitial(board.Blank(), rational.Int(0))
	_, err := s.DB().Exec(
		`INSERT INTO evaluation_log (version_id, trigger_type, result, steps_json, created_at)
		 VALUES (?, 'cli', '0', '[]', '2026-01-01T00:00:00Z'),
		        (?, 'edit', '0', '["x"]', '2026-01-01T00:00:01Z')`,
		v1.VersionID, v1.VersionID,
	)
	if err != nil {
		t.Fatalf("insert log: %v", err)
	}
	s.Record(edited(t), rational.Int(20), "edit")

	versions, err := s.ListVersionsWithEvaluations(10)
	if err != nil {
		t.Fatalf("ListVersionsWithEvaluations: %v", err)
	}
	if len(versions) != 2 {
		t.Fatalf("expected 2 versions, got %d", len(versions))
	}
	if versions[0].TriggerType != "" {
		t.Fatalf("expected no evaluation for newest version, got %q", versions[0].TriggerType)
	}
	if versions[1].TriggerType != "edit" || versions[1].StepsJSON != `["x"]` {
		t.Fatalf("expected latest log row, got %q %q", versions[1].TriggerType, versions[1].StepsJSON)
	}
}

func TestNewStoreInvalidPath(t *testing.T) {
	_, err := NewStore(filepath.Join(string(os.PathSeparator), "nonexistent", "deep", "path", "test.db"))
	if err == nil {
		t.Fatal("expected error for invalid path")
	}
}

func TestNewStoreNotADatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.db")
	if err := os.WriteFile(path, bytes.Repeat([]byte("not a sqlite file "), 512), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStore(path); err == nil {
		t.Fatal("expected error for a file that is not a database")
	}
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove after failed open: %v", err)
	}
}

func TestGetVersionNotFound(t *testing.T) {
	s := tempDB(t)
	s.CreateInitial(board.Blank(), rational.Int(0))

	if _, err := s.GetVersion("nonexistent-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOperationsOnClosedDB(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewStore(filepath.Join(dir, "test.db"))
	v1, _ := s.CreateInitial(board.Blank(), rational.Int(0))
	s.Close()

	if _, err := s.CreateInitial(board.Blank(), rational.Int(0)); err == nil {
		t.Error("CreateInitial: expected error on closed DB")
	}
	if err := s.Rollback(v1.VersionID); err == nil {
		t.Error("Rollback: expected error on closed DB")
	}
	if _, err := s.ListVersions(10); err == nil {
		t.Error("ListVersions: expected error on closed DB")
	}
	if _, err := s.GetCurrent(); err == nil {
		t.Error("GetCurrent: expected error on closed DB")
	}
	if _, err := s.SavePuzzle(edited(t), rational.Int(1), ""); err == nil {
		t.Error("SavePuzzle: expected error on closed DB")
	}
}
