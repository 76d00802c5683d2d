package state

import (
	"errors"
	"time"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/rational"
)

// TimeLayout is the fixed-width timestamp format stored in every table, so
// that text ordering matches time ordering.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// #region snapshot
// Snapshot is one version of the editor's board. Each edit commits a new
// snapshot whose parent is the one it was made from.
type Snapshot struct {
	VersionID string
	ParentID  string
	Puzzle    board.Puzzle
	Result    rational.Rat
	Action    string // edit that produced this version, e.g. "cycle-op 20 innerSegment"
	CreatedAt time.Time
}
// #endregion snapshot

// #region version-with-evaluation
// VersionWithEvaluation pairs a snapshot with its most recent evaluation_log row.
type VersionWithEvaluation struct {
	Snapshot
	TriggerType string
	StepsJSON   string
}
// #endregion version-with-evaluation

// #region saved-puzzle
// MaxSavedPuzzles is the number of save slots kept; older saves are pruned.
const MaxSavedPuzzles = 50

// SavedPuzzle is a named save slot.
type SavedPuzzle struct {
	ID      string
	Name    string
	Puzzle  board.Puzzle
	Wire    string
	Result  rational.Rat
	SavedAt time.Time
}
// #endregion saved-puzzle

// #region errors
var (
	// ErrEmptyPuzzle is returned when saving a board with no operations and no bullseye settings.
	ErrEmptyPuzzle = errors.New("puzzle is empty")
	// ErrNotFound is returned for unknown versions and save slots.
	ErrNotFound = errors.New("not found")
	// ErrNothingToUndo is returned by Undo on the initial version.
	ErrNothingToUndo = errors.New("nothing to undo")
)
// #endregion errors
