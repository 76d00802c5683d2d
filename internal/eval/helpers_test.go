package eval

import (
	"testing"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/rational"
	"github.com/google/go-cmp/cmp"
)

// #region helpers

// ratEqual compares rationals by value; Rat has unexported fields.
var ratEqual = cmp.Comparer(func(a, b rational.Rat) bool { return a.Equal(b) })

func withOp(t *testing.T, p board.Puzzle, number int, kind board.PartKind, op board.Operation) board.Puzzle {
	t.Helper()
	p, err := p.SetOperation(number, kind, op)
	if err != nil {
		t.Fatalf("SetOperation(%d): %v", number, err)
	}
	return p
}

func withModifier(t *testing.T, p board.Puzzle, number int, m board.ModifierState) board.Puzzle {
	t.Helper()
	p, err := p.SetModifier(number, m)
	if err != nil {
		t.Fatalf("SetModifier(%d): %v", number, err)
	}
	return p
}

func withPartial(t *testing.T, p board.Puzzle, number int, kind board.PartKind) board.Puzzle {
	t.Helper()
	p, err := p.TogglePartial(number, kind)
	if err != nil {
		t.Fatalf("TogglePartial(%d): %v", number, err)
	}
	return p
}

// #endregion helpers
