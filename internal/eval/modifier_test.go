package eval

import (
	"testing"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/rational"
)

func TestResolveAllModifiers(t *testing.T) {
	e := NewEvaluator(DefaultConfig())
	tests := []struct {
		m          board.ModifierState
		value      rational.Rat
		skip       bool
		repeat     int
		annotation string
	}{
		{board.Normal, rational.Int(12), false, 1, ""},
		{board.Cross, rational.Int(12), true, 1, " (ignored)"},
		{board.DiagonalLine, rational.Int(6), false, 1, " (12÷2=6)"},
		{board.TwoDots, rational.Int(12), false, 2, " (repeat operation 2 times)"},
		{board.ThreeDots, rational.Int(12), false, 3, " (repeat operation 3 times)"},
		{board.FourDots, rational.Int(12), false, 4, " (repeat operation 4 times)"},
		{board.Square, rational.Int(144), false, 1, " (12²=144)"},
		{board.TwoSquares, rational.Int(20736), false, 1, " (12⁴=20736)"},
		{board.Diamond, rational.Int(21), false, 1, " (reversed=21)"},
		{board.SingleWavy, rational.Int(12), false, 1, " (rounded to 12)"},
		{board.DoubleWavy, rational.Int(10), false, 1, " (rounded to 10)"},
		{board.TripleWavy, rational.Int(0), false, 1, " (rounded to 0)"},
		{board.OneThirdFull, rational.Int(4), false, 1, " (12÷3=4)"},
	}
	if len(tests) != len(board.ModifierStates()) {
		t.Fatalf("table covers %d of %d states", len(tests), len(board.ModifierStates()))
	}
	for _, tt := range tests {
		t.Run(tt.m.String(), func(t *testing.T) {
			res := e.Resolve(rational.Int(12), tt.m)
			if !res.Value.Equal(tt.value) {
				t.Errorf("value: expected %s, got %s", tt.value.Exact(), res.Value.Exact())
			}
			if res.Skip != tt.skip {
				t.Errorf("skip: expected %v, got %v", tt.skip, res.Skip)
			}
			if res.Repeat != tt.repeat {
				t.Errorf("repeat: expected %d, got %d", tt.repeat, res.Repeat)
			}
			if res.Annotation != tt.annotation {
				t.Errorf("annotation: expected %q, got %q", tt.annotation, res.Annotation)
			}
		})
	}
}

func TestResolveFractionalInputs(t *testing.T) {
	e := NewEvaluator(DefaultConfig())
	third := rational.Frac(10, 3)

	if got := e.Resolve(third, board.SingleWavy).Value; !got.Equal(rational.Int(3)) {
		t.Errorf("round 10/3: expected 3, got %s", got.Exact())
	}
	if got := e.Resolve(rational.Frac(5, 2), board.SingleWavy).Value; !got.Equal(rational.Int(3)) {
		t.Errorf("round 5/2: expected 3, got %s", got.Exact())
	}
	if got := e.Resolve(rational.Int(15), board.DoubleWavy).Value; !got.Equal(rational.Int(20)) {
		t.Errorf("round 15 to tens: expected 20, got %s", got.Exact())
	}
	if got := e.Resolve(rational.Int(7), board.DiagonalLine).Value; !got.Equal(rational.Frac(7, 2)) {
		t.Errorf("halve 7: expected 7/2, got %s", got.Exact())
	}
}

func TestTransformIgnoresRepeatActions(t *testing.T) {
	e := NewEvaluator(DefaultConfig())
	v := rational.Int(7)
	for _, a := range []board.BullseyeAction{board.ActionNone, board.ActionTwoDots, board.ActionThreeDots, board.ActionFourDots} {
		if got := e.Transform(v, a); !got.Equal(v) {
			t.Errorf("%s: expected 7 unchanged, got %s", a, got.Exact())
		}
	}
}

func TestApplyOperations(t *testing.T) {
	a, b := rational.Int(10), rational.Int(4)
	tests := []struct {
		op   board.Operation
		want rational.Rat
	}{
		{board.OpAdd, rational.Int(14)},
		{board.OpSubtract, rational.Int(6)},
		{board.OpMultiply, rational.Int(40)},
		{board.OpDivide, rational.Frac(5, 2)},
		{board.OpNone, rational.Int(10)},
	}
	for _, tt := range tests {
		if got := Apply(a, b, tt.op); !got.Equal(tt.want) {
			t.Errorf("%s: expected %s, got %s", tt.op, tt.want.Exact(), got.Exact())
		}
	}
	if !Apply(a, rational.Int(0), board.OpDivide).IsUndefined() {
		t.Error("division by zero should be undefined")
	}
	if !Apply(rational.Undefined(), b, board.OpAdd).IsUndefined() {
		t.Error("undefined should poison addition")
	}
}
