package eval

import (
	"sync"
	"testing"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/rational"
	"github.com/google/go-cmp/cmp"
)

// #region empty-board

func TestEvaluateEmptyBoard(t *testing.T) {
	var sequential board.Numbering
	for i := range sequential {
		sequential[i] = i + 1
	}
	for _, n := range []board.Numbering{board.StandardNumbering, sequential} {
		res := Evaluate(board.NewPuzzle(n))
		if !res.Value.IsZero() {
			t.Fatalf("expected 0, got %s", res.Value.Exact())
		}
		if res.Steps == nil || len(res.Steps) != 0 {
			t.Fatalf("expected empty non-nil steps, got %#v", res.Steps)
		}
	}
}

func TestEvaluateEmptyBoardIgnoresBullseye(t *testing.T) {
	p := board.Blank()
	p.Bullseye = board.Bullseye{Color: board.Blue, InnerAction: board.ActionSquare}
	res := Evaluate(p)
	if !res.Value.IsZero() || len(res.Steps) != 0 {
		t.Fatalf("expected empty result, got %s %v", res.Value.Exact(), res.Steps)
	}
}

// #endregion empty-board

// #region exact-thirds

func TestEvaluatePartialNineSeedsThree(t *testing.T) {
	p := withOp(t, board.Blank(), 9, board.InnerSegment, board.OpAdd)
	p = withPartial(t, p, 9, board.InnerSegment)

	res := Evaluate(p)
	if !res.Value.Equal(rational.Int(3)) {
		t.Fatalf("expected exactly 3, got %s", res.Value.Exact())
	}
	want := []string{"Starting with 9 (⅓ of 9=3)"}
	if diff := cmp.Diff(want, res.Steps); diff != "" {
		t.Fatalf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluatePartialThirdRestoredExactly(t *testing.T) {
	p := withOp(t, board.Blank(), 10, board.InnerSegment, board.OpAdd)
	p = withPartial(t, p, 10, board.InnerSegment)
	p = withOp(t, p, 9, board.InnerSegment, board.OpMultiply)
	p = withModifier(t, p, 9, board.OneThirdFull)

	res := Evaluate(p)
	if !res.Value.Equal(rational.Int(10)) || !res.Value.IsInt() {
		t.Fatalf("expected exactly 10, got %s", res.Value.Exact())
	}
	want := []string{
		"Starting with 10 (⅓ of 10=3.33)",
		"3.33 × 9 (9÷3=3) = 10",
	}
	if diff := cmp.Diff(want, res.Steps); diff != "" {
		t.Fatalf("steps mismatch (-want +got):\n%s", diff)
	}
}

// #endregion exact-thirds

// #region repeat-semantics

func TestEvaluateRepeatReplaysSubtraction(t *testing.T) {
	p := withOp(t, board.Blank(), 20, board.InnerSegment, board.OpAdd)
	p = withOp(t, p, 5, board.InnerSegment, board.OpSubtract)
	p = withModifier(t, p, 5, board.TwoDots)

	res := Evaluate(p)
	if !res.Value.Equal(rational.Int(10)) {
		t.Fatalf("expected 10, got %s", res.Value.Exact())
	}
}

func TestEvaluateRepeatReplaysMultiplication(t *testing.T) {
	// 2 × 3 × 3 = 18, not 2 × (3·2) = 12.
	p := withOp(t, board.Blank(), 2, board.InnerSegment, board.OpAdd)
	p = withOp(t, p, 3, board.InnerSegment, board.OpMultiply)
	p = withModifier(t, p, 3, board.TwoDots)

	res := Evaluate(p)
	if !res.Value.Equal(rational.Int(18)) {
		t.Fatalf("expected 18, got %s", res.Value.Exact())
	}
}

func TestEvaluateRepeatReplaysDivision(t *testing.T) {
	p := withOp(t, board.Blank(), 20, board.InnerSegment, board.OpAdd)
	p = withOp(t, p, 2, board.InnerSegment, board.OpDivide)
	p = withModifier(t, p, 2, board.ThreeDots)

	res := Evaluate(p)
	if !res.Value.Equal(rational.Frac(5, 2)) {
		t.Fatalf("expected 5/2, got %s", res.Value.Exact())
	}
	want := []string{
		"Starting with 20",
		"20 ÷ 2 (repeat operation 3 times) = 10",
		"  Repeat 2 of 3: 10 ÷ 2 = 5",
		"  Repeat 3 of 3: 5 ÷ 2 = 2.5",
	}
	if diff := cmp.Diff(want, res.Steps); diff != "" {
		t.Fatalf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluateRepeatNotAppliedToSeed(t *testing.T) {
	p := withOp(t, board.Blank(), 20, board.InnerSegment, board.OpMultiply)
	p = withModifier(t, p, 20, board.FourDots)

	res := Evaluate(p)
	if !res.Value.Equal(rational.Int(20)) {
		t.Fatalf("expected 20, got %s", res.Value.Exact())
	}
}

// #endregion repeat-semantics

// #region scenario

func TestEvaluateScenarioYellowSquare(t *testing.T) {
	p := withOp(t, board.Blank(), 20, board.InnerSegment, board.OpAdd)
	p = withOp(t, p, 5, board.InnerSegment, board.OpSubtract)
	p = withModifier(t, p, 5, board.TwoDots)
	p.Bullseye = board.Bullseye{Color: board.Yellow, InnerAction: board.ActionSquare}

	res := Evaluate(p)
	if !res.Value.Equal(rational.Int(100)) {
		t.Fatalf("expected 100, got %s", res.Value.Exact())
	}
	want := []string{
		"Starting with 20",
		"20 - 5 (repeat operation 2 times) = 15",
		"  Repeat 2 of 2: 15 - 5 = 10",
		"Bullseye yellow matches subtract:",
		"  Square(10) = 100",
	}
	if diff := cmp.Diff(want, res.Steps); diff != "" {
		t.Fatalf("steps mismatch (-want +got):\n%s", diff)
	}
}

// #endregion scenario

// #region modifiers

func TestEvaluateDiamondSeed(t *testing.T) {
	p := withOp(t, board.Blank(), 12, board.MainSegment, board.OpAdd)
	p = withModifier(t, p, 12, board.Diamond)

	res := Evaluate(p)
	if !res.Value.Equal(rational.Int(21)) {
		t.Fatalf("expected 21, got %s", res.Value.Exact())
	}
	if res.Steps[0] != "Starting with 12 (reversed=21)" {
		t.Fatalf("unexpected seed step %q", res.Steps[0])
	}
}

func TestEvaluateCrossIgnoresNumber(t *testing.T) {
	p := withOp(t, board.Blank(), 20, board.InnerSegment, board.OpAdd)
	p = withOp(t, p, 1, board.InnerSegment, board.OpMultiply)
	p = withModifier(t, p, 1, board.Cross)

	res := Evaluate(p)
	if !res.Value.Equal(rational.Int(20)) {
		t.Fatalf("expected 20, got %s", res.Value.Exact())
	}
	want := []string{
		"Starting with 20",
		"20 × 1 (ignored) = 20 (operation skipped)",
	}
	if diff := cmp.Diff(want, res.Steps); diff != "" {
		t.Fatalf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluateCrossBeforeSeed(t *testing.T) {
	p := withOp(t, board.Blank(), 20, board.InnerSegment, board.OpAdd)
	p = withModifier(t, p, 20, board.Cross)
	p = withOp(t, p, 1, board.InnerSegment, board.OpAdd)

	res := Evaluate(p)
	want := []string{
		"20 (ignored) (operation skipped)",
		"Starting with 1",
	}
	if diff := cmp.Diff(want, res.Steps); diff != "" {
		t.Fatalf("steps mismatch (-want +got):\n%s", diff)
	}
	if !res.Value.Equal(rational.Int(1)) {
		t.Fatalf("expected 1, got %s", res.Value.Exact())
	}
}

func TestEvaluateAllIgnoredIsZero(t *testing.T) {
	p := withOp(t, board.Blank(), 7, board.DoubleRing, board.OpAdd)
	p = withModifier(t, p, 7, board.Cross)

	res := Evaluate(p)
	if !res.Value.IsZero() {
		t.Fatalf("expected 0, got %s", res.Value.Exact())
	}
	if len(res.Steps) != 1 {
		t.Fatalf("expected the ignored step, got %v", res.Steps)
	}
}

func TestEvaluateModifierAppliesToEveryPartOfWedge(t *testing.T) {
	p := withOp(t, board.Blank(), 3, board.InnerSegment, board.OpAdd)
	p = withOp(t, p, 3, board.MainSegment, board.OpAdd)
	p = withModifier(t, p, 3, board.Square)

	res := Evaluate(p)
	if !res.Value.Equal(rational.Int(18)) {
		t.Fatalf("expected 9 + 9 = 18, got %s", res.Value.Exact())
	}
}

func TestEvaluatePartialThenModifier(t *testing.T) {
	p := withOp(t, board.Blank(), 12, board.TripleRing, board.OpAdd)
	p = withPartial(t, p, 12, board.TripleRing)
	p = withModifier(t, p, 12, board.Square)

	res := Evaluate(p)
	if !res.Value.Equal(rational.Int(16)) {
		t.Fatalf("expected (12/3)² = 16, got %s", res.Value.Exact())
	}
	if res.Steps[0] != "Starting with 12 (⅓ of 12=4) (4²=16)" {
		t.Fatalf("unexpected step %q", res.Steps[0])
	}
}

func TestEvaluateSubtractSeedIsNegated(t *testing.T) {
	p := withOp(t, board.Blank(), 5, board.InnerSegment, board.OpSubtract)

	res := Evaluate(p)
	if !res.Value.Equal(rational.Int(-5)) {
		t.Fatalf("expected -5, got %s", res.Value.Exact())
	}
	if res.Steps[0] != "Starting with 5 (yellow segment, negated: -5)" {
		t.Fatalf("unexpected step %q", res.Steps[0])
	}
}

// #endregion modifiers

// #region ordering

func TestEvaluateInnerRingsFirst(t *testing.T) {
	p := withOp(t, board.Blank(), 20, board.OuterRing, board.OpMultiply)
	p = withOp(t, p, 5, board.InnerSegment, board.OpAdd)

	res := Evaluate(p)
	if !res.Value.Equal(rational.Int(100)) {
		t.Fatalf("expected 5 × 20 = 100, got %s", res.Value.Exact())
	}
	if res.Steps[0] != "Starting with 5" {
		t.Fatalf("expected seed from inner ring, got %q", res.Steps[0])
	}
}

func TestEvaluateClockwiseWithinRing(t *testing.T) {
	// 1 sits clockwise before 18 on the standard board.
	p := withOp(t, board.Blank(), 18, board.MainSegment, board.OpAdd)
	p = withOp(t, p, 1, board.MainSegment, board.OpSubtract)

	res := Evaluate(p)
	if !res.Value.Equal(rational.Int(17)) {
		t.Fatalf("expected -1 + 18 = 17, got %s", res.Value.Exact())
	}
}

// #endregion ordering

// #region bullseye

func TestEvaluateBullseyeFiresPerRing(t *testing.T) {
	p := withOp(t, board.Blank(), 2, board.InnerSegment, board.OpAdd)
	p = withOp(t, p, 3, board.InnerSegment, board.OpMultiply)
	p = withOp(t, p, 4, board.TripleRing, board.OpMultiply)
	p.Bullseye = board.Bullseye{Color: board.Pink, InnerAction: board.ActionSquare}

	res := Evaluate(p)
	// ring 0: 2 × 3 = 6, squared 36; ring 1: 36 × 4 = 144, squared 20736
	if !res.Value.Equal(rational.Int(20736)) {
		t.Fatalf("expected 20736, got %s", res.Value.Exact())
	}
}

func TestEvaluateBullseyeNoMatchNoTrigger(t *testing.T) {
	p := withOp(t, board.Blank(), 2, board.InnerSegment, board.OpAdd)
	p = withOp(t, p, 3, board.InnerSegment, board.OpMultiply)
	p.Bullseye = board.Bullseye{Color: board.Purple, InnerAction: board.ActionSquare}

	res := Evaluate(p)
	if !res.Value.Equal(rational.Int(6)) {
		t.Fatalf("expected 6, got %s", res.Value.Exact())
	}
}

func TestEvaluateBullseyeNoColorNoTrigger(t *testing.T) {
	p := withOp(t, board.Blank(), 2, board.InnerSegment, board.OpAdd)
	p.Bullseye = board.Bullseye{InnerAction: board.ActionSquare, OuterAction: board.ActionSquare}

	res := Evaluate(p)
	if !res.Value.Equal(rational.Int(2)) {
		t.Fatalf("expected 2, got %s", res.Value.Exact())
	}
}

func TestEvaluateBullseyeSkippedEntryDoesNotMatch(t *testing.T) {
	p := withOp(t, board.Blank(), 20, board.InnerSegment, board.OpAdd)
	p = withOp(t, p, 1, board.InnerSegment, board.OpSubtract)
	p = withModifier(t, p, 1, board.Cross)
	p.Bullseye = board.Bullseye{Color: board.Yellow, InnerAction: board.ActionSquare}

	res := Evaluate(p)
	if !res.Value.Equal(rational.Int(20)) {
		t.Fatalf("expected 20, got %s", res.Value.Exact())
	}
}

func TestEvaluateBullseyeInnerBeforeOuter(t *testing.T) {
	p := withOp(t, board.Blank(), 20, board.InnerSegment, board.OpAdd)
	p = withOp(t, p, 1, board.InnerSegment, board.OpSubtract)
	p.Bullseye = board.Bullseye{Color: board.Yellow, InnerAction: board.ActionSquare, OuterAction: board.ActionDiamond}

	res := Evaluate(p)
	// 19² = 361, reversed 163. The other order would give 91² = 8281.
	if !res.Value.Equal(rational.Int(163)) {
		t.Fatalf("expected 163, got %s", res.Value.Exact())
	}
}

func TestEvaluateBullseyeRepeatAction(t *testing.T) {
	p := withOp(t, board.Blank(), 20, board.InnerSegment, board.OpAdd)
	p = withOp(t, p, 5, board.InnerSegment, board.OpSubtract)
	p.Bullseye = board.Bullseye{Color: board.Yellow, InnerAction: board.ActionThreeDots}

	res := Evaluate(p)
	if !res.Value.Equal(rational.Int(5)) {
		t.Fatalf("expected 20 - 5 - 5 - 5 = 5, got %s", res.Value.Exact())
	}
	want := []string{
		"Starting with 20",
		"20 - 5 = 15",
		"Bullseye yellow matches subtract:",
		"  Repeat operation 3 times, step 2: 15 - 5 = 10",
		"  Repeat operation 3 times, step 3: 10 - 5 = 5",
	}
	if diff := cmp.Diff(want, res.Steps); diff != "" {
		t.Fatalf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluateBullseyeRepeatUsesResolvedOperand(t *testing.T) {
	p := withOp(t, board.Blank(), 20, board.InnerSegment, board.OpAdd)
	p = withOp(t, p, 4, board.InnerSegment, board.OpAdd)
	p = withModifier(t, p, 4, board.Square)
	p.Bullseye = board.Bullseye{Color: board.Blue, OuterAction: board.ActionTwoDots}

	res := Evaluate(p)
	if !res.Value.Equal(rational.Int(52)) {
		t.Fatalf("expected 20 + 16 + 16 = 52, got %s", res.Value.Exact())
	}
}

func TestEvaluateBullseyeMatchesSeed(t *testing.T) {
	p := withOp(t, board.Blank(), 6, board.InnerSegment, board.OpSubtract)
	p.Bullseye = board.Bullseye{Color: board.Yellow, InnerAction: board.ActionTwoDots}

	res := Evaluate(p)
	if !res.Value.Equal(rational.Int(-12)) {
		t.Fatalf("expected -6 - 6 = -12, got %s", res.Value.Exact())
	}
}

func TestEvaluateReservedBullseyeOperationsIgnored(t *testing.T) {
	p := withOp(t, board.Blank(), 2, board.InnerSegment, board.OpAdd)
	base := Evaluate(p)
	p.Bullseye.InnerOperation = board.OpMultiply
	p.Bullseye.OuterOperation = board.OpDivide
	got := Evaluate(p)
	if diff := cmp.Diff(base, got, ratEqual); diff != "" {
		t.Fatalf("reserved fields changed the result (-want +got):\n%s", diff)
	}
}

// #endregion bullseye

// #region undefined

func TestEvaluateDivisionByZeroPoisons(t *testing.T) {
	// 5 rounded to the nearest 100 is 0.
	p := withOp(t, board.Blank(), 20, board.InnerSegment, board.OpAdd)
	p = withOp(t, p, 5, board.InnerSegment, board.OpDivide)
	p = withModifier(t, p, 5, board.TripleWavy)
	p = withOp(t, p, 12, board.TripleRing, board.OpAdd)
	p.Bullseye = board.Bullseye{Color: board.Purple, InnerAction: board.ActionSquare}

	res := Evaluate(p)
	if !res.Value.IsUndefined() {
		t.Fatalf("expected undefined, got %s", res.Value.Exact())
	}
	if res.Display(2) != rational.UndefinedMarker {
		t.Fatalf("expected undefined marker, got %q", res.Display(2))
	}
	want := []string{
		"Starting with 20",
		"20 ÷ 5 (rounded to 0) = undefined",
		"Bullseye purple matches divide:",
		"  Square(undefined) = undefined",
		"undefined + 12 = undefined",
	}
	if diff := cmp.Diff(want, res.Steps); diff != "" {
		t.Fatalf("steps mismatch (-want +got):\n%s", diff)
	}
}

// #endregion undefined

// #region config

func TestEvaluateReversalModes(t *testing.T) {
	p := withOp(t, board.Blank(), 10, board.InnerSegment, board.OpAdd)
	p = withPartial(t, p, 10, board.InnerSegment)
	p = withModifier(t, p, 10, board.Diamond)

	dec := NewEvaluator(Config{Precision: 2, Reversal: ReverseDecimal}).Evaluate(p)
	if !dec.Value.Equal(rational.Frac(333, 10)) {
		t.Fatalf("decimal reversal: expected 33.3, got %s", dec.Value.Exact())
	}
	trunc := NewEvaluator(Config{Precision: 2, Reversal: ReverseTruncate}).Evaluate(p)
	if !trunc.Value.Equal(rational.Int(33)) {
		t.Fatalf("integer reversal: expected 33, got %s", trunc.Value.Exact())
	}
}

func TestNewEvaluatorDefaults(t *testing.T) {
	e := NewEvaluator(Config{Precision: -1})
	if e.Config().Precision != rational.DisplayPrecision || e.Config().Reversal != ReverseDecimal {
		t.Fatalf("unexpected config %+v", e.Config())
	}
}

// #endregion config

// #region concurrency

func TestEvaluateConcurrentCallsAgree(t *testing.T) {
	p := withOp(t, board.Blank(), 20, board.InnerSegment, board.OpAdd)
	p = withOp(t, p, 5, board.InnerSegment, board.OpSubtract)
	p = withModifier(t, p, 5, board.TwoDots)
	p.Bullseye = board.Bullseye{Color: board.Yellow, InnerAction: board.ActionSquare}

	e := NewEvaluator(DefaultConfig())
	want := e.Evaluate(p)

	var wg sync.WaitGroup
	results := make([]Result, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.Evaluate(p)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if diff := cmp.Diff(want, got, ratEqual); diff != "" {
			t.Fatalf("result %d differs (-want +got):\n%s", i, diff)
		}
	}
}

// #endregion concurrency
