// Package eval computes the equation described by a dartboard puzzle.
//
// Active parts are grouped into rings from the bullseye outward. The first
// non-ignored part seeds the running total, every later part folds into it
// with its operation, and after each ring the bullseye actions fire if the
// ring used the operation matching the bullseye color. All arithmetic is
// exact; a division by zero poisons the rest of the chain.
package eval

import (
	"fmt"
	"strconv"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/rational"
)

// #region evaluator

// Evaluator is safe for concurrent use; it holds only immutable configuration.
type Evaluator struct {
	cfg Config
}

// NewEvaluator creates an evaluator. A negative precision falls back to the default.
func NewEvaluator(cfg Config) *Evaluator {
	if cfg.Precision < 0 {
		cfg.Precision = rational.DisplayPrecision
	}
	if cfg.Reversal == "" {
		cfg.Reversal = ReverseDecimal
	}
	return &Evaluator{cfg: cfg}
}

// Config returns the evaluator's configuration.
func (e *Evaluator) Config() Config { return e.cfg }

// Evaluate runs the evaluator with DefaultConfig.
func Evaluate(p board.Puzzle) Result {
	return NewEvaluator(DefaultConfig()).Evaluate(p)
}

// Evaluate computes the steps and result for p. p is not modified.
func (e *Evaluator) Evaluate(p board.Puzzle) Result {
	rings := Group(Scan(p.Wedges[:]))
	if len(rings) == 0 {
		return Result{Steps: []string{}, Value: rational.Int(0)}
	}

	r := &run{ev: e, puzzle: p, total: rational.Int(0), steps: []string{}}
	for _, ring := range rings {
		r.ring(ring)
	}
	return Result{Steps: r.steps, Value: r.total}
}

func (e *Evaluator) format(v rational.Rat) string {
	return v.Format(e.cfg.Precision)
}

// #endregion evaluator

// #region run

// run carries the state of a single evaluation pass.
type run struct {
	ev     *Evaluator
	puzzle board.Puzzle
	total  rational.Rat
	seeded bool
	steps  []string
}

func (r *run) record(format string, args ...any) {
	r.steps = append(r.steps, fmt.Sprintf(format, args...))
}

func (r *run) ring(ring Ring) {
	matching := r.puzzle.Bullseye.Color.Operation()

	var lastOp board.Operation
	var lastOperand rational.Rat

	for _, entry := range ring.Entries {
		op := entry.Operation()
		res, label := r.resolve(entry)

		if res.Skip {
			if r.seeded {
				r.record("%s %s %s = %s (operation skipped)", r.ev.format(r.total), op.Symbol(), label, r.ev.format(r.total))
			} else {
				r.record("%s (operation skipped)", label)
			}
			continue
		}

		if !r.seeded {
			r.seed(op, res, label)
		} else {
			r.fold(op, res, label)
		}

		if matching.Active() && op == matching {
			lastOp, lastOperand = op, res.Value
		}
	}

	if lastOp.Active() {
		r.trigger(lastOp, lastOperand)
	}
}

// resolve computes the effective number of an entry and its step label.
func (r *run) resolve(entry Entry) (Resolution, string) {
	n := entry.Wedge.Number
	value := rational.Int(int64(n))
	label := strconv.Itoa(n)
	if entry.Part().Partial {
		value = value.Quo(rational.Int(3))
		label += fmt.Sprintf(" (⅓ of %d=%s)", n, r.ev.format(value))
	}
	res := r.ev.Resolve(value, r.puzzle.ModifierFor(n))
	return res, label + res.Annotation
}

// seed places the first value. A subtract part starts negative. The seed is
// a placement rather than an operation, so repeat modifiers do not replay it.
func (r *run) seed(op board.Operation, res Resolution, label string) {
	r.seeded = true
	r.total = res.Value
	if op == board.OpSubtract {
		r.total = r.total.Neg()
		r.record("Starting with %s (yellow segment, negated: %s)", label, r.ev.format(r.total))
		return
	}
	r.record("Starting with %s", label)
}

// fold applies op once, then replays the identical operation Repeat-1 times.
func (r *run) fold(op board.Operation, res Resolution, label string) {
	prev := r.total
	r.total = Apply(prev, res.Value, op)
	r.record("%s %s %s = %s", r.ev.format(prev), op.Symbol(), label, r.ev.format(r.total))

	for i := 2; i <= res.Repeat; i++ {
		prev = r.total
		r.total = Apply(prev, res.Value, op)
		r.record("  Repeat %d of %d: %s %s %s = %s", i, res.Repeat,
			r.ev.format(prev), op.Symbol(), r.ev.format(res.Value), r.ev.format(r.total))
	}
}

// trigger fires the bullseye actions, inner first.
func (r *run) trigger(lastOp board.Operation, lastOperand rational.Rat) {
	b := r.puzzle.Bullseye
	if b.InnerAction == board.ActionNone && b.OuterAction == board.ActionNone {
		return
	}
	r.record("Bullseye %s matches %s:", b.Color, lastOp)
	for _, action := range []board.BullseyeAction{b.InnerAction, b.OuterAction} {
		var steps []string
		r.total, steps = r.ev.Trigger(r.total, action, lastOp, lastOperand)
		r.steps = append(r.steps, steps...)
	}
}

// #endregion run
