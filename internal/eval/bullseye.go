package eval

import (
	"fmt"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/rational"
)

// #region trigger

// Trigger applies one bullseye action to total. Value actions transform the
// total directly. Repeat actions replay lastOp against lastOperand count-1
// more times; with no lastOp the action is a no-op. The returned steps are
// indented under the trigger header.
func (e *Evaluator) Trigger(total rational.Rat, action board.BullseyeAction, lastOp board.Operation, lastOperand rational.Rat) (rational.Rat, []string) {
	if action == board.ActionNone {
		return total, nil
	}

	count := action.RepeatCount()
	if count == 0 {
		next := e.Transform(total, action)
		return next, []string{fmt.Sprintf("  %s(%s) = %s", action.Text(), e.format(total), e.format(next))}
	}

	if !lastOp.Active() {
		return total, []string{fmt.Sprintf("  %s: no operation to repeat", action.Text())}
	}

	var steps []string
	for i := 2; i <= count; i++ {
		prev := total
		total = Apply(prev, lastOperand, lastOp)
		steps = append(steps, fmt.Sprintf("  %s, step %d: %s %s %s = %s",
			action.Text(), i, e.format(prev), lastOp.Symbol(), e.format(lastOperand), e.format(total)))
	}
	return total, steps
}

// #endregion trigger
