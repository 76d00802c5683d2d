package eval

import (
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/rational"
)

// Apply folds b into a with op. Division by zero yields rational.Undefined,
// and an undefined operand stays undefined. OpNone returns a unchanged.
func Apply(a, b rational.Rat, op board.Operation) rational.Rat {
	switch op {
	case board.OpAdd:
		return a.Add(b)
	case board.OpSubtract:
		return a.Sub(b)
	case board.OpMultiply:
		return a.Mul(b)
	case board.OpDivide:
		return a.Quo(b)
	}
	return a
}
