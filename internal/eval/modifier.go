package eval

import (
	"fmt"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/rational"
)

// #region resolve

// Resolve applies a wedge modifier to value, which is the wedge number or a
// third of it for partial parts. The same resolution applies to every active
// part of the wedge.
func (e *Evaluator) Resolve(value rational.Rat, m board.ModifierState) Resolution {
	res := Resolution{Value: value, Repeat: 1}
	in := e.format(value)

	switch m {
	case board.Cross:
		res.Skip = true
		res.Annotation = " (ignored)"
	case board.DiagonalLine:
		res.Value = value.Quo(rational.Int(2))
		res.Annotation = fmt.Sprintf(" (%s÷2=%s)", in, e.format(res.Value))
	case board.TwoDots, board.ThreeDots, board.FourDots:
		res.Repeat = m.Action().RepeatCount()
		res.Annotation = fmt.Sprintf(" (repeat operation %d times)", res.Repeat)
	case board.Square:
		res.Value = e.Transform(value, board.ActionSquare)
		res.Annotation = fmt.Sprintf(" (%s²=%s)", in, e.format(res.Value))
	case board.TwoSquares:
		res.Value = e.Transform(value, board.ActionTwoSquares)
		res.Annotation = fmt.Sprintf(" (%s⁴=%s)", in, e.format(res.Value))
	case board.Diamond:
		res.Value = e.Transform(value, board.ActionDiamond)
		res.Annotation = fmt.Sprintf(" (reversed=%s)", e.format(res.Value))
	case board.SingleWavy, board.DoubleWavy, board.TripleWavy:
		res.Value = e.Transform(value, m.Action())
		res.Annotation = fmt.Sprintf(" (rounded to %s)", e.format(res.Value))
	case board.OneThirdFull:
		res.Value = e.Transform(value, board.ActionOneThirdFull)
		res.Annotation = fmt.Sprintf(" (%s÷3=%s)", in, e.format(res.Value))
	}
	return res
}

// #endregion resolve

// #region transform

// Transform applies a value-changing action to v. Repeat actions and
// ActionNone return v unchanged; they are handled by the caller.
func (e *Evaluator) Transform(v rational.Rat, a board.BullseyeAction) rational.Rat {
	switch a {
	case board.ActionSquare:
		return v.Pow(2)
	case board.ActionTwoSquares:
		return v.Pow(4)
	case board.ActionDiamond:
		if e.cfg.Reversal == ReverseTruncate {
			return rational.ReverseTruncated(v, e.cfg.Precision)
		}
		return rational.ReverseDigits(v, e.cfg.Precision)
	case board.ActionSingleWavy:
		return v.RoundTo(1)
	case board.ActionDoubleWavy:
		return v.RoundTo(10)
	case board.ActionTripleWavy:
		return v.RoundTo(100)
	case board.ActionOneThirdFull:
		return v.Quo(rational.Int(3))
	}
	return v
}

// #endregion transform
