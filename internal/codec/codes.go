package codec

import "github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"

// #region code-tables

var partCodes = map[board.PartKind]string{
	board.InnerSegment: "i",
	board.TripleRing:   "t",
	board.MainSegment:  "m",
	board.DoubleRing:   "d",
	board.OuterRing:    "o",
}

var operationCodes = map[board.Operation]string{
	board.OpNone:     "n",
	board.OpAdd:      "a",
	board.OpSubtract: "s",
	board.OpMultiply: "m",
	board.OpDivide:   "d",
}

var modifierCodes = map[board.ModifierState]string{
	board.Normal:       "n",
	board.Cross:        "x",
	board.DiagonalLine: "dl",
	board.TwoDots:      "2d",
	board.ThreeDots:    "3d",
	board.FourDots:     "4d",
	board.Square:       "sq",
	board.TwoSquares:   "2s",
	board.Diamond:      "di",
	board.SingleWavy:   "1w",
	board.DoubleWavy:   "2w",
	board.TripleWavy:   "3w",
	board.OneThirdFull: "1t",
}

var colorCodes = map[board.BullseyeColor]string{
	board.Blue:   "b",
	board.Yellow: "y",
	board.Pink:   "p",
	board.Purple: "pu",
}

var actionCodes = map[board.BullseyeAction]string{
	board.ActionSquare:       "sq",
	board.ActionTwoSquares:   "2s",
	board.ActionDiamond:      "di",
	board.ActionSingleWavy:   "1w",
	board.ActionDoubleWavy:   "2w",
	board.ActionTripleWavy:   "3w",
	board.ActionOneThirdFull: "1t",
	board.ActionTwoDots:      "2d",
	board.ActionThreeDots:    "3d",
	board.ActionFourDots:     "4d",
}

// #endregion code-tables

// #region lookup

func invert[K comparable](m map[K]string) map[string]K {
	out := make(map[string]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

var (
	partByCode      = invert(partCodes)
	operationByCode = invert(operationCodes)
	modifierByCode  = invert(modifierCodes)
	colorByCode     = invert(colorCodes)
	actionByCode    = invert(actionCodes)
)

// Unknown codes decode to the neutral value of each table.

func decodeOperation(code string) board.Operation {
	return operationByCode[code] // OpNone when missing
}

func decodeModifier(code string) board.ModifierState {
	return modifierByCode[code]
}

func decodeColor(code string) board.BullseyeColor {
	return colorByCode[code]
}

func decodeAction(code string) board.BullseyeAction {
	return actionByCode[code]
}

// #endregion lookup
