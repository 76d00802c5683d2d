package board

import (
	"errors"
	"fmt"
)

// #region sizes
const (
	NumWedges = 20
	NumParts  = 5
)

// #endregion sizes

// #region operation

// Operation is the arithmetic assigned to a part.
type Operation uint8

const (
	OpNone Operation = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	numOperations
)

var operationNames = [numOperations]string{"none", "add", "subtract", "multiply", "divide"}
var operationSymbols = [numOperations]string{"", "+", "-", "×", "÷"}
var operationNext = [numOperations]Operation{
	OpNone:     OpAdd,
	OpAdd:      OpSubtract,
	OpSubtract: OpMultiply,
	OpMultiply: OpDivide,
	OpDivide:   OpNone,
}

// Active reports whether an operation is assigned.
func (o Operation) Active() bool { return o != OpNone && o < numOperations }

// Next returns the successor in the click cycle none→add→subtract→multiply→divide→none.
func (o Operation) Next() Operation {
	if o >= numOperations {
		return OpNone
	}
	return operationNext[o]
}

// Symbol returns the infix symbol, empty for OpNone.
func (o Operation) Symbol() string {
	if o >= numOperations {
		return ""
	}
	return operationSymbols[o]
}

func (o Operation) String() string {
	if o >= numOperations {
		return fmt.Sprintf("Operation(%d)", o)
	}
	return operationNames[o]
}

// MarshalText implements encoding.TextMarshaler.
func (o Operation) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Operation) UnmarshalText(b []byte) error {
	v, err := ParseOperation(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// ParseOperation parses an operation name. The empty string is OpNone.
func ParseOperation(s string) (Operation, error) {
	if s == "" {
		return OpNone, nil
	}
	for i, n := range operationNames {
		if n == s {
			return Operation(i), nil
		}
	}
	return OpNone, fmt.Errorf("unknown operation %q", s)
}

// #endregion operation

// #region part-kind

// PartKind identifies one of the five radial zones of a wedge, innermost first.
type PartKind uint8

const (
	InnerSegment PartKind = iota
	TripleRing
	MainSegment
	DoubleRing
	OuterRing
)

var partNames = [NumParts]string{"innerSegment", "tripleRing", "mainSegment", "doubleRing", "outerRing"}

// PartKinds lists every part innermost to outermost.
var PartKinds = [NumParts]PartKind{InnerSegment, TripleRing, MainSegment, DoubleRing, OuterRing}

// RingDistance is the fixed ring index, 0 for the innermost part.
func (k PartKind) RingDistance() int { return int(k) }

func (k PartKind) String() string {
	if int(k) >= NumParts {
		return fmt.Sprintf("PartKind(%d)", k)
	}
	return partNames[k]
}

// ParsePartKind parses a part name.
func ParsePartKind(s string) (PartKind, error) {
	for i, n := range partNames {
		if n == s {
			return PartKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown part %q", s)
}

// #endregion part-kind

// #region modifier-state

// ModifierState is the outer-ring marking of a wedge. It modifies the wedge's
// number wherever that number takes part in the equation.
type ModifierState uint8

const (
	Normal ModifierState = iota
	Cross
	DiagonalLine
	TwoDots
	ThreeDots
	FourDots
	Square
	TwoSquares
	Diamond
	SingleWavy
	DoubleWavy
	TripleWavy
	OneThirdFull
	numModifierStates
)

var modifierNames = [numModifierStates]string{
	"normal", "cross", "diagonalLine", "twoDots", "threeDots", "fourDots",
	"square", "twoSquares", "diamond", "singleWavy", "doubleWavy", "tripleWavy", "oneThirdFull",
}

var modifierNext = [numModifierStates]ModifierState{
	Normal:       Cross,
	Cross:        DiagonalLine,
	DiagonalLine: TwoDots,
	TwoDots:      ThreeDots,
	ThreeDots:    FourDots,
	FourDots:     Square,
	Square:       TwoSquares,
	TwoSquares:   Diamond,
	Diamond:      SingleWavy,
	SingleWavy:   DoubleWavy,
	DoubleWavy:   TripleWavy,
	TripleWavy:   OneThirdFull,
	OneThirdFull: Normal,
}

// modifierActions maps the states that share a transform with a bullseye action.
var modifierActions = [numModifierStates]BullseyeAction{
	TwoDots:      ActionTwoDots,
	ThreeDots:    ActionThreeDots,
	FourDots:     ActionFourDots,
	Square:       ActionSquare,
	TwoSquares:   ActionTwoSquares,
	Diamond:      ActionDiamond,
	SingleWavy:   ActionSingleWavy,
	DoubleWavy:   ActionDoubleWavy,
	TripleWavy:   ActionTripleWavy,
	OneThirdFull: ActionOneThirdFull,
}

// ModifierStates lists all states in cycle order.
func ModifierStates() []ModifierState {
	out := make([]ModifierState, numModifierStates)
	for i := range out {
		out[i] = ModifierState(i)
	}
	return out
}

// Next returns the successor in the 13-state click cycle.
func (m ModifierState) Next() ModifierState {
	if m >= numModifierStates {
		return Normal
	}
	return modifierNext[m]
}

// Action returns the bullseye action with the same transform, or ActionNone
// for normal, cross and diagonalLine.
func (m ModifierState) Action() BullseyeAction {
	if m >= numModifierStates {
		return ActionNone
	}
	return modifierActions[m]
}

func (m ModifierState) String() string {
	if m >= numModifierStates {
		return fmt.Sprintf("ModifierState(%d)", m)
	}
	return modifierNames[m]
}

// MarshalText implements encoding.TextMarshaler.
func (m ModifierState) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ModifierState) UnmarshalText(b []byte) error {
	v, err := ParseModifierState(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseModifierState parses a state name. The empty string is Normal.
func ParseModifierState(s string) (ModifierState, error) {
	if s == "" {
		return Normal, nil
	}
	for i, n := range modifierNames {
		if n == s {
			return ModifierState(i), nil
		}
	}
	return Normal, fmt.Errorf("unknown modifier state %q", s)
}

// #endregion modifier-state

// #region bullseye-color

// BullseyeColor selects which operation triggers the bullseye actions.
type BullseyeColor uint8

const (
	ColorNone BullseyeColor = iota
	Blue
	Yellow
	Pink
	Purple
	numColors
)

var colorNames = [numColors]string{"none", "blue", "yellow", "pink", "purple"}
var colorOperations = [numColors]Operation{ColorNone: OpNone, Blue: OpAdd, Yellow: OpSubtract, Pink: OpMultiply, Purple: OpDivide}
var colorNext = [numColors]BullseyeColor{ColorNone: Blue, Blue: Yellow, Yellow: Pink, Pink: Purple, Purple: ColorNone}

// Operation returns the operation this color matches, OpNone for ColorNone.
func (c BullseyeColor) Operation() Operation {
	if c >= numColors {
		return OpNone
	}
	return colorOperations[c]
}

// Next returns the successor in the cycle none→blue→yellow→pink→purple→none.
func (c BullseyeColor) Next() BullseyeColor {
	if c >= numColors {
		return ColorNone
	}
	return colorNext[c]
}

// ColorFor returns the color whose operation is op.
func ColorFor(op Operation) BullseyeColor {
	for i, o := range colorOperations {
		if o == op {
			return BullseyeColor(i)
		}
	}
	return ColorNone
}

func (c BullseyeColor) String() string {
	if c >= numColors {
		return fmt.Sprintf("BullseyeColor(%d)", c)
	}
	return colorNames[c]
}

// MarshalText implements encoding.TextMarshaler.
func (c BullseyeColor) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *BullseyeColor) UnmarshalText(b []byte) error {
	s := string(b)
	if s == "" {
		*c = ColorNone
		return nil
	}
	for i, n := range colorNames {
		if n == s {
			*c = BullseyeColor(i)
			return nil
		}
	}
	return fmt.Errorf("unknown bullseye color %q", s)
}

// #endregion bullseye-color

// #region bullseye-action

// BullseyeAction is a post-processing step applied to the running total when
// the bullseye triggers.
type BullseyeAction uint8

const (
	ActionNone BullseyeAction = iota
	ActionSquare
	ActionTwoSquares
	ActionDiamond
	ActionSingleWavy
	ActionDoubleWavy
	ActionTripleWavy
	ActionOneThirdFull
	ActionTwoDots
	ActionThreeDots
	ActionFourDots
	numActions
)

var actionNames = [numActions]string{
	"none", "square", "twoSquares", "diamond", "singleWavy", "doubleWavy",
	"tripleWavy", "oneThirdFull", "twoDots", "threeDots", "fourDots",
}

var actionTexts = [numActions]string{
	"", "Square", "Square twice", "Reverse numbers", "Round to nearest 1", "Round to nearest 10",
	"Round to nearest 100", "Divide by 3", "Repeat operation 2 times", "Repeat operation 3 times",
	"Repeat operation 4 times",
}

var actionNext = [numActions]BullseyeAction{
	ActionNone:         ActionSquare,
	ActionSquare:       ActionTwoSquares,
	ActionTwoSquares:   ActionDiamond,
	ActionDiamond:      ActionSingleWavy,
	ActionSingleWavy:   ActionDoubleWavy,
	ActionDoubleWavy:   ActionTripleWavy,
	ActionTripleWavy:   ActionOneThirdFull,
	ActionOneThirdFull: ActionTwoDots,
	ActionTwoDots:      ActionThreeDots,
	ActionThreeDots:    ActionFourDots,
	ActionFourDots:     ActionNone,
}

// Next returns the successor in the 10-action cycle (plus none).
func (a BullseyeAction) Next() BullseyeAction {
	if a >= numActions {
		return ActionNone
	}
	return actionNext[a]
}

// RepeatCount returns 2, 3 or 4 for the dot actions and 0 otherwise.
func (a BullseyeAction) RepeatCount() int {
	switch a {
	case ActionTwoDots:
		return 2
	case ActionThreeDots:
		return 3
	case ActionFourDots:
		return 4
	}
	return 0
}

// Text is the human-readable name used in equation steps.
func (a BullseyeAction) Text() string {
	if a >= numActions {
		return ""
	}
	return actionTexts[a]
}

func (a BullseyeAction) String() string {
	if a >= numActions {
		return fmt.Sprintf("BullseyeAction(%d)", a)
	}
	return actionNames[a]
}

// MarshalText implements encoding.TextMarshaler.
func (a BullseyeAction) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *BullseyeAction) UnmarshalText(b []byte) error {
	s := string(b)
	if s == "" {
		*a = ActionNone
		return nil
	}
	for i, n := range actionNames {
		if n == s {
			*a = BullseyeAction(i)
			return nil
		}
	}
	return fmt.Errorf("unknown bullseye action %q", s)
}

// #endregion bullseye-action

// #region errors

// ErrUnknownNumber is returned when an edit addresses a number that is not on the board.
var ErrUnknownNumber = errors.New("number not on board")

// ErrInvalidNumbering is returned for numberings that are not unique positive values.
var ErrInvalidNumbering = errors.New("invalid numbering")

// #endregion errors
