// Package board holds the dartboard puzzle data model: twenty numbered wedges
// of five parts each, plus the bullseye configuration. A Puzzle is a plain
// value; copying it copies the whole board.
package board

import "fmt"

// #region numbering

// Numbering is the face number of each wedge, clockwise from the top.
type Numbering [NumWedges]int

// StandardNumbering is the regulation dartboard order.
var StandardNumbering = Numbering{20, 1, 18, 4, 13, 6, 10, 15, 2, 17, 3, 19, 7, 16, 8, 11, 14, 9, 12, 5}

// Validate requires positive, unique numbers.
func (n Numbering) Validate() error {
	seen := make(map[int]int, NumWedges)
	for i, v := range n {
		if v <= 0 {
			return fmt.Errorf("%w: position %d has non-positive number %d", ErrInvalidNumbering, i, v)
		}
		if j, dup := seen[v]; dup {
			return fmt.Errorf("%w: number %d at positions %d and %d", ErrInvalidNumbering, v, j, i)
		}
		seen[v] = i
	}
	return nil
}

// NumberingFromSlice converts a slice of exactly NumWedges numbers.
func NumberingFromSlice(s []int) (Numbering, error) {
	var n Numbering
	if len(s) != NumWedges {
		return n, fmt.Errorf("%w: expected %d numbers, got %d", ErrInvalidNumbering, NumWedges, len(s))
	}
	copy(n[:], s)
	return n, n.Validate()
}

// #endregion numbering

// #region part

// Part is one radial zone of a wedge.
type Part struct {
	Operation Operation `json:"operation"`
	Partial   bool      `json:"partial,omitempty"`
}

// Active reports whether the part carries an operation.
func (p Part) Active() bool { return p.Operation.Active() }

// #endregion part

// #region wedge

// Wedge is one numbered division of the board. Parts are indexed by PartKind;
// Modifier belongs to the outer ring but applies to the wedge's number.
type Wedge struct {
	Position int            `json:"position"`
	Number   int            `json:"number"`
	Parts    [NumParts]Part `json:"parts"`
	Modifier ModifierState  `json:"modifier"`
}

// Part returns the part of the given kind.
func (w Wedge) Part(k PartKind) Part { return w.Parts[k] }

// #endregion wedge

// #region bullseye

// Bullseye is the center configuration. InnerOperation and OuterOperation are
// reserved: they round-trip through storage and the wire form but nothing
// evaluates them.
type Bullseye struct {
	Color          BullseyeColor  `json:"color"`
	InnerAction    BullseyeAction `json:"inner_action"`
	OuterAction    BullseyeAction `json:"outer_action"`
	InnerOperation Operation      `json:"inner_operation,omitempty"`
	OuterOperation Operation      `json:"outer_operation,omitempty"`
}

// IsZero reports whether every bullseye field is unset.
func (b Bullseye) IsZero() bool { return b == Bullseye{} }

// #endregion bullseye

// #region puzzle

// Puzzle is a complete board snapshot.
type Puzzle struct {
	Wedges   [NumWedges]Wedge `json:"wedges"`
	Bullseye Bullseye         `json:"bullseye"`
}

// NewPuzzle returns a blank board with the given numbering.
func NewPuzzle(n Numbering) Puzzle {
	var p Puzzle
	for i, num := range n {
		p.Wedges[i] = Wedge{Position: i, Number: num}
	}
	return p
}

// Blank returns a blank board with the standard numbering.
func Blank() Puzzle { return NewPuzzle(StandardNumbering) }

// Numbering returns the face numbers in position order.
func (p Puzzle) Numbering() Numbering {
	var n Numbering
	for i, w := range p.Wedges {
		n[i] = w.Number
	}
	return n
}

// IndexOf returns the position of the wedge carrying number.
func (p Puzzle) IndexOf(number int) (int, bool) {
	for i, w := range p.Wedges {
		if w.Number == number {
			return i, true
		}
	}
	return 0, false
}

// HasOperations reports whether any part carries an operation.
func (p Puzzle) HasOperations() bool {
	for _, w := range p.Wedges {
		for _, part := range w.Parts {
			if part.Active() {
				return true
			}
		}
	}
	return false
}

// IsEmpty reports whether the board has no operations and an unset bullseye.
// Modifiers alone do not make a board worth saving.
func (p Puzzle) IsEmpty() bool {
	return !p.HasOperations() && p.Bullseye.IsZero()
}

// ModifierFor returns the non-normal modifier carried by number, if any. When
// a custom numbering repeats a number the last wedge wins.
func (p Puzzle) ModifierFor(number int) ModifierState {
	m := Normal
	for _, w := range p.Wedges {
		if w.Number == number && w.Modifier != Normal {
			m = w.Modifier
		}
	}
	return m
}

// #endregion puzzle
