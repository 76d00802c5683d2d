package board

import "fmt"

// Editing methods take a Puzzle by value and return the edited copy. The
// receiver is never modified, so an editor can hand snapshots to the
// evaluator or to storage while it keeps editing.

// #region wedge-edits

func (p Puzzle) wedgeFor(number int) (int, error) {
	i, ok := p.IndexOf(number)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownNumber, number)
	}
	return i, nil
}

// CycleOperation advances the operation of one part of the wedge carrying number.
func (p Puzzle) CycleOperation(number int, kind PartKind) (Puzzle, error) {
	i, err := p.wedgeFor(number)
	if err != nil {
		return p, err
	}
	part := &p.Wedges[i].Parts[kind]
	part.Operation = part.Operation.Next()
	return p, nil
}

// SetOperation assigns op to one part of the wedge carrying number.
func (p Puzzle) SetOperation(number int, kind PartKind, op Operation) (Puzzle, error) {
	i, err := p.wedgeFor(number)
	if err != nil {
		return p, err
	}
	p.Wedges[i].Parts[kind].Operation = op
	return p, nil
}

// TogglePartial flips the one-third fill flag of a part.
func (p Puzzle) TogglePartial(number int, kind PartKind) (Puzzle, error) {
	i, err := p.wedgeFor(number)
	if err != nil {
		return p, err
	}
	part := &p.Wedges[i].Parts[kind]
	part.Partial = !part.Partial
	return p, nil
}

// SetPartial assigns the one-third fill flag of a part.
func (p Puzzle) SetPartial(number int, kind PartKind, partial bool) (Puzzle, error) {
	i, err := p.wedgeFor(number)
	if err != nil {
		return p, err
	}
	p.Wedges[i].Parts[kind].Partial = partial
	return p, nil
}

// CycleModifier advances the outer-ring modifier of the wedge carrying number.
func (p Puzzle) CycleModifier(number int) (Puzzle, error) {
	i, err := p.wedgeFor(number)
	if err != nil {
		return p, err
	}
	p.Wedges[i].Modifier = p.Wedges[i].Modifier.Next()
	return p, nil
}

// SetModifier assigns the outer-ring modifier of the wedge carrying number.
func (p Puzzle) SetModifier(number int, m ModifierState) (Puzzle, error) {
	i, err := p.wedgeFor(number)
	if err != nil {
		return p, err
	}
	p.Wedges[i].Modifier = m
	return p, nil
}

// #endregion wedge-edits

// #region bullseye-edits

// CycleBullseyeColor advances the bullseye color.
func (p Puzzle) CycleBullseyeColor() Puzzle {
	p.Bullseye.Color = p.Bullseye.Color.Next()
	return p
}

// CycleBullseyeAction advances the inner or outer bullseye action.
func (p Puzzle) CycleBullseyeAction(inner bool) Puzzle {
	if inner {
		p.Bullseye.InnerAction = p.Bullseye.InnerAction.Next()
	} else {
		p.Bullseye.OuterAction = p.Bullseye.OuterAction.Next()
	}
	return p
}

// #endregion bullseye-edits

// Reset clears every operation, modifier and bullseye field but keeps the numbering.
func (p Puzzle) Reset() Puzzle {
	return NewPuzzle(p.Numbering())
}
