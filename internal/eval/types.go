package eval

import (
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/rational"
)

// #region config

// Reversal selects how the diamond transform treats fractional values.
type Reversal string

const (
	// ReverseDecimal reverses both sides of the decimal point and swaps them.
	ReverseDecimal Reversal = "decimal"
	// ReverseTruncate reverses the displayed digits and drops the fraction.
	ReverseTruncate Reversal = "integer"
)

// Config controls display precision and the digit-reversal rule.
type Config struct {
	Precision int      // decimal places used in steps and for digit reversal
	Reversal  Reversal // diamond rule
}

// DefaultConfig returns two-place display with decimal reversal.
func DefaultConfig() Config {
	return Config{
		Precision: rational.DisplayPrecision,
		Reversal:  ReverseDecimal,
	}
}

// #endregion config

// #region entry

// Entry is one active part found by Scan.
type Entry struct {
	Wedge board.Wedge
	Kind  board.PartKind
}

// Part returns the active part.
func (e Entry) Part() board.Part { return e.Wedge.Parts[e.Kind] }

// Operation returns the part's operation.
func (e Entry) Operation() board.Operation { return e.Wedge.Parts[e.Kind].Operation }

// RingDistance is 0 for the innermost part and 4 for the outer ring.
func (e Entry) RingDistance() int { return e.Kind.RingDistance() }

// Ring is every active entry at one ring distance, in clockwise order.
type Ring struct {
	Distance int
	Entries  []Entry
}

// #endregion entry

// #region resolution

// Resolution is a wedge number after its modifier has been applied.
type Resolution struct {
	Value      rational.Rat
	Skip       bool   // cross: the number contributes nothing
	Repeat     int    // times the operation is applied, at least 1
	Annotation string // e.g. " (12²=144)", empty when unmodified
}

// #endregion resolution

// #region result

// Result is the outcome of one evaluation. Steps document every seed, fold,
// modifier and bullseye trigger in the order computed.
type Result struct {
	Steps []string
	Value rational.Rat
}

// Display renders the value at prec places, or the undefined marker.
func (r Result) Display(prec int) string {
	return r.Value.Format(prec)
}

// #endregion result
