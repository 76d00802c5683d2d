// Package rational provides exact fraction arithmetic for equation evaluation.
// Values stay as fractions until they are formatted for display, so thirds and
// halves never pick up floating-point drift.
package rational

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// #region constants

// DisplayPrecision is the number of decimal places used by String.
const DisplayPrecision = 2

// UndefinedMarker is how an undefined value is rendered and parsed.
const UndefinedMarker = "undefined"

// #endregion constants

// #region rat

// Rat is an exact rational number, or the undefined value produced by a
// division by zero. Undefined poisons every operation it takes part in.
// The zero value is 0. Rat values are immutable and safe to share.
type Rat struct {
	v         *big.Rat
	undefined bool
}

// Int returns n as a Rat.
func Int(n int64) Rat {
	return Rat{v: new(big.Rat).SetInt64(n)}
}

// Frac returns num/den. A zero denominator yields Undefined.
func Frac(num, den int64) Rat {
	if den == 0 {
		return Undefined()
	}
	return Rat{v: big.NewRat(num, den)}
}

// Undefined returns the poisoned value.
func Undefined() Rat {
	return Rat{undefined: true}
}

// Parse reads a fraction ("10/3"), a decimal ("3.25"), an integer, or the
// undefined marker.
func Parse(s string) (Rat, error) {
	s = strings.TrimSpace(s)
	if s == UndefinedMarker {
		return Undefined(), nil
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Rat{}, fmt.Errorf("parse rational %q", s)
	}
	return Rat{v: r}, nil
}

func (r Rat) rat() *big.Rat {
	if r.v == nil {
		return new(big.Rat)
	}
	return r.v
}

// IsUndefined reports whether r is the poisoned value.
func (r Rat) IsUndefined() bool { return r.undefined }

// IsZero reports whether r is a defined zero.
func (r Rat) IsZero() bool { return !r.undefined && r.rat().Sign() == 0 }

// IsInt reports whether r is a defined integer.
func (r Rat) IsInt() bool { return !r.undefined && r.rat().IsInt() }

// Sign returns -1, 0 or +1. Undefined reports 0.
func (r Rat) Sign() int {
	if r.undefined {
		return 0
	}
	return r.rat().Sign()
}

// Equal reports whether r and o are the same value. Two undefined values are equal.
func (r Rat) Equal(o Rat) bool {
	if r.undefined || o.undefined {
		return r.undefined == o.undefined
	}
	return r.rat().Cmp(o.rat()) == 0
}

// #endregion rat

// #region arithmetic

// Add returns r + o.
func (r Rat) Add(o Rat) Rat {
	if r.undefined || o.undefined {
		return Undefined()
	}
	return Rat{v: new(big.Rat).Add(r.rat(), o.rat())}
}

// Sub returns r - o.
func (r Rat) Sub(o Rat) Rat {
	if r.undefined || o.undefined {
		return Undefined()
	}
	return Rat{v: new(big.Rat).Sub(r.rat(), o.rat())}
}

// Mul returns r × o.
func (r Rat) Mul(o Rat) Rat {
	if r.undefined || o.undefined {
		return Undefined()
	}
	return Rat{v: new(big.Rat).Mul(r.rat(), o.rat())}
}

// Quo returns r ÷ o, or Undefined when o is zero.
func (r Rat) Quo(o Rat) Rat {
	if r.undefined || o.undefined || o.rat().Sign() == 0 {
		return Undefined()
	}
	return Rat{v: new(big.Rat).Quo(r.rat(), o.rat())}
}

// Neg returns -r.
func (r Rat) Neg() Rat {
	if r.undefined {
		return r
	}
	return Rat{v: new(big.Rat).Neg(r.rat())}
}

// Abs returns |r|.
func (r Rat) Abs() Rat {
	if r.undefined {
		return r
	}
	return Rat{v: new(big.Rat).Abs(r.rat())}
}

// Pow returns r raised to a non-negative integer power.
func (r Rat) Pow(n int) Rat {
	if r.undefined {
		return r
	}
	if n < 0 {
		return Int(1).Quo(r.Pow(-n))
	}
	e := big.NewInt(int64(n))
	num := new(big.Int).Exp(r.rat().Num(), e, nil)
	den := new(big.Int).Exp(r.rat().Denom(), e, nil)
	return Rat{v: new(big.Rat).SetFrac(num, den)}
}

// RoundTo rounds r to the nearest multiple of unit. Halves round toward
// positive infinity: floor(r/unit + 1/2) × unit.
func (r Rat) RoundTo(unit int64) Rat {
	if r.undefined || unit <= 0 {
		return r
	}
	u := Int(unit)
	shifted := r.Quo(u).Add(Frac(1, 2))
	return Rat{v: new(big.Rat).SetInt(floor(shifted.rat()))}.Mul(u)
}

// Trunc drops the fractional part, rounding toward zero.
func (r Rat) Trunc() Rat {
	if r.undefined {
		return r
	}
	q := new(big.Int).Quo(r.rat().Num(), r.rat().Denom())
	return Rat{v: new(big.Rat).SetInt(q)}
}

func floor(x *big.Rat) *big.Int {
	// Denominators are always positive, so Euclidean division is floor division.
	q, m := new(big.Int), new(big.Int)
	q.DivMod(x.Num(), x.Denom(), m)
	return q
}

// #endregion arithmetic

// #region conversion

// Float64 returns the nearest float64, or NaN when undefined.
func (r Rat) Float64() float64 {
	if r.undefined {
		return math.NaN()
	}
	f, _ := r.rat().Float64()
	return f
}

// Exact returns the lossless form: "10/3", "21", or the undefined marker.
func (r Rat) Exact() string {
	if r.undefined {
		return UndefinedMarker
	}
	return r.rat().RatString()
}

// Format renders r with at most prec decimal places. Integers print without a
// decimal point and trailing zeros are trimmed, so 10/3 renders as "3.33" and
// 5/2 as "2.5".
func (r Rat) Format(prec int) string {
	if r.undefined {
		return UndefinedMarker
	}
	if r.rat().IsInt() {
		return r.rat().Num().String()
	}
	s := r.rat().FloatString(prec)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// String renders r at DisplayPrecision.
func (r Rat) String() string {
	return r.Format(DisplayPrecision)
}

// MarshalText encodes the exact form.
func (r Rat) MarshalText() ([]byte, error) {
	return []byte(r.Exact()), nil
}

// UnmarshalText decodes the exact form.
func (r *Rat) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// #endregion conversion
