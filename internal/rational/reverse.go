package rational

// ReverseDigits reverses the digits of r as displayed at prec decimal places.
// The integer and fractional digit strings are each reversed and then swap
// sides (12.5 becomes 5.21); the sign is kept. Integers simply reverse
// (12 becomes 21, 120 becomes 21).
func ReverseDigits(r Rat, prec int) Rat {
	if r.undefined {
		return r
	}
	s := r.Abs().Format(prec)
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	out, err := Parse(string(runes))
	if err != nil {
		// Format only emits digits and at most one point.
		return Undefined()
	}
	if r.Sign() < 0 {
		return out.Neg()
	}
	return out
}

// ReverseTruncated is the integer-only reversal: the displayed digits are
// reversed as in ReverseDigits and anything after the decimal point is
// dropped (12.5 becomes 5).
func ReverseTruncated(r Rat, prec int) Rat {
	return ReverseDigits(r, prec).Trunc()
}
