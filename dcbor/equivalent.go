package dcbor

import (
	"bytes"
	"math"
)

// Equivalent implements the dCBOR map-key equivalence rule (spec §4.2):
// integers and floats compare by mathematical value (so 1 and 1.0 collide),
// byte strings compare by content, text strings by code points, and arrays
// and maps compare structurally, recursively applying the same rule to their
// elements. Values of unrelated kinds (other than the numeric pairing) are
// never equivalent.
func Equivalent(a, b Value) bool {
	if ai, aok := a.(Int); aok {
		switch bv := b.(type) {
		case Int:
			// Two Ints always compare as exact int64s: routing this through
			// float64 (as the Int/Float mixed case must) would lose
			// precision above 2^53 and report distinct integers equivalent.
			return ai == bv
		case Float:
			return intEquivalentToFloat(ai, bv)
		default:
			return false
		}
	}
	if af, aok := a.(Float); aok {
		switch bv := b.(type) {
		case Float:
			return af == bv
		case Int:
			return intEquivalentToFloat(bv, af)
		default:
			return false
		}
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Bool:
		return av == b.(Bool)
	case Null:
		return true
	case Bytes:
		return bytes.Equal(av, b.(Bytes))
	case Text:
		return av == b.(Text)
	case Array:
		bv := b.(Array)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equivalent(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Tagged:
		bv := b.(Tagged)
		return av.Number == bv.Number && Equivalent(av.Content, bv.Content)
	case *Map:
		bv, ok := b.(*Map)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, p := range av.Pairs() {
			idx := bv.IndexOfEquivalentKey(p.Key)
			if idx < 0 || !Equivalent(p.Value, bv.Pairs()[idx].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// maxIntAsFloat is 2^63, exactly representable in float64, and one past the
// top of the int64 range.
const maxIntAsFloat = 1 << 63

// intEquivalentToFloat reports whether f represents the same mathematical
// value as i. f must be a whole number within int64's range for the two to
// be equivalent; a fractional float (or one too large to round-trip through
// int64) is never equivalent to any integer.
func intEquivalentToFloat(i Int, f Float) bool {
	ff := float64(f)
	if ff != math.Trunc(ff) {
		return false
	}
	if ff < -maxIntAsFloat || ff >= maxIntAsFloat {
		return false
	}
	return int64(i) == int64(ff)
}
