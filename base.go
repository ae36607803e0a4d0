// base.go
//
// Radix conversion. Four families of numeral system are supported:
//
//  1. Ordinary integer bases 2..62, limited by the numeral alphabet, with a
//     companion fraction converter that rounds correctly at the accuracy
//     limit (carry can propagate out of the fraction entirely; the caller
//     folds it into the integer part).
//  2. Special bases whose place values come from a function of the position
//     (factorial, double factorial, squares, Lucas, triangular, primorial).
//     These are not positional in the usual sense; the greedy largest-place
//     algorithm relies on every place-value sequence being strictly
//     increasing.
//  3. Irrational bases (phi, e, pi, sqrt 2). No finite representation exists
//     in general, so conversion emits digits until the remainder drops below
//     an epsilon derived from the working precision, or the place index
//     passes a computed minimum. The tail is truncated, not rounded; epsilon
//     is 10^-(dps-3) and the minimum place is -floor(dps / ln base).
//  4. Fibonacci (Zeckendorf) coding, emitting one bit per Fibonacci number.
//
// Digits that the numeral alphabet cannot represent are a formatting error,
// never silently wrapped.
package rpn

import (
	"fmt"
	"math/big"
	"strings"
)

// PlaceValueFunc returns the value of the given place (1-based) for a
// special base. Implementations must be strictly increasing in the place.
type PlaceValueFunc func(place int) *big.Int

// SpecialBaseFunction maps a special-base sentinel to its place-value
// function.
func SpecialBaseFunction(radix int) (PlaceValueFunc, bool) {
	switch radix {
	case FacBase:
		return factorialPlace, true
	case DoubleFacBase:
		return doubleFactorialPlace, true
	case SquareBase:
		return squarePlace, true
	case LucasBase:
		return lucasPlace, true
	case TriangularBase:
		return triangularPlace, true
	case PrimorialBase:
		return primorialPlace, true
	}
	return nil, false
}

func factorialPlace(n int) *big.Int {
	return new(big.Int).MulRange(1, int64(n))
}

func doubleFactorialPlace(n int) *big.Int {
	r := big.NewInt(1)
	for k := int64(n); k > 1; k -= 2 {
		r.Mul(r, big.NewInt(k))
	}
	return r
}

func squarePlace(n int) *big.Int {
	return new(big.Int).Mul(big.NewInt(int64(n)), big.NewInt(int64(n)))
}

// lucasPlace returns the nth Lucas number with L(1)=1, L(2)=3, L(3)=4, ...
func lucasPlace(n int) *big.Int {
	a, b := big.NewInt(2), big.NewInt(1) // L(0), L(1)
	for i := 1; i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return new(big.Int).Set(b)
}

func triangularPlace(n int) *big.Int {
	t := new(big.Int).Mul(big.NewInt(int64(n)), big.NewInt(int64(n)+1))
	return t.Rsh(t, 1)
}

// primorialPlace returns the product of the first n-1 primes; place 1 is 1.
func primorialPlace(n int) *big.Int {
	r := big.NewInt(1)
	p := big.NewInt(2)
	for i := 1; i < n; i++ {
		r.Mul(r, p)
		nextPrime(p)
	}
	return r
}

func nextPrime(p *big.Int) {
	one := big.NewInt(1)
	for {
		p.Add(p, one)
		if p.ProbablyPrime(20) {
			return
		}
	}
}

// ConvertToBaseN renders a non-negative integer in the given base using the
// numeral alphabet. Base 2..62 and at most len(numerals) symbols.
func ConvertToBaseN(value *big.Int, base int, numerals string) (string, error) {
	if base < 2 || base > len(numerals) {
		return "", fmt.Errorf("base must be from 2 to %d", len(numerals))
	}
	if value.Sign() < 0 {
		return "", fmt.Errorf("base conversion requires a non-negative value")
	}
	if value.Sign() == 0 {
		return "0", nil
	}

	var digits []byte
	left := new(big.Int).Set(value)
	bigBase := big.NewInt(int64(base))
	mod := new(big.Int)
	for left.Sign() > 0 {
		left.QuoRem(left, bigBase, mod)
		digits = append(digits, numerals[mod.Int64()])
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits), nil
}

// ConvertToBaseDigits is the digit-list variant used when the base exceeds
// the numeral alphabet (-R style output).
func ConvertToBaseDigits(value *big.Int, base int) ([]int, error) {
	if base < 2 {
		return nil, fmt.Errorf("base must be greater than 1")
	}
	if value.Sign() < 0 {
		return nil, fmt.Errorf("base conversion requires a non-negative value")
	}
	var digits []int
	left := new(big.Int).Set(value)
	bigBase := big.NewInt(int64(base))
	mod := new(big.Int)
	for left.Sign() > 0 {
		left.QuoRem(left, bigBase, mod)
		digits = append([]int{int(mod.Int64())}, digits...)
	}
	return digits, nil
}

// ConvertFractionToBaseN converts a value in [0, 1) to at most maxDigits
// digits, rounding the last digit to nearest (halves up). carry reports when
// that rounding overflowed every emitted digit, in which case the caller adds
// one to the integer part.
func ConvertFractionToBaseN(frac *big.Float, base, maxDigits int, numerals string, prec uint) (string, bool, error) {
	if base < 2 || base > len(numerals) {
		return "", false, fmt.Errorf("base must be from 2 to %d", len(numerals))
	}
	if frac.Sign() < 0 {
		return "", false, fmt.Errorf("fraction must be >= 0 and < 1")
	}

	var digits []int
	value := newFloat(prec).Set(frac)
	bigBase := newFloat(prec).SetInt64(int64(base))
	for value.Sign() > 0 && len(digits) < maxDigits {
		value.Mul(value, bigBase)
		d64, _ := floorBig(value).Int64()
		digits = append(digits, int(d64))
		value.Sub(value, newFloat(prec).SetInt64(d64))
	}

	carry := false
	if value.Sign() > 0 {
		// The tail is in units of the last emitted place; round up when it
		// reaches half that place, halves up.
		value.Add(value, value)
		if value.Cmp(newFloat(prec).SetInt64(1)) >= 0 {
			carry = true
			for i := len(digits) - 1; i >= 0; i-- {
				digits[i]++
				if digits[i] < base {
					carry = false
					break
				}
				digits[i] = 0
			}
		}
	}

	// strip trailing zeros left by rounding
	for len(digits) > 0 && digits[len(digits)-1] == 0 {
		digits = digits[:len(digits)-1]
	}

	var b strings.Builder
	for _, d := range digits {
		b.WriteByte(numerals[d])
	}
	return b.String(), carry, nil
}

// ConvertToSpecialBase renders a non-negative integer using a place-value
// function: place values are accumulated while they do not exceed the input,
// then greedily consumed from the largest down.
func ConvertToSpecialBase(value *big.Int, placeFn PlaceValueFunc, numerals string) (string, error) {
	if value.Sign() < 0 {
		return "", fmt.Errorf("base conversion requires a non-negative value")
	}
	if value.Sign() == 0 {
		return "0", nil
	}

	var placeValues []*big.Int
	for place := 1; ; place++ {
		pv := placeFn(place)
		if pv.Cmp(value) > 0 {
			break
		}
		placeValues = append(placeValues, pv)
	}

	var b strings.Builder
	remaining := new(big.Int).Set(value)
	digit := new(big.Int)
	for i := len(placeValues) - 1; i >= 0; i-- {
		pv := placeValues[i]
		digit.Quo(remaining, pv)
		if !digit.IsInt64() || digit.Int64() >= int64(len(numerals)) {
			return "", fmt.Errorf("numeral alphabet has only %d symbols, digit %s required", len(numerals), digit)
		}
		b.WriteByte(numerals[digit.Int64()])
		remaining.Sub(remaining, digit.Mul(digit, pv))
	}
	return b.String(), nil
}

// ConvertToNonintegerBase converts a non-negative value to an irrational
// base, returning separate integer and fraction digit strings. dps is the
// session's decimal precision; it drives both the epsilon below which the
// remainder counts as consumed and the smallest fractional place emitted.
func ConvertToNonintegerBase(num, base *big.Float, dps int, numerals string) (string, string, error) {
	if num.Sign() < 0 {
		return "", "", fmt.Errorf("base conversion requires a non-negative value")
	}
	if num.Sign() == 0 {
		return "0", "", nil
	}

	prec := uint(float64(dps)*3.33) + guardBits
	epsilon := powIntBig(newFloat(prec).SetInt64(10), int64(-(dps-3)), prec)
	scale := powIntBig(newFloat(prec).SetInt64(10), int64(dps-3), prec)
	lnBase := lnBig(base, prec)

	minPlaceF := newFloat(prec).Quo(newFloat(prec).SetInt64(int64(dps)), lnBase)
	minPlace64, _ := floorBig(minPlaceF).Int64()
	minPlace := -int(minPlace64)

	remaining := newFloat(prec).Set(num)
	placeF := newFloat(prec).Quo(lnBig(remaining, prec), lnBase)
	place64, _ := floorBig(placeF).Int64()
	place := int(place64)

	integer := ""
	output := ""
	seenInteger := false

	// A value below 1 has no integer digits at all; pad the fraction for
	// any places skipped before the first significant digit.
	if place < 0 {
		integer = "0"
		seenInteger = true
		if place < -1 {
			output = strings.Repeat("0", -place-1)
		}
	}

	for remaining.Cmp(epsilon) > 0 {
		if place < minPlace {
			break
		}
		if place == -1 && !seenInteger {
			integer = output
			seenInteger = true
			output = ""
		}

		placeValue := powIntBig(base, int64(place), prec)
		value := newFloat(prec).Quo(remaining, placeValue)

		// round at working precision to suppress float round-off
		value.Mul(value, scale)
		value = nintBig(value)
		value.Quo(value, scale)

		digit64, _ := floorBig(value).Int64()
		if digit64 < 0 || digit64 >= int64(len(numerals)) {
			return "", "", fmt.Errorf("numeral alphabet has only %d symbols, digit %d required", len(numerals), digit64)
		}

		remaining.Sub(remaining, placeValue.Mul(placeValue, newFloat(prec).SetInt64(digit64)))
		if newFloat(prec).Abs(remaining).Cmp(epsilon) < 0 {
			remaining.SetInt64(0)
		}

		output += string(numerals[digit64])
		place--
	}

	if place >= 0 {
		integer = output + strings.Repeat("0", place+1)
		seenInteger = true
		output = ""
	}
	if !seenInteger {
		return output, "", nil
	}
	return integer, output, nil
}

// ConvertToFibBase returns the Zeckendorf bit string for a non-negative
// integer; 0 degenerates to the empty string.
func ConvertToFibBase(value *big.Int) string {
	if value.Sign() < 1 {
		return ""
	}

	a := big.NewInt(1)
	b := big.NewInt(1)
	c := new(big.Int).Add(a, b)
	fibs := []*big.Int{new(big.Int).Set(b)}
	for value.Cmp(c) >= 0 {
		fibs = append(fibs, new(big.Int).Set(c))
		a, b = b, c
		c = new(big.Int).Add(a, b)
	}

	var out strings.Builder
	n := new(big.Int).Set(value)
	for i := len(fibs) - 1; i >= 0; i-- {
		if n.Cmp(fibs[i]) >= 0 {
			out.WriteByte('1')
			n.Sub(n, fibs[i])
		} else {
			out.WriteByte('0')
		}
	}
	return out.String()
}

// ParseBaseN inverts ConvertToBaseN for round-trip checks and non-decimal
// input radices.
func ParseBaseN(s string, base int, numerals string) (*big.Int, error) {
	if base < 2 || base > len(numerals) {
		return nil, fmt.Errorf("base must be from 2 to %d", len(numerals))
	}
	if s == "" {
		return nil, fmt.Errorf("empty numeral string")
	}

	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	result := new(big.Int)
	bigBase := big.NewInt(int64(base))
	for i := 0; i < len(s); i++ {
		d := strings.IndexByte(numerals[:base], s[i])
		if d < 0 {
			return nil, fmt.Errorf("invalid numeral %q for base %d", s[i], base)
		}
		result.Mul(result, bigBase)
		result.Add(result, big.NewInt(int64(d)))
	}
	if neg {
		result.Neg(result)
	}
	return result, nil
}
