// bigmath.go
//
// Arbitrary-precision helpers on top of math/big. Everything here takes an
// explicit precision in bits; the Config owns the mapping from decimal
// significant digits to bits. Transcendental functions (ln, exp, pi) use
// classic series with argument reduction and a few guard bits, which is
// plenty for the digit counts a calculator session asks for.
package rpn

import "math/big"

// guardBits pads working precision so the last printed digit is stable.
const guardBits = 24

func newFloat(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec)
}

// floorBig returns the largest integer <= x.
func floorBig(x *big.Float) *big.Float {
	i, _ := x.Int(nil)
	f := new(big.Float).SetPrec(x.Prec()).SetInt(i)
	if x.Sign() < 0 && f.Cmp(x) != 0 {
		f.Sub(f, big.NewFloat(1).SetPrec(x.Prec()))
	}
	return f
}

func ceilBig(x *big.Float) *big.Float {
	f := floorBig(x)
	if f.Cmp(x) != 0 {
		f.Add(f, newFloat(x.Prec()).SetInt64(1))
	}
	return f
}

// fracBig returns x - floor(x), always in [0, 1).
func fracBig(x *big.Float) *big.Float {
	return new(big.Float).SetPrec(x.Prec()).Sub(x, floorBig(x))
}

// nintBig rounds to the nearest integer, halves away from zero.
func nintBig(x *big.Float) *big.Float {
	half := newFloat(x.Prec()).SetFloat64(0.5)
	if x.Sign() < 0 {
		y := newFloat(x.Prec()).Sub(x, half)
		return ceilBig(y)
	}
	y := newFloat(x.Prec()).Add(x, half)
	return floorBig(y)
}

// floorInt converts floor(x) to a big.Int.
func floorInt(x *big.Float) *big.Int {
	i, _ := floorBig(x).Int(nil)
	return i
}

// isIntFloat reports whether x has no fractional part.
func isIntFloat(x *big.Float) bool {
	return x.IsInt()
}

// modBig returns the truncated remainder x - trunc(x/y)*y.
func modBig(x, y *big.Float, prec uint) *big.Float {
	if y.Sign() == 0 {
		fail(ErrArithmetic, "division by zero")
	}
	q := newFloat(prec + guardBits).Quo(x, y)
	t, _ := q.Int(nil)
	qi := newFloat(prec + guardBits).SetInt(t)
	r := newFloat(prec).Sub(x, qi.Mul(qi, y))
	return r
}

// powIntBig raises base to an integer power by binary exponentiation.
// Negative exponents invert; 0^0 yields 1.
func powIntBig(base *big.Float, n int64, prec uint) *big.Float {
	wp := prec + guardBits
	result := newFloat(wp).SetInt64(1)
	if n == 0 {
		return result.SetPrec(prec)
	}
	neg := n < 0
	if neg {
		n = -n
	}
	b := newFloat(wp).Set(base)
	for n > 0 {
		if n&1 == 1 {
			result.Mul(result, b)
		}
		b.Mul(b, b)
		n >>= 1
	}
	if neg {
		if result.Sign() == 0 {
			fail(ErrArithmetic, "division by zero")
		}
		result = newFloat(wp).Quo(newFloat(wp).SetInt64(1), result)
	}
	return result.SetPrec(prec)
}

// atanhSeries sums t + t^3/3 + t^5/5 + ... for |t| < 1.
func atanhSeries(t *big.Float, wp uint) *big.Float {
	sum := newFloat(wp).Set(t)
	t2 := newFloat(wp).Mul(t, t)
	pow := newFloat(wp).Set(t)
	term := newFloat(wp)
	abs := newFloat(wp)
	eps := newFloat(wp).SetMantExp(newFloat(wp).SetInt64(1), -int(wp))
	for k := int64(3); ; k += 2 {
		pow.Mul(pow, t2)
		term.Quo(pow, newFloat(wp).SetInt64(k))
		// t may be negative, so compare magnitudes
		if abs.Abs(term).Cmp(eps) < 0 {
			break
		}
		sum.Add(sum, term)
	}
	return sum
}

// lnBig computes the natural log of x > 0 via mantissa/exponent reduction:
// x = m * 2^e with m in [0.5, 1), ln x = e ln2 + 2 atanh((m-1)/(m+1)).
func lnBig(x *big.Float, prec uint) *big.Float {
	if x.Sign() <= 0 {
		fail(ErrDomain, "logarithm requires a positive argument")
	}
	wp := prec + guardBits
	m := newFloat(wp)
	e := x.MantExp(m)

	num := newFloat(wp).Sub(m, newFloat(wp).SetInt64(1))
	den := newFloat(wp).Add(m, newFloat(wp).SetInt64(1))
	t := newFloat(wp).Quo(num, den)
	lnm := atanhSeries(t, wp)
	lnm.Add(lnm, lnm)

	if e != 0 {
		third := newFloat(wp).Quo(newFloat(wp).SetInt64(1), newFloat(wp).SetInt64(3))
		ln2 := atanhSeries(third, wp)
		ln2.Add(ln2, ln2)
		ln2.Mul(ln2, newFloat(wp).SetInt64(int64(e)))
		lnm.Add(lnm, ln2)
	}
	return lnm.SetPrec(prec)
}

// expBig computes e^x with the reduction x = k ln2 + r, |r| <= ln2/2.
func expBig(x *big.Float, prec uint) *big.Float {
	wp := prec + guardBits
	third := newFloat(wp).Quo(newFloat(wp).SetInt64(1), newFloat(wp).SetInt64(3))
	ln2 := atanhSeries(third, wp)
	ln2.Add(ln2, ln2)

	k64, _ := nintBig(newFloat(wp).Quo(x, ln2)).Int64()
	r := newFloat(wp).Sub(x, newFloat(wp).Mul(ln2, newFloat(wp).SetInt64(k64)))

	sum := newFloat(wp).SetInt64(1)
	term := newFloat(wp).SetInt64(1)
	abs := newFloat(wp)
	eps := newFloat(wp).SetMantExp(newFloat(wp).SetInt64(1), -int(wp))
	for n := int64(1); ; n++ {
		term.Mul(term, r)
		term.Quo(term, newFloat(wp).SetInt64(n))
		// r may be negative, so compare magnitudes
		if abs.Abs(term).Cmp(eps) < 0 {
			break
		}
		sum.Add(sum, term)
	}
	// scale by 2^k
	sum.SetMantExp(sum, int(k64))
	return sum.SetPrec(prec)
}

// eBig returns Euler's number at the given precision (Taylor series at 1).
func eBig(prec uint) *big.Float {
	wp := prec + guardBits
	sum := newFloat(wp).SetInt64(1)
	term := newFloat(wp).SetInt64(1)
	eps := newFloat(wp).SetMantExp(newFloat(wp).SetInt64(1), -int(wp))
	for n := int64(1); ; n++ {
		term.Quo(term, newFloat(wp).SetInt64(n))
		if term.Cmp(eps) < 0 {
			break
		}
		sum.Add(sum, term)
	}
	return sum.SetPrec(prec)
}

// atanRecip computes atan(1/x) for integer x by the alternating series.
func atanRecip(x int64, wp uint) *big.Float {
	invX2 := newFloat(wp).Quo(newFloat(wp).SetInt64(1), newFloat(wp).SetInt64(x*x))
	pow := newFloat(wp).Quo(newFloat(wp).SetInt64(1), newFloat(wp).SetInt64(x))
	sum := newFloat(wp).Set(pow)
	term := newFloat(wp)
	eps := newFloat(wp).SetMantExp(newFloat(wp).SetInt64(1), -int(wp))
	for k := int64(1); ; k++ {
		pow.Mul(pow, invX2)
		term.Quo(pow, newFloat(wp).SetInt64(2*k+1))
		if term.Cmp(eps) < 0 {
			break
		}
		if k&1 == 1 {
			sum.Sub(sum, term)
		} else {
			sum.Add(sum, term)
		}
	}
	return sum
}

// piBig returns pi via Machin's formula: 16 atan(1/5) - 4 atan(1/239).
func piBig(prec uint) *big.Float {
	wp := prec + guardBits
	a := atanRecip(5, wp)
	a.Mul(a, newFloat(wp).SetInt64(16))
	b := atanRecip(239, wp)
	b.Mul(b, newFloat(wp).SetInt64(4))
	return a.Sub(a, b).SetPrec(prec)
}

// phiBig returns the golden ratio (1 + sqrt 5) / 2.
func phiBig(prec uint) *big.Float {
	wp := prec + guardBits
	s := newFloat(wp).Sqrt(newFloat(wp).SetInt64(5))
	s.Add(s, newFloat(wp).SetInt64(1))
	return s.Quo(s, newFloat(wp).SetInt64(2)).SetPrec(prec)
}

func sqrt2Big(prec uint) *big.Float {
	return newFloat(prec).Sqrt(newFloat(prec + guardBits).SetInt64(2))
}
