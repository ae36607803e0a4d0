package rpn

import (
	"math/big"
	"testing"
)

func wantClose(t *testing.T, got *big.Float, want float64, tol float64, what string) {
	t.Helper()
	diff := new(big.Float).Sub(got, big.NewFloat(want))
	if diff.Abs(diff).Cmp(big.NewFloat(tol)) > 0 {
		t.Fatalf("%s = %s, want %g within %g", what, got.Text('g', 20), want, tol)
	}
}

func Test_Bigmath_ln(t *testing.T) {
	prec := uint(200)
	wantClose(t, lnBig(newFloat(prec).SetInt64(10), prec), 2.302585092994046, 1e-12, "ln(10)")
	wantClose(t, lnBig(newFloat(prec).SetInt64(1), prec), 0, 1e-12, "ln(1)")
	// The mantissa reduction hands the series a negative argument; the sum
	// must still converge rather than terminate on the first term.
	wantClose(t, lnBig(newFloat(prec).SetFloat64(0.5), prec), -0.6931471805599453, 1e-12, "ln(0.5)")
}

func Test_Bigmath_exp(t *testing.T) {
	prec := uint(200)
	wantClose(t, expBig(newFloat(prec).SetInt64(1), prec), 2.718281828459045, 1e-12, "exp(1)")
	wantClose(t, expBig(newFloat(prec).SetInt64(-1), prec), 0.36787944117144233, 1e-12, "exp(-1)")
	// Exercises the power-of-two rescaling after argument reduction.
	wantClose(t, expBig(newFloat(prec).SetInt64(10), prec), 22026.465794806718, 1e-8, "exp(10)")
}

func Test_Bigmath_exp_ln_round_trip(t *testing.T) {
	prec := uint(200)
	for _, v := range []float64{0.125, 0.7, 3, 42, 1e6} {
		x := newFloat(prec).SetFloat64(v)
		back := expBig(lnBig(x, prec), prec)
		diff := new(big.Float).Sub(back, x)
		diff.Abs(diff).Quo(diff, x)
		if diff.Cmp(big.NewFloat(1e-15)) > 0 {
			t.Fatalf("exp(ln(%g)) = %s, relative error too large", v, back.Text('g', 20))
		}
	}
}
