// primality.go
//
// Baillie-PSW primality: trial division by small primes, a strong Fermat
// test to base 2, and a strong Lucas probable-prime test with Selfridge's
// parameter choice. No composite below 2^64 passes the combination, and no
// counterexample of any size is known.
package rpn

import (
	"fmt"
	"math/big"
)

var trialPrimes = []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47}

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// BailliePSW reports whether n is prime. Negative arguments are rejected
// rather than treated as composite.
func BailliePSW(n *big.Int) (bool, error) {
	if n.Sign() < 0 {
		return false, fmt.Errorf("primality is not defined for negative numbers")
	}
	if n.Cmp(bigTwo) < 0 {
		return false, nil
	}

	for _, p := range trialPrimes {
		bp := big.NewInt(p)
		if new(big.Int).Mod(n, bp).Sign() == 0 {
			return n.Cmp(bp) == 0, nil
		}
	}
	// Every composite below 47^2 has a factor found above.
	if n.Cmp(big.NewInt(47*47)) < 0 {
		return true, nil
	}

	if !millerRabinBase2(n) {
		return false, nil
	}

	// A perfect square has Jacobi(D, n) != -1 for every D, so the parameter
	// search below would not terminate.
	if isPerfectSquare(n) {
		return false, nil
	}

	d, ok := selfridgeD(n)
	if !ok {
		return false, nil
	}
	return lucasStrongPP(n, d), nil
}

// millerRabinBase2 is the strong Fermat test to base 2 for odd n > 2.
func millerRabinBase2(n *big.Int) bool {
	nm1 := new(big.Int).Sub(n, bigOne)
	d := new(big.Int).Set(nm1)
	s := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		s++
	}

	x := new(big.Int).Exp(bigTwo, d, n)
	if x.Cmp(bigOne) == 0 || x.Cmp(nm1) == 0 {
		return true
	}
	for i := 0; i < s-1; i++ {
		x.Mul(x, x).Mod(x, n)
		if x.Cmp(nm1) == 0 {
			return true
		}
	}
	return false
}

func isPerfectSquare(n *big.Int) bool {
	r := new(big.Int).Sqrt(n)
	return new(big.Int).Mul(r, r).Cmp(n) == 0
}

// selfridgeD finds the first D in 5, -7, 9, -11, ... with Jacobi(D, n) = -1.
// A zero Jacobi symbol means gcd(|D|, n) > 1, which proves n composite here
// since n survived trial division.
func selfridgeD(n *big.Int) (int64, bool) {
	d := int64(5)
	for {
		j := big.Jacobi(big.NewInt(d), n)
		if j == -1 {
			return d, true
		}
		if j == 0 && new(big.Int).Abs(big.NewInt(d)).Cmp(n) != 0 {
			return 0, false
		}
		if d > 0 {
			d = -(d + 2)
		} else {
			d = -d + 2
		}
	}
}

// lucasStrongPP runs the strong Lucas probable-prime test with P = 1 and
// Q = (1 - D) / 4. Writing n + 1 = d * 2^s with d odd, n passes if U_d = 0,
// or V_(d * 2^r) = 0 for some r < s.
func lucasStrongPP(n *big.Int, dParam int64) bool {
	q := big.NewInt((1 - dParam) / 4)
	dBig := big.NewInt(dParam)

	np1 := new(big.Int).Add(n, bigOne)
	d := new(big.Int).Set(np1)
	s := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		s++
	}

	// U_1 = 1, V_1 = P = 1, Q^1 = Q.
	u := big.NewInt(1)
	v := big.NewInt(1)
	qk := new(big.Int).Mod(q, n)

	// Walk the bits of d below the leading one, doubling the subscript at
	// each step and incrementing it when the bit is set.
	for i := d.BitLen() - 2; i >= 0; i-- {
		// U_2k = U*V, V_2k = V^2 - 2*Q^k
		u.Mul(u, v).Mod(u, n)
		v.Mul(v, v)
		v.Sub(v, new(big.Int).Lsh(qk, 1))
		v.Mod(v, n)
		qk.Mul(qk, qk).Mod(qk, n)

		if d.Bit(i) == 1 {
			// U_(k+1) = (U + V)/2, V_(k+1) = (D*U + V)/2 with P = 1
			nu := new(big.Int).Add(u, v)
			nv := new(big.Int).Add(new(big.Int).Mul(dBig, u), v)
			u = halveMod(nu, n)
			v = halveMod(nv, n)
			qk.Mul(qk, q).Mod(qk, n)
		}
	}

	if u.Sign() == 0 || v.Sign() == 0 {
		return true
	}
	for r := 1; r < s; r++ {
		v.Mul(v, v)
		v.Sub(v, new(big.Int).Lsh(qk, 1))
		v.Mod(v, n)
		if v.Sign() == 0 {
			return true
		}
		qk.Mul(qk, qk).Mod(qk, n)
	}
	return false
}

// halveMod divides x by 2 modulo odd n, adding n first when x is odd.
func halveMod(x, n *big.Int) *big.Int {
	x.Mod(x, n)
	if x.Bit(0) == 1 {
		x.Add(x, n)
	}
	return x.Rsh(x, 1)
}
