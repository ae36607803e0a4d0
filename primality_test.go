package rpn

import (
	"math/big"
	"testing"
)

func isPrime(t *testing.T, n int64) bool {
	t.Helper()
	prime, err := BailliePSW(big.NewInt(n))
	if err != nil {
		t.Fatalf("BailliePSW(%d) failed: %v", n, err)
	}
	return prime
}

func Test_Primality_small_numbers(t *testing.T) {
	primes := []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 97, 101}
	for _, p := range primes {
		if !isPrime(t, p) {
			t.Fatalf("%d should be prime", p)
		}
	}

	composites := []int64{0, 1, 4, 6, 8, 9, 15, 21, 25, 49, 91, 100, 2209}
	for _, c := range composites {
		if isPrime(t, c) {
			t.Fatalf("%d should not be prime", c)
		}
	}
}

func Test_Primality_negative_rejected(t *testing.T) {
	_, err := BailliePSW(big.NewInt(-7))
	if err == nil {
		t.Fatal("negative arguments should be rejected")
	}
}

func Test_Primality_carmichael_numbers(t *testing.T) {
	// Carmichael numbers fool the plain Fermat test but not this pipeline.
	for _, n := range []int64{561, 1105, 1729, 2465, 2821, 6601, 8911} {
		if isPrime(t, n) {
			t.Fatalf("Carmichael number %d should not be prime", n)
		}
	}
}

func Test_Primality_miller_rabin_base_2(t *testing.T) {
	// 561 fails the strong base-2 test outright.
	if millerRabinBase2(big.NewInt(561)) {
		t.Fatal("561 should fail the strong base-2 test")
	}
	// 2047 = 23 * 89 is a strong pseudoprime to base 2; only the Lucas
	// stage catches it.
	if !millerRabinBase2(big.NewInt(2047)) {
		t.Fatal("2047 should pass the base-2 test alone")
	}
	if isPrime(t, 2047) {
		t.Fatal("the full pipeline should reject 2047")
	}
}

func Test_Primality_strong_pseudoprimes_base_2(t *testing.T) {
	// The first few strong pseudoprimes to base 2 all fall to the Lucas stage.
	for _, n := range []int64{2047, 3277, 4033, 4681, 8321} {
		if isPrime(t, n) {
			t.Fatalf("base-2 strong pseudoprime %d should not pass", n)
		}
	}
}

func Test_Primality_large_values(t *testing.T) {
	// 2^61 - 1 is a Mersenne prime.
	m61 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 61), big.NewInt(1))
	prime, err := BailliePSW(m61)
	if err != nil || !prime {
		t.Fatalf("2^61-1 should be prime, got %v, %v", prime, err)
	}

	// Its predecessor is even, its successor a power of two.
	even := new(big.Int).Sub(m61, big.NewInt(1))
	prime, err = BailliePSW(even)
	if err != nil || prime {
		t.Fatalf("2^61-2 should not be prime")
	}

	// A large semiprime: (2^31-1)^2 is a perfect square and must be caught.
	sq := new(big.Int).Mul(big.NewInt(2147483647), big.NewInt(2147483647))
	prime, err = BailliePSW(sq)
	if err != nil || prime {
		t.Fatalf("a perfect square of a prime should not be prime")
	}
}

func Test_Primality_selfridge_parameter(t *testing.T) {
	// Jacobi(5|7) = -1, so the very first candidate works.
	d, ok := selfridgeD(big.NewInt(7))
	if !ok || d != 5 {
		t.Fatalf("selfridgeD(7) should be 5, got %d, %v", d, ok)
	}

	// For 11 the search walks 5, -7, 9 (all +1), skips -11 (Jacobi 0 with
	// |D| = n), and settles on 13.
	d, ok = selfridgeD(big.NewInt(11))
	if !ok || d != 13 {
		t.Fatalf("selfridgeD(11) should be 13, got %d, %v", d, ok)
	}
}
