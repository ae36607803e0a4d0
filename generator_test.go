package rpn

import (
	"math/big"
	"testing"
)

func drain(t *testing.T, g *Generator) []Value {
	t.Helper()
	var out []Value
	for v, ok := g.Next(); ok; v, ok = g.Next() {
		out = append(out, v)
	}
	return out
}

func Test_Generator_range_count_consistency(t *testing.T) {
	prec := uint(100)
	cases := []struct {
		start, end, step int64
	}{
		{1, 10, 1},
		{1, 10, 3},
		{5, 5, 1},
		{0, 100, 7},
		{10, 1, 1}, // direction inferred from endpoints
		{-3, 3, 2},
	}
	for _, c := range cases {
		g := NewRange(
			new(big.Float).SetPrec(prec).SetInt64(c.start),
			new(big.Float).SetPrec(prec).SetInt64(c.end),
			new(big.Float).SetPrec(prec).SetInt64(c.step), prec)
		want := g.Count()
		if want < 0 {
			t.Fatalf("range(%d, %d, %d) should advertise a count", c.start, c.end, c.step)
		}
		got := int64(len(drain(t, g)))
		if got != want {
			t.Fatalf("range(%d, %d, %d): advertised %d elements, produced %d",
				c.start, c.end, c.step, want, got)
		}
	}
}

func Test_Generator_range_step_sign_flip(t *testing.T) {
	prec := uint(100)
	g := NewRange(
		new(big.Float).SetPrec(prec).SetInt64(5),
		new(big.Float).SetPrec(prec).SetInt64(1),
		new(big.Float).SetPrec(prec).SetInt64(1), prec)
	items := drain(t, g)
	want := []int64{5, 4, 3, 2, 1}
	if len(items) != len(want) {
		t.Fatalf("expected %d elements, got %d", len(want), len(items))
	}
	for i, w := range want {
		got, _ := items[i].Float().Int64()
		if got != w {
			t.Fatalf("element %d should be %d, got %d", i, w, got)
		}
	}
}

func Test_Generator_spent_after_drain(t *testing.T) {
	prec := uint(100)
	g := NewRange(
		new(big.Float).SetPrec(prec).SetInt64(1),
		new(big.Float).SetPrec(prec).SetInt64(3),
		new(big.Float).SetPrec(prec).SetInt64(1), prec)
	drain(t, g)
	if _, ok := g.Next(); ok {
		t.Fatal("a drained generator should yield nothing")
	}
}

func Test_Generator_geometric(t *testing.T) {
	prec := uint(100)
	g := NewGeometric(
		new(big.Float).SetPrec(prec).SetInt64(2),
		new(big.Float).SetPrec(prec).SetInt64(3), 4, prec)
	items := drain(t, g)
	want := []int64{2, 6, 18, 54}
	if len(items) != len(want) {
		t.Fatalf("expected %d elements, got %d", len(want), len(items))
	}
	for i, w := range want {
		got, _ := items[i].Float().Int64()
		if got != w {
			t.Fatalf("element %d should be %d, got %d", i, w, got)
		}
	}
}

func Test_Generator_chained_and_filtered(t *testing.T) {
	prec := uint(100)
	base := NewRange(
		new(big.Float).SetPrec(prec).SetInt64(1),
		new(big.Float).SetPrec(prec).SetInt64(6),
		new(big.Float).SetPrec(prec).SetInt64(1), prec)

	doubled := NewChained(base, func(v Value) Value {
		f := new(big.Float).SetPrec(prec).Add(v.Float(), v.Float())
		return Num(f)
	})
	if doubled.Count() != 6 {
		t.Fatalf("chaining should preserve the count, got %d", doubled.Count())
	}

	evens := NewFiltered(doubled, func(v Value) bool {
		n, _ := v.Float().Int64()
		return n%4 == 0
	})
	if evens.Count() != -1 {
		t.Fatalf("filtering should not advertise a count, got %d", evens.Count())
	}
	items := drain(t, evens)
	if len(items) != 3 {
		t.Fatalf("expected 3 multiples of 4 in 2..12, got %d", len(items))
	}
}

func Test_Generator_limited(t *testing.T) {
	prec := uint(100)
	base := NewRange(
		new(big.Float).SetPrec(prec).SetInt64(1),
		new(big.Float).SetPrec(prec).SetInt64(100),
		new(big.Float).SetPrec(prec).SetInt64(1), prec)
	g := NewLimited(base, 5)
	if g.Count() != 5 {
		t.Fatalf("limit should advertise its bound, got %d", g.Count())
	}
	if got := len(drain(t, g)); got != 5 {
		t.Fatalf("expected 5 elements, got %d", got)
	}
}

func Test_Generator_index_skips_forward(t *testing.T) {
	prec := uint(100)
	g := NewRange(
		new(big.Float).SetPrec(prec).SetInt64(10),
		new(big.Float).SetPrec(prec).SetInt64(20),
		new(big.Float).SetPrec(prec).SetInt64(1), prec)
	v, ok := g.Index(3)
	if !ok {
		t.Fatal("index 3 should exist")
	}
	got, _ := v.Float().Int64()
	if got != 13 {
		t.Fatalf("element 3 should be 13, got %d", got)
	}
}

func Test_Generator_permutations(t *testing.T) {
	prec := uint(100)
	items := []Value{NumInt(1, prec), NumInt(2, prec), NumInt(3, prec)}
	g := NewPermutations(items, prec)
	if g.Count() != 6 {
		t.Fatalf("3 digits should yield 6 permutations, got %d", g.Count())
	}
	out := drain(t, g)
	if len(out) != 6 {
		t.Fatalf("expected 6 permutations, got %d", len(out))
	}
	first, _ := out[0].Float().Int64()
	last, _ := out[5].Float().Int64()
	if first != 123 || last != 321 {
		t.Fatalf("lexicographic order should run 123..321, got %d..%d", first, last)
	}
}

func Test_Generator_product(t *testing.T) {
	prec := uint(100)
	lists := [][]Value{
		{NumInt(1, prec), NumInt(2, prec)},
		{NumInt(0, prec), NumInt(5, prec)},
	}
	g := NewProduct(lists, prec)
	if g.Count() != 4 {
		t.Fatalf("2x2 product should have 4 elements, got %d", g.Count())
	}
	out := drain(t, g)
	want := []int64{10, 15, 20, 25}
	for i, w := range want {
		got, _ := out[i].Float().Int64()
		if got != w {
			t.Fatalf("product element %d should be %d, got %d", i, w, got)
		}
	}
}
