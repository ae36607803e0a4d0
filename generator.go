// generator.go
//
// Lazy sequences. A Generator is a pull-based, forward-only producer of
// values with single-ownership semantics: exactly one consumer drains it, on
// the caller's goroutine, and once exhausted it stays exhausted. Count is
// advisory; -1 means the length is unknown until the sequence is drained.
// Callers that need repeated access materialize first.
//
// Factories cover the constructors the evaluator needs: ranges (arithmetic,
// geometric, exponential), lazily chained/filtered wrappers, and the
// combinatorial permutation/product sequences whose elements are rebuilt from
// digit strings.
package rpn

import (
	"math/big"
	"sort"
)

type Generator struct {
	next  func() (Value, bool)
	count int64
	spent bool
}

// Next produces the next value, or ok=false once the sequence is exhausted.
func (g *Generator) Next() (Value, bool) {
	if g.spent {
		return Value{}, false
	}
	v, ok := g.next()
	if !ok {
		g.spent = true
	}
	return v, ok
}

// Count returns the advertised element count, or -1 when unknown.
func (g *Generator) Count() int64 { return g.count }

// Materialize drains the sequence into a concrete list.
func (g *Generator) Materialize() []Value {
	var out []Value
	for {
		v, ok := g.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// Index skips forward from the current position. It is O(n) and intended for
// small random lookups only.
func (g *Generator) Index(i int) (Value, bool) {
	for ; i > 0; i-- {
		if _, ok := g.Next(); !ok {
			return Value{}, false
		}
	}
	return g.Next()
}

// FromSlice wraps an already-materialized list.
func FromSlice(items []Value) *Generator {
	i := 0
	return &Generator{
		count: int64(len(items)),
		next: func() (Value, bool) {
			if i >= len(items) {
				return Value{}, false
			}
			v := items[i]
			i++
			return v, true
		},
	}
}

// NewRange produces the arithmetic progression start..end inclusive. When the
// caller passes a positive step against a descending range, the step's sign
// is flipped: direction is inferred from the endpoints.
func NewRange(start, end, step *big.Float, prec uint) *Generator {
	s := newFloat(prec).Set(step)
	if s.Sign() == 0 {
		fail(ErrDomain, "range step must be nonzero")
	}
	if start.Cmp(end) > 0 && s.Sign() > 0 {
		s.Neg(s)
	}

	// count = floor((end-start)/step) + 1, clamped at zero
	q := newFloat(prec + guardBits).Sub(end, start)
	q.Quo(q, s)
	count, _ := floorBig(q).Int64()
	count++
	if count < 0 {
		count = 0
	}

	current := newFloat(prec).Set(start)
	asc := s.Sign() > 0
	return &Generator{
		count: count,
		next: func() (Value, bool) {
			if asc && current.Cmp(end) > 0 {
				return Value{}, false
			}
			if !asc && current.Cmp(end) < 0 {
				return Value{}, false
			}
			v := newFloat(prec).Set(current)
			current.Add(current, s)
			return Num(v), true
		},
	}
}

// NewGeometric yields count elements, each the prior times ratio.
func NewGeometric(value, ratio *big.Float, count int64, prec uint) *Generator {
	current := newFloat(prec).Set(value)
	i := int64(0)
	return &Generator{
		count: count,
		next: func() (Value, bool) {
			if i >= count {
				return Value{}, false
			}
			i++
			v := newFloat(prec).Set(current)
			current.Mul(current, ratio)
			return Num(v), true
		},
	}
}

// NewExponential yields count elements, each the prior raised to ratio.
// Ratio must be an integer; non-integer powers of negatives are undefined.
func NewExponential(value, ratio *big.Float, count int64, prec uint) *Generator {
	if !isIntFloat(ratio) {
		fail(ErrDomain, "exponential range requires an integer exponent")
	}
	r, _ := ratio.Int64()
	current := newFloat(prec).Set(value)
	i := int64(0)
	return &Generator{
		count: count,
		next: func() (Value, bool) {
			if i >= count {
				return Value{}, false
			}
			i++
			v := newFloat(prec).Set(current)
			current = powIntBig(current, r, prec)
			return Num(v), true
		},
	}
}

// NewChained applies f lazily to each element of src. The count carries over
// because mapping preserves length.
func NewChained(src *Generator, f func(Value) Value) *Generator {
	return &Generator{
		count: src.count,
		next: func() (Value, bool) {
			v, ok := src.Next()
			if !ok {
				return Value{}, false
			}
			return f(v), true
		},
	}
}

// NewFiltered keeps the elements of src for which pred holds. The output
// length is unknowable without draining.
func NewFiltered(src *Generator, pred func(Value) bool) *Generator {
	return &Generator{
		count: -1,
		next: func() (Value, bool) {
			for {
				v, ok := src.Next()
				if !ok {
					return Value{}, false
				}
				if pred(v) {
					return v, true
				}
			}
		},
	}
}

// NewLimited truncates src after n elements.
func NewLimited(src *Generator, n int64) *Generator {
	i := int64(0)
	count := src.count
	if count < 0 || count > n {
		count = n
	}
	return &Generator{
		count: count,
		next: func() (Value, bool) {
			if i >= n {
				return Value{}, false
			}
			i++
			return src.Next()
		},
	}
}

// digitString renders a value as the digit text the combinatorial sequences
// concatenate. Only integer values and strings participate.
func digitString(v Value) string {
	switch v.Tag {
	case VTStr:
		return v.Data.(string)
	case VTNum:
		f := v.Float()
		if f == nil || !isIntFloat(f) {
			fail(ErrDomain, "digit sequences require integer elements")
		}
		i, _ := f.Int(nil)
		return i.String()
	default:
		fail(ErrDomain, "digit sequences require integer elements")
		return ""
	}
}

// joinDigits reassembles a tuple of digit values into one numeric value.
// This is tuned for numeral-sequence reconstruction, not general joining.
func joinDigits(items []Value, idx []int, prec uint) Value {
	s := ""
	for _, i := range idx {
		s += digitString(items[i])
	}
	f, _, err := big.ParseFloat(s, 10, prec, big.ToNearestEven)
	if err != nil {
		fail(ErrDomain, "digit sequence does not form a number")
	}
	return Num(f)
}

// NewPermutations enumerates every permutation of the input digits, each
// rejoined into a single number. Count is n!.
func NewPermutations(items []Value, prec uint) *Generator {
	n := len(items)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	count := int64(1)
	for i := int64(2); i <= int64(n); i++ {
		count *= i
	}

	done := n == 0
	return &Generator{
		count: count,
		next: func() (Value, bool) {
			if done {
				return Value{}, false
			}
			v := joinDigits(items, idx, prec)
			done = !nextPermutation(idx)
			return v, true
		},
	}
}

// nextPermutation advances idx to the next lexicographic arrangement,
// returning false after the last one.
func nextPermutation(idx []int) bool {
	i := len(idx) - 2
	for i >= 0 && idx[i] >= idx[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(idx) - 1
	for idx[j] <= idx[i] {
		j--
	}
	idx[i], idx[j] = idx[j], idx[i]
	sort.Ints(idx[i+1:])
	return true
}

// NewProduct enumerates the cartesian product of several digit lists, each
// tuple rejoined into a single number. Count is the product of the lengths.
func NewProduct(lists [][]Value, prec uint) *Generator {
	if len(lists) == 0 {
		return FromSlice(nil)
	}
	count := int64(1)
	for _, l := range lists {
		count *= int64(len(l))
	}

	odometer := make([]int, len(lists))
	done := count == 0
	return &Generator{
		count: count,
		next: func() (Value, bool) {
			if done {
				return Value{}, false
			}
			s := ""
			for i, l := range lists {
				s += digitString(l[odometer[i]])
			}
			f, _, err := big.ParseFloat(s, 10, prec, big.ToNearestEven)
			if err != nil {
				fail(ErrDomain, "digit sequence does not form a number")
			}

			// advance the odometer, rightmost wheel fastest
			for i := len(odometer) - 1; i >= 0; i-- {
				odometer[i]++
				if odometer[i] < len(lists[i]) {
					break
				}
				odometer[i] = 0
				if i == 0 {
					done = true
				}
			}
			return Num(f), true
		},
	}
}
