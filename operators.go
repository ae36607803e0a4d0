// operators.go
//
// The operator table and the leaf operators themselves, grouped by category
// in the register* functions called from NewEvaluator. Unary and binary
// numeric operators go through broadcast wrappers that map elementwise over
// lists (recursively) and chain lazily over generators, so every arithmetic
// leaf only ever sees scalars.
package rpn

import (
	"math/big"
	"sort"
)

type opFunc func(e *Evaluator, frame *ValueList, isLast bool)

type operatorInfo struct {
	arity    int
	modifier bool
	fn       opFunc
}

func (e *Evaluator) register(name string, arity int, fn opFunc) {
	e.ops[name] = &operatorInfo{arity: arity, fn: fn}
}

// registerModifier marks operators that mutate stack structure; an armed
// duplicate_operator counter never applies to these.
func (e *Evaluator) registerModifier(name string, arity int, fn opFunc) {
	e.ops[name] = &operatorInfo{arity: arity, modifier: true, fn: fn}
}

func (e *Evaluator) registerOperators() {
	e.registerArithmeticOperators()
	e.registerNumberTheoryOperators()
	e.registerListOperators()
	e.registerFunctionOperators()
	e.registerBaseOperators()
	e.registerConstantOperators()
	e.registerSettingsOperators()
	e.registerUnitOperators()
	e.registerModifierOperators()
}

func (e *Evaluator) registerAliases() {
	e.SetAlias("+", "add")
	e.SetAlias("-", "subtract")
	e.SetAlias("*", "multiply")
	e.SetAlias("/", "divide")
	e.SetAlias("**", "power")
	e.SetAlias("%", "modulo")
	e.SetAlias("!", "factorial")
	e.SetAlias("1/x", "reciprocal")
	e.SetAlias("ceil", "ceiling")
	e.SetAlias("avg", "mean")
	e.SetAlias("len", "count")
	e.SetAlias("prime?", "is_prime")
}

// operand coercion

func asNum(v Value) *big.Float {
	if v.Tag != VTNum || v.IsNaN() {
		fail(ErrDomain, "expected a number")
	}
	return v.Float()
}

func asInt(v Value) *big.Int {
	f := asNum(v)
	if !isIntFloat(f) {
		fail(ErrDomain, "expected an integer")
	}
	return floorInt(f)
}

func asInt64(v Value) int64 {
	n := asInt(v)
	if !n.IsInt64() {
		fail(ErrDomain, "integer argument is too large")
	}
	return n.Int64()
}

func asStr(v Value) string {
	if v.Tag != VTStr {
		fail(ErrDomain, "expected a string")
	}
	return v.Data.(string)
}

// broadcast wrappers

func oneArg(fn func(e *Evaluator, v Value) Value) opFunc {
	return func(e *Evaluator, frame *ValueList, _ bool) {
		frame.push(broadcastOne(e, frame.pop(), fn))
	}
}

func broadcastOne(e *Evaluator, v Value, fn func(e *Evaluator, v Value) Value) Value {
	switch v.Tag {
	case VTList:
		out := newList()
		for _, item := range v.List().Items {
			out.push(broadcastOne(e, item, fn))
		}
		return ListVal(out)
	case VTGenerator:
		return GenVal(NewChained(v.Generator(), func(item Value) Value {
			return broadcastOne(e, item, fn)
		}))
	default:
		return fn(e, v)
	}
}

func twoArg(fn func(e *Evaluator, a, b Value) Value) opFunc {
	return func(e *Evaluator, frame *ValueList, _ bool) {
		b := frame.pop()
		a := frame.pop()
		frame.push(broadcastTwo(e, a, b, fn))
	}
}

func broadcastTwo(e *Evaluator, a, b Value, fn func(e *Evaluator, a, b Value) Value) Value {
	if a.Tag == VTGenerator {
		a = ListVal(newList(a.Generator().Materialize()...))
	}
	if b.Tag == VTGenerator {
		b = ListVal(newList(b.Generator().Materialize()...))
	}

	switch {
	case a.Tag == VTList && b.Tag == VTList:
		la, lb := a.List().Items, b.List().Items
		if len(la) != len(lb) {
			fail(ErrDomain, "list operands must be the same length")
		}
		out := newList()
		for i := range la {
			out.push(broadcastTwo(e, la[i], lb[i], fn))
		}
		return ListVal(out)
	case a.Tag == VTList:
		out := newList()
		for _, item := range a.List().Items {
			out.push(broadcastTwo(e, item, b, fn))
		}
		return ListVal(out)
	case b.Tag == VTList:
		out := newList()
		for _, item := range b.List().Items {
			out.push(broadcastTwo(e, a, item, fn))
		}
		return ListVal(out)
	default:
		return fn(e, a, b)
	}
}

// arithmetic

func (e *Evaluator) registerArithmeticOperators() {
	e.register("add", 2, twoArg(addValues))
	e.register("subtract", 2, twoArg(subValues))
	e.register("multiply", 2, twoArg(mulValues))
	e.register("divide", 2, twoArg(divValues))
	e.register("power", 2, twoArg(powValues))
	e.register("modulo", 2, twoArg(func(e *Evaluator, a, b Value) Value {
		return Num(modBig(asNum(a), asNum(b), e.cfg.prec()))
	}))

	e.register("reciprocal", 1, oneArg(func(e *Evaluator, v Value) Value {
		return divValues(e, NumInt(1, e.cfg.prec()), v)
	}))
	e.register("abs", 1, oneArg(func(e *Evaluator, v Value) Value {
		return Num(newFloat(e.cfg.prec()).Abs(asNum(v)))
	}))
	e.register("negate", 1, oneArg(func(e *Evaluator, v Value) Value {
		return Num(newFloat(e.cfg.prec()).Neg(asNum(v)))
	}))
	e.register("sqr", 1, oneArg(func(e *Evaluator, v Value) Value {
		return mulValues(e, v, v)
	}))
	e.register("cube", 1, oneArg(func(e *Evaluator, v Value) Value {
		return mulValues(e, mulValues(e, v, v), v)
	}))
	e.register("sqrt", 1, oneArg(sqrtValue))

	e.register("floor", 1, oneArg(func(e *Evaluator, v Value) Value {
		return Num(floorBig(asNum(v)))
	}))
	e.register("ceiling", 1, oneArg(func(e *Evaluator, v Value) Value {
		return Num(ceilBig(asNum(v)))
	}))
	e.register("nearest_int", 1, oneArg(func(e *Evaluator, v Value) Value {
		return Num(nintBig(asNum(v)))
	}))
	e.register("round", 1, oneArg(func(e *Evaluator, v Value) Value {
		return Num(nintBig(asNum(v)))
	}))
	e.register("exp", 1, oneArg(func(e *Evaluator, v Value) Value {
		return Num(expBig(asNum(v), e.cfg.prec()))
	}))
	e.register("ln", 1, oneArg(func(e *Evaluator, v Value) Value {
		return Num(lnBig(asNum(v), e.cfg.prec()))
	}))
}

func asComplex(v Value, prec uint) *ComplexVal {
	if v.Tag == VTComplex {
		return v.Data.(*ComplexVal)
	}
	return &ComplexVal{Re: newFloat(prec).Set(asNum(v)), Im: newFloat(prec)}
}

// collapseMeasure drops a measurement whose units all cancelled.
func collapseMeasure(m *Measurement) Value {
	if !m.Simplify() {
		return Num(m.Mag)
	}
	return MeasureVal(m)
}

func addValues(e *Evaluator, a, b Value) Value {
	prec := e.cfg.prec()
	switch {
	case a.Tag == VTMeasure || b.Tag == VTMeasure:
		return collapseMeasure(toMeasure(a, prec).Add(toMeasure(b, prec), prec))
	case a.Tag == VTComplex || b.Tag == VTComplex:
		ca, cb := asComplex(a, prec), asComplex(b, prec)
		return complexOrReal(newFloat(prec).Add(ca.Re, cb.Re), newFloat(prec).Add(ca.Im, cb.Im))
	default:
		return Num(newFloat(prec).Add(asNum(a), asNum(b)))
	}
}

func subValues(e *Evaluator, a, b Value) Value {
	prec := e.cfg.prec()
	switch {
	case a.Tag == VTMeasure || b.Tag == VTMeasure:
		return collapseMeasure(toMeasure(a, prec).Sub(toMeasure(b, prec), prec))
	case a.Tag == VTComplex || b.Tag == VTComplex:
		ca, cb := asComplex(a, prec), asComplex(b, prec)
		return complexOrReal(newFloat(prec).Sub(ca.Re, cb.Re), newFloat(prec).Sub(ca.Im, cb.Im))
	default:
		return Num(newFloat(prec).Sub(asNum(a), asNum(b)))
	}
}

func mulValues(e *Evaluator, a, b Value) Value {
	prec := e.cfg.prec()
	switch {
	case a.Tag == VTMeasure || b.Tag == VTMeasure:
		return collapseMeasure(toMeasure(a, prec).Mul(toMeasure(b, prec), prec))
	case a.Tag == VTComplex || b.Tag == VTComplex:
		ca, cb := asComplex(a, prec), asComplex(b, prec)
		re := newFloat(prec).Sub(newFloat(prec).Mul(ca.Re, cb.Re), newFloat(prec).Mul(ca.Im, cb.Im))
		im := newFloat(prec).Add(newFloat(prec).Mul(ca.Re, cb.Im), newFloat(prec).Mul(ca.Im, cb.Re))
		return complexOrReal(re, im)
	default:
		return Num(newFloat(prec).Mul(asNum(a), asNum(b)))
	}
}

func divValues(e *Evaluator, a, b Value) Value {
	prec := e.cfg.prec()
	switch {
	case a.Tag == VTMeasure || b.Tag == VTMeasure:
		return collapseMeasure(toMeasure(a, prec).Div(toMeasure(b, prec), prec))
	case a.Tag == VTComplex || b.Tag == VTComplex:
		ca, cb := asComplex(a, prec), asComplex(b, prec)
		denom := newFloat(prec).Add(newFloat(prec).Mul(cb.Re, cb.Re), newFloat(prec).Mul(cb.Im, cb.Im))
		if denom.Sign() == 0 {
			fail(ErrArithmetic, "division by zero")
		}
		re := newFloat(prec).Add(newFloat(prec).Mul(ca.Re, cb.Re), newFloat(prec).Mul(ca.Im, cb.Im))
		im := newFloat(prec).Sub(newFloat(prec).Mul(ca.Im, cb.Re), newFloat(prec).Mul(ca.Re, cb.Im))
		return complexOrReal(re.Quo(re, denom), im.Quo(im, denom))
	default:
		bf := asNum(b)
		if bf.Sign() == 0 {
			fail(ErrArithmetic, "division by zero")
		}
		return Num(newFloat(prec).Quo(asNum(a), bf))
	}
}

func powValues(e *Evaluator, a, b Value) Value {
	prec := e.cfg.prec()
	if a.Tag == VTComplex || b.Tag == VTComplex {
		fail(ErrDomain, "complex exponents are not supported")
	}
	exp := asNum(b)
	if a.Tag == VTMeasure {
		if !isIntFloat(exp) {
			fail(ErrDomain, "measurements require integer exponents")
		}
		n := floorInt(exp)
		if !n.IsInt64() {
			fail(ErrDomain, "exponent is too large")
		}
		return collapseMeasure(a.Data.(*Measurement).PowInt(n.Int64(), prec))
	}

	base := asNum(a)
	if isIntFloat(exp) {
		n := floorInt(exp)
		if !n.IsInt64() {
			fail(ErrDomain, "exponent is too large")
		}
		return Num(powIntBig(base, n.Int64(), prec))
	}
	if base.Sign() <= 0 {
		fail(ErrDomain, "a non-integer exponent requires a positive base")
	}
	return Num(expBig(newFloat(prec+guardBits).Mul(exp, lnBig(base, prec+guardBits)), prec))
}

func sqrtValue(e *Evaluator, v Value) Value {
	prec := e.cfg.prec()
	x := asNum(v)
	if x.Sign() < 0 {
		im := newFloat(prec).Sqrt(newFloat(prec).Abs(x))
		return ComplexNum(newFloat(prec), im)
	}
	return Num(newFloat(prec).Sqrt(x))
}

func complexOrReal(re, im *big.Float) Value {
	if im.Sign() == 0 {
		return Num(re)
	}
	return ComplexNum(re, im)
}

func toMeasure(v Value, prec uint) *Measurement {
	if v.Tag == VTMeasure {
		return v.Data.(*Measurement)
	}
	return scalarMeasurement(newFloat(prec).Set(asNum(v)))
}

// number theory

func (e *Evaluator) registerNumberTheoryOperators() {
	e.register("fibonacci", 1, oneArg(func(e *Evaluator, v Value) Value {
		return intResult(e, fibonacciInt(asInt64(v)))
	}))
	e.register("lucas", 1, oneArg(func(e *Evaluator, v Value) Value {
		return intResult(e, lucasInt(asInt64(v)))
	}))
	e.register("factorial", 1, oneArg(func(e *Evaluator, v Value) Value {
		n := asInt64(v)
		if n < 0 {
			fail(ErrDomain, "factorial is not defined for negative numbers")
		}
		return intResult(e, new(big.Int).MulRange(1, n))
	}))
	e.register("primorial", 1, oneArg(func(e *Evaluator, v Value) Value {
		n := asInt64(v)
		if n < 0 {
			fail(ErrDomain, "primorial is not defined for negative numbers")
		}
		return intResult(e, primorialPlace(int(n)+1))
	}))
	e.register("triangular", 1, oneArg(func(e *Evaluator, v Value) Value {
		n := asInt(v)
		t := new(big.Int).Add(n, bigOne)
		t.Mul(t, n).Rsh(t, 1)
		return intResult(e, t)
	}))
	e.register("is_prime", 1, oneArg(func(e *Evaluator, v Value) Value {
		f := asNum(v)
		if !isIntFloat(f) {
			return NumInt(0, e.cfg.prec())
		}
		prime, err := BailliePSW(floorInt(f))
		if err != nil {
			fail(ErrDomain, err.Error())
		}
		if prime {
			return NumInt(1, e.cfg.prec())
		}
		return NumInt(0, e.cfg.prec())
	}))
}

func intResult(e *Evaluator, n *big.Int) Value {
	return Num(newFloat(e.cfg.prec()).SetInt(n))
}

func fibonacciInt(n int64) *big.Int {
	if n < 0 {
		fail(ErrDomain, "fibonacci is not defined for negative numbers")
	}
	a, b := big.NewInt(0), big.NewInt(1)
	for i := int64(0); i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}

func lucasInt(n int64) *big.Int {
	if n < 0 {
		fail(ErrDomain, "lucas numbers are not defined for negative numbers")
	}
	a, b := big.NewInt(2), big.NewInt(1)
	for i := int64(0); i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}

// list operators

func (e *Evaluator) registerListOperators() {
	e.register("sum", 1, func(e *Evaluator, frame *ValueList, _ bool) {
		seq := asSequence(frame.pop())
		acc := NumInt(0, e.cfg.prec())
		for v, ok := seq.Next(); ok; v, ok = seq.Next() {
			acc = addValues(e, acc, v)
		}
		frame.push(acc)
	})
	e.register("product", 1, func(e *Evaluator, frame *ValueList, _ bool) {
		seq := asSequence(frame.pop())
		acc := NumInt(1, e.cfg.prec())
		for v, ok := seq.Next(); ok; v, ok = seq.Next() {
			acc = mulValues(e, acc, v)
		}
		frame.push(acc)
	})
	e.register("mean", 1, func(e *Evaluator, frame *ValueList, _ bool) {
		seq := asSequence(frame.pop())
		acc := NumInt(0, e.cfg.prec())
		n := int64(0)
		for v, ok := seq.Next(); ok; v, ok = seq.Next() {
			acc = addValues(e, acc, v)
			n++
		}
		if n == 0 {
			fail(ErrDomain, "mean of an empty list")
		}
		frame.push(divValues(e, acc, NumInt(n, e.cfg.prec())))
	})
	e.register("min", 1, func(e *Evaluator, frame *ValueList, _ bool) {
		frame.push(extremum(e, frame.pop(), -1))
	})
	e.register("max", 1, func(e *Evaluator, frame *ValueList, _ bool) {
		frame.push(extremum(e, frame.pop(), 1))
	})
	e.register("count", 1, func(e *Evaluator, frame *ValueList, _ bool) {
		v := frame.pop()
		if v.Tag == VTGenerator {
			if c := v.Generator().Count(); c >= 0 {
				frame.push(NumInt(c, e.cfg.prec()))
				return
			}
		}
		seq := asSequence(v)
		n := int64(0)
		for _, ok := seq.Next(); ok; _, ok = seq.Next() {
			n++
		}
		frame.push(NumInt(n, e.cfg.prec()))
	})
	e.register("sort", 1, func(e *Evaluator, frame *ValueList, _ bool) {
		items := asSequence(frame.pop()).Materialize()
		sort.SliceStable(items, func(i, j int) bool {
			return asNum(items[i]).Cmp(asNum(items[j])) < 0
		})
		frame.push(ListVal(newList(items...)))
	})
	e.register("unique", 1, func(e *Evaluator, frame *ValueList, _ bool) {
		items := asSequence(frame.pop()).Materialize()
		out := newList()
		for _, v := range items {
			dup := false
			for _, seen := range out.Items {
				if asNum(seen).Cmp(asNum(v)) == 0 {
					dup = true
					break
				}
			}
			if !dup {
				out.push(v)
			}
		}
		frame.push(ListVal(out))
	})
	e.register("element", 2, func(e *Evaluator, frame *ValueList, _ bool) {
		idx := asInt64(frame.pop())
		seq := asSequence(frame.pop())
		if idx < 0 {
			fail(ErrDomain, "element index cannot be negative")
		}
		v, ok := seq.Index(int(idx))
		if !ok {
			failf(ErrDomain, "element index %d is out of range", idx)
		}
		frame.push(v)
	})
	e.register("range", 2, func(e *Evaluator, frame *ValueList, _ bool) {
		prec := e.cfg.prec()
		end := asNum(frame.pop())
		start := asNum(frame.pop())
		frame.push(GenVal(NewRange(start, end, newFloat(prec).SetInt64(1), prec)))
	})
	e.register("geometric_range", 3, func(e *Evaluator, frame *ValueList, _ bool) {
		prec := e.cfg.prec()
		count := asInt64(frame.pop())
		ratio := asNum(frame.pop())
		value := asNum(frame.pop())
		frame.push(GenVal(NewGeometric(value, ratio, count, prec)))
	})
	e.register("exponential_range", 3, func(e *Evaluator, frame *ValueList, _ bool) {
		prec := e.cfg.prec()
		count := asInt64(frame.pop())
		ratio := asNum(frame.pop())
		value := asNum(frame.pop())
		frame.push(GenVal(NewExponential(value, ratio, count, prec)))
	})
	e.register("permute_digits", 1, func(e *Evaluator, frame *ValueList, _ bool) {
		prec := e.cfg.prec()
		digits := floorInt(asNum(frame.pop())).String()
		items := make([]Value, len(digits))
		for i, d := range digits {
			items[i] = NumInt(int64(d-'0'), prec)
		}
		frame.push(GenVal(NewPermutations(items, prec)))
	})
	e.register("flatten", 1, func(e *Evaluator, frame *ValueList, _ bool) {
		out := newList()
		flattenInto(frame.pop(), out)
		frame.push(ListVal(out))
	})
}

func extremum(e *Evaluator, v Value, dir int) Value {
	seq := asSequence(v)
	best, ok := seq.Next()
	if !ok {
		fail(ErrDomain, "extremum of an empty list")
	}
	for item, more := seq.Next(); more; item, more = seq.Next() {
		if asNum(item).Cmp(asNum(best))*dir > 0 {
			best = item
		}
	}
	return best
}

func flattenInto(v Value, out *ValueList) {
	switch v.Tag {
	case VTList:
		for _, item := range v.List().Items {
			flattenInto(item, out)
		}
	case VTGenerator:
		g := v.Generator()
		for item, ok := g.Next(); ok; item, ok = g.Next() {
			flattenInto(item, out)
		}
	default:
		out.push(v)
	}
}

// function operators

func (e *Evaluator) registerFunctionOperators() {
	evalN := func(n int) opFunc {
		return func(e *Evaluator, frame *ValueList, _ bool) {
			f := popFunction(frame)
			if frame.len() < n {
				failf(ErrArity, "function call requires %d arguments", n)
			}
			args := make([]Value, n)
			for i := n - 1; i >= 0; i-- {
				args[i] = frame.pop()
			}
			frame.push(e.applyFunction(f, args))
		}
	}
	e.register("eval", 2, evalN(1))
	e.register("eval2", 3, evalN(2))
	e.register("eval3", 4, evalN(3))

	e.register("filter", 2, func(e *Evaluator, frame *ValueList, _ bool) {
		f := popFunction(frame)
		seq := asSequence(frame.pop())
		frame.push(GenVal(NewFiltered(seq, func(v Value) bool {
			r := e.applyFunction(f, []Value{v})
			return r.Tag == VTNum && !r.IsNaN() && r.Float().Sign() != 0
		})))
	})
	e.register("limit", 2, func(e *Evaluator, frame *ValueList, _ bool) {
		n := asInt64(frame.pop())
		seq := asSequence(frame.pop())
		frame.push(GenVal(NewLimited(seq, n)))
	})
	e.register("define", 2, func(e *Evaluator, frame *ValueList, _ bool) {
		name := asStr(frame.pop())
		f := popFunction(frame)
		if name == "" {
			fail(ErrDomain, "function name cannot be empty")
		}
		e.funcs[name] = f
	})
}

// base conversion operators

func (e *Evaluator) registerBaseOperators() {
	e.register("to_base", 2, twoArg(func(e *Evaluator, a, b Value) Value {
		base := int(asInt64(b))
		n := asNum(a)
		if n.Sign() < 0 {
			fail(ErrDomain, "base conversion requires a non-negative value")
		}
		s, err := ConvertToBaseN(floorInt(n), base, e.cfg.Numerals)
		if err != nil {
			fail(ErrDomain, err.Error())
		}
		return Str(s)
	}))
	e.register("from_base", 2, twoArg(func(e *Evaluator, a, b Value) Value {
		base := int(asInt64(b))
		n, err := ParseBaseN(asStr(a), base, e.cfg.Numerals)
		if err != nil {
			fail(ErrDomain, err.Error())
		}
		return intResult(e, n)
	}))
}

// constants

func (e *Evaluator) registerConstantOperators() {
	e.register("pi", 0, func(e *Evaluator, frame *ValueList, _ bool) {
		frame.push(Num(piBig(e.cfg.prec())))
	})
	e.register("e", 0, func(e *Evaluator, frame *ValueList, _ bool) {
		frame.push(Num(eBig(e.cfg.prec())))
	})
	e.register("phi", 0, func(e *Evaluator, frame *ValueList, _ bool) {
		frame.push(Num(phiBig(e.cfg.prec())))
	})
	e.register("true", 0, func(e *Evaluator, frame *ValueList, _ bool) {
		frame.push(NumInt(1, e.cfg.prec()))
	})
	e.register("false", 0, func(e *Evaluator, frame *ValueList, _ bool) {
		frame.push(NumInt(0, e.cfg.prec()))
	})
	e.register("default", 0, func(e *Evaluator, frame *ValueList, _ bool) {
		frame.push(NumInt(-1, e.cfg.prec()))
	})
}

// settings operators, all routed through Config setters

func (e *Evaluator) registerSettingsOperators() {
	e.register("set_precision", 1, func(e *Evaluator, frame *ValueList, _ bool) {
		if err := e.cfg.SetPrecision(int(asInt64(frame.pop()))); err != nil {
			fail(ErrDomain, err.Error())
		}
	})
	e.register("set_accuracy", 1, func(e *Evaluator, frame *ValueList, _ bool) {
		e.cfg.SetAccuracy(int(asInt64(frame.pop())))
	})
	e.register("set_output_radix", 1, func(e *Evaluator, frame *ValueList, _ bool) {
		v := frame.pop()
		r := 0
		if v.Tag == VTStr {
			var ok bool
			r, ok = RadixByName(v.Data.(string))
			if !ok {
				failf(ErrDomain, "unknown radix name '%s'", v.Data.(string))
			}
		} else {
			r = int(asInt64(v))
		}
		if err := e.cfg.SetOutputRadix(r); err != nil {
			fail(ErrDomain, err.Error())
		}
	})
	e.register("set_input_radix", 1, func(e *Evaluator, frame *ValueList, _ bool) {
		r := int(asInt64(frame.pop()))
		if r < 2 || r > 62 {
			fail(ErrDomain, "input radix must be from 2 to 62")
		}
		e.cfg.InputRadix = r
	})
	e.register("set_integer_grouping", 1, func(e *Evaluator, frame *ValueList, _ bool) {
		g := int(asInt64(frame.pop()))
		if g < 0 {
			fail(ErrDomain, "grouping size cannot be negative")
		}
		e.cfg.IntegerGrouping = g
	})
	e.register("set_decimal_grouping", 1, func(e *Evaluator, frame *ValueList, _ bool) {
		g := int(asInt64(frame.pop()))
		if g < 0 {
			fail(ErrDomain, "grouping size cannot be negative")
		}
		e.cfg.DecimalGrouping = g
	})
	e.register("set_leading_zero", 1, func(e *Evaluator, frame *ValueList, _ bool) {
		e.cfg.LeadingZero = asInt64(frame.pop()) != 0
	})
	e.register("set_comma", 1, func(e *Evaluator, frame *ValueList, _ bool) {
		on := asInt64(frame.pop()) != 0
		e.cfg.Comma = on
		if on {
			e.cfg.IntegerGrouping = 3
			e.cfg.IntegerDelimiter = ","
		}
	})
}

// unit terms attach a dimension to the number beneath them

var baseUnits = []string{
	"meter", "second", "gram", "kelvin", "ampere", "candela", "mole", "liter",
}

func (e *Evaluator) registerUnitOperators() {
	for _, unit := range baseUnits {
		unit := unit
		e.register(unit, 1, oneArg(func(e *Evaluator, v Value) Value {
			prec := e.cfg.prec()
			if v.Tag == VTMeasure {
				return collapseMeasure(v.Data.(*Measurement).Mul(
					NewMeasurement(newFloat(prec).SetInt64(1), unit), prec))
			}
			return MeasureVal(NewMeasurement(newFloat(prec).Set(asNum(v)), unit))
		}))
	}

	e.register("simplify", 1, oneArg(func(e *Evaluator, v Value) Value {
		if v.Tag != VTMeasure {
			return v
		}
		return collapseMeasure(v.Data.(*Measurement).clone(e.cfg.prec()))
	}))
}

// stack modifiers

func (e *Evaluator) registerModifierOperators() {
	e.registerModifier("dup", 2, func(e *Evaluator, frame *ValueList, _ bool) {
		count := asInt64(frame.pop())
		if count < 1 {
			fail(ErrDomain, "dup count must be positive")
		}
		v := frame.pop()
		if v.Tag == VTList {
			out := newList()
			for _, item := range v.List().Items {
				for i := int64(0); i < count; i++ {
					out.push(item)
				}
			}
			frame.push(ListVal(out))
			return
		}
		for i := int64(0); i < count; i++ {
			frame.push(v)
		}
	})

	e.registerModifier("duplicate_operator", 1, func(e *Evaluator, frame *ValueList, _ bool) {
		count := asInt64(frame.pop())
		if count < 1 {
			fail(ErrDomain, "duplicate_operator count must be positive")
		}
		if e.duplicateCount != 0 {
			fail(ErrMalformed, "duplicate_operator is already armed")
		}
		if frame.len() > 0 && frame.peek().Tag == VTList {
			fail(ErrMalformed, "duplicate_operator cannot apply to a list argument")
		}
		e.duplicateCount = int(count)
	})

	e.registerModifier("previous", 1, func(e *Evaluator, frame *ValueList, _ bool) {
		frame.push(frame.peek())
	})

	e.registerModifier("unlist", 1, func(e *Evaluator, frame *ValueList, _ bool) {
		seq := asSequence(frame.pop())
		for item, ok := seq.Next(); ok; item, ok = seq.Next() {
			frame.push(item)
		}
	})

	e.registerModifier("echo", 1, func(e *Evaluator, frame *ValueList, _ bool) {
		e.echoed = append(e.echoed, frame.pop())
	})

	e.registerModifier("set", 2, func(e *Evaluator, frame *ValueList, _ bool) {
		name := asStr(frame.pop())
		if name == "" {
			fail(ErrDomain, "variable name cannot be empty")
		}
		e.vars[name] = frame.pop()
	})
}
