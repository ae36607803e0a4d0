// value.go
//
// The runtime value model for the evaluator: a closed tagged union carried on
// the operand stack. Every stack slot is a Value; the Tag discriminant says
// which case is active and Data holds the Go payload appropriate for it.
//
// Cases:
//   - VTNum         *big.Float arbitrary-precision real; nil Data is the
//     not-a-number sentinel produced when an evaluation aborts.
//   - VTComplex     *ComplexVal with independent real/imaginary parts.
//   - VTMeasure     *Measurement, a magnitude with a unit-exponent map.
//   - VTStr         string (quoted literals, variable names for set).
//   - VTList        *ValueList, a nested stack frame turned operand.
//   - VTGenerator   *Generator, a lazy single-owner sequence.
//   - VTFunc        *FuncLit, an uninterpreted user-function body.
//
// Formatting of each case lives in format.go; list operators handle every
// case explicitly rather than type-sniffing at call sites.
package rpn

import (
	"fmt"
	"math/big"
)

type ValueTag int

const (
	VTNum       ValueTag = iota // *big.Float (nil = NaN sentinel)
	VTComplex                   // *ComplexVal
	VTMeasure                   // *Measurement
	VTStr                       // string
	VTList                      // *ValueList
	VTGenerator                 // *Generator
	VTFunc                      // *FuncLit
)

// Value is the universal operand carrier. Annot propagates user-facing
// context (currently only error notes on the NaN sentinel).
type Value struct {
	Tag   ValueTag
	Data  interface{}
	Annot string
}

// ValueList is an ordered sequence of operands. It doubles as a stack frame:
// the evaluator keeps a stack of *ValueList and appends into the innermost
// open frame.
type ValueList struct {
	Items []Value
}

// ComplexVal holds independent real and imaginary parts at session precision.
type ComplexVal struct {
	Re *big.Float
	Im *big.Float
}

func Num(f *big.Float) Value          { return Value{Tag: VTNum, Data: f} }
func Str(s string) Value              { return Value{Tag: VTStr, Data: s} }
func ListVal(l *ValueList) Value      { return Value{Tag: VTList, Data: l} }
func GenVal(g *Generator) Value       { return Value{Tag: VTGenerator, Data: g} }
func FuncVal(f *FuncLit) Value        { return Value{Tag: VTFunc, Data: f} }
func MeasureVal(m *Measurement) Value { return Value{Tag: VTMeasure, Data: m} }

func ComplexNum(re, im *big.Float) Value {
	return Value{Tag: VTComplex, Data: &ComplexVal{Re: re, Im: im}}
}

// NumInt builds a number value from an int64 at the given precision.
func NumInt(n int64, prec uint) Value {
	return Num(new(big.Float).SetPrec(prec).SetInt64(n))
}

// NaN is the sentinel that replaces the whole result when evaluation aborts.
func NaN() Value { return Value{Tag: VTNum, Data: (*big.Float)(nil)} }

func (v Value) IsNaN() bool {
	if v.Tag != VTNum {
		return false
	}
	f, _ := v.Data.(*big.Float)
	return f == nil
}

// Float returns the real payload, or nil for NaN and non-numeric values.
func (v Value) Float() *big.Float {
	if v.Tag != VTNum || v.Data == nil {
		return nil
	}
	return v.Data.(*big.Float)
}

func (v Value) List() *ValueList {
	if v.Tag != VTList {
		return nil
	}
	return v.Data.(*ValueList)
}

func (v Value) Generator() *Generator {
	if v.Tag != VTGenerator {
		return nil
	}
	return v.Data.(*Generator)
}

func (v Value) String() string {
	switch v.Tag {
	case VTNum:
		if v.IsNaN() {
			return "nan"
		}
		return v.Data.(*big.Float).Text('g', 10)
	case VTComplex:
		c := v.Data.(*ComplexVal)
		return fmt.Sprintf("(%s + %s j)", c.Re.Text('g', 10), c.Im.Text('g', 10))
	case VTMeasure:
		m := v.Data.(*Measurement)
		return fmt.Sprintf("%s %v", m.Mag.Text('g', 10), m.Units)
	case VTStr:
		return fmt.Sprintf("%q", v.Data.(string))
	case VTList:
		return fmt.Sprintf("<list len=%d>", len(v.Data.(*ValueList).Items))
	case VTGenerator:
		return fmt.Sprintf("<generator count=%d>", v.Data.(*Generator).Count())
	case VTFunc:
		return fmt.Sprintf("<function %v>", v.Data.(*FuncLit).Terms)
	default:
		return "<unknown>"
	}
}

func newList(items ...Value) *ValueList {
	l := &ValueList{}
	l.Items = append(l.Items, items...)
	return l
}

func (l *ValueList) push(v Value) { l.Items = append(l.Items, v) }

func (l *ValueList) pop() Value {
	if len(l.Items) == 0 {
		fail(ErrArity, "operand stack is empty")
	}
	v := l.Items[len(l.Items)-1]
	l.Items = l.Items[:len(l.Items)-1]
	return v
}

func (l *ValueList) peek() Value {
	if len(l.Items) == 0 {
		fail(ErrArity, "operand stack is empty")
	}
	return l.Items[len(l.Items)-1]
}

func (l *ValueList) len() int { return len(l.Items) }

// asSequence adapts a list or generator operand to a common iteration
// interface. Lists iterate over a snapshot; generators are consumed.
func asSequence(v Value) *Generator {
	switch v.Tag {
	case VTList:
		return FromSlice(v.List().Items)
	case VTGenerator:
		return v.Generator()
	default:
		return FromSlice([]Value{v})
	}
}
