// measurement.go
//
// Dimensioned values: a magnitude plus a map from unit symbol to a signed
// integer exponent. Arithmetic that touches at least one measurement yields a
// measurement; multiplication and division combine exponent maps, while
// addition and subtraction require identical units. A measurement whose unit
// map simplifies to nothing collapses back to a bare number when an operator
// result is pushed (see operators.go).
//
// The unit conversion database is out of scope; units enter an expression
// only through explicit unit terms like "2 meter".
package rpn

import (
	"math/big"
	"sort"
	"strconv"
	"strings"
)

type Measurement struct {
	Mag   *big.Float
	Units map[string]int
}

func NewMeasurement(mag *big.Float, unit string) *Measurement {
	return &Measurement{Mag: mag, Units: map[string]int{unit: 1}}
}

// Simplify drops zero exponents and reports whether any units remain.
func (m *Measurement) Simplify() bool {
	for u, e := range m.Units {
		if e == 0 {
			delete(m.Units, u)
		}
	}
	return len(m.Units) > 0
}

func (m *Measurement) sameUnits(o *Measurement) bool {
	if len(m.Units) != len(o.Units) {
		return false
	}
	for u, e := range m.Units {
		if o.Units[u] != e {
			return false
		}
	}
	return true
}

func (m *Measurement) clone(prec uint) *Measurement {
	units := make(map[string]int, len(m.Units))
	for u, e := range m.Units {
		units[u] = e
	}
	return &Measurement{Mag: newFloat(prec).Set(m.Mag), Units: units}
}

// Add requires matching units; there is no conversion table to bridge them.
func (m *Measurement) Add(o *Measurement, prec uint) *Measurement {
	if !m.sameUnits(o) {
		fail(ErrDomain, "measurements have incompatible units")
	}
	r := m.clone(prec)
	r.Mag.Add(r.Mag, o.Mag)
	return r
}

func (m *Measurement) Sub(o *Measurement, prec uint) *Measurement {
	if !m.sameUnits(o) {
		fail(ErrDomain, "measurements have incompatible units")
	}
	r := m.clone(prec)
	r.Mag.Sub(r.Mag, o.Mag)
	return r
}

func (m *Measurement) Mul(o *Measurement, prec uint) *Measurement {
	r := m.clone(prec)
	r.Mag.Mul(r.Mag, o.Mag)
	for u, e := range o.Units {
		r.Units[u] += e
	}
	return r
}

func (m *Measurement) Div(o *Measurement, prec uint) *Measurement {
	if o.Mag.Sign() == 0 {
		fail(ErrArithmetic, "division by zero")
	}
	r := m.clone(prec)
	r.Mag.Quo(r.Mag, o.Mag)
	for u, e := range o.Units {
		r.Units[u] -= e
	}
	return r
}

// PowInt raises the magnitude and scales every unit exponent.
func (m *Measurement) PowInt(n int64, prec uint) *Measurement {
	r := m.clone(prec)
	r.Mag = powIntBig(m.Mag, n, prec)
	for u := range r.Units {
		r.Units[u] *= int(n)
	}
	return r
}

// scalarMeasurement wraps a bare number as a dimensionless measurement so
// mixed arithmetic can share one code path.
func scalarMeasurement(f *big.Float) *Measurement {
	return &Measurement{Mag: f, Units: map[string]int{}}
}

// FormatUnits renders "meter^2 second per kelvin" style unit suffixes:
// positive exponents first, then negatives after "per" with their carets.
func (m *Measurement) FormatUnits() string {
	names := make([]string, 0, len(m.Units))
	for u := range m.Units {
		names = append(names, u)
	}
	sort.Strings(names)

	var pos, neg []string
	for _, u := range names {
		e := m.Units[u]
		switch {
		case e > 1:
			pos = append(pos, u+"^"+strconv.Itoa(e))
		case e == 1:
			pos = append(pos, u)
		case e == -1:
			neg = append(neg, u)
		case e < -1:
			neg = append(neg, u+"^"+strconv.Itoa(-e))
		}
	}

	out := strings.Join(pos, " ")
	if len(neg) > 0 {
		if out != "" {
			out += " "
		}
		out += "per " + strings.Join(neg, " ")
	}
	return out
}
