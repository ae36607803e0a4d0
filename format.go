// format.go
//
// Turns evaluated values into display text. FormatNumber handles one real at
// a time: it picks the conversion family for the configured output radix
// (decimal, ordinary base, special base, irrational base, Fibonacci), then
// applies integer grouping, leading-zero padding, and decimal grouping.
// FormatOutput composes the cases of the value union on top of that: sign,
// "( a + b j )" complex composition, measurement unit suffixes, and
// recursive list rendering with the configured indentation level.
package rpn

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// FormatNumber converts the magnitude of x into a grouped digit string and
// reports whether x was negative. The sign is composed by the caller so
// complex formatting can place it correctly.
func FormatNumber(cfg *Config, x *big.Float) (string, bool, error) {
	negative := x.Sign() < 0
	ax := new(big.Float).SetPrec(cfg.prec()).Abs(x)

	var strInteger, strMantissa string
	var err error

	switch {
	case cfg.OutputRadix == FibBase:
		strInteger = ConvertToFibBase(floorInt(ax))

	case cfg.OutputRadix == PhiBase || cfg.OutputRadix == EBase ||
		cfg.OutputRadix == PiBase || cfg.OutputRadix == Sqrt2Base:
		strInteger, strMantissa, err = ConvertToNonintegerBase(
			ax, irrationalBase(cfg), cfg.Precision, cfg.Numerals)
		if err != nil {
			return "", false, err
		}

	case cfg.OutputRadix < 0:
		placeFn, ok := SpecialBaseFunction(cfg.OutputRadix)
		if !ok {
			return "", false, fmt.Errorf("unknown output radix %d", cfg.OutputRadix)
		}
		strInteger, err = ConvertToSpecialBase(floorInt(ax), placeFn, cfg.Numerals)
		if err != nil {
			return "", false, err
		}

	case cfg.OutputRadix != 10 || cfg.Numerals != DefaultNumerals:
		maxDigits := int(float64(cfg.Precision) / math.Log10(float64(cfg.OutputRadix)))
		var carry bool
		strMantissa, carry, err = ConvertFractionToBaseN(
			fracBig(ax), cfg.OutputRadix, maxDigits, cfg.Numerals, cfg.prec())
		if err != nil {
			return "", false, err
		}
		intPart := floorInt(ax)
		if carry {
			intPart.Add(intPart, big.NewInt(1))
		}
		strInteger, err = ConvertToBaseN(intPart, cfg.OutputRadix, cfg.Numerals)
		if err != nil {
			return "", false, err
		}

	default:
		strInteger, strMantissa = formatDecimal(cfg, ax)
	}

	intResult := groupInteger(strInteger, cfg.IntegerGrouping, cfg.IntegerDelimiter, cfg.LeadingZero)
	mantResult := groupMantissa(strMantissa, cfg.DecimalGrouping, cfg.DecimalDelimiter)

	result := intResult
	if mantResult != "" {
		result += "." + mantResult
	}
	return result, negative, nil
}

func irrationalBase(cfg *Config) *big.Float {
	switch cfg.OutputRadix {
	case PhiBase:
		return phiBig(cfg.prec())
	case EBase:
		return eBig(cfg.prec())
	case PiBase:
		return piBig(cfg.prec())
	default:
		return sqrt2Big(cfg.prec())
	}
}

// formatDecimal renders base-10 output bounded by the configured accuracy,
// with trailing zeros stripped from the fraction.
func formatDecimal(cfg *Config, ax *big.Float) (string, string) {
	decDigits := cfg.OutputAccuracy
	if decDigits < 0 {
		decDigits = cfg.Precision
	}
	s := ax.Text('f', decDigits)

	integer := s
	mantissa := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		integer = s[:dot]
		mantissa = strings.TrimRight(s[dot+1:], "0")
	}
	return integer, mantissa
}

// groupInteger inserts the delimiter every g digits from the right; with
// leadingZero set, the first group is padded out to a full width of g.
func groupInteger(s string, g int, delim string, leadingZero bool) string {
	if g <= 0 || s == "" {
		return s
	}

	first := len(s) % g
	var b strings.Builder
	if leadingZero && first > 0 {
		b.WriteString(strings.Repeat("0", g-first))
	}
	b.WriteString(s[:first])
	for i := first; i < len(s); i += g {
		if b.Len() > 0 {
			b.WriteString(delim)
		}
		b.WriteString(s[i : i+g])
	}
	return b.String()
}

// groupMantissa inserts the delimiter every g digits from the left.
func groupMantissa(s string, g int, delim string) string {
	if g <= 0 || s == "" {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i += g {
		if i > 0 {
			b.WriteString(delim)
		}
		end := i + g
		if end > len(s) {
			end = len(s)
		}
		b.WriteString(s[i:end])
	}
	return b.String()
}

// FormatOutput produces the final display text for any stack value.
func FormatOutput(cfg *Config, v Value) (string, error) {
	switch v.Tag {
	case VTNum:
		if v.IsNaN() {
			return "nan", nil
		}
		s, neg, err := FormatNumber(cfg, v.Float())
		if err != nil {
			return "", err
		}
		if neg {
			s = "-" + s
		}
		return s, nil

	case VTComplex:
		c := v.Data.(*ComplexVal)
		re, reNeg, err := FormatNumber(cfg, c.Re)
		if err != nil {
			return "", err
		}
		if reNeg {
			re = "-" + re
		}
		if c.Im.Sign() == 0 {
			return re, nil
		}
		im, imNeg, err := FormatNumber(cfg, c.Im)
		if err != nil {
			return "", err
		}
		sign := " + "
		if imNeg {
			sign = " - "
		}
		return "( " + re + sign + im + "j )", nil

	case VTMeasure:
		m := v.Data.(*Measurement)
		s, neg, err := FormatNumber(cfg, m.Mag)
		if err != nil {
			return "", err
		}
		if neg {
			s = "-" + s
		}
		if units := m.FormatUnits(); units != "" {
			s += " " + units
		}
		return s, nil

	case VTStr:
		return v.Data.(string), nil

	case VTList:
		return formatListOutput(cfg, v.List().Items, 0)

	case VTGenerator:
		return formatListOutput(cfg, v.Generator().Materialize(), 0)

	case VTFunc:
		return "", fmt.Errorf("unexpected end of input in function definition")

	default:
		return "", fmt.Errorf("unformattable value")
	}
}

func formatListOutput(cfg *Config, items []Value, level int) (string, error) {
	var b strings.Builder
	b.WriteString("[ ")

	for _, item := range items {
		if level < cfg.ListFormatLevel {
			b.WriteString("\n" + strings.Repeat(" ", (level+1)*4))
		} else if b.String() != "[ " {
			b.WriteString(", ")
		}

		var s string
		var err error
		if item.Tag == VTList {
			s, err = formatListOutput(cfg, item.List().Items, level+1)
		} else if item.Tag == VTGenerator {
			s, err = formatListOutput(cfg, item.Generator().Materialize(), level+1)
		} else {
			s, err = FormatOutput(cfg, item)
		}
		if err != nil {
			return "", err
		}
		b.WriteString(s)

		if level < cfg.ListFormatLevel {
			b.WriteString(",")
		}
	}

	if level < cfg.ListFormatLevel {
		b.WriteString("\n" + strings.Repeat(" ", level*4) + "]")
	} else {
		b.WriteString(" ]")
	}
	return b.String(), nil
}
