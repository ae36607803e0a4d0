// input.go
//
// ParseInputValue turns a single input term into a stack value. It recognizes
// quoted string literals, hex/binary/octal integer forms, imaginary literals
// with an 'i' or 'j' suffix, and plain decimal numbers, and it honors a
// non-decimal input radix for everything else. Grouping commas are stripped
// before parsing so formatted output can be pasted back in.
//
// Parsing a literal may raise the session precision: a number with more
// digits than the session carries would otherwise be silently truncated.
package rpn

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// ParseInputValue parses term under the session configuration. It returns an
// error, not a failure panic, because the evaluator treats an unparsable term
// as a candidate operator name before giving up.
func ParseInputValue(cfg *Config, term string) (Value, error) {
	if len(term) >= 2 && term[0] == '"' && term[len(term)-1] == '"' {
		return Str(term[1 : len(term)-1]), nil
	}

	t := strings.ReplaceAll(term, ",", "")
	if t == "" {
		return Value{}, fmt.Errorf("empty numeric literal")
	}

	negative := false
	switch t[0] {
	case '-':
		negative = true
		t = t[1:]
	case '+':
		t = t[1:]
	}
	if t == "" {
		return Value{}, fmt.Errorf("%q is not a number", term)
	}

	// Imaginary literal: a numeric body with an 'i' or 'j' suffix.
	if last := t[len(t)-1]; (last == 'i' || last == 'j') && len(t) > 1 {
		if im, err := parseReal(cfg, t[:len(t)-1]); err == nil {
			if negative {
				im.Neg(im)
			}
			return ComplexNum(newFloat(cfg.prec()), im), nil
		}
	}

	if strings.HasPrefix(t, "0x") || strings.HasPrefix(t, "0X") {
		return parseIntegerLiteral(cfg, t[2:], 16, negative, term)
	}
	if last := t[len(t)-1]; (last == 'b' || last == 'B') && isRadixDigits(t[:len(t)-1], 2) {
		return parseIntegerLiteral(cfg, t[:len(t)-1], 2, negative, term)
	}
	if len(t) > 1 && t[0] == '0' && isRadixDigits(t, 8) {
		return parseIntegerLiteral(cfg, t, 8, negative, term)
	}

	if cfg.InputRadix != 10 {
		f, err := parseInRadix(cfg, t)
		if err != nil {
			return Value{}, err
		}
		if negative {
			f.Neg(f)
		}
		return Num(f), nil
	}

	f, err := parseReal(cfg, t)
	if err != nil {
		return Value{}, err
	}
	if negative {
		f.Neg(f)
	}
	return Num(f), nil
}

// parseReal parses a plain decimal literal, bumping session precision when
// the literal carries more digits than the session does.
func parseReal(cfg *Config, t string) (*big.Float, error) {
	if !isDecimalLiteral(t) {
		return nil, fmt.Errorf("%q is not a number", t)
	}
	cfg.BumpPrecision(len(t) + 1)
	f, _, err := big.ParseFloat(t, 10, cfg.prec(), big.ToNearestEven)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", t)
	}
	return f, nil
}

func parseIntegerLiteral(cfg *Config, digits string, base int, negative bool, term string) (Value, error) {
	if digits == "" {
		return Value{}, fmt.Errorf("%q is not a number", term)
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return Value{}, fmt.Errorf("%q is not a base %d number", term, base)
	}
	cfg.BumpPrecision(decimalDigitsFor(len(digits), base))
	f := newFloat(cfg.prec()).SetInt(n)
	if negative {
		f.Neg(f)
	}
	return Num(f), nil
}

// parseInRadix parses an integer.fraction literal in the configured input
// radix using the session numeral alphabet.
func parseInRadix(cfg *Config, t string) (*big.Float, error) {
	intPart := t
	fracPart := ""
	if dot := strings.IndexByte(t, '.'); dot >= 0 {
		intPart = t[:dot]
		fracPart = t[dot+1:]
	}
	if intPart == "" {
		intPart = "0"
	}

	cfg.BumpPrecision(decimalDigitsFor(len(t), cfg.InputRadix))
	prec := cfg.prec()

	n, err := ParseBaseN(intPart, cfg.InputRadix, cfg.Numerals)
	if err != nil {
		return nil, err
	}
	result := newFloat(prec).SetInt(n)

	if fracPart != "" {
		radix := newFloat(prec).SetInt64(int64(cfg.InputRadix))
		place := newFloat(prec).SetInt64(1)
		for _, r := range fracPart {
			d := strings.IndexRune(cfg.Numerals[:cfg.InputRadix], r)
			if d < 0 {
				return nil, fmt.Errorf("%q is not a base %d digit", string(r), cfg.InputRadix)
			}
			place.Quo(place, radix)
			result.Add(result, newFloat(prec).Mul(place, newFloat(prec).SetInt64(int64(d))))
		}
	}
	return result, nil
}

func isRadixDigits(s string, base int) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r >= rune('0'+base) {
			return false
		}
	}
	return true
}

func isDecimalLiteral(s string) bool {
	seenDigit := false
	seenDot := false
	seenExp := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case c == '.' && !seenDot && !seenExp:
			seenDot = true
		case (c == 'e' || c == 'E') && seenDigit && !seenExp:
			seenExp = true
			if i+1 < len(s) && (s[i+1] == '+' || s[i+1] == '-') {
				i++
			}
		default:
			return false
		}
	}
	return seenDigit
}

// decimalDigitsFor estimates the decimal digit count equivalent to n digits
// of the given radix.
func decimalDigitsFor(n, radix int) int {
	return int(math.Ceil(float64(n)*math.Log10(float64(radix)))) + 1
}
