// config.go
//
// Session configuration for the evaluator and formatter. A Config is built
// once per session and passed by reference; all mutation goes through the
// setter methods, which enforce the one non-obvious invariant: working
// precision is raised on demand (by literals or by accuracy requests) and is
// never lowered implicitly. SetPrecision is the only way to shrink it, and it
// is an explicit user action.
//
// Configs round-trip to YAML so an interactive session can persist its
// settings ("rpn -config ~/.rpnrc.yaml").
package rpn

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Output radix sentinels for the non-positional numeral systems. Positive
// values 2..62 select an ordinary base using the numeral alphabet.
const (
	PhiBase        = -1
	FibBase        = -2
	FacBase        = -3
	DoubleFacBase  = -4
	SquareBase     = -5
	LucasBase      = -6
	TriangularBase = -7
	PrimorialBase  = -8
	EBase          = -9
	PiBase         = -10
	Sqrt2Base      = -11

	maxSpecialBase = -11
)

const (
	DefaultNumerals = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	defaultPrecision       = 20
	defaultOutputAccuracy  = 12
	defaultInputRadix      = 10
	defaultOutputRadix     = 10
	defaultIntegerGrouping = 3
	defaultDecimalGrouping = 5
	defaultLineLength      = 80
	defaultListFormatLevel = 1
)

type Config struct {
	Precision        int    `yaml:"precision"`
	OutputAccuracy   int    `yaml:"output_accuracy"`
	InputRadix       int    `yaml:"input_radix"`
	OutputRadix      int    `yaml:"output_radix"`
	Numerals         string `yaml:"numerals"`
	IntegerGrouping  int    `yaml:"integer_grouping"`
	IntegerDelimiter string `yaml:"integer_delimiter"`
	DecimalGrouping  int    `yaml:"decimal_grouping"`
	DecimalDelimiter string `yaml:"decimal_delimiter"`
	LeadingZero      bool   `yaml:"leading_zero"`
	Comma            bool   `yaml:"comma"`
	ListFormatLevel  int    `yaml:"list_format_level"`
	LineLength       int    `yaml:"line_length"`
	OutputBaseDigits bool   `yaml:"output_base_digits"`
}

func NewConfig() *Config {
	return &Config{
		Precision:        defaultPrecision,
		OutputAccuracy:   defaultOutputAccuracy,
		InputRadix:       defaultInputRadix,
		OutputRadix:      defaultOutputRadix,
		Numerals:         DefaultNumerals,
		IntegerDelimiter: " ",
		DecimalDelimiter: " ",
		ListFormatLevel:  defaultListFormatLevel,
		LineLength:       defaultLineLength,
	}
}

// prec maps decimal significant digits to big.Float mantissa bits.
func (c *Config) prec() uint {
	return uint(math.Ceil(float64(c.Precision)*math.Log2(10))) + guardBits
}

// SetAccuracy sets the output accuracy and raises precision to keep at least
// two digits of headroom beyond it. Precision is never lowered here.
func (c *Config) SetAccuracy(n int) {
	c.OutputAccuracy = n
	if n >= 0 && c.Precision < n+2 {
		c.Precision = n + 2
	}
}

// BumpPrecision raises precision to at least n digits; it never lowers it.
// Literal parsing calls this when an input demands more digits than the
// session currently carries.
func (c *Config) BumpPrecision(n int) {
	if c.Precision < n {
		c.Precision = n
	}
}

// SetPrecision is the explicit user request and may lower precision.
func (c *Config) SetPrecision(n int) error {
	if n < 1 {
		return fmt.Errorf("precision must be positive")
	}
	c.Precision = n
	return nil
}

// SetOutputRadix accepts 2..62 or one of the special sentinels.
func (c *Config) SetOutputRadix(r int) error {
	if r >= 2 && r <= 62 {
		if r > len(c.Numerals) {
			return fmt.Errorf("numeral alphabet has only %d symbols, radix %d requested", len(c.Numerals), r)
		}
		c.OutputRadix = r
		return nil
	}
	if r <= PhiBase && r >= maxSpecialBase {
		c.OutputRadix = r
		return nil
	}
	return fmt.Errorf("output radix must be from 2 to 62, or a special base")
}

// RadixByName resolves the named non-integer bases used by the -r option.
func RadixByName(name string) (int, bool) {
	switch name {
	case "phi":
		return PhiBase, true
	case "fib":
		return FibBase, true
	case "e":
		return EBase, true
	case "pi":
		return PiBase, true
	case "sqrt2":
		return Sqrt2Base, true
	}
	return 0, false
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Numerals == "" {
		cfg.Numerals = DefaultNumerals
	}
	if cfg.Precision < 1 {
		return nil, fmt.Errorf("config %s: precision must be positive", path)
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
