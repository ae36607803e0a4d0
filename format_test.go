package rpn

import (
	"math/big"
	"strings"
	"testing"
)

func fmtNum(t *testing.T, cfg *Config, f *big.Float) string {
	t.Helper()
	s, neg, err := FormatNumber(cfg, f)
	if err != nil {
		t.Fatalf("FormatNumber failed: %v", err)
	}
	if neg {
		s = "-" + s
	}
	return s
}

func Test_Format_plain_decimal(t *testing.T) {
	cfg := NewConfig()
	if got := fmtNum(t, cfg, big.NewFloat(55)); got != "55" {
		t.Fatalf("expected \"55\", got %q", got)
	}
	if got := fmtNum(t, cfg, big.NewFloat(0.5)); got != "0.5" {
		t.Fatalf("trailing zeros should be stripped, got %q", got)
	}
	if got := fmtNum(t, cfg, big.NewFloat(-42)); got != "-42" {
		t.Fatalf("expected \"-42\", got %q", got)
	}
}

func Test_Format_idempotent(t *testing.T) {
	cfg := NewConfig()
	cfg.IntegerGrouping = 3
	f := big.NewFloat(1234567.25)
	first := fmtNum(t, cfg, f)
	second := fmtNum(t, cfg, f)
	if first != second {
		t.Fatalf("formatting is not idempotent: %q vs %q", first, second)
	}
}

func Test_Format_integer_grouping(t *testing.T) {
	cfg := NewConfig()
	cfg.IntegerGrouping = 3
	got := fmtNum(t, cfg, big.NewFloat(1234567))
	if got != "1 234 567" {
		t.Fatalf("expected \"1 234 567\", got %q", got)
	}

	// Removing the delimiter must reproduce the ungrouped digits exactly.
	if strings.ReplaceAll(got, " ", "") != "1234567" {
		t.Fatalf("grouping altered the digits: %q", got)
	}

	cfg.IntegerDelimiter = ","
	if got := fmtNum(t, cfg, big.NewFloat(1234567)); got != "1,234,567" {
		t.Fatalf("expected \"1,234,567\", got %q", got)
	}
}

func Test_Format_leading_zero_padding(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.SetOutputRadix(16); err != nil {
		t.Fatal(err)
	}
	cfg.IntegerGrouping = 4
	cfg.LeadingZero = true
	got := fmtNum(t, cfg, big.NewFloat(0x12345))
	if got != "0001 2345" {
		t.Fatalf("expected \"0001 2345\", got %q", got)
	}
}

func Test_Format_hex_output(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.SetOutputRadix(16); err != nil {
		t.Fatal(err)
	}
	if got := fmtNum(t, cfg, big.NewFloat(255)); got != "ff" {
		t.Fatalf("expected \"ff\", got %q", got)
	}
}

func Test_Format_fib_radix(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.SetOutputRadix(FibBase); err != nil {
		t.Fatal(err)
	}
	if got := fmtNum(t, cfg, big.NewFloat(4)); got != "101" {
		t.Fatalf("expected \"101\", got %q", got)
	}
}

func Test_Format_complex_composition(t *testing.T) {
	cfg := NewConfig()
	prec := cfg.prec()

	v := ComplexNum(newFloat(prec).SetInt64(3), newFloat(prec).SetInt64(4))
	got, err := FormatOutput(cfg, v)
	if err != nil {
		t.Fatal(err)
	}
	if got != "( 3 + 4j )" {
		t.Fatalf("expected \"( 3 + 4j )\", got %q", got)
	}

	v = ComplexNum(newFloat(prec).SetInt64(3), newFloat(prec).SetInt64(-4))
	got, err = FormatOutput(cfg, v)
	if err != nil {
		t.Fatal(err)
	}
	if got != "( 3 - 4j )" {
		t.Fatalf("expected \"( 3 - 4j )\", got %q", got)
	}

	// Zero imaginary part formats as a plain real.
	v = ComplexNum(newFloat(prec).SetInt64(3), newFloat(prec))
	got, err = FormatOutput(cfg, v)
	if err != nil {
		t.Fatal(err)
	}
	if got != "3" {
		t.Fatalf("expected \"3\", got %q", got)
	}
}

func Test_Format_nan_sentinel(t *testing.T) {
	got, err := FormatOutput(NewConfig(), NaN())
	if err != nil || got != "nan" {
		t.Fatalf("NaN should format as \"nan\", got %q, %v", got, err)
	}
}

func Test_Format_measurement(t *testing.T) {
	cfg := NewConfig()
	m := NewMeasurement(newFloat(cfg.prec()).SetInt64(5), "meter")
	got, err := FormatOutput(cfg, MeasureVal(m))
	if err != nil {
		t.Fatal(err)
	}
	if got != "5 meter" {
		t.Fatalf("expected \"5 meter\", got %q", got)
	}
}

func Test_Format_list_output(t *testing.T) {
	cfg := NewConfig()
	cfg.ListFormatLevel = 0
	prec := cfg.prec()
	v := ListVal(newList(NumInt(1, prec), NumInt(2, prec), NumInt(3, prec)))
	got, err := FormatOutput(cfg, v)
	if err != nil {
		t.Fatal(err)
	}
	if got != "[ 1, 2, 3 ]" {
		t.Fatalf("expected \"[ 1, 2, 3 ]\", got %q", got)
	}
}
