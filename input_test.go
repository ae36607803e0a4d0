package rpn

import "testing"

func parseNum(t *testing.T, cfg *Config, term string) Value {
	t.Helper()
	v, err := ParseInputValue(cfg, term)
	if err != nil {
		t.Fatalf("ParseInputValue(%q) failed: %v", term, err)
	}
	return v
}

func Test_Input_decimal(t *testing.T) {
	cfg := NewConfig()
	wantInt(t, parseNum(t, cfg, "42"), 42)
	wantInt(t, parseNum(t, cfg, "-17"), -17)
	wantInt(t, parseNum(t, cfg, "+8"), 8)

	v := parseNum(t, cfg, "2.5")
	got, _ := v.Float().Float64()
	if got != 2.5 {
		t.Fatalf("expected 2.5, got %v", got)
	}

	v = parseNum(t, cfg, "1e3")
	wantInt(t, v, 1000)
}

func Test_Input_grouping_commas_stripped(t *testing.T) {
	cfg := NewConfig()
	wantInt(t, parseNum(t, cfg, "1,234,567"), 1234567)
}

func Test_Input_hex_binary_octal(t *testing.T) {
	cfg := NewConfig()
	wantInt(t, parseNum(t, cfg, "0xff"), 255)
	wantInt(t, parseNum(t, cfg, "0XFF"), 255)
	wantInt(t, parseNum(t, cfg, "-0x10"), -16)
	wantInt(t, parseNum(t, cfg, "1010b"), 10)
	wantInt(t, parseNum(t, cfg, "0755"), 493)
}

func Test_Input_imaginary(t *testing.T) {
	cfg := NewConfig()
	v := parseNum(t, cfg, "4j")
	if v.Tag != VTComplex {
		t.Fatalf("expected a complex value, got %v", v)
	}
	c := v.Data.(*ComplexVal)
	im, _ := c.Im.Int64()
	if c.Re.Sign() != 0 || im != 4 {
		t.Fatalf("expected 0 + 4j, got %v", v)
	}

	v = parseNum(t, cfg, "-2.5i")
	c = v.Data.(*ComplexVal)
	imF, _ := c.Im.Float64()
	if imF != -2.5 {
		t.Fatalf("expected imaginary -2.5, got %v", imF)
	}
}

func Test_Input_quoted_string(t *testing.T) {
	cfg := NewConfig()
	v := parseNum(t, cfg, `"hello"`)
	if v.Tag != VTStr || v.Data.(string) != "hello" {
		t.Fatalf("expected string \"hello\", got %v", v)
	}
}

func Test_Input_precision_bump(t *testing.T) {
	cfg := NewConfig()
	before := cfg.Precision
	long := "3.14159265358979323846264338327950288419716939937510"
	parseNum(t, cfg, long)
	if cfg.Precision <= before {
		t.Fatalf("a long literal should raise precision above %d, got %d", before, cfg.Precision)
	}

	// Precision is sticky: a short literal afterwards does not lower it.
	raised := cfg.Precision
	parseNum(t, cfg, "2")
	if cfg.Precision != raised {
		t.Fatalf("precision should stay at %d, got %d", raised, cfg.Precision)
	}
}

func Test_Input_nondecimal_radix(t *testing.T) {
	cfg := NewConfig()
	cfg.InputRadix = 16
	wantInt(t, parseNum(t, cfg, "ff"), 255)

	v := parseNum(t, cfg, "a.8")
	got, _ := v.Float().Float64()
	if got != 10.5 {
		t.Fatalf("a.8 in base 16 should be 10.5, got %v", got)
	}

	if _, err := ParseInputValue(cfg, "zz"); err == nil {
		t.Fatal("digits beyond the input radix should be rejected")
	}
}

func Test_Input_garbage_rejected(t *testing.T) {
	cfg := NewConfig()
	for _, bad := range []string{"", "-", "abc", "1.2.3", "..", "0x"} {
		if _, err := ParseInputValue(cfg, bad); err == nil {
			t.Fatalf("%q should not parse", bad)
		}
	}
}
