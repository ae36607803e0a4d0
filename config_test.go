package rpn

import (
	"path/filepath"
	"testing"
)

func Test_Config_accuracy_never_lowers_precision(t *testing.T) {
	cfg := NewConfig()
	cfg.SetAccuracy(50)
	if cfg.Precision < 52 {
		t.Fatalf("raising accuracy to 50 should raise precision to at least 52, got %d", cfg.Precision)
	}

	before := cfg.Precision
	cfg.SetAccuracy(5)
	if cfg.Precision != before {
		t.Fatalf("lowering accuracy should not lower precision, got %d", cfg.Precision)
	}

	// Only the explicit setter may lower it.
	if err := cfg.SetPrecision(10); err != nil {
		t.Fatal(err)
	}
	if cfg.Precision != 10 {
		t.Fatalf("SetPrecision(10) should apply, got %d", cfg.Precision)
	}
	if err := cfg.SetPrecision(0); err == nil {
		t.Fatal("non-positive precision should be rejected")
	}
}

func Test_Config_output_radix_validation(t *testing.T) {
	cfg := NewConfig()
	for _, r := range []int{2, 10, 16, 62} {
		if err := cfg.SetOutputRadix(r); err != nil {
			t.Fatalf("radix %d should be accepted: %v", r, err)
		}
	}
	for _, r := range []int{0, 1, 63, -12, 100} {
		if err := cfg.SetOutputRadix(r); err == nil {
			t.Fatalf("radix %d should be rejected", r)
		}
	}
	for _, r := range []int{PhiBase, FibBase, FacBase, EBase, PiBase, Sqrt2Base} {
		if err := cfg.SetOutputRadix(r); err != nil {
			t.Fatalf("special radix %d should be accepted: %v", r, err)
		}
	}

	// A radix beyond the configured alphabet is rejected.
	cfg.Numerals = "01234567"
	if err := cfg.SetOutputRadix(16); err == nil {
		t.Fatal("radix larger than the numeral alphabet should be rejected")
	}
}

func Test_Config_radix_by_name(t *testing.T) {
	cases := map[string]int{
		"phi":   PhiBase,
		"fib":   FibBase,
		"e":     EBase,
		"pi":    PiBase,
		"sqrt2": Sqrt2Base,
	}
	for name, want := range cases {
		got, ok := RadixByName(name)
		if !ok || got != want {
			t.Fatalf("RadixByName(%q) = %d, %v; want %d", name, got, ok, want)
		}
	}
	if _, ok := RadixByName("tau"); ok {
		t.Fatal("unknown radix names should not resolve")
	}
}

func Test_Config_yaml_round_trip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rpnrc.yaml")

	cfg := NewConfig()
	cfg.Precision = 30
	cfg.IntegerGrouping = 3
	cfg.IntegerDelimiter = ","
	cfg.LeadingZero = true
	if err := cfg.SetOutputRadix(16); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Precision != 30 || loaded.OutputRadix != 16 ||
		loaded.IntegerGrouping != 3 || loaded.IntegerDelimiter != "," || !loaded.LeadingZero {
		t.Fatalf("round trip lost settings: %+v", loaded)
	}
}

func Test_Config_load_rejects_bad_precision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rpnrc.yaml")
	cfg := NewConfig()
	cfg.Precision = -5
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("non-positive precision in the config file should be rejected")
	}
}
