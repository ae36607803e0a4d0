package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	rpn "github.com/ConceptJunkie/rpn-sub006"
)

const (
	appName     = "rpn"
	historyFile = ".rpn_history"
)

var banner = fmt.Sprintf("rpn %s, an arbitrary-precision RPN calculator\nCtrl+C interrupts the current calculation, Ctrl+D exits. Type 'exit' or 'quit' to exit.", rpn.Version)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	fs := flag.NewFlagSet(appName, flag.ExitOnError)

	accuracy := fs.Int("a", -1, "output accuracy in decimal places (-1 for full precision)")
	inputRadix := fs.Int("b", 0, "input radix (2 to 62)")
	comma := fs.Bool("c", false, "group integer output with commas")
	decimalGrouping := fs.Int("d", 0, "decimal digit grouping size")
	integerGrouping := fs.Int("g", 0, "integer digit grouping size")
	numerals := fs.String("n", "", "numeral alphabet for base conversion")
	octal := fs.Bool("o", false, "octal output (radix 8, grouping 3, leading zeros)")
	precision := fs.Int("p", 0, "working precision in decimal digits")
	outputRadix := fs.String("r", "", "output radix (2 to 62, or phi, fib, e, pi, sqrt2)")
	hex := fs.Bool("x", false, "hexadecimal output (radix 16, grouping 4, leading zeros)")
	leadingZero := fs.Bool("z", false, "pad the leading integer group with zeros")
	configPath := fs.String("config", defaultConfigPath(), "configuration file")

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	cfg, err := rpn.LoadConfig(*configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, *configPath, err)
			os.Exit(1)
		}
		cfg = rpn.NewConfig()
	}

	if *precision > 0 {
		if err := cfg.SetPrecision(*precision); err != nil {
			fatalf("%v", err)
		}
	}
	if *accuracy != -1 {
		cfg.SetAccuracy(*accuracy)
	}
	if *inputRadix != 0 {
		cfg.InputRadix = *inputRadix
	}
	if *numerals != "" {
		cfg.Numerals = *numerals
	}
	if *outputRadix != "" {
		if err := setOutputRadix(cfg, *outputRadix); err != nil {
			fatalf("%v", err)
		}
	}
	if *hex {
		if err := cfg.SetOutputRadix(16); err != nil {
			fatalf("%v", err)
		}
		cfg.IntegerGrouping = 4
		cfg.LeadingZero = true
	}
	if *octal {
		if err := cfg.SetOutputRadix(8); err != nil {
			fatalf("%v", err)
		}
		cfg.IntegerGrouping = 3
		cfg.LeadingZero = true
	}
	if *integerGrouping > 0 {
		cfg.IntegerGrouping = *integerGrouping
	}
	if *decimalGrouping > 0 {
		cfg.DecimalGrouping = *decimalGrouping
	}
	if *comma {
		cfg.Comma = true
		cfg.IntegerGrouping = 3
		cfg.IntegerDelimiter = ","
	}
	if *leadingZero {
		cfg.LeadingZero = true
	}

	ev := rpn.NewEvaluator(cfg)

	if fs.NArg() > 0 {
		os.Exit(runOnce(ev, fs.Args()))
	}
	os.Exit(runRepl(ev))
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, appName+": "+format+"\n", args...)
	os.Exit(2)
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rpnrc"
	}
	return filepath.Join(home, ".rpnrc")
}

func setOutputRadix(cfg *rpn.Config, arg string) error {
	if r, ok := rpn.RadixByName(arg); ok {
		return cfg.SetOutputRadix(r)
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("invalid output radix %q", arg)
	}
	return cfg.SetOutputRadix(n)
}

func runOnce(ev *rpn.Evaluator, terms []string) int {
	result, err := ev.Evaluate(terms)
	if err != nil {
		fmt.Fprintln(os.Stderr, rpn.FormatErrorWithTerms(err, terms))
		return 1
	}
	for _, v := range result.Items {
		s, ferr := rpn.FormatOutput(ev.Config(), v)
		if ferr != nil {
			fmt.Fprintf(os.Stderr, "%s:  %v\n", appName, ferr)
			return 1
		}
		fmt.Println(s)
	}
	return 0
}

func runRepl(ev *rpn.Evaluator) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		for range sigc {
			// Interrupt the running evaluation; the prompt handles its own ^C.
			ev.Interrupt()
		}
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for n := 1; ; n++ {
		line, err := ln.Prompt(fmt.Sprintf("rpn (%d)> ", n))
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			n--
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			return 1
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			n--
			continue
		}
		if trimmed == "exit" || trimmed == "quit" {
			return 0
		}

		terms := strings.Fields(trimmed)
		result, eerr := ev.Evaluate(terms)
		if eerr != nil {
			fmt.Fprintln(os.Stderr, red(rpn.FormatErrorWithTerms(eerr, terms)))
			ln.AppendHistory(trimmed)
			continue
		}
		for _, v := range result.Items {
			s, ferr := rpn.FormatOutput(ev.Config(), v)
			if ferr != nil {
				fmt.Fprintln(os.Stderr, red(fmt.Sprintf("%s:  %v", appName, ferr)))
				continue
			}
			fmt.Println(blue(s))
		}
		ln.AppendHistory(trimmed)
	}
}
