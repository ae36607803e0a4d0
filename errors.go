// errors.go: user-facing error taxonomy and term-caret rendering
//
// Every failure inside the evaluator is one of a small set of kinds. Internal
// code signals a failure with fail(kind, msg), which panics with an evalErr;
// the panic is recovered at the Evaluate boundary and surfaced as an
// *EvalError annotated with the 1-based index of the offending term. Nothing
// is retried; a failure is terminal for the current evaluation and leaves the
// session (variables, configuration) untouched.
//
// FormatErrorWithTerms renders a caret snippet pointing at the offending term
// in the reassembled input line:
//
//	rpn:  error in arg 3:  operator 'add' requires 2 arguments
//
//	  4 add sum
//	        ^^^
//
// Kinds:
//   - ErrMalformed    unmatched brackets, nested operator lists, bad modifiers
//   - ErrUndefined    unknown operator or $/@ reference
//   - ErrArity        insufficient stack operands for a declared arity
//   - ErrDomain       operator-specific domain violations (negative base
//     conversion input, numeral alphabet too small, ...)
//   - ErrArithmetic   division by zero, overflow at current precision
//   - ErrInterrupted  user interrupt during a long computation
package rpn

import (
	"fmt"
	"strings"
)

type ErrKind int

const (
	ErrMalformed ErrKind = iota
	ErrUndefined
	ErrArity
	ErrDomain
	ErrArithmetic
	ErrInterrupted
)

func (k ErrKind) String() string {
	switch k {
	case ErrMalformed:
		return "malformed input"
	case ErrUndefined:
		return "undefined reference"
	case ErrArity:
		return "arity"
	case ErrDomain:
		return "domain"
	case ErrArithmetic:
		return "arithmetic"
	case ErrInterrupted:
		return "interrupted"
	default:
		return "error"
	}
}

// EvalError is the only error type Evaluate returns. Index is 1-based; 0
// means the failure could not be pinned to a single term.
type EvalError struct {
	Kind  ErrKind
	Index int
	Term  string
	Msg   string
}

func (e *EvalError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("rpn:  error in arg %d:  %s", e.Index, e.Msg)
	}
	return fmt.Sprintf("rpn:  error:  %s", e.Msg)
}

// evalErr is the internal panic payload raised by fail. It carries no
// position; the evaluator loop fills in the term index on recovery.
type evalErr struct {
	kind ErrKind
	msg  string
}

func fail(kind ErrKind, msg string) {
	panic(evalErr{kind: kind, msg: msg})
}

func failf(kind ErrKind, format string, args ...interface{}) {
	panic(evalErr{kind: kind, msg: fmt.Sprintf(format, args...)})
}

// FormatErrorWithTerms renders err with a caret snippet underneath the
// offending term of the original term stream. Other error values are
// returned as their plain Error() text.
func FormatErrorWithTerms(err error, terms []string) string {
	e, ok := err.(*EvalError)
	if !ok {
		return err.Error()
	}
	if e.Index < 1 || e.Index > len(terms) {
		return e.Error()
	}

	col := 0
	for i := 0; i < e.Index-1; i++ {
		col += len(terms[i]) + 1
	}
	width := len(terms[e.Index-1])
	if width < 1 {
		width = 1
	}

	var b strings.Builder
	b.WriteString(e.Error())
	b.WriteString("\n\n  ")
	b.WriteString(strings.Join(terms, " "))
	b.WriteString("\n  ")
	b.WriteString(strings.Repeat(" ", col))
	b.WriteString(strings.Repeat("^", width))
	return b.String()
}
