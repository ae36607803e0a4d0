// evaluator.go
//
// The term evaluator. Evaluate consumes a tokenized term stream against an
// explicit stack of list frames, dispatching each term to a literal push, a
// stack-structure modifier, or an operator from the registered table.
//
// Nesting state lives in the frame stack itself: "[" opens a new frame that
// all subsequent terms append into, "]" closes it back into the enclosing
// frame as a single list operand. Operator lists ("{ ... }") and function
// definitions (lambda ... eval) are separate, mutually exclusive accumulation
// modes tracked by flags on the evaluator.
//
// Any failure inside the loop unwinds as an evalErr panic and is recovered at
// the Evaluate boundary, where it becomes an EvalError carrying the index of
// the term being processed. The partial result is replaced by the single NaN
// sentinel.
package rpn

import (
	"strings"
	"sync/atomic"
)

type Evaluator struct {
	cfg     *Config
	ops     map[string]*operatorInfo
	aliases map[string]string
	vars    map[string]Value
	funcs   map[string]*FuncLit

	// Per-evaluation state, reset by Evaluate.
	stack            []*ValueList
	creatingFunction bool
	pendingFunc      *FuncLit
	funcArgs         []Value
	inOperatorList   bool
	operatorListBase int
	duplicateCount   int
	echoed           []Value

	interrupted atomic.Bool
}

func NewEvaluator(cfg *Config) *Evaluator {
	e := &Evaluator{
		cfg:     cfg,
		ops:     map[string]*operatorInfo{},
		aliases: map[string]string{},
		vars:    map[string]Value{},
		funcs:   map[string]*FuncLit{},
	}
	e.registerOperators()
	e.registerAliases()
	return e
}

// SetAlias installs a single-level rewrite from name to target. Aliases are
// substituted once per term, before classification; an alias target is never
// re-expanded.
func (e *Evaluator) SetAlias(name, target string) { e.aliases[name] = target }

// Interrupt requests that evaluation abort at the next term boundary. The
// request is consumed by the evaluation that observes it. Safe to call from
// another goroutine (a signal handler).
func (e *Evaluator) Interrupt() { e.interrupted.Store(true) }

// Config exposes the session configuration for front-end option handling.
func (e *Evaluator) Config() *Config { return e.cfg }

// functionOperators close a function definition and consume the function.
var functionOperators = map[string]bool{
	"eval":   true,
	"eval2":  true,
	"eval3":  true,
	"filter": true,
	"limit":  true,
	"define": true,
}

// Evaluate runs the term stream to completion and returns the final stack.
// On any failure the stream is abandoned, the result is the single NaN
// sentinel, and the error identifies the offending term.
func (e *Evaluator) Evaluate(terms []string) (result *ValueList, err error) {
	e.stack = []*ValueList{newList()}
	e.creatingFunction = false
	e.pendingFunc = nil
	e.inOperatorList = false
	e.duplicateCount = 0
	e.echoed = nil

	index := 0
	term := ""

	defer func() {
		if r := recover(); r != nil {
			ee, ok := r.(evalErr)
			if !ok {
				panic(r)
			}
			result = newList(NaN())
			err = &EvalError{Kind: ee.kind, Index: index, Term: term, Msg: ee.msg}
		}
	}()

	for i, raw := range terms {
		index, term = i+1, raw
		if e.interrupted.Swap(false) {
			fail(ErrInterrupted, "evaluation interrupted")
		}
		if target, ok := e.aliases[raw]; ok {
			term = target
		}
		e.evaluateTerm(term, i == len(terms)-1)
	}

	if e.creatingFunction {
		fail(ErrMalformed, "unexpected end of input in function definition")
	}
	if e.inOperatorList {
		fail(ErrMalformed, "unexpected end of input in operator list")
	}
	if len(e.stack) > 1 {
		fail(ErrMalformed, "missing one or more ]s")
	}

	result = e.stack[0]
	if len(e.echoed) > 0 {
		wrapped := newList(e.echoed...)
		wrapped.Items = append(wrapped.Items, result.Items...)
		result = wrapped
	}
	return result, nil
}

func (e *Evaluator) currentFrame() *ValueList { return e.stack[len(e.stack)-1] }

func (e *Evaluator) evaluateTerm(term string, isLast bool) {
	if e.creatingFunction {
		if !functionOperators[term] {
			e.pendingFunc.AddTerm(term)
			return
		}
		e.creatingFunction = false
		e.pendingFunc = nil
	}

	switch term {
	case "[":
		e.openList()
		return
	case "]":
		e.closeList()
		return
	case "{":
		e.openOperatorList()
		return
	case "}":
		e.closeOperatorList()
		return
	case "lambda":
		e.startFunction()
		return
	case "x", "y", "z":
		e.pushFunctionArg(term)
		return
	}

	frame := e.currentFrame()

	if op, ok := e.ops[term]; ok {
		if e.inOperatorList {
			e.applyInOperatorList(term, op)
			return
		}
		e.applyOperator(term, op, frame, isLast)
		return
	}

	if e.inOperatorList {
		failf(ErrMalformed, "'%s':  only operators are allowed inside an operator list", term)
	}

	if strings.HasPrefix(term, "$") && len(term) > 1 {
		v, ok := e.vars[term[1:]]
		if !ok {
			failf(ErrUndefined, "undefined user variable '%s'", term[1:])
		}
		frame.push(v)
		return
	}
	if strings.HasPrefix(term, "@") && len(term) > 1 {
		f, ok := e.funcs[term[1:]]
		if !ok {
			failf(ErrUndefined, "undefined user function '%s'", term[1:])
		}
		frame.push(e.callFunction(f, frame))
		return
	}

	v, err := ParseInputValue(e.cfg, term)
	if err != nil {
		failf(ErrUndefined, "'%s' is not a number or operator", term)
	}
	frame.push(v)
}

func (e *Evaluator) openList() {
	if e.inOperatorList {
		fail(ErrMalformed, "lists are not allowed inside an operator list")
	}
	e.stack = append(e.stack, newList())
}

func (e *Evaluator) closeList() {
	if len(e.stack) == 1 {
		fail(ErrMalformed, "too many ]s")
	}
	closed := e.currentFrame()
	e.stack = e.stack[:len(e.stack)-1]
	e.currentFrame().push(ListVal(closed))
}

// openOperatorList records where the shared operand sits; every operator
// until the matching "}" is applied to that operand without popping it.
func (e *Evaluator) openOperatorList() {
	if e.inOperatorList {
		fail(ErrMalformed, "operator lists cannot be nested")
	}
	frame := e.currentFrame()
	if frame.len() == 0 {
		fail(ErrArity, "operator list requires an operand")
	}
	e.inOperatorList = true
	e.operatorListBase = frame.len() - 1
}

func (e *Evaluator) applyInOperatorList(name string, op *operatorInfo) {
	if op.arity != 1 {
		failf(ErrMalformed, "'%s':  operator list entries must take one argument", name)
	}
	frame := e.currentFrame()
	frame.push(frame.Items[e.operatorListBase])
	op.fn(e, frame, false)
}

// closeOperatorList removes the shared operand and repackages the applied
// results, still in left-to-right order, as a single list operand.
func (e *Evaluator) closeOperatorList() {
	if !e.inOperatorList {
		fail(ErrMalformed, "no operator list is open")
	}
	e.inOperatorList = false
	frame := e.currentFrame()
	results := append([]Value(nil), frame.Items[e.operatorListBase+1:]...)
	frame.Items = frame.Items[:e.operatorListBase]
	frame.push(ListVal(newList(results...)))
}

func (e *Evaluator) startFunction() {
	if e.creatingFunction {
		fail(ErrMalformed, "function definitions cannot be nested")
	}
	f := &FuncLit{}
	e.creatingFunction = true
	e.pendingFunc = f
	e.currentFrame().push(FuncVal(f))
}

func (e *Evaluator) pushFunctionArg(term string) {
	if e.funcArgs == nil {
		failf(ErrMalformed, "'%s' is only valid inside a function definition", term)
	}
	idx := int(term[0] - 'x')
	if idx >= len(e.funcArgs) {
		failf(ErrArity, "'%s' is not bound by this function call", term)
	}
	e.currentFrame().push(e.funcArgs[idx])
}

// applyOperator runs one registered operator, honoring an armed
// duplicate_operator counter by repeating the application.
func (e *Evaluator) applyOperator(name string, op *operatorInfo, frame *ValueList, isLast bool) {
	times := 1
	if e.duplicateCount > 0 && !op.modifier {
		times = e.duplicateCount
		e.duplicateCount = 0
	}
	for i := 0; i < times; i++ {
		if frame.len() < op.arity {
			failf(ErrArity, "'%s' requires %d operands", name, op.arity)
		}
		op.fn(e, frame, isLast)
	}
}

// popFunction pops a function literal operand.
func popFunction(frame *ValueList) *FuncLit {
	v := frame.pop()
	if v.Tag != VTFunc {
		fail(ErrDomain, "expected a function")
	}
	return v.Data.(*FuncLit)
}

// callFunction pops the function's arguments off frame and replays its body
// in a fresh frame stack with x, y, z bound. The body runs under the same
// operator table, so failures unwind through the usual path.
func (e *Evaluator) callFunction(f *FuncLit, frame *ValueList) Value {
	n := f.ArgCount()
	if frame.len() < n {
		failf(ErrArity, "function requires %d arguments", n)
	}
	args := make([]Value, n)
	for i := n - 1; i >= 0; i-- {
		args[i] = frame.pop()
	}
	return e.applyFunction(f, args)
}

func (e *Evaluator) applyFunction(f *FuncLit, args []Value) Value {
	savedStack := e.stack
	savedArgs := e.funcArgs
	savedCreating := e.creatingFunction
	savedPending := e.pendingFunc
	defer func() {
		e.stack = savedStack
		e.funcArgs = savedArgs
		e.creatingFunction = savedCreating
		e.pendingFunc = savedPending
	}()

	e.stack = []*ValueList{newList()}
	e.funcArgs = args
	e.creatingFunction = false
	e.pendingFunc = nil

	for _, t := range f.Terms {
		if target, ok := e.aliases[t]; ok {
			t = target
		}
		e.evaluateTerm(t, false)
	}

	result := e.stack[0]
	if result.len() == 0 {
		fail(ErrArity, "function body produced no result")
	}
	return result.pop()
}
