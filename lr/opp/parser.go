package opp

import (
	"fmt"
	"strings"
)

// nonTermMark is the placeholder for reduced handles on the parse stack.
// Operator-precedence parsing cannot tell reduced non-terminals apart, so a
// single marker suffices.
const nonTermMark = "N"

// Step is one configuration of the operator-precedence parser: the stack
// (bottom first), the remaining input, and the action taken from here.
type Step struct {
	Stack  []string
	Input  []string
	Action string
}

func (s Step) String() string {
	return fmt.Sprintf("[%s]  %s  %s", strings.Join(s.Stack, " "), strings.Join(s.Input, " "), s.Action)
}

// ParseResult is the outcome of an operator-precedence parse together with
// the full step trace.
type ParseResult struct {
	Accepted bool
	Reason   string
	Steps    []Step
}

// Parse runs the operator-precedence parser over a whitespace-separated
// sentence of terminals. Shift/reduce decisions are driven by the relation
// between the topmost stack terminal and the lookahead: yields-precedence
// and equal-precedence shift, takes-precedence reduces the topmost handle.
func (tbl *Table) Parse(input string) (*ParseResult, error) {
	tokens := strings.Fields(input)
	for _, tok := range tokens {
		if !tbl.Grammar.IsTerminal(tok) {
			return nil, fmt.Errorf("token %q is not a terminal of grammar %q", tok, tbl.Grammar.Name)
		}
	}
	res := &ParseResult{}
	rest := append(tokens, EndMarker)
	stack := []string{EndMarker}
	step := func(action string) {
		res.Steps = append(res.Steps, Step{
			Stack:  append([]string{}, stack...),
			Input:  append([]string{}, rest...),
			Action: action,
		})
	}
	guard := 2 * (len(rest) + 1) * (len(rest) + 1)
	for ; guard > 0; guard-- {
		la := rest[0]
		if la == EndMarker && len(stack) == 2 && stack[1] == nonTermMark {
			step("accept")
			res.Accepted = true
			return res, nil
		}
		top := topmostTerminal(stack)
		switch tbl.Relation(top, la) {
		case Lower, Equal:
			step("shift " + la)
			stack = append(stack, la)
			rest = rest[1:]
		case Higher:
			handle, remaining, err := popHandle(tbl, stack)
			if err != nil {
				res.Reason = err.Error()
				step("error: " + res.Reason)
				return res, nil
			}
			if !tbl.matchesProduction(handle) {
				res.Reason = fmt.Sprintf("no production matches handle [%s]", strings.Join(handle, " "))
				step("error: " + res.Reason)
				return res, nil
			}
			step(fmt.Sprintf("reduce [%s]", strings.Join(handle, " ")))
			stack = append(remaining, nonTermMark)
		default:
			res.Reason = fmt.Sprintf("no precedence relation between %q and %q", top, la)
			step("error: " + res.Reason)
			return res, nil
		}
	}
	res.Reason = "parser did not terminate"
	step("error: " + res.Reason)
	return res, nil
}

// matchesProduction reports whether a handle corresponds to the RHS of some
// production, with the non-terminal marker standing in for any non-terminal.
func (tbl *Table) matchesProduction(handle []string) bool {
	for _, p := range tbl.Grammar.Productions {
		if len(p.RHS) != len(handle) {
			continue
		}
		match := true
		for i, sym := range p.RHS {
			if handle[i] == nonTermMark {
				if !tbl.Grammar.IsNonTerminal(sym) {
					match = false
					break
				}
			} else if handle[i] != sym {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// topmostTerminal finds the terminal closest to the top of the stack.
func topmostTerminal(stack []string) string {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] != nonTermMark {
			return stack[i]
		}
	}
	return EndMarker
}

// popHandle pops the topmost handle off the stack: elements are removed
// until the remaining topmost terminal yields precedence to the last
// terminal popped. A non-terminal left on top after that belongs to the
// handle as well, since operator grammars never stack non-terminals
// adjacently.
func popHandle(tbl *Table, stack []string) (handle []string, remaining []string, err error) {
	remaining = append([]string{}, stack...)
	lastTerm := ""
	for len(remaining) > 1 {
		top := remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
		handle = append([]string{top}, handle...)
		if top == nonTermMark {
			continue
		}
		lastTerm = top
		if tbl.Relation(topmostTerminal(remaining), lastTerm) == Lower {
			if len(remaining) > 1 && remaining[len(remaining)-1] == nonTermMark {
				handle = append([]string{nonTermMark}, handle...)
				remaining = remaining[:len(remaining)-1]
			}
			return handle, remaining, nil
		}
	}
	return nil, nil, fmt.Errorf("stack exhausted while popping a handle")
}
