package ll

import (
	"fmt"
	"strings"

	"github.com/npillmayer/automata/grammar"
)

// ParseStep is one configuration of the predictive parser: the stack
// (top first), the remaining input, and the action taken from here.
type ParseStep struct {
	Stack  []string
	Input  []string
	Action string
}

func (s ParseStep) String() string {
	return fmt.Sprintf("[%s]  %s  %s", strings.Join(s.Stack, " "), strings.Join(s.Input, " "), s.Action)
}

// ParseResult is the outcome of a predictive parse together with the full
// step trace, including the failing step on rejection.
type ParseResult struct {
	Accepted bool
	Reason   string
	Steps    []ParseStep
}

// Tokenize splits a whitespace-separated sentence into terminals,
// rejecting tokens the grammar does not know.
func Tokenize(g *grammar.Grammar, input string) ([]string, error) {
	var tokens []string
	for _, tok := range strings.Fields(input) {
		if !g.IsTerminal(tok) {
			return nil, fmt.Errorf("token %q is not a terminal of grammar %q", tok, g.Name)
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// Parse runs the table-driven predictive parser over tokens. The stack
// starts as [Start $]; terminals on top must match the lookahead,
// non-terminals are expanded by table lookup. Parsing fails on a missing
// table entry or a terminal mismatch; tables with conflicts still parse,
// using the last-write-wins entries.
func (tbl *Table) Parse(tokens []string) *ParseResult {
	g := tbl.Grammar
	res := &ParseResult{}
	input := append(append([]string{}, tokens...), grammar.EndMark)
	stack := []string{g.Start, grammar.EndMark}
	step := func(action string) {
		res.Steps = append(res.Steps, ParseStep{
			Stack:  append([]string{}, stack...),
			Input:  append([]string{}, input...),
			Action: action,
		})
	}
	for {
		top, la := stack[0], input[0]
		if top == grammar.EndMark {
			if la == grammar.EndMark {
				step("accept")
				res.Accepted = true
				return res
			}
			res.Reason = fmt.Sprintf("stack exhausted with input %q remaining", strings.Join(input[:len(input)-1], " "))
			step("error: " + res.Reason)
			return res
		}
		if g.IsTerminal(top) {
			if top != la {
				res.Reason = fmt.Sprintf("expected %q, found %q", top, la)
				step("error: " + res.Reason)
				return res
			}
			step("match " + top)
			stack = stack[1:]
			input = input[1:]
			continue
		}
		p, ok := tbl.Lookup(top, la)
		if !ok {
			res.Reason = fmt.Sprintf("no production for %s with lookahead %q", top, la)
			step("error: " + res.Reason)
			return res
		}
		step("expand " + p.String())
		stack = append(append([]string{}, p.RHS...), stack[1:]...)
	}
}
