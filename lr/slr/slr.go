/*
Package slr provides a table-driven shift-reduce parser. Clients have to use
the tools of package lr to prepare the necessary parse tables. The parser
utilizes these tables to create a right derivation for a given input,
provided through a scanner interface.

The parser is agnostic of how the tables were constructed: SLR(1),
canonical LR(1) and LALR(1) tables all drive the same machine. It is
intended for small to moderate grammars, e.g. for configuration
input or small domain-specific languages. It is *not* intended for
full-fledged programming languages.

The main focus for this implementation is adaptability and on-the-fly usage.
Clients are able to construct the parse tables from a grammar and use the
parser directly, without a code-generation or compile step. If you want, you
can create a grammar from user input and use a parser for it in a couple of
lines of code.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := lr.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("a", scanner.Ident).End()  // Var  --> Sign Id
	b.LHS("Sign").T("+", '+').End()                     // Sign --> +
	b.LHS("Sign").T("-", '-').End()                     // Sign --> -
	b.LHS("Sign").Epsilon()                             // Sign -->

This grammar is subjected to grammar analysis and table generation.

	g, err := b.Grammar()
	ga, err := lr.Analysis(g)
	lrgen := lr.NewTableGenerator(ga)
	lrgen.CreateTables()
	if lrgen.HasConflicts { ... }  // cannot use a deterministic parser

Finally parse some input:

	p := slr.NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	scanner := scanner.GoTokenizer("input", strings.NewReader("+a"))
	accepted, err := p.Parse(lrgen.CFSM().S0, scanner)

After a parse, p.Trace holds the shift/reduce steps taken, suitable for
step-by-step playback.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package slr

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/automata"
	"github.com/npillmayer/automata/lr"
	"github.com/npillmayer/automata/lr/scanner"
)

// tracer traces with key 'automata.lr'.
func tracer() tracing.Trace {
	return tracing.Select("automata.lr")
}

// TraceStep is one configuration of the parser: the symbols currently on the
// stack, the lookahead terminal, and the action taken from here.
type TraceStep struct {
	Stack     []string // symbol names on the stack, bottom first
	States    []uint   // CFSM state IDs on the stack, bottom first
	Lookahead string
	Action    string
}

func (ts TraceStep) String() string {
	return fmt.Sprintf("[%s]  %s  %s", strings.Join(ts.Stack, " "), ts.Lookahead, ts.Action)
}

// Parser is a shift-reduce parser type. Create and initialize one with
// slr.NewParser(...)
type Parser struct {
	G       *lr.Grammar
	Trace   []TraceStep // trace of the last parse
	stack   []stackitem // parser stack
	gotoT   *lr.Table   // GOTO table
	actionT *lr.Table   // ACTION table
	names   map[int]string
}

// We store triples of state-IDs, symbol-IDs and spans on the parse stack.
type stackitem struct {
	stateID uint          // ID of a CFSM state
	symID   int           // ID of a grammar symbol (terminal or non-terminal)
	span    automata.Span // input span over which this symbol reaches
}

// NewParser creates a shift-reduce parser for a grammar and its tables.
func NewParser(g *lr.Grammar, gotoTable *lr.Table, actionTable *lr.Table) *Parser {
	parser := &Parser{
		G:       g,
		stack:   make([]stackitem, 0, 512),
		gotoT:   gotoTable,
		actionT: actionTable,
		names:   make(map[int]string),
	}
	g.EachSymbol(func(A *lr.Symbol) interface{} {
		parser.names[A.Value] = A.Name
		return nil
	})
	return parser
}

// Parse starts a new parse, given a start state and a scanner tokenizing the
// input. The parser must have been initialized.
//
// The parser returns true if the input string has been accepted.
func (p *Parser) Parse(S *lr.CFSMState, scan scanner.Tokenizer) (bool, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.G == nil || p.gotoT == nil || p.actionT == nil {
		tracer().Errorf("parser not initialized")
		return false, fmt.Errorf("parser not initialized")
	}
	p.stack = p.stack[:0]
	p.Trace = p.Trace[:0]
	var accepting bool
	p.stack = append(p.stack, stackitem{S.ID, 0, automata.Span{0, 0}}) // push S
	token := scan.NextToken()
	tokval := token.TokType()
	done := false
	for !done {
		tracer().Debugf("got token %q/%d from scanner", token.Lexeme(), tokval)
		state := p.stack[len(p.stack)-1] // TOS
		action := p.actionT.Value(state.stateID, tokval)
		tracer().Debugf("action(%d,%d)=%s", state.stateID, tokval, valstring(action, p.actionT))
		if action == p.actionT.NullValue() {
			p.traceStep(token.Lexeme(), "error")
			return false, fmt.Errorf("syntax error: unexpected %q", token.Lexeme())
		}
		if action == lr.AcceptAction || action == 0 { // reducing the start rule means accept
			p.traceStep(token.Lexeme(), "accept")
			accepting, done = true, true
		} else if action == lr.ShiftAction {
			nextstate := uint(p.gotoT.Value(state.stateID, tokval))
			tracer().Debugf("shifting, next state = %d", nextstate)
			p.traceStep(token.Lexeme(), fmt.Sprintf("shift %d", nextstate))
			p.stack = append(p.stack, // push a terminal state onto stack
				stackitem{nextstate, int(tokval), token.Span()})
			token = scan.NextToken()
			tokval = token.TokType()
		} else if action > 0 { // reduce action
			rule := p.G.Rule(int(action))
			p.traceStep(token.Lexeme(), fmt.Sprintf("reduce %v", rule))
			nextstate, handlespan := p.reduce(state.stateID, rule)
			if handlespan.IsNull() { // resulted from an epsilon production
				pos := token.Span().From()
				if pos > 0 { // epsilon was just before lookahead
					handlespan = automata.Span{pos - 1, pos - 1}
				}
			}
			tracer().Debugf("reduced to next state = %d", nextstate)
			p.stack = append(p.stack, // push a non-terminal state onto stack
				stackitem{nextstate, rule.LHS.Value, handlespan})
		} else { // no action found
			done = true
		}
	}
	return accepting, nil
}

// reduce performs a reduce action for a rule
//
//    LHS --> X1 ... Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn should be represented on the stack as states
//
//    [TOS]  Sn(Xn, span_n) ... S1(X1, span1)  ...
//
func (p *Parser) reduce(stateID uint, rule *lr.Rule) (uint, automata.Span) {
	tracer().Infof("reduce %v", rule)
	handle := reverse(rule.RHS())
	var handlespan automata.Span
	for _, sym := range handle {
		tos := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1] // pop TOS
		if tos.symID != sym.Value {
			tracer().Errorf("Expected %v on top of stack, got %d", sym, tos.symID)
		}
		handlespan = handlespan.Extend(tos.span)
	}
	lhs := rule.LHS
	state := p.stack[len(p.stack)-1] // TOS
	nextstate := p.gotoT.Value(state.stateID, lhs.TokenType())
	return uint(nextstate), handlespan
}

// traceStep records the current parser configuration.
func (p *Parser) traceStep(lookahead string, action string) {
	step := TraceStep{
		Lookahead: lookahead,
		Action:    action,
	}
	for _, it := range p.stack {
		step.States = append(step.States, it.stateID)
		if name, ok := p.names[it.symID]; ok && it.symID != 0 {
			step.Stack = append(step.Stack, name)
		}
	}
	p.Trace = append(p.Trace, step)
}

// --- Helpers ----------------------------------------------------------

// reverse the symbols of a RHS of a rule (i.e., a handle)
func reverse(syms []*lr.Symbol) []*lr.Symbol {
	r := append([]*lr.Symbol(nil), syms...) // make copy first
	for i := len(syms)/2 - 1; i >= 0; i-- {
		opp := len(syms) - 1 - i
		r[i], r[opp] = r[opp], r[i]
	}
	return r
}

// valstring is a short helper to stringify an action table entry.
func valstring(v int32, m *lr.Table) string {
	if v == m.NullValue() {
		return "<none>"
	} else if v == lr.AcceptAction {
		return "<accept>"
	} else if v == lr.ShiftAction {
		return "<shift>"
	}
	return fmt.Sprintf("%d", v)
}
