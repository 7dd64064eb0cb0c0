package lr

import (
	"fmt"
	"strings"
	"text/scanner"

	"github.com/npillmayer/automata"
	"github.com/npillmayer/automata/lr/iteratable"
)

// Reserved token values.
const (
	EpsilonType = 0           // epsilon marker within FIRST/FOLLOW sets
	EOFType     = scanner.EOF // token value of the end-of-input terminal
)

// nonTermType is the value assigned to the first non-terminal of a grammar.
// Subsequent non-terminals count downward. Terminal token values produced by
// text/scanner are either printable runes or small negative class values, so
// this range cannot collide.
const nonTermType = -1000

// Symbol is a grammar symbol, either a terminal carrying a token value, or a
// non-terminal. Symbols are interned per grammar: two occurrences of the same
// name denote the same *Symbol.
type Symbol struct {
	Name     string
	Value    int // token value
	terminal bool
}

// IsTerminal returns whether the symbol is a terminal.
func (sym *Symbol) IsTerminal() bool {
	return sym.terminal
}

// TokenType returns the token value of the symbol.
func (sym *Symbol) TokenType() automata.TokType {
	return automata.TokType(sym.Value)
}

func (sym *Symbol) String() string {
	return sym.Name
}

// Rule is a grammar production rule. Rule serial 0 is always the augmented
// start rule S' -> S #eof.
type Rule struct {
	Serial int
	LHS    *Symbol
	rhs    []*Symbol
}

// RHS returns the right hand side of the rule as a shallow copy.
func (r *Rule) RHS() []*Symbol {
	return append([]*Symbol{}, r.rhs...)
}

// IsEps returns whether the rule is an epsilon-production.
func (r *Rule) IsEps() bool {
	return len(r.rhs) == 0
}

func (r *Rule) String() string {
	return fmt.Sprintf("%d: [%s] ::= [%s]", r.Serial, r.LHS.Name, symListString(r.rhs))
}

func symListString(syms []*Symbol) string {
	names := make([]string, len(syms))
	for i, sym := range syms {
		names[i] = sym.Name
	}
	return strings.Join(names, " ")
}

// Grammar is a context-free grammar for LR table construction, augmented
// with a start rule S' -> S #eof. Build one with a GrammarBuilder or with
// FromDefinition.
type Grammar struct {
	Name         string
	rules        []*Rule
	symbols      map[string]*Symbol
	symlist      []*Symbol // all symbols in insertion order
	terminals    []*Symbol
	nonterminals []*Symbol
}

func newGrammar(name string) *Grammar {
	return &Grammar{
		Name:    name,
		symbols: make(map[string]*Symbol),
	}
}

// Rule returns rule no. n of the grammar, or nil.
func (g *Grammar) Rule(n int) *Rule {
	if n < 0 || n >= len(g.rules) {
		return nil
	}
	return g.rules[n]
}

// Size returns the number of rules, including the augmented start rule.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// SymbolByName returns the symbol with the given name, or nil.
func (g *Grammar) SymbolByName(name string) *Symbol {
	return g.symbols[name]
}

// EachSymbol applies a mapper function to all symbols of the grammar,
// terminals and non-terminals alike.
func (g *Grammar) EachSymbol(f func(sym *Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, sym := range g.symlist {
		r = append(r, f(sym))
	}
	return r
}

// EachNonTerminal applies a mapper function to all non-terminals of the grammar.
func (g *Grammar) EachNonTerminal(f func(sym *Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, sym := range g.nonterminals {
		r = append(r, f(sym))
	}
	return r
}

// EachTerminal applies a mapper function to all terminals of the grammar.
func (g *Grammar) EachTerminal(f func(sym *Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, sym := range g.terminals {
		r = append(r, f(sym))
	}
	return r
}

// RulesFor returns all rules with the given non-terminal as their LHS.
func (g *Grammar) RulesFor(sym *Symbol) []*Rule {
	var rules []*Rule
	for _, r := range g.rules {
		if r.LHS == sym {
			rules = append(rules, r)
		}
	}
	return rules
}

// FindNonTermRules returns the start items of all rules with the given
// non-terminal as their LHS, collected in a set.
func (g *Grammar) FindNonTermRules(sym *Symbol) *iteratable.Set {
	S := newItemSet()
	for _, r := range g.rules {
		if r.LHS == sym {
			i, _ := StartItem(r)
			S.Add(i)
		}
	}
	return S
}

// matchesRHS finds the rule lhs ::= handle, returning the rule and its
// serial, or (nil, -1).
func (g *Grammar) matchesRHS(lhs *Symbol, handle []*Symbol) (*Rule, int) {
	for _, r := range g.rules {
		if r.LHS != lhs || len(r.rhs) != len(handle) {
			continue
		}
		match := true
		for i, sym := range r.rhs {
			if sym != handle[i] {
				match = false
				break
			}
		}
		if match {
			return r, r.Serial
		}
	}
	return nil, -1
}

// Dump is a debugging helper, listing all rules of the grammar.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s --------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%v", r)
	}
	tracer().Debugf("-----------------------------")
}

func (g *Grammar) resolveTerminal(name string, tokval int) (*Symbol, error) {
	if sym, ok := g.symbols[name]; ok {
		if !sym.terminal {
			return nil, fmt.Errorf("%q is already a non-terminal", name)
		}
		if sym.Value != tokval {
			return nil, fmt.Errorf("terminal %q re-declared with token value %d (was %d)", name, tokval, sym.Value)
		}
		return sym, nil
	}
	sym := &Symbol{Name: name, Value: tokval, terminal: true}
	g.symbols[name] = sym
	g.symlist = append(g.symlist, sym)
	g.terminals = append(g.terminals, sym)
	return sym, nil
}

func (g *Grammar) resolveNonTerminal(name string) (*Symbol, error) {
	if sym, ok := g.symbols[name]; ok {
		if sym.terminal {
			return nil, fmt.Errorf("%q is already a terminal", name)
		}
		return sym, nil
	}
	sym := &Symbol{Name: name, Value: nonTermType - len(g.nonterminals)}
	g.symbols[name] = sym
	g.symlist = append(g.symlist, sym)
	g.nonterminals = append(g.nonterminals, sym)
	return sym, nil
}

// === Grammar builder =======================================================

// GrammarBuilder is a builder type for grammars. Create one with
// NewGrammarBuilder, add rules with LHS(…)…End(), and receive the finished
// grammar from Grammar().
type GrammarBuilder struct {
	g   *Grammar
	err error
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar
// to build.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{g: newGrammar(name)}
}

// LHS starts a rule with the left hand side non-terminal of the rule.
func (b *GrammarBuilder) LHS(name string) *RuleBuilder {
	lhs, err := b.g.resolveNonTerminal(name)
	if err != nil && b.err == nil {
		b.err = err
	}
	return &RuleBuilder{b: b, lhs: lhs}
}

// Grammar augments the grammar with a start rule S' -> S #eof, where S is the
// LHS of the first rule added, and returns the finished grammar.
func (b *GrammarBuilder) Grammar() (*Grammar, error) {
	if b.err != nil {
		return nil, b.err
	}
	g := b.g
	if len(g.rules) == 0 {
		return nil, fmt.Errorf("grammar %q has no rules", g.Name)
	}
	start := g.rules[0].LHS
	name := start.Name + "'"
	for g.symbols[name] != nil {
		name += "'"
	}
	super, err := g.resolveNonTerminal(name)
	if err != nil {
		return nil, err
	}
	eof, err := g.resolveTerminal("#eof", EOFType)
	if err != nil {
		return nil, err
	}
	rules := make([]*Rule, 0, len(g.rules)+1)
	rules = append(rules, &Rule{Serial: 0, LHS: super, rhs: []*Symbol{start, eof}})
	for i, r := range g.rules {
		r.Serial = i + 1
		rules = append(rules, r)
	}
	g.rules = rules
	g.Dump()
	return g, nil
}

// RuleBuilder is a builder type for a single grammar rule, usually created by
// a call to GrammarBuilder.LHS.
type RuleBuilder struct {
	b   *GrammarBuilder
	lhs *Symbol
	rhs []*Symbol
}

// N appends a non-terminal to the RHS of the rule under construction.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	sym, err := rb.b.g.resolveNonTerminal(name)
	if err != nil && rb.b.err == nil {
		rb.b.err = err
	}
	rb.rhs = append(rb.rhs, sym)
	return rb
}

// T appends a terminal with a token value to the RHS of the rule under
// construction.
func (rb *RuleBuilder) T(name string, tokval int) *RuleBuilder {
	sym, err := rb.b.g.resolveTerminal(name, tokval)
	if err != nil && rb.b.err == nil {
		rb.b.err = err
	}
	rb.rhs = append(rb.rhs, sym)
	return rb
}

// EOF appends the end-of-input terminal to the RHS and closes the rule.
// Grammars are augmented with an eof-carrying start rule anyway, so clients
// rarely need this.
func (rb *RuleBuilder) EOF() *Rule {
	sym, err := rb.b.g.resolveTerminal("#eof", EOFType)
	if err != nil && rb.b.err == nil {
		rb.b.err = err
	}
	rb.rhs = append(rb.rhs, sym)
	return rb.End()
}

// Epsilon closes the rule as an epsilon-production.
func (rb *RuleBuilder) Epsilon() *Rule {
	rb.rhs = nil
	return rb.End()
}

// End closes the rule and appends it to the grammar under construction.
func (rb *RuleBuilder) End() *Rule {
	g := rb.b.g
	r := &Rule{Serial: len(g.rules), LHS: rb.lhs, rhs: rb.rhs}
	g.rules = append(g.rules, r)
	return r
}
