/*
Package grammar holds the context-free grammar model shared by the LL and
operator-precedence analyses: ordered productions over explicit terminal
and non-terminal sets, a reader for line-oriented grammar text, and
FIRST/FOLLOW computation with rule citations.

Grammar text is line-oriented:

   E -> E + T | T
   T -> T * F | F
   F -> ( E ) | id

Tokens are space-separated. Terminals and non-terminals are told apart by
an explicit terminal list or, if none is given, by a casing convention
(identifiers starting with an upper-case letter are non-terminals).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/slices"
)

// tracer traces with key 'automata.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("automata.grammar")
}

// EpsilonSymbol marks an empty production body in grammar text.
const EpsilonSymbol = "ε"

// EndMark is the end-of-input terminal used in FOLLOW sets and parse
// tables.
const EndMark = "$"

// Production is one grammar rule: a non-terminal deriving a (possibly
// empty) sequence of terminals and non-terminals. An empty RHS is an
// ε-production.
type Production struct {
	LHS string
	RHS []string
}

// IsEpsilon reports whether p derives the empty word directly.
func (p Production) IsEpsilon() bool {
	return len(p.RHS) == 0
}

func (p Production) String() string {
	if p.IsEpsilon() {
		return p.LHS + " -> " + EpsilonSymbol
	}
	return p.LHS + " -> " + strings.Join(p.RHS, " ")
}

// Grammar is an ordered list of productions together with its terminal and
// non-terminal sets and a start symbol.
type Grammar struct {
	Name         string
	Start        string
	Productions  []Production
	Terminals    []string
	NonTerminals []string
}

// IsTerminal reports whether sym is a terminal of g.
func (g *Grammar) IsTerminal(sym string) bool {
	return slices.Contains(g.Terminals, sym)
}

// IsNonTerminal reports whether sym is a non-terminal of g.
func (g *Grammar) IsNonTerminal(sym string) bool {
	return slices.Contains(g.NonTerminals, sym)
}

// ProductionsFor returns all productions with the given left-hand side, in
// grammar order.
func (g *Grammar) ProductionsFor(nt string) []Production {
	var out []Production
	for _, p := range g.Productions {
		if p.LHS == nt {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks the structural invariants: the start symbol is a
// non-terminal with at least one production, and every symbol of every
// production body is classified as terminal or non-terminal.
func (g *Grammar) Validate() []string {
	var errs []string
	if g.Start == "" {
		errs = append(errs, "grammar has no start symbol")
	} else if !g.IsNonTerminal(g.Start) {
		errs = append(errs, fmt.Sprintf("start symbol %q is not a non-terminal", g.Start))
	} else if len(g.ProductionsFor(g.Start)) == 0 {
		errs = append(errs, fmt.Sprintf("start symbol %q has no production", g.Start))
	}
	for _, p := range g.Productions {
		if !g.IsNonTerminal(p.LHS) {
			errs = append(errs, fmt.Sprintf("production LHS %q is not a non-terminal", p.LHS))
		}
		for _, sym := range p.RHS {
			if !g.IsTerminal(sym) && !g.IsNonTerminal(sym) {
				errs = append(errs, fmt.Sprintf("symbol %q in %v is neither terminal nor non-terminal", sym, p))
			}
		}
	}
	return errs
}

// Clone returns a deep copy of the grammar.
func (g *Grammar) Clone() *Grammar {
	c := &Grammar{Name: g.Name, Start: g.Start}
	c.Terminals = append(c.Terminals, g.Terminals...)
	c.NonTerminals = append(c.NonTerminals, g.NonTerminals...)
	for _, p := range g.Productions {
		c.Productions = append(c.Productions, Production{LHS: p.LHS, RHS: append([]string{}, p.RHS...)})
	}
	return c
}

// AddNonTerminal registers a non-terminal if it is not yet known.
func (g *Grammar) AddNonTerminal(nt string) {
	if !g.IsNonTerminal(nt) {
		g.NonTerminals = append(g.NonTerminals, nt)
	}
}

// FreshNonTerminal derives an unused non-terminal name from base by
// appending primes (E -> E', E'', …).
func (g *Grammar) FreshNonTerminal(base string) string {
	name := base + "'"
	for g.IsNonTerminal(name) || g.IsTerminal(name) {
		name += "'"
	}
	return name
}

func (g *Grammar) String() string {
	var b strings.Builder
	for i, p := range g.Productions {
		fmt.Fprintf(&b, "%2d: %v\n", i, p)
	}
	return b.String()
}

// looksTerminal is the casing convention used when no explicit terminal
// list is given: everything not starting with an upper-case letter is a
// terminal.
func looksTerminal(sym string) bool {
	r, _ := utf8.DecodeRuneInString(sym)
	return !unicode.IsUpper(r)
}
