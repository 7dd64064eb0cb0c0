/*
Package opp implements operator-precedence parsing. An operator grammar (no
epsilon-productions, no adjacent non-terminals) is turned into a precedence
relation table over its terminals, built from the LEADING and TRAILING
terminal sets of every non-terminal. A shift-reduce parser drives its
decisions solely off the relation between the topmost stack terminal and the
lookahead.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package opp

import (
	"fmt"
	"io"
	"sort"

	"github.com/npillmayer/schuko/tracing"
	"github.com/olekukonko/tablewriter"

	"github.com/npillmayer/automata/grammar"
)

// tracer traces with key 'automata.lr'.
func tracer() tracing.Trace {
	return tracing.Select("automata.lr")
}

// EndMarker delimits the input on both sides of an operator-precedence parse.
const EndMarker = "$"

// Relation is a precedence relation between two terminals.
type Relation rune

// Precedence relations: yields-precedence, takes-precedence, equal-precedence.
const (
	None   Relation = 0
	Lower  Relation = '<'
	Higher Relation = '>'
	Equal  Relation = '='
)

// Table is a precedence relation table over the terminals of an operator
// grammar, plus the end marker. Conflicting relations are recorded and the
// first relation written wins.
type Table struct {
	Grammar   *grammar.Grammar
	Leading   map[string][]string // LEADING terminal set per non-terminal
	Trailing  map[string][]string // TRAILING terminal set per non-terminal
	Conflicts []string
	rels      map[[2]string]Relation
}

// Check reports the violations which disqualify a grammar from being an
// operator grammar: epsilon-productions and adjacent non-terminals.
func Check(g *grammar.Grammar) []string {
	var violations []string
	for _, p := range g.Productions {
		if p.IsEpsilon() {
			violations = append(violations, fmt.Sprintf("epsilon-production %v", p))
			continue
		}
		for i := 0; i+1 < len(p.RHS); i++ {
			if g.IsNonTerminal(p.RHS[i]) && g.IsNonTerminal(p.RHS[i+1]) {
				violations = append(violations,
					fmt.Sprintf("adjacent non-terminals %s %s in %v", p.RHS[i], p.RHS[i+1], p))
			}
		}
	}
	return violations
}

// BuildTable validates that g is an operator grammar and constructs its
// precedence relation table.
func BuildTable(g *grammar.Grammar) (*Table, error) {
	if violations := Check(g); len(violations) > 0 {
		return nil, fmt.Errorf("not an operator grammar: %v", violations)
	}
	tbl := &Table{
		Grammar: g,
		rels:    make(map[[2]string]Relation),
	}
	tbl.Leading, tbl.Trailing = terminalSets(g)
	for _, p := range g.Productions {
		rhs := p.RHS
		for i := 0; i < len(rhs); i++ {
			if i+1 < len(rhs) && g.IsTerminal(rhs[i]) && g.IsTerminal(rhs[i+1]) {
				tbl.set(rhs[i], Equal, rhs[i+1])
			}
			if i+2 < len(rhs) && g.IsTerminal(rhs[i]) && g.IsNonTerminal(rhs[i+1]) && g.IsTerminal(rhs[i+2]) {
				tbl.set(rhs[i], Equal, rhs[i+2])
			}
			if i+1 < len(rhs) && g.IsTerminal(rhs[i]) && g.IsNonTerminal(rhs[i+1]) {
				for _, b := range tbl.Leading[rhs[i+1]] {
					tbl.set(rhs[i], Lower, b)
				}
			}
			if i+1 < len(rhs) && g.IsNonTerminal(rhs[i]) && g.IsTerminal(rhs[i+1]) {
				for _, a := range tbl.Trailing[rhs[i]] {
					tbl.set(a, Higher, rhs[i+1])
				}
			}
		}
	}
	for _, b := range tbl.Leading[g.Start] {
		tbl.set(EndMarker, Lower, b)
	}
	for _, a := range tbl.Trailing[g.Start] {
		tbl.set(a, Higher, EndMarker)
	}
	tracer().Infof("precedence table for %q: %d relations, %d conflicts",
		g.Name, len(tbl.rels), len(tbl.Conflicts))
	return tbl, nil
}

func (tbl *Table) set(a string, rel Relation, b string) {
	key := [2]string{a, b}
	if prev, ok := tbl.rels[key]; ok {
		if prev != rel {
			tbl.Conflicts = append(tbl.Conflicts,
				fmt.Sprintf("%s %c %s collides with %s %c %s", a, rel, b, a, prev, b))
		}
		return
	}
	tbl.rels[key] = rel
}

// Relation returns the precedence relation between two terminals, or None.
func (tbl *Table) Relation(a, b string) Relation {
	return tbl.rels[[2]string{a, b}]
}

// IsPrecedenceGrammar reports whether the relation table is conflict-free.
func (tbl *Table) IsPrecedenceGrammar() bool {
	return len(tbl.Conflicts) == 0
}

// Write dumps the relation table, one row and column per terminal plus the
// end marker.
func (tbl *Table) Write(w io.Writer) {
	terms := append([]string{}, tbl.Grammar.Terminals...)
	terms = append(terms, EndMarker)
	sort.Strings(terms)
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(append([]string{""}, terms...))
	for _, a := range terms {
		row := []string{a}
		for _, b := range terms {
			if rel := tbl.Relation(a, b); rel != None {
				row = append(row, string(rel))
			} else {
				row = append(row, "")
			}
		}
		tw.Append(row)
	}
	tw.Render()
}

// terminalSets computes the LEADING and TRAILING terminal sets of every
// non-terminal by fixed point iteration. LEADING(A) holds every terminal
// which can appear first in a derivation from A; TRAILING(A) every terminal
// which can appear last.
func terminalSets(g *grammar.Grammar) (map[string][]string, map[string][]string) {
	leading := make(map[string]grammar.SymSet)
	trailing := make(map[string]grammar.SymSet)
	for _, nt := range g.NonTerminals {
		leading[nt] = grammar.NewSymSet()
		trailing[nt] = grammar.NewSymSet()
	}
	for changed := true; changed; {
		changed = false
		for _, p := range g.Productions {
			rhs := p.RHS
			first, last := rhs[0], rhs[len(rhs)-1]
			if g.IsTerminal(first) {
				if leading[p.LHS].Add(first) {
					changed = true
				}
			} else {
				if len(rhs) > 1 && leading[p.LHS].Add(rhs[1]) { // terminal, no adjacent NTs
					changed = true
				}
				if leading[p.LHS].AddAll(leading[first]) {
					changed = true
				}
			}
			if g.IsTerminal(last) {
				if trailing[p.LHS].Add(last) {
					changed = true
				}
			} else {
				if len(rhs) > 1 && trailing[p.LHS].Add(rhs[len(rhs)-2]) {
					changed = true
				}
				if trailing[p.LHS].AddAll(trailing[last]) {
					changed = true
				}
			}
		}
	}
	lead := make(map[string][]string, len(leading))
	trail := make(map[string][]string, len(trailing))
	for nt, set := range leading {
		lead[nt] = set.Sorted()
	}
	for nt, set := range trailing {
		trail[nt] = set.Sorted()
	}
	return lead, trail
}
