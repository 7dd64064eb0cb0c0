/*
Package toregex converts finite automata back to regular expressions. Two
independent algorithms are provided: a solver for the right-linear equation
system of the automaton using Arden's lemma, and state elimination on a
generalized NFA with regex-labelled edges. Both produce a step trace for
pedagogical playback. The produced regexes may differ syntactically but
denote the same language.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package toregex

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/npillmayer/automata"
	"github.com/npillmayer/automata/regex"
)

// tracer traces with key 'automata.fa'.
func tracer() tracing.Trace {
	return tracing.Select("automata.fa")
}

// equation is one right-linear equation of the system:
//
//    state = Σ coeff·target  [ | ε ]
//
// Terms are keyed by target state; the key "" holds the variable-free
// constant part (ε for final states, or substituted-in expressions).
type equation struct {
	state string
	terms map[string]regex.Expr
}

func (eq *equation) addTerm(target string, coeff regex.Expr) {
	if have, ok := eq.terms[target]; ok {
		eq.terms[target] = regex.Alt(have, coeff)
		return
	}
	eq.terms[target] = coeff
}

func (eq *equation) String() string {
	targets := maps.Keys(eq.terms)
	slices.Sort(targets)
	var parts []string
	for _, target := range targets {
		coeff := eq.terms[target]
		if target == "" {
			parts = append(parts, coeff.String())
			continue
		}
		if regex.IsEps(coeff) {
			parts = append(parts, target)
		} else {
			parts = append(parts, regex.Concat{Factors: []regex.Expr{coeff}}.String()+target)
		}
	}
	if len(parts) == 0 {
		return eq.state + " = ∅"
	}
	return eq.state + " = " + strings.Join(parts, " | ")
}

// Arden converts an automaton to a regular expression by building the
// equation system of its states and solving it with Arden's lemma
// (X = αX | β ⟹ X = α*β). States are eliminated in reverse topological
// order of the state-dependency graph, falling back to insertion order
// inside cycles; the initial state is resolved last. The trace holds one
// rendering of the system per elimination step.
func Arden(a *automata.Automaton) (regex.Expr, []string, error) {
	if err := checkConvertible(a); err != nil {
		return nil, nil, err
	}
	initial, _ := a.Initial()
	system := make(map[string]*equation, len(a.States))
	for _, s := range a.States {
		eq := &equation{state: s.ID, terms: make(map[string]regex.Expr)}
		for _, t := range a.TransitionsFrom(s.ID, "") {
			var coeff regex.Expr
			if t.Symbol == automata.Epsilon {
				coeff = regex.Eps{}
			} else {
				coeff = regex.Sym{Literal: t.Symbol}
			}
			eq.addTerm(t.To, coeff)
		}
		if s.Final {
			eq.addTerm("", regex.Eps{})
		}
		system[s.ID] = eq
	}
	order := eliminationOrder(a, initial.ID)
	trace := []string{renderSystem(system, order, initial.ID)}

	// eliminate every non-initial state, substituting it away everywhere
	for _, id := range order {
		if id == initial.ID {
			continue
		}
		eq := system[id]
		applyArden(eq)
		for _, other := range system {
			if other == eq {
				continue
			}
			substitute(other, eq)
		}
		delete(system, id)
		trace = append(trace, fmt.Sprintf("eliminated %s:\n%s", id, renderSystem(system, order, initial.ID)))
	}
	start := system[initial.ID]
	applyArden(start)
	for target := range start.terms {
		if target != "" {
			return nil, trace, fmt.Errorf("equation system did not resolve: %s still references %s",
				start.state, target)
		}
	}
	result, ok := start.terms[""]
	if !ok {
		result = regex.Empty{}
	}
	result = regex.Simplify(result)
	trace = append(trace, fmt.Sprintf("%s = %s", start.state, result))
	tracer().Infof("Arden: %s = %s", start.state, result)
	return result, trace, nil
}

// applyArden removes the self-reference of an equation: from X = αX | β it
// derives X = α*β. Equations without a self-loop are left untouched.
func applyArden(eq *equation) {
	alpha, ok := eq.terms[eq.state]
	if !ok {
		return
	}
	delete(eq.terms, eq.state)
	star := regex.Iterate(alpha)
	for target, coeff := range eq.terms {
		eq.terms[target] = regex.Cat(star, coeff)
	}
	if len(eq.terms) == 0 {
		// X = αX with no independent part denotes the empty language
		eq.terms[""] = regex.Empty{}
	}
}

// substitute replaces every reference to resolved.state inside eq by the
// resolved equation's right-hand side. The resolved equation must not
// reference itself anymore.
func substitute(eq *equation, resolved *equation) {
	coeff, ok := eq.terms[resolved.state]
	if !ok {
		return
	}
	delete(eq.terms, resolved.state)
	for target, inner := range resolved.terms {
		eq.addTerm(target, regex.Cat(coeff, inner))
	}
}

// eliminationOrder orders states by reverse topological order of the
// dependency graph (X depends on the states its equation references).
// Inside strongly connected parts the DFS fallback amounts to insertion
// order. The initial state always comes last.
func eliminationOrder(a *automata.Automaton, initialID string) []string {
	visited := make(map[string]bool, len(a.States))
	var order []string
	var dfs func(id string)
	dfs = func(id string) {
		visited[id] = true
		for _, t := range a.TransitionsFrom(id, "") {
			if !visited[t.To] {
				dfs(t.To)
			}
		}
		order = append(order, id)
	}
	dfs(initialID)
	for _, s := range a.States { // unreachable states still get eliminated
		if !visited[s.ID] {
			dfs(s.ID)
		}
	}
	// order currently has the initial state last already (post-order from
	// the initial state); keep deep states first
	out := make([]string, 0, len(order))
	for _, id := range order {
		if id != initialID {
			out = append(out, id)
		}
	}
	return append(out, initialID)
}

func renderSystem(system map[string]*equation, order []string, initialID string) string {
	var lines []string
	for _, id := range order {
		if eq, ok := system[id]; ok {
			lines = append(lines, eq.String())
		}
	}
	return strings.Join(lines, "\n")
}

func checkConvertible(a *automata.Automaton) error {
	if _, err := a.Initial(); err != nil {
		return err
	}
	if len(a.Finals()) == 0 {
		return fmt.Errorf("automaton has no final state")
	}
	return nil
}
