package toregex

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/npillmayer/automata"
	"github.com/npillmayer/automata/regex"
)

// gnfa is a generalized NFA: a directed graph with regex-labelled edges
// and dedicated super-initial and super-final states.
type gnfa struct {
	states []string
	edges  map[[2]string]regex.Expr
}

// superNames picks labels for the super-initial and super-final states
// that cannot collide with existing state IDs.
func superNames(a *automata.Automaton) (string, string) {
	initial, final := "I", "F"
	for a.State(initial) != nil {
		initial += "'"
	}
	for a.State(final) != nil {
		final += "'"
	}
	return initial, final
}

func (g *gnfa) edge(from, to string) regex.Expr {
	if e, ok := g.edges[[2]string{from, to}]; ok {
		return e
	}
	return regex.Empty{}
}

func (g *gnfa) setEdge(from, to string, e regex.Expr) {
	if regex.IsEmpty(e) {
		delete(g.edges, [2]string{from, to})
		return
	}
	g.edges[[2]string{from, to}] = e
}

func (g *gnfa) addEdge(from, to string, e regex.Expr) {
	g.setEdge(from, to, regex.Alt(g.edge(from, to), e))
}

func (g *gnfa) render() string {
	keys := maps.Keys(g.edges)
	slices.SortFunc(keys, func(a, b [2]string) int {
		if a[0] != b[0] {
			return strings.Compare(a[0], b[0])
		}
		return strings.Compare(a[1], b[1])
	})
	var lines []string
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s --[%s]--> %s", k[0], g.edges[k], k[1]))
	}
	return strings.Join(lines, "\n")
}

// Eliminate converts an automaton to a regular expression by state
// elimination: the automaton is augmented with a fresh super-initial state
// I (ε to the original initial state) and a super-final state F (original
// finals reach it by ε); parallel transitions between two states are
// combined into one regex-labelled edge; then every state except I and F
// is removed one at a time via
//
//    R(p→r) += R(p→q) · R(q→q)* · R(q→r)
//
// The resulting expression is the final I→F edge label. The trace holds a
// rendering of the edge table after each elimination.
func Eliminate(a *automata.Automaton) (regex.Expr, []string, error) {
	if err := checkConvertible(a); err != nil {
		return nil, nil, err
	}
	initial, _ := a.Initial()
	superInitial, superFinal := superNames(a)
	g := &gnfa{edges: make(map[[2]string]regex.Expr)}
	for _, s := range a.States {
		g.states = append(g.states, s.ID)
	}
	for _, t := range a.Transitions {
		var label regex.Expr
		if t.Symbol == automata.Epsilon {
			label = regex.Eps{}
		} else {
			label = regex.Sym{Literal: t.Symbol}
		}
		g.addEdge(t.From, t.To, label)
	}
	g.addEdge(superInitial, initial.ID, regex.Eps{})
	for _, f := range a.Finals() {
		g.addEdge(f.ID, superFinal, regex.Eps{})
	}
	trace := []string{g.render()}

	for _, q := range g.states {
		loop := regex.Iterate(g.edge(q, q))
		for _, p := range append([]string{superInitial}, g.states...) {
			if p == q {
				continue
			}
			into := g.edge(p, q)
			if regex.IsEmpty(into) {
				continue
			}
			for _, r := range append(g.states, superFinal) {
				if r == q {
					continue
				}
				out := g.edge(q, r)
				if regex.IsEmpty(out) {
					continue
				}
				via := regex.Cat(regex.Cat(into, loop), out)
				g.addEdge(p, r, via)
			}
		}
		// remove q and all its edges
		for key := range g.edges {
			if key[0] == q || key[1] == q {
				delete(g.edges, key)
			}
		}
		trace = append(trace, fmt.Sprintf("eliminated %s:\n%s", q, g.render()))
	}
	result := regex.Simplify(g.edge(superInitial, superFinal))
	trace = append(trace, fmt.Sprintf("%s --[%s]--> %s", superInitial, result, superFinal))
	tracer().Infof("state elimination: %s", result)
	return result, trace, nil
}
