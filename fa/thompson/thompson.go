/*
Package thompson constructs an ε-NFA from a regular expression by the
Thompson construction: every syntax-tree node contributes a small automaton
fragment, and fragments are composed bottom-up.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package thompson

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/automata"
	"github.com/npillmayer/automata/regex"
)

// tracer traces with key 'automata.fa'.
func tracer() tracing.Trace {
	return tracing.Select("automata.fa")
}

// allocator hands out fresh state IDs. Each top-level construction owns its
// allocator, so concurrent conversions cannot interfere with each other.
type allocator struct {
	next int
}

func (a *allocator) fresh() string {
	id := fmt.Sprintf("t%d", a.next)
	a.next++
	return id
}

// fragment is a partial NFA with a single start and a single accept state.
type fragment struct {
	start       string
	accept      string
	states      []string
	transitions []automata.Transition
}

func (f fragment) withTransition(from, to, symbol string) fragment {
	f.transitions = append(f.transitions, automata.Transition{From: from, To: to, Symbol: symbol})
	return f
}

// FromRegex builds an ε-NFA recognizing the language of the given regular
// expression. States are labelled q0..qn in construction order.
func FromRegex(re string) (*automata.Automaton, error) {
	tree, err := regex.BuildSyntaxTree(re)
	if err != nil {
		return nil, err
	}
	return FromTree(tree)
}

// FromTree builds an ε-NFA from an already constructed syntax tree.
func FromTree(tree *regex.SyntaxTree) (*automata.Automaton, error) {
	alloc := &allocator{}
	frag, err := build(tree.Root, alloc)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("thompson: %d states, %d transitions", len(frag.states), len(frag.transitions))
	return assemble(frag, tree.Alphabet), nil
}

// build recursively constructs a fragment per node kind.
func build(n *regex.TreeNode, alloc *allocator) (fragment, error) {
	switch n.Kind {
	case regex.KindSymbol:
		return leaf(alloc, n.Literal), nil
	case regex.KindEpsilon:
		return leaf(alloc, automata.Epsilon), nil
	case regex.KindUnion:
		left, err := build(n.Left, alloc)
		if err != nil {
			return fragment{}, err
		}
		right, err := build(n.Right, alloc)
		if err != nil {
			return fragment{}, err
		}
		return union(alloc, left, right), nil
	case regex.KindConcat:
		left, err := build(n.Left, alloc)
		if err != nil {
			return fragment{}, err
		}
		right, err := build(n.Right, alloc)
		if err != nil {
			return fragment{}, err
		}
		return concat(left, right), nil
	case regex.KindStar, regex.KindPlus, regex.KindOptional:
		inner, err := build(n.Left, alloc)
		if err != nil {
			return fragment{}, err
		}
		return repeat(alloc, inner, n.Kind), nil
	}
	return fragment{}, fmt.Errorf("unknown syntax tree node kind %v", n.Kind)
}

// leaf builds the 2-state fragment for a symbol or ε.
func leaf(alloc *allocator, symbol string) fragment {
	start, accept := alloc.fresh(), alloc.fresh()
	f := fragment{start: start, accept: accept, states: []string{start, accept}}
	return f.withTransition(start, accept, symbol)
}

// union wires a new start and accept state to both operand fragments by
// ε-transitions.
func union(alloc *allocator, left, right fragment) fragment {
	start, accept := alloc.fresh(), alloc.fresh()
	f := fragment{start: start, accept: accept}
	f.states = append(f.states, start)
	f.states = append(f.states, left.states...)
	f.states = append(f.states, right.states...)
	f.states = append(f.states, accept)
	f.transitions = append(f.transitions, left.transitions...)
	f.transitions = append(f.transitions, right.transitions...)
	f = f.withTransition(start, left.start, automata.Epsilon)
	f = f.withTransition(start, right.start, automata.Epsilon)
	f = f.withTransition(left.accept, accept, automata.Epsilon)
	f = f.withTransition(right.accept, accept, automata.Epsilon)
	return f
}

// concat fuses the left fragment's accept state with the right fragment's
// start state. Transitions touching the right start are rewritten onto the
// left accept, avoiding a redundant ε-edge.
func concat(left, right fragment) fragment {
	f := fragment{start: left.start, accept: right.accept}
	f.states = append(f.states, left.states...)
	for _, s := range right.states {
		if s != right.start {
			f.states = append(f.states, s)
		}
	}
	f.transitions = append(f.transitions, left.transitions...)
	for _, t := range right.transitions {
		if t.From == right.start {
			t.From = left.accept
		}
		if t.To == right.start {
			t.To = left.accept
		}
		f.transitions = append(f.transitions, t)
	}
	return f
}

// repeat wraps a fragment with new start/accept states implementing the
// repetition semantics of STAR, PLUS or OPTIONAL:
//
//   STAR      skip allowed, loop-back allowed
//   PLUS      at least one pass, loop-back allowed
//   OPTIONAL  skip allowed, no loop
func repeat(alloc *allocator, inner fragment, kind regex.NodeKind) fragment {
	start, accept := alloc.fresh(), alloc.fresh()
	f := fragment{start: start, accept: accept}
	f.states = append(f.states, start)
	f.states = append(f.states, inner.states...)
	f.states = append(f.states, accept)
	f.transitions = append(f.transitions, inner.transitions...)
	f = f.withTransition(start, inner.start, automata.Epsilon)
	f = f.withTransition(inner.accept, accept, automata.Epsilon)
	switch kind {
	case regex.KindStar:
		f = f.withTransition(start, accept, automata.Epsilon)
		f = f.withTransition(inner.accept, inner.start, automata.Epsilon)
	case regex.KindPlus:
		f = f.withTransition(inner.accept, inner.start, automata.Epsilon)
	case regex.KindOptional:
		f = f.withTransition(start, accept, automata.Epsilon)
	}
	return f
}

// assemble renumbers all states q0..qn in construction order and produces
// the final automaton. Renumbering makes construction deterministic and
// independent of the internal allocator labels.
func assemble(frag fragment, alphabet []string) *automata.Automaton {
	rename := make(map[string]string, len(frag.states))
	a := automata.NewAutomaton(automata.ENFA, alphabet)
	for i, s := range frag.states {
		q := fmt.Sprintf("q%d", i)
		rename[s] = q
		a.AddState(automata.State{
			ID:      q,
			Label:   q,
			Initial: s == frag.start,
			Final:   s == frag.accept,
		})
	}
	for _, t := range frag.transitions {
		a.AddTransition(automata.Transition{
			From:   rename[t.From],
			To:     rename[t.To],
			Symbol: t.Symbol,
		})
	}
	return a
}
