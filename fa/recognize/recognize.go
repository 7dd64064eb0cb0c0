/*
Package recognize simulates finite automata on input strings, producing a
step trace suitable for pedagogical playback.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package recognize

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/slices"

	"github.com/npillmayer/automata"
	"github.com/npillmayer/automata/fa/subset"
)

// tracer traces with key 'automata.fa'.
func tracer() tracing.Trace {
	return tracing.Select("automata.fa")
}

// Step is one step of a simulation: the consumed symbol (empty for the
// initial step) and the set of active states afterwards (a single state for
// a DFA run).
type Step struct {
	Index  int
	Symbol string
	States []string
}

// Result is the outcome of a recognition run. Rejection is a normal
// outcome; Reason explains it (unknown symbol, missing transition, or a
// non-accepting halt state).
type Result struct {
	Accepted bool
	Reason   string
	Steps    []Step
}

// DFA walks a deterministic automaton one symbol at a time. The run fails
// immediately when a symbol is outside the alphabet or no transition leaves
// the current state. Acceptance requires exhausting the input exactly at a
// final state.
func DFA(a *automata.Automaton, input string) Result {
	res := Result{}
	initial, err := a.Initial()
	if err != nil {
		res.Reason = err.Error()
		return res
	}
	current := initial.ID
	res.Steps = append(res.Steps, Step{Index: 0, States: []string{current}})
	for i, r := range input {
		symbol := string(r)
		if !slices.Contains(a.Alphabet, symbol) {
			res.Reason = fmt.Sprintf("symbol %q at position %d is not in the alphabet", symbol, i)
			return res
		}
		ts := a.TransitionsFrom(current, symbol)
		if len(ts) == 0 {
			res.Reason = fmt.Sprintf("no transition from state %q on %q", current, symbol)
			return res
		}
		current = ts[0].To
		res.Steps = append(res.Steps, Step{Index: i + 1, Symbol: symbol, States: []string{current}})
	}
	if s := a.State(current); s != nil && s.Final {
		res.Accepted = true
		return res
	}
	res.Reason = fmt.Sprintf("input exhausted in non-accepting state %q", current)
	return res
}

// NFA simulates a (possibly ε-) NFA by tracking the set of active states:
// each step takes the ε-closure of the move set. The input is accepted if
// any active state is final after the input is exhausted.
func NFA(a *automata.Automaton, input string) Result {
	res := Result{}
	initial, err := a.Initial()
	if err != nil {
		res.Reason = err.Error()
		return res
	}
	active := subset.EpsilonClosure(a, []string{initial.ID})
	res.Steps = append(res.Steps, Step{Index: 0, States: active})
	for i, r := range input {
		symbol := string(r)
		if !slices.Contains(a.Alphabet, symbol) {
			res.Reason = fmt.Sprintf("symbol %q at position %d is not in the alphabet", symbol, i)
			return res
		}
		moved := a.Move(active, symbol)
		if len(moved) == 0 {
			res.Reason = fmt.Sprintf("no transition from states %v on %q", active, symbol)
			return res
		}
		active = subset.EpsilonClosure(a, moved)
		res.Steps = append(res.Steps, Step{Index: i + 1, Symbol: symbol, States: active})
	}
	for _, id := range active {
		if s := a.State(id); s != nil && s.Final {
			res.Accepted = true
			return res
		}
	}
	res.Reason = fmt.Sprintf("input exhausted with no accepting state in %v", active)
	return res
}

// Recognize dispatches to the DFA or NFA simulator by inspecting the
// automaton: ε-transitions or non-deterministic move targets select the
// NFA simulation.
func Recognize(a *automata.Automaton, input string) Result {
	if a.IsDeterministic() {
		tracer().Debugf("recognize: deterministic walk of %v", a)
		return DFA(a, input)
	}
	tracer().Debugf("recognize: set simulation of %v", a)
	return NFA(a, input)
}
