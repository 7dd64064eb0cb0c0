/*
Package subset converts non-deterministic finite automata to DFAs via the
subset construction, and builds DFAs directly from regular expressions via
the firstpos/followpos method (no intermediate NFA).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package subset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/slices"

	"github.com/npillmayer/automata"
	"github.com/npillmayer/automata/regex"
)

// tracer traces with key 'automata.fa'.
func tracer() tracing.Trace {
	return tracing.Select("automata.fa")
}

// Result is a DFA together with the subset metadata of its states: for
// every DFA state ID, the constituent NFA states (or syntax-tree positions
// for the direct construction) it was built from.
type Result struct {
	Dfa     *automata.Automaton
	Subsets map[string][]string
}

// EpsilonClosure expands a set of states to its fixed point under
// ε-transitions. The result is sorted.
func EpsilonClosure(a *automata.Automaton, set []string) []string {
	closure := append([]string{}, set...)
	stack := append([]string{}, set...)
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range a.TransitionsFrom(s, automata.Epsilon) {
			if !slices.Contains(closure, t.To) {
				closure = append(closure, t.To)
				stack = append(stack, t.To)
			}
		}
	}
	slices.Sort(closure)
	return closure
}

// subsetKey is the canonical identity of a subset state: its sorted,
// comma-joined constituent IDs.
func subsetKey(set []string) string {
	return strings.Join(set, ",")
}

// stateLetter produces display labels A, B, …, Z, AA, AB, … for subset
// states in discovery order.
func stateLetter(n int) string {
	label := ""
	for {
		label = string(rune('A'+n%26)) + label
		n = n/26 - 1
		if n < 0 {
			break
		}
	}
	return label
}

// FromNFA converts an NFA (with or without ε-transitions) to a DFA by the
// subset construction. DFA state IDs encode the constituent NFA state sets;
// labels are letters in discovery order. A DFA state is final iff its
// subset intersects the NFA's final states.
func FromNFA(nfa *automata.Automaton) (*Result, error) {
	if errs := nfa.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid input automaton: %s", strings.Join(errs, "; "))
	}
	initial, err := nfa.Initial()
	if err != nil {
		return nil, err
	}
	finals := make(map[string]bool)
	for _, f := range nfa.Finals() {
		finals[f.ID] = true
	}
	dfa := automata.NewAutomaton(automata.DFA, nfa.Alphabet)
	result := &Result{Dfa: dfa, Subsets: make(map[string][]string)}

	start := EpsilonClosure(nfa, []string{initial.ID})
	startKey := subsetKey(start)
	result.Subsets[startKey] = start
	dfa.AddState(automata.State{
		ID:      startKey,
		Label:   stateLetter(0),
		Initial: true,
		Final:   intersects(start, finals),
	})
	worklist := []string{startKey}
	discovered := 1
	for len(worklist) > 0 {
		key := worklist[0]
		worklist = worklist[1:]
		current := result.Subsets[key]
		for _, symbol := range nfa.Alphabet {
			moved := nfa.Move(current, symbol)
			if len(moved) == 0 {
				continue
			}
			next := EpsilonClosure(nfa, moved)
			nextKey := subsetKey(next)
			if dfa.State(nextKey) == nil {
				result.Subsets[nextKey] = next
				dfa.AddState(automata.State{
					ID:    nextKey,
					Label: stateLetter(discovered),
					Final: intersects(next, finals),
				})
				discovered++
				worklist = append(worklist, nextKey)
				tracer().Debugf("subset: new state %s = {%s}", stateLetter(discovered-1), nextKey)
			}
			dfa.AddTransition(automata.Transition{From: key, To: nextKey, Symbol: symbol})
		}
	}
	return result, nil
}

// FromRegex builds a DFA directly from a regular expression without an
// intermediate NFA: the expression is augmented to '(re)#', the start state
// is firstpos(root), and for each state S and symbol a the successor is
// the union of followpos(p) over all p ∈ S whose tree symbol is a. A state
// is final iff it contains the end marker's position.
func FromRegex(re string) (*Result, error) {
	tree, err := regex.BuildAugmented(re)
	if err != nil {
		return nil, err
	}
	dfa := automata.NewAutomaton(automata.DFA, tree.Alphabet)
	result := &Result{Dfa: dfa, Subsets: make(map[string][]string)}

	start := tree.Root.First.Sorted()
	startKey := posKey(start)
	result.Subsets[startKey] = posStrings(start)
	dfa.AddState(automata.State{
		ID:      startKey,
		Label:   stateLetter(0),
		Initial: true,
		Final:   slices.Contains(start, tree.EndPosition),
	})
	worklist := [][]int{start}
	discovered := 1
	for len(worklist) > 0 {
		current := worklist[0]
		worklist = worklist[1:]
		currentKey := posKey(current)
		for _, symbol := range tree.Alphabet {
			next := regex.NewPosSet()
			for _, p := range current {
				if tree.Symbols[p] == symbol {
					next.Union(tree.Follow[p])
				}
			}
			if len(next) == 0 {
				continue
			}
			nextSorted := next.Sorted()
			nextKey := posKey(nextSorted)
			if dfa.State(nextKey) == nil {
				result.Subsets[nextKey] = posStrings(nextSorted)
				dfa.AddState(automata.State{
					ID:    nextKey,
					Label: stateLetter(discovered),
					Final: slices.Contains(nextSorted, tree.EndPosition),
				})
				discovered++
				worklist = append(worklist, nextSorted)
			}
			dfa.AddTransition(automata.Transition{From: currentKey, To: nextKey, Symbol: symbol})
		}
	}
	return result, nil
}

func posKey(positions []int) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}

func posStrings(positions []int) []string {
	out := make([]string, len(positions))
	for i, p := range positions {
		out[i] = strconv.Itoa(p)
	}
	return out
}

func intersects(set []string, members map[string]bool) bool {
	for _, s := range set {
		if members[s] {
			return true
		}
	}
	return false
}
