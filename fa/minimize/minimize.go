/*
Package minimize reduces deterministic finite automata. Two independent
algorithms are provided:

Partition refines a partition of the state set (Hopcroft-style): start from
{final} vs {non-final}, split by transition-target partitions per symbol
until stable, then merge each partition into one state.

Significant merges DFA states built by the subset construction whose
subsets agree on the "significant" states of the originating NFA (states
with at least one non-ε outgoing transition, or final states).

Both preserve determinism and the accepted language and leave no
unreachable states behind. They are not interchangeable and may produce
different (language-equivalent) state counts.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package minimize

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/slices"

	"github.com/npillmayer/automata"
	"github.com/npillmayer/automata/fa/subset"
)

// tracer traces with key 'automata.fa'.
func tracer() tracing.Trace {
	return tracing.Select("automata.fa")
}

// Partition minimizes a DFA by partition refinement. Unreachable states are
// removed first; the initial partition separates final from non-final
// states; partitions are split by their transition-target-partition
// signature per alphabet symbol until the partitioning is stable.
func Partition(dfa *automata.Automaton) (*automata.Automaton, error) {
	if !dfa.IsDeterministic() {
		return nil, fmt.Errorf("partition refinement requires a deterministic automaton")
	}
	initial, err := dfa.Initial()
	if err != nil {
		return nil, err
	}
	reachable := reachableStates(dfa, initial.ID)

	// seed partitions: finals vs non-finals
	group := make(map[string]int, len(reachable))
	var finals, nonFinals []string
	for _, id := range reachable {
		if dfa.State(id).Final {
			finals = append(finals, id)
		} else {
			nonFinals = append(nonFinals, id)
		}
	}
	var partitions [][]string
	if len(nonFinals) > 0 {
		partitions = append(partitions, nonFinals)
	}
	if len(finals) > 0 {
		partitions = append(partitions, finals)
	}
	assign := func() {
		for i, p := range partitions {
			for _, id := range p {
				group[id] = i
			}
		}
	}
	assign()

	// signature of a state: target partition per alphabet symbol
	signature := func(id string) string {
		var sb strings.Builder
		for _, symbol := range dfa.Alphabet {
			ts := dfa.TransitionsFrom(id, symbol)
			if len(ts) == 0 {
				sb.WriteString("·|")
				continue
			}
			fmt.Fprintf(&sb, "%d|", group[ts[0].To])
		}
		return sb.String()
	}

	for {
		var refined [][]string
		for _, p := range partitions {
			buckets := make(map[string][]string)
			var order []string
			for _, id := range p {
				sig := signature(id)
				if _, ok := buckets[sig]; !ok {
					order = append(order, sig)
				}
				buckets[sig] = append(buckets[sig], id)
			}
			for _, sig := range order {
				refined = append(refined, buckets[sig])
			}
		}
		if len(refined) == len(partitions) {
			break
		}
		tracer().Debugf("partition refinement: %d -> %d blocks", len(partitions), len(refined))
		partitions = refined
		assign()
	}
	return mergePartitions(dfa, partitions, group), nil
}

// Significant minimizes a subset-construction result by significant-states
// equivalence. A state of the originating NFA is significant if it has at
// least one non-ε outgoing transition or is final. Two DFA states are
// equivalent iff their subsets, filtered to significant states, coincide.
// The returned result keeps the subset metadata filtered to significant
// states, so callers can show which DFA states were unified.
func Significant(res *subset.Result, nfa *automata.Automaton) (*subset.Result, error) {
	significant := make(map[string]bool)
	for _, s := range nfa.States {
		if s.Final {
			significant[s.ID] = true
			continue
		}
		for _, t := range nfa.TransitionsFrom(s.ID, "") {
			if t.Symbol != automata.Epsilon {
				significant[s.ID] = true
				break
			}
		}
	}
	// group DFA states by their significant subset
	keyOf := make(map[string]string, len(res.Dfa.States))
	groups := make(map[string][]string)
	var order []string
	for _, s := range res.Dfa.States {
		var filtered []string
		for _, nfaState := range res.Subsets[s.ID] {
			if significant[nfaState] {
				filtered = append(filtered, nfaState)
			}
		}
		slices.Sort(filtered)
		key := strings.Join(filtered, ",")
		keyOf[s.ID] = key
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], s.ID)
	}
	tracer().Debugf("significant states: %d DFA states in %d classes", len(res.Dfa.States), len(order))

	merged := automata.NewAutomaton(automata.DFA, res.Dfa.Alphabet)
	out := &subset.Result{Dfa: merged, Subsets: make(map[string][]string)}
	representative := make(map[string]string, len(order))
	for i, key := range order {
		members := groups[key]
		repr := members[0]
		representative[key] = repr
		state := automata.State{ID: repr, Label: mergeLabel(res.Dfa, members, i)}
		for _, id := range members {
			s := res.Dfa.State(id)
			state.Initial = state.Initial || s.Initial
			state.Final = state.Final || s.Final
		}
		merged.AddState(state)
		if key == "" {
			out.Subsets[repr] = nil
		} else {
			out.Subsets[repr] = strings.Split(key, ",")
		}
	}
	for _, t := range res.Dfa.Transitions {
		merged.AddTransition(automata.Transition{
			From:   representative[keyOf[t.From]],
			To:     representative[keyOf[t.To]],
			Symbol: t.Symbol,
		})
	}
	return out, nil
}

// mergePartitions collapses every partition into a single state. Initial
// and final flags are ORed across partition members.
func mergePartitions(dfa *automata.Automaton, partitions [][]string, group map[string]int) *automata.Automaton {
	merged := automata.NewAutomaton(automata.DFA, dfa.Alphabet)
	for i, p := range partitions {
		state := automata.State{
			ID:    strings.Join(p, "+"),
			Label: mergeLabel(dfa, p, i),
		}
		for _, id := range p {
			s := dfa.State(id)
			state.Initial = state.Initial || s.Initial
			state.Final = state.Final || s.Final
		}
		merged.AddState(state)
	}
	idOf := func(old string) string {
		return strings.Join(partitions[group[old]], "+")
	}
	for _, t := range dfa.Transitions {
		if _, ok := group[t.From]; !ok {
			continue // unreachable
		}
		merged.AddTransition(automata.Transition{
			From:   idOf(t.From),
			To:     idOf(t.To),
			Symbol: t.Symbol,
		})
	}
	return merged
}

func mergeLabel(dfa *automata.Automaton, members []string, index int) string {
	labels := make([]string, 0, len(members))
	for _, id := range members {
		s := dfa.State(id)
		if s.Label != "" {
			labels = append(labels, s.Label)
		}
	}
	if len(labels) == 0 {
		return fmt.Sprintf("P%d", index)
	}
	return strings.Join(labels, "")
}

// reachableStates collects all states reachable from the start state (BFS).
func reachableStates(a *automata.Automaton, start string) []string {
	visited := []string{start}
	queue := []string{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, t := range a.TransitionsFrom(id, "") {
			if !slices.Contains(visited, t.To) {
				visited = append(visited, t.To)
				queue = append(queue, t.To)
			}
		}
	}
	return visited
}
