package minimize

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/automata"
	"github.com/npillmayer/automata/fa/subset"
	"github.com/npillmayer/automata/fa/thompson"
)

func simulate(dfa *automata.Automaton, input string) bool {
	initial, err := dfa.Initial()
	if err != nil {
		return false
	}
	current := initial.ID
	for _, r := range input {
		ts := dfa.TransitionsFrom(current, string(r))
		if len(ts) == 0 {
			return false
		}
		current = ts[0].To
	}
	return dfa.State(current).Final
}

func enumerate(alphabet []string, maxLen int) []string {
	out := []string{""}
	frontier := []string{""}
	for i := 0; i < maxLen; i++ {
		var next []string
		for _, prefix := range frontier {
			for _, sym := range alphabet {
				next = append(next, prefix+sym)
			}
		}
		out = append(out, next...)
		frontier = next
	}
	return out
}

func buildDFA(t *testing.T, re string) *subset.Result {
	nfa, err := thompson.FromRegex(re)
	if err != nil {
		t.Fatal(err)
	}
	res, err := subset.FromNFA(nfa)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestPartitionShrinksDragonBookDFA(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.fa")
	defer teardown()
	//
	res := buildDFA(t, "(a|b)*abb")
	min, err := Partition(res.Dfa)
	if err != nil {
		t.Fatal(err)
	}
	// the minimal DFA for (a|b)*abb has 4 states
	if len(min.States) != 4 {
		t.Errorf("minimized DFA has %d states, want 4", len(min.States))
	}
	if !min.IsDeterministic() {
		t.Errorf("minimization lost determinism")
	}
	for _, input := range enumerate(min.Alphabet, 6) {
		if simulate(res.Dfa, input) != simulate(min, input) {
			t.Errorf("language changed by minimization on input %q", input)
		}
	}
}

func TestPartitionIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.fa")
	defer teardown()
	//
	res := buildDFA(t, "(a|b)*abb")
	min1, err := Partition(res.Dfa)
	if err != nil {
		t.Fatal(err)
	}
	min2, err := Partition(min1)
	if err != nil {
		t.Fatal(err)
	}
	if len(min1.States) != len(min2.States) {
		t.Errorf("minimization not idempotent: %d vs %d states", len(min1.States), len(min2.States))
	}
}

func TestPartitionRemovesUnreachable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.fa")
	defer teardown()
	//
	dfa := automata.NewAutomaton(automata.DFA, []string{"a"})
	dfa.AddState(automata.State{ID: "s0", Initial: true})
	dfa.AddState(automata.State{ID: "s1", Final: true})
	dfa.AddState(automata.State{ID: "orphan", Final: true})
	dfa.AddTransition(automata.Transition{From: "s0", To: "s1", Symbol: "a"})
	dfa.AddTransition(automata.Transition{From: "orphan", To: "s1", Symbol: "a"})
	min, err := Partition(dfa)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range min.States {
		if s.ID == "orphan" {
			t.Errorf("unreachable state survived minimization")
		}
	}
	if len(min.States) != 2 {
		t.Errorf("minimized DFA has %d states, want 2", len(min.States))
	}
}

func TestPartitionRejectsNFA(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.fa")
	defer teardown()
	//
	nfa, err := thompson.FromRegex("a|b")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Partition(nfa); err == nil {
		t.Errorf("expected an error for a non-deterministic input")
	}
}

func TestSignificantStates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.fa")
	defer teardown()
	//
	nfa, err := thompson.FromRegex("(a|b)*abb")
	if err != nil {
		t.Fatal(err)
	}
	res, err := subset.FromNFA(nfa)
	if err != nil {
		t.Fatal(err)
	}
	min, err := Significant(res, nfa)
	if err != nil {
		t.Fatal(err)
	}
	if len(min.Dfa.States) > len(res.Dfa.States) {
		t.Errorf("significant-states merge grew the automaton")
	}
	if errs := min.Dfa.Validate(); len(errs) != 0 {
		t.Fatalf("invalid merged DFA: %v", errs)
	}
	for _, input := range enumerate(min.Dfa.Alphabet, 6) {
		if simulate(res.Dfa, input) != simulate(min.Dfa, input) {
			t.Errorf("language changed by significant-states merge on input %q", input)
		}
	}
	// metadata must be filtered to significant states only
	for id, states := range min.Subsets {
		for _, nfaState := range states {
			s := nfa.State(nfaState)
			if s == nil {
				t.Fatalf("subset of %q references unknown NFA state %q", id, nfaState)
			}
			hasConsuming := false
			for _, tr := range nfa.TransitionsFrom(nfaState, "") {
				if tr.Symbol != automata.Epsilon {
					hasConsuming = true
				}
			}
			if !hasConsuming && !s.Final {
				t.Errorf("state %q kept non-significant NFA state %q", id, nfaState)
			}
		}
	}
}

// Partition refinement must agree with the significant-states merge on the
// recognized language, even when state counts differ.
func TestMinimizersAgreeOnLanguage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.fa")
	defer teardown()
	//
	for _, re := range []string{"(a|b)*abb", "a(b|c)*", "(ab)+c?", "a|b|ab"} {
		nfa, err := thompson.FromRegex(re)
		if err != nil {
			t.Fatal(err)
		}
		res, err := subset.FromNFA(nfa)
		if err != nil {
			t.Fatal(err)
		}
		byPartition, err := Partition(res.Dfa)
		if err != nil {
			t.Fatal(err)
		}
		bySignificant, err := Significant(res, nfa)
		if err != nil {
			t.Fatal(err)
		}
		for _, input := range enumerate(res.Dfa.Alphabet, 5) {
			p := simulate(byPartition, input)
			s := simulate(bySignificant.Dfa, input)
			if p != s {
				t.Errorf("%q: minimizers disagree on %q (partition=%v, significant=%v)", re, input, p, s)
			}
		}
	}
}
