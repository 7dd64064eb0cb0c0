package subset

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/automata"
	"github.com/npillmayer/automata/fa/thompson"
)

func TestEpsilonClosure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.fa")
	defer teardown()
	//
	a := automata.NewAutomaton(automata.ENFA, []string{"a"})
	a.AddState(automata.State{ID: "q0", Initial: true})
	a.AddState(automata.State{ID: "q1"})
	a.AddState(automata.State{ID: "q2", Final: true})
	a.AddTransition(automata.Transition{From: "q0", To: "q1", Symbol: automata.Epsilon})
	a.AddTransition(automata.Transition{From: "q1", To: "q2", Symbol: automata.Epsilon})
	closure := EpsilonClosure(a, []string{"q0"})
	if len(closure) != 3 {
		t.Errorf("ε-closure(q0) = %v, want all three states", closure)
	}
}

func TestSubsetConstructionDragonBook(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.fa")
	defer teardown()
	//
	nfa, err := thompson.FromRegex("(a|b)*abb")
	if err != nil {
		t.Fatal(err)
	}
	res, err := FromNFA(nfa)
	if err != nil {
		t.Fatal(err)
	}
	dfa := res.Dfa
	if !dfa.IsDeterministic() {
		t.Fatalf("subset construction produced a non-deterministic automaton")
	}
	if errs := dfa.Validate(); len(errs) != 0 {
		t.Fatalf("invalid DFA: %v", errs)
	}
	// The Thompson NFA of (a|b)*abb yields the well-known 5-state DFA.
	if len(dfa.States) != 5 {
		t.Errorf("DFA has %d states, want 5", len(dfa.States))
	}
	if len(dfa.Finals()) != 1 {
		t.Errorf("DFA has %d final states, want 1", len(dfa.Finals()))
	}
}

func TestSubsetStateIdentity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.fa")
	defer teardown()
	//
	nfa, err := thompson.FromRegex("ab|ac")
	if err != nil {
		t.Fatal(err)
	}
	res, err := FromNFA(nfa)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range res.Dfa.States {
		subset, ok := res.Subsets[s.ID]
		if !ok {
			t.Fatalf("state %q has no subset metadata", s.ID)
		}
		if s.ID != strings.Join(subset, ",") {
			t.Errorf("state id %q does not encode its subset %v", s.ID, subset)
		}
	}
}

func TestDirectConstruction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.fa")
	defer teardown()
	//
	res, err := FromRegex("(a|b)*abb")
	if err != nil {
		t.Fatal(err)
	}
	dfa := res.Dfa
	if !dfa.IsDeterministic() {
		t.Fatalf("direct construction produced a non-deterministic automaton")
	}
	// Direct construction of (a|b)*abb is the textbook 4-state DFA.
	if len(dfa.States) != 4 {
		t.Errorf("DFA has %d states, want 4", len(dfa.States))
	}
	initial, err := dfa.Initial()
	if err != nil {
		t.Fatal(err)
	}
	if initial.ID != "1,2,3" {
		t.Errorf("initial state = %q, want firstpos(root) = 1,2,3", initial.ID)
	}
}

// simulate walks a DFA without the recognize package (kept local to avoid
// an import cycle in the test setup).
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

// Both DFA builders must accept exactly the same language.
func TestBuildersAgree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.fa")
	defer teardown()
	//
	for _, re := range []string{"(a|b)*abb", "a(b|c)*", "ab|ba", "(ab)+c?"} {
		nfa, err := thompson.FromRegex(re)
		if err != nil {
			t.Fatal(err)
		}
		viaNFA, err := FromNFA(nfa)
		if err != nil {
			t.Fatal(err)
		}
		direct, err := FromRegex(re)
		if err != nil {
			t.Fatal(err)
		}
		alphabet := direct.Dfa.Alphabet
		for _, input := range enumerate(alphabet, 6) {
			a1 := simulate(viaNFA.Dfa, input)
			a2 := simulate(direct.Dfa, input)
			if a1 != a2 {
				t.Errorf("%q: builders disagree on %q (subset=%v, direct=%v)", re, input, a1, a2)
			}
		}
	}
}

// enumerate generates all strings over the alphabet up to the given length.
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
