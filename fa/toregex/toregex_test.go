package toregex

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/automata"
	"github.com/npillmayer/automata/fa/recognize"
	"github.com/npillmayer/automata/fa/thompson"
	"github.com/npillmayer/automata/regex"
)

// The classic two-state example: A-0->A, A-1->B, B-0->B, B-1->A, with B
// accepting. The language is "strings over {0,1} with an odd number of 1s
// read in this particular wiring"; we verify by enumeration rather than by
// syntactic comparison.
func ardenExample() *automata.Automaton {
	a := automata.NewAutomaton(automata.DFA, []string{"0", "1"})
	a.AddState(automata.State{ID: "A", Initial: true})
	a.AddState(automata.State{ID: "B", Final: true})
	a.AddTransition(automata.Transition{From: "A", To: "A", Symbol: "0"})
	a.AddTransition(automata.Transition{From: "A", To: "B", Symbol: "1"})
	a.AddTransition(automata.Transition{From: "B", To: "B", Symbol: "0"})
	a.AddTransition(automata.Transition{From: "B", To: "A", Symbol: "1"})
	return a
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

// sameLanguage checks by enumeration that an automaton and an expression
// accept identical string sets up to the given length.
func sameLanguage(t *testing.T, a *automata.Automaton, e regex.Expr, maxLen int) {
	t.Helper()
	derived, err := thompson.FromExpr(e)
	if err != nil {
		t.Fatal(err)
	}
	for _, input := range enumerate(a.Alphabet, maxLen) {
		want := recognize.Recognize(a, input).Accepted
		got := recognize.Recognize(derived, input).Accepted
		if want != got {
			t.Errorf("expression %q disagrees with automaton on %q (automaton=%v, regex=%v)",
				e, input, want, got)
		}
	}
}

func TestArdenExample(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.fa")
	defer teardown()
	//
	a := ardenExample()
	e, trace, err := Arden(a)
	if err != nil {
		t.Fatal(err)
	}
	if len(trace) < 3 {
		t.Errorf("expected a step trace (system, eliminations, result), got %d entries", len(trace))
	}
	sameLanguage(t, a, e, 5)
}

func TestEliminateExample(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.fa")
	defer teardown()
	//
	a := ardenExample()
	e, trace, err := Eliminate(a)
	if err != nil {
		t.Fatal(err)
	}
	if len(trace) < 3 {
		t.Errorf("expected a step trace, got %d entries", len(trace))
	}
	sameLanguage(t, a, e, 5)
}

func TestConvertersRequireInitialAndFinal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.fa")
	defer teardown()
	//
	noFinal := automata.NewAutomaton(automata.DFA, []string{"a"})
	noFinal.AddState(automata.State{ID: "s", Initial: true})
	if _, _, err := Arden(noFinal); err == nil {
		t.Errorf("Arden accepted an automaton without final states")
	}
	if _, _, err := Eliminate(noFinal); err == nil {
		t.Errorf("Eliminate accepted an automaton without final states")
	}
	noInitial := automata.NewAutomaton(automata.DFA, []string{"a"})
	noInitial.AddState(automata.State{ID: "s", Final: true})
	if _, _, err := Arden(noInitial); err == nil {
		t.Errorf("Arden accepted an automaton without an initial state")
	}
}

// testAutomata builds a handful of varied automata for the agreement test.
func testAutomata() map[string]*automata.Automaton {
	out := make(map[string]*automata.Automaton)

	out["two-state-toggle"] = ardenExample()

	single := automata.NewAutomaton(automata.DFA, []string{"a"})
	single.AddState(automata.State{ID: "s", Initial: true, Final: true})
	single.AddTransition(automata.Transition{From: "s", To: "s", Symbol: "a"})
	out["self-loop-accepting"] = single

	chain := automata.NewAutomaton(automata.DFA, []string{"a", "b"})
	chain.AddState(automata.State{ID: "0", Initial: true})
	chain.AddState(automata.State{ID: "1"})
	chain.AddState(automata.State{ID: "2", Final: true})
	chain.AddTransition(automata.Transition{From: "0", To: "1", Symbol: "a"})
	chain.AddTransition(automata.Transition{From: "1", To: "2", Symbol: "b"})
	chain.AddTransition(automata.Transition{From: "2", To: "1", Symbol: "a"})
	out["chain-with-back-edge"] = chain

	multi := automata.NewAutomaton(automata.DFA, []string{"x", "y"})
	multi.AddState(automata.State{ID: "p", Initial: true, Final: true})
	multi.AddState(automata.State{ID: "q", Final: true})
	multi.AddTransition(automata.Transition{From: "p", To: "q", Symbol: "x"})
	multi.AddTransition(automata.Transition{From: "q", To: "p", Symbol: "y"})
	out["two-finals"] = multi

	nfa := automata.NewAutomaton(automata.NFA, []string{"a", "b"})
	nfa.AddState(automata.State{ID: "n0", Initial: true})
	nfa.AddState(automata.State{ID: "n1"})
	nfa.AddState(automata.State{ID: "n2", Final: true})
	nfa.AddTransition(automata.Transition{From: "n0", To: "n0", Symbol: "a"})
	nfa.AddTransition(automata.Transition{From: "n0", To: "n1", Symbol: "a"})
	nfa.AddTransition(automata.Transition{From: "n1", To: "n2", Symbol: "b"})
	out["nondeterministic"] = nfa

	return out
}

// Both conversion algorithms must produce regexes accepting identical
// languages, even when the expressions differ syntactically.
func TestArdenAndEliminationAgree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.fa")
	defer teardown()
	//
	for name, a := range testAutomata() {
		byArden, _, err := Arden(a)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		byElimination, _, err := Eliminate(a)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		sameLanguage(t, a, byArden, 5)
		sameLanguage(t, a, byElimination, 5)
	}
}
