package recognize

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/automata"
	"github.com/npillmayer/automata/fa/subset"
	"github.com/npillmayer/automata/fa/thompson"
)

func dragonDFA(t *testing.T) *automata.Automaton {
	res, err := subset.FromRegex("(a|b)*abb")
	if err != nil {
		t.Fatal(err)
	}
	return res.Dfa
}

func TestDFAAccepts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.fa")
	defer teardown()
	//
	dfa := dragonDFA(t)
	for _, input := range []string{"abb", "aabb", "babb", "abababb"} {
		res := DFA(dfa, input)
		if !res.Accepted {
			t.Errorf("%q rejected: %s", input, res.Reason)
		}
		// one step per symbol plus the initial step
		if len(res.Steps) != len(input)+1 {
			t.Errorf("%q: %d steps, want %d", input, len(res.Steps), len(input)+1)
		}
	}
}

func TestDFARejectsWithReason(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.fa")
	defer teardown()
	//
	dfa := dragonDFA(t)
	res := DFA(dfa, "ab")
	if res.Accepted {
		t.Fatalf("%q must not be accepted", "ab")
	}
	if !strings.Contains(res.Reason, "non-accepting") {
		t.Errorf("unexpected rejection reason %q", res.Reason)
	}
	res = DFA(dfa, "abc")
	if res.Accepted || !strings.Contains(res.Reason, "alphabet") {
		t.Errorf("unknown symbol not reported, reason = %q", res.Reason)
	}
}

func TestNFASimulation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.fa")
	defer teardown()
	//
	nfa, err := thompson.FromRegex("(a|b)*abb")
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range []struct {
		input string
		want  bool
	}{
		{"abb", true},
		{"babb", true},
		{"ab", false},
		{"", false},
	} {
		res := NFA(nfa, c.input)
		if res.Accepted != c.want {
			t.Errorf("NFA(%q) = %v, want %v (%s)", c.input, res.Accepted, c.want, res.Reason)
		}
	}
}

func TestDispatcher(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.fa")
	defer teardown()
	//
	nfa, err := thompson.FromRegex("a*")
	if err != nil {
		t.Fatal(err)
	}
	if res := Recognize(nfa, "aaa"); !res.Accepted {
		t.Errorf("dispatcher failed on ε-NFA: %s", res.Reason)
	}
	dfa := dragonDFA(t)
	if res := Recognize(dfa, "abb"); !res.Accepted {
		t.Errorf("dispatcher failed on DFA: %s", res.Reason)
	}
}

func TestEmptyInputAtFinalState(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.fa")
	defer teardown()
	//
	nfa, err := thompson.FromRegex("a*")
	if err != nil {
		t.Fatal(err)
	}
	if res := NFA(nfa, ""); !res.Accepted {
		t.Errorf("a* must accept the empty word, got: %s", res.Reason)
	}
}
