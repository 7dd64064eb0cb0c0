package toregex

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/automata/fa/minimize"
	"github.com/npillmayer/automata/fa/recognize"
	"github.com/npillmayer/automata/fa/subset"
	"github.com/npillmayer/automata/fa/thompson"
)

// For any regex R: NFA -> DFA -> minimize -> back to a regex (either
// method) must preserve the accepted language, verified by exhaustive
// enumeration up to length 6.
func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.fa")
	defer teardown()
	//
	for _, re := range []string{"(a|b)*abb", "a(b|c)*", "ab|ba", "(ab)+", "a?b*"} {
		nfa, err := thompson.FromRegex(re)
		if err != nil {
			t.Fatal(err)
		}
		res, err := subset.FromNFA(nfa)
		if err != nil {
			t.Fatal(err)
		}
		min, err := minimize.Partition(res.Dfa)
		if err != nil {
			t.Fatal(err)
		}
		byArden, _, err := Arden(min)
		if err != nil {
			t.Fatalf("%q: %v", re, err)
		}
		byElimination, _, err := Eliminate(min)
		if err != nil {
			t.Fatalf("%q: %v", re, err)
		}
		ardenNFA, err := thompson.FromExpr(byArden)
		if err != nil {
			t.Fatal(err)
		}
		elimNFA, err := thompson.FromExpr(byElimination)
		if err != nil {
			t.Fatal(err)
		}
		for _, input := range enumerate(nfa.Alphabet, 6) {
			want := recognize.Recognize(nfa, input).Accepted
			if got := recognize.Recognize(ardenNFA, input).Accepted; got != want {
				t.Errorf("%q: Arden round-trip %q disagrees on %q", re, byArden, input)
			}
			if got := recognize.Recognize(elimNFA, input).Accepted; got != want {
				t.Errorf("%q: elimination round-trip %q disagrees on %q", re, byElimination, input)
			}
		}
	}
}
