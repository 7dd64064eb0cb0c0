package main

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSessionOffersBothMinimizations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.fa")
	defer teardown()
	//
	s := &faState{}
	s.setRegex("(a|b)*abb")
	if s.min == nil || s.sig == nil {
		t.Fatal("expected both minimized automata to be built")
	}
	for _, which := range []string{"nfa", "dfa", "min", "sig"} {
		if s.pick([]string{which}) == nil {
			t.Errorf("expected automaton %q to be selectable", which)
		}
	}
	if len(s.sig.Dfa.States) > len(s.sub.Dfa.States) {
		t.Error("significant-states merge grew the automaton")
	}
}
