package regex

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSimplifyIdentities(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.regex")
	defer teardown()
	//
	a, b := Sym{"a"}, Sym{"b"}
	cases := []struct {
		in   Expr
		want string
	}{
		{Alt(Empty{}, a), "a"},
		{Cat(Eps{}, a), "a"},
		{Cat(Empty{}, a), "∅"},
		{Iterate(Empty{}), "ε"},
		{Iterate(Eps{}), "ε"},
		{Alt(a, a), "a"},
		{Iterate(Star{Inner: a}), "a*"},
		{Alt(Eps{}, Star{Inner: a}), "a*"},
		{Cat(Star{Inner: a}, Star{Inner: a}), "a*"},
		{Alt(a, Alt(b, a)), "a|b"},
		{Cat(a, Cat(b, a)), "aba"},
	}
	for _, c := range cases {
		got := Simplify(c.in)
		if got.String() != c.want {
			t.Errorf("Simplify(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPrintingPrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.regex")
	defer teardown()
	//
	a, b, c := Sym{"a"}, Sym{"b"}, Sym{"c"}
	// (a|b)c needs parentheses, ab|c does not
	e1 := Concat{Factors: []Expr{Union{Terms: []Expr{a, b}}, c}}
	if e1.String() != "(a|b)c" {
		t.Errorf("got %q, want %q", e1.String(), "(a|b)c")
	}
	e2 := Union{Terms: []Expr{Concat{Factors: []Expr{a, b}}, c}}
	if e2.String() != "ab|c" {
		t.Errorf("got %q, want %q", e2.String(), "ab|c")
	}
	e3 := Star{Inner: Union{Terms: []Expr{a, b}}}
	if e3.String() != "(a|b)*" {
		t.Errorf("got %q, want %q", e3.String(), "(a|b)*")
	}
}

func TestEpsilonUnionKeptWhenNotNullable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.regex")
	defer teardown()
	//
	a := Sym{"a"}
	got := Alt(Eps{}, a)
	if got.String() != "ε|a" {
		t.Errorf("got %q, want %q", got.String(), "ε|a")
	}
}
