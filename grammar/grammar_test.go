package grammar

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const exprGrammar = `
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`

func parseExpr(t *testing.T) *Grammar {
	t.Helper()
	g, err := Parse("Expressions", exprGrammar, nil)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestParseGrammarText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.grammar")
	defer teardown()
	//
	g := parseExpr(t)
	if g.Start != "E" {
		t.Errorf("start symbol = %q, want E", g.Start)
	}
	if len(g.Productions) != 6 {
		t.Errorf("%d productions, want 6:\n%v", len(g.Productions), g)
	}
	for _, term := range []string{"+", "*", "(", ")", "id"} {
		if !g.IsTerminal(term) {
			t.Errorf("%q not classified as terminal", term)
		}
	}
	for _, nt := range []string{"E", "T", "F"} {
		if !g.IsNonTerminal(nt) {
			t.Errorf("%q not classified as non-terminal", nt)
		}
	}
}

func TestParseEpsilonProduction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.grammar")
	defer teardown()
	//
	g, err := Parse("EpsTest", "S -> a S | ε", nil)
	if err != nil {
		t.Fatal(err)
	}
	prods := g.ProductionsFor("S")
	if len(prods) != 2 || !prods[1].IsEpsilon() {
		t.Errorf("ε-production not recognized: %v", prods)
	}
}

func TestParseWithExplicitTerminals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.grammar")
	defer teardown()
	//
	g, err := Parse("Explicit", "s -> x s | y", []string{"x", "y"})
	if err != nil {
		t.Fatal(err)
	}
	if !g.IsNonTerminal("s") {
		t.Errorf("LHS %q must be a non-terminal even in lower case", "s")
	}
	if _, err := Parse("Broken", "s -> x z", []string{"x"}); err == nil {
		t.Errorf("unknown symbol z not rejected")
	}
}

func TestValidateMissingStart(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.grammar")
	defer teardown()
	//
	g := &Grammar{Name: "Broken"}
	if errs := g.Validate(); len(errs) == 0 {
		t.Errorf("missing start symbol not flagged")
	}
}

func TestFreshNonTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.grammar")
	defer teardown()
	//
	g := parseExpr(t)
	fresh := g.FreshNonTerminal("E")
	if fresh != "E'" {
		t.Errorf("fresh symbol = %q, want E'", fresh)
	}
	g.AddNonTerminal("E'")
	if fresh = g.FreshNonTerminal("E"); fresh != "E''" {
		t.Errorf("fresh symbol = %q, want E''", fresh)
	}
}

func TestFirstSetsExpressionGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.grammar")
	defer teardown()
	//
	g := parseExpr(t)
	sets, err := Analyze(g)
	if err != nil {
		t.Fatal(err)
	}
	// FIRST(E) = FIRST(T) = FIRST(F) = { ( , id }
	for _, nt := range []string{"E", "T", "F"} {
		first := sets.First[nt]
		if len(first) != 2 || !first.Has("(") || !first.Has("id") {
			t.Errorf("FIRST(%s) = %v, want {(, id}", nt, first)
		}
	}
}

func TestFollowSetsExpressionGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.grammar")
	defer teardown()
	//
	g := parseExpr(t)
	sets, err := Analyze(g)
	if err != nil {
		t.Fatal(err)
	}
	follow := sets.Follow["E"]
	if !follow.Has(EndMark) || !follow.Has("+") || !follow.Has(")") {
		t.Errorf("FOLLOW(E) = %v, want {$, +, )}", follow)
	}
	follow = sets.Follow["F"]
	for _, want := range []string{"+", "*", ")", EndMark} {
		if !follow.Has(want) {
			t.Errorf("FOLLOW(F) = %v, missing %q", follow, want)
		}
	}
}

func TestCitationsRecorded(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.grammar")
	defer teardown()
	//
	g := parseExpr(t)
	sets, err := Analyze(g)
	if err != nil {
		t.Fatal(err)
	}
	if len(sets.Citations) == 0 {
		t.Fatal("no citations recorded")
	}
	found := false
	for _, c := range sets.Citations {
		if strings.Contains(c, "FIRST(F)") && strings.Contains(c, "id") {
			found = true
		}
	}
	if !found {
		t.Errorf("no citation explains FIRST(F) ∋ id:\n%s", strings.Join(sets.Citations, "\n"))
	}
}

func TestNullable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.grammar")
	defer teardown()
	//
	g, err := Parse("Nullable", "S -> A B\nA -> a | ε\nB -> b | ε", nil)
	if err != nil {
		t.Fatal(err)
	}
	sets, err := Analyze(g)
	if err != nil {
		t.Fatal(err)
	}
	for _, nt := range []string{"S", "A", "B"} {
		if !sets.Nullable[nt] {
			t.Errorf("%s should be nullable", nt)
		}
	}
	first := sets.First["S"]
	if !first.Has("a") || !first.Has("b") {
		t.Errorf("FIRST(S) = %v, want {a, b}", first)
	}
}
