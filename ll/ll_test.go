package ll

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/automata/grammar"
)

const exprGrammar = `
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`

func exprTransformed(t *testing.T) *TransformResult {
	t.Helper()
	g, err := grammar.Parse("expr", exprGrammar, nil)
	if err != nil {
		t.Fatalf("cannot parse grammar: %v", err)
	}
	res, err := Transform(g)
	if err != nil {
		t.Fatalf("cannot transform grammar: %v", err)
	}
	return res
}

func TestEliminateLeftRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.ll")
	defer teardown()
	//
	res := exprTransformed(t)
	g := res.Grammar
	for _, p := range g.Productions {
		if len(p.RHS) > 0 && p.RHS[0] == p.LHS {
			t.Errorf("left-recursive production survived: %v", p)
		}
	}
	for _, fresh := range []string{"E'", "T'"} {
		if !g.IsNonTerminal(fresh) {
			t.Errorf("expected fresh non-terminal %q", fresh)
		}
	}
	if len(res.Steps) == 0 {
		t.Error("expected a non-empty step log")
	}
}

func TestLeftFactoring(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.ll")
	defer teardown()
	//
	g, err := grammar.Parse("stmt", `
S -> if E then S else S | if E then S | a
E -> b
`, nil)
	if err != nil {
		t.Fatalf("cannot parse grammar: %v", err)
	}
	res, err := Transform(g)
	if err != nil {
		t.Fatalf("cannot transform grammar: %v", err)
	}
	prods := res.Grammar.ProductionsFor("S")
	for i, p := range prods {
		for j := i + 1; j < len(prods); j++ {
			if len(p.RHS) > 0 && len(prods[j].RHS) > 0 && p.RHS[0] == prods[j].RHS[0] {
				t.Errorf("alternatives of S still share a prefix: %v and %v", p, prods[j])
			}
		}
	}
	if !res.Grammar.IsNonTerminal("S'") {
		t.Error("expected fresh non-terminal S' from left factoring")
	}
}

func TestExprGrammarIsLL1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.ll")
	defer teardown()
	//
	res := exprTransformed(t)
	tbl, err := BuildTable(res.Grammar)
	if err != nil {
		t.Fatalf("cannot build table: %v", err)
	}
	if !tbl.IsLL1() {
		t.Errorf("expected transformed grammar to be LL(1), conflicts: %v", tbl.Conflicts)
	}
	first := tbl.Sets.First["F"]
	for _, want := range []string{"(", "id"} {
		if !first.Has(want) {
			t.Errorf("FIRST(F) misses %q, got %v", want, first)
		}
	}
	if p, ok := tbl.Lookup("E'", "+"); !ok || p.LHS != "E'" {
		t.Errorf("expected table entry M[E',+], got %v (%v)", p, ok)
	}
	if p, ok := tbl.Lookup("E'", ")"); !ok || !p.IsEpsilon() {
		t.Errorf("expected M[E',)] to be the epsilon production, got %v (%v)", p, ok)
	}
}

func TestTableConflicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.ll")
	defer teardown()
	//
	g, err := grammar.Parse("amb", `
S -> a b | a c
`, nil)
	if err != nil {
		t.Fatalf("cannot parse grammar: %v", err)
	}
	tbl, err := BuildTable(g)
	if err != nil {
		t.Fatalf("cannot build table: %v", err)
	}
	if tbl.IsLL1() {
		t.Error("expected a conflict for the common-prefix grammar")
	}
	if _, ok := tbl.Lookup("S", "a"); !ok {
		t.Error("conflicting cell should still hold the last-written production")
	}
}

func TestPredictiveParseAccepts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.ll")
	defer teardown()
	//
	res := exprTransformed(t)
	tbl, err := BuildTable(res.Grammar)
	if err != nil {
		t.Fatalf("cannot build table: %v", err)
	}
	tokens, err := Tokenize(res.Grammar, "id + id * id")
	if err != nil {
		t.Fatalf("cannot tokenize: %v", err)
	}
	parse := tbl.Parse(tokens)
	if !parse.Accepted {
		t.Fatalf("expected sentence to be accepted, reason: %s", parse.Reason)
	}
	last := parse.Steps[len(parse.Steps)-1]
	if last.Action != "accept" {
		t.Errorf("expected final step to be accept, got %q", last.Action)
	}
}

func TestPredictiveParseRejects(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.ll")
	defer teardown()
	//
	res := exprTransformed(t)
	tbl, err := BuildTable(res.Grammar)
	if err != nil {
		t.Fatalf("cannot build table: %v", err)
	}
	tokens, err := Tokenize(res.Grammar, "id +")
	if err != nil {
		t.Fatalf("cannot tokenize: %v", err)
	}
	parse := tbl.Parse(tokens)
	if parse.Accepted {
		t.Fatal("expected truncated sentence to be rejected")
	}
	if parse.Reason == "" {
		t.Error("expected a rejection reason")
	}
	if !strings.Contains(parse.Reason, "$") && !strings.Contains(parse.Reason, "lookahead") {
		t.Errorf("unexpected rejection reason: %s", parse.Reason)
	}
}

func TestTokenizeRejectsUnknown(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.ll")
	defer teardown()
	//
	res := exprTransformed(t)
	if _, err := Tokenize(res.Grammar, "id ++ id"); err == nil {
		t.Error("expected an error for an unknown token")
	}
}

func TestTableEntriesPastNullablePrefix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.ll")
	defer teardown()
	//
	g, err := grammar.Parse("nullable-prefix", `
S -> A b
A -> a | ε
`, nil)
	if err != nil {
		t.Fatalf("cannot parse grammar: %v", err)
	}
	tbl, err := BuildTable(g)
	if err != nil {
		t.Fatalf("cannot build table: %v", err)
	}
	if !tbl.IsLL1() {
		t.Fatalf("unexpected conflicts: %v", tbl.Conflicts)
	}
	// FIRST(A b) = {a, b}, since A is nullable
	for _, la := range []string{"a", "b"} {
		p, ok := tbl.Lookup("S", la)
		if !ok {
			t.Fatalf("expected an entry at M[S,%s]", la)
		}
		if p.String() != "S -> A b" {
			t.Errorf("expected S -> A b at M[S,%s], got %v", la, p)
		}
	}
	if p, ok := tbl.Lookup("A", "b"); !ok || !p.IsEpsilon() {
		t.Errorf("expected the ε-production at M[A,b], got %v", p)
	}
}
