package opp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/automata/grammar"
)

const exprText = `
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`

func exprTable(t *testing.T) *Table {
	t.Helper()
	g, err := grammar.Parse("expr", exprText, nil)
	if err != nil {
		t.Fatalf("cannot parse grammar: %v", err)
	}
	tbl, err := BuildTable(g)
	if err != nil {
		t.Fatalf("cannot build precedence table: %v", err)
	}
	return tbl
}

func TestCheckOperatorGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.lr")
	defer teardown()
	//
	g, err := grammar.Parse("bad", `
S -> A B | a
A -> a
B -> b | ε
`, nil)
	if err != nil {
		t.Fatalf("cannot parse grammar: %v", err)
	}
	violations := Check(g)
	if len(violations) != 2 { // adjacent non-terminals and an epsilon-production
		t.Errorf("expected 2 violations, got %v", violations)
	}
	if _, err := BuildTable(g); err == nil {
		t.Error("expected BuildTable to reject a non-operator grammar")
	}
}

func TestLeadingTrailing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.lr")
	defer teardown()
	//
	tbl := exprTable(t)
	leading := strings.Join(tbl.Leading["E"], " ")
	for _, term := range []string{"(", "*", "+", "id"} {
		if !strings.Contains(leading, term) {
			t.Errorf("LEADING(E) misses %q, got %v", term, tbl.Leading["E"])
		}
	}
	trailing := strings.Join(tbl.Trailing["F"], " ")
	for _, term := range []string{")", "id"} {
		if !strings.Contains(trailing, term) {
			t.Errorf("TRAILING(F) misses %q, got %v", term, tbl.Trailing["F"])
		}
	}
}

func TestRelations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.lr")
	defer teardown()
	//
	tbl := exprTable(t)
	if !tbl.IsPrecedenceGrammar() {
		t.Fatalf("expected a conflict-free table, got %v", tbl.Conflicts)
	}
	cases := []struct {
		a, b string
		rel  Relation
	}{
		{"+", "*", Lower},
		{"*", "+", Higher},
		{"(", ")", Equal},
		{"id", "+", Higher},
		{EndMarker, "id", Lower},
		{"+", EndMarker, Higher},
	}
	for _, c := range cases {
		if got := tbl.Relation(c.a, c.b); got != c.rel {
			t.Errorf("expected %s %c %s, got %c", c.a, c.rel, c.b, got)
		}
	}
	var buf bytes.Buffer
	tbl.Write(&buf)
	if buf.Len() == 0 {
		t.Error("expected a rendered relation table")
	}
}

func TestParseAccepts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.lr")
	defer teardown()
	//
	tbl := exprTable(t)
	for _, input := range []string{"id", "id + id * id", "( id + id ) * id"} {
		res, err := tbl.Parse(input)
		if err != nil {
			t.Fatalf("parse of %q failed: %v", input, err)
		}
		if !res.Accepted {
			t.Errorf("expected %q to be accepted, reason: %s", input, res.Reason)
		}
		last := res.Steps[len(res.Steps)-1]
		if last.Action != "accept" {
			t.Errorf("expected final step accept, got %q", last.Action)
		}
	}
}

func TestParseRejects(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.lr")
	defer teardown()
	//
	tbl := exprTable(t)
	for _, input := range []string{"id +", "+ id", "id id"} {
		res, err := tbl.Parse(input)
		if err != nil {
			t.Fatalf("parse of %q errored: %v", input, err)
		}
		if res.Accepted {
			t.Errorf("expected %q to be rejected", input)
		}
		if res.Reason == "" {
			t.Errorf("expected a rejection reason for %q", input)
		}
	}
}

func TestParseUnknownToken(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.lr")
	defer teardown()
	//
	tbl := exprTable(t)
	if _, err := tbl.Parse("id ? id"); err == nil {
		t.Error("expected an error for an unknown token")
	}
}
