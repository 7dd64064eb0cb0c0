package regex

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestValidateAcceptsWellFormed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.regex")
	defer teardown()
	//
	for _, re := range []string{"a", "a|b", "(a|b)*abb", "a+b?c", "a (b|c)"} {
		rep := Validate(re)
		if !rep.Valid {
			t.Errorf("%q flagged invalid: %v", re, rep.Errors)
		}
	}
}

func TestValidateRejectsMalformed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.regex")
	defer teardown()
	//
	cases := []string{"", "  ", "(a", "a)", "a||b", "|ab", "ab|", "(|a)", "(a|)", "*a", "()"}
	for _, re := range cases {
		rep := Validate(re)
		if rep.Valid {
			t.Errorf("%q not flagged invalid", re)
		}
	}
}

func TestValidateAlphabet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.regex")
	defer teardown()
	//
	rep := Validate("(b|a)*ab")
	if len(rep.Alphabet) != 2 || rep.Alphabet[0] != "a" || rep.Alphabet[1] != "b" {
		t.Errorf("alphabet = %v, want [a b]", rep.Alphabet)
	}
}

func TestPostfixConversion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.regex")
	defer teardown()
	//
	toks := insertConcat(tokenize("(a|b)*abb"))
	postfix, err := toPostfix(toks)
	if err != nil {
		t.Fatal(err)
	}
	var got string
	for _, tok := range postfix {
		got += tok.String()
	}
	if got != "ab|*a·b·b·" {
		t.Errorf("postfix = %q, want %q", got, "ab|*a·b·b·")
	}
}

func TestSyntaxTreePositions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.regex")
	defer teardown()
	//
	tree, err := BuildSyntaxTree("(a|b)*abb")
	if err != nil {
		t.Fatal(err)
	}
	if tree.Positions() != 5 {
		t.Fatalf("positions = %d, want 5", tree.Positions())
	}
	if got := tree.PositionsOf("a"); len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("positions of 'a' = %v, want [1 3]", got)
	}
	root := tree.Root
	if root.Nullable {
		t.Errorf("root of (a|b)*abb must not be nullable")
	}
	first := root.First.Sorted()
	if len(first) != 3 || first[0] != 1 || first[1] != 2 || first[2] != 3 {
		t.Errorf("firstpos(root) = %v, want [1 2 3]", first)
	}
	last := root.Last.Sorted()
	if len(last) != 1 || last[0] != 5 {
		t.Errorf("lastpos(root) = %v, want [5]", last)
	}
}

// The followpos table for (a|b)*abb from the dragon book:
//
//    1: {1,2,3}  2: {1,2,3}  3: {4}  4: {5}  5: {}
func TestFollowpos(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.regex")
	defer teardown()
	//
	tree, err := BuildSyntaxTree("(a|b)*abb")
	if err != nil {
		t.Fatal(err)
	}
	expect := map[int][]int{
		1: {1, 2, 3},
		2: {1, 2, 3},
		3: {4},
		4: {5},
		5: {},
	}
	for pos, want := range expect {
		got := tree.Follow[pos].Sorted()
		if len(got) != len(want) {
			t.Errorf("followpos(%d) = %v, want %v", pos, got, want)
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("followpos(%d) = %v, want %v", pos, got, want)
			}
		}
	}
}

func TestAugmentedTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.regex")
	defer teardown()
	//
	tree, err := BuildAugmented("(a|b)*abb")
	if err != nil {
		t.Fatal(err)
	}
	if tree.EndPosition != 6 {
		t.Errorf("end marker position = %d, want 6", tree.EndPosition)
	}
	if len(tree.Alphabet) != 2 {
		t.Errorf("alphabet = %v, the end marker must not be part of it", tree.Alphabet)
	}
}

func TestNullableOperators(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.regex")
	defer teardown()
	//
	cases := []struct {
		re       string
		nullable bool
	}{
		{"a*", true},
		{"a?", true},
		{"a+", false},
		{"a*b", false},
		{"a*b?", true},
		{"(ab)+", false},
		{"(a?)+", true},
	}
	for _, c := range cases {
		tree, err := BuildSyntaxTree(c.re)
		if err != nil {
			t.Fatal(err)
		}
		if tree.Root.Nullable != c.nullable {
			t.Errorf("nullable(%q) = %v, want %v", c.re, tree.Root.Nullable, c.nullable)
		}
	}
}

func TestMalformedPostfixDetected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.regex")
	defer teardown()
	//
	if _, err := toPostfix(insertConcat(tokenize("(a"))); err == nil {
		t.Errorf("unclosed group not detected")
	}
}
