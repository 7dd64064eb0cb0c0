package scanner

import (
	"strings"
	"testing"
	"text/scanner"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestGoTokenizer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.scanner")
	defer teardown()
	//
	tok := GoTokenizer("test", strings.NewReader("a + 12"))
	var kinds []int
	for {
		token := tok.NextToken()
		if token.TokType() == EOF {
			break
		}
		kinds = append(kinds, int(token.TokType()))
	}
	want := []int{scanner.Ident, '+', scanner.Int}
	if len(kinds) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(kinds))
	}
	for i, k := range kinds {
		if k != want[i] {
			t.Errorf("token %d: expected type %d, got %d", i, want[i], k)
		}
	}
}

func TestSentenceTokenizer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.scanner")
	defer teardown()
	//
	vals := map[string]int{"id": 1000, "+": '+'}
	tok := Sentence("id + id", vals)
	var kinds []int
	for {
		token := tok.NextToken()
		if token.TokType() == EOF {
			break
		}
		kinds = append(kinds, int(token.TokType()))
	}
	want := []int{1000, '+', 1000}
	for i, k := range kinds {
		if k != want[i] {
			t.Errorf("token %d: expected type %d, got %d", i, want[i], k)
		}
	}
	// EOF repeats
	if tok.NextToken().TokType() != EOF {
		t.Error("expected EOF to repeat after input is exhausted")
	}
}

func TestSentenceTokenizerUnknownWord(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.scanner")
	defer teardown()
	//
	var scanErr error
	tok := Sentence("id ?? id", map[string]int{"id": 1000})
	tok.SetErrorHandler(func(e error) { scanErr = e })
	cnt := 0
	for tok.NextToken().TokType() != EOF {
		cnt++
	}
	if cnt != 2 {
		t.Errorf("expected unknown word to be skipped, got %d tokens", cnt)
	}
	if scanErr == nil {
		t.Error("expected the error handler to be called")
	}
}

func TestLexmachineAdapter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "automata.scanner")
	defer teardown()
	//
	ids := map[string]int{"+": '+', "*": '*'}
	adapter, err := NewLMAdapter(nil, []string{"+", "*"}, nil, ids)
	if err != nil {
		t.Fatalf("cannot compile lexer: %v", err)
	}
	scan, err := adapter.Scanner("+*+")
	if err != nil {
		t.Fatalf("cannot create scanner: %v", err)
	}
	var kinds []int
	for {
		token := scan.NextToken()
		if token.TokType() == EOF {
			break
		}
		kinds = append(kinds, int(token.TokType()))
	}
	want := []int{'+', '*', '+'}
	if len(kinds) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(kinds))
	}
	for i, k := range kinds {
		if k != want[i] {
			t.Errorf("token %d: expected type %d, got %d", i, want[i], k)
		}
	}
}
