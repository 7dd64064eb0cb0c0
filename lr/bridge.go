package lr

import (
	"unicode/utf8"

	"github.com/npillmayer/automata/grammar"
)

// multiCharTokenBase is the first token value handed out to terminals which
// are not single runes (like "id"). Single-rune terminals carry their rune
// value, mirroring what scanners produce for one-character tokens.
const multiCharTokenBase = 1000

// FromDefinition derives an LR grammar from a text-based grammar definition.
// Terminals consisting of a single rune get that rune as their token value;
// longer terminals are numbered from a fixed base upward, in the order they
// appear. The returned map translates terminal names to token values, for
// driving a parser from plain sentences.
func FromDefinition(def *grammar.Grammar) (*Grammar, map[string]int, error) {
	b := NewGrammarBuilder(def.Name)
	tokvals := make(map[string]int)
	next := multiCharTokenBase
	valueOf := func(t string) int {
		if v, ok := tokvals[t]; ok {
			return v
		}
		var v int
		if r, size := utf8.DecodeRuneInString(t); size == len(t) {
			v = int(r)
		} else {
			v = next
			next++
		}
		tokvals[t] = v
		return v
	}
	// keep production order; the first production's LHS is the start symbol
	for _, p := range def.Productions {
		rb := b.LHS(p.LHS)
		if p.IsEpsilon() {
			rb.Epsilon()
			continue
		}
		for _, sym := range p.RHS {
			if def.IsTerminal(sym) {
				rb = rb.T(sym, valueOf(sym))
			} else {
				rb = rb.N(sym)
			}
		}
		rb.End()
	}
	g, err := b.Grammar()
	if err != nil {
		return nil, nil, err
	}
	tokvals["$"] = EOFType
	return g, tokvals, nil
}
