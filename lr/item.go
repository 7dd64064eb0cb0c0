package lr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cnf/structhash"

	"github.com/npillmayer/automata/lr/iteratable"
)

// Item is an LR item: a grammar rule with a dot position, and optionally a
// lookahead token value (used for LR(1) item sets; 0 means no lookahead).
// Items are value types and comparable, which lets item sets deduplicate them
// structurally.
type Item struct {
	rule *Rule
	dot  int
	la   int // lookahead token value, 0 for LR(0) items
}

// StartItem returns an item for a rule with the dot at the start, together
// with the symbol after the dot (nil for epsilon-rules).
func StartItem(r *Rule) (Item, *Symbol) {
	i := Item{rule: r}
	return i, i.PeekSymbol()
}

// Rule returns the rule of the item.
func (i Item) Rule() *Rule {
	return i.rule
}

// Lookahead returns the lookahead token value of the item (0 for LR(0) items).
func (i Item) Lookahead() int {
	return i.la
}

// With returns a copy of the item carrying the given lookahead.
func (i Item) With(la int) Item {
	i.la = la
	return i
}

// Core returns the item stripped of its lookahead. LALR(1) construction
// merges item sets whose cores are equal.
func (i Item) Core() Item {
	i.la = 0
	return i
}

// PeekSymbol returns the symbol right after the dot, or nil if the dot is at
// the end of the rule.
func (i Item) PeekSymbol() *Symbol {
	if i.rule == nil || i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot]
}

// Prefix returns the symbols before the dot.
func (i Item) Prefix() []*Symbol {
	if i.rule == nil {
		return nil
	}
	return i.rule.rhs[:i.dot]
}

// Suffix returns the symbols after the symbol right after the dot.
func (i Item) Suffix() []*Symbol {
	if i.rule == nil || i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot+1:]
}

// Advance returns a copy of the item with the dot moved one symbol to the
// right, or an empty item if the dot already is at the end.
func (i Item) Advance() Item {
	if i.rule == nil || i.dot >= len(i.rule.rhs) {
		return Item{}
	}
	return Item{rule: i.rule, dot: i.dot + 1, la: i.la}
}

func (i Item) String() string {
	if i.rule == nil {
		return "[]"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] ::= [", i.rule.LHS.Name)
	for pos, sym := range i.rule.rhs {
		if pos > 0 {
			b.WriteString(" ")
		}
		if pos == i.dot {
			b.WriteString("•")
		}
		b.WriteString(sym.Name)
	}
	if i.dot == len(i.rule.rhs) {
		b.WriteString("•")
	}
	b.WriteString("]")
	if i.la != 0 {
		fmt.Fprintf(&b, ", %d", i.la)
	}
	return b.String()
}

// --- Item sets -------------------------------------------------------------

func newItemSet() *iteratable.Set {
	return iteratable.NewSet(0)
}

func asItem(x interface{}) Item {
	if i, ok := x.(Item); ok {
		return i
	}
	panic("not an item in item set")
}

// Dump is a debugging helper, listing all items of an item set.
func Dump(S *iteratable.Set) {
	for k, x := range S.Values() {
		tracer().Debugf("item %2d = %v", k, asItem(x))
	}
}

func itemSetString(S *iteratable.Set) string {
	var b strings.Builder
	b.WriteString("{")
	first := true
	for _, x := range S.Values() {
		if first {
			b.WriteString(" ")
			first = false
		} else {
			b.WriteString(", ")
		}
		b.WriteString(asItem(x).String())
	}
	b.WriteString(" }")
	return b.String()
}

func forGraphviz(S *iteratable.Set) string {
	var b strings.Builder
	for _, x := range S.Values() {
		b.WriteString(asItem(x).String())
		b.WriteString("\\l")
	}
	return b.String()
}

// itemSetSignature is a content hash over an item set, used to deduplicate
// CFSM states. Items are sorted before hashing so that insertion order does
// not matter.
func itemSetSignature(S *iteratable.Set) string {
	return hashItems(S, false)
}

// coreSignature is a content hash over the cores of an item set, ignoring
// lookaheads. LALR(1) construction merges LR(1) states by this signature.
func coreSignature(S *iteratable.Set) string {
	return hashItems(S, true)
}

func hashItems(S *iteratable.Set, coresOnly bool) string {
	seen := make(map[string]bool, S.Size())
	itemstrs := make([]string, 0, S.Size())
	for _, x := range S.Values() {
		i := asItem(x)
		if coresOnly {
			i = i.Core()
		}
		s := i.String()
		if seen[s] { // items may collapse onto one core
			continue
		}
		seen[s] = true
		itemstrs = append(itemstrs, s)
	}
	sort.Strings(itemstrs)
	c := struct {
		Items []string
	}{Items: itemstrs}
	return fmt.Sprintf("%x", structhash.Sha1(c, 1))
}
