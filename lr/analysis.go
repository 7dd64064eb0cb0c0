package lr

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// IntSet is a small set of terminal token values, used for FIRST and FOLLOW
// sets. The epsilon marker is the value 0.
type IntSet struct {
	vals map[int]struct{}
}

func newIntSet() *IntSet {
	return &IntSet{vals: make(map[int]struct{})}
}

// Add inserts a value, reporting whether the set grew.
func (s *IntSet) Add(v int) bool {
	if _, ok := s.vals[v]; ok {
		return false
	}
	s.vals[v] = struct{}{}
	return true
}

// Contains reports membership of a value.
func (s *IntSet) Contains(v int) bool {
	if s == nil {
		return false
	}
	_, ok := s.vals[v]
	return ok
}

// Size returns the number of values in the set.
func (s *IntSet) Size() int {
	if s == nil {
		return 0
	}
	return len(s.vals)
}

// AppendTo appends the values of the set to a slice, in ascending order.
func (s *IntSet) AppendTo(r []int) []int {
	if s == nil {
		return r
	}
	at := len(r)
	for v := range s.vals {
		r = append(r, v)
	}
	slices.Sort(r[at:])
	return r
}

// addAllButEps inserts all values of other except the epsilon marker,
// reporting whether the set grew.
func (s *IntSet) addAllButEps(other *IntSet) bool {
	if other == nil {
		return false
	}
	grew := false
	for v := range other.vals {
		if v == EpsilonType {
			continue
		}
		if s.Add(v) {
			grew = true
		}
	}
	return grew
}

func (s *IntSet) String() string {
	vals := s.AppendTo(nil)
	strs := make([]string, len(vals))
	for i, v := range vals {
		strs[i] = fmt.Sprintf("%d", v)
	}
	return "[" + strings.Join(strs, " ") + "]"
}

// === Grammar analysis ======================================================

// LRAnalysis is an analyzer for a grammar, computing FIRST and FOLLOW sets
// of all non-terminals, together with the set of epsilon-derivable symbols.
// Token values are used as set members throughout, with 0 denoting epsilon.
type LRAnalysis struct {
	g          *Grammar
	derivesEps map[*Symbol]bool
	first      map[*Symbol]*IntSet
	follow     map[*Symbol]*IntSet
}

// Analysis analyses a grammar and computes FIRST and FOLLOW sets. The fixed
// point iterations are monotone over a finite lattice; the iteration cap
// only guards against implementation bugs, and exceeding it is an error.
func Analysis(g *Grammar) (*LRAnalysis, error) {
	ga := &LRAnalysis{
		g:          g,
		derivesEps: make(map[*Symbol]bool),
		first:      make(map[*Symbol]*IntSet),
		follow:     make(map[*Symbol]*IntSet),
	}
	ga.markEps()
	ga.initSets()
	bound := ga.boundIterations()
	if err := ga.computeFirst(bound); err != nil {
		return nil, err
	}
	if err := ga.computeFollow(bound); err != nil {
		return nil, err
	}
	return ga, nil
}

// Grammar returns the analysed grammar.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// First returns FIRST(sym). For a terminal this is the terminal's token
// value; 0 denotes epsilon.
func (ga *LRAnalysis) First(sym *Symbol) *IntSet {
	return ga.first[sym]
}

// Follow returns FOLLOW(sym) for a non-terminal.
func (ga *LRAnalysis) Follow(sym *Symbol) *IntSet {
	return ga.follow[sym]
}

// DerivesEpsilon returns whether sym can derive the empty string.
func (ga *LRAnalysis) DerivesEpsilon(sym *Symbol) bool {
	return ga.derivesEps[sym]
}

// markEps finds all non-terminals which derive epsilon, by fixed point
// iteration.
func (ga *LRAnalysis) markEps() {
	for changed := true; changed; {
		changed = false
		for _, r := range ga.g.rules {
			if ga.derivesEps[r.LHS] {
				continue
			}
			derives := true
			for _, sym := range r.rhs {
				if sym.IsTerminal() || !ga.derivesEps[sym] {
					derives = false
					break
				}
			}
			if derives {
				ga.derivesEps[r.LHS] = true
				changed = true
			}
		}
	}
}

func (ga *LRAnalysis) initSets() {
	for _, sym := range ga.g.symlist {
		ga.first[sym] = newIntSet()
		if sym.IsTerminal() {
			ga.first[sym].Add(sym.Value)
		} else {
			ga.follow[sym] = newIntSet()
			if ga.derivesEps[sym] {
				ga.first[sym].Add(EpsilonType)
			}
		}
	}
}

func (ga *LRAnalysis) computeFirst(bound int) error {
	for changed, n := true, 0; changed; n++ {
		if n > bound {
			return fmt.Errorf("FIRST computation did not settle within %d rounds", bound)
		}
		changed = false
		for _, r := range ga.g.rules {
			f := ga.firstOfSeq(r.rhs)
			if ga.first[r.LHS].addAllButEps(f) {
				changed = true
			}
			if f.Contains(EpsilonType) && ga.first[r.LHS].Add(EpsilonType) {
				changed = true
			}
		}
	}
	return nil
}

func (ga *LRAnalysis) computeFollow(bound int) error {
	for changed, n := true, 0; changed; n++ {
		if n > bound {
			return fmt.Errorf("FOLLOW computation did not settle within %d rounds", bound)
		}
		changed = false
		for _, r := range ga.g.rules {
			for pos, sym := range r.rhs {
				if sym.IsTerminal() {
					continue
				}
				rest := r.rhs[pos+1:]
				f := ga.firstOfSeq(rest)
				if ga.follow[sym].addAllButEps(f) {
					changed = true
				}
				if f.Contains(EpsilonType) || len(rest) == 0 {
					if ga.follow[sym].addAllButEps(ga.follow[r.LHS]) {
						changed = true
					}
				}
			}
		}
	}
	return nil
}

// firstOfSeq computes FIRST over a sequence of symbols, propagating through
// epsilon-derivable prefixes. The result contains the epsilon marker iff the
// whole sequence is nullable.
func (ga *LRAnalysis) firstOfSeq(syms []*Symbol) *IntSet {
	f := newIntSet()
	for _, sym := range syms {
		f.addAllButEps(ga.first[sym])
		if sym.IsTerminal() || !ga.derivesEps[sym] {
			return f
		}
	}
	f.Add(EpsilonType)
	return f
}

func (ga *LRAnalysis) boundIterations() int {
	return len(ga.g.rules)*len(ga.g.symlist) + 10
}
