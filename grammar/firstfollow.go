package grammar

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// SymSet is a set of terminal symbols (possibly including EndMark).
type SymSet map[string]struct{}

// NewSymSet creates a symbol set from the given members.
func NewSymSet(syms ...string) SymSet {
	s := make(SymSet, len(syms))
	for _, sym := range syms {
		s[sym] = struct{}{}
	}
	return s
}

// Has reports set membership.
func (s SymSet) Has(sym string) bool {
	_, ok := s[sym]
	return ok
}

// Add inserts a symbol and reports whether the set grew.
func (s SymSet) Add(sym string) bool {
	if s.Has(sym) {
		return false
	}
	s[sym] = struct{}{}
	return true
}

// AddAll inserts all members of other and reports whether the set grew.
func (s SymSet) AddAll(other SymSet) bool {
	grew := false
	for sym := range other {
		grew = s.Add(sym) || grew
	}
	return grew
}

// Sorted returns the members in increasing order.
func (s SymSet) Sorted() []string {
	out := maps.Keys(s)
	slices.Sort(out)
	return out
}

func (s SymSet) String() string {
	return "{" + strings.Join(s.Sorted(), ", ") + "}"
}

// Sets bundles the outcome of the grammar analysis: FIRST and FOLLOW per
// non-terminal, the nullable predicate, and one citation line per set
// contribution naming the production that caused it.
type Sets struct {
	First     map[string]SymSet
	Follow    map[string]SymSet
	Nullable  map[string]bool
	Citations []string
}

// maximum number of fixed-point rounds; the computation is monotone over a
// finite lattice, so the cap only guards against implementation bugs
func analysisCap(g *Grammar) int {
	return (len(g.Productions) + 1) * (len(g.Terminals) + len(g.NonTerminals) + 2)
}

// Analyze computes nullability, FIRST and FOLLOW sets for a grammar by
// fixed-point iteration, recording a citation line for every contribution.
// It fails if the grammar is structurally invalid or if the iteration does
// not converge within the bound.
func Analyze(g *Grammar) (*Sets, error) {
	if errs := g.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid grammar: %s", strings.Join(errs, "; "))
	}
	sets := &Sets{
		First:    make(map[string]SymSet),
		Follow:   make(map[string]SymSet),
		Nullable: make(map[string]bool),
	}
	for _, nt := range g.NonTerminals {
		sets.First[nt] = NewSymSet()
		sets.Follow[nt] = NewSymSet()
	}

	// nullability
	bound := analysisCap(g)
	for round := 0; ; round++ {
		if round > bound {
			return nil, fmt.Errorf("nullability computation exceeded %d rounds", bound)
		}
		changed := false
		for _, p := range g.Productions {
			if sets.Nullable[p.LHS] {
				continue
			}
			allNullable := true
			for _, sym := range p.RHS {
				if g.IsTerminal(sym) || !sets.Nullable[sym] {
					allNullable = false
					break
				}
			}
			if allNullable {
				sets.Nullable[p.LHS] = true
				sets.cite("nullable(%s) by %v", p.LHS, p)
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	// FIRST
	for round := 0; ; round++ {
		if round > bound {
			return nil, fmt.Errorf("FIRST computation exceeded %d rounds", bound)
		}
		changed := false
		for _, p := range g.Productions {
			first := sets.First[p.LHS]
			for _, sym := range p.RHS {
				if g.IsTerminal(sym) {
					if first.Add(sym) {
						sets.cite("FIRST(%s) += %s by %v", p.LHS, sym, p)
						changed = true
					}
					break
				}
				before := len(first)
				first.AddAll(sets.First[sym])
				if len(first) > before {
					sets.cite("FIRST(%s) += FIRST(%s) by %v", p.LHS, sym, p)
					changed = true
				}
				if !sets.Nullable[sym] {
					break
				}
			}
		}
		if !changed {
			break
		}
	}

	// FOLLOW
	sets.Follow[g.Start].Add(EndMark)
	sets.cite("FOLLOW(%s) += %s (start symbol)", g.Start, EndMark)
	for round := 0; ; round++ {
		if round > bound {
			return nil, fmt.Errorf("FOLLOW computation exceeded %d rounds", bound)
		}
		changed := false
		for _, p := range g.Productions {
			for i, sym := range p.RHS {
				if !g.IsNonTerminal(sym) {
					continue
				}
				follow := sets.Follow[sym]
				// terminals from FIRST of the remainder
				rest := p.RHS[i+1:]
				restFirst, restNullable := sets.firstOfString(g, rest)
				before := len(follow)
				follow.AddAll(restFirst)
				if len(follow) > before {
					sets.cite("FOLLOW(%s) += FIRST(%v) by %v", sym, rest, p)
					changed = true
				}
				if restNullable {
					before = len(follow)
					follow.AddAll(sets.Follow[p.LHS])
					if len(follow) > before {
						sets.cite("FOLLOW(%s) += FOLLOW(%s) by %v", sym, p.LHS, p)
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}
	tracer().Debugf("analysis finished: %d citations", len(sets.Citations))
	return sets, nil
}

// FirstOfString computes FIRST of a sentential form and whether the whole
// form is nullable.
func (s *Sets) FirstOfString(g *Grammar, syms []string) (SymSet, bool) {
	return s.firstOfString(g, syms)
}

func (s *Sets) firstOfString(g *Grammar, syms []string) (SymSet, bool) {
	first := NewSymSet()
	for _, sym := range syms {
		if g.IsTerminal(sym) {
			first.Add(sym)
			return first, false
		}
		first.AddAll(s.First[sym])
		if !s.Nullable[sym] {
			return first, false
		}
	}
	return first, true
}

func (s *Sets) cite(format string, args ...interface{}) {
	s.Citations = append(s.Citations, fmt.Sprintf(format, args...))
}
