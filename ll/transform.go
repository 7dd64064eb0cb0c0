/*
Package ll prepares grammars for predictive parsing and runs an LL(1)
parser. Preparation is left-recursion elimination followed by left
factoring; both record a human-readable step log. The parse table reports
LL(1) conflicts as structured data while still being built best-effort
(last write wins), since showing *why* a grammar is not LL(1) is part of
the point.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/automata/grammar"
)

// tracer traces with key 'automata.ll'.
func tracer() tracing.Trace {
	return tracing.Select("automata.ll")
}

// TransformResult is a transformed grammar together with the log of
// rewriting steps that produced it.
type TransformResult struct {
	Grammar *grammar.Grammar
	Steps   []string
}

// Transform makes a grammar suitable for LL(1) parsing: it eliminates
// immediate and indirect left recursion, then left-factors common
// production prefixes. The input grammar is not modified.
func Transform(g *grammar.Grammar) (*TransformResult, error) {
	if errs := g.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid grammar: %v", errs)
	}
	res := &TransformResult{Grammar: g.Clone()}
	res.eliminateLeftRecursion()
	res.leftFactor()
	tracer().Infof("transformed grammar %q in %d steps", g.Name, len(res.Steps))
	return res, nil
}

func (res *TransformResult) log(format string, args ...interface{}) {
	res.Steps = append(res.Steps, fmt.Sprintf(format, args...))
}

// eliminateLeftRecursion removes left recursion by the standard ordering
// algorithm: for every non-terminal Ai, productions starting with an
// earlier non-terminal Aj are expanded first (removing indirect
// recursion), then immediate recursion of Ai is rewritten into a fresh
// tail non-terminal.
func (res *TransformResult) eliminateLeftRecursion() {
	g := res.Grammar
	order := append([]string{}, g.NonTerminals...)
	for i, ai := range order {
		// expand Ai -> Aj γ for all j < i
		for _, aj := range order[:i] {
			var expanded []grammar.Production
			changed := false
			for _, p := range g.Productions {
				if p.LHS != ai || len(p.RHS) == 0 || p.RHS[0] != aj {
					expanded = append(expanded, p)
					continue
				}
				changed = true
				for _, q := range g.ProductionsFor(aj) {
					body := append(append([]string{}, q.RHS...), p.RHS[1:]...)
					expanded = append(expanded, grammar.Production{LHS: ai, RHS: body})
				}
				res.log("expanded %v through %s", p, aj)
			}
			if changed {
				g.Productions = expanded
			}
		}
		res.eliminateImmediate(ai)
	}
}

// eliminateImmediate rewrites A -> Aα1 | … | Aαm | β1 | … | βn into
// A -> β1 A' | … | βn A' and A' -> α1 A' | … | αm A' | ε.
func (res *TransformResult) eliminateImmediate(nt string) {
	g := res.Grammar
	var recursive, rest []grammar.Production
	for _, p := range g.ProductionsFor(nt) {
		if len(p.RHS) > 0 && p.RHS[0] == nt {
			recursive = append(recursive, p)
		} else {
			rest = append(rest, p)
		}
	}
	if len(recursive) == 0 {
		return
	}
	fresh := g.FreshNonTerminal(nt)
	g.AddNonTerminal(fresh)
	var rewritten []grammar.Production
	for _, p := range g.Productions {
		if p.LHS != nt {
			rewritten = append(rewritten, p)
		}
	}
	for _, p := range rest {
		body := append(append([]string{}, p.RHS...), fresh)
		rewritten = append(rewritten, grammar.Production{LHS: nt, RHS: body})
	}
	for _, p := range recursive {
		body := append(append([]string{}, p.RHS[1:]...), fresh)
		rewritten = append(rewritten, grammar.Production{LHS: fresh, RHS: body})
	}
	rewritten = append(rewritten, grammar.Production{LHS: fresh}) // A' -> ε
	g.Productions = rewritten
	res.log("eliminated left recursion of %s, introducing %s", nt, fresh)
}

// leftFactor repeatedly extracts the longest common prefix of production
// groups into fresh non-terminals until no two alternatives of any
// non-terminal share a prefix.
func (res *TransformResult) leftFactor() {
	g := res.Grammar
	for changed := true; changed; {
		changed = false
		for _, nt := range append([]string{}, g.NonTerminals...) {
			prods := g.ProductionsFor(nt)
			if len(prods) < 2 {
				continue
			}
			prefix, group := longestCommonPrefix(prods)
			if len(prefix) == 0 || len(group) < 2 {
				continue
			}
			fresh := g.FreshNonTerminal(nt)
			g.AddNonTerminal(fresh)
			inGroup := func(p grammar.Production) bool {
				for _, q := range group {
					if p.String() == q.String() {
						return true
					}
				}
				return false
			}
			var rewritten []grammar.Production
			inserted := false
			for _, p := range g.Productions {
				if p.LHS != nt || !inGroup(p) {
					rewritten = append(rewritten, p)
					continue
				}
				if !inserted {
					body := append(append([]string{}, prefix...), fresh)
					rewritten = append(rewritten, grammar.Production{LHS: nt, RHS: body})
					inserted = true
				}
				rewritten = append(rewritten, grammar.Production{LHS: fresh, RHS: append([]string{}, p.RHS[len(prefix):]...)})
			}
			g.Productions = rewritten
			res.log("left-factored %s: prefix %v extracted into %s", nt, prefix, fresh)
			changed = true
		}
	}
}

// longestCommonPrefix finds the alternative group of a non-terminal with
// the longest shared prefix (at least one symbol), preferring earlier
// productions.
func longestCommonPrefix(prods []grammar.Production) ([]string, []grammar.Production) {
	var bestPrefix []string
	var bestGroup []grammar.Production
	for i := 0; i < len(prods); i++ {
		for j := i + 1; j < len(prods); j++ {
			prefix := commonPrefix(prods[i].RHS, prods[j].RHS)
			if len(prefix) == 0 {
				continue
			}
			group := []grammar.Production{}
			for _, p := range prods {
				if len(p.RHS) >= len(prefix) && equalSyms(p.RHS[:len(prefix)], prefix) {
					group = append(group, p)
				}
			}
			if len(prefix) > len(bestPrefix) {
				bestPrefix, bestGroup = prefix, group
			}
		}
	}
	return bestPrefix, bestGroup
}

func commonPrefix(a, b []string) []string {
	var prefix []string
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			break
		}
		prefix = append(prefix, a[i])
	}
	return prefix
}

func equalSyms(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
