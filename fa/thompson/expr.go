package thompson

import (
	"fmt"

	"github.com/npillmayer/automata"
	"github.com/npillmayer/automata/regex"
)

// FromExpr builds an ε-NFA from an expression AST (as produced by the
// automaton-to-regex converters). This closes the loop for round-trip
// checks: automaton → regex → automaton.
func FromExpr(e regex.Expr) (*automata.Automaton, error) {
	alloc := &allocator{}
	frag, err := buildExpr(e, alloc)
	if err != nil {
		return nil, err
	}
	return assemble(frag, exprAlphabet(e, nil)), nil
}

func buildExpr(e regex.Expr, alloc *allocator) (fragment, error) {
	switch x := e.(type) {
	case regex.Empty:
		// two disconnected states: nothing is accepted
		start, accept := alloc.fresh(), alloc.fresh()
		return fragment{start: start, accept: accept, states: []string{start, accept}}, nil
	case regex.Eps:
		return leaf(alloc, automata.Epsilon), nil
	case regex.Sym:
		return leaf(alloc, x.Literal), nil
	case regex.Union:
		if len(x.Terms) == 0 {
			return buildExpr(regex.Empty{}, alloc)
		}
		acc, err := buildExpr(x.Terms[0], alloc)
		if err != nil {
			return fragment{}, err
		}
		for _, term := range x.Terms[1:] {
			next, err := buildExpr(term, alloc)
			if err != nil {
				return fragment{}, err
			}
			acc = union(alloc, acc, next)
		}
		return acc, nil
	case regex.Concat:
		if len(x.Factors) == 0 {
			return leaf(alloc, automata.Epsilon), nil
		}
		acc, err := buildExpr(x.Factors[0], alloc)
		if err != nil {
			return fragment{}, err
		}
		for _, factor := range x.Factors[1:] {
			next, err := buildExpr(factor, alloc)
			if err != nil {
				return fragment{}, err
			}
			acc = concat(acc, next)
		}
		return acc, nil
	case regex.Star:
		inner, err := buildExpr(x.Inner, alloc)
		if err != nil {
			return fragment{}, err
		}
		return repeat(alloc, inner, regex.KindStar), nil
	}
	return fragment{}, fmt.Errorf("unknown expression node %T", e)
}

func exprAlphabet(e regex.Expr, acc []string) []string {
	switch x := e.(type) {
	case regex.Sym:
		for _, have := range acc {
			if have == x.Literal {
				return acc
			}
		}
		return append(acc, x.Literal)
	case regex.Union:
		for _, t := range x.Terms {
			acc = exprAlphabet(t, acc)
		}
	case regex.Concat:
		for _, f := range x.Factors {
			acc = exprAlphabet(f, acc)
		}
	case regex.Star:
		acc = exprAlphabet(x.Inner, acc)
	}
	return acc
}
