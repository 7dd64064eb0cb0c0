package regex

import (
	"strings"
)

// Expr is an expression AST for regexes produced by algorithms (as opposed
// to regexes parsed from user input). The variants form a closed set:
// Empty, Eps, Sym, Union, Concat and Star. Algorithms combine expressions
// structurally and simplify them structurally; the printed form is for
// display only and is never parsed back.
type Expr interface {
	exprNode()
	String() string
}

// Empty is the regex denoting the empty language ∅.
type Empty struct{}

// Eps is the regex denoting the language {ε}.
type Eps struct{}

// Sym is a single-symbol regex.
type Sym struct {
	Literal string
}

// Union is the alternation of two or more terms.
type Union struct {
	Terms []Expr
}

// Concat is the concatenation of two or more factors.
type Concat struct {
	Factors []Expr
}

// Star is the Kleene closure of an inner expression.
type Star struct {
	Inner Expr
}

func (Empty) exprNode()  {}
func (Eps) exprNode()    {}
func (Sym) exprNode()    {}
func (Union) exprNode()  {}
func (Concat) exprNode() {}
func (Star) exprNode()   {}

// precedence levels for printing: union < concat < star
func exprPrec(e Expr) int {
	switch e.(type) {
	case Union:
		return 1
	case Concat:
		return 2
	default:
		return 3
	}
}

func parenthesize(e Expr, outer int) string {
	s := e.String()
	if exprPrec(e) < outer {
		return "(" + s + ")"
	}
	return s
}

func (Empty) String() string { return "∅" }
func (Eps) String() string   { return "ε" }
func (s Sym) String() string { return s.Literal }

func (u Union) String() string {
	parts := make([]string, len(u.Terms))
	for i, t := range u.Terms {
		parts[i] = parenthesize(t, 1)
	}
	return strings.Join(parts, "|")
}

func (c Concat) String() string {
	var b strings.Builder
	for _, f := range c.Factors {
		b.WriteString(parenthesize(f, 2))
	}
	return b.String()
}

func (s Star) String() string {
	return parenthesize(s.Inner, 3) + "*"
}

// Equal compares two expressions structurally.
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case Empty:
		_, ok := b.(Empty)
		return ok
	case Eps:
		_, ok := b.(Eps)
		return ok
	case Sym:
		y, ok := b.(Sym)
		return ok && x.Literal == y.Literal
	case Union:
		y, ok := b.(Union)
		if !ok || len(x.Terms) != len(y.Terms) {
			return false
		}
		for i := range x.Terms {
			if !Equal(x.Terms[i], y.Terms[i]) {
				return false
			}
		}
		return true
	case Concat:
		y, ok := b.(Concat)
		if !ok || len(x.Factors) != len(y.Factors) {
			return false
		}
		for i := range x.Factors {
			if !Equal(x.Factors[i], y.Factors[i]) {
				return false
			}
		}
		return true
	case Star:
		y, ok := b.(Star)
		return ok && Equal(x.Inner, y.Inner)
	}
	return false
}

// IsEmpty reports whether e denotes the empty language.
func IsEmpty(e Expr) bool {
	_, ok := e.(Empty)
	return ok
}

// IsEps reports whether e is the ε expression.
func IsEps(e Expr) bool {
	_, ok := e.(Eps)
	return ok
}

// Alt builds the union of two expressions, applying the identity laws for
// ∅ and dropping duplicate terms.
func Alt(a, b Expr) Expr {
	return Simplify(Union{Terms: []Expr{a, b}})
}

// Cat builds the concatenation of two expressions, applying the identity
// laws for ε and the annihilation law for ∅.
func Cat(a, b Expr) Expr {
	return Simplify(Concat{Factors: []Expr{a, b}})
}

// Iterate builds the Kleene closure of an expression.
func Iterate(e Expr) Expr {
	return Simplify(Star{Inner: e})
}

// Simplify canonicalizes an expression by the regular-algebra laws:
//
//   flattening      (a|b)|c = a|b|c, (ab)c = abc
//   identity for ∅  ∅|e = e, ∅e = ∅, ∅* = ε
//   identity for ε  εe = e, ε* = ε
//   idempotence     e|e = e
//   nullable union  ε|e = e?   represented as ε|e kept only when e is not
//                   already nullable via (...)* — ε|e* = e*
//   star collapse   (e*)* = e*
//
// Simplification recurses structurally, never through the printed form.
func Simplify(e Expr) Expr {
	switch x := e.(type) {
	case Empty, Eps, Sym:
		return e
	case Star:
		inner := Simplify(x.Inner)
		switch i := inner.(type) {
		case Empty, Eps:
			return Eps{}
		case Star:
			return i
		case Union:
			// (ε|e)* = e*
			terms := dropEps(i.Terms)
			if len(terms) < len(i.Terms) {
				return Simplify(Star{Inner: rebuildUnion(terms)})
			}
		}
		return Star{Inner: inner}
	case Union:
		var terms []Expr
		hasEps := false
		for _, t := range x.Terms {
			t = Simplify(t)
			switch tt := t.(type) {
			case Empty:
				continue
			case Eps:
				hasEps = true
				continue
			case Union:
				for _, nested := range tt.Terms {
					terms = appendUnique(terms, nested)
				}
			default:
				terms = appendUnique(terms, t)
			}
		}
		if hasEps && !nullable(rebuildUnion(terms)) {
			terms = append([]Expr{Eps{}}, terms...)
		}
		return rebuildUnion(terms)
	case Concat:
		var factors []Expr
		for _, f := range x.Factors {
			f = Simplify(f)
			switch ff := f.(type) {
			case Empty:
				return Empty{}
			case Eps:
				continue
			case Concat:
				factors = append(factors, ff.Factors...)
			default:
				factors = append(factors, f)
			}
		}
		switch len(factors) {
		case 0:
			return Eps{}
		case 1:
			return factors[0]
		}
		// e* e* = e*
		compact := factors[:1]
		for _, f := range factors[1:] {
			last := compact[len(compact)-1]
			if s1, ok := last.(Star); ok {
				if s2, ok := f.(Star); ok && Equal(s1.Inner, s2.Inner) {
					continue
				}
			}
			compact = append(compact, f)
		}
		if len(compact) == 1 {
			return compact[0]
		}
		return Concat{Factors: compact}
	}
	return e
}

// nullable reports whether ε is in the language of e, judged structurally.
func nullable(e Expr) bool {
	switch x := e.(type) {
	case Eps, Star:
		return true
	case Union:
		for _, t := range x.Terms {
			if nullable(t) {
				return true
			}
		}
	case Concat:
		for _, f := range x.Factors {
			if !nullable(f) {
				return false
			}
		}
		return true
	}
	return false
}

func appendUnique(terms []Expr, t Expr) []Expr {
	for _, have := range terms {
		if Equal(have, t) {
			return terms
		}
	}
	return append(terms, t)
}

func dropEps(terms []Expr) []Expr {
	out := make([]Expr, 0, len(terms))
	for _, t := range terms {
		if !IsEps(t) {
			out = append(out, t)
		}
	}
	return out
}

func rebuildUnion(terms []Expr) Expr {
	switch len(terms) {
	case 0:
		return Empty{}
	case 1:
		return terms[0]
	}
	return Union{Terms: terms}
}
