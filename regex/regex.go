package regex

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/exp/slices"
)

// kind of a token produced by the tokenizer.
type tokKind int8

const (
	tokSymbol tokKind = iota
	tokUnion          // |
	tokStar           // *
	tokPlus           // +
	tokOptional       // ?
	tokConcat         // implicit, made explicit as '·'
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	lit  string
}

func (t token) String() string {
	switch t.kind {
	case tokConcat:
		return "·"
	default:
		return t.lit
	}
}

// Report is the result of validating a regular expression.
type Report struct {
	Valid    bool
	Errors   []string
	Alphabet []string
}

// Validate checks a regular expression for well-formedness without building
// anything. It rejects empty input, unbalanced parentheses, doubled binary
// operators, a leading or trailing '|', and '|' adjacent to parentheses.
// The report carries the alphabet of the expression (its symbol literals,
// sorted, without duplicates).
func Validate(re string) Report {
	rep := Report{}
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, re)
	if compact == "" {
		rep.Errors = append(rep.Errors, "expression is empty")
		return rep
	}
	depth := 0
	var prev rune
	runes := []rune(compact)
	for i, r := range runes {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				rep.Errors = append(rep.Errors, fmt.Sprintf("unbalanced ')' at position %d", i))
				depth = 0
			}
			if prev == '(' {
				rep.Errors = append(rep.Errors, fmt.Sprintf("empty group at position %d", i))
			}
			if prev == '|' {
				rep.Errors = append(rep.Errors, fmt.Sprintf("'|' directly before ')' at position %d", i))
			}
		case '|':
			if i == 0 {
				rep.Errors = append(rep.Errors, "expression starts with '|'")
			} else if prev == '|' {
				rep.Errors = append(rep.Errors, fmt.Sprintf("doubled '|' at position %d", i))
			} else if prev == '(' {
				rep.Errors = append(rep.Errors, fmt.Sprintf("'|' directly after '(' at position %d", i))
			}
			if i == len(runes)-1 {
				rep.Errors = append(rep.Errors, "expression ends with '|'")
			}
		case '*', '+', '?':
			if i == 0 || prev == '|' || prev == '(' {
				rep.Errors = append(rep.Errors, fmt.Sprintf("operator %q has no operand at position %d", string(r), i))
			}
		default:
			if !slices.Contains(rep.Alphabet, string(r)) {
				rep.Alphabet = append(rep.Alphabet, string(r))
			}
		}
		prev = r
	}
	if depth > 0 {
		rep.Errors = append(rep.Errors, fmt.Sprintf("%d unclosed '('", depth))
	}
	slices.Sort(rep.Alphabet)
	rep.Valid = len(rep.Errors) == 0
	return rep
}

// tokenize splits a regular expression into tokens. Whitespace is ignored;
// every non-operator rune is a single-character symbol.
func tokenize(re string) []token {
	var toks []token
	for _, r := range re {
		if unicode.IsSpace(r) {
			continue
		}
		switch r {
		case '|':
			toks = append(toks, token{tokUnion, "|"})
		case '*':
			toks = append(toks, token{tokStar, "*"})
		case '+':
			toks = append(toks, token{tokPlus, "+"})
		case '?':
			toks = append(toks, token{tokOptional, "?"})
		case '(':
			toks = append(toks, token{tokLParen, "("})
		case ')':
			toks = append(toks, token{tokRParen, ")"})
		default:
			toks = append(toks, token{tokSymbol, string(r)})
		}
	}
	return toks
}

// insertConcat makes the implicit concatenation between adjacent tokens
// explicit. Concatenation occurs between: symbol-symbol, symbol-'(',
// ')'-symbol, ')'-'(' and a unary postfix operator followed by a symbol
// or '('.
func insertConcat(toks []token) []token {
	out := make([]token, 0, len(toks)*2)
	for i, tok := range toks {
		if i > 0 {
			left := toks[i-1]
			leftCat := left.kind == tokSymbol || left.kind == tokRParen ||
				left.kind == tokStar || left.kind == tokPlus || left.kind == tokOptional
			rightCat := tok.kind == tokSymbol || tok.kind == tokLParen
			if leftCat && rightCat {
				out = append(out, token{tokConcat, "·"})
			}
		}
		out = append(out, tok)
	}
	return out
}

// operator precedence for Shunting-Yard. Union binds weakest, the postfix
// repetition operators strongest. All operators are left-associative.
func precedence(k tokKind) int {
	switch k {
	case tokUnion:
		return 1
	case tokConcat:
		return 2
	case tokStar, tokPlus, tokOptional:
		return 3
	}
	return 0
}

// toPostfix converts the token stream to postfix via Shunting-Yard.
func toPostfix(toks []token) ([]token, error) {
	var out, stack []token
	for _, tok := range toks {
		switch tok.kind {
		case tokSymbol:
			out = append(out, tok)
		case tokLParen:
			stack = append(stack, tok)
		case tokRParen:
			for {
				if len(stack) == 0 {
					return nil, fmt.Errorf("unbalanced ')' in expression")
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.kind == tokLParen {
					break
				}
				out = append(out, top)
			}
		default: // an operator
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.kind == tokLParen || precedence(top.kind) < precedence(tok.kind) {
					break
				}
				out = append(out, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.kind == tokLParen {
			return nil, fmt.Errorf("unclosed '(' in expression")
		}
		out = append(out, top)
	}
	return out, nil
}
