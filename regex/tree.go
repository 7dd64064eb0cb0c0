package regex

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// NodeKind is the closed set of syntax-tree node kinds. Every algorithm over
// the tree (nullable, firstpos, lastpos, followpos, Thompson construction)
// switches exhaustively over these.
type NodeKind int8

const (
	KindSymbol NodeKind = iota
	KindConcat
	KindUnion
	KindStar
	KindPlus
	KindOptional
	KindEpsilon
)

func (k NodeKind) String() string {
	switch k {
	case KindSymbol:
		return "SYMBOL"
	case KindConcat:
		return "CONCAT"
	case KindUnion:
		return "UNION"
	case KindStar:
		return "STAR"
	case KindPlus:
		return "PLUS"
	case KindOptional:
		return "OPTIONAL"
	case KindEpsilon:
		return "EPSILON"
	}
	return fmt.Sprintf("NodeKind(%d)", k)
}

// PosSet is a set of leaf positions.
type PosSet map[int]struct{}

// NewPosSet creates a position set from the given members.
func NewPosSet(positions ...int) PosSet {
	ps := make(PosSet, len(positions))
	for _, p := range positions {
		ps[p] = struct{}{}
	}
	return ps
}

// Union adds all members of other to ps.
func (ps PosSet) Union(other PosSet) {
	for p := range other {
		ps[p] = struct{}{}
	}
}

// Has reports set membership.
func (ps PosSet) Has(p int) bool {
	_, ok := ps[p]
	return ok
}

// Sorted returns the members in increasing order.
func (ps PosSet) Sorted() []int {
	out := maps.Keys(ps)
	slices.Sort(out)
	return out
}

// Copy returns an independent copy of the set.
func (ps PosSet) Copy() PosSet {
	c := make(PosSet, len(ps))
	for p := range ps {
		c[p] = struct{}{}
	}
	return c
}

func (ps PosSet) String() string {
	parts := make([]string, 0, len(ps))
	for _, p := range ps.Sorted() {
		parts = append(parts, fmt.Sprintf("%d", p))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// TreeNode is a node of the regex syntax tree. Symbol leaves carry a unique
// 1-based position, assigned left to right over leaves only. The position
// functions are filled in by BuildSyntaxTree.
type TreeNode struct {
	Kind     NodeKind
	Literal  string // symbol literal, KindSymbol only
	Position int    // leaf position, KindSymbol only
	Left     *TreeNode
	Right    *TreeNode // binary nodes only

	Nullable bool
	First    PosSet
	Last     PosSet
}

func (n *TreeNode) String() string {
	switch n.Kind {
	case KindSymbol:
		return fmt.Sprintf("%s:%d", n.Literal, n.Position)
	case KindEpsilon:
		return "ε"
	default:
		return n.Kind.String()
	}
}

// EndMarker is the augmentation symbol appended for direct DFA construction.
const EndMarker = "#"

// SyntaxTree is a fully annotated regex syntax tree. Follow maps each leaf
// position to its followpos set; Symbols maps each position to the symbol
// at that leaf. For an augmented tree, EndPosition is the position of the
// unique end marker, otherwise 0.
type SyntaxTree struct {
	Root        *TreeNode
	Follow      map[int]PosSet
	Symbols     map[int]string
	Alphabet    []string
	EndPosition int
}

// BuildSyntaxTree parses a regular expression into an annotated syntax
// tree: tokenize, insert explicit concatenation, convert to postfix, build
// the tree bottom-up, then compute nullable/firstpos/lastpos and followpos.
func BuildSyntaxTree(re string) (*SyntaxTree, error) {
	if rep := Validate(re); !rep.Valid {
		return nil, fmt.Errorf("invalid expression: %s", strings.Join(rep.Errors, "; "))
	}
	return buildTree(tokenize(re))
}

// BuildAugmented builds the syntax tree of '(re)·#' and records the end
// marker's position. This is the input to the direct DFA construction.
func BuildAugmented(re string) (*SyntaxTree, error) {
	if rep := Validate(re); !rep.Valid {
		return nil, fmt.Errorf("invalid expression: %s", strings.Join(rep.Errors, "; "))
	}
	toks := append([]token{{tokLParen, "("}}, tokenize(re)...)
	toks = append(toks, token{tokRParen, ")"}, token{tokSymbol, EndMarker})
	tree, err := buildTree(toks)
	if err != nil {
		return nil, err
	}
	for pos, sym := range tree.Symbols {
		if sym == EndMarker {
			tree.EndPosition = pos
		}
	}
	// the marker is not part of the language's alphabet
	tree.Alphabet = slices.DeleteFunc(tree.Alphabet, func(s string) bool {
		return s == EndMarker
	})
	return tree, nil
}

func buildTree(toks []token) (*SyntaxTree, error) {
	postfix, err := toPostfix(insertConcat(toks))
	if err != nil {
		return nil, err
	}
	tracer().Debugf("postfix form = %v", postfix)
	var stack []*TreeNode
	pop := func() (*TreeNode, error) {
		if len(stack) == 0 {
			return nil, fmt.Errorf("malformed postfix expression: operand stack underflow")
		}
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return n, nil
	}
	position := 0
	tree := &SyntaxTree{
		Follow:  make(map[int]PosSet),
		Symbols: make(map[int]string),
	}
	for _, tok := range postfix {
		switch tok.kind {
		case tokSymbol:
			position++
			tree.Symbols[position] = tok.lit
			if !slices.Contains(tree.Alphabet, tok.lit) {
				tree.Alphabet = append(tree.Alphabet, tok.lit)
			}
			stack = append(stack, &TreeNode{Kind: KindSymbol, Literal: tok.lit, Position: position})
		case tokUnion, tokConcat:
			right, err := pop()
			if err != nil {
				return nil, err
			}
			left, err := pop()
			if err != nil {
				return nil, err
			}
			kind := KindUnion
			if tok.kind == tokConcat {
				kind = KindConcat
			}
			stack = append(stack, &TreeNode{Kind: kind, Left: left, Right: right})
		case tokStar, tokPlus, tokOptional:
			child, err := pop()
			if err != nil {
				return nil, err
			}
			var kind NodeKind
			switch tok.kind {
			case tokStar:
				kind = KindStar
			case tokPlus:
				kind = KindPlus
			default:
				kind = KindOptional
			}
			stack = append(stack, &TreeNode{Kind: kind, Left: child})
		default:
			return nil, fmt.Errorf("unexpected token %v in postfix form", tok)
		}
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("malformed postfix expression: %d operands left on stack", len(stack))
	}
	tree.Root = stack[0]
	slices.Sort(tree.Alphabet)
	annotate(tree.Root)
	for pos := 1; pos <= position; pos++ {
		tree.Follow[pos] = NewPosSet()
	}
	followpos(tree.Root, tree.Follow)
	return tree, nil
}

// annotate fills in nullable, firstpos and lastpos bottom-up.
func annotate(n *TreeNode) {
	if n == nil {
		return
	}
	annotate(n.Left)
	annotate(n.Right)
	switch n.Kind {
	case KindSymbol:
		n.Nullable = false
		n.First = NewPosSet(n.Position)
		n.Last = NewPosSet(n.Position)
	case KindEpsilon:
		n.Nullable = true
		n.First = NewPosSet()
		n.Last = NewPosSet()
	case KindUnion:
		n.Nullable = n.Left.Nullable || n.Right.Nullable
		n.First = n.Left.First.Copy()
		n.First.Union(n.Right.First)
		n.Last = n.Left.Last.Copy()
		n.Last.Union(n.Right.Last)
	case KindConcat:
		n.Nullable = n.Left.Nullable && n.Right.Nullable
		n.First = n.Left.First.Copy()
		if n.Left.Nullable {
			n.First.Union(n.Right.First)
		}
		n.Last = n.Right.Last.Copy()
		if n.Right.Nullable {
			n.Last.Union(n.Left.Last)
		}
	case KindStar, KindOptional:
		n.Nullable = true
		n.First = n.Left.First.Copy()
		n.Last = n.Left.Last.Copy()
	case KindPlus:
		n.Nullable = n.Left.Nullable
		n.First = n.Left.First.Copy()
		n.Last = n.Left.Last.Copy()
	}
}

// followpos performs the single pass over the tree collecting follow sets:
// for concatenation, lastpos(left) flows into firstpos(right); for STAR and
// PLUS, lastpos(child) flows back into firstpos(child).
func followpos(n *TreeNode, follow map[int]PosSet) {
	if n == nil {
		return
	}
	followpos(n.Left, follow)
	followpos(n.Right, follow)
	switch n.Kind {
	case KindConcat:
		for p := range n.Left.Last {
			follow[p].Union(n.Right.First)
		}
	case KindStar, KindPlus:
		for p := range n.Left.Last {
			follow[p].Union(n.Left.First)
		}
	}
}

// Positions returns the number of symbol leaves in the tree.
func (t *SyntaxTree) Positions() int {
	return len(t.Symbols)
}

// PositionsOf returns all leaf positions carrying the given symbol.
func (t *SyntaxTree) PositionsOf(symbol string) []int {
	var out []int
	for pos, sym := range t.Symbols {
		if sym == symbol {
			out = append(out, pos)
		}
	}
	slices.Sort(out)
	return out
}
