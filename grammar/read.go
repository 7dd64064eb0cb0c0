package grammar

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"golang.org/x/exp/slices"
)

// grammarText is the participle AST for line-oriented grammar text.
type grammarText struct {
	Lines []*productionLine `parser:"( @@ | EOL )*"`
}

type productionLine struct {
	LHS  string         `parser:"@Sym Arrow"`
	Alts []*alternative `parser:"@@ ( Pipe @@ )* ( EOL | EOF )"`
}

type alternative struct {
	Symbols []string `parser:"@Sym*"`
}

var grammarLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Arrow", Pattern: `->|→`},
	{Name: "Pipe", Pattern: `\|`},
	{Name: "EOL", Pattern: `\n`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Sym", Pattern: `[^\s|]+`},
})

var textParser = participle.MustBuild[grammarText](
	participle.Lexer(grammarLexer),
	participle.Elide("Whitespace", "Comment"),
)

// Parse reads a grammar from line-oriented text. Every line is one
// left-hand side with |-separated alternatives:
//
//    E -> E + T | T
//
// The start symbol is the LHS of the first production. If terminals is
// non-nil it fixes the terminal set explicitly; any body symbol not listed
// and not appearing as an LHS is an error. If terminals is nil, symbols
// are classified by the casing convention (upper-case first letter means
// non-terminal). The symbol ε (alone in an alternative) denotes an empty
// body.
func Parse(name, text string, terminals []string) (*Grammar, error) {
	ast, err := textParser.ParseString(name, text)
	if err != nil {
		return nil, fmt.Errorf("cannot parse grammar text: %w", err)
	}
	g := &Grammar{Name: name}
	lhsSet := make(map[string]bool)
	for _, line := range ast.Lines {
		lhsSet[line.LHS] = true
	}
	for _, line := range ast.Lines {
		if g.Start == "" {
			g.Start = line.LHS
		}
		g.AddNonTerminal(line.LHS)
		for _, alt := range line.Alts {
			rhs := alt.Symbols
			if len(rhs) == 1 && rhs[0] == EpsilonSymbol {
				rhs = nil
			}
			for _, sym := range rhs {
				if sym == EpsilonSymbol {
					return nil, fmt.Errorf("ε may only stand alone in an alternative (%s)", line.LHS)
				}
				switch {
				case lhsSet[sym]:
					g.AddNonTerminal(sym)
				case terminals != nil:
					if !slices.Contains(terminals, sym) {
						return nil, fmt.Errorf("symbol %q is neither a terminal nor defined by a production", sym)
					}
					if !g.IsTerminal(sym) {
						g.Terminals = append(g.Terminals, sym)
					}
				case looksTerminal(sym):
					if !g.IsTerminal(sym) {
						g.Terminals = append(g.Terminals, sym)
					}
				default:
					return nil, fmt.Errorf("non-terminal %q has no production", sym)
				}
			}
			g.Productions = append(g.Productions, Production{LHS: line.LHS, RHS: append([]string{}, rhs...)})
		}
	}
	if errs := g.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid grammar: %s", strings.Join(errs, "; "))
	}
	tracer().Infof("parsed grammar %q: %d productions, start symbol %s",
		name, len(g.Productions), g.Start)
	return g, nil
}
