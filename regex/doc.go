/*
Package regex parses regular expressions and computes the syntax-tree
position functions used for direct DFA construction.

Input expressions use single-character symbols and the operators

   |  union
   *  Kleene star
   +  one or more
   ?  optional
   () grouping

Concatenation is implicit and made explicit during tokenization. Parsing
proceeds in the classical three stages: tokenize, convert to postfix with
the Shunting-Yard algorithm (precedence | < concatenation < {*,+,?}), and
build the syntax tree bottom-up from the postfix form. On top of the tree
the package computes nullable, firstpos, lastpos and followpos.

The package also defines Expr, an expression AST for regexes that are
*produced* by algorithms (automaton-to-regex conversion). Simplification
of such expressions is structural, operating on the tree; generated
expressions are never re-parsed from their printed form.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package regex

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'automata.regex'.
func tracer() tracing.Trace {
	return tracing.Select("automata.regex")
}
