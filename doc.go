/*
Package automata is a toolbox for classical automata-theory and
compiler-construction algorithms.

It covers the duality between regular expressions and finite automata, and
static analysis of context-free grammars. Package structure is as follows:

■ regex: Package regex parses regular expressions into syntax trees and
computes the position functions (nullable, firstpos, lastpos, followpos)
underlying direct DFA construction. It also provides an expression AST for
regexes produced *from* automata, together with structural simplification.

■ fa: Directory fa collects the finite-automata algorithms: Thompson
construction (fa/thompson), subset construction and the direct DFA builder
(fa/subset), DFA minimization (fa/minimize), string recognition with step
traces (fa/recognize), and automaton-to-regex conversion (fa/toregex).

■ grammar: Package grammar holds the context-free grammar model, a reader for
line-oriented grammar text, and FIRST/FOLLOW computation with rule citations.

■ ll: Package ll transforms grammars for top-down parsing (left-recursion
elimination, left factoring), builds LL(1) parse tables and runs a predictive
parser producing step traces.

■ lr: Package lr constructs LR(0)/SLR(1)/LR(1)/LALR(1) item-set automata and
parse tables, and runs a shift-reduce parser. Sub-package lr/opp implements
operator-precedence parsing.

The base package contains the data types for finite automata which are used
throughout all the other packages.

All algorithms are pure, synchronous computations over their input: each
top-level conversion builds its structures fresh and leaves no state behind.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package automata
