/*
Package lr implements prerequisites for LR parsing: grammars with
token-valued symbols, grammar analysis, the characteristic finite state
machine (CFSM) of item sets, and ACTION/GOTO parse tables for LR(0),
SLR(1), LR(1) and LALR(1) parsers.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals
carry a token value of type int. Grammars may contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a", 1).End()  // S  ->  A a
    b.LHS("A").N("B").N("D").End()     // A  ->  B D
    b.LHS("B").T("b", 2).End()         // B  ->  b
    b.LHS("B").Epsilon()               // B  ->
    b.LHS("D").T("d", 3).End()         // D  ->  d
    b.LHS("D").Epsilon()               // D  ->

Grammars are automatically augmented with a start rule

   0: [S'] ::= [S #eof]

so that acceptance can be detected uniformly. Grammars may also be derived
from a text-based grammar definition (see FromDefinition).

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LRAnalysis object, which computes FIRST and
FOLLOW sets for the grammar and determines all epsilon-derivable rules.

Although FIRST and FOLLOW-sets are mainly intended to be used for internal
purposes of constructing the parser tables, methods for getting FIRST(N)
and FOLLOW(N) of non-terminals are defined to be public. FIRST and FOLLOW
sets contain terminal token values, with 0 denoting epsilon.

Parser Construction

Using grammar analysis as input, a bottom-up parser can be constructed.
First a characteristic finite state machine (CFSM) is built from the
grammar. The CFSM will then be transformed into a GOTO table and an
ACTION table. The CFSM will not be thrown away, but is made available to
the client. This is intended for debugging purposes, but may be useful
for error recovery, too. It can be exported to Graphviz's Dot-format.

Example:

    lrgen := lr.NewTableGenerator(ga)  // ga is an LRAnalysis, see above
    lrgen.CreateTables()               // construct SLR(1) parser tables
    if lrgen.HasConflicts { … }        // inspect lrgen.Conflicts

Besides the SLR(1) default, LR(0) tables are available as an add-on, and
canonical LR(1) as well as LALR(1) tables may be constructed from the
grammar's LR(1) item sets (see CreateLR1Tables and CreateLALRTables).
Conflicting table cells hold up to two actions and every conflict is
reported with its state and lookahead.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'automata.lr'.
func tracer() tracing.Trace {
	return tracing.Select("automata.lr")
}
