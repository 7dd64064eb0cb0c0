/*
Package automata/main provides an interactive command line workbench for
the algorithms of this module. Users convert regular expressions to
automata and back, watch recognition runs step by step, and analyze
context-free grammars (FIRST/FOLLOW, LL(1), LR table construction,
operator precedence) from a REPL.


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'automata.fa'
func tracer() tracing.Trace {
	return tracing.Select("automata.fa")
}
