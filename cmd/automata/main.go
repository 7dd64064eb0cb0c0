package main

import (
	"flag"

	"github.com/manifoldco/promptui"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// main() starts an interactive workbench for the two halves of this module:
// a finite-automata session (regex ⇄ automaton conversions, recognition
// runs) and a grammar session (FIRST/FOLLOW, LL(1) tables, LR table
// construction, operator-precedence parsing). Sessions are simple
// line-oriented REPLs; quit one with <ctrl>D to return to the mode menu.
func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	pterm.Info.Println("Welcome to the automata workbench")
	//
	modes := promptui.Select{
		Label: "Mode",
		Items: []string{"Finite automata", "Grammar analysis", "Quit"},
	}
	for {
		_, choice, err := modes.Run()
		if err != nil { // ctrl-C
			break
		}
		switch choice {
		case "Finite automata":
			faSession()
		case "Grammar analysis":
			grammarSession()
		default:
			pterm.Info.Println("Good bye!")
			return
		}
	}
	pterm.Info.Println("Good bye!")
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
