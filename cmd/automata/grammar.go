package main

import (
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/olekukonko/tablewriter"
	"github.com/pterm/pterm"

	"github.com/npillmayer/automata/grammar"
	"github.com/npillmayer/automata/ll"
	"github.com/npillmayer/automata/lr"
	"github.com/npillmayer/automata/lr/opp"
	"github.com/npillmayer/automata/lr/scanner"
	"github.com/npillmayer/automata/lr/slr"
)

// cfgState is the state of a grammar session: the working grammar and the
// parser tables derived from it so far.
type cfgState struct {
	g       *grammar.Grammar
	llt     *ll.Table
	lrgen   *lr.TableGenerator
	tokvals map[string]int
	oppt    *opp.Table
}

const cfgHelp = `grammar              enter a grammar, one production line per input line,
                     terminated by a '.' on a line of its own
load <file>          read a grammar from a file
show                 print the working grammar
sets                 FIRST/FOLLOW sets and nullability
ll                   transform for top-down parsing and build the LL(1) table
llrun <sentence>     predictive parse of a space-separated sentence
lr [slr|lr1|lalr]    build LR parse tables (default slr)
lrrun <sentence>     shift-reduce parse with the current LR tables
cfsm                 Graphviz output of the LR item-set automaton
opp                  build the operator-precedence relation table
opprun <sentence>    operator-precedence parse
help                 this text; quit with <ctrl>D`

// grammarSession runs the grammar-analysis REPL.
func grammarSession() {
	repl, err := readline.New("cfg> ")
	if err != nil {
		tracer().Errorf(err.Error())
		return
	}
	defer repl.Close()
	pterm.Info.Println("Grammar session; 'help' lists commands")
	s := &cfgState{}
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		args := strings.Fields(line)
		cmd, rest := args[0], args[1:]
		switch cmd {
		case "grammar":
			s.readGrammar(repl)
		case "load":
			s.loadGrammar(rest)
		case "show":
			s.show()
		case "sets":
			s.printSets()
		case "ll":
			s.buildLL()
		case "llrun":
			s.runLL(strings.Join(rest, " "))
		case "lr":
			s.buildLR(rest)
		case "lrrun":
			s.runLR(strings.Join(rest, " "))
		case "cfsm":
			if s.require(s.lrgen != nil, "no LR tables; use 'lr' first") {
				s.lrgen.CFSM().CFSM2GraphViz(os.Stdout)
			}
		case "opp":
			s.buildOPP()
		case "opprun":
			s.runOPP(strings.Join(rest, " "))
		case "help":
			pterm.Println(cfgHelp)
		case "quit":
			return
		default:
			pterm.Error.Printfln("unknown command %q; try 'help'", cmd)
		}
	}
}

func (s *cfgState) require(ok bool, msg string) bool {
	if !ok {
		pterm.Error.Println(msg)
	}
	return ok
}

// setGrammar installs a new working grammar and invalidates all tables
// derived from the previous one.
func (s *cfgState) setGrammar(text string) {
	g, err := grammar.Parse("repl", text, nil)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	*s = cfgState{g: g}
	pterm.Info.Printfln("grammar with %d productions, start symbol %s", len(g.Productions), g.Start)
}

func (s *cfgState) readGrammar(repl *readline.Instance) {
	repl.SetPrompt("  | ")
	defer repl.SetPrompt("cfg> ")
	var lines []string
	for {
		line, err := repl.Readline()
		if err != nil || strings.TrimSpace(line) == "." {
			break
		}
		lines = append(lines, line)
	}
	s.setGrammar(strings.Join(lines, "\n"))
}

func (s *cfgState) loadGrammar(args []string) {
	if !s.require(len(args) > 0, "usage: load <file>") {
		return
	}
	text, err := os.ReadFile(args[0])
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	s.setGrammar(string(text))
}

func (s *cfgState) show() {
	if !s.require(s.g != nil, "no grammar; use 'grammar' or 'load' first") {
		return
	}
	for _, p := range s.g.Productions {
		pterm.Println(p.String())
	}
	pterm.Printfln("terminals: %s", strings.Join(s.g.Terminals, " "))
}

func (s *cfgState) printSets() {
	if !s.require(s.g != nil, "no grammar; use 'grammar' or 'load' first") {
		return
	}
	sets, err := grammar.Analyze(s.g)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Non-terminal", "Nullable", "FIRST", "FOLLOW"})
	for _, nt := range s.g.NonTerminals {
		nullable := ""
		if sets.Nullable[nt] {
			nullable = "ε"
		}
		table.Append([]string{nt, nullable, sets.First[nt].String(), sets.Follow[nt].String()})
	}
	table.Render()
	for _, c := range sets.Citations {
		tracer().Debugf(c)
	}
}

func (s *cfgState) buildLL() {
	if !s.require(s.g != nil, "no grammar; use 'grammar' or 'load' first") {
		return
	}
	tr, err := ll.Transform(s.g)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	for _, step := range tr.Steps {
		pterm.Println(step)
	}
	tbl, err := ll.BuildTable(tr.Grammar)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	tbl.Write(os.Stdout)
	if tbl.IsLL1() {
		pterm.Info.Println("grammar is LL(1)")
	} else {
		for _, c := range tbl.Conflicts {
			pterm.Error.Printfln("conflict at M[%s,%s]", c.NonTerminal, c.Terminal)
		}
	}
	s.llt = tbl
}

func (s *cfgState) runLL(sentence string) {
	if !s.require(s.llt != nil, "no LL table; use 'll' first") {
		return
	}
	tokens, err := ll.Tokenize(s.llt.Grammar, sentence)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	res := s.llt.Parse(tokens)
	for _, step := range res.Steps {
		pterm.Println(step.String())
	}
	if res.Accepted {
		pterm.Info.Println("accepted")
	} else {
		pterm.Error.Printfln("rejected: %s", res.Reason)
	}
}

func (s *cfgState) buildLR(args []string) {
	if !s.require(s.g != nil, "no grammar; use 'grammar' or 'load' first") {
		return
	}
	mode := "slr"
	if len(args) > 0 {
		mode = args[0]
	}
	lrg, tokvals, err := lr.FromDefinition(s.g)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	ga, err := lr.Analysis(lrg)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	lrgen := lr.NewTableGenerator(ga)
	switch mode {
	case "slr":
		lrgen.CreateTables()
	case "lr1":
		lrgen.CreateLR1Tables()
	case "lalr":
		lrgen.CreateLALRTables()
	default:
		pterm.Error.Printfln("unknown table mode %q (slr, lr1 or lalr)", mode)
		return
	}
	if lrgen.HasConflicts {
		for _, c := range lrgen.Conflicts {
			pterm.Error.Println(c.String())
		}
	} else {
		pterm.Info.Printfln("%s tables built without conflicts", mode)
	}
	s.lrgen, s.tokvals = lrgen, tokvals
}

func (s *cfgState) runLR(sentence string) {
	if !s.require(s.lrgen != nil, "no LR tables; use 'lr' first") {
		return
	}
	if s.lrgen.HasConflicts {
		pterm.Error.Println("tables have conflicts; a deterministic parse is not possible")
		return
	}
	p := slr.NewParser(s.lrgen.Grammar(), s.lrgen.GotoTable(), s.lrgen.ActionTable())
	scan := scanner.Sentence(sentence, s.tokvals)
	accepted, err := p.Parse(s.lrgen.CFSM().S0, scan)
	for _, step := range p.Trace {
		pterm.Println(step.String())
	}
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	if accepted {
		pterm.Info.Println("accepted")
	} else {
		pterm.Error.Println("rejected")
	}
}

func (s *cfgState) buildOPP() {
	if !s.require(s.g != nil, "no grammar; use 'grammar' or 'load' first") {
		return
	}
	tbl, err := opp.BuildTable(s.g)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	tbl.Write(os.Stdout)
	if tbl.IsPrecedenceGrammar() {
		pterm.Info.Println("grammar is an operator-precedence grammar")
	} else {
		for _, c := range tbl.Conflicts {
			pterm.Error.Println(c)
		}
	}
	s.oppt = tbl
}

func (s *cfgState) runOPP(sentence string) {
	if !s.require(s.oppt != nil, "no precedence table; use 'opp' first") {
		return
	}
	res, err := s.oppt.Parse(sentence)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	for _, step := range res.Steps {
		pterm.Println(step.String())
	}
	if res.Accepted {
		pterm.Info.Println("accepted")
	} else {
		pterm.Error.Printfln("rejected: %s", res.Reason)
	}
}
