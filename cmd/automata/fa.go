package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/automata"
	"github.com/npillmayer/automata/fa/minimize"
	"github.com/npillmayer/automata/fa/recognize"
	"github.com/npillmayer/automata/fa/subset"
	"github.com/npillmayer/automata/fa/thompson"
	"github.com/npillmayer/automata/fa/toregex"
	"github.com/npillmayer/automata/regex"
)

// faState is the state of a finite-automata session: the current regular
// expression and the automata derived from it.
type faState struct {
	re  string
	nfa *automata.Automaton // Thompson construction
	sub *subset.Result      // subset construction of nfa
	min *automata.Automaton // partition-refinement minimization
	sig *subset.Result      // significant-states minimization
}

const faHelp = `re <expr>            set the working regex; builds NFA, DFA and minimal DFA
tree                 print the annotated syntax tree of the working regex
show [nfa|dfa|min|sig]   print a transition table (default min)
dot [nfa|dfa|min|sig]    print Graphviz output (default min)
run <word>           run the minimal DFA over a word, with step trace
run nfa <word>       run the ε-NFA instead
regex                derive a regex from the minimal DFA by state elimination
regex arden          derive it by solving equations (Arden's rule)
help                 this text; quit with <ctrl>D`

// faSession runs the finite-automata REPL.
func faSession() {
	repl, err := readline.New("fa> ")
	if err != nil {
		tracer().Errorf(err.Error())
		return
	}
	defer repl.Close()
	pterm.Info.Println("Finite automata session; 'help' lists commands")
	s := &faState{}
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
		case "re":
			s.setRegex(strings.Join(rest, " "))
		case "tree":
			s.printTree()
		case "show":
			if a := s.pick(rest); a != nil {
				a.WriteTable(os.Stdout)
				s.printSubsets(rest)
			}
		case "dot":
			if a := s.pick(rest); a != nil {
				a.ToGraphViz(os.Stdout)
			}
		case "run":
			s.run(rest)
		case "regex":
			s.regexify(rest)
		case "help":
			pterm.Println(faHelp)
		case "quit":
			return
		default:
			pterm.Error.Printfln("unknown command %q; try 'help'", cmd)
		}
	}
}

func (s *faState) setRegex(re string) {
	rep := regex.Validate(re)
	if !rep.Valid {
		for _, e := range rep.Errors {
			pterm.Error.Println(e)
		}
		return
	}
	nfa, err := thompson.FromRegex(re)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	sub, err := subset.FromNFA(nfa)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	min, err := minimize.Partition(sub.Dfa)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	sig, err := minimize.Significant(sub, nfa)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	s.re, s.nfa, s.sub, s.min, s.sig = re, nfa, sub, min, sig
	pterm.Info.Printfln("alphabet {%s}; NFA %d states, DFA %d, minimal %d (%d by significant states)",
		strings.Join(rep.Alphabet, ","), len(nfa.States), len(sub.Dfa.States), len(min.States), len(sig.Dfa.States))
}

// pick selects one of the session's automata by name, defaulting to the
// minimal DFA.
func (s *faState) pick(args []string) *automata.Automaton {
	if s.min == nil {
		pterm.Error.Println("no regex set; use 're <expr>' first")
		return nil
	}
	which := "min"
	if len(args) > 0 {
		which = args[0]
	}
	switch which {
	case "nfa":
		return s.nfa
	case "dfa":
		return s.sub.Dfa
	case "min":
		return s.min
	case "sig":
		return s.sig.Dfa
	}
	pterm.Error.Printfln("unknown automaton %q (nfa, dfa, min or sig)", which)
	return nil
}

// printSubsets lists, for 'show dfa' and 'show sig', which NFA states each
// DFA state was constructed from.
func (s *faState) printSubsets(args []string) {
	if len(args) == 0 {
		return
	}
	var res *subset.Result
	switch args[0] {
	case "dfa":
		res = s.sub
	case "sig":
		res = s.sig
	default:
		return
	}
	ids := make([]string, 0, len(res.Subsets))
	for id := range res.Subsets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		state := res.Dfa.State(id)
		pterm.Printfln("%s = {%s}", state.Label, strings.Join(res.Subsets[id], ","))
	}
}

func (s *faState) printTree() {
	if s.re == "" {
		pterm.Error.Println("no regex set; use 're <expr>' first")
		return
	}
	tree, err := regex.BuildSyntaxTree(s.re)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	ll := leveledNodes(tree.Root, pterm.LeveledList{}, 0)
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

func leveledNodes(n *regex.TreeNode, ll pterm.LeveledList, level int) pterm.LeveledList {
	if n == nil {
		return ll
	}
	text := n.String()
	if n.Kind != regex.KindSymbol {
		text = fmt.Sprintf("%s  first=%s last=%s", n, n.First, n.Last)
	}
	ll = append(ll, pterm.LeveledListItem{Level: level, Text: text})
	ll = leveledNodes(n.Left, ll, level+1)
	ll = leveledNodes(n.Right, ll, level+1)
	return ll
}

func (s *faState) run(args []string) {
	a := s.min
	if len(args) > 1 && (args[0] == "nfa" || args[0] == "dfa" || args[0] == "min" || args[0] == "sig") {
		if a = s.pick(args[:1]); a == nil {
			return
		}
		args = args[1:]
	}
	if a == nil {
		pterm.Error.Println("no regex set; use 're <expr>' first")
		return
	}
	if len(args) == 0 {
		pterm.Error.Println("usage: run [nfa|dfa|min] <word>")
		return
	}
	res := recognize.Recognize(a, args[0])
	for _, step := range res.Steps {
		sym := step.Symbol
		if sym == "" {
			sym = "–"
		}
		pterm.Printfln("%3d  %-4s {%s}", step.Index, sym, strings.Join(step.States, ","))
	}
	if res.Accepted {
		pterm.Info.Println("accepted")
	} else {
		pterm.Error.Printfln("rejected: %s", res.Reason)
	}
}

func (s *faState) regexify(args []string) {
	if s.min == nil {
		pterm.Error.Println("no regex set; use 're <expr>' first")
		return
	}
	convert := toregex.Eliminate
	if len(args) > 0 && args[0] == "arden" {
		convert = toregex.Arden
	}
	expr, steps, err := convert(s.min)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	for _, step := range steps {
		tracer().Infof("%s", step)
	}
	pterm.Info.Printfln("%s  ≙  %s", s.re, regex.Simplify(expr))
}
