package automata

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
)

// ToGraphViz exports an automaton to the Graphviz Dot format.
func (a *Automaton) ToGraphViz(w io.Writer) {
	io.WriteString(w, `digraph {
graph [rankdir=LR, splines=true, fontname=Helvetica, fontsize=10];
node [shape=circle, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	io.WriteString(w, "start [shape=point];\n")
	for _, s := range a.States {
		shape := "circle"
		if s.Final {
			shape = "doublecircle"
		}
		label := s.Label
		if label == "" {
			label = s.ID
		}
		fmt.Fprintf(w, "%q [shape=%s label=%q]\n", s.ID, shape, label)
		if s.Initial {
			fmt.Fprintf(w, "start -> %q\n", s.ID)
		}
	}
	for _, t := range a.Transitions {
		fmt.Fprintf(w, "%q -> %q [label=%q]\n", t.From, t.To, t.Symbol)
	}
	io.WriteString(w, "}\n")
}

// WriteTable renders the transition table of an automaton as plain text,
// one row per state, one column per alphabet symbol (plus ε if present).
func (a *Automaton) WriteTable(w io.Writer) {
	symbols := append([]string{}, a.Alphabet...)
	if a.HasEpsilon() {
		symbols = append(symbols, Epsilon)
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader(append([]string{"state"}, symbols...))
	table.SetAutoFormatHeaders(false)
	rows := make([]State, len(a.States))
	copy(rows, a.States)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Initial != rows[j].Initial {
			return rows[i].Initial
		}
		return rows[i].ID < rows[j].ID
	})
	for _, s := range rows {
		row := []string{s.String()}
		for _, sym := range symbols {
			targets := ""
			for _, t := range a.TransitionsFrom(s.ID, sym) {
				if targets != "" {
					targets += ","
				}
				targets += t.To
			}
			if targets == "" {
				targets = "—"
			}
			row = append(row, targets)
		}
		table.Append(row)
	}
	table.Render()
}
