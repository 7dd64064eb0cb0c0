package ll

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/npillmayer/automata/grammar"
)

// Conflict is an LL(1) table collision: two productions claim the same
// (non-terminal, terminal) cell.
type Conflict struct {
	NonTerminal string
	Terminal    string
	Kept        grammar.Production
	Dropped     grammar.Production
}

func (c Conflict) String() string {
	return fmt.Sprintf("M[%s,%s]: %v collides with %v", c.NonTerminal, c.Terminal, c.Dropped, c.Kept)
}

// Table is an LL(1) parse table. Cells map a non-terminal and a lookahead
// terminal to the production to expand. Conflicting entries are resolved
// last-write-wins, with every collision recorded in Conflicts.
type Table struct {
	Grammar   *grammar.Grammar
	Sets      *grammar.Sets
	Cells     map[string]map[string]grammar.Production
	Conflicts []Conflict
}

// BuildTable computes FIRST/FOLLOW sets for g and fills the LL(1) table:
// A -> α is entered under every terminal in FIRST(α), and, if α is
// nullable, under every terminal in FOLLOW(A).
func BuildTable(g *grammar.Grammar) (*Table, error) {
	sets, err := grammar.Analyze(g)
	if err != nil {
		return nil, err
	}
	tbl := &Table{
		Grammar: g,
		Sets:    sets,
		Cells:   make(map[string]map[string]grammar.Production),
	}
	for _, p := range g.Productions {
		first, nullable := sets.FirstOfString(g, p.RHS)
		for _, a := range first.Sorted() {
			tbl.set(p.LHS, a, p)
		}
		if nullable {
			for _, b := range sets.Follow[p.LHS].Sorted() {
				tbl.set(p.LHS, b, p)
			}
		}
	}
	tracer().Infof("LL(1) table for %q: %d conflicts", g.Name, len(tbl.Conflicts))
	return tbl, nil
}

func (tbl *Table) set(nt, terminal string, p grammar.Production) {
	row := tbl.Cells[nt]
	if row == nil {
		row = make(map[string]grammar.Production)
		tbl.Cells[nt] = row
	}
	if prev, ok := row[terminal]; ok && prev.String() != p.String() {
		tbl.Conflicts = append(tbl.Conflicts, Conflict{
			NonTerminal: nt,
			Terminal:    terminal,
			Kept:        p,
			Dropped:     prev,
		})
	}
	row[terminal] = p
}

// IsLL1 reports whether the table is conflict-free.
func (tbl *Table) IsLL1() bool {
	return len(tbl.Conflicts) == 0
}

// Lookup returns the production for non-terminal nt under lookahead
// terminal a, if any.
func (tbl *Table) Lookup(nt, a string) (grammar.Production, bool) {
	p, ok := tbl.Cells[nt][a]
	return p, ok
}

// Write dumps the table in tabular form, one row per non-terminal, one
// column per terminal plus the end marker.
func (tbl *Table) Write(w io.Writer) {
	cols := append([]string{}, tbl.Grammar.Terminals...)
	cols = append(cols, grammar.EndMark)
	sort.Strings(cols)
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(append([]string{""}, cols...))
	for _, nt := range tbl.Grammar.NonTerminals {
		row := []string{nt}
		for _, a := range cols {
			if p, ok := tbl.Cells[nt][a]; ok {
				row = append(row, p.String())
			} else {
				row = append(row, "")
			}
		}
		tw.Append(row)
	}
	tw.Render()
}
