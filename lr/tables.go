package lr

import (
	"fmt"
	"io"
	"sort"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/npillmayer/automata"
	"github.com/npillmayer/automata/lr/iteratable"
	"github.com/npillmayer/automata/lr/sparse"
)

// Actions for parser action tables.
const (
	ShiftAction  = -1
	AcceptAction = -2
)

// === Closure and Goto-Set Operations =======================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing

// closure computes the closure of a single item.
func (ga *LRAnalysis) closure(i Item) *iteratable.Set {
	S := newItemSet()
	S.Add(i)
	return ga.closureSet(S)
}

// closureSet computes the closure of an item set: for every item with a
// non-terminal right after the dot, the start items of that non-terminal's
// rules are added, until no more items appear.
func (ga *LRAnalysis) closureSet(S *iteratable.Set) *iteratable.Set {
	C := S.Copy() // add start items to closure
	C.IterateOnce()
	for C.Next() {
		item := asItem(C.Item())
		A := item.PeekSymbol()           // get symbol A after dot
		if A != nil && !A.IsTerminal() { // A is non-terminal
			R := ga.g.FindNonTermRules(A)
			if New := R.Difference(C); !New.Empty() {
				C.Union(New)
			}
		}
	}
	return C
}

func (ga *LRAnalysis) gotoSet(closure *iteratable.Set, A *Symbol) *iteratable.Set {
	// for every item in closure C
	// if item in C:  N -> … *A …
	//     advance N -> … A * …
	gotoset := newItemSet()
	for _, x := range closure.Values() {
		i := asItem(x)
		if i.PeekSymbol() == A {
			ii := i.Advance()
			tracer().Debugf("goto(%s) -%s-> %s", i, A, ii)
			gotoset.Add(ii)
		}
	}
	return gotoset
}

func (ga *LRAnalysis) gotoSetClosure(i *iteratable.Set, A *Symbol) *iteratable.Set {
	gotoset := ga.gotoSet(i, A)
	gclosure := ga.closureSet(gotoset)
	tracer().Debugf("goto(%s) --%s--> %s", itemSetString(i), A, itemSetString(gclosure))
	return gclosure
}

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     uint            // serial ID of this state
	items  *iteratable.Set // configuration items within this state
	Accept bool            // is this an accepting state?
}

// CFSM edge between 2 states, directed and with a grammar symbol
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label *Symbol
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	Dump(s.items)
	tracer().Debugf("-------------------------")
}

func (s *CFSMState) isErrorState() bool {
	return s.items.Size() == 0
}

// Items returns the configuration items of the state.
func (s *CFSMState) Items() []Item {
	items := make([]Item, 0, s.items.Size())
	for _, x := range s.items.Values() {
		items = append(items, asItem(x))
	}
	return items
}

// Create a state from an item set
func state(id uint, iset *iteratable.Set) *CFSMState {
	s := &CFSMState{ID: id}
	if iset == nil {
		s.items = newItemSet()
	} else {
		s.items = iset
	}
	return s
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, x := range s.items.Values() {
		i := asItem(x)
		if i.rule.Serial == 0 && i.PeekSymbol() == nil {
			return true
		}
	}
	return false
}

// Create an edge
func edge(from, to *CFSMState, label *Symbol) *cfsmEdge {
	return &cfsmEdge{
		from:  from,
		to:    to,
		label: label,
	}
}

// We need this for the set of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(int(c1.ID), int(c2.ID))
}

// Add a state to the CFSM. Checks first if the state is present, using a
// content hash over its item set.
func (c *CFSM) addState(iset *iteratable.Set) *CFSMState {
	s := c.findStateByItems(iset)
	if s == nil {
		s = state(c.cfsmIds, iset)
		c.cfsmIds++
		c.signatures[itemSetSignature(iset)] = s
	}
	c.states.Add(s)
	return s
}

// Find a CFSM state by the contained item set.
func (c *CFSM) findStateByItems(iset *iteratable.Set) *CFSMState {
	if s, ok := c.signatures[itemSetSignature(iset)]; ok {
		return s
	}
	return nil
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym *Symbol) *cfsmEdge {
	e := edge(s0, s1, sym)
	c.edges.Add(e)
	return e
}

func (c *CFSM) allEdges(s *CFSMState) []*cfsmEdge {
	it := c.edges.Iterator()
	r := make([]*cfsmEdge, 0, 2)
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		if e.from == s {
			r = append(r, e)
		}
	}
	return r
}

// Size returns the number of states of the CFSM.
func (c *CFSM) Size() int {
	return c.states.Size()
}

// CFSM is the characteristic finite state machine for an LR grammar, i.e. the
// LR(0) (or LR(1)) state diagram. Will be constructed by a TableGenerator.
// Clients normally do not use it directly. Nevertheless, there are some methods
// defined on it, e.g, for debugging purposes, or even to
// compute your own tables from it.
type CFSM struct {
	g          *Grammar              // this CFSM is for Grammar g
	states     *treeset.Set          // all the states
	edges      *arraylist.List       // all the edges between states
	signatures map[string]*CFSMState // item-set content hash -> state
	S0         *CFSMState            // start state
	cfsmIds    uint                  // serial IDs for CFSM states
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *Grammar) *CFSM {
	c := &CFSM{g: g}
	c.states = treeset.NewWith(stateComparator)
	c.edges = arraylist.New()
	c.signatures = make(map[string]*CFSMState)
	return c
}

// Conflict describes a parse table conflict: a state/lookahead pair holding
// more than one action.
type Conflict struct {
	State     uint             // CFSM state ID
	Lookahead automata.TokType // terminal token value the conflict occurs at
	Kind      string           // "shift-reduce" or "reduce-reduce"
	Actions   [2]int32         // the two competing actions
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s conflict in state %d at lookahead %d", c.Kind, c.State, c.Lookahead)
}

// TableGenerator is a generator object to construct LR parser tables.
// Clients usually create a Grammar G, then an LRAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and SLR(1) parser tables for an LR-parser recognizing grammar G,
// while CreateLR1Tables() and CreateLALRTables() construct tables from the
// grammar's LR(1) item sets.
type TableGenerator struct {
	g            *Grammar
	ga           *LRAnalysis
	dfa          *CFSM
	gototable    *Table
	actiontable  *Table
	HasConflicts bool
	Conflicts    []Conflict
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *LRAnalysis) *TableGenerator {
	lrgen := &TableGenerator{}
	lrgen.g = ga.Grammar()
	lrgen.ga = ga
	return lrgen
}

// Grammar returns the grammar the tables are generated for.
func (lrgen *TableGenerator) Grammar() *Grammar {
	return lrgen.g
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Usually clients call lrgen.CreateTables() beforehand, but it is possible
// to call lrgen.CFSM() directly. The CFSM will be created, if it has not
// been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = lrgen.buildCFSM(false)
	}
	return lrgen.dfa
}

// GotoTable returns the GOTO table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously (or a separate call to
// BuildGotoTable(...).)
func (lrgen *TableGenerator) GotoTable() *Table {
	if lrgen.gototable == nil {
		tracer().P("lr", "gen").Errorf("tables not yet initialized")
	}
	return lrgen.gototable
}

// ActionTable returns the ACTION table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously (or a separate call to
// BuildSLR1ActionTable(...).)
func (lrgen *TableGenerator) ActionTable() *Table {
	if lrgen.actiontable == nil {
		tracer().P("lr", "gen").Errorf("tables not yet initialized")
	}
	return lrgen.actiontable
}

// CreateTables creates the necessary data structures for an SLR parser.
func (lrgen *TableGenerator) CreateTables() {
	lrgen.dfa = lrgen.buildCFSM(false)
	lrgen.gototable = lrgen.BuildGotoTable()
	lrgen.actiontable = lrgen.BuildSLR1ActionTable()
}

// AcceptingStates returns all states of the CFSM which represent an accept action.
// Clients have to call CreateTables() first.
func (lrgen *TableGenerator) AcceptingStates() []uint {
	if lrgen.dfa == nil {
		tracer().Errorf("tables not yet generated; call CreateTables() first")
		return nil
	}
	acc := make([]uint, 0, 3)
	for _, x := range lrgen.dfa.states.Values() {
		state := x.(*CFSMState)
		if state.Accept {
			it := lrgen.dfa.edges.Iterator()
			for it.Next() {
				e := it.Value().(*cfsmEdge)
				if e.to.ID == state.ID {
					acc = append(acc, e.from.ID)
				}
			}
		}
	}
	return unique(acc)
}

// Construct the characteristic finite state machine CFSM for a grammar. With
// lr1 set, states consist of LR(1) items carrying lookaheads; otherwise of
// plain LR(0) items.
func (lrgen *TableGenerator) buildCFSM(lr1 bool) *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	G := lrgen.g
	cfsm := emptyCFSM(G)
	start, _ := StartItem(G.rules[0])
	var closure0 *iteratable.Set
	if lr1 {
		closure0 = lrgen.ga.closure1(start.With(EOFType))
	} else {
		closure0 = lrgen.ga.closure(start)
	}
	tracer().Debugf("start item=%v", start)
	cfsm.S0 = cfsm.addState(closure0)
	cfsm.S0.Dump()
	S := treeset.NewWith(stateComparator)
	S.Add(cfsm.S0)
	for S.Size() > 0 {
		s := S.Values()[0].(*CFSMState)
		S.Remove(s)
		G.EachSymbol(func(A *Symbol) interface{} {
			tracer().Debugf("checking goto-set for symbol = %v", A)
			var gotoset *iteratable.Set
			if lr1 {
				gotoset = lrgen.ga.gotoSetClosure1(s.items, A)
			} else {
				gotoset = lrgen.ga.gotoSetClosure(s.items, A)
			}
			snew := cfsm.findStateByItems(gotoset)
			if snew == nil {
				snew = cfsm.addState(gotoset)
				if !snew.isErrorState() {
					S.Add(snew)
					if snew.containsCompletedStartRule() {
						snew.Accept = true
					}
				}
			}
			if !snew.isErrorState() {
				cfsm.addEdge(s, snew, A)
			}
			snew.Dump()
			return nil
		})
		tracer().Debugf("-----------------------------------------------------------------")
	}
	return cfsm
}

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) CFSM2GraphViz(w io.Writer) {
	io.WriteString(w, `digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, x := range c.states.Values() {
		s := x.(*CFSMState)
		fmt.Fprintf(w, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s.items))
	}
	it := c.edges.Iterator()
	for it.Next() {
		edge := it.Value().(*cfsmEdge)
		fmt.Fprintf(w, "s%03d -> s%03d [label=\"%s\"]\n", edge.from.ID, edge.to.ID, edge.label)
	}
	io.WriteString(w, "}\n")
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

// ===========================================================================

// BuildGotoTable builds the GOTO table. This is normally not called directly, but rather
// via CreateTables().
func (lrgen *TableGenerator) BuildGotoTable() *Table {
	gototable := lrgen.newTable("GOTO")
	states := lrgen.dfa.states.Iterator()
	for states.Next() {
		state := states.Value().(*CFSMState)
		for _, e := range lrgen.dfa.allEdges(state) {
			gototable.set(state.ID, automata.TokType(e.label.Value), int32(e.to.ID))
		}
	}
	return gototable
}

// newTable allocates a parse table sized for the grammar's token value range.
func (lrgen *TableGenerator) newTable(name string) *Table {
	statescnt := uint(lrgen.dfa.states.Size())
	var maxtok automata.TokType
	var mintok automata.TokType
	lrgen.g.EachSymbol(func(A *Symbol) interface{} {
		if A.TokenType() > maxtok { // find minimum and maximum token value
			maxtok = A.TokenType()
		} else if A.TokenType() < mintok {
			mintok = A.TokenType()
		}
		return nil
	})
	extent := uint(maxtok - mintok + 1)
	tracer().Infof("%s table of size %d x (%d-%d=%d)", name, statescnt, maxtok, mintok, extent)
	matrix := sparse.NewIntMatrix(statescnt, extent, sparse.DefaultNullValue)
	return &Table{
		matrix: matrix,
		mincol: mintok,
	}
}

// GotoTableAsHTML exports a GOTO-table in HTML-format.
func GotoTableAsHTML(lrgen *TableGenerator, w io.Writer) {
	if lrgen.gototable == nil {
		tracer().Errorf("GOTO table not yet created, cannot export to HTML")
		return
	}
	parserTableAsHTML(lrgen, "GOTO", lrgen.gototable, w)
}

// ActionTableAsHTML exports the ACTION-table in HTML-format.
func ActionTableAsHTML(lrgen *TableGenerator, w io.Writer) {
	if lrgen.actiontable == nil {
		tracer().Errorf("ACTION table not yet created, cannot export to HTML")
		return
	}
	parserTableAsHTML(lrgen, "ACTION", lrgen.actiontable, w)
}

func parserTableAsHTML(lrgen *TableGenerator, tname string, table *Table, w io.Writer) {
	var symvec = make([]*Symbol, 0, len(lrgen.g.terminals)+len(lrgen.g.nonterminals))
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("%s table of size = %d<p>", tname, table.matrix.ValueCount()))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	lrgen.g.EachSymbol(func(A *Symbol) interface{} {
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", A))
		symvec = append(symvec, A)
		return nil
	})
	io.WriteString(w, "</tr>\n")
	states := lrgen.dfa.states.Iterator()
	var td string // table cell
	for states.Next() {
		state := states.Value().(*CFSMState)
		io.WriteString(w, fmt.Sprintf("<tr><td>state %d</td>\n", state.ID))
		for _, A := range symvec {
			v1, v2 := table.Values(state.ID, A.TokenType())
			if v1 == table.NullValue() {
				td = "&nbsp;"
			} else if v2 == table.NullValue() {
				td = valstring(v1, table)
			} else {
				td = valstring(v1, table) + "/" + valstring(v2, table)
			}
			io.WriteString(w, "<td>")
			io.WriteString(w, td)
			io.WriteString(w, "</td>\n")
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}

// ===========================================================================

// BuildLR0ActionTable contructs the LR(0) Action table. This method is not called by
// CreateTables(), as we normally use an SLR(1) parser and therefore an action table with
// lookahead included. This method is provided as an add-on.
func (lrgen *TableGenerator) BuildLR0ActionTable() *Table {
	statescnt := uint(lrgen.dfa.states.Size())
	tracer().Infof("ACTION.0 table of size %d x 1", statescnt)
	matrix := sparse.NewIntMatrix(statescnt, 1, sparse.DefaultNullValue)
	actions := &Table{
		matrix: matrix,
		mincol: 0,
	}
	return lrgen.buildActionTable(actions, false)
}

// BuildSLR1ActionTable constructs the SLR(1) Action table. This method is normally not called
// by clients, but rather via CreateTables(). It builds an action table including
// lookahead (using the FOLLOW-set created by the grammar analyzer).
func (lrgen *TableGenerator) BuildSLR1ActionTable() *Table {
	actions := lrgen.newTable("ACTION.1")
	return lrgen.buildActionTable(actions, true)
}

// For building an ACTION table we iterate over all the states of the CFSM.
// An inner loop iterates over all the items within a CFSM-state.
// If an item has a terminal immediately after the dot, we produce a shift
// entry. If an item's dot is behind the complete (non-epsilon) RHS of a rule,
// then
// - for the LR(0) case: we produce a reduce-entry for the rule
// - for the SLR case: we produce a reduce-entry for the rule for each
//   terminal from FOLLOW(LHS).
//
// The table is returned as a sparse matrix, where every entry may consist of up
// to 2 entries, thus allowing for shift/reduce- or reduce/reduce-conflicts.
//
// Shift entries are represented as -1.  Reduce entries are encoded as the
// ordinal no. of the grammar rule to reduce. 0 means reducing the start rule,
// i.e., accept.
func (lrgen *TableGenerator) buildActionTable(actions *Table, slr1 bool) *Table {
	states := lrgen.dfa.states.Iterator()
	for states.Next() {
		state := states.Value().(*CFSMState)
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		for _, v := range state.items.Values() {
			i := asItem(v)
			A := i.PeekSymbol()
			prefix := i.Prefix()
			tracer().Debugf("symbol at dot = %v, prefix = %v", A, symListString(prefix))
			if A != nil && A.IsTerminal() { // create a shift entry
				P := shiftOrAccept(A)
				if slr1 {
					lrgen.enterAction(actions, state, A.TokenType(), int32(P))
				} else {
					actions.add(state.ID, 0, int32(P))
				}
			}
			if A == nil { // we are at the end of a rule
				rule, inx := lrgen.g.matchesRHS(i.rule.LHS, prefix) // find the rule
				if inx >= 0 {                                       // found => create a reduce entry
					if slr1 {
						lookaheads := lrgen.ga.Follow(rule.LHS)
						tracer().Debugf("    Follow(%v) = %v", rule.LHS, lookaheads)
						for _, la := range lookaheads.AppendTo(nil) {
							lrgen.enterAction(actions, state, automata.TokType(la), int32(inx))
							tracer().Debugf("    creating reduce_%d action entry @ %v for %v", inx, la, rule)
						}
					} else {
						tracer().Debugf("    creating reduce_%d action entry for %v", inx, rule)
						actions.add(state.ID, 0, int32(inx)) // reduce rule[inx]
					}
				}
			}
		}
	}
	return actions
}

// enterAction writes an action into an ACTION table cell, recording a
// conflict if the cell already holds a different action. A shift meeting a
// shift is no conflict (the goto target disambiguates).
func (lrgen *TableGenerator) enterAction(actions *Table, state *CFSMState, la automata.TokType, action int32) {
	a1 := actions.Value(state.ID, la)
	if a1 == actions.NullValue() {
		actions.add(state.ID, la, action)
		return
	}
	if a1 == action {
		tracer().Debugf("    relax, entry already present")
		return
	}
	kind := "reduce-reduce"
	if a1 == ShiftAction || a1 == AcceptAction || action == ShiftAction || action == AcceptAction {
		kind = "shift-reduce"
	}
	conflict := Conflict{
		State:     state.ID,
		Lookahead: la,
		Kind:      kind,
		Actions:   [2]int32{a1, action},
	}
	lrgen.HasConflicts = true
	lrgen.Conflicts = append(lrgen.Conflicts, conflict)
	tracer().Infof("%v", conflict)
	actions.add(state.ID, la, action)
}

func shiftOrAccept(terminal *Symbol) int {
	if terminal.Value == EOFType {
		return AcceptAction
	}
	return ShiftAction
}

// Table is a parse table (ACTION or GOTO), backed by a sparse integer
// matrix. Cells may hold up to two values, which allows representing
// conflicting actions.
type Table struct {
	matrix *sparse.IntMatrix
	mincol automata.TokType // lowest symbol value => offset for access
}

func (t *Table) add(i uint, tt automata.TokType, val int32) {
	j := tt - t.mincol
	if j < 0 {
		panic(fmt.Sprintf("lr.Table.add() with index < 0: %d", j))
	}
	t.matrix.Add(i, uint(j), val)
}

func (t *Table) set(i uint, tt automata.TokType, val int32) {
	j := tt - t.mincol
	if j < 0 {
		panic(fmt.Sprintf("lr.Table.set() with index < 0: %d", j))
	}
	t.matrix.Set(i, uint(j), val)
}

// NullValue returns the table's empty-cell value.
func (t *Table) NullValue() int32 {
	return t.matrix.NullValue()
}

// Value returns the primary entry of a table cell.
func (t *Table) Value(i uint, tt automata.TokType) int32 {
	j := tt - t.mincol
	if j < 0 {
		panic(fmt.Sprintf("lr.Table.Value() with index < 0: %d", j))
	}
	return t.matrix.Value(i, uint(j))
}

// Values returns both entries of a table cell; the second one differs from
// NullValue only for conflicting cells.
func (t *Table) Values(i uint, tt automata.TokType) (int32, int32) {
	j := tt - t.mincol
	if j < 0 {
		panic(fmt.Sprintf("lr.Table.Values() with index < 0: %d", j))
	}
	return t.matrix.Values(i, uint(j))
}

// ----------------------------------------------------------------------

func unique(in []uint) []uint { // from slice tricks
	if len(in) == 0 {
		return in
	}
	sortUInts(in)
	j := 0
	for i := 1; i < len(in); i++ {
		if in[j] == in[i] {
			continue
		}
		j++
		in[j] = in[i] // only set what is required
	}
	result := in[:j+1]
	return result
}

// valstring is a short helper to stringify an action table entry.
func valstring(v int32, m *Table) string {
	if v == m.NullValue() {
		return "<none>"
	} else if v == AcceptAction {
		return "<accept>"
	} else if v == ShiftAction {
		return "<shift>"
	}
	return fmt.Sprintf("<reduce %d>", v)
}

// sortUInts sorts a slice of ints in increasing order.
func sortUInts(x []uint) { sort.Sort(UIntSlice(x)) }

// UIntSlice attaches the methods of sort.Interface to []uint.
type UIntSlice []uint

func (x UIntSlice) Len() int           { return len(x) }
func (x UIntSlice) Less(i, j int) bool { return x[i] < x[j] }
func (x UIntSlice) Swap(i, j int)      { x[i], x[j] = x[j], x[i] }
