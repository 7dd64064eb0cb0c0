package lr

import (
	"github.com/npillmayer/automata"
	"github.com/npillmayer/automata/lr/iteratable"
)

// LR(1) item sets carry a lookahead terminal per item. The closure of an
// item [A -> α•Bβ, a] adds, for every rule B -> γ, the items [B -> •γ, b]
// with b ranging over FIRST(βa).

// closure1 computes the LR(1) closure of a single item.
func (ga *LRAnalysis) closure1(i Item) *iteratable.Set {
	S := newItemSet()
	S.Add(i)
	return ga.closureSet1(S)
}

func (ga *LRAnalysis) closureSet1(S *iteratable.Set) *iteratable.Set {
	C := S.Copy()
	C.IterateOnce()
	for C.Next() {
		item := asItem(C.Item())
		B := item.PeekSymbol()
		if B == nil || B.IsTerminal() {
			continue
		}
		lookaheads := ga.lookaheadsAfter(item)
		for _, r := range ga.g.RulesFor(B) {
			start, _ := StartItem(r)
			for _, la := range lookaheads {
				C.Add(start.With(la))
			}
		}
	}
	return C
}

// lookaheadsAfter computes FIRST(βa) for an item [A -> α•Bβ, a]: the
// terminals which may follow B in this context.
func (ga *LRAnalysis) lookaheadsAfter(i Item) []int {
	f := ga.firstOfSeq(i.Suffix())
	las := newIntSet()
	las.addAllButEps(f)
	if f.Contains(EpsilonType) && i.la != 0 {
		las.Add(i.la)
	}
	return las.AppendTo(nil)
}

func (ga *LRAnalysis) gotoSetClosure1(i *iteratable.Set, A *Symbol) *iteratable.Set {
	gotoset := ga.gotoSet(i, A)
	gclosure := ga.closureSet1(gotoset)
	tracer().Debugf("goto1(%s) --%s--> %s", itemSetString(i), A, itemSetString(gclosure))
	return gclosure
}

// CreateLR1Tables creates the data structures for a canonical LR(1) parser:
// the CFSM over LR(1) item sets, the GOTO table and the ACTION table with
// per-item lookaheads.
func (lrgen *TableGenerator) CreateLR1Tables() {
	lrgen.dfa = lrgen.buildCFSM(true)
	lrgen.gototable = lrgen.BuildGotoTable()
	lrgen.actiontable = lrgen.buildLR1ActionTable()
}

// CreateLALRTables creates the data structures for a LALR(1) parser: the
// LR(1) CFSM is built first, then states with identical cores are merged
// (unioning their items' lookaheads), and tables are derived from the merged
// machine. Reduce-reduce conflicts absent from the canonical LR(1) machine
// may appear here.
func (lrgen *TableGenerator) CreateLALRTables() {
	lr1cfsm := lrgen.buildCFSM(true)
	lrgen.dfa = mergeCores(lr1cfsm)
	lrgen.gototable = lrgen.BuildGotoTable()
	lrgen.actiontable = lrgen.buildLR1ActionTable()
}

// mergeCores folds the states of an LR(1) CFSM into LALR states: states with
// identical item cores become one state holding the union of their items.
func mergeCores(c *CFSM) *CFSM {
	merged := emptyCFSM(c.g)
	group := make(map[string]*CFSMState)  // core signature -> merged state
	forward := make(map[uint]*CFSMState)  // original state ID -> merged state
	for _, x := range c.states.Values() { // states are ordered by ID
		s := x.(*CFSMState)
		sig := coreSignature(s.items)
		m, ok := group[sig]
		if !ok {
			m = state(merged.cfsmIds, s.items.Copy())
			m.Accept = s.Accept
			merged.cfsmIds++
			group[sig] = m
			merged.states.Add(m)
		} else {
			m.items.Union(s.items)
			m.Accept = m.Accept || s.Accept
		}
		forward[s.ID] = m
	}
	tracer().Infof("LALR merge: %d LR(1) states -> %d states", c.states.Size(), merged.states.Size())
	merged.S0 = forward[c.S0.ID]
	seen := make(map[[3]interface{}]bool)
	it := c.edges.Iterator()
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		from, to := forward[e.from.ID], forward[e.to.ID]
		key := [3]interface{}{from, to, e.label}
		if seen[key] {
			continue
		}
		seen[key] = true
		merged.addEdge(from, to, e.label)
	}
	return merged
}

// buildLR1ActionTable constructs the ACTION table from LR(1) (or merged
// LALR) item sets: shift entries as in the SLR case, reduce entries only at
// an item's own lookahead.
func (lrgen *TableGenerator) buildLR1ActionTable() *Table {
	actions := lrgen.newTable("ACTION.LR1")
	states := lrgen.dfa.states.Iterator()
	for states.Next() {
		state := states.Value().(*CFSMState)
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		for _, v := range state.items.Values() {
			i := asItem(v)
			A := i.PeekSymbol()
			if A != nil && A.IsTerminal() { // create a shift entry
				P := shiftOrAccept(A)
				lrgen.enterAction(actions, state, A.TokenType(), int32(P))
				continue
			}
			if A == nil && i.la != 0 { // completed item => reduce at lookahead
				tracer().Debugf("    creating reduce_%d action entry @ %v for %v", i.rule.Serial, i.la, i.rule)
				lrgen.enterAction(actions, state, automata.TokType(i.la), int32(i.rule.Serial))
			}
		}
	}
	return actions
}
