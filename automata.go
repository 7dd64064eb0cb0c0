package automata

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Epsilon denotes the empty-word label on non-consuming transitions.
const Epsilon = "ε"

// Type discriminates the three flavours of finite automata we handle.
type Type int8

const (
	DFA Type = iota // deterministic, no ε-transitions
	NFA             // non-deterministic, no ε-transitions
	ENFA            // non-deterministic with ε-transitions
)

func (t Type) String() string {
	switch t {
	case DFA:
		return "DFA"
	case NFA:
		return "NFA"
	case ENFA:
		return "ε-NFA"
	}
	return fmt.Sprintf("Type(%d)", t)
}

// State is a state of a finite automaton. Identity is the ID; the label is
// display-only and may differ (subset-construction states are labelled by
// letters while the ID encodes the constituent NFA-state set).
type State struct {
	ID      string
	Label   string
	Initial bool
	Final   bool
}

func (s State) String() string {
	flags := ""
	if s.Initial {
		flags += "→"
	}
	if s.Final {
		flags += "*"
	}
	if s.Label != "" && s.Label != s.ID {
		return fmt.Sprintf("%s%s(%s)", flags, s.Label, s.ID)
	}
	return flags + s.ID
}

// Transition is a directed edge between two states, labelled with an input
// symbol. Symbol == Epsilon denotes a non-consuming edge.
type Transition struct {
	From   string
	To     string
	Symbol string
}

// Key derives a unique identifier for a transition from its triple.
func (t Transition) Key() string {
	return t.From + "|" + t.Symbol + "|" + t.To
}

func (t Transition) String() string {
	return fmt.Sprintf("%s --%s--> %s", t.From, t.Symbol, t.To)
}

// Automaton is a finite automaton: a set of states (exactly one initial,
// zero or more final), a set of transitions, and an alphabet. The alphabet
// never contains ε.
type Automaton struct {
	Typ         Type
	States      []State
	Transitions []Transition
	Alphabet    []string
}

// NewAutomaton creates an empty automaton of the given type over an alphabet.
// The alphabet is copied, de-duplicated and kept sorted; ε is stripped.
func NewAutomaton(typ Type, alphabet []string) *Automaton {
	a := &Automaton{Typ: typ}
	for _, sym := range alphabet {
		a.addSymbol(sym)
	}
	return a
}

func (a *Automaton) addSymbol(sym string) {
	if sym == Epsilon || sym == "" {
		return
	}
	if _, found := slices.BinarySearch(a.Alphabet, sym); !found {
		a.Alphabet = append(a.Alphabet, sym)
		slices.Sort(a.Alphabet)
	}
}

// AddState appends a state, keeping state IDs unique. Adding a state with a
// known ID overwrites flags and label of the existing one.
func (a *Automaton) AddState(s State) {
	for i := range a.States {
		if a.States[i].ID == s.ID {
			a.States[i] = s
			return
		}
	}
	a.States = append(a.States, s)
}

// AddTransition appends a transition and records its symbol in the alphabet.
// Duplicate triples are ignored.
func (a *Automaton) AddTransition(t Transition) {
	for _, have := range a.Transitions {
		if have == t {
			return
		}
	}
	a.Transitions = append(a.Transitions, t)
	a.addSymbol(t.Symbol)
}

// State finds a state by ID, or nil.
func (a *Automaton) State(id string) *State {
	for i := range a.States {
		if a.States[i].ID == id {
			return &a.States[i]
		}
	}
	return nil
}

// Initial returns the initial state of the automaton.
func (a *Automaton) Initial() (State, error) {
	for _, s := range a.States {
		if s.Initial {
			return s, nil
		}
	}
	return State{}, fmt.Errorf("automaton has no initial state")
}

// Finals returns all accepting states.
func (a *Automaton) Finals() []State {
	var finals []State
	for _, s := range a.States {
		if s.Final {
			finals = append(finals, s)
		}
	}
	return finals
}

// TransitionsFrom returns all transitions leaving a state, optionally
// filtered by symbol (pass "" for no filter).
func (a *Automaton) TransitionsFrom(id string, symbol string) []Transition {
	var out []Transition
	for _, t := range a.Transitions {
		if t.From == id && (symbol == "" || t.Symbol == symbol) {
			out = append(out, t)
		}
	}
	return out
}

// Move computes the set of states reachable from a set of states by
// consuming exactly one given symbol. The result is sorted.
func (a *Automaton) Move(from []string, symbol string) []string {
	var targets []string
	for _, t := range a.Transitions {
		if t.Symbol != symbol {
			continue
		}
		if slices.Contains(from, t.From) && !slices.Contains(targets, t.To) {
			targets = append(targets, t.To)
		}
	}
	slices.Sort(targets)
	return targets
}

// HasEpsilon reports whether any transition is an ε-transition.
func (a *Automaton) HasEpsilon() bool {
	for _, t := range a.Transitions {
		if t.Symbol == Epsilon {
			return true
		}
	}
	return false
}

// IsDeterministic reports whether no two transitions share (from, symbol)
// and no ε-transition exists.
func (a *Automaton) IsDeterministic() bool {
	seen := make(map[string]bool, len(a.Transitions))
	for _, t := range a.Transitions {
		if t.Symbol == Epsilon {
			return false
		}
		key := t.From + "\x00" + t.Symbol
		if seen[key] {
			return false
		}
		seen[key] = true
	}
	return true
}

// Validate checks the structural invariants of the automaton: exactly one
// initial state, every transition endpoint referencing a known state, and
// every non-ε symbol being a member of the alphabet. Violations are returned
// as human-readable messages; an empty slice means the automaton is sound.
func (a *Automaton) Validate() []string {
	var errs []string
	initials := 0
	ids := make(map[string]bool, len(a.States))
	for _, s := range a.States {
		if ids[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate state id %q", s.ID))
		}
		ids[s.ID] = true
		if s.Initial {
			initials++
		}
	}
	if initials == 0 {
		errs = append(errs, "automaton has no initial state")
	} else if initials > 1 {
		errs = append(errs, fmt.Sprintf("automaton has %d initial states, want 1", initials))
	}
	for _, t := range a.Transitions {
		if !ids[t.From] {
			errs = append(errs, fmt.Sprintf("transition %v leaves unknown state %q", t, t.From))
		}
		if !ids[t.To] {
			errs = append(errs, fmt.Sprintf("transition %v enters unknown state %q", t, t.To))
		}
		if t.Symbol != Epsilon && !slices.Contains(a.Alphabet, t.Symbol) {
			errs = append(errs, fmt.Sprintf("transition symbol %q not in alphabet", t.Symbol))
		}
		if t.Symbol == Epsilon && a.Typ == DFA {
			errs = append(errs, fmt.Sprintf("ε-transition %v in a DFA", t))
		}
	}
	return errs
}

// Clone returns a deep copy of the automaton.
func (a *Automaton) Clone() *Automaton {
	c := &Automaton{Typ: a.Typ}
	c.States = append(c.States, a.States...)
	c.Transitions = append(c.Transitions, a.Transitions...)
	c.Alphabet = append(c.Alphabet, a.Alphabet...)
	return c
}

func (a *Automaton) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s over {%s}, %d states, %d transitions",
		a.Typ, strings.Join(a.Alphabet, ","), len(a.States), len(a.Transitions))
	return b.String()
}
