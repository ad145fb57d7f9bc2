package mdp

import "slices"

type stateAction struct {
	state  State
	action Action
}

type transitionKey struct {
	state  State
	action Action
	next   State
}

// Table is an explicitly enumerated MDP. States, actions and outcomes are
// reported in the order they were added.
type Table struct {
	Name string

	states   []State
	known    map[State]bool
	terminal map[State]bool
	actions  map[State][]Action
	outcomes map[stateAction]Distribution[State]
	rewards  map[transitionKey]float64
	exit     Action
	hasExit  bool
}

var (
	_ Model[State, Action] = (*Table)(nil)
	_ ExitActioner[Action] = (*Table)(nil)
)

func NewTable(name string) *Table {
	return &Table{
		Name:     name,
		known:    map[State]bool{},
		terminal: map[State]bool{},
		actions:  map[State][]Action{},
		outcomes: map[stateAction]Distribution[State]{},
		rewards:  map[transitionKey]float64{},
	}
}

// AddState declares s. Declaring a state twice only updates its terminal flag.
func (t *Table) AddState(s State, terminal bool) {
	if !t.known[s] {
		t.known[s] = true
		t.states = append(t.states, s)
	}
	t.terminal[s] = terminal
}

// AddTransition records that taking a in s reaches next with probability p
// and pays reward. Unknown states are declared as non-terminal. Repeating a
// (s, a, next) triple adds to its probability and replaces its reward.
func (t *Table) AddTransition(s State, a Action, next State, p Probability, reward float64) {
	if !t.known[s] {
		t.AddState(s, false)
	}
	if !t.known[next] {
		t.AddState(next, false)
	}
	key := stateAction{s, a}
	if _, ok := t.outcomes[key]; !ok {
		t.actions[s] = append(t.actions[s], a)
	}
	t.outcomes[key] = Aggregate(append(t.outcomes[key], Outcome[State]{State: next, Probability: p}))
	t.rewards[transitionKey{s, a, next}] = reward
}

func (t *Table) SetExitAction(a Action) {
	t.exit = a
	t.hasExit = true
}

func (t *Table) ExitAction() (Action, bool) {
	return t.exit, t.hasExit
}

func (t *Table) HasState(s State) bool {
	return t.known[s]
}

func (t *Table) States() []State {
	return slices.Clone(t.states)
}

func (t *Table) PossibleActions(s State) []Action {
	return slices.Clone(t.actions[s])
}

func (t *Table) TransitionStatesAndProbs(s State, a Action) []Outcome[State] {
	return slices.Clone(t.outcomes[stateAction{s, a}])
}

func (t *Table) Reward(s State, a Action, next State) float64 {
	return t.rewards[transitionKey{s, a, next}]
}

func (t *Table) IsTerminal(s State) bool {
	return t.terminal[s]
}
