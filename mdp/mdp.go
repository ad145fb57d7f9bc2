package mdp

type State string

type Action string

type Probability float64

// Outcome is one (next state, probability) pair reachable under an action.
type Outcome[S comparable] struct {
	State       S
	Probability Probability
}

// Model is the query surface a planner needs from a fully known MDP.
// States must be enumerated in the same order on every call.
type Model[S, A comparable] interface {
	States() []S
	PossibleActions(S) []A
	TransitionStatesAndProbs(S, A) []Outcome[S]
	Reward(S, A, S) float64
	IsTerminal(S) bool
}

// ExitActioner is implemented by MDPs that model leaving the board as an
// explicit action.
type ExitActioner[A comparable] interface {
	ExitAction() (A, bool)
}

func Contains[A comparable](actions []A, a A) bool {
	for _, b := range actions {
		if a == b {
			return true
		}
	}
	return false
}
