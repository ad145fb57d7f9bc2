package mdp

// ValueEstimationAgent is what a simulator or grader queries once planning
// is done. Policy and Action report false when there is no action to take.
type ValueEstimationAgent[S, A comparable] interface {
	Value(S) float64
	QValue(S, A) float64
	Policy(S) (A, bool)
	Action(S) (A, bool)
}

type Transition[S, A comparable] struct {
	State0 S
	Action A
	State1 S
	Reward float64
}

type Episode[S, A comparable] struct {
	History []Transition[S, A]
	Return  float64
	Final   S
}

func (e *Episode[S, A]) Step(state0 S, action A, state1 S, reward float64) {
	e.History = append(e.History, Transition[S, A]{
		State0: state0,
		Action: action,
		State1: state1,
		Reward: reward,
	})
}
