package mdp

import "math/rand"

// RunEpisode follows agent's actions from start, sampling next states from
// model. It stops at a terminal state, at a state where the agent has no
// action, or after maxSteps transitions.
func RunEpisode[S, A comparable](model Model[S, A], agent ValueEstimationAgent[S, A], start S, maxSteps int, discount float64, rng *rand.Rand) Episode[S, A] {
	ep := Episode[S, A]{Final: start}
	state := start
	weight := 1.0

	for t := 0; t < maxSteps; t++ {
		if model.IsTerminal(state) {
			break
		}
		a, ok := agent.Action(state)
		if !ok {
			break
		}
		outcomes := Distribution[S](model.TransitionStatesAndProbs(state, a))
		if len(outcomes) == 0 {
			break
		}
		next := outcomes.Choose(rng)
		r := model.Reward(state, a, next)

		ep.Step(state, a, next, r)
		ep.Return += weight * r
		weight *= discount
		state = next
	}
	ep.Final = state
	return ep
}
