package valueiteration

import "github.com/jesuszarate/AI-ReinforcementLearning/mdp"

// EvaluatePolicy estimates the values of following policy for the given
// number of synchronous sweeps. States where policy has no action keep
// their value.
func EvaluatePolicy[S, A comparable](model mdp.Model[S, A], policy func(S) (A, bool), discount float64, iterations int) mdp.Values[S] {
	V := mdp.Values[S]{}
	for k := 0; k < iterations; k++ {
		next := V.Clone()
		for _, s0 := range model.States() {
			if model.IsTerminal(s0) {
				continue
			}
			a, ok := policy(s0)
			if !ok {
				continue
			}
			var v1 float64
			for _, o := range model.TransitionStatesAndProbs(s0, a) {
				g := model.Reward(s0, a, o.State) + discount*V.Get(o.State)
				v1 += float64(o.Probability) * g
			}
			next[s0] = v1
		}
		V = next
	}
	return V
}
