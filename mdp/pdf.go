package mdp

import (
	"fmt"
	"math"
	"math/rand"
)

// Distribution is a discrete distribution that keeps its outcomes in
// declaration order so sampling with a seeded source is reproducible.
type Distribution[S comparable] []Outcome[S]

func (d Distribution[S]) Choose(rng *rand.Rand) S {
	v := rng.Float64()
	cumulative := 0.0
	var last S
	for _, o := range d {
		if o.Probability <= 0 {
			continue
		}
		cumulative += float64(o.Probability)
		if v < cumulative {
			return o.State
		}
		last = o.State
	}
	return last
}

func (d Distribution[S]) Sum() float64 {
	sum := 0.0
	for _, o := range d {
		sum += float64(o.Probability)
	}
	return sum
}

func (d Distribution[S]) Check() error {
	if sum := d.Sum(); math.Abs(sum-1) > .001 {
		return fmt.Errorf("probabilities sum to %g, want 1", sum)
	}
	return nil
}

// Aggregate merges repeated states, keeping the order in which each state
// first appears.
func Aggregate[S comparable](outcomes []Outcome[S]) Distribution[S] {
	index := make(map[S]int, len(outcomes))
	out := make(Distribution[S], 0, len(outcomes))
	for _, o := range outcomes {
		if i, ok := index[o.State]; ok {
			out[i].Probability += o.Probability
			continue
		}
		index[o.State] = len(out)
		out = append(out, o)
	}
	return out
}
