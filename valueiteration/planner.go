// Package valueiteration computes state values and greedy policies for a
// fully known MDP using synchronous (batch) value iteration.
package valueiteration

import (
	"errors"
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/jesuszarate/AI-ReinforcementLearning/mdp"
)

// Planner runs its sweeps in New and is read-only afterwards.
type Planner[S, A comparable] struct {
	model      mdp.Model[S, A]
	discount   float64
	iterations int
	values     mdp.Values[S]
	residuals  []float64
	exit       A
	hasExit    bool
}

var _ mdp.ValueEstimationAgent[mdp.State, mdp.Action] = (*Planner[mdp.State, mdp.Action])(nil)

// ErrOptionType is returned by New when an exit action or sweep observer
// was built for a different state or action type than the model's.
var ErrOptionType = errors.New("option type does not match the model")

// New runs exactly the configured number of sweeps over model before
// returning. Discount and iteration count are not range checked; a
// non-positive iteration count leaves every value at zero.
func New[S, A comparable](model mdp.Model[S, A], opts ...Option) (*Planner[S, A], error) {
	cfg := newSettings(opts)
	p := &Planner[S, A]{
		model:      model,
		discount:   cfg.discount,
		iterations: cfg.iterations,
		values:     mdp.Values[S]{},
	}

	if ea, ok := model.(mdp.ExitActioner[A]); ok {
		p.exit, p.hasExit = ea.ExitAction()
	}
	var result *multierror.Error
	if cfg.exit != nil {
		if a, ok := cfg.exit.(A); ok {
			p.exit, p.hasExit = a, true
		} else {
			result = multierror.Append(result, fmt.Errorf("exit action %v is a %T, want %T: %w", cfg.exit, cfg.exit, p.exit, ErrOptionType))
		}
	}

	var observers []func(Sweep[S])
	for _, o := range cfg.observers {
		fn, ok := o.(func(Sweep[S]))
		if !ok {
			result = multierror.Append(result, fmt.Errorf("sweep observer is a %T, want %T: %w", o, fn, ErrOptionType))
			continue
		}
		observers = append(observers, fn)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	p.run(cfg.logger, observers)
	return p, nil
}

func (p *Planner[S, A]) run(log logrus.FieldLogger, observers []func(Sweep[S])) {
	next := mdp.Values[S]{}
	for i := 1; i <= p.iterations; i++ {
		residual := 0.0
		for _, s := range p.model.States() {
			actions := p.model.PossibleActions(s)
			if len(actions) == 0 {
				if v, ok := p.values[s]; ok {
					next[s] = v
				} else {
					delete(next, s)
				}
				continue
			}
			best, found := 0.0, false
			for _, a := range actions {
				q := p.ComputeQValueFromValues(s, a)
				if !found || q > best {
					best, found = q, true
				}
			}
			next[s] = best
			residual = math.Max(residual, math.Abs(best-p.values.Get(s)))
		}
		// every state in next was computed from p.values only
		p.values, next = next, p.values
		p.residuals = append(p.residuals, residual)

		log.WithFields(logrus.Fields{
			"sweep":    i,
			"residual": residual,
		}).Debug("value iteration sweep")

		if len(observers) > 0 {
			sw := Sweep[S]{Index: i, Residual: residual, Values: p.values.Clone()}
			for _, fn := range observers {
				fn(sw)
			}
		}
	}
	log.WithFields(logrus.Fields{
		"sweeps":   len(p.residuals),
		"discount": p.discount,
		"states":   len(p.model.States()),
	}).Debug("value iteration done")
}

// ComputeQValueFromValues is the expected discounted return of taking a in
// s and then following the stored values. a must be legal in s.
func (p *Planner[S, A]) ComputeQValueFromValues(s S, a A) float64 {
	q := 0.0
	for _, o := range p.model.TransitionStatesAndProbs(s, a) {
		q += float64(o.Probability) * (p.model.Reward(s, a, o.State) + p.discount*p.values.Get(o.State))
	}
	return q
}

// ComputeActionFromValues returns the greedy action in s, or false when s is
// terminal. The first action is always taken and later ones replace it only
// with a strictly larger Q-value, so any non-empty action set yields an
// action even when every Q-value is -Inf or NaN. The exit action is the
// answer only when nothing was selected and it is legal in s.
func (p *Planner[S, A]) ComputeActionFromValues(s S) (A, bool) {
	var bestAct A
	if p.model.IsTerminal(s) {
		return bestAct, false
	}
	actions := p.model.PossibleActions(s)
	bestVal, found := 0.0, false
	for _, a := range actions {
		if q := p.ComputeQValueFromValues(s, a); !found || q > bestVal {
			bestVal, bestAct, found = q, a, true
		}
	}
	if !found && p.hasExit && mdp.Contains(actions, p.exit) {
		return p.exit, true
	}
	return bestAct, found
}

func (p *Planner[S, A]) Value(s S) float64 {
	return p.values.Get(s)
}

func (p *Planner[S, A]) QValue(s S, a A) float64 {
	return p.ComputeQValueFromValues(s, a)
}

func (p *Planner[S, A]) Policy(s S) (A, bool) {
	return p.ComputeActionFromValues(s)
}

// Action is the greedy policy; a planner never explores.
func (p *Planner[S, A]) Action(s S) (A, bool) {
	return p.ComputeActionFromValues(s)
}

func (p *Planner[S, A]) Values() mdp.Values[S] {
	return p.values.Clone()
}

// Residuals holds, per sweep, the largest absolute change of any value.
func (p *Planner[S, A]) Residuals() []float64 {
	return append([]float64(nil), p.residuals...)
}

// ExitAction is the configured exit action, from WithExitAction or the
// model's mdp.ExitActioner.
func (p *Planner[S, A]) ExitAction() (A, bool) {
	return p.exit, p.hasExit
}

func (p *Planner[S, A]) Discount() float64 {
	return p.discount
}

func (p *Planner[S, A]) Iterations() int {
	return p.iterations
}
