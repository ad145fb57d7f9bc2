package valueiteration

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/jesuszarate/AI-ReinforcementLearning/mdp"
)

const (
	DefaultDiscount   = 0.9
	DefaultIterations = 100
)

// Sweep is handed to observers after each committed sweep. Values is a
// copy and may be retained.
type Sweep[S comparable] struct {
	Index    int
	Residual float64
	Values   mdp.Values[S]
}

type settings struct {
	discount   float64
	iterations int
	logger     logrus.FieldLogger
	exit       any
	observers  []any
}

type Option func(*settings)

func WithDiscount(discount float64) Option {
	return func(s *settings) {
		s.discount = discount
	}
}

func WithIterations(iterations int) Option {
	return func(s *settings) {
		s.iterations = iterations
	}
}

// WithExitAction names the action picked when greedy extraction selects
// nothing and the action is legal. It overrides mdp.ExitActioner. The
// action type must match the model's or New fails with ErrOptionType, so
// pass a typed value: WithExitAction(mdp.Action("exit")), not
// WithExitAction("exit").
func WithExitAction[A comparable](a A) Option {
	return func(s *settings) {
		s.exit = a
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithSweepObserver registers fn to run after every sweep. The state type
// must match the model's or New fails with ErrOptionType.
func WithSweepObserver[S comparable](fn func(Sweep[S])) Option {
	return func(s *settings) {
		s.observers = append(s.observers, fn)
	}
}

func newSettings(opts []Option) *settings {
	s := &settings{
		discount:   DefaultDiscount,
		iterations: DefaultIterations,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.logger = l
	}
	return s
}
