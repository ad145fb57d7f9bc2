package cli

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jesuszarate/AI-ReinforcementLearning/gridworld"
	"github.com/jesuszarate/AI-ReinforcementLearning/internal/metrics"
	"github.com/jesuszarate/AI-ReinforcementLearning/internal/report"
	"github.com/jesuszarate/AI-ReinforcementLearning/mdp"
	"github.com/jesuszarate/AI-ReinforcementLearning/valueiteration"
)

// maxTracked bounds how many state value lines go into the chart.
const maxTracked = 8

func NewRunCmd(root *cobra.Command) *cobra.Command {
	c := &cobra.Command{
		Use:   "run",
		Args:  cobra.ExactArgs(0),
		Short: "Run value iteration and print values and the greedy policy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := settings(cmd)
			if err != nil {
				return err
			}
			log := newLogger(cmd, v)
			p, err := loadProblem(v)
			if err != nil {
				return err
			}

			discount := valueiteration.DefaultDiscount
			iterations := valueiteration.DefaultIterations
			if p.File != nil && p.File.Discount != nil {
				discount = *p.File.Discount
			}
			if p.File != nil && p.File.Iterations != nil {
				iterations = *p.File.Iterations
			}
			if v.IsSet("discount") {
				discount = v.GetFloat64("discount")
			}
			if v.IsSet("iterations") {
				iterations = v.GetInt("iterations")
			}
			if iterations < 0 {
				return NewExitError(ExitBadInput, fmt.Errorf("iterations must not be negative, got %d", iterations))
			}

			recorder := metrics.NewRecorder()
			tracked := trackedStates(p)
			chart := report.Convergence{Title: p.Name}
			for _, s := range tracked {
				chart.Tracked = append(chart.Tracked, report.Series{Name: string(s)})
			}

			started := time.Now()
			planner, err := valueiteration.New(p.Model,
				valueiteration.WithDiscount(discount),
				valueiteration.WithIterations(iterations),
				valueiteration.WithLogger(log),
				valueiteration.WithSweepObserver(func(sw valueiteration.Sweep[mdp.State]) {
					recorder.ObserveSweep(sw.Residual)
					for i, s := range tracked {
						chart.Tracked[i].Points = append(chart.Tracked[i].Points, sw.Values.Get(s))
					}
				}),
			)
			if err != nil {
				return NewExitError(ExitFailure, err)
			}
			recorder.ObservePlan(len(p.Model.States()), time.Since(started))
			chart.Residuals = planner.Residuals()

			log.WithFields(logrus.Fields{
				"mdp":        p.Name,
				"states":     len(p.Model.States()),
				"discount":   discount,
				"iterations": iterations,
			}).Info("planned")

			out := cmd.OutOrStdout()
			au := aurora.NewAurora(!v.GetBool("no-color"))
			printResult(out, au, p, planner, v.GetBool("qvalues"))

			if n := v.GetInt("episodes"); n > 0 {
				if p.Start == "" {
					log.Warn("no start state, skipping episodes")
				} else {
					simulate(out, au, p, planner, n, v.GetInt("max-steps"), v.GetInt64("seed"), discount)
				}
			}

			if path := v.GetString("chart"); path != "" {
				if err := chart.WriteFile(path); err != nil {
					return NewExitError(ExitOutput, err)
				}
				log.WithField("path", path).Info("wrote convergence chart")
			}
			if path := v.GetString("metrics-file"); path != "" {
				if err := recorder.WriteTextfile(path); err != nil {
					return NewExitError(ExitOutput, fmt.Errorf("writing metrics: %w", err))
				}
				log.WithField("path", path).Info("wrote metrics")
			}
			return nil
		},
	}
	root.AddCommand(c)
	addProblemFlags(c)
	c.Flags().Float64("discount", valueiteration.DefaultDiscount, "Discount factor applied to future rewards")
	c.Flags().Int("iterations", valueiteration.DefaultIterations, "Number of synchronous sweeps")
	c.Flags().Bool("qvalues", false, "Also print Q-values")
	c.Flags().Int("episodes", 0, "Simulate this many greedy episodes after planning")
	c.Flags().Int("max-steps", 100, "Step limit per simulated episode")
	c.Flags().Int64("seed", 1, "Seed for simulated transitions")
	c.Flags().String("chart", "", "Write an HTML convergence chart to this path")
	c.Flags().String("metrics-file", "", "Write Prometheus textfile metrics to this path")
	return c
}

func trackedStates(p *problem) []mdp.State {
	var tracked []mdp.State
	if p.Start != "" {
		tracked = append(tracked, p.Start)
	}
	for _, s := range p.Model.States() {
		if len(tracked) >= maxTracked {
			break
		}
		if s == p.Start || p.Model.IsTerminal(s) {
			continue
		}
		tracked = append(tracked, s)
	}
	return tracked
}

func printResult(out io.Writer, au aurora.Aurora, p *problem, planner *valueiteration.Planner[mdp.State, mdp.Action], qvalues bool) {
	fmt.Fprintf(out, "%s after %d sweeps (discount %g)\n", au.Bold(p.Name), planner.Iterations(), planner.Discount())
	if p.Grid != nil {
		pr := gridworld.Printer{Out: out, Au: au}
		fmt.Fprintln(out, au.Bold("values"))
		pr.PrintValues(p.Grid, planner.Value)
		fmt.Fprintln(out, au.Bold("policy"))
		pr.PrintPolicy(p.Grid, planner.Policy)
		if qvalues {
			fmt.Fprintln(out, au.Bold("q-values"))
			pr.PrintQValues(p.Grid, planner.QValue)
		}
		return
	}
	for _, s := range p.Model.States() {
		a, ok := planner.Policy(s)
		policy := "-"
		if ok {
			policy = string(a)
		}
		fmt.Fprintf(out, "%-16s %10.4f  %s\n", s, planner.Value(s), au.Yellow(policy))
		if qvalues {
			for _, act := range p.Model.PossibleActions(s) {
				fmt.Fprintf(out, "  %-14s %10.4f\n", act, planner.QValue(s, act))
			}
		}
	}
}

func simulate(out io.Writer, au aurora.Aurora, p *problem, planner *valueiteration.Planner[mdp.State, mdp.Action], episodes, maxSteps int, seed int64, discount float64) {
	rng := rand.New(rand.NewSource(seed))
	total := 0.0
	for i := 1; i <= episodes; i++ {
		ep := mdp.RunEpisode[mdp.State, mdp.Action](p.Model, planner, p.Start, maxSteps, discount, rng)
		total += ep.Return
		fmt.Fprintf(out, "episode %d: %d steps, return %.4f, ended in %s\n", i, len(ep.History), ep.Return, ep.Final)
	}
	fmt.Fprintf(out, "average return %s over %d episodes (planned value of %s: %.4f)\n",
		au.Green(fmt.Sprintf("%.4f", total/float64(episodes))), episodes, p.Start, planner.Value(p.Start))
}
