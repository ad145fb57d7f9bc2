package cli

import (
	"fmt"

	"github.com/logrusorgru/aurora"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"
)

func NewInspectCmd(root *cobra.Command) *cobra.Command {
	c := &cobra.Command{
		Use:   "inspect",
		Args:  cobra.ExactArgs(0),
		Short: "List the states, actions and transitions of an MDP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := settings(cmd)
			if err != nil {
				return err
			}
			p, err := loadProblem(v)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if v.GetBool("dump") && p.File != nil {
				fmt.Fprintln(out, litter.Sdump(p.File))
				return nil
			}

			au := aurora.NewAurora(!v.GetBool("no-color"))
			m := p.Model
			fmt.Fprintf(out, "%s: %d states, start %q\n", au.Bold(p.Name), len(m.States()), p.Start)
			for _, s := range m.States() {
				if m.IsTerminal(s) {
					fmt.Fprintf(out, "%s %s\n", s, au.Magenta("(terminal)"))
					continue
				}
				fmt.Fprintln(out, s)
				for _, a := range m.PossibleActions(s) {
					fmt.Fprintf(out, "  %s\n", au.Yellow(a))
					for _, o := range m.TransitionStatesAndProbs(s, a) {
						fmt.Fprintf(out, "    -> %-16s p=%.3f r=%g\n", o.State, float64(o.Probability), m.Reward(s, a, o.State))
					}
				}
			}
			return nil
		},
	}
	root.AddCommand(c)
	addProblemFlags(c)
	c.Flags().Bool("dump", false, "Dump the decoded MDP file structure")
	return c
}
