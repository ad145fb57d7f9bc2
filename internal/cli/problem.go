package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jesuszarate/AI-ReinforcementLearning/gridworld"
	"github.com/jesuszarate/AI-ReinforcementLearning/mdp"
)

// problem is the MDP a command works on, loaded either from a built-in grid
// or from a YAML file.
type problem struct {
	Name  string
	Model mdp.Model[mdp.State, mdp.Action]
	Grid  *gridworld.Grid
	Table *mdp.Table
	File  *mdp.File
	Start mdp.State
}

func addProblemFlags(cmd *cobra.Command) {
	cmd.Flags().String("grid", "", fmt.Sprintf("Built-in grid world %v", gridworld.Layouts()))
	cmd.Flags().String("mdp", "", "YAML file describing a tabular MDP")
	cmd.Flags().Float64("noise", gridworld.DefaultNoise, "Probability mass a grid move slips sideways")
	cmd.Flags().Float64("living-reward", gridworld.DefaultLivingReward, "Reward for every grid move that does not exit")
}

func loadProblem(v *viper.Viper) (*problem, error) {
	gridName, path := v.GetString("grid"), v.GetString("mdp")
	switch {
	case gridName != "" && path != "":
		return nil, NewExitError(ExitBadInput, fmt.Errorf("--grid and --mdp are mutually exclusive"))
	case path != "":
		table, file, err := mdp.LoadFile(path)
		if err != nil {
			return nil, NewExitError(ExitBadInput, err)
		}
		p := &problem{Name: file.Name, Model: table, Table: table, File: file, Start: file.Start}
		if p.Name == "" {
			p.Name = path
		}
		if p.Start == "" {
			p.Start = table.States()[0]
		}
		return p, nil
	default:
		if gridName == "" {
			gridName = "book"
		}
		grid, err := gridworld.Named(gridName)
		if err != nil {
			return nil, NewExitError(ExitBadInput, err)
		}
		grid.Noise = v.GetFloat64("noise")
		grid.LivingReward = v.GetFloat64("living-reward")
		return &problem{Name: grid.Name, Model: grid, Grid: grid, Start: grid.Start()}, nil
	}
}
