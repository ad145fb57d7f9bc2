// Package gridworld is the grid MDP family where each numbered cell pays its
// number through an explicit exit action and the agent's moves slip
// sideways with some noise.
package gridworld

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/jesuszarate/AI-ReinforcementLearning/mdp"
)

const TerminalState mdp.State = "TERMINAL_STATE"

const (
	North mdp.Action = "north"
	West  mdp.Action = "west"
	South mdp.Action = "south"
	East  mdp.Action = "east"
	Exit  mdp.Action = "exit"
)

const (
	DefaultNoise        = 0.2
	DefaultLivingReward = 0.0
)

var moves = []mdp.Action{North, West, South, East}

type cell struct {
	wall   bool
	exit   bool
	reward float64
}

type position struct {
	row int
	col int
}

type Grid struct {
	Name         string
	Rows         int
	Cols         int
	Noise        float64
	LivingReward float64

	cells     [][]cell
	start     mdp.State
	states    []mdp.State
	positions map[mdp.State]position
}

var (
	_ mdp.Model[mdp.State, mdp.Action] = (*Grid)(nil)
	_ mdp.ExitActioner[mdp.Action]     = (*Grid)(nil)
)

var layouts = map[string][]string{
	"book": {
		". . . 1",
		". # . -1",
		"S . . .",
	},
	"bridge": {
		"# -100 -100 -100 -100 -100 #",
		"1 S . . . . 10",
		"# -100 -100 -100 -100 -100 #",
	},
	"cliff": {
		". . . . .",
		"S . . . 10",
		"-100 -100 -100 -100 -100",
	},
	"cliff2": {
		". . . . .",
		"8 S . . 10",
		"-100 -100 -100 -100 -100",
	},
	"discount": {
		". . . . .",
		". # . . .",
		". # 1 # 10",
		"S . . . .",
		"-10 -10 -10 -10 -10",
	},
	"maze": {
		". . . 1",
		"# # . #",
		". # . .",
		". # # .",
		"S . . .",
	},
}

func Layouts() []string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Named(name string) (*Grid, error) {
	rows, ok := layouts[name]
	if !ok {
		return nil, fmt.Errorf("unknown grid %q (have %s)", name, strings.Join(Layouts(), ", "))
	}
	return Parse(name, rows)
}

// Parse builds a grid from whitespace separated rows. "." is an empty cell,
// "#" a wall, "S" the start and a number an exit cell paying that number.
func Parse(name string, rows []string) (*Grid, error) {
	g := &Grid{
		Name:         name,
		Noise:        DefaultNoise,
		LivingReward: DefaultLivingReward,
		positions:    map[mdp.State]position{},
	}
	for r, line := range rows {
		tokens := strings.Fields(line)
		if r == 0 {
			g.Cols = len(tokens)
		}
		if len(tokens) == 0 || len(tokens) != g.Cols {
			return nil, fmt.Errorf("grid %q: row %d has %d cells, want %d", name, r, len(tokens), g.Cols)
		}
		row := make([]cell, len(tokens))
		for c, tok := range tokens {
			switch tok {
			case ".":
			case "#":
				row[c].wall = true
			case "S":
				if g.start != "" {
					return nil, fmt.Errorf("grid %q: second start cell at %d,%d", name, r, c)
				}
				g.start = g.State(r, c)
			default:
				reward, err := strconv.ParseFloat(tok, 64)
				if err != nil {
					return nil, fmt.Errorf("grid %q: bad cell %q at %d,%d", name, tok, r, c)
				}
				row[c].exit = true
				row[c].reward = reward
			}
		}
		g.cells = append(g.cells, row)
	}
	g.Rows = len(g.cells)
	if g.Rows == 0 {
		return nil, fmt.Errorf("grid %q: no rows", name)
	}

	g.states = append(g.states, TerminalState)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if g.cells[r][c].wall {
				continue
			}
			s := g.State(r, c)
			g.states = append(g.states, s)
			g.positions[s] = position{row: r, col: c}
		}
	}
	return g, nil
}

func (g *Grid) State(r, c int) mdp.State {
	return mdp.State(fmt.Sprintf("%d,%d", r, c))
}

func (g *Grid) ToCoordinates(s mdp.State) (int, int, bool) {
	p, ok := g.positions[s]
	return p.row, p.col, ok
}

// Start is empty when the layout has no "S" cell.
func (g *Grid) Start() mdp.State {
	return g.start
}

func (g *Grid) ExitAction() (mdp.Action, bool) {
	return Exit, true
}

func (g *Grid) States() []mdp.State {
	return slices.Clone(g.states)
}

func (g *Grid) PossibleActions(s mdp.State) []mdp.Action {
	r, c, ok := g.ToCoordinates(s)
	if !ok {
		return nil
	}
	if g.cells[r][c].exit {
		return []mdp.Action{Exit}
	}
	return slices.Clone(moves)
}

func (g *Grid) TransitionStatesAndProbs(s mdp.State, a mdp.Action) []mdp.Outcome[mdp.State] {
	r, c, ok := g.ToCoordinates(s)
	if !ok {
		return nil
	}
	if g.cells[r][c].exit {
		return []mdp.Outcome[mdp.State]{{State: TerminalState, Probability: 1}}
	}

	north := g.shift(r, c, -1, 0)
	south := g.shift(r, c, 1, 0)
	west := g.shift(r, c, 0, -1)
	east := g.shift(r, c, 0, 1)

	intended := mdp.Probability(1 - g.Noise)
	slip := mdp.Probability(g.Noise / 2)
	var outcomes []mdp.Outcome[mdp.State]
	switch a {
	case North, South:
		to := north
		if a == South {
			to = south
		}
		outcomes = []mdp.Outcome[mdp.State]{
			{State: to, Probability: intended},
			{State: west, Probability: slip},
			{State: east, Probability: slip},
		}
	case West, East:
		to := west
		if a == East {
			to = east
		}
		outcomes = []mdp.Outcome[mdp.State]{
			{State: to, Probability: intended},
			{State: north, Probability: slip},
			{State: south, Probability: slip},
		}
	default:
		return nil
	}
	return mdp.Aggregate(outcomes)
}

func (g *Grid) Reward(s mdp.State, _ mdp.Action, _ mdp.State) float64 {
	r, c, ok := g.ToCoordinates(s)
	if !ok {
		return 0
	}
	if g.cells[r][c].exit {
		return g.cells[r][c].reward
	}
	return g.LivingReward
}

func (g *Grid) IsTerminal(s mdp.State) bool {
	return s == TerminalState
}

// shift returns the neighbour of (r, c), or (r, c) itself when the move
// would leave the board or hit a wall.
func (g *Grid) shift(r, c, dr, dc int) mdp.State {
	nr, nc := r+dr, c+dc
	if nr < 0 || nc < 0 || nr >= g.Rows || nc >= g.Cols || g.cells[nr][nc].wall {
		return g.State(r, c)
	}
	return g.State(nr, nc)
}
