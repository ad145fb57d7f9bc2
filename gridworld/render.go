package gridworld

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"

	"github.com/jesuszarate/AI-ReinforcementLearning/mdp"
)

var arrows = map[mdp.Action]string{
	North: "   ^   ",
	West:  "   <   ",
	South: "   v   ",
	East:  "   >   ",
	Exit:  "  exit ",
}

// Printer draws grids. Use aurora.NewAurora(false) for plain text.
type Printer struct {
	Out io.Writer
	Au  aurora.Aurora
}

func (p Printer) PrintValues(g *Grid, value func(mdp.State) float64) {
	p.each(g, func(s mdp.State, r, c int) {
		v := value(s)
		text := format2x2(v)
		switch {
		case g.cells[r][c].exit && v >= 0:
			fmt.Fprint(p.Out, p.Au.Green(text))
		case g.cells[r][c].exit:
			fmt.Fprint(p.Out, p.Au.Red(text))
		case s == g.start:
			fmt.Fprint(p.Out, p.Au.Cyan(text))
		default:
			fmt.Fprint(p.Out, p.Au.Blue(text))
		}
	})
}

func (p Printer) PrintPolicy(g *Grid, policy func(mdp.State) (mdp.Action, bool)) {
	p.each(g, func(s mdp.State, r, c int) {
		a, ok := policy(s)
		text, known := arrows[a]
		if !ok {
			text = "   .   "
		} else if !known {
			text = fmt.Sprintf("%7.7s", a)
		}
		if g.cells[r][c].exit {
			fmt.Fprint(p.Out, p.Au.Green(text))
			return
		}
		fmt.Fprint(p.Out, p.Au.Yellow(text))
	})
}

// PrintQValues prints one block per move with the Q-value of that move in
// every cell; exit cells show their exit Q-value in every block.
func (p Printer) PrintQValues(g *Grid, qvalue func(mdp.State, mdp.Action) float64) {
	for _, a := range moves {
		fmt.Fprintln(p.Out, p.Au.Bold(string(a)))
		p.each(g, func(s mdp.State, r, c int) {
			act := a
			if g.cells[r][c].exit {
				act = Exit
			}
			fmt.Fprint(p.Out, p.Au.Blue(format2x2(qvalue(s, act))))
		})
	}
}

func (p Printer) each(g *Grid, fn func(s mdp.State, r, c int)) {
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if g.cells[r][c].wall {
				fmt.Fprint(p.Out, p.Au.Faint(" ##### "))
			} else {
				fn(g.State(r, c), r, c)
			}
			fmt.Fprint(p.Out, p.Au.White("|"))
		}
		fmt.Fprintln(p.Out)
	}
}

func format2x2(x float64) string {
	return fmt.Sprintf("%7.2f", x)
}
