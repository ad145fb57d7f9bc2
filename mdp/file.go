package mdp

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// File is the YAML layout of a tabular MDP.
type File struct {
	Name       string      `yaml:"name"`
	Discount   *float64    `yaml:"discount,omitempty"`
	Iterations *int        `yaml:"iterations,omitempty"`
	Start      State       `yaml:"start,omitempty"`
	ExitAction Action      `yaml:"exit_action,omitempty"`
	States     []FileState `yaml:"states"`
}

type FileState struct {
	Name     State        `yaml:"name"`
	Terminal bool         `yaml:"terminal,omitempty"`
	Actions  []FileAction `yaml:"actions,omitempty"`
}

type FileAction struct {
	Name     Action        `yaml:"name"`
	Outcomes []FileOutcome `yaml:"outcomes"`
}

type FileOutcome struct {
	To          State       `yaml:"to"`
	Probability Probability `yaml:"probability"`
	Reward      float64     `yaml:"reward"`
}

func LoadFile(path string) (*Table, *File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening mdp file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

func Decode(r io.Reader) (*Table, *File, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, nil, fmt.Errorf("decoding mdp file: %w", err)
	}
	if err := file.Validate(); err != nil {
		return nil, nil, err
	}
	return file.Table(), &file, nil
}

// Validate reports every problem in the file, not only the first one.
func (f *File) Validate() error {
	var result *multierror.Error
	if len(f.States) == 0 {
		result = multierror.Append(result, fmt.Errorf("no states declared"))
	}
	declared := map[State]bool{}
	for i, s := range f.States {
		if s.Name == "" {
			result = multierror.Append(result, fmt.Errorf("state #%d has no name", i))
			continue
		}
		if declared[s.Name] {
			result = multierror.Append(result, fmt.Errorf("state %q declared twice", s.Name))
		}
		declared[s.Name] = true
	}
	for _, s := range f.States {
		if s.Terminal && len(s.Actions) > 0 {
			result = multierror.Append(result, fmt.Errorf("terminal state %q declares actions", s.Name))
		}
		seenActions := map[Action]bool{}
		for _, a := range s.Actions {
			if a.Name == "" {
				result = multierror.Append(result, fmt.Errorf("state %q has an unnamed action", s.Name))
			}
			if seenActions[a.Name] {
				result = multierror.Append(result, fmt.Errorf("state %q declares action %q twice", s.Name, a.Name))
			}
			seenActions[a.Name] = true
			if len(a.Outcomes) == 0 {
				result = multierror.Append(result, fmt.Errorf("action %q in state %q has no outcomes", a.Name, s.Name))
			}
			seenTargets := map[State]bool{}
			for _, o := range a.Outcomes {
				if !declared[o.To] {
					result = multierror.Append(result, fmt.Errorf("action %q in state %q leads to undeclared state %q", a.Name, s.Name, o.To))
				}
				if seenTargets[o.To] {
					result = multierror.Append(result, fmt.Errorf("action %q in state %q lists outcome %q twice", a.Name, s.Name, o.To))
				}
				seenTargets[o.To] = true
				if o.Probability < 0 || o.Probability > 1 {
					result = multierror.Append(result, fmt.Errorf("action %q in state %q has probability %g outside [0, 1]", a.Name, s.Name, float64(o.Probability)))
				}
			}
		}
	}
	if f.Start != "" && !declared[f.Start] {
		result = multierror.Append(result, fmt.Errorf("start state %q is not declared", f.Start))
	}
	if f.Iterations != nil && *f.Iterations < 0 {
		result = multierror.Append(result, fmt.Errorf("iterations must not be negative, got %d", *f.Iterations))
	}
	return result.ErrorOrNil()
}

func (f *File) Table() *Table {
	t := NewTable(f.Name)
	for _, s := range f.States {
		t.AddState(s.Name, s.Terminal)
	}
	for _, s := range f.States {
		for _, a := range s.Actions {
			for _, o := range a.Outcomes {
				t.AddTransition(s.Name, a.Name, o.To, o.Probability, o.Reward)
			}
		}
	}
	if f.ExitAction != "" {
		t.SetExitAction(f.ExitAction)
	}
	return t
}
