// Package specfile loads transition models from YAML (or JSON) documents:
//
//	start: 0
//	transitions:
//	  - {from: 0, to: 1, action: go, probability: 1, reward: 1}
package specfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zeu5/policy-iteration/core"
)

var ErrNoTransitions = errors.New("no transitions")

type Transition struct {
	From        int64   `yaml:"from"`
	To          int64   `yaml:"to"`
	Action      string  `yaml:"action"`
	Probability float64 `yaml:"probability"`
	Reward      float64 `yaml:"reward"`
}

type File struct {
	// Start is the state episodes begin in
	Start       int64        `yaml:"start"`
	Transitions []Transition `yaml:"transitions"`
}

func (f *File) Specs() []core.TransitionSpec {
	specs := make([]core.TransitionSpec, 0, len(f.Transitions))
	for _, t := range f.Transitions {
		specs = append(specs, core.TransitionSpec{
			From:        t.From,
			To:          t.To,
			Action:      t.Action,
			Probability: t.Probability,
			Reward:      t.Reward,
		})
	}
	return specs
}

// Parse decodes a document, rejecting unknown keys.
func Parse(data []byte) (*File, error) {
	f := &File{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoTransitions
		}
		return nil, fmt.Errorf("decoding transitions: %w", err)
	}
	if len(f.Transitions) == 0 {
		return nil, ErrNoTransitions
	}
	return f, nil
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
