// Package config reads model files describing a planar link set
// and/or a chain of joint actions.
//
// Model files are YAML. Angles are in degrees:
//
//	name: scara
//	dim: 3
//	links: [1.5, 1.0]
//	chain:
//	  - translate: [0, 0, 1]
//	    angle: 30
//	    axis: z
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"zappem.net/pub/kinematics/linkage"
	"zappem.net/pub/kinematics/linkage/frame"
	"zappem.net/pub/kinematics/linkage/planar"
	"zappem.net/pub/math/geom"
)

// Step is one joint action as written in a model file.
type Step struct {
	Translate []float64 `yaml:"translate,omitempty"`
	Angle     float64   `yaml:"angle,omitempty"`
	Axis      string    `yaml:"axis,omitempty"`
}

// Model is the decoded content of a model file.
type Model struct {
	Name  string    `yaml:"name,omitempty"`
	Dim   int       `yaml:"dim,omitempty"`
	Links []float64 `yaml:"links,omitempty"`
	Chain []Step    `yaml:"chain,omitempty"`
}

// Load reads and validates the model file at path.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes and validates a model. Unknown keys are rejected.
// A missing dim defaults to 2.
func Parse(data []byte) (*Model, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var m Model
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse model: %w", err)
	}
	if m.Dim == 0 {
		m.Dim = 2
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the model can produce a chain and link set.
func (m *Model) Validate() error {
	if m.Dim != 2 && m.Dim != 3 {
		return fmt.Errorf("%w: dim %d is not 2 or 3", frame.ErrDimension, m.Dim)
	}
	if len(m.Links) > 0 {
		if _, err := planar.NewLinkSet(m.Links...); err != nil {
			return err
		}
	}
	if len(m.Links) == 0 && len(m.Chain) == 0 {
		return fmt.Errorf("%w: model has neither links nor chain", linkage.ErrInvalidParameter)
	}
	_, err := m.BuildChain()
	return err
}

// Actions converts the chain steps to frame actions.
func (m *Model) Actions() ([]frame.Action, error) {
	actions := make([]frame.Action, 0, len(m.Chain))
	for i, s := range m.Chain {
		ax, err := frame.ParseAxis(s.Axis)
		if err != nil {
			return nil, fmt.Errorf("chain step %d: %w", i, err)
		}
		if err := linkage.Finite("config", "angle", s.Angle); err != nil {
			return nil, fmt.Errorf("chain step %d: %w", i, err)
		}
		a := frame.Action{Angle: geom.Degrees(s.Angle), Axis: ax}
		if len(s.Translate) > 0 {
			a.Translate = append(geom.Vector(nil), s.Translate...)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// BuildChain builds the frame chain the model describes.
func (m *Model) BuildChain() (frame.Chain, error) {
	actions, err := m.Actions()
	if err != nil {
		return frame.Chain{}, err
	}
	return frame.Build(m.Dim, actions...)
}

// LinkSet returns the model's planar link set.
func (m *Model) LinkSet() (planar.LinkSet, error) {
	return planar.NewLinkSet(m.Links...)
}
