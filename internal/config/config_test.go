package config

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zappem.net/pub/kinematics/linkage"
	"zappem.net/pub/kinematics/linkage/frame"
)

func TestLoad(t *testing.T) {
	m, err := Load("testdata/scara.yaml")
	require.NoError(t, err)

	assert.Equal(t, "scara", m.Name)
	assert.Equal(t, 3, m.Dim)
	assert.Equal(t, []float64{1.5, 1.0}, m.Links)
	require.Len(t, m.Chain, 3)
	assert.Equal(t, "x", m.Chain[2].Axis)

	c, err := m.BuildChain()
	require.NoError(t, err)
	assert.Equal(t, 4, c.Len())

	// Frame 3 is the planar 2-link end effector lifted to z=1.
	s3 := math.Sqrt(3)
	want := []float64{1.5*s3/2 + 0.5, 0.75 + s3/2, 1}
	assert.InDeltaSlice(t, want, []float64(c.Last().Origin()), 1e-12)
	assert.True(t, c.Last().Valid())

	ls, err := m.LinkSet()
	require.NoError(t, err)
	assert.Len(t, ls, 2)
}

func TestParseDefaults(t *testing.T) {
	m, err := Parse([]byte("links: [1, 2, 3]\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, m.Dim)

	m, err = Parse([]byte("chain:\n  - translate: [1, 0]\n    angle: 90\n"))
	require.NoError(t, err)
	c, err := m.BuildChain()
	require.NoError(t, err)
	assert.Equal(t, 2, c.Dim())
	require.Len(t, c.Last().Origin(), 2)
	assert.InDeltaSlice(t, []float64{1, 0}, []float64(c.Last().Origin()), 1e-12)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		kind error
	}{
		{"empty", "", linkage.ErrInvalidParameter},
		{"bad dim", "dim: 4\nlinks: [1]\n", frame.ErrDimension},
		{"zero link", "links: [1, 0]\n", linkage.ErrInvalidParameter},
		{"planar x axis", "chain:\n  - angle: 10\n    axis: x\n", frame.ErrDimension},
		{"bad axis", "dim: 3\nchain:\n  - axis: w\n", linkage.ErrInvalidParameter},
		{"short translation", "dim: 3\nchain:\n  - translate: [1, 2]\n", frame.ErrDimension},
		{"long translation", "dim: 3\nchain:\n  - translate: [1, 2, 3, 4]\n", frame.ErrDimension},
		{"spatial translation on planar model", "chain:\n  - translate: [1, 2, 3]\n", frame.ErrDimension},
		{"nan angle", "chain:\n  - angle: .nan\n", linkage.ErrInvalidParameter},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Parse([]byte(tc.yaml))
			if err == nil {
				_, err = m.BuildChain()
			}
			assert.ErrorIs(t, err, tc.kind)
		})
	}

	_, err := Parse([]byte("links: [1]\ncolour: red\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = Load("testdata/missing.yaml")
	assert.Error(t, err)
}
