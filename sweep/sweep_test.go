package sweep

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zappem.net/pub/kinematics/linkage"
	"zappem.net/pub/kinematics/linkage/planar"
	"zappem.net/pub/math/geom"
)

func TestReachabilityMap(t *testing.T) {
	m, err := Reachability(context.Background(), 1.5, 1.0, Square(3, 7), 3)
	require.NoError(t, err)

	want := strings.Join([]string{
		".......",
		"..222..",
		".22222.",
		".22.22.",
		".22222.",
		"..222..",
		".......",
	}, "\n")
	assert.Equal(t, want, m.String())
	assert.Equal(t, 20, m.Reachable())
}

func TestReachabilityBoundarySamples(t *testing.T) {
	m, err := Reachability(context.Background(), 1.5, 1.0, Square(3, 61), 0)
	require.NoError(t, err)

	// Grid.Point(55, 30) is (2.5, 0): fully extended.
	x, y := m.Grid.Point(55, 30)
	require.InDelta(t, 2.5, x, 1e-12)
	require.InDelta(t, 0, y, 1e-12)
	assert.Equal(t, 1, m.Counts[30][55])
	assert.Equal(t, 0, m.Counts[30][30], "base is inside the inner radius")
	assert.Equal(t, 2, m.Counts[30][50])
}

func TestReachabilityMatchesSerial(t *testing.T) {
	g := Grid{Min: [2]float64{-1, -2.7}, Max: [2]float64{2.9, 0.4}, Steps: 23}
	m, err := Reachability(context.Background(), 0.7, 1.9, g, 8)
	require.NoError(t, err)
	for j := 0; j < g.Steps; j++ {
		for i := 0; i < g.Steps; i++ {
			x, y := g.Point(i, j)
			sols, err := planar.Inverse(0.7, 1.9, x, y)
			require.NoError(t, err)
			assert.Equal(t, len(sols), m.Counts[j][i], "sample (%d,%d)", i, j)
		}
	}
}

func TestReachabilityInvalid(t *testing.T) {
	ctx := context.Background()
	_, err := Reachability(ctx, 0, 1, Square(1, 5), 1)
	assert.ErrorIs(t, err, linkage.ErrInvalidParameter)
	_, err = Reachability(ctx, 1, 1, Square(1, 1), 1)
	assert.ErrorIs(t, err, linkage.ErrInvalidParameter)
	_, err = Reachability(ctx, 1, 1, Square(math.Inf(1), 5), 1)
	assert.ErrorIs(t, err, linkage.ErrInvalidParameter)
	_, err = Reachability(ctx, 1, 1, Square(-1, 5), 1)
	assert.ErrorIs(t, err, linkage.ErrInvalidParameter)
}

func TestReachabilityCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Reachability(ctx, 1.5, 1, Square(3, 11), 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestForwardBatch(t *testing.T) {
	links, err := planar.NewLinkSet(1.5, 1.0)
	require.NoError(t, err)

	configs := [][]geom.Angle{
		{geom.Degrees(30), geom.Degrees(30)},
		{geom.Angle(math.NaN()), 0},
		{0},
		{0, 0},
	}
	res, err := Forward(context.Background(), links, configs, 2)
	require.NoError(t, err)
	require.Len(t, res, len(configs))

	require.NoError(t, res[0].Err)
	p, err := planar.Forward(1.5, 1.0, configs[0][0], configs[0][1])
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64(p.End), []float64(res[0].Points[2]), 1e-12)

	assert.ErrorIs(t, res[1].Err, linkage.ErrInvalidParameter)
	assert.ErrorIs(t, res[2].Err, linkage.ErrInvalidParameter)

	require.NoError(t, res[3].Err)
	assert.InDeltaSlice(t, []float64{2.5, 0}, []float64(res[3].Points[2]), 1e-12)
}
