// Package sweep evaluates the planar kinematics over batches of
// inputs, spreading the work over a bounded number of goroutines.
//
// Every computation is independent of every other, so results are
// identical to evaluating each input in turn. A bad input only
// affects its own result.
package sweep

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"zappem.net/pub/kinematics/linkage"
	"zappem.net/pub/kinematics/linkage/planar"
	"zappem.net/pub/math/geom"
)

// Grid is a square lattice of Steps x Steps sample points spanning
// [Min[0], Max[0]] in x and [Min[1], Max[1]] in y.
type Grid struct {
	Min, Max [2]float64
	Steps    int
}

// Square returns a grid centered on the origin reaching r in each
// direction.
func Square(r float64, steps int) Grid {
	return Grid{Min: [2]float64{-r, -r}, Max: [2]float64{r, r}, Steps: steps}
}

func (g Grid) validate() error {
	const op = "sweep.Grid"
	if g.Steps < 2 {
		return linkage.Invalid(op, "steps", float64(g.Steps), "need at least 2")
	}
	if err := linkage.Finite(op, "min", g.Min[:]...); err != nil {
		return err
	}
	if err := linkage.Finite(op, "max", g.Max[:]...); err != nil {
		return err
	}
	for k := 0; k < 2; k++ {
		if g.Max[k] <= g.Min[k] {
			return linkage.Invalid(op, fmt.Sprintf("max[%d]", k), g.Max[k], "must exceed min")
		}
	}
	return nil
}

// Point returns the coordinates of sample (i, j), i counting along x
// and j along y.
func (g Grid) Point(i, j int) (x, y float64) {
	n := float64(g.Steps - 1)
	x = g.Min[0] + (g.Max[0]-g.Min[0])*float64(i)/n
	y = g.Min[1] + (g.Max[1]-g.Min[1])*float64(j)/n
	return x, y
}

// Map holds the number of inverse kinematics solutions at each grid
// sample. Counts[j][i] is the count at Grid.Point(i, j).
type Map struct {
	Grid   Grid
	Counts [][]int
}

// Reachable returns the number of samples with at least one
// solution.
func (m *Map) Reachable() int {
	n := 0
	for _, row := range m.Counts {
		for _, c := range row {
			if c > 0 {
				n++
			}
		}
	}
	return n
}

// String draws the map with the largest y at the top: '.' for an
// unreachable sample, otherwise the solution count.
func (m *Map) String() string {
	lines := make([]string, 0, len(m.Counts))
	for j := len(m.Counts) - 1; j >= 0; j-- {
		var b strings.Builder
		for _, c := range m.Counts[j] {
			if c == 0 {
				b.WriteByte('.')
			} else {
				fmt.Fprintf(&b, "%d", c)
			}
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func limit(workers int) int {
	if workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return workers
}

// Reachability solves the 2-link inverse kinematics at every sample
// of g and records how many solutions each has. Rows are computed
// concurrently by at most workers goroutines (GOMAXPROCS if workers
// <= 0).
func Reachability(ctx context.Context, l1, l2 float64, g Grid, workers int) (*Map, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	if _, err := planar.NewLinkSet(l1, l2); err != nil {
		return nil, err
	}
	m := &Map{Grid: g, Counts: make([][]int, g.Steps)}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit(workers))
	for j := 0; j < g.Steps; j++ {
		j := j
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := make([]int, g.Steps)
			for i := range row {
				x, y := g.Point(i, j)
				sols, err := planar.Inverse(l1, l2, x, y)
				if err != nil {
					return err
				}
				row[i] = len(sols)
			}
			m.Counts[j] = row
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}

// Result is the outcome of one forward kinematics evaluation.
type Result struct {
	Points []geom.Vector
	Err    error
}

// Forward evaluates links.Forward for each set of joint angles.
// Result i corresponds to configs[i] and carries its own error. The
// returned error is only non-nil if ctx ends before the batch does.
func Forward(ctx context.Context, links planar.LinkSet, configs [][]geom.Angle, workers int) ([]Result, error) {
	res := make([]Result, len(configs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit(workers))
	for i, js := range configs {
		i, js := i, js
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pts, err := links.Forward(js...)
			res[i] = Result{Points: pts, Err: err}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
