package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"zappem.net/pub/kinematics/linkage"
	"zappem.net/pub/kinematics/linkage/planar"
	"zappem.net/pub/kinematics/linkage/sweep"
)

// SweepResult is the output of the sweep command.
type SweepResult struct {
	Links     []float64 `json:"links"`
	Radius    float64   `json:"radius"`
	Steps     int       `json:"steps"`
	Reachable int       `json:"reachable"`
	Counts    [][]int   `json:"counts"`

	m *sweep.Map
}

func (r SweepResult) String() string {
	return fmt.Sprintf("%s\nreachable %d of %d samples", r.m, r.Reachable, r.Steps*r.Steps)
}

// NewSweepCommand creates the sweep command.
func NewSweepCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		links   []float64
		steps   int
		radius  float64
		workers int
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Map the reachable workspace of a 2-link planar arm",
		Long: `Solve the inverse kinematics over a square grid centered on the base
and draw how many solutions each sample has ('.' for none). The grid
reaches --radius in each direction, by default the arm's reach plus 10%.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			log := rootOpts.Logger()

			ls, err := planar.NewLinkSet(links...)
			if err != nil {
				return f.Fail(ErrCodeInvalidParameter, err)
			}
			if len(ls) != 2 {
				return f.Fail(ErrCodeInvalidParameter, fmt.Errorf("%w: sweep needs 2 links, not %d", linkage.ErrInvalidParameter, len(ls)))
			}
			if radius == 0 {
				_, hi := ls.Reach()
				radius = 1.1 * hi
			}
			log.Debug("sweeping workspace", "links", links, "radius", radius, "steps", steps, "workers", workers)

			m, err := sweep.Reachability(cmd.Context(), ls[0], ls[1], sweep.Square(radius, steps), workers)
			if err != nil {
				code := ErrCodeInvalidParameter
				if !errors.Is(err, linkage.ErrInvalidParameter) {
					code = ErrCodeInternal
				}
				return f.Fail(code, err)
			}
			log.Debug("sweep done", "reachable", m.Reachable())
			return f.Success(SweepResult{
				Links:     ls,
				Radius:    radius,
				Steps:     steps,
				Reachable: m.Reachable(),
				Counts:    m.Counts,
				m:         m,
			})
		},
	}
	cmd.Flags().Float64SliceVar(&links, "links", []float64{1.5, 1.0}, "link lengths L1,L2")
	cmd.Flags().IntVar(&steps, "steps", 21, "samples along each axis")
	cmd.Flags().Float64Var(&radius, "radius", 0, "half width of the grid (0 for 1.1 x reach)")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 for GOMAXPROCS)")
	return cmd
}
