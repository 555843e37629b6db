package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"zappem.net/pub/kinematics/linkage/planar"
	"zappem.net/pub/math/geom"
)

// FKResult is the output of the fk command: the base, each joint and
// the end effector, plus the radii of the reachable annulus.
type FKResult struct {
	Links     []float64    `json:"links"`
	AnglesDeg []float64    `json:"angles_deg"`
	Points    [][2]float64 `json:"points"`
	ReachMin  float64      `json:"reach_min"`
	ReachMax  float64      `json:"reach_max"`
}

func (r FKResult) String() string {
	var b strings.Builder
	for i, p := range r.Points {
		label := fmt.Sprintf("joint %d", i)
		switch i {
		case 0:
			label = "base"
		case len(r.Points) - 1:
			label = "end"
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-8s (%9.4f, %9.4f)", label, num(p[0]), num(p[1]))
	}
	fmt.Fprintf(&b, "\n%-8s [%.4f, %.4f]", "reach", num(r.ReachMin), num(r.ReachMax))
	return b.String()
}

// NewFKCommand creates the fk command.
func NewFKCommand(rootOpts *RootOptions) *cobra.Command {
	var links, angles []float64

	cmd := &cobra.Command{
		Use:   "fk",
		Short: "Pose a planar arm from its joint angles",
		Long: `Evaluate the forward kinematics of a planar arm with any number of
links. Each joint angle (degrees) is relative to the previous link.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFK(rootOpts, cmd, links, angles)
		},
	}
	cmd.Flags().Float64SliceVar(&links, "links", []float64{1.5, 1.0}, "link lengths, base first")
	cmd.Flags().Float64SliceVar(&angles, "angles", nil, "joint angles in degrees, one per link")
	return cmd
}

func runFK(opts *RootOptions, cmd *cobra.Command, links, angles []float64) error {
	f := newFormatter(opts, cmd)

	ls, err := planar.NewLinkSet(links...)
	if err != nil {
		return f.Fail(ErrCodeInvalidParameter, err)
	}
	js := make([]geom.Angle, len(angles))
	for i, a := range angles {
		js[i] = geom.Degrees(a)
	}
	opts.Logger().Debug("evaluating forward kinematics", "links", []float64(ls), "angles_deg", angles)

	pts, err := ls.Forward(js...)
	if err != nil {
		return f.Fail(ErrCodeInvalidParameter, err)
	}
	res := FKResult{Links: ls, AnglesDeg: angles, Points: make([][2]float64, len(pts))}
	for i, p := range pts {
		res.Points[i] = [2]float64{p[0], p[1]}
	}
	res.ReachMin, res.ReachMax = ls.Reach()
	return f.Success(res)
}
