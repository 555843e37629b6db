package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"zappem.net/pub/kinematics/linkage"
	"zappem.net/pub/kinematics/linkage/frame"
	"zappem.net/pub/math/geom"
)

// RotResult is the output of the rot command.
type RotResult struct {
	Axis     string      `json:"axis"`
	AngleDeg float64     `json:"angle_deg"`
	Matrix   [][]float64 `json:"matrix"`
}

func (r RotResult) String() string {
	return fmt.Sprintf("R_%s(%g) =\n%s", r.Axis, r.AngleDeg, frame.FormatRows(r.Matrix))
}

// NewRotCommand creates the rot command.
func NewRotCommand(rootOpts *RootOptions) *cobra.Command {
	var axis string
	var angle float64

	cmd := &cobra.Command{
		Use:           "rot",
		Short:         "Print the elementary rotation matrix about x, y or z",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			ax, err := frame.ParseAxis(axis)
			if err != nil {
				return f.Fail(ErrCodeInvalidParameter, err)
			}
			if err := linkage.Finite("rot", "angle", angle); err != nil {
				return f.Fail(ErrCodeInvalidParameter, err)
			}
			m := frame.Rotation(ax, geom.Degrees(angle))
			rootOpts.Logger().Debug("rotation", "axis", ax.String(), "angle_deg", angle)
			return f.Success(RotResult{
				Axis:     ax.String(),
				AngleDeg: angle,
				Matrix: [][]float64{
					{m[0], m[1], m[2]},
					{m[3], m[4], m[5]},
					{m[6], m[7], m[8]},
				},
			})
		},
	}
	cmd.Flags().StringVar(&axis, "axis", "z", "rotation axis (x|y|z)")
	cmd.Flags().Float64Var(&angle, "angle", 0, "rotation angle in degrees")
	return cmd
}
