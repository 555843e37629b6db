package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"zappem.net/pub/kinematics/linkage"
	"zappem.net/pub/kinematics/linkage/planar"
)

// IKSolution is one solution in degrees.
type IKSolution struct {
	Branch    string  `json:"branch"`
	Theta1Deg float64 `json:"theta1_deg"`
	Theta2Deg float64 `json:"theta2_deg"`
}

// IKResult is the output of the ik command.
type IKResult struct {
	Links     []float64    `json:"links"`
	Target    [2]float64   `json:"target"`
	Reach     string       `json:"reach"`
	Solutions []IKSolution `json:"solutions"`
}

func (r IKResult) String() string {
	var b strings.Builder
	noun := "solutions"
	if len(r.Solutions) == 1 {
		noun = "solution"
	}
	fmt.Fprintf(&b, "target (%.4f, %.4f): %s, %d %s", num(r.Target[0]), num(r.Target[1]), r.Reach, len(r.Solutions), noun)
	for _, s := range r.Solutions {
		fmt.Fprintf(&b, "\n%-10s theta1=%9.4f theta2=%9.4f", s.Branch, num(s.Theta1Deg), num(s.Theta2Deg))
	}
	return b.String()
}

// NewIKCommand creates the ik command.
func NewIKCommand(rootOpts *RootOptions) *cobra.Command {
	var links []float64

	cmd := &cobra.Command{
		Use:   "ik <x> <y>",
		Short: "Solve a 2-link planar arm for a target point",
		Long: `Compute every pair of joint angles that places the end effector of a
2-link planar arm at (x, y). An unreachable target is reported with no
solutions; it is not an error. Use -- before negative coordinates.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIK(rootOpts, cmd, links, args)
		},
	}
	cmd.Flags().Float64SliceVar(&links, "links", []float64{1.5, 1.0}, "link lengths L1,L2")
	return cmd
}

func runIK(opts *RootOptions, cmd *cobra.Command, links []float64, args []string) error {
	f := newFormatter(opts, cmd)
	log := opts.Logger()

	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return f.Fail(ErrCodeInvalidParameter, fmt.Errorf("%w: x: %v", linkage.ErrInvalidParameter, err))
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return f.Fail(ErrCodeInvalidParameter, fmt.Errorf("%w: y: %v", linkage.ErrInvalidParameter, err))
	}
	ls, err := planar.NewLinkSet(links...)
	if err != nil {
		return f.Fail(ErrCodeInvalidParameter, err)
	}
	log.Debug("solving inverse kinematics", "links", []float64(ls), "x", x, "y", y)

	sols, err := ls.Inverse(x, y)
	if err != nil {
		return f.Fail(ErrCodeInvalidParameter, err)
	}
	reach, err := planar.Classify(ls[0], ls[1], x, y)
	if err != nil {
		return f.Fail(ErrCodeInvalidParameter, err)
	}
	log.Debug("inverse kinematics solved", "reach", reach.String(), "solutions", len(sols))

	res := IKResult{
		Links:     ls,
		Target:    [2]float64{x, y},
		Reach:     reach.String(),
		Solutions: make([]IKSolution, 0, len(sols)),
	}
	for _, s := range sols {
		res.Solutions = append(res.Solutions, IKSolution{
			Branch:    s.Branch.String(),
			Theta1Deg: s.Theta1.Deg(),
			Theta2Deg: s.Theta2.Deg(),
		})
	}
	return f.Success(res)
}
