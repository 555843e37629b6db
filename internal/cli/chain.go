package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"zappem.net/pub/kinematics/linkage/internal/config"
	"zappem.net/pub/kinematics/linkage/frame"
)

// FrameResult is one frame of a chain.
type FrameResult struct {
	Index  int         `json:"index"`
	Origin []float64   `json:"origin"`
	Matrix [][]float64 `json:"matrix"`
}

// ChainResult is the output of the chain command.
type ChainResult struct {
	Name       string        `json:"name,omitempty"`
	Dim        int           `json:"dim"`
	AxisLength float64       `json:"axis_length"`
	Frames     []FrameResult `json:"frames"`
}

func (r ChainResult) String() string {
	var b strings.Builder
	name := r.Name
	if name == "" {
		name = "chain"
	}
	fmt.Fprintf(&b, "%s: %d frames (%dD)", name, len(r.Frames), r.Dim)
	for _, fr := range r.Frames {
		fmt.Fprintf(&b, "\n\nframe %d\n%s", fr.Index, frame.FormatRows(fr.Matrix))
	}
	return b.String()
}

// NewChainCommand creates the chain command.
func NewChainCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain <model.yaml>",
		Short: "Build the frame chain described by a model file",
		Long: `Build the chain of frames described by the chain section of a model
file and print the homogeneous matrix of every frame. Each step
translates and then rotates relative to the previous frame.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChain(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runChain(opts *RootOptions, cmd *cobra.Command, path string) error {
	f := newFormatter(opts, cmd)
	log := opts.Logger()

	m, err := config.Load(path)
	if err != nil {
		return f.Fail(ErrCodeModel, err)
	}
	c, err := m.BuildChain()
	if err != nil {
		return f.Fail(ErrCodeModel, err)
	}
	log.Debug("chain built", "model", m.Name, "dim", c.Dim(), "frames", c.Len())

	res := ChainResult{
		Name:       m.Name,
		Dim:        c.Dim(),
		AxisLength: c.AxisLength(),
		Frames:     make([]FrameResult, 0, c.Len()),
	}
	for i, fr := range c.Frames() {
		res.Frames = append(res.Frames, FrameResult{
			Index:  i,
			Origin: fr.Origin(),
			Matrix: fr.Rows(),
		})
	}
	return f.Success(res)
}
