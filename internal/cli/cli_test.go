package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestGolden(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"rot_z_90", []string{"rot", "--axis", "z", "--angle", "90"}},
		{"ik_extended", []string{"ik", "--links", "1.5,1", "2.5", "0"}},
		{"ik_unreachable", []string{"ik", "0.4", "0"}},
		{"fk_30_30", []string{"fk", "--links", "1.5,1", "--angles", "30,30"}},
		{"sweep_7", []string{"sweep", "--steps", "7", "--radius", "3", "--workers", "2"}},
		{"chain_planar", []string{"chain", "testdata/planar.yaml"}},
	}
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := execute(t, tc.args...)
			require.NoError(t, err)
			g.Assert(t, tc.name, []byte(out))
		})
	}
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "linkage", cmd.Use)

	for _, name := range []string{"chain", "fk", "ik", "sweep", "rot"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, "command %s should exist", name)
		assert.Equal(t, name, sub.Name())
	}

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, err := execute(t, "--format", "xml", "rot")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestIKJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "ik", "--links", "1.5,1", "1.2", "0.7")
	require.NoError(t, err)

	var resp struct {
		Status string   `json:"status"`
		Data   IKResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "reachable", resp.Data.Reach)
	require.Len(t, resp.Data.Solutions, 2)
	assert.Equal(t, "elbow-down", resp.Data.Solutions[0].Branch)
	assert.Equal(t, "elbow-up", resp.Data.Solutions[1].Branch)
	assert.InDelta(t, resp.Data.Solutions[0].Theta2Deg, -resp.Data.Solutions[1].Theta2Deg, 1e-12)
}

func TestIKNegativeTarget(t *testing.T) {
	out, err := execute(t, "ik", "--", "-1.2", "-0.7")
	require.NoError(t, err)
	assert.Contains(t, out, "reachable, 2 solutions")
}

func TestInvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero link", []string{"ik", "--links", "0,1", "1", "1"}},
		{"three links ik", []string{"ik", "--links", "1,1,1", "1", "1"}},
		{"bad number", []string{"ik", "one", "1"}},
		{"nan target", []string{"ik", "NaN", "1"}},
		{"missing angles", []string{"fk", "--links", "1,1"}},
		{"bad axis", []string{"rot", "--axis", "w"}},
		{"sweep steps", []string{"sweep", "--steps", "1"}},
		{"sweep links", []string{"sweep", "--links", "1,2,3"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := execute(t, tc.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, "Error [E001]")
		})
	}
}

func TestChainErrors(t *testing.T) {
	out, err := execute(t, "--format", "json", "chain", "testdata/missing.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeModel, resp.Error.Code)
}

func TestChainJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "chain", "testdata/planar.yaml")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   ChainResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 2, resp.Data.Dim)
	require.Len(t, resp.Data.Frames, 3)
	assert.InDeltaSlice(t, []float64{1, 1}, resp.Data.Frames[2].Origin, 1e-12)
	assert.Len(t, resp.Data.Frames[2].Matrix, 3)
	assert.InDelta(t, 0.18*math.Sqrt2, resp.Data.AxisLength, 1e-12)
}

func TestFKManyLinks(t *testing.T) {
	out, err := execute(t, "fk", "--links", "1,1,1", "--angles", "90,-90,-90")
	require.NoError(t, err)
	assert.Contains(t, out, "joint 2  (   1.0000,    1.0000)")
	assert.Contains(t, out, "end      (   1.0000,    0.0000)")
	assert.Contains(t, out, "reach    [0.0000, 3.0000]")

	out, err = execute(t, "--format", "json", "fk", "--links", "3,0.5,1", "--angles", "0,0,0")
	require.NoError(t, err)
	var resp struct {
		Data FKResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.InDelta(t, 1.5, resp.Data.ReachMin, 1e-12)
	assert.InDelta(t, 4.5, resp.Data.ReachMax, 1e-12)
	require.Len(t, resp.Data.Points, 4)
	assert.InDeltaSlice(t, []float64{4.5, 0}, resp.Data.Points[3][:], 1e-12)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(io.EOF))
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "bad", io.EOF)))
}
