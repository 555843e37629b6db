// Package cli implements the linkage command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Logger returns the diagnostic logger. Commands run without the
// root command (as in tests) log nowhere.
func (o *RootOptions) Logger() *slog.Logger {
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.logger
}

// NewRootCommand creates the root command of the linkage CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "linkage",
		Short: "Kinematics of serial rigid-link manipulators",
		Long: `Forward and inverse kinematics for serial rigid-link arms.

Builds chains of frames from translate-then-rotate joint actions in 2D
and 3D, and solves the closed form inverse kinematics of 2-link planar
arms. Angles on the command line and in model files are in degrees.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				msg := fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
				fmt.Fprintln(cmd.ErrOrStderr(), msg)
				return NewExitError(ExitCommandError, msg)
			}
			level := slog.LevelWarn
			if opts.Verbose {
				level = slog.LevelDebug
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewChainCommand(opts))
	cmd.AddCommand(NewFKCommand(opts))
	cmd.AddCommand(NewIKCommand(opts))
	cmd.AddCommand(NewSweepCommand(opts))
	cmd.AddCommand(NewRotCommand(opts))

	return cmd
}
