// Command linkage evaluates forward and inverse kinematics of serial
// rigid-link arms from the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"zappem.net/pub/kinematics/linkage/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
