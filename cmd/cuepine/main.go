package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, NewRootCmd(), os.Args[1:])
	stop()
	os.Exit(code)
}

// execute runs cmd with args and maps the outcome to a process exit code
func execute(ctx context.Context, cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	code := exitCode(err)
	if err != nil && !isReported(err) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", describe(err))
		if code == exitUsage {
			fmt.Fprintf(cmd.ErrOrStderr(), "Run '%s --help' for usage.\n", cmd.Name())
		}
	}
	return code
}
