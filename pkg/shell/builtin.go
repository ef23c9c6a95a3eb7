package shell

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/logging"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// syntaxErrorExit matches what POSIX shells return for unparsable input
const syntaxErrorExit = 2

// BuiltinRunner interprets commands in-process
type BuiltinRunner struct {
	IO IO
	// Env overrides the inherited environment when non-nil
	Env []string
}

func (r *BuiltinRunner) Run(ctx context.Context, dir, command string) (int, error) {
	logger := logging.GetLogger("shell.builtin")
	logger.Debug().Str("command", command).Str("dir", dir).Msg("Interpreting command")

	stdio := r.IO.withDefaults()

	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "command")
	if err != nil {
		_, _ = fmt.Fprintf(stdio.Stderr, "cuepine: %v\n", err)
		return syntaxErrorExit, nil
	}

	env := r.Env
	if env == nil {
		env = os.Environ()
	}

	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(stdio.Stdin, stdio.Stdout, stdio.Stderr),
	)
	if err != nil {
		return -1, errors.Wrapf(err, errors.ErrHookFailed, "cannot prepare interpreter for %q", command).
			WithDetail("command", command)
	}

	err = runner.Run(ctx, prog)
	if err == nil {
		return 0, nil
	}

	var exitStatus interp.ExitStatus
	if stderrors.As(err, &exitStatus) {
		logger.Debug().Str("command", command).Int("exit_code", int(exitStatus)).Msg("Command exited non-zero")
		return int(exitStatus), nil
	}

	return -1, errors.Wrapf(err, errors.ErrHookFailed, "cannot run %q", command).
		WithDetail("command", command)
}
