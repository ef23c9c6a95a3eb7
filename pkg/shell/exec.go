package shell

import (
	"context"
	stderrors "errors"
	"os/exec"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/logging"
)

// ExecRunner runs commands through `<Shell> -c`
type ExecRunner struct {
	Shell string
	IO    IO
	// Env overrides the inherited environment when non-nil
	Env []string
}

func (r *ExecRunner) Run(ctx context.Context, dir, command string) (int, error) {
	shellPath := r.Shell
	if shellPath == "" {
		shellPath = DefaultShell
	}

	logger := logging.GetLogger("shell.exec")
	logging.LogCommand(logger, shellPath, []string{"-c", command})

	stdio := r.IO.withDefaults()
	cmd := exec.CommandContext(ctx, shellPath, "-c", command)
	cmd.Dir = dir
	cmd.Env = r.Env
	cmd.Stdin = stdio.Stdin
	cmd.Stdout = stdio.Stdout
	cmd.Stderr = stdio.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		logger.Debug().Str("command", command).Int("exit_code", exitErr.ExitCode()).Msg("Command exited non-zero")
		return exitErr.ExitCode(), nil
	}

	return -1, errors.Wrapf(err, errors.ErrHookFailed, "cannot run %q", command).
		WithDetail("command", command).
		WithDetail("shell", shellPath)
}
