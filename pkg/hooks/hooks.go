// Package hooks runs the pre and post command lists of a manifest.
package hooks

import (
	"context"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/logging"
	"github.com/arthur-debert/cuepine/pkg/shell"
	"github.com/arthur-debert/cuepine/pkg/types"
)

// Options controls how a hook sequence is executed
type Options struct {
	// Dir is the working directory of every command
	Dir string
	// StrictPre aborts the pre sequence at the first non-zero exit
	StrictPre bool
	// DryRun reports every command as skipped without running it
	DryRun bool
}

// Runner executes hook sequences through a shell.Runner
type Runner struct {
	shell    shell.Runner
	observer types.HookObserver
	opts     Options
}

// NewRunner creates a hook runner. observer may be nil.
func NewRunner(sh shell.Runner, observer types.HookObserver, opts Options) *Runner {
	if observer == nil {
		observer = types.NopReporter{}
	}
	return &Runner{shell: sh, observer: observer, opts: opts}
}

// Run executes commands in order. Non-zero exits are recorded and the
// sequence continues, except for pre hooks under StrictPre where the first
// failure stops the sequence and is returned as an ErrHookFailed error.
func (r *Runner) Run(ctx context.Context, phase types.HookPhase, commands []string) ([]types.HookResult, error) {
	logger := logging.GetLogger("hooks").With().Str("phase", string(phase)).Logger()
	results := make([]types.HookResult, 0, len(commands))

	for i, command := range commands {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		r.observer.HookStarted(phase, i, command)
		res := types.HookResult{Phase: phase, Index: i, Command: command}

		if r.opts.DryRun {
			res.Skipped = true
		} else {
			code, err := r.shell.Run(ctx, r.opts.Dir, command)
			res.ExitCode = code
			res.Err = err
			logger.Info().
				Str("command", command).
				Int("exit_code", code).
				Err(err).
				Msg("Hook finished")
		}

		r.observer.HookFinished(res)
		results = append(results, res)

		failed := res.Err != nil || res.ExitCode != 0
		if failed && phase == types.HookPre && r.opts.StrictPre {
			return results, errors.Newf(errors.ErrHookFailed,
				"exit code '%d' was produced by the command '%s'", res.ExitCode, command).
				WithDetail("command", command).
				WithDetail("exit_code", res.ExitCode).
				WithDetail("index", i)
		}
	}

	return results, nil
}
