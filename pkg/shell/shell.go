// Package shell runs opaque command strings for hooks and group conditions.
//
// Two runners are available. ExecRunner hands the string to a POSIX shell
// (`sh -c`), BuiltinRunner interprets it in-process with mvdan.cc/sh so that
// hosts without a shell can still evaluate hooks. Both report a non-zero exit
// as an exit code, never as an error; errors mean the command could not run.
package shell

import (
	"context"
	"io"
	"os"

	"github.com/arthur-debert/cuepine/pkg/errors"
)

// Runner executes command with dir as its working directory
type Runner interface {
	Run(ctx context.Context, dir, command string) (exitCode int, err error)
}

// Runner kinds accepted by New
const (
	KindExec    = "exec"
	KindBuiltin = "builtin"
)

// DefaultShell is used by ExecRunner when no shell path is configured
const DefaultShell = "/bin/sh"

// IO holds the streams handed to commands. Nil fields fall back to the
// process streams.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (s IO) withDefaults() IO {
	if s.Stdin == nil {
		s.Stdin = os.Stdin
	}
	if s.Stdout == nil {
		s.Stdout = os.Stdout
	}
	if s.Stderr == nil {
		s.Stderr = os.Stderr
	}
	return s
}

// New returns the runner named by kind
func New(kind, shellPath string, stdio IO) (Runner, error) {
	switch kind {
	case "", KindExec:
		return &ExecRunner{Shell: shellPath, IO: stdio}, nil
	case KindBuiltin:
		return &BuiltinRunner{IO: stdio}, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown shell runner %q", kind).
			WithDetail("runner", kind)
	}
}
