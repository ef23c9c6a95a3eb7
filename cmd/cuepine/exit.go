package main

import (
	stderrors "errors"

	"github.com/arthur-debert/cuepine/pkg/ui"
	"github.com/spf13/cobra"
)

// Process exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// usageError marks bad flags or arguments
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// reportedError marks a failure the reporter has already shown
type reportedError struct{ msg string }

func (e *reportedError) Error() string { return e.msg }

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var usage *usageError
	if stderrors.As(err, &usage) {
		return exitUsage
	}
	return exitFailure
}

func isReported(err error) bool {
	var reported *reportedError
	return stderrors.As(err, &reported)
}

func describe(err error) string {
	var usage *usageError
	if stderrors.As(err, &usage) {
		return ui.Describe(usage.err)
	}
	return ui.Describe(err)
}

// usageArgs tags argument validation failures as usage errors
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}
