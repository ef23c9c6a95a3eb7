// Package ui renders the events of a run. It supports terminal (rich), text
// (plain) and JSON output formats.
package ui

import (
	"io"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/types"
)

// Options are the run parameters that change what is rendered
type Options struct {
	Mode      types.Mode
	DryRun    bool
	CheckOnly bool
	// Width is the column count used for manifest headers
	Width int
}

// NewReporter creates the reporter for a concrete format. FormatAuto must be
// resolved by the caller first (see Resolve).
func NewReporter(format Format, w io.Writer, opts Options) (types.Reporter, error) {
	switch format {
	case FormatTerminal:
		return newPrinter(w, termPalette(), opts), nil
	case FormatText:
		return newPrinter(w, plainPalette(), opts), nil
	case FormatJSON:
		return &JSONReporter{w: w, opts: opts}, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
