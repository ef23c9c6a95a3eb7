package ui

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/types"
)

const (
	indentSection = "    "
	indentItem    = "        "
)

// Printer streams a run as human-readable lines. It serves both the
// terminal and the plain text formats.
type Printer struct {
	w       io.Writer
	p       palette
	opts    Options
	section bool
}

var _ types.Reporter = (*Printer)(nil)

func newPrinter(w io.Writer, p palette, opts Options) *Printer {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	return &Printer{w: w, p: p, opts: opts}
}

func (r *Printer) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}

func (r *Printer) openSection(title string) {
	r.closeSection()
	r.printf("%s\n", r.p.section(title))
	r.section = true
}

func (r *Printer) closeSection() {
	if r.section {
		r.printf("\n")
		r.section = false
	}
}

// ManifestHeader renders the banner for path, padded with '=' to width
func ManifestHeader(path string, width int) string {
	side := width - len(path) - 2
	if side < 4 {
		side = 4
	}
	lhs := side / 2
	return strings.Repeat("=", lhs) + " " + path + " " + strings.Repeat("=", side-lhs)
}

func (r *Printer) ManifestStarted(path string) {
	header := ManifestHeader(path, r.opts.Width)
	r.printf("%s\n", r.p.header(header))
}

func (r *Printer) DependenciesChecked(report types.DependencyReport) {
	r.openSection("Dependencies check:")
	for _, dep := range report.Results {
		status := r.p.ok("OK")
		switch {
		case !dep.Found && dep.Optional:
			status = r.p.warn("not found (optional)")
		case !dep.Found:
			status = r.p.bad("not found")
		}
		r.printf("%s%s %s\n", indentSection, dep.Name, status)
	}
	r.closeSection()
	if !report.OK && !r.opts.CheckOnly {
		r.printf("Not all dependencies met. Aborting.\n")
	}
}

func (r *Printer) HookStarted(phase types.HookPhase, index int, command string) {
	if index == 0 {
		title := strings.ToUpper(string(phase[:1])) + string(phase[1:]) + "-scripts:"
		r.openSection(title)
	}
	r.printf("%srunning %s script #%d\n", indentSection, phase, index)
}

func (r *Printer) HookFinished(result types.HookResult) {
	switch {
	case result.Err != nil:
		r.printf("%s%s: %s\n", indentItem, r.p.bad("Error"), Describe(result.Err))
	case result.ExitCode != 0:
		r.printf("%s%s\n", indentItem, r.p.warn(fmt.Sprintf("exit code %d", result.ExitCode)))
	}
}

func (r *Printer) ReconcileStarted(mode types.Mode) {
	title := "Installation:"
	if mode.IsUninstall() {
		title = "Uninstallation:"
	}
	r.openSection(title)
}

func (r *Printer) GroupStarted(name string) {
	r.printf("%s%s:\n", indentSection, r.p.group(name))
}

func (r *Printer) ItemFinished(result types.ItemResult) {
	switch {
	case result.Err != nil:
		r.printf("%s%s: %s\n", indentItem, r.p.bad("Error"), Describe(result.Err))
	case !result.Acted:
	case result.Action == types.ActionRemove:
		r.printf("%s%s\n", indentItem, r.p.path(result.Destination))
	default:
		r.printf("%s%s => %s\n", indentItem, result.Resolved, r.p.path(result.Destination))
	}
}

func (r *Printer) GroupFinished(result types.GroupResult) {
	switch result.Status {
	case types.GroupSkipped:
		r.printf("%s%s\n", indentItem, r.p.muted("Skipped, condition not met"))
	case types.GroupFailed:
		r.printf("%s%s: %s\n", indentItem, r.p.bad("Error"), Describe(result.Err))
	case types.GroupNothingDone:
		r.printf("%s%s\n", indentItem, r.p.warn("Nothing done"))
	}
}

func (r *Printer) ManifestFinished(result *types.ManifestResult) {
	r.closeSection()
	if result.Err == nil || errors.IsErrorCode(result.Err, errors.ErrMissingDependency) {
		return
	}

	if errors.IsErrorCode(result.Err, errors.ErrHookFailed) {
		details := errors.GetErrorDetails(result.Err)
		r.printf("%s: exit code '%s' was produced by the command '%s'\n\n",
			r.p.bad("Error"),
			r.p.warn(fmt.Sprint(details["exit_code"])),
			r.p.command(fmt.Sprint(details["command"])))
		return
	}
	r.printf("%s: %s\n\n", r.p.bad("Error"), Describe(result.Err))
}

func (r *Printer) RunFinished(result *types.RunResult) {
	if r.opts.DryRun && len(result.Manifests) > 0 {
		r.printf("%s\n", r.p.muted("Dry run: nothing was changed."))
	}
}

// Describe renders err for a person: the message of a structured error plus
// its cause, leaving out not-exist causes the message already states
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var ce *errors.CuepineError
	if !stderrors.As(err, &ce) {
		return err.Error()
	}
	if ce.Wrapped == nil || stderrors.Is(ce.Wrapped, fs.ErrNotExist) {
		return ce.Message
	}
	return ce.Message + ": " + Describe(ce.Wrapped)
}
