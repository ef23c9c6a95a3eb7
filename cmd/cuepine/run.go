package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/cuepine/pkg/config"
	"github.com/arthur-debert/cuepine/pkg/core"
	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/filesystem"
	"github.com/arthur-debert/cuepine/pkg/logging"
	"github.com/arthur-debert/cuepine/pkg/manifest"
	"github.com/arthur-debert/cuepine/pkg/shell"
	"github.com/arthur-debert/cuepine/pkg/source"
	"github.com/arthur-debert/cuepine/pkg/target"
	"github.com/arthur-debert/cuepine/pkg/types"
	"github.com/arthur-debert/cuepine/pkg/ui"
	"github.com/spf13/cobra"
)

// overrides turns the explicitly set flags into config keys so they take
// precedence over the file and the environment
func overrides(cmd *cobra.Command, opts *rootOptions) map[string]interface{} {
	flags := cmd.Flags()
	set := map[string]interface{}{}
	if flags.Changed("config-name") {
		set["manifest.name"] = opts.configName
	}
	if flags.Changed("no-sublevel") {
		set["traversal.sublevels"] = !opts.noSublevel
	}
	if flags.Changed("strict-pre") {
		set["hooks.strict_pre"] = opts.strictPre
	}
	if flags.Changed("output") {
		set["output.format"] = opts.output
	}
	return set
}

func run(cmd *cobra.Command, opts *rootOptions, args []string) error {
	logger := logging.GetLogger("cmd.root")
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	cfg, err := config.Load(config.LoadOptions{
		File:      opts.configFile,
		Overrides: overrides(cmd, opts),
	})
	if err != nil {
		return &usageError{err: err}
	}

	if opts.template || opts.explain {
		return printTemplate(stdout, stderr, cfg.Manifest.Name, opts.template)
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, MsgErrResolveDir, dir)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return &usageError{err: fmt.Errorf(MsgErrBadDir, root)}
	}

	format, err := ui.ParseFormat(cfg.Output.Format)
	if err != nil {
		return &usageError{err: err}
	}
	format = resolveFormat(format, stdout)

	mode := types.ModeInstall
	if opts.uninstall {
		mode = types.ModeUninstall
	}

	// Hook and git output must not end up inside the JSON document.
	hookOut := stdout
	if format == ui.FormatJSON {
		hookOut = stderr
	}
	runner, err := shell.New(cfg.Shell.Runner, cfg.Shell.Path, shell.IO{
		Stdin:  cmd.InOrStdin(),
		Stdout: hookOut,
		Stderr: stderr,
	})
	if err != nil {
		return &usageError{err: err}
	}

	reporter, err := ui.NewReporter(format, stdout, ui.Options{
		Mode:      mode,
		DryRun:    opts.dryRun,
		CheckOnly: opts.checkOnly,
		Width:     widthOf(stdout),
	})
	if err != nil {
		return err
	}

	home, err := target.HomeDir()
	if err != nil || home == "" {
		logger.Warn().Err(err).Msg("Cannot resolve the home directory, $HOME is left as is")
	}

	engine := core.NewEngine(filesystem.NewOS(), reporter, core.Options{
		Mode:         mode,
		DryRun:       opts.dryRun,
		StrictPre:    cfg.Hooks.StrictPre,
		CheckOnly:    opts.checkOnly,
		ManifestName: cfg.Manifest.Name,
		Sublevels:    cfg.Traversal.Sublevels,
		Exclude:      cfg.Traversal.Exclude,
		Home:         home,
		Shell:        runner,
		Fetch: source.Options{
			UserAgent: cfg.Fetch.UserAgent,
			Cloner:    &source.GitCloner{Binary: cfg.Git.Binary, Output: stderr},
		},
	})

	logger.Info().
		Str("root", root).
		Str("mode", string(mode)).
		Bool("dryRun", opts.dryRun).
		Bool("checkOnly", opts.checkOnly).
		Str("format", format.String()).
		Msg("Starting run")

	result, err := engine.Run(cmd.Context(), root)
	if err != nil {
		return err
	}
	if jr, ok := reporter.(*ui.JSONReporter); ok && jr.Err() != nil {
		return errors.Wrap(jr.Err(), errors.ErrInternal, "failed to write the JSON report")
	}
	if result.Failed() {
		return &reportedError{msg: "one or more manifests failed"}
	}
	return nil
}

// printTemplate writes the empty manifest to stdout, or the schema
// explanation to stderr, in the format implied by the manifest name
func printTemplate(stdout, stderr io.Writer, name string, template bool) error {
	format, err := manifest.FormatFromName(name)
	if err != nil {
		return &usageError{err: err}
	}
	if template {
		content, err := manifest.Template(format, true)
		if err != nil {
			return err
		}
		_, err = io.WriteString(stdout, content)
		return err
	}

	content, err := manifest.Explain(format, name)
	if err != nil {
		return err
	}
	f, styled := stderr.(*os.File)
	styled = styled && ui.DetectFormat(f) == ui.FormatTerminal
	return ui.RenderMarkdown(stderr, content, styled, widthOf(stderr))
}

func resolveFormat(format ui.Format, w io.Writer) ui.Format {
	if format != ui.FormatAuto {
		return format
	}
	if f, ok := w.(*os.File); ok {
		return ui.Resolve(format, f)
	}
	return ui.FormatText
}

func widthOf(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		return ui.TerminalWidth(f)
	}
	return ui.DefaultWidth
}
