package core

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/cuepine/pkg/deps"
	"github.com/arthur-debert/cuepine/pkg/discovery"
	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/hooks"
	"github.com/arthur-debert/cuepine/pkg/logging"
	"github.com/arthur-debert/cuepine/pkg/manifest"
	"github.com/arthur-debert/cuepine/pkg/reconcile"
	"github.com/arthur-debert/cuepine/pkg/shell"
	"github.com/arthur-debert/cuepine/pkg/source"
	"github.com/arthur-debert/cuepine/pkg/types"
)

// Options configures a run
type Options struct {
	Mode      types.Mode
	DryRun    bool
	StrictPre bool
	// CheckOnly stops every manifest after its dependency check
	CheckOnly bool

	// Discovery
	ManifestName string
	Sublevels    bool
	Exclude      []string

	// Home replaces $HOME in group dirs
	Home string

	Shell    shell.Runner
	Fetch    source.Options
	LookPath deps.LookPathFunc
}

// Engine processes manifests
type Engine struct {
	fs       types.FS
	reporter types.Reporter
	opts     Options
	checker  *deps.Checker
}

// NewEngine creates an Engine. reporter may be nil.
func NewEngine(fsys types.FS, reporter types.Reporter, opts Options) *Engine {
	if reporter == nil {
		reporter = types.NopReporter{}
	}
	if opts.Mode == "" {
		opts.Mode = types.ModeInstall
	}
	if opts.ManifestName == "" {
		opts.ManifestName = manifest.DefaultName
	}
	if opts.Shell == nil {
		opts.Shell = &shell.ExecRunner{}
	}
	return &Engine{
		fs:       fsys,
		reporter: reporter,
		opts:     opts,
		checker:  deps.NewChecker(opts.LookPath),
	}
}

// Run discovers every manifest under root and processes them in order. A
// failing manifest never stops the ones after it; only a failed discovery
// or a cancelled context end the run early.
func (e *Engine) Run(ctx context.Context, root string) (*types.RunResult, error) {
	logger := logging.GetLogger("core")
	done := logging.LogOperationStart(logger, "run")
	defer done()

	paths, err := discovery.Find(root, discovery.Options{
		Name:      e.opts.ManifestName,
		Sublevels: e.opts.Sublevels,
		Exclude:   e.opts.Exclude,
	})
	if err != nil {
		return nil, err
	}

	run := &types.RunResult{}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			e.reporter.RunFinished(run)
			return run, err
		}
		run.Manifests = append(run.Manifests, e.ProcessManifest(ctx, path))
	}

	if len(paths) == 0 {
		logger.Info().Str("root", root).Str("name", e.opts.ManifestName).Msg("No manifest found")
	}
	e.reporter.RunFinished(run)
	return run, nil
}

// ProcessManifest runs every phase of the manifest at path. Failures are
// recorded on the result; the manifest's own phases stop at the first fatal
// one (load error, unmet dependencies, strict pre hook).
func (e *Engine) ProcessManifest(ctx context.Context, path string) *types.ManifestResult {
	logger := logging.GetLogger("core").With().Str("manifest", path).Logger()
	e.reporter.ManifestStarted(path)

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		dir = filepath.Dir(path)
	}
	result := &types.ManifestResult{
		Path:   path,
		Dir:    dir,
		Mode:   e.opts.Mode,
		DryRun: e.opts.DryRun,
	}

	e.process(ctx, result)

	if result.Err != nil {
		logger.Warn().Err(result.Err).Bool("aborted", result.Aborted).Msg("Manifest failed")
	} else {
		logger.Info().Msg("Manifest processed")
	}
	e.reporter.ManifestFinished(result)
	return result
}

func (e *Engine) process(ctx context.Context, result *types.ManifestResult) {
	abort := func(err error) {
		result.Err = err
		result.Aborted = true
	}

	m, err := manifest.Load(e.fs, result.Path)
	if err != nil {
		abort(err)
		return
	}

	install := e.opts.Mode == types.ModeInstall

	if install && (len(m.Dependencies) > 0 || len(m.OptDependencies) > 0) {
		report := e.checker.Check(m.Dependencies, m.OptDependencies)
		result.Dependencies = &report
		e.reporter.DependenciesChecked(report)

		if !report.OK && !e.opts.CheckOnly {
			missing := report.Missing()
			abort(errors.Newf(errors.ErrMissingDependency, "not all dependencies met: %s", strings.Join(missing, ", ")).
				WithDetail("missing", missing))
			return
		}
	}
	if e.opts.CheckOnly {
		return
	}

	hookRunner := hooks.NewRunner(e.opts.Shell, e.reporter, hooks.Options{
		Dir:       result.Dir,
		StrictPre: e.opts.StrictPre,
		DryRun:    e.opts.DryRun,
	})

	if install && len(m.Pre) > 0 {
		result.Pre, err = hookRunner.Run(ctx, types.HookPre, m.Pre)
		if err != nil {
			abort(err)
			return
		}
	}

	fetcher := source.NewFetcher(e.fs, result.Dir, e.opts.Fetch)
	rec := reconcile.New(e.fs, fetcher, e.opts.Shell, e.reporter, reconcile.Options{
		Mode:    e.opts.Mode,
		DryRun:  e.opts.DryRun,
		BaseDir: result.Dir,
		Home:    e.opts.Home,
	})
	result.Groups = rec.Reconcile(ctx, m.Installation)
	if err := ctx.Err(); err != nil {
		abort(err)
		return
	}

	if install && len(m.Post) > 0 {
		result.Post, err = hookRunner.Run(ctx, types.HookPost, m.Post)
		if err != nil {
			abort(err)
		}
	}
}
