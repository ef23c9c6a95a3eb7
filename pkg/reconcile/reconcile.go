package reconcile

import (
	"context"
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/logging"
	"github.com/arthur-debert/cuepine/pkg/manifest"
	"github.com/arthur-debert/cuepine/pkg/shell"
	"github.com/arthur-debert/cuepine/pkg/source"
	"github.com/arthur-debert/cuepine/pkg/target"
	"github.com/arthur-debert/cuepine/pkg/types"
)

// Fetcher materializes a source at a destination
type Fetcher interface {
	Resolve(src string) string
	Check(src string) error
	Fetch(ctx context.Context, src, dest string) (bool, error)
}

// Options controls a reconciliation pass
type Options struct {
	Mode   types.Mode
	DryRun bool
	// BaseDir is the manifest directory; conditions run there and relative
	// group dirs are resolved against it
	BaseDir string
	// Home replaces $HOME in group dirs
	Home string
}

// Item is a resolved source and destination pair
type Item struct {
	Source      string
	Destination string
}

// Reconciler applies install groups
type Reconciler struct {
	fs       types.FS
	fetcher  Fetcher
	shell    shell.Runner
	observer types.GroupObserver
	opts     Options
}

// New creates a Reconciler. observer may be nil.
func New(fsys types.FS, fetcher Fetcher, sh shell.Runner, observer types.GroupObserver, opts Options) *Reconciler {
	if observer == nil {
		observer = types.NopReporter{}
	}
	if opts.Mode == "" {
		opts.Mode = types.ModeInstall
	}
	return &Reconciler{fs: fsys, fetcher: fetcher, shell: sh, observer: observer, opts: opts}
}

// Reconcile processes groups in order. It stops early only when ctx is done.
func (r *Reconciler) Reconcile(ctx context.Context, groups manifest.Groups) []types.GroupResult {
	r.observer.ReconcileStarted(r.opts.Mode)

	results := make([]types.GroupResult, 0, len(groups))
	for _, ng := range groups {
		if ctx.Err() != nil {
			break
		}
		res := r.reconcileGroup(ctx, ng.Name, ng.Group)
		r.observer.GroupFinished(res)
		results = append(results, res)
	}
	return results
}

// ResolveDir expands $HOME in dir and anchors relative dirs at the base dir
func (r *Reconciler) ResolveDir(dir string) string {
	dir = target.ExpandHome(dir, r.opts.Home)
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(r.opts.BaseDir, dir)
	}
	return filepath.Clean(dir)
}

// Items lists the targets of a group: files first, then renamed files.
// Install and uninstall both use it.
func Items(group manifest.InstallGroup, dir string) []Item {
	items := make([]Item, 0, len(group.Files)+len(group.RenamedFiles))
	for _, f := range group.Files {
		items = append(items, Item{
			Source:      f,
			Destination: target.Destination(dir, target.ResolveFile(f, group.StripExt)),
		})
	}
	for _, rf := range group.RenamedFiles {
		items = append(items, Item{
			Source:      rf.Src,
			Destination: target.Destination(dir, target.ResolveRenamed(rf.Dest)),
		})
	}
	return items
}

func (r *Reconciler) reconcileGroup(ctx context.Context, name string, group manifest.InstallGroup) types.GroupResult {
	logger := logging.GetLogger("reconcile").With().Str("group", name).Logger()
	r.observer.GroupStarted(name)

	res := types.GroupResult{Name: name, Condition: group.Condition}

	if group.Condition != "" {
		code, err := r.shell.Run(ctx, r.opts.BaseDir, group.Condition)
		if err != nil {
			res.Status = types.GroupFailed
			res.Err = errors.Wrapf(err, errors.ErrConditionFailed, "condition of group %q could not run", name).
				WithDetail("group", name).
				WithDetail("command", group.Condition)
			return res
		}
		if code != 0 {
			logger.Info().Str("command", group.Condition).Int("exit_code", code).Msg("Condition not met, skipping group")
			res.Status = types.GroupSkipped
			return res
		}
	}

	dir := r.ResolveDir(group.Dir)
	res.Dir = dir

	if r.opts.Mode == types.ModeInstall && !r.opts.DryRun {
		if err := r.ensureDir(dir); err != nil {
			res.Status = types.GroupFailed
			res.Err = err.WithDetail("group", name)
			return res
		}
	}

	acted := false
	for _, item := range Items(group, dir) {
		if ctx.Err() != nil {
			break
		}
		ir := r.apply(ctx, name, dir, item)
		r.observer.ItemFinished(ir)
		res.Items = append(res.Items, ir)
		acted = acted || ir.Acted
	}

	res.Status = types.GroupNothingDone
	if acted {
		res.Status = types.GroupApplied
	}
	logger.Debug().Str("status", string(res.Status)).Int("items", len(res.Items)).Msg("Group reconciled")
	return res
}

func (r *Reconciler) ensureDir(dir string) *errors.CuepineError {
	if _, err := r.fs.Stat(dir); err == nil {
		return nil
	}
	if err := r.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dir).WithDetail("dir", dir)
	}
	return nil
}

func (r *Reconciler) apply(ctx context.Context, group, dir string, item Item) types.ItemResult {
	dest := source.CloneDestination(item.Source, item.Destination)
	logger := logging.GetLogger("reconcile").With().
		Str("group", group).
		Str("source", item.Source).
		Str("dest", dest).
		Logger()

	res := types.ItemResult{
		Group:       group,
		Source:      item.Source,
		Resolved:    r.fetcher.Resolve(item.Source),
		Destination: dest,
		Action:      types.ActionNone,
		DryRun:      r.opts.DryRun,
	}

	if !target.Within(dir, dest) {
		res.Err = errors.Newf(errors.ErrUnsafeDestination, "%s is not inside the group dir", dest).
			WithDetail("dest", dest)
		logger.Warn().Err(res.Err).Msg("Item refused")
		return res
	}

	obs, err := inspect(r.fs, dest)
	if err != nil {
		res.Err = errors.Wrapf(err, errors.ErrFSConflict, "cannot inspect %s", dest).WithDetail("dest", dest)
		return res
	}

	if obs.dangling {
		logger.Debug().Msg("Removing dangling entry")
		if !r.opts.DryRun {
			if err := r.fs.Remove(dest); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
				res.Err = errors.Wrapf(err, errors.ErrRemoveFailed, "cannot remove dangling link %s", dest).
					WithDetail("dest", dest)
				return res
			}
		}
		if r.opts.Mode == types.ModeUninstall {
			return res
		}
	}

	fetch, remove := transition(r.opts.Mode, obs.state)
	switch {
	case fetch:
		res.Action = source.ActionFor(source.Classify(item.Source))
		if err := r.fetcher.Check(item.Source); err != nil {
			res.Err = err
			return res
		}
		if r.opts.DryRun {
			res.Acted = true
			return res
		}
		acted, err := r.fetcher.Fetch(ctx, item.Source, item.Destination)
		res.Acted = acted
		res.Err = err

	case remove:
		res.Action = types.ActionRemove
		if r.opts.DryRun {
			res.Acted = true
			return res
		}
		if err := r.remove(dest, obs.dir); err != nil {
			res.Err = err
			return res
		}
		res.Acted = true
	}

	if res.Err != nil {
		logger.Warn().Err(res.Err).Str("action", string(res.Action)).Msg("Item failed")
	} else {
		logger.Debug().Str("action", string(res.Action)).Bool("acted", res.Acted).Msg("Item reconciled")
	}
	return res
}

// remove deletes a real directory recursively and anything else with a
// single unlink, so a link to a directory never touches its target
func (r *Reconciler) remove(dest string, dir bool) error {
	var err error
	if dir {
		err = r.fs.RemoveAll(dest)
	} else {
		err = r.fs.Remove(dest)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrRemoveFailed, "cannot remove %s", dest).WithDetail("dest", dest)
	}
	return nil
}
