// Package source materializes install sources at their destination: local
// files are symlinked, URLs downloaded and git repositories cloned.
package source

import (
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"net/http"
	"path/filepath"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/logging"
	"github.com/arthur-debert/cuepine/pkg/types"
)

const partSuffix = ".cuepine-part"

// Options configures a Fetcher
type Options struct {
	HTTPClient *http.Client
	UserAgent  string
	Cloner     Cloner
}

// Fetcher creates destinations from sources. Relative local sources are
// resolved against BaseDir, the directory of the manifest being processed.
type Fetcher struct {
	fs        types.FS
	baseDir   string
	client    *http.Client
	userAgent string
	cloner    Cloner
}

// NewFetcher creates a Fetcher rooted at baseDir
func NewFetcher(fsys types.FS, baseDir string, opts Options) *Fetcher {
	f := &Fetcher{
		fs:        fsys,
		baseDir:   baseDir,
		client:    opts.HTTPClient,
		userAgent: opts.UserAgent,
		cloner:    opts.Cloner,
	}
	if f.client == nil {
		f.client = http.DefaultClient
	}
	if f.cloner == nil {
		f.cloner = &GitCloner{}
	}
	return f
}

// ActionFor names what fetching a source of the given kind does
func ActionFor(kind Kind) types.Action {
	switch kind {
	case KindGit:
		return types.ActionClone
	case KindHTTP:
		return types.ActionDownload
	default:
		return types.ActionLink
	}
}

// LocalPath returns the absolute path a local source refers to
func (f *Fetcher) LocalPath(src string) string {
	if filepath.IsAbs(src) {
		return filepath.Clean(src)
	}
	return filepath.Join(f.baseDir, src)
}

// Resolve returns what src points at: an absolute path for local sources
// and local repositories, the source itself for remote ones
func (f *Fetcher) Resolve(src string) string {
	switch Classify(src) {
	case KindLocal:
		return f.LocalPath(src)
	case KindGit:
		if !IsRemote(src) {
			return f.LocalPath(src)
		}
	}
	return src
}

// Check validates src without touching the destination. Only local sources
// can be checked ahead of time; remote ones fail when fetched.
func (f *Fetcher) Check(src string) error {
	if Classify(src) != KindLocal {
		return nil
	}
	path := f.LocalPath(src)
	if _, err := f.fs.Stat(path); err != nil {
		return errors.Wrapf(err, errors.ErrMissingSource, "file %q does not exist", src).
			WithDetail("source", src).
			WithDetail("path", path)
	}
	return nil
}

// Fetch materializes src at dest. The parent of dest is created first. It
// returns true when something was created.
func (f *Fetcher) Fetch(ctx context.Context, src, dest string) (bool, error) {
	kind := Classify(src)
	logger := logging.GetLogger("source").With().
		Str("source", src).
		Str("dest", dest).
		Str("kind", kind.String()).
		Logger()

	if err := f.Check(src); err != nil {
		return false, err
	}

	dest = CloneDestination(src, dest)
	if err := f.fs.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return false, errors.Wrapf(err, errors.ErrDirCreate, "cannot create parent of %s", dest).
			WithDetail("dest", dest)
	}

	var err error
	switch kind {
	case KindLocal:
		err = f.link(src, dest)
	case KindHTTP:
		err = f.download(ctx, src, dest)
	case KindGit:
		err = f.clone(ctx, f.Resolve(src), dest)
	}
	if err != nil {
		logger.Debug().Err(err).Msg("Fetch failed")
		return false, err
	}

	logger.Debug().Msg("Fetched")
	return true, nil
}

func (f *Fetcher) link(src, dest string) error {
	abs := f.LocalPath(src)
	if err := f.fs.Symlink(abs, dest); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot link %s to %s", dest, abs).
			WithDetail("source", abs).
			WithDetail("dest", dest)
	}
	return nil
}

func (f *Fetcher) download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFetchFailed, "invalid url %s", url).WithDetail("url", url)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFetchFailed, "download of %s failed", url).WithDetail("url", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Newf(errors.ErrFetchFailed, "download of %s failed: %s", url, resp.Status).
			WithDetail("url", url).
			WithDetail("status", resp.StatusCode)
	}

	part := dest + partSuffix
	w, err := f.fs.Create(part)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFetchFailed, "cannot create %s", part).WithDetail("dest", dest)
	}
	_, copyErr := io.Copy(w, resp.Body)
	closeErr := w.Close()
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		_ = f.fs.Remove(part)
		return errors.Wrapf(copyErr, errors.ErrFetchFailed, "download of %s interrupted", url).WithDetail("url", url)
	}

	if err := f.fs.Rename(part, dest); err != nil {
		_ = f.fs.Remove(part)
		return errors.Wrapf(err, errors.ErrFetchFailed, "cannot move download into %s", dest).WithDetail("dest", dest)
	}
	return nil
}

func (f *Fetcher) clone(ctx context.Context, url, dest string) error {
	if _, err := f.fs.Lstat(dest); err == nil {
		return errors.Newf(errors.ErrFSConflict, "clone destination %s already exists", dest).
			WithDetail("url", url).
			WithDetail("dest", dest)
	} else if !stderrors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, errors.ErrFSConflict, "cannot inspect %s", dest).WithDetail("dest", dest)
	}
	return f.cloner.Clone(ctx, url, dest)
}
