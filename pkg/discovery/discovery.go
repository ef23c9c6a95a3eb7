// Package discovery finds the manifests to process under a root directory.
package discovery

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/logging"
	"github.com/bmatcuk/doublestar/v4"
)

// Options controls the walk
type Options struct {
	// Name is the manifest file name
	Name string
	// Sublevels enables descending into sub-directories
	Sublevels bool
	// Exclude holds glob patterns matched against directory base names;
	// matching directories are pruned
	Exclude []string
}

// Find returns the manifest paths under root: the root manifest first, then
// those of sub-directories in lexical walk order
func Find(root string, opts Options) ([]string, error) {
	logger := logging.GetLogger("discovery")

	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Newf(errors.ErrInvalidInput, "invalid exclude pattern %q", pattern).
				WithDetail("pattern", pattern)
		}
	}

	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Warn().Err(err).Str("path", path).Msg("Skipping unreadable entry")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		if path != root && (!opts.Sublevels || excluded(d.Name(), opts.Exclude)) {
			return filepath.SkipDir
		}

		// a directory's own manifest comes before anything below it
		candidate := filepath.Join(path, opts.Name)
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
			found = append(found, candidate)
		}
		return nil
	})
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, errors.ErrNotFound, "directory %s does not exist", root).
				WithDetail("path", root)
		}
		return nil, errors.Wrapf(err, errors.ErrInternal, "cannot walk %s", root).WithDetail("path", root)
	}

	logger.Debug().Str("root", root).Int("manifests", len(found)).Msg("Discovery finished")
	return found, nil
}

func excluded(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
