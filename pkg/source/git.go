package source

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/logging"
)

// Cloner clones a repository into dest
type Cloner interface {
	Clone(ctx context.Context, url, dest string) error
}

// GitCloner shells out to the git binary
type GitCloner struct {
	// Binary is the git executable, "git" when empty
	Binary string
	// Output receives git's progress; it is captured into the error otherwise
	Output io.Writer
}

// Clone runs `git clone url dest`
func (g *GitCloner) Clone(ctx context.Context, url, dest string) error {
	binary := g.Binary
	if binary == "" {
		binary = "git"
	}

	logger := logging.GetLogger("source.git")
	args := []string{"clone", url, dest}
	logging.LogCommand(logger, binary, args)

	var captured bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	if g.Output != nil {
		cmd.Stdout = io.MultiWriter(g.Output, &captured)
		cmd.Stderr = io.MultiWriter(g.Output, &captured)
	} else {
		cmd.Stdout = &captured
		cmd.Stderr = &captured
	}

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrFetchFailed, "git clone %s failed", url).
			WithDetail("url", url).
			WithDetail("dest", dest).
			WithDetail("output", strings.TrimSpace(captured.String()))
	}
	return nil
}
