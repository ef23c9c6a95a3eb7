package manifest

import (
	"strings"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/target"
)

// Validate checks the structural rules a manifest must satisfy before any
// phase runs
func (m *Manifest) Validate() error {
	for i, dep := range m.Dependencies {
		if strings.TrimSpace(dep) == "" {
			return invalid("dependencies entry #%d is empty", i).WithDetail("field", "dependencies")
		}
	}
	for i, dep := range m.OptDependencies {
		if strings.TrimSpace(dep) == "" {
			return invalid("opt_dependencies entry #%d is empty", i).WithDetail("field", "opt_dependencies")
		}
	}

	for _, ng := range m.Installation {
		if err := ng.Group.validate(ng.Name); err != nil {
			return err
		}
	}
	return nil
}

func (g InstallGroup) validate(name string) error {
	if strings.TrimSpace(g.Dir) == "" {
		return invalid("group %q has no dir", name).WithDetail("group", name)
	}
	for i, f := range g.Files {
		if f == "" {
			return invalid("group %q: files entry #%d is empty", name, i).WithDetail("group", name)
		}
		if leaf := target.ResolveFile(f, g.StripExt); !target.ValidLeaf(leaf) {
			return invalid("group %q: files entry %q does not name a file", name, f).
				WithDetail("group", name).
				WithDetail("entry", f)
		}
	}
	for i, rf := range g.RenamedFiles {
		switch {
		case rf.Src == "":
			return invalid("group %q: renamed_files entry #%d has no src", name, i).WithDetail("group", name)
		case rf.Dest == "":
			return invalid("group %q: renamed_files entry #%d has no dest", name, i).WithDetail("group", name)
		case !target.ValidLeaf(target.ResolveRenamed(rf.Dest)):
			return invalid("group %q: renamed_files dest %q does not name a file", name, rf.Dest).
				WithDetail("group", name).
				WithDetail("dest", rf.Dest)
		case strings.ContainsAny(rf.Dest, `/\`):
			return invalid("group %q: renamed_files dest %q must be a plain name", name, rf.Dest).
				WithDetail("group", name).
				WithDetail("dest", rf.Dest)
		}
	}
	return nil
}

func invalid(format string, args ...interface{}) *errors.CuepineError {
	return errors.Newf(errors.ErrManifestInvalid, format, args...)
}
