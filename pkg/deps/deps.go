// Package deps probes the executables a manifest depends on.
package deps

import (
	"os/exec"

	"github.com/arthur-debert/cuepine/pkg/logging"
	"github.com/arthur-debert/cuepine/pkg/types"
)

// LookPathFunc resolves an executable name to a path
type LookPathFunc func(file string) (string, error)

// Checker probes dependencies on the executable search path
type Checker struct {
	lookPath LookPathFunc
}

// NewChecker creates a Checker. A nil lookPath uses exec.LookPath.
func NewChecker(lookPath LookPathFunc) *Checker {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	return &Checker{lookPath: lookPath}
}

// Check probes every required then optional dependency. OK is false when a
// required dependency is missing; optional misses are only reported.
func (c *Checker) Check(required, optional []string) types.DependencyReport {
	logger := logging.GetLogger("deps")
	report := types.DependencyReport{OK: true}

	probe := func(name string, opt bool) {
		res := types.DependencyResult{Name: name, Optional: opt}
		if path, err := c.lookPath(name); err == nil {
			res.Found = true
			res.Path = path
		} else if !opt {
			report.OK = false
		}
		logger.Debug().
			Str("dependency", name).
			Bool("optional", opt).
			Bool("found", res.Found).
			Msg("Probed dependency")
		report.Results = append(report.Results, res)
	}

	for _, name := range required {
		probe(name, false)
	}
	for _, name := range optional {
		probe(name, true)
	}
	return report
}
