package reconcile

import (
	stderrors "errors"
	"io/fs"

	"github.com/arthur-debert/cuepine/pkg/types"
)

// State is what the reconciler observes at a destination
type State int

const (
	StateAbsent State = iota
	StatePresent
)

func (s State) String() string {
	if s == StatePresent {
		return "present"
	}
	return "absent"
}

// observation is the result of inspecting one destination
type observation struct {
	state State
	// dangling is set when Stat misses but Lstat still sees an entry
	dangling bool
	// dir is set for a real directory (not a link to one)
	dir bool
}

func inspect(fsys types.FS, dest string) (observation, error) {
	if _, err := fsys.Stat(dest); err == nil {
		obs := observation{state: StatePresent}
		if info, lerr := fsys.Lstat(dest); lerr == nil {
			obs.dir = info.IsDir()
		}
		return obs, nil
	} else if !stderrors.Is(err, fs.ErrNotExist) {
		return observation{}, err
	}

	if _, err := fsys.Lstat(dest); err == nil {
		return observation{state: StateAbsent, dangling: true}, nil
	}
	return observation{state: StateAbsent}, nil
}

// transition decides what to do for a destination in the given mode
func transition(mode types.Mode, state State) (fetch, remove bool) {
	switch {
	case mode == types.ModeInstall && state == StateAbsent:
		return true, false
	case mode == types.ModeUninstall && state == StatePresent:
		return false, true
	default:
		return false, false
	}
}
