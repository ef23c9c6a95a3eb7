package types

// Mode selects the direction of a reconciliation pass
type Mode string

const (
	// ModeInstall converges the filesystem towards the manifest
	ModeInstall Mode = "install"

	// ModeUninstall removes what an install pass would have created
	ModeUninstall Mode = "uninstall"
)

// IsUninstall reports whether m is the uninstall mode
func (m Mode) IsUninstall() bool {
	return m == ModeUninstall
}

// HookPhase tags a hook sequence
type HookPhase string

const (
	HookPre  HookPhase = "pre"
	HookPost HookPhase = "post"
)
