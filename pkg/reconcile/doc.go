// Package reconcile converges install groups towards the filesystem state a
// manifest describes, or away from it when uninstalling.
//
// Every destination goes through a two-state machine (absent, present)
// observed with Stat. Installing an absent target fetches it, uninstalling a
// present one removes it, and everything else is a no-op, which makes both
// directions idempotent. A dangling symlink counts as absent and is removed
// before anything else happens to it.
package reconcile
