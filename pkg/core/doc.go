// Package core sequences the phases of every manifest found under a
// directory tree.
//
// # Phases
//
// Each manifest goes through, in order:
//
//  1. Dependency check: every mandatory then optional executable is probed
//     on PATH. A missing mandatory one aborts the manifest before anything
//     is touched.
//
//  2. Pre hooks: shell commands run in the manifest directory. A failing
//     command is reported and the next one runs, unless StrictPre is set.
//
//  3. Reconciliation: installation groups are applied in the order they
//     appear in the file (see package reconcile).
//
//  4. Post hooks: same as pre hooks, but a failure is never fatal.
//
// Uninstalling only runs the reconciliation phase. CheckOnly stops after the
// dependency check and never turns a missing dependency into a failure.
//
// # Failure handling
//
// Failures belong to the manifest that produced them. The engine records
// them on the ManifestResult and moves on to the next manifest; only a
// failed discovery or a cancelled context ends a run early. Per-item errors
// (missing sources, conflicts, failed downloads) never abort a manifest.
package core
