// Package testutil provides utilities for testing cuepine components.
//
// Key components:
//   - file helpers (CreateFile, CreateDir, CreateSymlink) that fail the test on error
//   - assertions over the real filesystem (AssertSymlink, AssertNotExists)
//   - SetupHome, which points $HOME at a temporary directory
//   - WriteManifest, which writes a manifest document into a directory
//   - MockRunner and RecordingReporter for the shell and output boundaries
//
// Tests that create symlinks run against t.TempDir(); nothing here touches the
// invoking user's home directory.
package testutil
