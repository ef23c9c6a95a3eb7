// Package filesystem provides the types.FS implementations used by cuepine.
//
// NewOS talks to the real filesystem and is what the CLI wires in. NewAfero
// wraps any afero.Fs; tests use it over an in-memory afero filesystem for
// paths that never need a real symlink (manifest loading, downloads).
package filesystem
