// Package types defines the core types and interfaces shared across cuepine.
// This includes the filesystem boundary (FS), the reconciliation mode, the
// result structures produced for every manifest, group, item, hook and
// dependency, and the Reporter interface the output layer implements.
package types
