package testutil

import (
	"encoding/json"
	"testing"
)

// WriteManifest marshals doc as indented JSON into dir/name and returns the
// path. doc is usually a map literal mirroring the on-disk schema; key order
// of maps is not preserved, so tests that care about group order should use
// WriteRawManifest.
func WriteManifest(t *testing.T, dir, name string, doc interface{}) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal manifest: %v", err)
	}
	return CreateFile(t, dir, name, string(data))
}

// WriteRawManifest writes content verbatim into dir/name
func WriteRawManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	return CreateFile(t, dir, name, content)
}
