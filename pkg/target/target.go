// Package target maps install entries to destination paths.
//
// Install and uninstall both compute destinations through this package so
// that an uninstall pass always finds what an install pass created.
package target

import (
	"os"
	"path/filepath"
	"strings"
)

// HomePlaceholder is substituted with the user's home directory in a group dir
const HomePlaceholder = "$HOME"

// ExpandHome replaces every occurrence of $HOME in dir with home. It is
// called once per group dir value. An empty home leaves dir as is.
func ExpandHome(dir, home string) string {
	if home == "" {
		return dir
	}
	return strings.ReplaceAll(dir, HomePlaceholder, home)
}

// HomeDir returns the home directory used for $HOME substitution
func HomeDir() (string, error) {
	if home := os.Getenv("HOME"); home != "" {
		return home, nil
	}
	return os.UserHomeDir()
}

// StripExt removes everything from the last '.' of the final path segment.
// Dots in parent segments are never touched, and a leading dot is part of
// the name, so .bashrc stays .bashrc.
func StripExt(entry string) string {
	seg := lastSeparator(entry) + 1
	if i := strings.LastIndex(entry[seg:], "."); i > 0 {
		return entry[:seg+i]
	}
	return entry
}

// Leaf returns the part of entry after its last path separator. URLs are
// treated the same way, so a download lands under its final path segment.
func Leaf(entry string) string {
	if i := lastSeparator(entry); i >= 0 {
		return entry[i+1:]
	}
	return entry
}

// ResolveFile computes the destination leaf name for a "files" entry
func ResolveFile(entry string, stripExt bool) string {
	if stripExt {
		entry = StripExt(entry)
	}
	return Leaf(entry)
}

// ResolveRenamed computes the destination leaf name for a renamed entry;
// the dest value is used literally.
func ResolveRenamed(dest string) string {
	return dest
}

// Destination joins leaf under the resolved group dir
func Destination(dir, leaf string) string {
	return filepath.Join(dir, leaf)
}

// ValidLeaf reports whether leaf names an entry inside a directory, as
// opposed to the directory itself or its parent
func ValidLeaf(leaf string) bool {
	return leaf != "" && leaf != "." && leaf != ".."
}

// Within reports whether dest lies strictly below dir
func Within(dir, dest string) bool {
	rel, err := filepath.Rel(dir, dest)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func lastSeparator(s string) int {
	i := strings.LastIndex(s, "/")
	if filepath.Separator != '/' {
		if j := strings.LastIndexByte(s, filepath.Separator); j > i {
			i = j
		}
	}
	return i
}
