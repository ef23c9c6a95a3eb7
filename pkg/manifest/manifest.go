// Package manifest defines the per-directory install manifest and loads it
// from JSON, YAML or TOML.
//
// The order of the installation groups is part of the contract: groups are
// applied in the order they appear in the file, for every format.
package manifest

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/cuepine/pkg/errors"
	"github.com/arthur-debert/cuepine/pkg/logging"
	"github.com/arthur-debert/cuepine/pkg/types"
)

// DefaultName is the manifest file looked up in every directory
const DefaultName = "install.json"

// Manifest is the parsed content of an install manifest
type Manifest struct {
	Dependencies    []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty" toml:"dependencies,omitempty"`
	OptDependencies []string `json:"opt_dependencies,omitempty" yaml:"opt_dependencies,omitempty" toml:"opt_dependencies,omitempty"`
	Pre             []string `json:"pre,omitempty" yaml:"pre,omitempty" toml:"pre,omitempty"`
	Post            []string `json:"post,omitempty" yaml:"post,omitempty" toml:"post,omitempty"`
	Installation    Groups   `json:"installation,omitempty" yaml:"installation,omitempty" toml:"-"`
}

// InstallGroup describes a set of files installed into one directory
type InstallGroup struct {
	Dir          string        `json:"dir" yaml:"dir" toml:"dir"`
	Condition    string        `json:"condition,omitempty" yaml:"condition,omitempty" toml:"condition,omitempty"`
	StripExt     bool          `json:"strip_ext,omitempty" yaml:"strip_ext,omitempty" toml:"strip_ext,omitempty"`
	Files        []string      `json:"files,omitempty" yaml:"files,omitempty" toml:"files,omitempty"`
	RenamedFiles []RenamedFile `json:"renamed_files,omitempty" yaml:"renamed_files,omitempty" toml:"renamed_files,omitempty"`
}

// RenamedFile installs Src under the literal name Dest
type RenamedFile struct {
	Src  string `json:"src" yaml:"src" toml:"src"`
	Dest string `json:"dest" yaml:"dest" toml:"dest"`
}

// Format is a manifest serialization
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the supported formats
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML}

// FormatFromName picks the format from a file name's extension
func FormatFromName(name string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	return ParseFormat(ext)
}

// ParseFormat maps a format name (json, yaml, yml, toml) to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", errors.Newf(errors.ErrUnsupportedFormat, "filetype not supported: %q", s).
			WithDetail("format", s)
	}
}

// Load reads, parses and validates the manifest at path
func Load(fsys types.FS, path string) (*Manifest, error) {
	logger := logging.GetLogger("manifest").With().Str("manifest", path).Logger()

	format, err := FormatFromName(path)
	if err != nil {
		return nil, err
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "cannot read manifest %s", path).
			WithDetail("path", path)
	}

	m, err := Parse(data, format)
	if err != nil {
		if ce, ok := err.(*errors.CuepineError); ok {
			ce.WithDetail("path", path)
		}
		return nil, err
	}

	if err := m.Validate(); err != nil {
		if ce, ok := err.(*errors.CuepineError); ok {
			ce.WithDetail("path", path)
		}
		return nil, err
	}

	logger.Debug().
		Int("groups", len(m.Installation)).
		Int("dependencies", len(m.Dependencies)).
		Msg("Manifest loaded")
	return m, nil
}

// Parse decodes data in the given format without validating it
func Parse(data []byte, format Format) (*Manifest, error) {
	var (
		m   *Manifest
		err error
	)
	switch format {
	case FormatJSON:
		m, err = parseJSON(data)
	case FormatYAML:
		m, err = parseYAML(data)
	case FormatTOML:
		m, err = parseTOML(data)
	default:
		return nil, errors.Newf(errors.ErrUnsupportedFormat, "filetype not supported: %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "invalid %s manifest", format).
			WithDetail("format", string(format))
	}
	return m, nil
}

// Marshal renders m in the given format, groups in order
func Marshal(m *Manifest, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return marshalJSON(m)
	case FormatYAML:
		return marshalYAML(m)
	case FormatTOML:
		return marshalTOML(m)
	default:
		return nil, errors.Newf(errors.ErrUnsupportedFormat, "filetype not supported: %q", format)
	}
}
