package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRoundTrips(t *testing.T) {
	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			out, err := Template(format, false)
			require.NoError(t, err)

			m, err := Parse([]byte(out), format)
			require.NoError(t, err)
			require.NoError(t, m.Validate())
			assert.Equal(t, Example(false), m)
		})
	}
}

func TestTemplateJSONOrder(t *testing.T) {
	out, err := Template(FormatJSON, false)
	require.NoError(t, err)

	config := strings.Index(out, `"config"`)
	scripts := strings.Index(out, `"scripts"`)
	setup := strings.Index(out, `"setup"`)
	assert.True(t, config < scripts && scripts < setup, out)
	assert.Contains(t, out, `"strip_ext": true`)
}

func TestEmptyTemplateBlanksValues(t *testing.T) {
	m := Example(true)
	assert.Equal(t, []string{""}, m.Dependencies)

	config, _ := m.Installation.Get("config")
	assert.Equal(t, "$HOME/.config/mydir", config.Dir)
	assert.Equal(t, []string{""}, config.Files)

	setup, _ := m.Installation.Get("setup")
	assert.Equal(t, []RenamedFile{{}}, setup.RenamedFiles)

	out, err := Template(FormatYAML, true)
	require.NoError(t, err)
	assert.Contains(t, out, "renamed_files:")
}

func TestExplain(t *testing.T) {
	out, err := Explain(FormatJSON, "install.json")
	require.NoError(t, err)
	assert.Contains(t, out, "`install.json`")
	assert.Contains(t, out, "```json")
	assert.Contains(t, out, `"999_cuepine_aliases.sh"`)
}
