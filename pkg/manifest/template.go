package manifest

import (
	"bytes"
	_ "embed"
	"text/template"
)

//go:embed explain.md
var explainText string

var explainTemplate = template.Must(template.New("explain").Parse(explainText))

// Example returns the sample manifest used by the template and the config
// explanation. With empty set every string value is blanked so the result
// can be filled in by hand.
func Example(empty bool) *Manifest {
	m := &Manifest{
		Dependencies:    []string{"ssh", "ed", "vim"},
		OptDependencies: []string{"fzf"},
		Pre:             []string{"mkdir -p $HOME/.local/share/mydir"},
		Post:            []string{"echo installed"},
		Installation: Groups{
			{Name: "config", Group: InstallGroup{
				Dir:   "$HOME/.config/mydir",
				Files: []string{"file_1.py", "file_2.py"},
			}},
			{Name: "scripts", Group: InstallGroup{
				Dir:       "$HOME/.local/bin",
				Condition: "command -v bash",
				StripExt:  true,
				Files:     []string{"script.sh"},
			}},
			{Name: "setup", Group: InstallGroup{
				Dir: "$HOME/.config/bash/setup",
				RenamedFiles: []RenamedFile{
					{Src: "my_aliases.sh", Dest: "999_cuepine_aliases.sh"},
					{Src: "autocompletion.bash", Dest: "999_cuepine_autocomp.bash"},
				},
			}},
		},
	}
	if !empty {
		return m
	}

	m.Dependencies = []string{""}
	m.OptDependencies = []string{""}
	m.Pre = []string{""}
	m.Post = []string{""}
	for i := range m.Installation {
		g := &m.Installation[i].Group
		g.Condition = ""
		if len(g.Files) > 0 {
			g.Files = []string{""}
		}
		if len(g.RenamedFiles) > 0 {
			g.RenamedFiles = []RenamedFile{{}}
		}
	}
	return m
}

// Template renders the example manifest in format
func Template(format Format, empty bool) (string, error) {
	data, err := Marshal(Example(empty), format)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Explain returns the markdown description of the manifest schema, including
// the example rendered in format
func Explain(format Format, name string) (string, error) {
	example, err := Template(format, false)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = explainTemplate.Execute(&buf, struct {
		Name    string
		Format  Format
		Example string
	}{Name: name, Format: format, Example: example})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
