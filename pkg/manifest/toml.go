package manifest

import (
	"bytes"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

const installationKey = "installation"

// tomlManifest mirrors Manifest with the installation as a plain table.
// go-toml decodes tables into maps, so group order is recovered separately.
type tomlManifest struct {
	Dependencies    []string                `toml:"dependencies,omitempty"`
	OptDependencies []string                `toml:"opt_dependencies,omitempty"`
	Pre             []string                `toml:"pre,omitempty"`
	Post            []string                `toml:"post,omitempty"`
	Installation    map[string]InstallGroup `toml:"installation,omitempty"`
}

func parseTOML(data []byte) (*Manifest, error) {
	var raw tomlManifest
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	m := &Manifest{
		Dependencies:    raw.Dependencies,
		OptDependencies: raw.OptDependencies,
		Pre:             raw.Pre,
		Post:            raw.Post,
	}

	for _, name := range tomlGroupOrder(data, raw.Installation) {
		m.Installation = append(m.Installation, NamedGroup{Name: name, Group: raw.Installation[name]})
	}
	return m, nil
}

// tomlGroupOrder lists the keys of groups in the order they first appear in
// the document, whether declared as [installation.x] tables, dotted keys or
// an inline table. Names the scan misses are appended sorted.
func tomlGroupOrder(data []byte, groups map[string]InstallGroup) []string {
	seen := make(map[string]bool, len(groups))
	order := make([]string, 0, len(groups))
	record := func(path []string) {
		if len(path) < 2 || path[0] != installationKey {
			return
		}
		if _, ok := groups[path[1]]; ok && !seen[path[1]] {
			seen[path[1]] = true
			order = append(order, path[1])
		}
	}

	p := unstable.Parser{}
	p.Reset(data)
	var table []string
	for p.NextExpression() {
		expr := p.Expression()
		switch expr.Kind {
		case unstable.Table, unstable.ArrayTable:
			table = keyPath(expr)
			record(table)
		case unstable.KeyValue:
			path := append(append([]string{}, table...), keyPath(expr)...)
			record(path)
			if len(path) == 1 && path[0] == installationKey {
				recordInline(expr.Value(), record)
			}
		}
	}

	if len(order) < len(groups) {
		var rest []string
		for name := range groups {
			if !seen[name] {
				rest = append(rest, name)
			}
		}
		sort.Strings(rest)
		order = append(order, rest...)
	}
	return order
}

// recordInline handles `installation = { a = {...}, b = {...} }`
func recordInline(value *unstable.Node, record func([]string)) {
	if value == nil || value.Kind != unstable.InlineTable {
		return
	}
	it := value.Children()
	for it.Next() {
		kv := it.Node()
		if kv.Kind == unstable.KeyValue {
			record(append([]string{installationKey}, keyPath(kv)...))
		}
	}
}

func keyPath(n *unstable.Node) []string {
	var path []string
	it := n.Key()
	for it.Next() {
		path = append(path, string(it.Node().Data))
	}
	return path
}

// marshalTOML renders m as TOML. Maps are written with sorted keys, so the
// group order of the output is alphabetical.
func marshalTOML(m *Manifest) ([]byte, error) {
	raw := tomlManifest{
		Dependencies:    m.Dependencies,
		OptDependencies: m.OptDependencies,
		Pre:             m.Pre,
		Post:            m.Post,
	}
	if len(m.Installation) > 0 {
		raw.Installation = make(map[string]InstallGroup, len(m.Installation))
		for _, ng := range m.Installation {
			raw.Installation[ng.Name] = ng.Group
		}
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
