package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// NamedGroup is one entry of the installation mapping
type NamedGroup struct {
	Name  string
	Group InstallGroup
}

// Groups is the installation mapping in file order
type Groups []NamedGroup

// Get returns the group called name
func (g Groups) Get(name string) (InstallGroup, bool) {
	for _, ng := range g {
		if ng.Name == name {
			return ng.Group, true
		}
	}
	return InstallGroup{}, false
}

// Names returns the group names in order
func (g Groups) Names() []string {
	names := make([]string, 0, len(g))
	for _, ng := range g {
		names = append(names, ng.Name)
	}
	return names
}

// set replaces an existing group in place or appends a new one. A key
// repeated in a document keeps its first position and its last value.
func (g *Groups) set(name string, group InstallGroup) {
	for i := range *g {
		if (*g)[i].Name == name {
			(*g)[i].Group = group
			return
		}
	}
	*g = append(*g, NamedGroup{Name: name, Group: group})
}

// UnmarshalJSON walks the object tokens so that key order survives
func (g *Groups) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*g = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("installation must be an object, got %v", tok)
	}

	var out Groups
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected installation key %v", tok)
		}

		var group InstallGroup
		if err := dec.Decode(&group); err != nil {
			return fmt.Errorf("group %q: %w", name, err)
		}
		out.set(name, group)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	*g = out
	return nil
}

// MarshalJSON writes the groups as an object in order
func (g Groups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ng := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(ng.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(ng.Group)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML reads the mapping node pairs in document order
func (g *Groups) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		*g = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: installation must be a mapping", value.Line)
	}

	var out Groups
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, node := value.Content[i], value.Content[i+1]
		var group InstallGroup
		if err := node.Decode(&group); err != nil {
			return fmt.Errorf("group %q: %w", key.Value, err)
		}
		out.set(key.Value, group)
	}
	*g = out
	return nil
}

// MarshalYAML emits an ordered mapping node
func (g Groups) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, ng := range g {
		value := &yaml.Node{}
		if err := value.Encode(ng.Group); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: ng.Name},
			value,
		)
	}
	return node, nil
}

func parseJSON(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func marshalJSON(m *Manifest) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func parseYAML(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func marshalYAML(m *Manifest) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
