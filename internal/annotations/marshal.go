package annotations

import (
	"bytes"
	"encoding/json"
	"strconv"

	"gopkg.in/yaml.v3"
)

// EntryKeys returns the key each group entry is addressed by: its own key,
// or its index among the positional entries.
func EntryKeys(entries []Entry) []string {
	keys := make([]string, len(entries))
	position := 0
	for i, e := range entries {
		if e.HasKey {
			keys[i] = e.Key
			continue
		}
		keys[i] = strconv.Itoa(position)
		position++
	}
	return keys
}

// CollapseEntries indexes group entries by EntryKeys. A repeated key keeps
// the position of its first entry and the value of its last, matching
// Value.Lookup.
func CollapseEntries(entries []Entry) (order []string, byKey map[string]Entry) {
	keys := EntryKeys(entries)
	order = make([]string, 0, len(entries))
	byKey = make(map[string]Entry, len(entries))
	for i, key := range keys {
		if _, seen := byKey[key]; !seen {
			order = append(order, key)
		}
		byKey[key] = entries[i]
	}
	return order, byKey
}

func allPositional(entries []Entry) bool {
	for _, e := range entries {
		if e.HasKey {
			return false
		}
	}
	return true
}

// MarshalJSON encodes groups as objects in entry order; a group with only
// positional entries becomes an array.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case BoolKind:
		return json.Marshal(v.boolean)
	case StringKind:
		return json.Marshal(v.text)
	case NumberKind:
		if json.Valid([]byte(v.text)) {
			return []byte(v.text), nil
		}
		return json.Marshal(v.number)
	case NullKind:
		return []byte("null"), nil
	case ListKind:
		return json.Marshal(v.list)
	case GroupKind:
		if allPositional(v.entries) {
			items := make([]Value, len(v.entries))
			for i, e := range v.entries {
				items[i] = e.Value
			}
			return json.Marshal(items)
		}
		order, byKey := CollapseEntries(v.entries)
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, key := range order {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONField(&buf, key, byKey[key].Value); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return []byte("null"), nil
	}
}

// MarshalJSON encodes the map as an object in first-appearance order
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	var err error
	m.Range(func(name string, value Value) bool {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		err = writeJSONField(&buf, name, value)
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONField(buf *bytes.Buffer, key string, value Value) error {
	encodedKey, err := json.Marshal(key)
	if err != nil {
		return err
	}
	encodedValue, err := value.MarshalJSON()
	if err != nil {
		return err
	}
	buf.Write(encodedKey)
	buf.WriteByte(':')
	buf.Write(encodedValue)
	return nil
}

// MarshalYAML encodes the value as an ordered YAML node
func (v Value) MarshalYAML() (interface{}, error) {
	return v.yamlNode(), nil
}

// MarshalYAML encodes the map as an ordered YAML mapping
func (m *Map) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	m.Range(func(name string, value Value) bool {
		node.Content = append(node.Content, yamlString(name), value.yamlNode())
		return true
	})
	return node, nil
}

func (v Value) yamlNode() *yaml.Node {
	switch v.kind {
	case BoolKind:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.boolean)}
	case StringKind:
		return yamlString(v.text)
	case NumberKind:
		tag := "!!float"
		if _, err := strconv.ParseInt(v.text, 10, 64); err == nil {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.text}
	case ListKind:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.list {
			node.Content = append(node.Content, item.yamlNode())
		}
		return node
	case GroupKind:
		if allPositional(v.entries) {
			node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for _, e := range v.entries {
				node.Content = append(node.Content, e.Value.yamlNode())
			}
			return node
		}
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		order, byKey := CollapseEntries(v.entries)
		for _, key := range order {
			node.Content = append(node.Content, yamlString(key), byKey[key].Value.yamlNode())
		}
		return node
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func yamlString(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
