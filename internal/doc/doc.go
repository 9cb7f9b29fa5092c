// Package doc models an externally supplied, weakly typed document as a
// generic tree. The shape of inbound OpenAPI-style documents is only
// partially validated, so nothing here assumes a fixed record layout:
// every accessor tolerates missing or wrongly shaped fields and reports
// absence instead of failing.
package doc

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Map is a string-keyed mapping that preserves the source document's key
// order. Values are one of: string, bool, int64, float64, nil, *Map, or
// []any (whose elements are again of these types).
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// Set inserts or replaces a key. First insertion fixes the key's position.
func (m *Map) Set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the raw value for key and whether it was present.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present, regardless of its value.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns the keys in source order. The returned slice is shared;
// callers must not mutate it.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Map returns the child mapping at key, or ok=false when the key is
// absent or its value is not a mapping.
func (m *Map) Map(key string) (*Map, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	child, ok := v.(*Map)
	return child, ok
}

// Seq returns the sequence at key, or ok=false when the key is absent or
// its value is not a sequence.
func (m *Map) Seq(key string) ([]any, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	seq, ok := v.([]any)
	return seq, ok
}

// Str returns the string at key, or ok=false when the key is absent or
// its value is not a string.
func (m *Map) Str(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// StrOr returns the string at key, or def when the key is absent, not a
// string, or empty.
func (m *Map) StrOr(key, def string) string {
	s, ok := m.Str(key)
	if !ok || s == "" {
		return def
	}
	return s
}

// Parse decodes YAML or JSON bytes into a Map, preserving mapping key
// order. JSON is a subset of YAML, so a single decoder covers both.
// The document root must be a mapping.
func Parse(data []byte) (*Map, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("doc: parse document: %w", err)
	}
	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, fmt.Errorf("doc: empty document")
		}
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("doc: document root is not a mapping")
	}
	v, err := fromNode(node)
	if err != nil {
		return nil, err
	}
	return v.(*Map), nil
}

func fromNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.MappingNode:
		m := NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			key := keyNode.Value
			if keyNode.Kind != yaml.ScalarNode {
				// Non-scalar keys do not occur in JSON documents and
				// have no meaning for spec traversal; stringify them.
				key = fmt.Sprintf("%v", keyNode.Value)
			}
			val, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(key, val)
		}
		return m, nil
	case yaml.SequenceNode:
		seq := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			seq = append(seq, val)
		}
		return seq, nil
	case yaml.ScalarNode:
		return scalarValue(n), nil
	default:
		return nil, fmt.Errorf("doc: unsupported node kind %d", n.Kind)
	}
}

func scalarValue(n *yaml.Node) any {
	switch n.Tag {
	case "!!null":
		return nil
	case "!!bool":
		b, err := strconv.ParseBool(strings.ToLower(n.Value))
		if err != nil {
			return n.Value
		}
		return b
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 10, 64)
		if err != nil {
			return n.Value
		}
		return i
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return n.Value
		}
		return f
	default:
		return n.Value
	}
}
