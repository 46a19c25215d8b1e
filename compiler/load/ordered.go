package load

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"strconv"

	"gopkg.in/yaml.v3"
)

// keyed is implemented by values that remember the mapping key they were
// declared under. It is used to fill empty names from object keys and to
// derive keys from list-form declarations.
type keyed interface {
	mapKey() string
	setMapKey(string)
}

// OrderedMap is a string-keyed mapping that preserves declaration order.
// Model documents declare members as objects, and the generated sources must
// list them in the order they were written.
//
// A mapping may also be written as a list of values; in that case the key of
// each element is its name.
type OrderedMap[V any] struct {
	keys  []string
	items map[string]V
}

// NewOrderedMap returns an empty mapping.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{}
}

// Len returns the number of entries. It is safe to call on a nil mapping.
func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in declaration order.
func (m *OrderedMap[V]) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Get returns the value stored under key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	var zero V
	if m == nil || m.items == nil {
		return zero, false
	}
	v, ok := m.items[key]
	return v, ok
}

// Set stores v under key. A new key is appended, an existing key keeps its position.
func (m *OrderedMap[V]) Set(key string, v V) {
	if m.items == nil {
		m.items = make(map[string]V)
	}
	if _, ok := m.items[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.items[key] = v
}

// All iterates over the entries in declaration order.
func (m *OrderedMap[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.items[k]) {
				return
			}
		}
	}
}

// Values returns the values in declaration order.
func (m *OrderedMap[V]) Values() []V {
	if m == nil {
		return nil
	}
	vs := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		vs = append(vs, m.items[k])
	}
	return vs
}

// MarshalJSON encodes the mapping as a JSON object in declaration order.
func (m *OrderedMap[V]) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.items[k])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		b.Write(kb)
		b.WriteByte(':')
		b.Write(vb)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object (keeping key order) or a list of named values.
func (m *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	*m = OrderedMap[V]{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch tok {
	case nil:
		return nil
	case json.Delim('{'):
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return err
			}
			key, _ := kt.(string)
			var v V
			if err := dec.Decode(&v); err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}
			m.add(key, v)
		}
	case json.Delim('['):
		for i := 0; dec.More(); i++ {
			var v V
			if err := dec.Decode(&v); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
			m.Set(elementKey(v, i), v)
		}
	default:
		return fmt.Errorf("expected object or array, got %v", tok)
	}
	_, err = dec.Token()
	return err
}

// UnmarshalYAML decodes a YAML mapping (keeping key order) or a sequence of named values.
func (m *OrderedMap[V]) UnmarshalYAML(node *yaml.Node) error {
	*m = OrderedMap[V]{}
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			var v V
			if err := node.Content[i+1].Decode(&v); err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}
			m.add(key, v)
		}
	case yaml.SequenceNode:
		for i, n := range node.Content {
			var v V
			if err := n.Decode(&v); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
			m.Set(elementKey(v, i), v)
		}
	case yaml.ScalarNode:
		if node.Tag != "!!null" {
			return fmt.Errorf("line %d: expected mapping or sequence", node.Line)
		}
	default:
		return fmt.Errorf("line %d: expected mapping or sequence", node.Line)
	}
	return nil
}

func (m *OrderedMap[V]) add(key string, v V) {
	if k, ok := any(v).(keyed); ok && k.mapKey() == "" {
		k.setMapKey(key)
	}
	m.Set(key, v)
}

// elementKey returns the key of a list-form element. Elements without a name
// keep their position as key, so the projector can report them.
func elementKey(v any, i int) string {
	if k, ok := v.(keyed); ok {
		if name := k.mapKey(); name != "" {
			return name
		}
	}
	return "#" + strconv.Itoa(i)
}
