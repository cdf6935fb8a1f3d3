// Package formats decodes and encodes JSON documents while keeping the key
// order of every object, so a rewritten manifest only differs where values
// changed.
package formats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/iancoleman/orderedmap"
)

// jsonUnmarshalFunc is a variable that holds the json.Unmarshal function.
// This allows for dependency injection during testing.
var jsonUnmarshalFunc = json.Unmarshal

// DecodeObject decodes content into an ordered map.
//
// The top-level value must be a JSON object. Nested objects are returned in
// whatever representation orderedmap produces; use AsObject to read them.
//
// Parameters:
//   - content: Raw JSON bytes
//
// Returns:
//   - *orderedmap.OrderedMap: The decoded object with key order preserved
//   - error: Invalid JSON or a non-object top-level value
func DecodeObject(content []byte) (*orderedmap.OrderedMap, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("invalid JSON: top-level value is not an object")
	}

	data := orderedmap.New()
	if err := jsonUnmarshalFunc(trimmed, data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return data, nil
}

// AsObject returns v as an ordered map when it holds a JSON object.
//
// orderedmap stores nested objects by value, and callers may have stored
// pointers or plain maps, so all three forms are accepted. A plain map has no
// order of its own; its keys are sorted to keep output deterministic.
//
// Parameters:
//   - v: A value read from an ordered map
//
// Returns:
//   - *orderedmap.OrderedMap: The object, or nil
//   - bool: true if v is an object
func AsObject(v interface{}) (*orderedmap.OrderedMap, bool) {
	switch m := v.(type) {
	case *orderedmap.OrderedMap:
		return m, m != nil
	case orderedmap.OrderedMap:
		copied := m
		return &copied, true
	case map[string]interface{}:
		converted := orderedmap.New()
		keys := make([]string, 0, len(m))
		for key := range m {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			converted.Set(key, m[key])
		}
		return converted, true
	default:
		return nil, false
	}
}

// ObjectField returns the object stored under key in parent.
//
// When the stored value is not already a pointer it is replaced by the
// returned pointer, so changes made through it are visible when parent is
// encoded.
//
// Parameters:
//   - parent: The containing object
//   - key: Field name
//
// Returns:
//   - *orderedmap.OrderedMap: The nested object, or nil
//   - bool: true if key exists and holds an object
func ObjectField(parent *orderedmap.OrderedMap, key string) (*orderedmap.OrderedMap, bool) {
	raw, ok := parent.Get(key)
	if !ok {
		return nil, false
	}
	obj, ok := AsObject(raw)
	if !ok {
		return nil, false
	}
	if _, isPtr := raw.(*orderedmap.OrderedMap); !isPtr {
		parent.Set(key, obj)
	}
	return obj, true
}

// EncodeObject marshals data with two-space indentation, no HTML escaping and a
// trailing newline.
//
// Parameters:
//   - data: The object to encode
//
// Returns:
//   - []byte: Encoded JSON
//   - error: Encoding failure
func EncodeObject(data *orderedmap.OrderedMap) ([]byte, error) {
	disableOrderedMapEscape(data)

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// disableOrderedMapEscape recursively disables HTML escaping for an ordered
// map and all nested maps, converting nested values to pointers on the way.
func disableOrderedMapEscape(m *orderedmap.OrderedMap) {
	m.SetEscapeHTML(false)
	for _, key := range m.Keys() {
		val, _ := m.Get(key)
		m.Set(key, normalizeOrderedMapEscaping(val))
	}
}

func normalizeOrderedMapEscaping(val interface{}) interface{} {
	switch v := val.(type) {
	case *orderedmap.OrderedMap:
		disableOrderedMapEscape(v)
		return v
	case orderedmap.OrderedMap:
		copied := v
		disableOrderedMapEscape(&copied)
		return &copied
	case []interface{}:
		for i, item := range v {
			v[i] = normalizeOrderedMapEscaping(item)
		}
		return v
	default:
		return val
	}
}
