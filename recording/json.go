package recording

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// containerKey is the optional top-level wrapper of a bus log export.
const containerKey = "FlexRay"

// parseJSON reads a nested export of the form
//
//	{"FlexRay": {"Time": [...], "EML": {"EML_PositionX": [...], ...}, ...}}
//
// The wrapper is optional and declared fields may also appear at the top
// level. Columns are either flat ([v, ...]) or column vectors ([[v], ...]).
func parseJSON(data []byte, schema *Schema) (map[string][]float64, []string, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, nil, fmt.Errorf("decode json object: %w", err)
	}

	var ignored []string
	if inner, ok := root[containerKey]; ok {
		var container map[string]json.RawMessage
		if err := json.Unmarshal(inner, &container); err != nil {
			return nil, nil, fmt.Errorf("decode %s container: %w", containerKey, err)
		}
		for key := range root {
			if key != containerKey {
				ignored = append(ignored, key)
			}
		}
		root = container
	}

	cols := make(map[string][]float64)
	for _, key := range sortedKeys(root) {
		raw := root[key]

		group, isGroup := schema.group(key)
		switch {
		case isGroup && len(group.Fields) == 0:
			col, err := decodeColumn(raw)
			if err != nil {
				return nil, nil, fmt.Errorf("signal %s: %w", key, err)
			}
			cols[key] = col

		case isGroup:
			var fields map[string]json.RawMessage
			if err := json.Unmarshal(raw, &fields); err != nil {
				return nil, nil, fmt.Errorf("group %s: %w", key, err)
			}
			for _, name := range sortedKeys(fields) {
				if g, ok := schema.Knows(name); !ok || g != key {
					ignored = append(ignored, key+"/"+name)
					continue
				}
				col, err := decodeColumn(fields[name])
				if err != nil {
					return nil, nil, fmt.Errorf("signal %s: %w", name, err)
				}
				cols[name] = col
			}

		default:
			if _, ok := schema.Knows(key); !ok {
				ignored = append(ignored, key)
				continue
			}
			col, err := decodeColumn(raw)
			if err != nil {
				return nil, nil, fmt.Errorf("signal %s: %w", key, err)
			}
			cols[key] = col
		}
	}
	return cols, ignored, nil
}

func decodeColumn(raw json.RawMessage) ([]float64, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("expected an array of samples: %w", err)
	}
	out := make([]float64, len(items))
	for i, item := range items {
		v, err := decodeSample(item)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// decodeSample accepts a number, null (read as 0) or a single-element array.
func decodeSample(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	switch {
	case bytes.Equal(raw, []byte("null")):
		return 0, nil
	case len(raw) > 0 && raw[0] == '[':
		var inner []json.RawMessage
		if err := json.Unmarshal(raw, &inner); err != nil {
			return 0, err
		}
		if len(inner) != 1 {
			return 0, fmt.Errorf("expected a single value, got %d", len(inner))
		}
		return decodeSample(inner[0])
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, err
	}
	return v, nil
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
