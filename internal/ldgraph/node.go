package ldgraph

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Node is a single JSON-LD node object.
type Node map[string]any

func (n Node) ID() string {
	id, _ := n["@id"].(string)
	return id
}

// Types returns the node's @type values, whether given as a string or a list.
func (n Node) Types() []string {
	switch t := n["@type"].(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return t
	}
	return nil
}

// TypeName is the sort key of the node: its first type, or "".
func (n Node) TypeName() string {
	if types := n.Types(); len(types) > 0 {
		return types[0]
	}
	return ""
}

func (n Node) HasType(typ string) bool {
	for _, t := range n.Types() {
		if t == typ {
			return true
		}
	}
	return false
}

func (n Node) Ref(prop string) Ref {
	return RefOf(n[prop])
}

// Refs returns every reference held by prop, in order.
func (n Node) Refs(prop string) []Ref {
	v, ok := n[prop]
	if !ok || v == nil {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		list = []any{v}
	}

	out := make([]Ref, 0, len(list))
	for _, item := range list {
		if r := RefOf(item); !r.IsAbsent() {
			out = append(out, r)
		}
	}
	return out
}

// Int reads an integer literal from prop.
func (n Node) Int(prop string) (int, bool) {
	return toInt(n[prop])
}

// Clone returns a deep copy of the node.
func (n Node) Clone() Node {
	return Node(deepCopy(map[string]any(n)).(map[string]any))
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		if t != float64(int(t)) {
			return 0, false
		}
		return int(t), true
	case json.Number:
		i, err := strconv.Atoi(t.String())
		return i, err == nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(t))
		return i, err == nil
	case map[string]any:
		return toInt(t["@value"])
	case []any:
		if len(t) == 1 {
			return toInt(t[0])
		}
	}
	return 0, false
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = deepCopy(val)
		}
		return out
	case Node:
		return deepCopy(map[string]any(t))
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = deepCopy(val)
		}
		return out
	default:
		return v
	}
}
