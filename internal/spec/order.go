package spec

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// keyOrder remembers the declaration order of object keys in the raw
// document. kin-openapi decodes objects into Go maps, so paths, properties,
// responses and content types would otherwise come out in random order.
type keyOrder struct {
	root *yaml.Node
}

func parseKeyOrder(raw []byte) (*keyOrder, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse spec: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse spec: document root is not an object")
	}
	return &keyOrder{root: root}, nil
}

// keys returns the keys of the object found by walking segs from the root,
// or nil when any segment is missing.
func (k *keyOrder) keys(segs ...string) []string {
	if k == nil {
		return nil
	}
	node := k.root
	for _, seg := range segs {
		node = mappingValue(node, seg)
		if node == nil {
			return nil
		}
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	out := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		out = append(out, node.Content[i].Value)
	}
	return out
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// pointerSegments splits a local reference like "#/components/schemas/a~1b"
// into unescaped segments. Non-local references yield nil.
func pointerSegments(ref string) []string {
	if !strings.HasPrefix(ref, "#/") {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(ref, "#/"), "/")
	for i, p := range parts {
		p = strings.ReplaceAll(p, "~1", "/")
		parts[i] = strings.ReplaceAll(p, "~0", "~")
	}
	return parts
}

// orderedKeys returns the keys of m in declaration order. Keys the order does
// not know about (documents built in memory) follow in sorted order.
func orderedKeys[V any](m map[string]V, order []string) []string {
	out := make([]string, 0, len(m))
	seen := make(map[string]struct{}, len(m))
	for _, k := range order {
		if _, ok := m[k]; !ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	if len(out) == len(m) {
		return out
	}
	rest := make([]string, 0, len(m)-len(out))
	for k := range m {
		if _, ok := seen[k]; !ok {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func escapePointer(seg string) string {
	seg = strings.ReplaceAll(seg, "~", "~0")
	return strings.ReplaceAll(seg, "/", "~1")
}
