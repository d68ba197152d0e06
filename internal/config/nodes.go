package config

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// ValidationError describes a document that parses but does not match the
// srvm.yaml schema.
type ValidationError struct {
	// Path is the dotted location of the offending node, e.g.
	// "environments.prod.service". Empty for the document root.
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return e.Path + ": " + e.Reason
}

func invalid(path, reason string) *ValidationError {
	return &ValidationError{Path: path, Reason: reason}
}

// joinPath appends a key to a dotted document path.
func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	if strings.ContainsAny(key, ". ") {
		key = `"` + key + `"`
	}
	return parent + "." + key
}

// resolve follows YAML aliases to the node they point at.
func resolve(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}

func isMapping(node *yaml.Node) bool {
	node = resolve(node)
	return node != nil && node.Kind == yaml.MappingNode
}

func isString(node *yaml.Node) bool {
	node = resolve(node)
	return node != nil && node.Kind == yaml.ScalarNode && node.ShortTag() == "!!str"
}

// mapEntry is one key/value pair of a mapping node.
type mapEntry struct {
	Key   *yaml.Node
	Value *yaml.Node
}

// mapEntries returns the pairs of a mapping node in document order.
func mapEntries(node *yaml.Node) []mapEntry {
	node = resolve(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}

	entries := make([]mapEntry, 0, len(node.Content)/2)
	for i := 0; i < len(node.Content)-1; i += 2 {
		entries = append(entries, mapEntry{
			Key:   resolve(node.Content[i]),
			Value: resolve(node.Content[i+1]),
		})
	}
	return entries
}

// findMapValue finds a value in a mapping node by key name. When a key is
// repeated the last occurrence wins.
func findMapValue(node *yaml.Node, key string) *yaml.Node {
	var found *yaml.Node
	for _, e := range mapEntries(node) {
		if isString(e.Key) && e.Key.Value == key {
			found = e.Value
		}
	}
	return found
}

func isNull(node *yaml.Node) bool {
	node = resolve(node)
	return node != nil && node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}

// findOptionalValue is findMapValue for optional keys: an explicit null
// (`key: ~`, `key:`) reads as absent.
func findOptionalValue(node *yaml.Node, key string) *yaml.Node {
	value := findMapValue(node, key)
	if isNull(value) {
		return nil
	}
	return value
}
