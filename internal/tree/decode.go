package tree

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decode reads raw tree data from r. format is "json" or "yaml". The
// document may be either a single root object or a sequence of roots; a
// single object is wrapped so callers always get a sequence.
func Decode(r io.Reader, format string) ([]RawNode, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read tree data: %w", err)
	}

	switch strings.ToLower(format) {
	case "json":
		return decodeJSON(data)
	case "yaml", "yml":
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported tree format %q", format)
	}
}

// Load reads a tree file, picking the format from the extension. Files
// without a recognized extension are treated as JSON.
func Load(path string) ([]RawNode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	format := "json"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	}
	nodes, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nodes, nil
}

func decodeJSON(data []byte) ([]RawNode, error) {
	trimmed := strings.TrimLeftFunc(string(data), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if strings.HasPrefix(trimmed, "[") {
		var nodes []RawNode
		if err := json.Unmarshal(data, &nodes); err != nil {
			return nil, fmt.Errorf("decode json tree: %w", err)
		}
		return nodes, nil
	}
	var node RawNode
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("decode json tree: %w", err)
	}
	return []RawNode{node}, nil
}

func decodeYAML(data []byte) ([]RawNode, error) {
	var nodes []RawNode
	if err := yaml.Unmarshal(data, &nodes); err == nil {
		return nodes, nil
	}
	var node RawNode
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("decode yaml tree: %w", err)
	}
	return []RawNode{node}, nil
}
