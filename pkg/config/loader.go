// Package config reads declarative diagram configurations from TOML, JSON
// or YAML files into the raw nested mapping the graph builder consumes. It
// owns no schema knowledge: whatever the file says is handed over untouched
// and pkg/graph normalizes it.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a supported configuration encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks the format for a file name by extension. Unknown
// extensions report false so the caller can fall back to sniffing.
func FormatForPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	}
	return "", false
}

// LoadFile reads and decodes one configuration file.
func LoadFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	format, ok := FormatForPath(path)
	if !ok {
		format = sniff(data)
	}
	cfg, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Load decodes configuration data from a reader in the given format.
func Load(r io.Reader, format Format) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Decode(data, format)
}

// Decode unmarshals raw bytes in the given format into the generic mapping
// shape. YAML handles JSON input too, so FormatJSON shares its decoder; the
// distinct constant exists for callers that care about the declared format.
func Decode(data []byte, format Format) (map[string]any, error) {
	out := make(map[string]any)
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &out); err != nil {
			return nil, err
		}
	case FormatYAML, FormatJSON:
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
	return out, nil
}

// sniff guesses the format of extension-less input: JSON documents open
// with a brace, TOML sections with a bracket, everything else is YAML.
func sniff(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 {
		switch trimmed[0] {
		case '{':
			return FormatJSON
		case '[':
			return FormatTOML
		}
	}
	return FormatYAML
}
