package catalog

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed builtin/*.toml
var builtinFS embed.FS

// BuiltinNames lists the catalogs bundled with the binary
func BuiltinNames() []string {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".toml"))
	}
	sort.Strings(names)
	return names
}

// Builtin loads a bundled catalog by name
func Builtin(name string) (*Catalog, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".toml")
	if err != nil {
		return nil, fmt.Errorf("builtin catalog not found: %s", name)
	}
	c, err := Decode(bytes.NewReader(data), FormatTOML)
	if err != nil {
		return nil, fmt.Errorf("error parsing builtin catalog %s: %w", name, err)
	}
	return c, nil
}

// ResolvePath returns the path to a catalog, either in the catalog library or a relative path
func ResolvePath(libraryPath, name string) (string, error) {
	// First, try to find the catalog in the library
	for _, ext := range []string{"", ".toml", ".yaml", ".yml"} {
		path := filepath.Join(libraryPath, name+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}

	// If not found in the library, treat as a relative path
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return name, nil
	}

	return "", fmt.Errorf("catalog not found: %s", name)
}

// Open loads a catalog by library name, file path, or builtin name
func Open(libraryPath, name string) (*Catalog, error) {
	path, err := ResolvePath(libraryPath, name)
	if err == nil {
		return Load(path)
	}

	for _, builtin := range BuiltinNames() {
		if builtin == name {
			return Builtin(name)
		}
	}

	return nil, err
}

// Entry describes one catalog found in the library
type Entry struct {
	Name    string
	Path    string
	Catalog *Catalog
	Err     error
}

// List returns every catalog file in the library, in name order
func List(libraryPath string) ([]Entry, error) {
	entries, err := os.ReadDir(libraryPath)
	if err != nil {
		return nil, err
	}

	var result []Entry
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".toml", ".yaml", ".yml":
		default:
			continue
		}

		path := filepath.Join(libraryPath, entry.Name())
		c, err := Load(path)
		result = append(result, Entry{
			Name:    strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			Path:    path,
			Catalog: c,
			Err:     err,
		})
	}
	return result, nil
}
