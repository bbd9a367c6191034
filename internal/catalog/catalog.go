package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/arcanaland/showcase/internal/item"
)

var (
	// ErrListMismatch is returned when the ids and descriptions lists differ in length
	ErrListMismatch = errors.New("ids and descriptions are not parallel")
	// ErrItemNotFound is returned by Item for unknown identifiers
	ErrItemNotFound = errors.New("item not found")
)

const (
	DefaultViewer       = "loader.html"
	DefaultImagePattern = "{category}/{id}.png"
)

// Format is a catalog file encoding
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor picks the encoding from a file extension, defaulting to TOML
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// File is the on-disk shape of a catalog
type File struct {
	IDs          []string             `toml:"ids" yaml:"ids"`
	Descriptions []string             `toml:"descriptions" yaml:"descriptions"`
	Gallery      GallerySection       `toml:"gallery" yaml:"gallery"`
	Links        map[string]LinkEntry `toml:"links,omitempty" yaml:"links,omitempty"`
}

type GallerySection struct {
	ID                 string   `toml:"id" yaml:"id"`
	Name               string   `toml:"name" yaml:"name"`
	Kind               string   `toml:"kind,omitempty" yaml:"kind,omitempty"`
	Intro              string   `toml:"intro,omitempty" yaml:"intro,omitempty"`
	Viewer             string   `toml:"viewer,omitempty" yaml:"viewer,omitempty"`
	ImagePattern       string   `toml:"image_pattern,omitempty" yaml:"image_pattern,omitempty"`
	Categories         []string `toml:"categories,omitempty" yaml:"categories,omitempty"`
	DispatchCategories []string `toml:"dispatch_categories,omitempty" yaml:"dispatch_categories,omitempty"`
}

// LinkEntry is one row of the identifier dispatch table
type LinkEntry struct {
	Kind   string `toml:"kind" yaml:"kind"`
	Target string `toml:"target" yaml:"target"`
}

// Catalog is a loaded gallery table. It is read-only once built.
type Catalog struct {
	ID          string
	Name        string
	Description string // Intro markdown
	Path        string

	file File
}

// FromFile builds a catalog from decoded file contents
func FromFile(f File) (*Catalog, error) {
	if len(f.IDs) != len(f.Descriptions) {
		return nil, fmt.Errorf("%w: %d ids, %d descriptions", ErrListMismatch, len(f.IDs), len(f.Descriptions))
	}

	if f.Gallery.Viewer == "" {
		f.Gallery.Viewer = DefaultViewer
	}
	if f.Gallery.ImagePattern == "" {
		f.Gallery.ImagePattern = DefaultImagePattern
	}

	return &Catalog{
		ID:          f.Gallery.ID,
		Name:        f.Gallery.Name,
		Description: f.Gallery.Intro,
		file:        f,
	}, nil
}

// Load loads a catalog from a TOML or YAML file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading catalog: %w", err)
	}

	c, err := Decode(bytes.NewReader(data), FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	c.Path = path
	if c.ID == "" {
		c.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return c, nil
}

// Decode reads a catalog in the given format
func Decode(r io.Reader, format Format) (*Catalog, error) {
	var f File
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		md, err := toml.NewDecoder(r).Decode(&f)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown keys: %v", undecoded)
		}
	}
	return FromFile(f)
}

// Encode writes the catalog in the given format
func (c *Catalog) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c.file); err != nil {
			return err
		}
		return enc.Close()
	default:
		return toml.NewEncoder(w).Encode(c.file)
	}
}

// Save writes the catalog to path, picking the format from the extension
func (c *Catalog) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating catalog file: %w", err)
	}
	defer file.Close()

	if err := c.Encode(file, FormatFor(path)); err != nil {
		return fmt.Errorf("error encoding catalog: %w", err)
	}
	return nil
}

// File returns a copy of the raw catalog contents
func (c *Catalog) File() File {
	f := c.file
	f.IDs = append([]string(nil), c.file.IDs...)
	f.Descriptions = append([]string(nil), c.file.Descriptions...)
	f.Gallery.Categories = append([]string(nil), c.file.Gallery.Categories...)
	f.Gallery.DispatchCategories = append([]string(nil), c.file.Gallery.DispatchCategories...)
	f.Links = make(map[string]LinkEntry, len(c.file.Links))
	for k, v := range c.file.Links {
		f.Links[k] = v
	}
	return f
}

// Len returns the number of items
func (c *Catalog) Len() int {
	return len(c.file.IDs)
}

// Items returns the gallery items in list order. Items whose ID has no
// category prefix are returned with an empty Category.
func (c *Catalog) Items() []item.Item {
	items := make([]item.Item, 0, len(c.file.IDs))
	for i, id := range c.file.IDs {
		it := item.Item{ID: id, Description: c.file.Descriptions[i]}
		if category, err := item.ParseCategory(id); err == nil {
			it.Category = category
		}
		items = append(items, it)
	}
	return items
}

// Item gets an item by its identifier
func (c *Catalog) Item(id string) (item.Item, error) {
	for _, it := range c.Items() {
		if it.ID == id {
			return it, nil
		}
	}
	return item.Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

// Categories returns the declared categories, or the ones used by items
// in first-seen order when none are declared
func (c *Catalog) Categories() []item.Category {
	var categories []item.Category
	if len(c.file.Gallery.Categories) > 0 {
		for _, name := range c.file.Gallery.Categories {
			categories = append(categories, item.Category(name))
		}
		return categories
	}

	seen := make(map[item.Category]bool)
	for _, it := range c.Items() {
		if it.Category == "" || seen[it.Category] {
			continue
		}
		seen[it.Category] = true
		categories = append(categories, it.Category)
	}
	return categories
}

// DispatchCategories returns the categories whose items must have a link entry
func (c *Catalog) DispatchCategories() []item.Category {
	var categories []item.Category
	for _, name := range c.file.Gallery.DispatchCategories {
		categories = append(categories, item.Category(name))
	}
	return categories
}
