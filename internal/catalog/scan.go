package catalog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/arcanaland/showcase/internal/item"
)

var (
	exampleHeader = regexp.MustCompile(`example\s+-\s+(.+)$`)
	gameHeader    = regexp.MustCompile(`sample game:\s+(.+)$`)
)

// ScanOptions controls how an examples tree is turned into a catalog
type ScanOptions struct {
	ID           string
	Name         string
	Viewer       string
	ImagePattern string
	// Categories restricts and orders the scanned category directories.
	// Empty means every directory, alphabetically.
	Categories []string
}

// Scan builds a catalog from an examples tree laid out as
// <root>/<category>/<category>_<name>.c. Descriptions come from the source
// header comment, falling back to the name with underscores as spaces.
func Scan(root string, opts ScanOptions) (*Catalog, error) {
	categories := opts.Categories
	if len(categories) == 0 {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("error reading examples directory: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				categories = append(categories, entry.Name())
			}
		}
		sort.Strings(categories)
	}

	f := File{
		Gallery: GallerySection{
			ID:           opts.ID,
			Name:         opts.Name,
			Kind:         "examples",
			Viewer:       opts.Viewer,
			ImagePattern: opts.ImagePattern,
		},
	}
	if f.Gallery.ID == "" {
		f.Gallery.ID = filepath.Base(root)
	}
	if f.Gallery.Name == "" {
		f.Gallery.Name = f.Gallery.ID
	}

	for _, category := range categories {
		dir := filepath.Join(root, category)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error reading category %s: %w", category, err)
		}

		var names []string
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || filepath.Ext(name) != ".c" || !strings.HasPrefix(name, category+item.Delimiter) {
				continue
			}
			names = append(names, strings.TrimSuffix(name, ".c"))
		}
		if len(names) == 0 {
			continue
		}
		sort.Strings(names)

		f.Gallery.Categories = append(f.Gallery.Categories, category)
		for _, id := range names {
			description, err := readDescription(filepath.Join(dir, id+".c"))
			if err != nil {
				return nil, err
			}
			if description == "" {
				description = fallbackDescription(id)
			}
			f.IDs = append(f.IDs, id)
			f.Descriptions = append(f.Descriptions, description)
		}
	}

	return FromFile(f)
}

// readDescription extracts the description from the leading comment block
func readDescription(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("error opening %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	inComment := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "/*") {
			inComment = true
		}
		if !inComment {
			if line == "" {
				continue
			}
			// Code before any header comment
			return "", nil
		}

		text := strings.TrimSpace(strings.TrimLeft(line, "/* "))
		for _, re := range []*regexp.Regexp{exampleHeader, gameHeader} {
			if m := re.FindStringSubmatch(text); m != nil {
				return strings.TrimSpace(m[1]), nil
			}
		}

		if strings.HasSuffix(line, "*/") {
			return "", nil
		}
	}
	return "", scanner.Err()
}

func fallbackDescription(id string) string {
	_, rest, _ := strings.Cut(id, item.Delimiter)
	return strings.ReplaceAll(rest, item.Delimiter, " ")
}
