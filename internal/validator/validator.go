package validator

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arcanaland/showcase/internal/catalog"
	"github.com/arcanaland/showcase/internal/item"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// OK reports whether validation found no errors
func (r ValidationResults) OK() bool {
	return len(r.Errors) == 0
}

type Validator struct {
	Catalog   *catalog.Catalog
	AssetsDir string
	Results   ValidationResults
}

func NewValidator(c *catalog.Catalog) *Validator {
	return &Validator{
		Catalog: c,
		Results: ValidationResults{},
	}
}

// WithAssets enables the thumbnail check against dir
func (v *Validator) WithAssets(dir string) *Validator {
	v.AssetsDir = dir
	return v
}

func (v *Validator) Validate() (ValidationResults, error) {
	if v.Catalog == nil {
		return v.Results, errors.New("no catalog to validate")
	}

	v.validateItems()
	v.validateCategories()
	v.validateLinks()
	if v.AssetsDir != "" {
		if err := v.validateThumbnails(); err != nil {
			return v.Results, err
		}
	}

	return v.Results, nil
}

func (v *Validator) errorf(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

// validateItems checks identifiers and descriptions
func (v *Validator) validateItems() {
	items := v.Catalog.Items()
	if len(items) == 0 {
		v.errorf("catalog has no items")
		return
	}

	seen := make(map[string]int)
	for i, it := range items {
		if prev, ok := seen[it.ID]; ok {
			v.errorf("duplicate identifier %s at positions %d and %d", it.ID, prev+1, i+1)
		} else {
			seen[it.ID] = i
		}

		if _, err := item.ParseCategory(it.ID); err != nil {
			v.errorf("item %d: %v", i+1, err)
			continue
		}

		if strings.TrimSpace(it.Description) == "" {
			v.warnf("item %s has an empty description", it.ID)
		}
	}
}

// validateCategories compares item categories with the declared set
func (v *Validator) validateCategories() {
	declared := v.Catalog.File().Gallery.Categories
	if len(declared) == 0 {
		return
	}

	known := make(map[item.Category]bool)
	for _, name := range declared {
		known[item.Category(name)] = true
	}

	used := make(map[item.Category]bool)
	undeclared := make(map[item.Category][]string)
	for _, it := range v.Catalog.Items() {
		if it.Category == "" {
			continue
		}
		used[it.Category] = true
		if !known[it.Category] {
			undeclared[it.Category] = append(undeclared[it.Category], it.ID)
		}
	}

	for _, category := range sortedCategories(undeclared) {
		v.warnf("category %s is not declared in gallery.categories: %s",
			category, strings.Join(undeclared[category], ", "))
	}

	for _, name := range declared {
		if !used[item.Category(name)] {
			v.warnf("declared category %s has no items", name)
		}
	}
}

// validateLinks checks the dispatch table for completeness and well-formed targets
func (v *Validator) validateLinks() {
	f := v.Catalog.File()

	ids := make(map[string]bool)
	for _, id := range f.IDs {
		ids[id] = true
	}

	dispatch := make(map[item.Category]bool)
	for _, category := range v.Catalog.DispatchCategories() {
		dispatch[category] = true
	}

	// Every item of a dispatch category needs an entry
	for _, it := range v.Catalog.Items() {
		if it.Category == "" || !dispatch[it.Category] {
			continue
		}
		if _, ok := f.Links[it.ID]; !ok {
			v.warnf("%v: %s has no entry in [links]", item.ErrUnresolvedLinkTarget, it.ID)
		}
	}

	linkIDs := make([]string, 0, len(f.Links))
	for id := range f.Links {
		linkIDs = append(linkIDs, id)
	}
	sort.Strings(linkIDs)

	for _, id := range linkIDs {
		entry := f.Links[id]
		if !ids[id] {
			v.warnf("link entry %s does not match any item", id)
		}

		kind, err := item.ParseLinkKind(entry.Kind)
		if err != nil {
			v.errorf("links.%s: %v", id, err)
			continue
		}

		if kind == item.ExternalLink {
			if entry.Target == "" {
				v.errorf("links.%s.target is required for external links", id)
				continue
			}
			u, err := url.Parse(entry.Target)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				v.errorf("links.%s.target is not an absolute http(s) URL: %s", id, entry.Target)
			}
		}
	}
}

// validateThumbnails checks that every item has an image under the assets directory
func (v *Validator) validateThumbnails() error {
	if info, err := os.Stat(v.AssetsDir); err != nil || !info.IsDir() {
		return fmt.Errorf("assets directory not found: %s", v.AssetsDir)
	}

	pattern := v.Catalog.File().Gallery.ImagePattern
	var missing []string
	for _, it := range v.Catalog.Items() {
		if it.Category == "" {
			continue
		}
		path := filepath.Join(v.AssetsDir, filepath.FromSlash(catalog.ImagePath(pattern, it.Category, it.ID)))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			missing = append(missing, it.ID)
		}
	}

	if len(missing) > 0 {
		v.warnf("missing thumbnails in %s: %s", v.AssetsDir, strings.Join(missing, ", "))
	}
	return nil
}

func sortedCategories(m map[item.Category][]string) []item.Category {
	categories := make([]item.Category, 0, len(m))
	for category := range m {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	return categories
}
