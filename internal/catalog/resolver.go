package catalog

import (
	"fmt"
	"strings"

	"github.com/arcanaland/showcase/internal/item"
)

// Resolver maps gallery items to link targets using the catalog's dispatch
// table, viewer URL and image pattern
type Resolver struct {
	viewer       string
	imagePattern string
	dispatch     map[item.Category]bool
	links        map[string]LinkEntry
}

// Resolver returns the link resolver for this catalog
func (c *Catalog) Resolver() *Resolver {
	dispatch := make(map[item.Category]bool)
	for _, category := range c.DispatchCategories() {
		dispatch[category] = true
	}
	return &Resolver{
		viewer:       c.file.Gallery.Viewer,
		imagePattern: c.file.Gallery.ImagePattern,
		dispatch:     dispatch,
		links:        c.File().Links,
	}
}

// Resolve returns the link, label and thumbnail for it. Items of a dispatch
// category with no table entry get a link without Href and an error
// wrapping item.ErrUnresolvedLinkTarget.
func (r *Resolver) Resolve(it item.Item) (item.Link, error) {
	category, err := it.ResolveCategory()
	if err != nil {
		return item.Link{}, err
	}

	link := item.Link{
		Kind:  item.EmbeddedViewer,
		Label: it.Description,
		Image: ImagePath(r.imagePattern, category, it.ID),
	}

	if entry, ok := r.links[it.ID]; ok {
		kind, err := item.ParseLinkKind(entry.Kind)
		if err != nil {
			return item.Link{}, fmt.Errorf("link for %s: %w", it.ID, err)
		}
		link.Kind = kind
		link.Href = entry.Target
		if link.Href == "" && kind == item.EmbeddedViewer {
			link.Href = ViewerHref(r.viewer, category, it.ID)
		}
		return link, nil
	}

	if r.dispatch[category] {
		link.Kind = item.ExternalLink
		return link, fmt.Errorf("%w: no dispatch entry for %s", item.ErrUnresolvedLinkTarget, it.ID)
	}

	link.Href = ViewerHref(r.viewer, category, it.ID)
	return link, nil
}

// ViewerHref builds the embedded viewer URL for an item
func ViewerHref(viewer string, category item.Category, id string) string {
	sep := "?"
	if strings.Contains(viewer, "?") {
		sep = "&"
	}
	return viewer + sep + "name=" + string(category) + "/" + id
}

// ImagePath expands the {category} and {id} tokens of pattern
func ImagePath(pattern string, category item.Category, id string) string {
	return strings.NewReplacer("{category}", string(category), "{id}", id).Replace(pattern)
}
