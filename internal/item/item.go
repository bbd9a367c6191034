package item

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedIdentifier is returned when an item ID has no category prefix.
	ErrMalformedIdentifier = errors.New("malformed identifier")
	// ErrUnresolvedLinkTarget is returned when an item needs a dispatch entry and has none.
	ErrUnresolvedLinkTarget = errors.New("unresolved link target")
)

// Delimiter separates the category prefix from the rest of an item ID
const Delimiter = "_"

// Category is the coarse grouping used for filtering (core, shapes, game, user...)
type Category string

// Item represents one gallery entry
type Item struct {
	ID          string   // Identifier, e.g. core_random_values
	Description string   // Human readable description, e.g. "random values"
	Category    Category // Filter category, derived from ID when built with New
}

// LinkKind selects how a card's link is opened
type LinkKind string

const (
	// EmbeddedViewer opens the item in the in-page lightbox viewer
	EmbeddedViewer LinkKind = "embedded"
	// ExternalLink points to another site
	ExternalLink LinkKind = "external"
)

// Link is the resolved target of a rendered card
type Link struct {
	Kind  LinkKind
	Href  string // Empty when the target could not be resolved
	Label string
	Image string
}

// New builds an item, deriving its category from the ID
func New(id, description string) (Item, error) {
	category, err := ParseCategory(id)
	if err != nil {
		return Item{}, err
	}
	return Item{ID: id, Description: description, Category: category}, nil
}

// ParseCategory returns the substring of id before the first underscore
func ParseCategory(id string) (Category, error) {
	prefix, _, found := strings.Cut(id, Delimiter)
	if !found {
		return "", fmt.Errorf("%w: %q has no %q delimiter", ErrMalformedIdentifier, id, Delimiter)
	}
	if prefix == "" {
		return "", fmt.Errorf("%w: %q has an empty category", ErrMalformedIdentifier, id)
	}
	return Category(prefix), nil
}

// ResolveCategory returns the explicit category, deriving it from the ID when unset
func (i Item) ResolveCategory() (Category, error) {
	if i.Category != "" {
		return i.Category, nil
	}
	return ParseCategory(i.ID)
}

// ParseLinkKind converts a catalog link kind string
func ParseLinkKind(s string) (LinkKind, error) {
	switch LinkKind(strings.ToLower(strings.TrimSpace(s))) {
	case EmbeddedViewer, "":
		return EmbeddedViewer, nil
	case ExternalLink:
		return ExternalLink, nil
	default:
		return "", fmt.Errorf("unknown link kind: %s", s)
	}
}
