// Package render builds gallery cards from catalog items and writes them out
// as a filterable HTML page.
//
// Rendering is a single synchronous pass: every item becomes one card, in
// list order, appended to a Container. Once all cards are in place a hover
// interaction is bound per card and the container is handed to the
// filterable grid. Filtering and the lightbox are browser-side plugins and
// are only referenced by the page.
package render

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/arcanaland/showcase/internal/item"
)

var (
	ErrNoItems         = errors.New("no items to render")
	ErrAlreadyRendered = errors.New("container already rendered")
)

// LinkResolver maps an item to its link target, label and thumbnail
type LinkResolver interface {
	Resolve(it item.Item) (item.Link, error)
}

// Container receives rendered cards in order
type Container interface {
	Append(card Card) error
	BindHover(index int) error
	Len() int
}

// GridInitializer takes over a fully populated container
type GridInitializer interface {
	InitGrid(c Container) error
}

// Renderer turns gallery items into cards
type Renderer struct {
	logger *zap.Logger
}

// NewRenderer returns a renderer logging to logger; nil means no logging
func NewRenderer(logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{logger: logger}
}

// Render appends one card per item to c, binds hover handlers and hands c
// to grid. It stops at the first malformed identifier; cards already
// appended stay as they are. Items whose link cannot be resolved are
// rendered without a link and logged as warnings.
func (r *Renderer) Render(items []item.Item, links LinkResolver, c Container, grid GridInitializer) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	if c.Len() > 0 {
		return ErrAlreadyRendered
	}

	for i, it := range items {
		category, err := it.ResolveCategory()
		if err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		it.Category = category

		link, err := links.Resolve(it)
		if err != nil {
			if !errors.Is(err, item.ErrUnresolvedLinkTarget) {
				return fmt.Errorf("item %d (%s): %w", i, it.ID, err)
			}
			r.logger.Warn("Card rendered without link",
				zap.String("id", it.ID),
				zap.String("category", string(category)),
				zap.Error(err))
			link.Href = ""
		}

		if err := c.Append(newCard(i, it, link)); err != nil {
			return fmt.Errorf("append %s: %w", it.ID, err)
		}
	}

	for i := 0; i < c.Len(); i++ {
		if err := c.BindHover(i); err != nil {
			return fmt.Errorf("bind hover %d: %w", i, err)
		}
	}

	if grid != nil {
		if err := grid.InitGrid(c); err != nil {
			return fmt.Errorf("init grid: %w", err)
		}
	}

	r.logger.Debug("Gallery rendered", zap.Int("cards", c.Len()))
	return nil
}
