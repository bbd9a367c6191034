package render

import (
	"errors"
	"fmt"

	"github.com/arcanaland/showcase/internal/item"
)

// CardMarker is the class every card carries; the filterable grid selects on it
const CardMarker = "filtr-item"

var (
	ErrCardIndex       = errors.New("card index out of range")
	ErrGridInitialized = errors.New("filterable grid already initialized")
	ErrHoverNotBound   = errors.New("hover not bound")
)

// Card is one rendered gallery entry
type Card struct {
	Index          int
	ID             string
	Category       item.Category
	Link           item.Link
	CaptionVisible bool
	HoverBound     bool
}

func newCard(index int, it item.Item, link item.Link) Card {
	return Card{
		Index:    index,
		ID:       it.ID,
		Category: it.Category,
		Link:     link,
	}
}

// FilterClass is the per-category class, e.g. fcore
func (c Card) FilterClass() string {
	return "f" + string(c.Category)
}

// Class is the full class attribute of the card
func (c Card) Class() string {
	return CardMarker + " " + c.FilterClass()
}

// Grid is an in-memory Container. Append and BindHover must not run
// concurrently; pointer events on distinct cards may.
type Grid struct {
	cards []Card
}

// NewGrid returns an empty grid
func NewGrid() *Grid {
	return &Grid{}
}

func (g *Grid) Append(card Card) error {
	card.Index = len(g.cards)
	g.cards = append(g.cards, card)
	return nil
}

func (g *Grid) BindHover(index int) error {
	if index < 0 || index >= len(g.cards) {
		return fmt.Errorf("%w: %d", ErrCardIndex, index)
	}
	g.cards[index].HoverBound = true
	return nil
}

func (g *Grid) Len() int {
	return len(g.cards)
}

// Cards returns a copy of the cards in order
func (g *Grid) Cards() []Card {
	return append([]Card(nil), g.cards...)
}

// PointerEnter reveals the caption of card index
func (g *Grid) PointerEnter(index int) error {
	return g.setCaption(index, true)
}

// PointerLeave hides the caption of card index
func (g *Grid) PointerLeave(index int) error {
	return g.setCaption(index, false)
}

func (g *Grid) setCaption(index int, visible bool) error {
	if index < 0 || index >= len(g.cards) {
		return fmt.Errorf("%w: %d", ErrCardIndex, index)
	}
	if !g.cards[index].HoverBound {
		return fmt.Errorf("%w: card %d", ErrHoverNotBound, index)
	}
	g.cards[index].CaptionVisible = visible
	return nil
}

// FilterGrid is the filterable grid capability. It is initialised once with
// a populated container and then emitted into the page as the plugin call.
type FilterGrid struct {
	Selector string

	initialized bool
	cards       int
}

// NewFilterGrid returns a grid initialiser targeting selector
func NewFilterGrid(selector string) *FilterGrid {
	return &FilterGrid{Selector: selector}
}

func (f *FilterGrid) InitGrid(c Container) error {
	if f.initialized {
		return ErrGridInitialized
	}
	if c.Len() == 0 {
		return ErrNoItems
	}
	f.initialized = true
	f.cards = c.Len()
	return nil
}

// Initialized reports whether InitGrid has run
func (f *FilterGrid) Initialized() bool {
	return f.initialized
}

// Cards returns the number of cards handed over at initialisation
func (f *FilterGrid) Cards() int {
	return f.cards
}
