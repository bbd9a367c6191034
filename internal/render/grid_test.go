package render

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/showcase/internal/item"
)

func populatedGrid(t *testing.T, n int) *Grid {
	t.Helper()
	g := NewGrid()
	for i := 0; i < n; i++ {
		require.NoError(t, g.Append(Card{ID: "core_x", Category: "core"}))
	}
	return g
}

func TestHoverTogglesOnlyItsCard(t *testing.T) {
	t.Parallel()

	g := populatedGrid(t, 3)
	for i := 0; i < g.Len(); i++ {
		require.NoError(t, g.BindHover(i))
	}

	require.NoError(t, g.PointerEnter(1))
	cards := g.Cards()
	assert.False(t, cards[0].CaptionVisible)
	assert.True(t, cards[1].CaptionVisible)
	assert.False(t, cards[2].CaptionVisible)

	require.NoError(t, g.PointerLeave(1))
	require.NoError(t, g.PointerLeave(1))
	assert.False(t, g.Cards()[1].CaptionVisible, "leave is idempotent")
}

func TestHoverRequiresBinding(t *testing.T) {
	t.Parallel()

	g := populatedGrid(t, 1)
	assert.ErrorIs(t, g.PointerEnter(0), ErrHoverNotBound)
	assert.ErrorIs(t, g.PointerEnter(5), ErrCardIndex)
	assert.ErrorIs(t, g.BindHover(-1), ErrCardIndex)
}

func TestHoverOnDistinctCardsConcurrently(t *testing.T) {
	t.Parallel()

	g := populatedGrid(t, 8)
	for i := 0; i < g.Len(); i++ {
		require.NoError(t, g.BindHover(i))
	}

	var wg sync.WaitGroup
	for i := 0; i < g.Len(); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = g.PointerEnter(i)
				_ = g.PointerLeave(i)
			}
			_ = g.PointerEnter(i)
		}(i)
	}
	wg.Wait()

	for _, card := range g.Cards() {
		assert.True(t, card.CaptionVisible)
	}
}

func TestAppendAssignsIndexes(t *testing.T) {
	t.Parallel()

	g := NewGrid()
	require.NoError(t, g.Append(Card{Index: 42, ID: "a_1", Category: item.Category("a")}))
	require.NoError(t, g.Append(Card{ID: "b_1", Category: item.Category("b")}))
	cards := g.Cards()
	assert.Equal(t, 0, cards[0].Index)
	assert.Equal(t, 1, cards[1].Index)

	cards[0].ID = "mutated"
	assert.Equal(t, "a_1", g.Cards()[0].ID, "Cards returns a copy")
}

func TestFilterGridInitOnce(t *testing.T) {
	t.Parallel()

	f := NewFilterGrid(ContainerSelector)
	assert.ErrorIs(t, f.InitGrid(NewGrid()), ErrNoItems)

	g := populatedGrid(t, 2)
	require.NoError(t, f.InitGrid(g))
	assert.Equal(t, 2, f.Cards())
	assert.ErrorIs(t, f.InitGrid(g), ErrGridInitialized)
}
