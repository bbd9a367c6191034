package item

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		want Category
	}{
		{id: "core_random_values", want: "core"},
		{id: "shapes_pie_chart", want: "shapes"},
		{id: "user_raymario", want: "user"},
		{id: "text_", want: "text"},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.id)
		require.NoError(t, err, tt.id)
		assert.Equal(t, tt.want, got, tt.id)
	}
}

func TestParseCategoryMalformed(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"noDelimiter", "", "_leading"} {
		_, err := ParseCategory(id)
		require.Error(t, err, id)
		assert.True(t, errors.Is(err, ErrMalformedIdentifier), id)
	}
}

func TestNewDerivesCategory(t *testing.T) {
	t.Parallel()

	it, err := New("core_random_values", "random values")
	require.NoError(t, err)
	assert.Equal(t, Item{ID: "core_random_values", Description: "random values", Category: "core"}, it)

	_, err = New("broken", "x")
	assert.ErrorIs(t, err, ErrMalformedIdentifier)
}

func TestResolveCategoryPrefersExplicitField(t *testing.T) {
	t.Parallel()

	got, err := Item{ID: "core_x", Category: "shapes"}.ResolveCategory()
	require.NoError(t, err)
	assert.Equal(t, Category("shapes"), got)

	got, err = Item{ID: "core_x"}.ResolveCategory()
	require.NoError(t, err)
	assert.Equal(t, Category("core"), got)
}

func TestParseLinkKind(t *testing.T) {
	t.Parallel()

	k, err := ParseLinkKind("External")
	require.NoError(t, err)
	assert.Equal(t, ExternalLink, k)

	k, err = ParseLinkKind("")
	require.NoError(t, err)
	assert.Equal(t, EmbeddedViewer, k)

	_, err = ParseLinkKind("popup")
	assert.Error(t, err)
}
