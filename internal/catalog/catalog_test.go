package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/showcase/internal/item"
)

const sampleTOML = `
ids = ["core_random_values", "shapes_pie_chart", "user_raymario", "user_unknown"]
descriptions = ["random values", "interactive pie chart", "RayMario (Victor Fisac)", "Unknown"]

[gallery]
id = "sample"
name = "Sample"
viewer = "examples/loader.html"
image_pattern = "img/{category}/{id}.png"
dispatch_categories = ["user"]

[links.user_raymario]
kind = "external"
target = "https://github.com/victorfisac/RayMario"
`

func decodeSample(t *testing.T) *Catalog {
	t.Helper()
	c, err := Decode(strings.NewReader(sampleTOML), FormatTOML)
	require.NoError(t, err)
	return c
}

func TestDecodeKeepsOrder(t *testing.T) {
	t.Parallel()

	c := decodeSample(t)
	require.Equal(t, 4, c.Len())

	var ids []string
	for _, it := range c.Items() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"core_random_values", "shapes_pie_chart", "user_raymario", "user_unknown"}, ids)
	assert.Equal(t, "sample", c.ID)
	assert.Equal(t, []item.Category{"core", "shapes", "user"}, c.Categories())
}

func TestDecodeRejectsMismatchedLists(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader(`ids = ["core_a", "core_b"]
descriptions = ["a"]`), FormatTOML)
	assert.ErrorIs(t, err, ErrListMismatch)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader(`ids = []
descriptions = []
colour = "red"`), FormatTOML)
	assert.Error(t, err)
}

func TestItemsLeaveMalformedCategoryEmpty(t *testing.T) {
	t.Parallel()

	c, err := FromFile(File{IDs: []string{"core_ok", "broken"}, Descriptions: []string{"ok", "broken"}})
	require.NoError(t, err)

	items := c.Items()
	assert.Equal(t, item.Category("core"), items[0].Category)
	assert.Empty(t, items[1].Category)
}

func TestItemLookup(t *testing.T) {
	t.Parallel()

	c := decodeSample(t)
	it, err := c.Item("shapes_pie_chart")
	require.NoError(t, err)
	assert.Equal(t, "interactive pie chart", it.Description)

	_, err = c.Item("missing_item")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestYAMLRoundTripMatchesTOML(t *testing.T) {
	t.Parallel()

	c := decodeSample(t)

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf, FormatYAML))

	fromYAML, err := Decode(&buf, FormatYAML)
	require.NoError(t, err)

	if diff := cmp.Diff(c.File(), fromYAML.File()); diff != "" {
		t.Fatalf("yaml catalog differs (-toml +yaml):\n%s", diff)
	}
}

func TestLoadAndSave(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c := decodeSample(t)

	path := filepath.Join(dir, "copy.toml")
	require.NoError(t, c.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, loaded.Path)
	if diff := cmp.Diff(c.File(), loaded.File()); diff != "" {
		t.Fatalf("saved catalog differs:\n%s", diff)
	}
}

func TestLoadUsesFileNameWhenIDMissing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "mine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ids: [core_a]\ndescriptions: [a]\n"), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mine", c.ID)
}
