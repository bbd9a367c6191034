package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"examples", "games"}, BuiltinNames())
}

func TestBuiltinExamplesContainsRandomValues(t *testing.T) {
	t.Parallel()

	c, err := Builtin("examples")
	require.NoError(t, err)

	it, err := c.Item("core_random_values")
	require.NoError(t, err)
	assert.Equal(t, "random values", it.Description)

	_, err = Builtin("nope")
	assert.Error(t, err)
}

func TestOpenPrefersLibraryOverBuiltin(t *testing.T) {
	t.Parallel()

	lib := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(lib, "examples.toml"), []byte(`ids = ["core_only"]
descriptions = ["only"]
[gallery]
id = "examples"
name = "local"
`), 0644))

	c, err := Open(lib, "examples")
	require.NoError(t, err)
	assert.Equal(t, "local", c.Name)
	assert.Equal(t, 1, c.Len())

	games, err := Open(lib, "games")
	require.NoError(t, err)
	assert.Equal(t, "games", games.ID)

	_, err = Open(lib, "missing")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	t.Parallel()

	lib := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(lib, "a.toml"), []byte("ids = [\"core_a\"]\ndescriptions = [\"a\"]\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(lib, "b.yaml"), []byte("ids: [core_b, core_c]\ndescriptions: [b]\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(lib, "notes.txt"), []byte("ignored"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(lib, "dir"), 0755))

	entries, err := List(lib)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "a", entries[0].Name)
	require.NoError(t, entries[0].Err)
	assert.Equal(t, 1, entries[0].Catalog.Len())

	assert.Equal(t, "b", entries[1].Name)
	assert.ErrorIs(t, entries[1].Err, ErrListMismatch)
}
