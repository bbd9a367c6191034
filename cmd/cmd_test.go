package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/showcase/internal/catalog"
	"github.com/arcanaland/showcase/internal/config"
)

// resetFlags puts every flag back to its default between runs of RootCmd
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// setupHome points the XDG directories at a temporary home
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))
	return home
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(RootCmd)

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

func TestRenderToFile(t *testing.T) {
	home := setupHome(t)
	output := filepath.Join(home, "examples.html")

	out, err := execute(t, "render", "examples", "-o", output)
	require.NoError(t, err)
	assert.Contains(t, out, "Rendered 37 cards from 'examples'")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 37, doc.Find(".filtr-container .filtr-item").Length())
	assert.Equal(t, 1, doc.Find(".filtr-item.fcore[data-id='core_random_values']").Length())
}

func TestRenderDefaultCatalogToStdout(t *testing.T) {
	setupHome(t)

	out, err := execute(t, "render")
	require.NoError(t, err)
	assert.Contains(t, out, `class="filtr-container"`)
	assert.Contains(t, out, "examples/loader.html?name=core/core_random_values")
}

func TestRenderMalformedCatalogFails(t *testing.T) {
	home := setupHome(t)
	path := filepath.Join(home, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`ids = ["core_ok", "broken"]
descriptions = ["ok", "broken"]`), 0644))

	_, err := execute(t, "render", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed identifier")
}

func TestValidateBuiltin(t *testing.T) {
	setupHome(t)

	out, err := execute(t, "validate", "games")
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog 'games' is valid")
}

func TestValidateReportsListMismatch(t *testing.T) {
	home := setupHome(t)
	path := filepath.Join(home, "short.toml")
	require.NoError(t, os.WriteFile(path, []byte(`ids = ["core_a", "core_b"]
descriptions = ["a"]`), 0644))

	out, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, out, "2 ids, 1 descriptions")
}

func TestValidateReportsUnresolvedLinks(t *testing.T) {
	home := setupHome(t)
	path := filepath.Join(home, "users.toml")
	require.NoError(t, os.WriteFile(path, []byte(`ids = ["user_unknown"]
descriptions = ["Unknown"]

[gallery]
dispatch_categories = ["user"]`), 0644))

	out, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Warnings:")
	assert.Contains(t, out, "user_unknown")
}

func TestShowItem(t *testing.T) {
	setupHome(t)

	out, err := execute(t, "show", "--catalog", "games", "user_raymario")
	require.NoError(t, err)
	assert.Contains(t, out, "user_raymario")
	assert.Contains(t, out, "https://github.com/victorfisac/RayMario (external)")
	assert.Contains(t, out, "RayMario")
}

func TestShowUnknownItem(t *testing.T) {
	setupHome(t)

	_, err := execute(t, "show", "core_does_not_exist")
	assert.ErrorIs(t, err, catalog.ErrItemNotFound)
}

func TestCatalogInitListAndSetDefault(t *testing.T) {
	setupHome(t)

	out, err := execute(t, "catalog", "init", "--builtin")
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog library initialized at:")
	assert.FileExists(t, filepath.Join(config.GetCatalogLibraryPath(), "games.toml"))

	out, err = execute(t, "catalog", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "* examples (raylib examples, 37 items) [DEFAULT]")

	out, err = execute(t, "catalog", "set-default", "games")
	require.NoError(t, err)
	assert.Contains(t, out, "Default catalog set to: games")

	var saved config.Config
	_, err = toml.DecodeFile(config.GetConfigFilePath(), &saved)
	require.NoError(t, err)
	assert.Equal(t, "games", saved.DefaultCatalog)

	_, err = execute(t, "catalog", "set-default", "no-such-catalog")
	assert.Error(t, err)
}

func TestScanAndInspect(t *testing.T) {
	home := setupHome(t)
	root := filepath.Join(home, "examples")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "core"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "shapes"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "core", "core_basic_window.c"),
		[]byte("/*******\n*   raylib [core] example - Basic window\n*******/\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "shapes", "shapes_pie_chart.c"),
		[]byte("int main(void) { return 0; }\n"), 0644))

	catalogPath := filepath.Join(home, "scanned.toml")
	_, err := execute(t, "scan", root, "-o", catalogPath, "--name", "Scanned")
	require.NoError(t, err)

	c, err := catalog.Load(catalogPath)
	require.NoError(t, err)
	assert.Equal(t, "Scanned", c.Name)
	require.Equal(t, 2, c.Len())

	pagePath := filepath.Join(home, "scanned.html")
	_, err = execute(t, "render", catalogPath, "-o", pagePath)
	require.NoError(t, err)

	out, err := execute(t, "inspect", pagePath)
	require.NoError(t, err)
	assert.Contains(t, out, "(2 cards)")
	assert.Contains(t, out, "core_basic_window")
	assert.Contains(t, out, "fshapes")
	assert.True(t, strings.Contains(out, "Categories:"))
	assert.NotContains(t, out, "no link target")
}
