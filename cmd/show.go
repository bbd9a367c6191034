package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/arcanaland/showcase/internal/ansiart"
	"github.com/arcanaland/showcase/internal/catalog"
	"github.com/arcanaland/showcase/internal/config"
	"github.com/arcanaland/showcase/internal/item"
)

var showCmd = &cobra.Command{
	Use:   "show [item_id]",
	Short: "Display information about a gallery item with ANSI art",
	Long: `Show displays a gallery item: its category, description and link target,
next to its thumbnail rendered as ANSI terminal art.

You can specify a catalog using the --catalog flag, which will look for the
catalog in your catalog library (XDG_DATA_HOME/showcase/catalogs), as a
relative path, or among the built-in catalogs. If no catalog is specified,
the default catalog from your config will be used. Thumbnails are looked up
under --assets, or the thumbnail_dir from your config.

Examples:
  showcase show core_random_values --assets ./site
  showcase show --catalog games user_raymario`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID := args[0]

		catalogFlag, _ := cmd.Flags().GetString("catalog")
		c, err := openCatalog([]string{catalogFlag})
		if err != nil {
			return err
		}

		it, err := c.Item(itemID)
		if err != nil {
			return err
		}
		category, err := it.ResolveCategory()
		if err != nil {
			return err
		}

		link, err := c.Resolver().Resolve(it)
		if err != nil && !errors.Is(err, item.ErrUnresolvedLinkTarget) {
			return err
		}
		if err != nil {
			logger.Warn("Item has no link target", zap.String("id", it.ID), zap.Error(err))
		}

		art := ""
		if dir := assetsDir(cmd); dir != "" {
			art, err = ansiart.Load(config.GetCacheDir(), filepath.Join(dir, link.Image), ansiart.DefaultWidth, ansiart.DefaultHeight)
			if err != nil {
				logger.Debug("No thumbnail art", zap.String("image", link.Image), zap.Error(err))
				art = ""
			}
		}

		displayItem(cmd.OutOrStdout(), c, it, category, link, art)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().StringP("catalog", "c", "", "Specify a catalog from your catalog library or a path to a catalog")
	showCmd.Flags().String("assets", "", "Directory holding the thumbnails")
}

// terminalWidth returns the width of stdout, or 80 when it is not a terminal
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// displayItem prints the item information next to its ANSI art
func displayItem(out io.Writer, c *catalog.Catalog, it item.Item, category item.Category, link item.Link, art string) {
	var artLines []string
	if art != "" {
		artLines = strings.Split(strings.TrimRight(art, "\n"), "\n")
	}
	maxArtWidth := 0
	for _, line := range artLines {
		if w := ansiart.VisibleWidth(line); w > maxArtWidth {
			maxArtWidth = w
		}
	}

	catalogName := c.Name
	if catalogName == "" {
		catalogName = c.ID
	}

	var infoLines []string
	infoLines = append(infoLines, colorize.CyanString("Item:     ")+colorize.HiWhiteString("%s", it.ID))
	infoLines = append(infoLines, colorize.CyanString("Catalog:  ")+colorize.HiWhiteString("%s", catalogName))
	infoLines = append(infoLines, colorize.CyanString("Category: ")+colorize.HiWhiteString("%s · f%s", category, category))

	switch {
	case link.Href == "":
		infoLines = append(infoLines, colorize.CyanString("Link:     ")+colorize.YellowString("unresolved"))
	case link.Kind == item.ExternalLink:
		infoLines = append(infoLines, colorize.CyanString("Link:     ")+colorize.HiWhiteString("%s (external)", link.Href))
	default:
		infoLines = append(infoLines, colorize.CyanString("Link:     ")+colorize.HiWhiteString("%s (viewer)", link.Href))
	}
	infoLines = append(infoLines, colorize.CyanString("Image:    ")+colorize.HiWhiteString("%s", link.Image))

	spacing := 4
	infoStartCol := 0
	if maxArtWidth > 0 {
		infoStartCol = maxArtWidth + spacing
	}

	infoWidth := terminalWidth() - infoStartCol - 2
	if infoWidth < 20 {
		infoWidth = 20
	}

	if it.Description != "" {
		infoLines = append(infoLines, "")
		infoLines = append(infoLines, colorize.CyanString("Description:"))
		infoLines = append(infoLines, ansiart.WrapText(it.Description, infoWidth)...)
	}

	fmt.Fprintln(out)

	maxLines := max(len(artLines), len(infoLines))
	for i := 0; i < maxLines; i++ {
		fmt.Fprint(out, "  ")
		if i < len(artLines) {
			fmt.Fprint(out, artLines[i])
			fmt.Fprint(out, strings.Repeat(" ", infoStartCol-ansiart.VisibleWidth(artLines[i])))
		} else {
			fmt.Fprint(out, strings.Repeat(" ", infoStartCol))
		}

		if i < len(infoLines) {
			fmt.Fprint(out, infoLines[i])
		}

		fmt.Fprintln(out)
	}

	fmt.Fprintln(out)
}
