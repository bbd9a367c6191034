package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/showcase/internal/render"
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render [catalog]",
	Short: "Render a catalog into a filterable gallery page",
	Long: `Render turns every item of a catalog into a gallery card and writes the
resulting HTML page. Cards are grouped by the category prefix of their
identifier; the page wires the hover captions, the filter buttons and the
lightbox viewer.

The catalog is looked up in your catalog library
(XDG_DATA_HOME/showcase/catalogs), as a relative path, or among the
built-in catalogs. Without an argument the default catalog is used.

Examples:
  showcase render -o examples.html
  showcase render games -o games.html
  showcase render ./my-catalog.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog(args)
		if err != nil {
			return err
		}

		page, err := render.BuildPage(logger, c, cfg.Assets)
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" || output == "-" {
			return page.Write(cmd.OutOrStdout())
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("error creating %s: %w", output, err)
		}
		defer file.Close()

		if err := page.Write(file); err != nil {
			return fmt.Errorf("error writing %s: %w", output, err)
		}

		logger.Info("Gallery rendered", zap.String("catalog", c.ID), zap.Int("cards", page.Grid().Len()), zap.String("output", output))
		fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d cards from '%s' to %s\n", page.Grid().Len(), c.ID, output)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringP("output", "o", "", "Write the page to a file instead of stdout")
}
