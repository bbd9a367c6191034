package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/showcase/internal/catalog"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [examples_dir]",
	Short: "Build a catalog from an examples source tree",
	Long: `Scan walks an examples tree laid out as <category>/<category>_<name>.c
and writes a catalog listing every example in category and name order. The
description of each example is taken from the header comment of its source
file ("raylib [core] example - basic window"), or derived from its name.

Examples:
  showcase scan ./examples -o examples.toml
  showcase scan ./examples --categories core,shapes,textures -o examples.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := catalog.ScanOptions{}
		opts.ID, _ = cmd.Flags().GetString("id")
		opts.Name, _ = cmd.Flags().GetString("name")
		opts.Viewer, _ = cmd.Flags().GetString("viewer")
		opts.ImagePattern, _ = cmd.Flags().GetString("image-pattern")
		if categories, _ := cmd.Flags().GetString("categories"); categories != "" {
			for _, category := range strings.Split(categories, ",") {
				if category = strings.TrimSpace(category); category != "" {
					opts.Categories = append(opts.Categories, category)
				}
			}
		}

		c, err := catalog.Scan(args[0], opts)
		if err != nil {
			return err
		}
		logger.Debug("Examples scanned", zap.String("root", args[0]), zap.Int("items", c.Len()))

		output, _ := cmd.Flags().GetString("output")
		if output == "" || output == "-" {
			return c.Encode(cmd.OutOrStdout(), catalog.FormatTOML)
		}

		if err := c.Save(output); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Scanned %d examples in %d categories to %s\n", c.Len(), len(c.Categories()), output)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringP("output", "o", "", "Write the catalog to a file (.toml or .yaml) instead of stdout")
	scanCmd.Flags().String("id", "", "Catalog identifier (default: directory name)")
	scanCmd.Flags().String("name", "", "Catalog display name")
	scanCmd.Flags().String("viewer", "", "Embedded viewer page (default: "+catalog.DefaultViewer+")")
	scanCmd.Flags().String("image-pattern", "", "Thumbnail path pattern (default: "+catalog.DefaultImagePattern+")")
	scanCmd.Flags().String("categories", "", "Comma-separated category directories to scan, in order")
}
