package cmd

import (
	"errors"
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/showcase/internal/catalog"
	"github.com/arcanaland/showcase/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [catalog]",
	Short: "Validate a catalog",
	Long: `Validate checks that a catalog can be rendered: the identifier and
description lists line up, every identifier carries a category prefix, and
every item of a dispatch category has an entry in the link table.

With --assets, thumbnails are also checked against the image pattern.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		c, err := openCatalog(args)
		if errors.Is(err, catalog.ErrListMismatch) {
			fmt.Fprintln(out, "Validation Results:")
			fmt.Fprintln(out, "-------------------")
			fmt.Fprintf(out, "%s Catalog has 1 validation error:\n", colorize.RedString("❌"))
			fmt.Fprintf(out, "1. %v\n", err)
			return fmt.Errorf("validation failed")
		}
		if err != nil {
			return err
		}

		v := validator.NewValidator(c).WithAssets(assetsDir(cmd))
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if results.OK() {
			fmt.Fprintf(out, "%s Catalog '%s' is valid (%d items).\n", colorize.GreenString("✅"), c.ID, c.Len())
		} else {
			fmt.Fprintf(out, "%s Catalog '%s' has %d validation errors:\n", colorize.RedString("❌"), c.ID, len(results.Errors))
			for i, msg := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, msg)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, colorize.YellowString("\nWarnings:"))
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		if !results.OK() {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)

	validateCmd.Flags().String("assets", "", "Check thumbnails in this directory")
}
