package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arcanaland/showcase/internal/catalog"
	"github.com/arcanaland/showcase/internal/config"
)

// catalogCmd represents the catalog command group
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage catalogs in your catalog library",
	Long:  `Commands for managing gallery catalogs in your catalog library.`,
}

// catalogListCmd represents the catalog ls command
var catalogListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the built-in catalogs and the catalogs in your library",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Built-in:")
		for _, name := range catalog.BuiltinNames() {
			c, err := catalog.Builtin(name)
			if err != nil {
				fmt.Fprintf(out, "  %s (error: %v)\n", name, err)
				continue
			}
			printCatalogLine(out, name, c)
		}

		libraryPath := config.GetCatalogLibraryPath()
		if resolved, err := filepath.EvalSymlinks(libraryPath); err == nil {
			libraryPath = resolved
		}

		if _, err := os.Stat(libraryPath); os.IsNotExist(err) {
			fmt.Fprintf(out, "\nCatalog library at %s does not exist.\n", libraryPath)
			fmt.Fprintln(out, "Run 'showcase catalog init' to create it.")
			return nil
		}

		entries, err := catalog.List(libraryPath)
		if err != nil {
			return fmt.Errorf("error reading catalog library: %w", err)
		}

		fmt.Fprintln(out, "\nLibrary:")
		if len(entries) == 0 {
			fmt.Fprintln(out, "  No catalogs found in your catalog library.")
			fmt.Fprintln(out, "  You can add catalogs by copying them to:", libraryPath)
			return nil
		}
		for _, entry := range entries {
			if entry.Err != nil {
				fmt.Fprintf(out, "  %s (invalid: %v)\n", entry.Name, entry.Err)
				continue
			}
			printCatalogLine(out, entry.Name, entry.Catalog)
		}
		return nil
	},
}

func printCatalogLine(out io.Writer, name string, c *catalog.Catalog) {
	label := c.Name
	if label == "" {
		label = c.ID
	}
	if name == cfg.DefaultCatalog {
		fmt.Fprintf(out, "* %s (%s, %d items) [DEFAULT]\n", name, label, c.Len())
	} else {
		fmt.Fprintf(out, "  %s (%s, %d items)\n", name, label, c.Len())
	}
}

// catalogSetDefaultCmd represents the catalog set-default command
var catalogSetDefaultCmd = &cobra.Command{
	Use:   "set-default [catalog_name]",
	Short: "Set the default catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		// Make sure the catalog loads before making it the default
		if _, err := catalog.Open(config.GetCatalogLibraryPath(), name); err != nil {
			return fmt.Errorf("not a valid catalog: %w", err)
		}

		updated, err := cfg.WithDefaultCatalog(name)
		if err != nil {
			return fmt.Errorf("error setting default catalog: %w", err)
		}
		cfg = updated

		fmt.Fprintf(cmd.OutOrStdout(), "Default catalog set to: %s\n", name)
		return nil
	},
}

// catalogInitCmd represents the catalog init command
var catalogInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the catalog library",
	Long: `Init creates the catalog library directory. With --builtin, the bundled
catalogs are copied into it so they can be edited.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		libraryPath := config.GetCatalogLibraryPath()

		if err := os.MkdirAll(libraryPath, 0755); err != nil {
			return fmt.Errorf("error creating catalog library: %w", err)
		}
		fmt.Fprintln(out, "Catalog library initialized at:", libraryPath)

		if withBuiltin, _ := cmd.Flags().GetBool("builtin"); withBuiltin {
			for _, name := range catalog.BuiltinNames() {
				path := filepath.Join(libraryPath, name+".toml")
				if _, err := os.Stat(path); err == nil {
					fmt.Fprintf(out, "  %s already exists, skipped\n", path)
					continue
				}
				c, err := catalog.Builtin(name)
				if err != nil {
					return err
				}
				if err := c.Save(path); err != nil {
					return err
				}
				fmt.Fprintf(out, "  copied %s\n", path)
			}
		}

		fmt.Fprintln(out, "Config file initialized at:", cfg.Path())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogSetDefaultCmd)
	catalogCmd.AddCommand(catalogInitCmd)

	catalogInitCmd.Flags().Bool("builtin", false, "Copy the built-in catalogs into the library")
}
