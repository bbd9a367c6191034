package cmd

import (
	"fmt"
	"os"
	"sort"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/showcase/internal/inspect"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [page.html]",
	Short: "List the cards of a rendered gallery page",
	Long: `Inspect reads a rendered gallery page back and prints its cards in order,
with their category and link target, followed by a per-category count.
Cards rendered without a link target are highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("error opening page: %w", err)
		}
		defer file.Close()

		summary, err := inspect.Parse(file)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s %s (%d cards)\n\n", colorize.CyanString("Page:"), summary.Title, len(summary.Cards))
		for i, card := range summary.Cards {
			href := card.Href
			if href == "" {
				href = colorize.YellowString("(no link)")
			}
			fmt.Fprintf(out, "%3d. %-32s %-10s %s\n", i+1, card.ID, card.FilterClass, href)
		}

		counts := summary.CountByCategory()
		categories := make([]string, 0, len(counts))
		for category := range counts {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		fmt.Fprintln(out, colorize.CyanString("\nCategories:"))
		for _, category := range categories {
			fmt.Fprintf(out, "  %-10s %d\n", category, counts[category])
		}

		if unlinked := summary.Unlinked(); len(unlinked) > 0 {
			fmt.Fprintln(out, colorize.YellowString("\nWarnings:"))
			for i, card := range unlinked {
				fmt.Fprintf(out, "%d. %s has no link target\n", i+1, card.ID)
			}
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(inspectCmd)
}
