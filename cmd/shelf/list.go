package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listLimit int

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum books to show (0 = all)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all books",
	Long: `List all books in the order they were added.

Examples:
  shelf list
  shelf list --limit 10 --human`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	c := mustLoadCatalog()
	books := c.List()
	total := len(books)
	if listLimit > 0 && listLimit < total {
		books = books[:listLimit]
	}

	if humanOutput {
		header := fmt.Sprintf("%d %s in your library:", total, plural(total, "book"))
		if len(books) < total {
			header = fmt.Sprintf("%d books (showing first %d):", total, len(books))
		}
		printBooksHuman(header, "Your library is empty. Add some books first!", books)
	} else {
		outputJSON(books)
	}

	return nil
}
