package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/areeba-awan/Personal-CLI-Library-Management-System/internal/catalog"
)

var searchField string

func init() {
	searchCmd.Flags().StringVar(&searchField, "field", string(catalog.FieldAny), "Field to search: title, author, or any")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search books by title or author",
	Long: `Search for books whose title or author contains the query, ignoring case.

Results keep catalog order. By default both title and author are searched.

Examples:
  shelf search dune
  shelf search her --field author
  shelf search "the " --field title`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	field, err := catalog.ParseField(searchField)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	query := strings.TrimSpace(args[0])

	c := mustLoadCatalog()
	books, err := c.Search(field, query)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if humanOutput {
		printBooksHuman("Matching books:", "No matching books found", books)
	} else {
		outputJSON(books)
	}

	return nil
}
