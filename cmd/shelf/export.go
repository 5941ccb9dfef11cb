package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/areeba-awan/Personal-CLI-Library-Management-System/internal/book"
	"github.com/areeba-awan/Personal-CLI-Library-Management-System/internal/catalog"
	"github.com/areeba-awan/Personal-CLI-Library-Management-System/internal/export"
)

var exportAuthor string

func init() {
	exportCmd.Flags().StringVarP(&exportAuthor, "author", "a", "", "Export only books whose author contains this text")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export books to BibTeX format",
	Long: `Export the catalog as BibTeX @book entries.

Cite keys are the author's last name plus the year, with -2, -3, ...
appended for repeats. Output is always BibTeX, regardless of --human.

Examples:
  shelf export > books.bib
  shelf export --author austen`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	c := mustLoadCatalog()

	var books []book.Book
	if exportAuthor != "" {
		var err error
		books, err = c.Search(catalog.FieldAuthor, exportAuthor)
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
	} else {
		books = c.List()
	}

	fmt.Print(export.ToBibTeXList(books))
	return nil
}
